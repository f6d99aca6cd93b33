package ui

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/newbeginning12/flashcal/internal/summary"
)

func (a *App) summaryCmd() *cobra.Command {
	var weekOf string

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show statistics for a week",
		Long: `Show aggregated statistics for one Monday-Sunday week: scheduled
time per day and per color tag, free time within the configured day
bounds, and double-booked time.`,
		Example: `  flashcal summary
  flashcal summary --week-of=2026-08-24`,
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			ref := time.Now()
			if weekOf != "" {
				parsed, err := time.ParseInLocation("2006-01-02", weekOf, time.Local)
				if err != nil {
					return fmt.Errorf("invalid date %q: %w", weekOf, err)
				}
				ref = parsed
			}

			s, err := summary.Build(context.Background(), a.repo, ref, summary.Options{
				DayStart: a.config.Schedule.DayStart,
				DayEnd:   a.config.Schedule.DayEnd,
			})
			if err != nil {
				return err
			}

			printWeekSummary(s)
			return nil
		},
	}

	cmd.Flags().StringVar(&weekOf, "week-of", "", "Any date inside the week (YYYY-MM-DD, default: today)")

	return cmd
}

func printWeekSummary(s *summary.WeekSummary) {
	fmt.Println(formatHeader(fmt.Sprintf("Week %s - %s",
		s.Start.Format("Jan 02"), s.End.Format("Jan 02, 2006"))))

	if len(s.Intervals) == 0 {
		fmt.Println("Nothing scheduled this week.")
		return
	}

	fmt.Printf("Scheduled: %s across %d interval(s)\n",
		formatDuration(s.Stats.TotalMinutes), len(s.Intervals))
	fmt.Printf("Done:      %s (%d of %d)\n",
		formatDuration(s.Stats.DoneMinutes), s.Stats.DoneCount, len(s.Intervals))
	if s.Stats.OverlapMinutes > 0 {
		fmt.Println(formatWarning(fmt.Sprintf("Double-booked: %s", formatDuration(s.Stats.OverlapMinutes))))
	}

	fmt.Println("\nBy day:")
	for day := 0; day < 7; day++ {
		date := s.Start.AddDate(0, 0, day)
		fmt.Printf("  %s  %6s scheduled, %6s free\n",
			date.Format("Mon"),
			formatDuration(s.Stats.MinutesByDay[day]),
			formatDuration(s.Stats.FreeMinutes[day]))
	}

	if len(s.Stats.MinutesByTag) > 0 {
		tags := make([]string, 0, len(s.Stats.MinutesByTag))
		for tag := range s.Stats.MinutesByTag {
			tags = append(tags, tag)
		}
		sort.Slice(tags, func(i, j int) bool {
			return s.Stats.MinutesByTag[tags[i]] > s.Stats.MinutesByTag[tags[j]]
		})

		fmt.Println("\nBy color tag:")
		for _, tag := range tags {
			line := fmt.Sprintf("  %-10s %6s", tag, formatDuration(s.Stats.MinutesByTag[tag]))
			fmt.Println(formatTagged(tag, line))
		}
	}
}

func formatDuration(minutes int) string {
	if minutes == 0 {
		return "0m"
	}
	h, m := minutes/60, minutes%60
	switch {
	case h == 0:
		return fmt.Sprintf("%dm", m)
	case m == 0:
		return fmt.Sprintf("%dh", h)
	default:
		return fmt.Sprintf("%dh%02dm", h, m)
	}
}
