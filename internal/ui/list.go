package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/newbeginning12/flashcal/internal/interval"
)

func (a *App) listCmd() *cobra.Command {
	var (
		startDate string
		endDate   string
		week      bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List intervals in a date range",
		Long: `List all intervals scheduled within a date range.

If no dates are specified, lists today's intervals.
With --week, lists the current Monday-Sunday week.`,
		Example: `  flashcal list
  flashcal list --week
  flashcal list --start=2026-08-24 --end=2026-08-30`,
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			start, end, err := resolveRange(startDate, endDate, week, time.Now())
			if err != nil {
				return err
			}

			ivs, err := a.repo.ListIntervalsByDateRange(context.Background(), start, end)
			if err != nil {
				return fmt.Errorf("listing intervals: %w", err)
			}

			if len(ivs) == 0 {
				fmt.Println("No intervals found in the specified date range.")
				return nil
			}

			var currentDay string
			for _, iv := range ivs {
				day := iv.Day.Format("2006-01-02")
				if day != currentDay {
					if currentDay != "" {
						fmt.Println()
					}
					fmt.Println(formatHeader(fmt.Sprintf("=== %s (%s) ===", day, iv.Day.Format("Mon"))))
					currentDay = day
				}
				fmt.Println(formatInterval(iv, termWidth()))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&startDate, "start", "", "Start date (YYYY-MM-DD, defaults to today)")
	cmd.Flags().StringVar(&endDate, "end", "", "End date (YYYY-MM-DD, defaults to start date)")
	cmd.Flags().BoolVar(&week, "week", false, "List the current week")

	return cmd
}

// resolveRange turns the list flags into an inclusive date range.
func resolveRange(startDate, endDate string, week bool, now time.Time) (time.Time, time.Time, error) {
	if week {
		start := interval.StartOfWeek(now)
		return start, start.AddDate(0, 0, 6), nil
	}

	start := interval.TruncateDay(now)
	if startDate != "" {
		parsed, err := time.ParseInLocation("2006-01-02", startDate, time.Local)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid start date %q: %w", startDate, err)
		}
		start = parsed
	}

	end := start
	if endDate != "" {
		parsed, err := time.ParseInLocation("2006-01-02", endDate, time.Local)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid end date %q: %w", endDate, err)
		}
		end = parsed
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("end date %s is before start date %s",
			end.Format("2006-01-02"), start.Format("2006-01-02"))
	}
	return start, end, nil
}

func statusSymbol(s interval.Status) string {
	switch s {
	case interval.StatusPending:
		return "○"
	case interval.StatusActive:
		return "●"
	case interval.StatusDone:
		return "✓"
	default:
		return "?"
	}
}

// formatInterval renders one list line, truncated to the terminal width.
func formatInterval(iv *interval.Interval, width int) string {
	line := fmt.Sprintf("  %s #%d %s-%s %s", statusSymbol(iv.Status), iv.ID, iv.Start, iv.End, iv.Title)
	if len(iv.Tags) > 0 {
		line += " [" + strings.Join(iv.Tags, ",") + "]"
	}
	if width > 3 && len(line) > width {
		line = line[:width-3] + "..."
	}
	if iv.Status == interval.StatusDone {
		return formatMuted(line)
	}
	return formatTagged(iv.ColorTag, line)
}
