package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/newbeginning12/flashcal/internal/interval"
)

func (a *App) addCmd() *cobra.Command {
	var (
		day   string
		start string
		end   string
		color string
		tags  string
		notes string
	)

	cmd := &cobra.Command{
		Use:   "add [title]",
		Short: "Add a new interval",
		Long: `Add a new interval to the calendar.

Example:
  flashcal add "Write documentation" --day=2026-08-26 --start=09:00 --end=11:00 --color=teal`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			d := time.Now()
			if day != "" {
				parsed, err := time.ParseInLocation("2006-01-02", day, time.Local)
				if err != nil {
					return fmt.Errorf("invalid day %q: %w", day, err)
				}
				d = parsed
			}

			iv, err := interval.New(args[0], d, start, end)
			if err != nil {
				return err
			}
			iv.ColorTag = color
			if tags != "" {
				iv.Tags = splitTags(tags)
			}
			iv.Notes = notes

			if err := a.repo.CreateInterval(context.Background(), iv); err != nil {
				return fmt.Errorf("creating interval: %w", err)
			}

			fmt.Printf("Created interval #%d: %s %s %s-%s\n",
				iv.ID, iv.Title, iv.Day.Format("2006-01-02"), iv.Start, iv.End)
			return nil
		},
	}

	cmd.Flags().StringVar(&day, "day", "", "Day (YYYY-MM-DD, default: today)")
	cmd.Flags().StringVar(&start, "start", "", "Start time (HH:MM, required)")
	cmd.Flags().StringVar(&end, "end", "", "End time (HH:MM, required)")
	cmd.Flags().StringVar(&color, "color", "", "Color tag (e.g. teal, red, blue)")
	cmd.Flags().StringVar(&tags, "tags", "", "Comma-separated tags")
	cmd.Flags().StringVar(&notes, "notes", "", "Free-form notes")

	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")

	return cmd
}

func splitTags(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
