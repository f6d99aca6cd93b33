// Package summary aggregates week-level statistics over intervals.
package summary

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/newbeginning12/flashcal/internal/interval"
)

// WeekStats holds aggregated numbers for one Monday-Sunday week.
type WeekStats struct {
	TotalMinutes   int
	DoneMinutes    int
	PendingCount   int
	ActiveCount    int
	DoneCount      int
	MinutesByTag   map[string]int
	MinutesByDay   [7]int
	FreeMinutes    [7]int // within the configured day bounds
	OverlapMinutes int    // double-booked time across the week
}

// WeekSummary holds the week range, its intervals and computed stats.
type WeekSummary struct {
	Start     time.Time
	End       time.Time
	Intervals []*interval.Interval
	Stats     WeekStats
}

// Options configures free-time computation.
type Options struct {
	DayStart string // "HH:MM"
	DayEnd   string // "HH:MM"
}

// Summarize builds week statistics from a set of intervals. Intervals
// outside the week of weekStart are ignored.
func Summarize(weekStart time.Time, ivs []*interval.Interval, opts Options) *WeekSummary {
	start := interval.StartOfWeek(weekStart)
	end := start.AddDate(0, 0, 6)

	stats := WeekStats{MinutesByTag: make(map[string]int)}
	byDay := make([][]*interval.Interval, 7)

	var kept []*interval.Interval
	for _, iv := range ivs {
		day := int(interval.TruncateDay(iv.Day).Sub(start).Hours() / 24)
		if day < 0 || day > 6 {
			continue
		}
		kept = append(kept, iv)
		byDay[day] = append(byDay[day], iv)

		d := iv.Duration()
		stats.TotalMinutes += d
		stats.MinutesByDay[day] += d
		if iv.ColorTag != "" {
			stats.MinutesByTag[iv.ColorTag] += d
		}

		switch iv.Status {
		case interval.StatusPending:
			stats.PendingCount++
		case interval.StatusActive:
			stats.ActiveCount++
		case interval.StatusDone:
			stats.DoneCount++
			stats.DoneMinutes += d
		}
	}

	dayStart := interval.TimeToMinutes(opts.DayStart)
	dayEnd := interval.TimeToMinutes(opts.DayEnd)
	for day := 0; day < 7; day++ {
		busy, overlap := mergeBusy(byDay[day])
		stats.OverlapMinutes += overlap
		if dayEnd > dayStart {
			stats.FreeMinutes[day] = freeWithin(busy, dayStart, dayEnd)
		}
	}

	return &WeekSummary{Start: start, End: end, Intervals: kept, Stats: stats}
}

// Build loads the week of opts from the repository and summarizes it.
func Build(ctx context.Context, repo interval.Repository, weekOf time.Time, opts Options) (*WeekSummary, error) {
	start := interval.StartOfWeek(weekOf)
	ivs, err := repo.ListIntervalsByDateRange(ctx, start, start.AddDate(0, 0, 6))
	if err != nil {
		return nil, fmt.Errorf("fetching intervals: %w", err)
	}
	return Summarize(start, ivs, opts), nil
}

type span struct{ start, end int }

// mergeBusy merges one day's intervals into disjoint busy spans and
// returns the total double-booked minutes absorbed by the merge.
func mergeBusy(ivs []*interval.Interval) ([]span, int) {
	if len(ivs) == 0 {
		return nil, 0
	}

	spans := make([]span, 0, len(ivs))
	raw := 0
	for _, iv := range ivs {
		s, e := iv.StartMinutes(), iv.EndMinutes()
		if e <= s {
			continue
		}
		spans = append(spans, span{s, e})
		raw += e - s
	}
	sort.Slice(spans, func(i, j int) bool { return spans[i].start < spans[j].start })

	merged := spans[:0]
	for _, sp := range spans {
		if n := len(merged); n > 0 && sp.start <= merged[n-1].end {
			if sp.end > merged[n-1].end {
				merged[n-1].end = sp.end
			}
			continue
		}
		merged = append(merged, sp)
	}

	covered := 0
	for _, sp := range merged {
		covered += sp.end - sp.start
	}
	return merged, raw - covered
}

// freeWithin returns the minutes of [dayStart, dayEnd) not covered by busy.
func freeWithin(busy []span, dayStart, dayEnd int) int {
	free := dayEnd - dayStart
	for _, sp := range busy {
		s, e := sp.start, sp.end
		if s < dayStart {
			s = dayStart
		}
		if e > dayEnd {
			e = dayEnd
		}
		if e > s {
			free -= e - s
		}
	}
	if free < 0 {
		free = 0
	}
	return free
}
