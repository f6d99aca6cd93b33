package interval

import (
	"context"
	"time"
)

// Repository defines the storage interface for intervals.
// The grid engine never touches storage; the host shell translates engine
// intents into these calls and re-supplies the updated interval set.
type Repository interface {
	// CreateInterval adds a new interval to the repository.
	CreateInterval(ctx context.Context, iv *Interval) error

	// CreateIntervals adds multiple intervals in a batch.
	CreateIntervals(ctx context.Context, ivs []*Interval) error

	// GetInterval retrieves an interval by ID. Returns nil if not found.
	GetInterval(ctx context.Context, id int64) (*Interval, error)

	// ListIntervalsByDateRange returns all intervals scheduled within the
	// date range (inclusive), ordered by day and start time.
	ListIntervalsByDateRange(ctx context.Context, start, end time.Time) ([]*Interval, error)

	// MoveInterval reschedules an interval to a new day and start time,
	// preserving its duration.
	MoveInterval(ctx context.Context, id int64, newDay time.Time, newStart string) error

	// SetStatus updates an interval's status.
	SetStatus(ctx context.Context, id int64, status Status) error

	// UpdateInterval updates an interval's title, notes, color and tags.
	UpdateInterval(ctx context.Context, iv *Interval) error

	// DeleteInterval removes an interval.
	DeleteInterval(ctx context.Context, id int64) error

	// Close releases any resources held by the repository.
	Close() error
}
