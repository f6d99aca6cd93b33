// Package interval defines the core domain types for flashcal.
package interval

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Validation errors.
var (
	ErrEmptyTitle        = errors.New("title cannot be empty")
	ErrInvalidTimeFormat = errors.New("time must be in HH:MM format")
	ErrEndBeforeStart    = errors.New("end time must be after start time")
	ErrInvalidStatus     = errors.New("status must be 'pending', 'active' or 'done'")
)

// Domain errors.
var (
	ErrIntervalNotFound = errors.New("interval not found")
)

// Status represents the state of an interval.
type Status string

const (
	StatusPending Status = "pending"
	StatusActive  Status = "active"
	StatusDone    Status = "done"
)

// Valid returns true if the status is a valid value.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusActive, StatusDone:
		return true
	default:
		return false
	}
}

// Next cycles to the following status: pending -> active -> done -> pending.
func (s Status) Next() Status {
	switch s {
	case StatusPending:
		return StatusActive
	case StatusActive:
		return StatusDone
	default:
		return StatusPending
	}
}

// Interval represents a time-boxed plan on the calendar.
// Start and End are "HH:MM" strings on the same calendar day;
// an interval never spans midnight. End may be "24:00" for an
// interval running to the very end of the day.
type Interval struct {
	ID        int64
	Title     string
	Day       time.Time // Calendar day, time part zeroed
	Start     string    // "HH:MM"
	End       string    // "HH:MM"
	Status    Status
	ColorTag  string   // Opaque label, rendering only
	Tags      []string // Display-only payload
	Notes     string   // Display-only payload
	CreatedAt time.Time
}

// New creates a new Interval with validation.
// day is truncated to midnight in its location.
// start and end must be in HH:MM format with end after start.
func New(title string, day time.Time, start, end string) (*Interval, error) {
	if strings.TrimSpace(title) == "" {
		return nil, ErrEmptyTitle
	}

	if err := validateTimeFormat(start); err != nil {
		return nil, fmt.Errorf("start time: %w", err)
	}
	if err := validateTimeFormat(end); err != nil {
		return nil, fmt.Errorf("end time: %w", err)
	}
	if end <= start {
		return nil, ErrEndBeforeStart
	}

	return &Interval{
		Title:     title,
		Day:       TruncateDay(day),
		Start:     start,
		End:       end,
		Status:    StatusPending,
		CreatedAt: time.Now(),
	}, nil
}

func validateTimeFormat(s string) error {
	// "24:00" is the exclusive end of day; only End reaches it, since any
	// Start of "24:00" fails the End > Start check.
	if s == "24:00" {
		return nil
	}
	if len(s) != 5 {
		return ErrInvalidTimeFormat
	}
	if _, err := time.Parse("15:04", s); err != nil {
		return ErrInvalidTimeFormat
	}
	return nil
}

// Validate reports whether an existing interval is well formed.
// Used at the engine boundary to drop malformed rows without failing
// the whole layout pass.
func (iv *Interval) Validate() error {
	if strings.TrimSpace(iv.Title) == "" {
		return ErrEmptyTitle
	}
	if err := validateTimeFormat(iv.Start); err != nil {
		return fmt.Errorf("start time: %w", err)
	}
	if err := validateTimeFormat(iv.End); err != nil {
		return fmt.Errorf("end time: %w", err)
	}
	if iv.End <= iv.Start {
		return ErrEndBeforeStart
	}
	if !iv.Status.Valid() {
		return ErrInvalidStatus
	}
	return nil
}

// StartMinutes returns the start time as minutes since midnight.
func (iv *Interval) StartMinutes() int {
	return TimeToMinutes(iv.Start)
}

// EndMinutes returns the end time as minutes since midnight.
func (iv *Interval) EndMinutes() int {
	return TimeToMinutes(iv.End)
}

// Duration returns the interval duration in minutes.
func (iv *Interval) Duration() int {
	return iv.EndMinutes() - iv.StartMinutes()
}

// OverlapsWith returns true if this interval overlaps with another on the
// same day. Touching endpoints do not overlap.
func (iv *Interval) OverlapsWith(other *Interval) bool {
	if other == nil {
		return false
	}
	if !iv.Day.Equal(other.Day) {
		return false
	}
	return TimesOverlap(iv.Start, iv.End, other.Start, other.End)
}

// TruncateDay returns the date with the time part zeroed in its location.
func TruncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// StartOfWeek returns the Monday of the week containing t, at midnight.
func StartOfWeek(t time.Time) time.Time {
	weekday := int(t.Weekday())
	if weekday == 0 {
		weekday = 7 // Sunday
	}
	return TruncateDay(t.AddDate(0, 0, -(weekday - 1)))
}
