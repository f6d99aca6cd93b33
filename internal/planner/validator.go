// Package planner provides high-level natural language planning
// orchestration. It coordinates the LLM and the repository to turn a
// prompt into calendar intervals; both the CLI and the TUI use it.
package planner

import (
	"fmt"
	"time"

	"github.com/newbeginning12/flashcal/internal/interval"
	"github.com/newbeginning12/flashcal/internal/llm"
)

// ValidationError represents a single validation error for a planned interval.
type ValidationError struct {
	Index   int    // Index of the interval in the response
	Field   string // Field name: "day", "start", "end"
	Message string // Human-readable error message
}

// String returns a formatted error message.
func (e ValidationError) String() string {
	return fmt.Sprintf("Interval %d: %s - %s", e.Index, e.Field, e.Message)
}

// ValidationResult contains the result of validating an LLM response.
// Overlaps with existing intervals are reported as warnings, not errors:
// the calendar renders overlapping intervals side by side.
type ValidationResult struct {
	Valid    bool
	Errors   []ValidationError
	Warnings []string
}

// FormatErrors returns a formatted string of all validation errors for LLM feedback.
func (r ValidationResult) FormatErrors() string {
	if len(r.Errors) == 0 {
		return ""
	}

	result := "Your response had these errors:\n"
	for _, e := range r.Errors {
		result += fmt.Sprintf("- %s\n", e.String())
	}
	result += "\nPlease correct these issues and respond again with valid JSON."
	return result
}

// Validator validates LLM planning responses against calendar constraints.
type Validator struct {
	now      time.Time
	existing []*interval.Interval
}

// NewValidator creates a new Validator.
func NewValidator(now time.Time, existing []*interval.Interval) *Validator {
	return &Validator{now: now, existing: existing}
}

// Validate checks the planned intervals. It validates:
// - Day format (YYYY-MM-DD)
// - Time format (HH:MM) with end > start
// - Start time not in the past (for today's intervals)
// Overlaps with existing intervals produce warnings only.
func (v *Validator) Validate(planned []llm.PlannedInterval) ValidationResult {
	result := ValidationResult{Valid: true}

	for i, pi := range planned {
		day, dayErr := time.Parse("2006-01-02", pi.Day)
		if dayErr != nil {
			result.Errors = append(result.Errors, ValidationError{
				Index:   i,
				Field:   "day",
				Message: fmt.Sprintf("'%s' is invalid (must be YYYY-MM-DD format)", pi.Day),
			})
		}

		startOK := isValidTime(pi.Start)
		if !startOK {
			result.Errors = append(result.Errors, ValidationError{
				Index:   i,
				Field:   "start",
				Message: fmt.Sprintf("'%s' is invalid (must be HH:MM format, 00:00-23:59)", pi.Start),
			})
		}
		endOK := isValidTime(pi.End)
		if !endOK {
			result.Errors = append(result.Errors, ValidationError{
				Index:   i,
				Field:   "end",
				Message: fmt.Sprintf("'%s' is invalid (must be HH:MM format, 00:00-23:59)", pi.End),
			})
		}

		if startOK && endOK && pi.End <= pi.Start {
			result.Errors = append(result.Errors, ValidationError{
				Index:   i,
				Field:   "end",
				Message: fmt.Sprintf("end time '%s' must be after start time '%s'", pi.End, pi.Start),
			})
		}

		if dayErr == nil && startOK && v.isInPast(day, pi.Start) {
			result.Errors = append(result.Errors, ValidationError{
				Index:   i,
				Field:   "start",
				Message: fmt.Sprintf("start time '%s' on '%s' is in the past", pi.Start, pi.Day),
			})
		}

		if dayErr == nil && startOK && endOK && pi.End > pi.Start {
			v.warnOverlaps(&result, day, pi)
		}
	}

	result.Valid = len(result.Errors) == 0
	return result
}

func isValidTime(s string) bool {
	if len(s) != 5 {
		return false
	}
	_, err := time.Parse("15:04", s)
	return err == nil
}

// isInPast checks if a given day and time is before the current time.
// Only today's intervals can be in the past.
func (v *Validator) isInPast(day time.Time, timeStr string) bool {
	today := interval.TruncateDay(v.now)
	target := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, v.now.Location())
	if !target.Equal(today) {
		return false
	}

	t, err := time.Parse("15:04", timeStr)
	if err != nil {
		return false
	}

	at := time.Date(v.now.Year(), v.now.Month(), v.now.Day(),
		t.Hour(), t.Minute(), 0, 0, v.now.Location())
	return at.Before(v.now)
}

func (v *Validator) warnOverlaps(result *ValidationResult, day time.Time, pi llm.PlannedInterval) {
	target := interval.TruncateDay(day)
	for _, ex := range v.existing {
		if !interval.TruncateDay(ex.Day).Equal(target) {
			continue
		}
		if interval.TimesOverlap(pi.Start, pi.End, ex.Start, ex.End) {
			result.Warnings = append(result.Warnings, fmt.Sprintf(
				"%q (%s %s-%s) overlaps existing %q (%s-%s)",
				pi.Title, pi.Day, pi.Start, pi.End, ex.Title, ex.Start, ex.End))
		}
	}
}
