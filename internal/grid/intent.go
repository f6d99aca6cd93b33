package grid

import (
	"time"

	"github.com/newbeginning12/flashcal/internal/interval"
)

// Intent is a requested mutation emitted by the engine and applied by the
// host. The engine never mutates its own input set; it describes what the
// user asked for and leaves persistence to the caller.
type Intent interface {
	isIntent()
}

// CreateIntent requests creation of a new interval, typically from a
// template drop or the planner.
type CreateIntent struct {
	Day      time.Time
	Start    string // "HH:MM", already snapped
	Duration int    // minutes
	Title    string
	Color    string
	Tags     []string
}

// MoveIntent requests rescheduling an existing interval. Duration is
// unchanged; only day and start move.
type MoveIntent struct {
	ID    int64
	Day   time.Time
	Start string // "HH:MM", already snapped
}

// OpenIntent requests opening an interval's detail view (a click).
type OpenIntent struct {
	ID int64
}

// DeleteIntent requests removal of an interval.
type DeleteIntent struct {
	ID int64
}

// SetStatusIntent requests a status change on an interval.
type SetStatusIntent struct {
	ID     int64
	Status interval.Status
}

func (CreateIntent) isIntent()    {}
func (MoveIntent) isIntent()      {}
func (OpenIntent) isIntent()      {}
func (DeleteIntent) isIntent()    {}
func (SetStatusIntent) isIntent() {}
