package grid

import (
	"math"

	"github.com/newbeginning12/flashcal/internal/interval"
)

// SnapStep is the snap increment in minutes. Both the live drag preview
// and the commit path consult this one constant, so what the user sees
// is exactly what gets committed.
const SnapStep = 15

// Mapper converts between wall-clock time and vertical pixel offsets.
// RowHeight is pixels per 60 minutes; TopOffset is the fixed pixel
// offset of midnight. Both directions always recompute from the
// authoritative row height, never from a previously derived pixel value,
// so repeated zoom changes cannot accumulate drift.
type Mapper struct {
	RowHeight float64
	TopOffset float64
}

// TimeToPixel returns the pixel offset of the given minutes-since-midnight.
func (m Mapper) TimeToPixel(minutes int) float64 {
	return m.TopOffset + float64(minutes)/60.0*m.RowHeight
}

// PixelAtTime is TimeToPixel for fractional minutes, used for anchor math.
func (m Mapper) PixelAtTime(minutes float64) float64 {
	return m.TopOffset + minutes/60.0*m.RowHeight
}

// RawTimeAtPixel returns the unsnapped minutes-since-midnight at a pixel
// offset. The value is not clamped.
func (m Mapper) RawTimeAtPixel(y float64) float64 {
	if m.RowHeight == 0 {
		return 0
	}
	return (y - m.TopOffset) / m.RowHeight * 60.0
}

// PixelToTime returns the time at a pixel offset, snapped to the nearest
// SnapStep and clamped to [0, 1440).
func (m Mapper) PixelToTime(y float64) int {
	return SnapMinutes(m.RawTimeAtPixel(y))
}

// ContentHeight returns the pixel height of a full day at this row height.
func (m Mapper) ContentHeight() float64 {
	return float64(interval.MinutesPerDay) / 60.0 * m.RowHeight
}

// SnapMinutes rounds raw minutes to the nearest SnapStep and clamps the
// result to [0, 1440).
func SnapMinutes(raw float64) int {
	snapped := int(math.Round(raw/SnapStep)) * SnapStep
	if snapped < 0 {
		return 0
	}
	if snapped > interval.MinutesPerDay-SnapStep {
		return interval.MinutesPerDay - SnapStep
	}
	return snapped
}

// ClampStart clamps a snapped start minute so an interval of the given
// duration stays inside one day.
func ClampStart(start, duration int) int {
	if start < 0 {
		return 0
	}
	if latest := interval.MinutesPerDay - duration; start > latest {
		if latest < 0 {
			return 0
		}
		return latest
	}
	return start
}

// Tracks describes the horizontal day-track geometry of the grid: Left is
// the pixel offset of day 0, Width the pixel width of one day column and
// Count the number of day tracks.
type Tracks struct {
	Left  float64
	Width float64
	Count int
}

// DayAt returns the day track index at the given horizontal pixel,
// clamped to the valid range. Returns -1 when the geometry is empty.
func (t Tracks) DayAt(x float64) int {
	if t.Count <= 0 || t.Width <= 0 {
		return -1
	}
	day := int(math.Floor((x - t.Left) / t.Width))
	if day < 0 {
		return 0
	}
	if day >= t.Count {
		return t.Count - 1
	}
	return day
}

// DayLeft returns the left pixel edge of the given day track.
func (t Tracks) DayLeft(day int) float64 {
	return t.Left + float64(day)*t.Width
}

// Rect is a pixel rectangle in content coordinates (y is relative to
// TopOffset-origin content, not the scrolled viewport).
type Rect struct {
	X, Y, W, H float64
}

// RectFor computes the pixel rectangle of a positioned interval given the
// current mapper and track geometry. Side-by-side columns split the day
// track evenly among the cluster's tracks.
func RectFor(p Positioned, m Mapper, t Tracks, day int) Rect {
	top := m.TimeToPixel(p.StartMinutes())
	bottom := m.TimeToPixel(p.EndMinutes())

	cols := p.ColumnCount
	if cols < 1 {
		cols = 1
	}
	colWidth := t.Width / float64(cols)

	return Rect{
		X: t.DayLeft(day) + float64(p.Column)*colWidth,
		Y: top,
		W: colWidth,
		H: bottom - top,
	}
}

// Contains reports whether the point is inside the rectangle.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}
