package tui

import (
	"fmt"

	"github.com/newbeginning12/flashcal/internal/grid"
)

// Template is a tray entry the user can drag onto the grid to create a
// new interval with preset duration and color.
type Template struct {
	Title    string
	Duration int // minutes
	Color    string
	Tags     []string
}

// defaultTemplates is the built-in tray. Dragging one onto the grid goes
// through the same payload codec an external drop would use.
var defaultTemplates = []Template{
	{Title: "Focus", Duration: 60, Color: "blue", Tags: []string{"focus"}},
	{Title: "Meeting", Duration: 30, Color: "peach", Tags: []string{"meeting"}},
	{Title: "Break", Duration: 15, Color: "green"},
	{Title: "Errand", Duration: 45, Color: "yellow"},
}

// Payload returns the drag payload for this template.
func (t Template) Payload() grid.Payload {
	return grid.Payload{
		Kind:            grid.PayloadTemplate,
		DurationMinutes: t.Duration,
		Title:           t.Title,
		Color:           t.Color,
		Tags:            t.Tags,
	}
}

// Label returns the tray label, e.g. " 60m Focus ".
func (t Template) Label() string {
	return fmt.Sprintf(" %dm %s ", t.Duration, t.Title)
}

// trayZone is the horizontal extent of one rendered tray item.
type trayZone struct {
	start, end int // [start, end) in terminal columns
}

// trayZones lays the templates out left to right after the time gutter.
func trayZones(templates []Template) []trayZone {
	zones := make([]trayZone, len(templates))
	x := timeGutterWidth
	for i, t := range templates {
		w := len(t.Label())
		zones[i] = trayZone{start: x, end: x + w}
		x += w + 1
	}
	return zones
}

// trayHit returns the template index at column x, or -1.
func trayHit(templates []Template, x int) int {
	for i, z := range trayZones(templates) {
		if x >= z.start && x < z.end {
			return i
		}
	}
	return -1
}
