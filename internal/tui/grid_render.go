package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/newbeginning12/flashcal/internal/grid"
	"github.com/newbeginning12/flashcal/internal/interval"
)

// paintCell is one terminal cell of the grid being composed.
type paintCell struct {
	ch    rune
	style *lipgloss.Style
}

// trackBounds returns the integer left edges of the 7 day columns plus
// the right edge of the last one. Rendering and hit testing both derive
// from the engine's float track geometry, so they cannot disagree by
// more than the rounding of one cell.
func trackBounds(t grid.Tracks) [grid.DaysPerWeek + 1]int {
	var bounds [grid.DaysPerWeek + 1]int
	for i := 0; i <= grid.DaysPerWeek; i++ {
		bounds[i] = int(math.Floor(t.DayLeft(i)))
	}
	return bounds
}

// renderGridLines paints the scrolled grid viewport: hour-banded day
// columns, interval blocks split into overlap tracks, the live drag
// preview, and the hour gutter.
func (m Model) renderGridLines() []string {
	height := m.gridHeight()
	if height <= 0 || m.width <= timeGutterWidth {
		return nil
	}

	mapper := m.engine.Mapper()
	tracks := m.engine.Tracks()
	bounds := trackBounds(tracks)
	scroll := m.engine.Scroll()
	preview, hasPreview := m.engine.DragPreview()

	lines := make([]string, height)
	for vy := 0; vy < height; vy++ {
		contentY := scroll + float64(vy)
		cells := make([]paintCell, m.width)

		m.paintBackground(cells, mapper, contentY)
		for day := 0; day < grid.DaysPerWeek; day++ {
			m.paintDay(cells, day, bounds, contentY)
		}
		if hasPreview {
			m.paintPreview(cells, preview, bounds, mapper, contentY)
		}
		m.paintGutter(cells, mapper, contentY)

		lines[vy] = flushCells(cells)
	}
	return lines
}

// paintBackground fills a line with the hour band for its time of day.
func (m Model) paintBackground(cells []paintCell, mapper grid.Mapper, contentY float64) {
	minutes := mapper.RawTimeAtPixel(contentY)
	style := &m.styles.EmptyCellStyle
	if int(minutes/60)%2 == 1 {
		style = &m.styles.EmptyCellAltStyle
	}
	for x := range cells {
		cells[x] = paintCell{ch: ' ', style: style}
	}
}

// paintDay paints the interval blocks of one day column crossing this line.
func (m Model) paintDay(cells []paintCell, day int, bounds [grid.DaysPerWeek + 1]int, contentY float64) {
	for _, p := range m.engine.Layout(day) {
		rect := m.engine.RectOf(p, day)
		if contentY < rect.Y || contentY >= rect.Y+rect.H {
			continue
		}

		segStart, segEnd := blockSpan(rect, bounds, day)
		if segEnd <= segStart {
			continue
		}

		style := m.styles.BlockStyle(p.ColorTag, p.Status, p.ID == m.selected)
		label := ""
		if contentY < rect.Y+1 {
			label = fmt.Sprintf("%s %s", p.Start, p.Title)
		} else if contentY < rect.Y+2 {
			label = p.End
		}
		paintSpan(cells, segStart, segEnd, label, &style)
	}
}

// paintPreview paints the drag ghost across its target day track.
func (m Model) paintPreview(cells []paintCell, p grid.Preview, bounds [grid.DaysPerWeek + 1]int, mapper grid.Mapper, contentY float64) {
	top := mapper.TimeToPixel(p.Start)
	bottom := mapper.TimeToPixel(p.Start + p.Duration)
	if contentY < top || contentY >= bottom {
		return
	}
	if p.Day < 0 || p.Day >= grid.DaysPerWeek {
		return
	}

	label := ""
	if contentY < top+1 {
		title := p.Title
		if title == "" {
			if iv := m.engine.Find(p.ID); iv != nil {
				title = iv.Title
			}
		}
		label = fmt.Sprintf("%s %s", interval.MinutesToTime(p.Start), title)
	}
	paintSpan(cells, bounds[p.Day], bounds[p.Day+1], label, &m.styles.PreviewStyle)
}

// paintGutter paints the hour label column on hour boundaries.
func (m Model) paintGutter(cells []paintCell, mapper grid.Mapper, contentY float64) {
	label := strings.Repeat(" ", timeGutterWidth)
	hour := hourLabelAt(mapper, contentY)
	if hour >= 0 {
		label = fmt.Sprintf("%02d:00 ", hour)
	}
	paintSpan(cells, 0, timeGutterWidth, label, &m.styles.TimeColumnStyle)
}

// hourLabelAt returns the hour whose top pixel falls on this line, or -1.
func hourLabelAt(mapper grid.Mapper, contentY float64) int {
	for h := 0; h < 24; h++ {
		top := mapper.TimeToPixel(h * 60)
		if top >= contentY && top < contentY+1 {
			return h
		}
	}
	return -1
}

// blockSpan converts a block rectangle into integer cell columns inside
// its day track.
func blockSpan(rect grid.Rect, bounds [grid.DaysPerWeek + 1]int, day int) (int, int) {
	segStart := int(math.Floor(rect.X))
	segEnd := int(math.Floor(rect.X + rect.W))
	if segStart < bounds[day] {
		segStart = bounds[day]
	}
	if segEnd > bounds[day+1] {
		segEnd = bounds[day+1]
	}
	return segStart, segEnd
}

// paintSpan fills [start, end) with a style, writing label into the
// leading cells (truncated to the span).
func paintSpan(cells []paintCell, start, end int, label string, style *lipgloss.Style) {
	if start < 0 {
		start = 0
	}
	if end > len(cells) {
		end = len(cells)
	}
	runes := []rune(label)
	for x := start; x < end; x++ {
		ch := ' '
		if i := x - start; i < len(runes) {
			ch = runes[i]
		}
		cells[x] = paintCell{ch: ch, style: style}
	}
}

// flushCells joins a painted line into a styled string, batching
// consecutive cells that share a style into one render call.
func flushCells(cells []paintCell) string {
	var b strings.Builder
	var run []rune
	var current *lipgloss.Style

	flush := func() {
		if len(run) == 0 {
			return
		}
		if current != nil {
			b.WriteString(current.Render(string(run)))
		} else {
			b.WriteString(string(run))
		}
		run = run[:0]
	}

	for _, c := range cells {
		if c.style != current {
			flush()
			current = c.style
		}
		run = append(run, c.ch)
	}
	flush()
	return b.String()
}
