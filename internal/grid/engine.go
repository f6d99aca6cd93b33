package grid

import (
	"time"

	"github.com/newbeginning12/flashcal/internal/interval"
)

// DaysPerWeek is the number of day tracks on the grid.
const DaysPerWeek = 7

// Config holds engine construction parameters. Zoom bounds and the
// initial row height come from the host's persisted preference.
type Config struct {
	WeekStart time.Time // Monday of the visible week

	MinRowHeight     float64
	MaxRowHeight     float64
	DefaultRowHeight float64
	RowHeight        float64 // initial; zero means DefaultRowHeight

	TopOffset     float64 // pixel offset of midnight
	TimeGutter    float64 // pixel width of the hour label gutter
	DragThreshold float64 // zero means DefaultDragThreshold
}

// Engine is the calendar engine facade. It holds one week of validated
// intervals, their per-day layouts, the live drag and zoom state, and a
// queue of emitted intents for the host to drain. All methods run
// synchronously inside the host's event cycle; the engine has exactly
// one owner and no background work.
type Engine struct {
	weekStart time.Time
	days      [DaysPerWeek][]*interval.Interval
	layouts   [DaysPerWeek][]Positioned
	dropped   int // invalid intervals rejected by the last SetIntervals

	mapper Mapper
	zoom   *ZoomController
	drag   *Controller
	vp     Viewport
	gutter float64

	intents []Intent
}

// New creates an engine for the given week.
func New(cfg Config) *Engine {
	initial := cfg.RowHeight
	if initial == 0 {
		initial = cfg.DefaultRowHeight
	}
	zoom := NewZoomController(cfg.MinRowHeight, cfg.MaxRowHeight, cfg.DefaultRowHeight, initial)

	return &Engine{
		weekStart: interval.TruncateDay(cfg.WeekStart),
		mapper:    Mapper{RowHeight: zoom.RowHeight(), TopOffset: cfg.TopOffset},
		zoom:      zoom,
		drag:      NewController(cfg.DragThreshold),
		gutter:    cfg.TimeGutter,
	}
}

// SetWeek changes the visible week. The interval set must be re-supplied
// by the host afterwards; any in-flight drag is aborted.
func (e *Engine) SetWeek(weekStart time.Time) {
	e.weekStart = interval.TruncateDay(weekStart)
	e.drag.Abort()
	for d := range e.days {
		e.days[d] = nil
		e.layouts[d] = nil
	}
}

// WeekStart returns the Monday of the visible week.
func (e *Engine) WeekStart() time.Time {
	return e.weekStart
}

// DayDate returns the date of the given day track.
func (e *Engine) DayDate(day int) time.Time {
	return e.weekStart.AddDate(0, 0, day)
}

// dayIndex returns the track index for a date, or -1 outside the week.
func (e *Engine) dayIndex(day time.Time) int {
	d := interval.TruncateDay(day)
	days := int(d.Sub(e.weekStart).Hours() / 24)
	if days < 0 || days >= DaysPerWeek {
		return -1
	}
	return days
}

// SetIntervals replaces the engine's input set with the week's intervals
// and recomputes every day's layout. Malformed intervals (end before
// start, bad time format) and intervals outside the visible week are
// dropped; the rest lay out normally. The engine never mutates the
// intervals it is given.
func (e *Engine) SetIntervals(ivs []*interval.Interval) {
	for d := range e.days {
		e.days[d] = nil
	}
	e.dropped = 0

	for _, iv := range ivs {
		if iv == nil {
			continue
		}
		if err := iv.Validate(); err != nil {
			e.dropped++
			continue
		}
		d := e.dayIndex(iv.Day)
		if d < 0 {
			continue
		}
		e.days[d] = append(e.days[d], iv)
	}

	for d := range e.days {
		e.layouts[d] = Resolve(e.days[d])
	}
}

// Dropped returns how many intervals the last SetIntervals rejected.
func (e *Engine) Dropped() int {
	return e.dropped
}

// Layout returns the positioned intervals for a day track.
func (e *Engine) Layout(day int) []Positioned {
	if day < 0 || day >= DaysPerWeek {
		return nil
	}
	return e.layouts[day]
}

// Find returns the interval with the given ID, or nil.
func (e *Engine) Find(id int64) *interval.Interval {
	for d := range e.days {
		for _, iv := range e.days[d] {
			if iv.ID == id {
				return iv
			}
		}
	}
	return nil
}

// SetViewport updates the visible dimensions.
func (e *Engine) SetViewport(width, height float64) {
	e.vp.Width = width
	e.vp.Height = height
	e.vp.Scroll = clampScroll(e.vp.Scroll, e.mapper, e.vp)
}

// Viewport returns the current viewport metrics.
func (e *Engine) Viewport() Viewport {
	return e.vp
}

// Scroll returns the vertical scroll offset.
func (e *Engine) Scroll() float64 {
	return e.vp.Scroll
}

// SetScroll sets the vertical scroll offset, clamped to the content.
func (e *Engine) SetScroll(offset float64) {
	e.vp.Scroll = clampScroll(offset, e.mapper, e.vp)
}

// ScrollBy adjusts the scroll offset by a delta, clamped.
func (e *Engine) ScrollBy(delta float64) {
	e.SetScroll(e.vp.Scroll + delta)
}

// ScrollToTime scrolls so the given minute sits at the viewport top.
func (e *Engine) ScrollToTime(minutes int) {
	e.SetScroll(e.mapper.TimeToPixel(minutes) - e.mapper.TopOffset)
}

// Mapper returns the active coordinate mapper.
func (e *Engine) Mapper() Mapper {
	return e.mapper
}

// RowHeight returns the current row height; the host persists this on
// every committed zoom change.
func (e *Engine) RowHeight() float64 {
	return e.zoom.RowHeight()
}

// Tracks returns the current day-track geometry.
func (e *Engine) Tracks() Tracks {
	w := e.vp.Width - e.gutter
	if w < 0 {
		w = 0
	}
	return Tracks{
		Left:  e.gutter,
		Width: w / DaysPerWeek,
		Count: DaysPerWeek,
	}
}

func (e *Engine) geometry() Geometry {
	return Geometry{Mapper: e.mapper, Tracks: e.Tracks(), Scroll: e.vp.Scroll}
}

// RectOf returns the pixel rectangle of a positioned interval on a day,
// in content coordinates.
func (e *Engine) RectOf(p Positioned, day int) Rect {
	return RectFor(p, e.mapper, e.Tracks(), day)
}

// HitTest returns the positioned interval under a viewport point.
func (e *Engine) HitTest(x, y float64) (Positioned, int, bool) {
	day := e.Tracks().DayAt(x)
	if day < 0 {
		return Positioned{}, -1, false
	}
	contentY := y + e.vp.Scroll
	for _, p := range e.layouts[day] {
		if e.RectOf(p, day).Contains(x, contentY) {
			return p, day, true
		}
	}
	return Positioned{}, day, false
}

// ============================================================================
// Pointer protocol
// ============================================================================

// PointerDown begins a gesture. On an interval it arms a potential drag
// or click; on empty grid it does nothing. A second pointer-down while a
// session is active is ignored.
func (e *Engine) PointerDown(x, y float64) bool {
	p, day, ok := e.HitTest(x, y)
	if !ok {
		return false
	}
	rect := e.RectOf(p, day)
	return e.drag.PointerDown(e.geometry(), Pointer{X: x, Y: y}, p.ID, rect.Y, p.Duration())
}

// PointerMove advances an in-progress gesture. Returns true when the
// preview may have changed and a repaint is needed.
func (e *Engine) PointerMove(x, y float64) bool {
	return e.drag.PointerMove(e.geometry(), Pointer{X: x, Y: y})
}

// PointerUp finishes a gesture and emits the resulting intent: Open on a
// click, Move or Create on a completed drag.
func (e *Engine) PointerUp(x, y float64) {
	res := e.drag.PointerUp(e.geometry(), Pointer{X: x, Y: y})
	switch res.Kind {
	case UpClicked:
		e.emit(OpenIntent{ID: res.ID})
	case UpCommitted:
		e.emitCommit(res.Commit)
	}
}

// EnterExternal starts an external-origin drag from a drop payload that
// may carry a structured and/or plain-text encoding. Ambiguous payloads
// are ignored: no session, no intent.
func (e *Engine) EnterExternal(x, y float64, structured, plain string) bool {
	payload, ok := DecodePayload(structured, plain)
	if !ok {
		return false
	}
	return e.drag.EnterExternal(e.geometry(), Pointer{X: x, Y: y}, payload)
}

// BeginTemplate starts a template drag with an already-decoded payload
// (the in-process template tray).
func (e *Engine) BeginTemplate(x, y float64, payload Payload) bool {
	return e.drag.EnterExternal(e.geometry(), Pointer{X: x, Y: y}, payload)
}

// DragState returns the drag machine's current state.
func (e *Engine) DragState() DragState {
	return e.drag.State()
}

// DragPreview returns the live preview while dragging.
func (e *Engine) DragPreview() (Preview, bool) {
	return e.drag.Preview()
}

// CancelDrag discards the active session without emitting an intent.
func (e *Engine) CancelDrag() {
	e.drag.Cancel()
}

// Abort is the host's teardown entry point: any in-flight session is
// discarded immediately.
func (e *Engine) Abort() {
	e.drag.Abort()
}

func (e *Engine) emitCommit(c Commit) {
	day := e.DayDate(c.Day)
	start := interval.MinutesToTime(c.Start)

	switch c.Kind {
	case PayloadMove:
		e.emit(MoveIntent{ID: c.ID, Day: day, Start: start})
	case PayloadTemplate:
		e.emit(CreateIntent{
			Day:      day,
			Start:    start,
			Duration: c.Duration,
			Title:    c.Title,
			Color:    c.Color,
			Tags:     c.Tags,
		})
	}
}

// ============================================================================
// Zoom
// ============================================================================

// ZoomTo sets the row height, keeping the time under anchorPixel (a
// viewport offset; negative means viewport center) visually fixed. The
// new scroll offset is applied before the caller's next paint.
func (e *Engine) ZoomTo(rowHeight, anchorPixel float64) {
	e.mapper, e.vp.Scroll = e.zoom.Rescale(e.mapper, rowHeight, e.vp, anchorPixel)
}

// ZoomBy scales the row height by a factor, anchored like ZoomTo.
func (e *Engine) ZoomBy(factor, anchorPixel float64) {
	e.mapper, e.vp.Scroll = e.zoom.RescaleBy(e.mapper, factor, e.vp, anchorPixel)
}

// ResetZoom returns to the default row height, anchored at the viewport
// center.
func (e *Engine) ResetZoom() {
	e.mapper, e.vp.Scroll = e.zoom.Reset(e.mapper, e.vp)
}

// ============================================================================
// Non-pointer intents
// ============================================================================

// RequestOpen emits an Open intent for an interval (keyboard path).
func (e *Engine) RequestOpen(id int64) {
	if e.Find(id) == nil {
		return
	}
	e.emit(OpenIntent{ID: id})
}

// RequestDelete emits a Delete intent for an interval.
func (e *Engine) RequestDelete(id int64) {
	if e.Find(id) == nil {
		return
	}
	e.emit(DeleteIntent{ID: id})
}

// RequestStatus emits a SetStatus intent for an interval.
func (e *Engine) RequestStatus(id int64, status interval.Status) {
	if e.Find(id) == nil || !status.Valid() {
		return
	}
	e.emit(SetStatusIntent{ID: id, Status: status})
}

func (e *Engine) emit(it Intent) {
	e.intents = append(e.intents, it)
}

// Intents drains and returns the queued intents in emission order.
func (e *Engine) Intents() []Intent {
	out := e.intents
	e.intents = nil
	return out
}
