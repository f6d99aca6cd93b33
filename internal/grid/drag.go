package grid

import "math"

// DragState is the interaction state machine's current state.
// Idle -> Armed -> (Dragging | clicked) -> Idle.
type DragState int

const (
	// StateIdle means no gesture is in progress.
	StateIdle DragState = iota
	// StateArmed means the pointer is pressed on an interval but has not
	// traveled far enough to count as a drag. Release from here is a click.
	StateArmed
	// StateDragging means the gesture crossed the travel threshold (or
	// entered from outside the grid) and a live preview is being tracked.
	StateDragging
)

// DefaultDragThreshold is the cumulative pointer travel, in pixels,
// below which a press-release resolves to a click instead of a drag.
const DefaultDragThreshold = 2.0

// Pointer is a pointer position in viewport coordinates.
type Pointer struct {
	X, Y float64
}

func (p Pointer) distanceTo(o Pointer) float64 {
	dx, dy := p.X-o.X, p.Y-o.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Geometry is the snapshot of grid geometry the drag controller needs to
// resolve pointer positions: the active mapper, the day track layout and
// the current vertical scroll offset.
type Geometry struct {
	Mapper Mapper
	Tracks Tracks
	Scroll float64
}

func (g Geometry) contentY(p Pointer) float64 {
	return p.Y + g.Scroll
}

// Session is the ephemeral state of one in-progress gesture. It is owned
// exclusively by the Controller, created on pointer-down (or grid-enter
// for external drags) and destroyed on release or cancel.
type Session struct {
	payload     Payload
	duration    int     // minutes carried through the drag
	grabOffsetY float64 // pointer offset from the grabbed box top, pixels
	origin      Pointer
	last        Pointer
	traveled    float64 // cumulative pointer travel
	committed   bool    // crossed the drag threshold
	external    bool    // entered from outside the grid

	targetDay   int // current snapped target day track
	targetStart int // current snapped target start, minutes
}

// Preview describes the live drag preview rectangle's logical position:
// the snapped day and start with the carried duration. The source
// interval is never mutated; this is presentation state only.
type Preview struct {
	Day      int
	Start    int // minutes, snapped
	Duration int // minutes, unchanged from the source
	Kind     string
	ID       int64
	Title    string
	Color    string
}

// Commit describes the mutation requested by a completed drag.
type Commit struct {
	Kind     string // PayloadMove or PayloadTemplate
	ID       int64  // set for moves
	Day      int    // day track index
	Start    int    // minutes, snapped
	Duration int    // minutes
	Title    string
	Color    string
	Tags     []string
}

// UpKind classifies the outcome of a pointer release.
type UpKind int

const (
	// UpNone means no session was active; nothing happens.
	UpNone UpKind = iota
	// UpClicked means the gesture stayed under the travel threshold.
	UpClicked
	// UpCommitted means a drag finished and a commit is requested.
	UpCommitted
)

// UpResult is what a pointer release resolved to.
type UpResult struct {
	Kind   UpKind
	ID     int64  // interval under the click, for UpClicked
	Commit Commit // requested mutation, for UpCommitted
}

// Controller runs the drag state machine. It is single-owner state:
// exactly one controller mutates one session, synchronously, inside the
// host's event cycle.
type Controller struct {
	threshold float64
	state     DragState
	session   *Session
}

// NewController creates a drag controller with the given travel
// threshold; zero or negative falls back to DefaultDragThreshold.
func NewController(threshold float64) *Controller {
	if threshold <= 0 {
		threshold = DefaultDragThreshold
	}
	return &Controller{threshold: threshold}
}

// State returns the current machine state.
func (c *Controller) State() DragState {
	return c.state
}

// Active reports whether a session is in progress.
func (c *Controller) Active() bool {
	return c.session != nil
}

// PointerDown arms a gesture on an existing interval. boxTop is the
// pixel Y of the grabbed interval's rectangle in content coordinates.
// A pointer-down while a session is already active is a host contract
// violation and is ignored.
func (c *Controller) PointerDown(g Geometry, p Pointer, id int64, boxTop float64, duration int) bool {
	if c.session != nil {
		return false
	}
	if duration <= 0 {
		return false
	}

	day := g.Tracks.DayAt(p.X)
	if day < 0 {
		return false
	}

	c.session = &Session{
		payload:     Payload{Kind: PayloadMove, IntervalID: id},
		duration:    duration,
		grabOffsetY: g.contentY(p) - boxTop,
		origin:      p,
		last:        p,
		targetDay:   day,
		targetStart: SnapMinutes(g.Mapper.RawTimeAtPixel(boxTop)),
	}
	c.state = StateArmed
	return true
}

// EnterExternal starts a drag from a payload entering the grid from
// outside (a template drag-in). There is no click detection: the session
// begins in Dragging immediately, carrying the payload's duration,
// title, color and tags. Invalid payloads and concurrent sessions are
// ignored.
func (c *Controller) EnterExternal(g Geometry, p Pointer, payload Payload) bool {
	if c.session != nil {
		return false
	}
	if !payload.Valid() || payload.Kind != PayloadTemplate {
		return false
	}

	day := g.Tracks.DayAt(p.X)
	if day < 0 {
		return false
	}

	c.session = &Session{
		payload:   payload,
		duration:  payload.DurationMinutes,
		origin:    p,
		last:      p,
		committed: true,
		external:  true,
	}
	c.state = StateDragging
	c.retarget(g, p)
	return true
}

// PointerMove advances the gesture. It accumulates travel, promotes
// Armed to Dragging past the threshold and recomputes the snapped
// target. Returns true when the live preview may have changed.
func (c *Controller) PointerMove(g Geometry, p Pointer) bool {
	s := c.session
	if s == nil {
		return false
	}

	s.traveled += p.distanceTo(s.last)
	s.last = p

	if c.state == StateArmed {
		if s.traveled < c.threshold {
			return false
		}
		s.committed = true
		c.state = StateDragging
	}

	c.retarget(g, p)
	return true
}

// retarget recomputes the snapped day/start target from the pointer.
// The target day is wherever the pointer is now; the original day is
// irrelevant once a new one is targeted.
func (c *Controller) retarget(g Geometry, p Pointer) {
	s := c.session
	s.targetDay = g.Tracks.DayAt(p.X)
	top := g.contentY(p) - s.grabOffsetY
	s.targetStart = ClampStart(SnapMinutes(g.Mapper.RawTimeAtPixel(top)), s.duration)
}

// Preview returns the current live preview, valid only while Dragging.
func (c *Controller) Preview() (Preview, bool) {
	s := c.session
	if s == nil || c.state != StateDragging {
		return Preview{}, false
	}
	return Preview{
		Day:      s.targetDay,
		Start:    s.targetStart,
		Duration: s.duration,
		Kind:     s.payload.Kind,
		ID:       s.payload.IntervalID,
		Title:    s.payload.Title,
		Color:    s.payload.Color,
	}, true
}

// PointerUp resolves the gesture: a click when the threshold was never
// crossed, otherwise a commit at the final snapped target. The session
// is destroyed either way and the machine returns to Idle.
func (c *Controller) PointerUp(g Geometry, p Pointer) UpResult {
	s := c.session
	if s == nil {
		return UpResult{Kind: UpNone}
	}

	defer c.reset()

	if !s.committed {
		return UpResult{Kind: UpClicked, ID: s.payload.IntervalID}
	}

	c.retarget(g, p)
	return UpResult{
		Kind: UpCommitted,
		Commit: Commit{
			Kind:     s.payload.Kind,
			ID:       s.payload.IntervalID,
			Day:      s.targetDay,
			Start:    s.targetStart,
			Duration: s.duration,
			Title:    s.payload.Title,
			Color:    s.payload.Color,
			Tags:     s.payload.Tags,
		},
	}
}

// Cancel discards the session without emitting anything: pointer left
// the viewport, or an explicit escape. Synchronous, no delayed cleanup.
func (c *Controller) Cancel() {
	c.reset()
}

// Abort is the host's teardown entry point for a session that will never
// complete (the hosting view is going away mid-drag). Same effect as
// Cancel; the engine never self-expires sessions on a timer.
func (c *Controller) Abort() {
	c.reset()
}

func (c *Controller) reset() {
	c.session = nil
	c.state = StateIdle
}
