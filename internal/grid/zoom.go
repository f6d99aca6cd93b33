package grid

// Viewport describes the visible portion of the grid: pixel dimensions
// and the current vertical scroll offset.
type Viewport struct {
	Width  float64
	Height float64
	Scroll float64
}

// ZoomController changes the row height within clamped bounds while
// keeping a chosen anchor time visually pinned. It owns only
// presentation state; interval data is never touched by a zoom.
type ZoomController struct {
	Min     float64
	Max     float64
	Default float64

	rowHeight float64
}

// NewZoomController creates a controller at the given initial row
// height, clamped into [min, max].
func NewZoomController(min, max, def, initial float64) *ZoomController {
	z := &ZoomController{Min: min, Max: max, Default: def}
	z.rowHeight = z.clamp(initial)
	return z
}

// RowHeight returns the current row height (pixels per 60 minutes).
func (z *ZoomController) RowHeight() float64 {
	return z.rowHeight
}

func (z *ZoomController) clamp(r float64) float64 {
	if r < z.Min {
		return z.Min
	}
	if r > z.Max {
		return z.Max
	}
	return r
}

// Rescale changes the row height to newR (clamped, never an error) and
// returns the scroll offset that keeps the time under anchorPixel
// visually fixed. anchorPixel is measured within the viewport; a
// negative value means "no explicit anchor" and defaults to the
// viewport's vertical center. The caller must apply the returned scroll
// before the next paint.
//
// The anchor time is computed under the old row height, unsnapped, so
// repeated rescales cannot drift: both directions always recompute from
// the authoritative row height.
func (z *ZoomController) Rescale(m Mapper, newR float64, vp Viewport, anchorPixel float64) (Mapper, float64) {
	if anchorPixel < 0 {
		anchorPixel = vp.Height / 2
	}

	anchorTime := m.RawTimeAtPixel(vp.Scroll + anchorPixel)

	z.rowHeight = z.clamp(newR)
	next := Mapper{RowHeight: z.rowHeight, TopOffset: m.TopOffset}

	scroll := next.PixelAtTime(anchorTime) - anchorPixel
	return next, clampScroll(scroll, next, vp)
}

// RescaleBy scales the current row height by a factor, anchored like
// Rescale.
func (z *ZoomController) RescaleBy(m Mapper, factor float64, vp Viewport, anchorPixel float64) (Mapper, float64) {
	return z.Rescale(m, z.rowHeight*factor, vp, anchorPixel)
}

// Reset returns to the default row height, anchored at the viewport
// center.
func (z *ZoomController) Reset(m Mapper, vp Viewport) (Mapper, float64) {
	return z.Rescale(m, z.Default, vp, -1)
}

// clampScroll keeps the scroll offset within the day's content.
func clampScroll(scroll float64, m Mapper, vp Viewport) float64 {
	maxScroll := m.TopOffset + m.ContentHeight() - vp.Height
	if maxScroll < 0 {
		maxScroll = 0
	}
	if scroll > maxScroll {
		scroll = maxScroll
	}
	if scroll < 0 {
		scroll = 0
	}
	return scroll
}
