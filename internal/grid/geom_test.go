package grid

import (
	"math"
	"testing"
)

// TestMapper_RoundTrip: for every row height in the zoom range and every
// 15-minute boundary, pixelToTime(timeToPixel(t)) must return t exactly.
func TestMapper_RoundTrip(t *testing.T) {
	for r := 1.0; r <= 16.0; r += 0.5 {
		m := Mapper{RowHeight: r, TopOffset: 2}
		for minutes := 0; minutes < 1440; minutes += SnapStep {
			y := m.TimeToPixel(minutes)
			got := m.PixelToTime(y)
			if got != minutes {
				t.Fatalf("R=%.1f: PixelToTime(TimeToPixel(%d)) = %d", r, minutes, got)
			}
		}
	}
}

// TestMapper_NoDriftAcrossRescales: converting through many different
// row heights must always recompute from scratch, never accumulate.
func TestMapper_NoDriftAcrossRescales(t *testing.T) {
	const minutes = 615 // 10:15
	heights := []float64{4, 7.3, 2.1, 12, 3.33, 4}
	for _, r := range heights {
		m := Mapper{RowHeight: r}
		if got := m.PixelToTime(m.TimeToPixel(minutes)); got != minutes {
			t.Errorf("R=%.2f: round trip = %d, want %d", r, got, minutes)
		}
	}
}

func TestSnapMinutes(t *testing.T) {
	tests := []struct {
		raw  float64
		want int
	}{
		{0, 0},
		{7, 0},
		{8, 15},
		{37, 30},
		{38, 45},
		{877, 870},  // 14:37 -> 14:30
		{885, 885},  // already on boundary
		{-20, 0},    // clamped low
		{1439, 1425},
		{2000, 1425}, // clamped high
	}
	for _, tt := range tests {
		if got := SnapMinutes(tt.raw); got != tt.want {
			t.Errorf("SnapMinutes(%.0f) = %d, want %d", tt.raw, got, tt.want)
		}
	}
}

func TestClampStart(t *testing.T) {
	tests := []struct {
		start, duration, want int
	}{
		{480, 60, 480},
		{-15, 60, 0},
		{1425, 60, 1380},
		{1380, 60, 1380},
		{0, 1440, 0},
	}
	for _, tt := range tests {
		if got := ClampStart(tt.start, tt.duration); got != tt.want {
			t.Errorf("ClampStart(%d, %d) = %d, want %d", tt.start, tt.duration, got, tt.want)
		}
	}
}

func TestTracks_DayAt(t *testing.T) {
	tr := Tracks{Left: 6, Width: 10, Count: 7}

	tests := []struct {
		x    float64
		want int
	}{
		{6, 0},
		{15.9, 0},
		{16, 1},
		{75, 6},
		{0, 0},   // left of the gutter clamps to day 0
		{999, 6}, // past the last track clamps to day 6
	}
	for _, tt := range tests {
		if got := tr.DayAt(tt.x); got != tt.want {
			t.Errorf("DayAt(%.1f) = %d, want %d", tt.x, got, tt.want)
		}
	}
}

func TestTracks_DayAtEmptyGeometry(t *testing.T) {
	tr := Tracks{}
	if got := tr.DayAt(10); got != -1 {
		t.Errorf("DayAt on empty geometry = %d, want -1", got)
	}
}

func TestRectFor_SplitsClusterWidth(t *testing.T) {
	m := Mapper{RowHeight: 60} // 1px per minute
	tr := Tracks{Left: 0, Width: 30, Count: 7}

	p := Positioned{Interval: mk(0, "09:00", "10:00"), Column: 1, ColumnCount: 3}
	r := RectFor(p, m, tr, 2)

	if got, want := r.X, 70.0; math.Abs(got-want) > 1e-9 {
		t.Errorf("X = %.2f, want %.2f", got, want)
	}
	if got, want := r.W, 10.0; math.Abs(got-want) > 1e-9 {
		t.Errorf("W = %.2f, want %.2f", got, want)
	}
	if got, want := r.Y, 540.0; math.Abs(got-want) > 1e-9 {
		t.Errorf("Y = %.2f, want %.2f", got, want)
	}
	if got, want := r.H, 60.0; math.Abs(got-want) > 1e-9 {
		t.Errorf("H = %.2f, want %.2f", got, want)
	}
}
