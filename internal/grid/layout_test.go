package grid

import (
	"math/rand"
	"testing"
	"time"

	"github.com/newbeginning12/flashcal/internal/interval"
)

var testDay = time.Date(2030, 1, 7, 0, 0, 0, 0, time.UTC) // a Monday

// mk creates a valid interval for layout tests.
func mk(id int64, start, end string) *interval.Interval {
	return &interval.Interval{
		ID:     id,
		Title:  "Interval " + string(rune('A'+id)),
		Day:    testDay,
		Start:  start,
		End:    end,
		Status: interval.StatusPending,
	}
}

// columnsByID maps interval IDs to their assigned columns.
func columnsByID(ps []Positioned) map[int64]int {
	out := make(map[int64]int, len(ps))
	for _, p := range ps {
		out[p.ID] = p.Column
	}
	return out
}

func countsByID(ps []Positioned) map[int64]int {
	out := make(map[int64]int, len(ps))
	for _, p := range ps {
		out[p.ID] = p.ColumnCount
	}
	return out
}

func TestResolve_Empty(t *testing.T) {
	if got := Resolve(nil); got != nil {
		t.Errorf("Resolve(nil) = %v, want nil", got)
	}
}

func TestResolve_SingleInterval(t *testing.T) {
	ps := Resolve([]*interval.Interval{mk(0, "09:00", "10:00")})
	if len(ps) != 1 {
		t.Fatalf("len = %d, want 1", len(ps))
	}
	if ps[0].Column != 0 || ps[0].ColumnCount != 1 {
		t.Errorf("got column=%d count=%d, want 0/1", ps[0].Column, ps[0].ColumnCount)
	}
}

// TestResolve_MondayScenario covers the three-interval layout where C
// starts after B ends but still overlaps A: A and C share the cluster
// but not a column with each other.
func TestResolve_MondayScenario(t *testing.T) {
	ps := Resolve([]*interval.Interval{
		mk(0, "09:00", "10:30"), // A
		mk(1, "09:15", "09:45"), // B
		mk(2, "10:00", "11:00"), // C
	})

	cols := columnsByID(ps)
	counts := countsByID(ps)

	wantCols := map[int64]int{0: 0, 1: 1, 2: 1}
	for id, want := range wantCols {
		if cols[id] != want {
			t.Errorf("interval %d: column = %d, want %d", id, cols[id], want)
		}
	}
	for id := int64(0); id < 3; id++ {
		if counts[id] != 2 {
			t.Errorf("interval %d: columnCount = %d, want 2", id, counts[id])
		}
	}
}

// TestResolve_TransitiveClusterWidth checks that every member of a
// transitive cluster reports the cluster's full track count, including
// members that only touch part of it.
func TestResolve_TransitiveClusterWidth(t *testing.T) {
	ps := Resolve([]*interval.Interval{
		mk(0, "09:00", "10:00"), // A
		mk(1, "09:30", "09:45"), // B
		mk(2, "09:40", "11:00"), // C
	})

	counts := countsByID(ps)
	for id := int64(0); id < 3; id++ {
		if counts[id] != 3 {
			t.Errorf("interval %d: columnCount = %d, want 3", id, counts[id])
		}
	}
}

// TestResolve_NonOverlapInvariant: any two time-intersecting intervals
// must land in distinct columns.
func TestResolve_NonOverlapInvariant(t *testing.T) {
	ivs := []*interval.Interval{
		mk(0, "09:00", "12:00"),
		mk(1, "09:00", "09:30"),
		mk(2, "09:15", "10:15"),
		mk(3, "10:00", "10:30"),
		mk(4, "10:30", "11:30"),
		mk(5, "11:00", "11:15"),
		mk(6, "13:00", "14:00"),
	}

	ps := Resolve(ivs)
	for i := range ps {
		for j := i + 1; j < len(ps); j++ {
			a, b := ps[i], ps[j]
			overlaps := interval.TimesOverlap(a.Start, a.End, b.Start, b.End)
			if overlaps && a.Column == b.Column {
				t.Errorf("intervals %d and %d overlap but share column %d", a.ID, b.ID, a.Column)
			}
		}
	}
}

func TestResolve_BackToBackShareColumn(t *testing.T) {
	ps := Resolve([]*interval.Interval{
		mk(0, "09:00", "10:00"),
		mk(1, "10:00", "11:00"),
	})

	for _, p := range ps {
		if p.Column != 0 {
			t.Errorf("interval %d: column = %d, want 0 (touching endpoints do not overlap)", p.ID, p.Column)
		}
		if p.ColumnCount != 1 {
			t.Errorf("interval %d: columnCount = %d, want 1", p.ID, p.ColumnCount)
		}
	}
}

func TestResolve_DuplicateIntervalsGetSeparateColumns(t *testing.T) {
	ps := Resolve([]*interval.Interval{
		mk(0, "09:00", "10:00"),
		mk(1, "09:00", "10:00"),
	})

	cols := columnsByID(ps)
	if cols[0] == cols[1] {
		t.Errorf("duplicate intervals share column %d, want distinct columns", cols[0])
	}
	counts := countsByID(ps)
	if counts[0] != 2 || counts[1] != 2 {
		t.Errorf("columnCounts = %d/%d, want 2/2", counts[0], counts[1])
	}
}

// TestResolve_StableUnderReordering: shuffling the input must not change
// any assignment.
func TestResolve_StableUnderReordering(t *testing.T) {
	ivs := []*interval.Interval{
		mk(0, "09:00", "10:30"),
		mk(1, "09:15", "09:45"),
		mk(2, "10:00", "11:00"),
		mk(3, "10:00", "12:00"),
		mk(4, "14:00", "15:00"),
	}

	want := Resolve(ivs)
	wantCols := columnsByID(want)
	wantCounts := countsByID(want)

	rng := rand.New(rand.NewSource(42))
	for trial := 0; trial < 10; trial++ {
		shuffled := make([]*interval.Interval, len(ivs))
		copy(shuffled, ivs)
		rng.Shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})

		got := Resolve(shuffled)
		gotCols := columnsByID(got)
		gotCounts := countsByID(got)
		for id := range wantCols {
			if gotCols[id] != wantCols[id] {
				t.Fatalf("trial %d: interval %d column = %d, want %d", trial, id, gotCols[id], wantCols[id])
			}
			if gotCounts[id] != wantCounts[id] {
				t.Fatalf("trial %d: interval %d columnCount = %d, want %d", trial, id, gotCounts[id], wantCounts[id])
			}
		}
	}
}

func TestResolve_TiesLongerFirst(t *testing.T) {
	// Same start: the longer interval takes the earlier column.
	ps := Resolve([]*interval.Interval{
		mk(0, "09:00", "09:30"),
		mk(1, "09:00", "11:00"),
	})

	cols := columnsByID(ps)
	if cols[1] != 0 {
		t.Errorf("longer interval column = %d, want 0", cols[1])
	}
	if cols[0] != 1 {
		t.Errorf("shorter interval column = %d, want 1", cols[0])
	}
}

func TestClusters(t *testing.T) {
	ps := Resolve([]*interval.Interval{
		mk(0, "09:00", "10:00"),
		mk(1, "09:30", "10:30"),
		mk(2, "11:00", "12:00"),
		mk(3, "13:00", "14:00"),
		mk(4, "13:30", "13:45"),
	})

	clusters := Clusters(ps)
	if len(clusters) != 3 {
		t.Fatalf("len(clusters) = %d, want 3", len(clusters))
	}

	sizes := []int{len(clusters[0]), len(clusters[1]), len(clusters[2])}
	want := []int{2, 1, 2}
	for i := range want {
		if sizes[i] != want[i] {
			t.Errorf("cluster %d size = %d, want %d", i, sizes[i], want[i])
		}
	}
}
