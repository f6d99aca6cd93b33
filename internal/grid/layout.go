// Package grid implements the calendar layout and interaction engine:
// overlap resolution into column tracks, time/pixel coordinate mapping,
// the pointer drag state machine and the anchor-preserving zoom controller.
// The package is pure state + math; it renders nothing and owns no storage.
package grid

import (
	"sort"

	"github.com/newbeginning12/flashcal/internal/interval"
)

// Positioned is an interval augmented with its column assignment within
// its overlap cluster. Created fresh on every layout pass, never mutated.
type Positioned struct {
	*interval.Interval

	// Column is the zero-based track index within the cluster.
	Column int
	// ColumnCount is the total number of tracks in the cluster. Every
	// member of a cluster reports the same count, so a narrow interval
	// sandwiched between wide ones still renders at full cluster width.
	ColumnCount int
}

// Resolve converts one day's intervals into non-overlapping column
// assignments. The result is deterministic and stable under reordering
// of the input: intervals are sorted by start ascending, end descending
// (longer first), then ID.
//
// Packing is greedy first-fit: each interval goes into the first track
// whose previous occupant ended at or before this start. Touching
// endpoints (end == next start) never force a new track.
func Resolve(ivs []*interval.Interval) []Positioned {
	if len(ivs) == 0 {
		return nil
	}

	sorted := make([]*interval.Interval, len(ivs))
	copy(sorted, ivs)
	sort.SliceStable(sorted, func(i, j int) bool {
		si, sj := sorted[i].StartMinutes(), sorted[j].StartMinutes()
		if si != sj {
			return si < sj
		}
		ei, ej := sorted[i].EndMinutes(), sorted[j].EndMinutes()
		if ei != ej {
			return ei > ej
		}
		return sorted[i].ID < sorted[j].ID
	})

	positioned := make([]Positioned, len(sorted))

	// Greedy column packing. trackEnds holds the end minute of the most
	// recently placed interval per track.
	var trackEnds []int
	for i, iv := range sorted {
		start := iv.StartMinutes()
		col := -1
		for t, end := range trackEnds {
			if end <= start {
				col = t
				break
			}
		}
		if col == -1 {
			col = len(trackEnds)
			trackEnds = append(trackEnds, 0)
		}
		trackEnds[col] = iv.EndMinutes()
		positioned[i] = Positioned{Interval: iv, Column: col}
	}

	assignClusterWidths(positioned)
	return positioned
}

// assignClusterWidths partitions the sorted, column-assigned intervals
// into transitive overlap clusters and gives every member the cluster's
// total track count. Two intervals share a cluster iff a chain of
// pairwise overlaps connects them.
//
// A sweep suffices because the input is sorted by start: a cluster ends
// exactly when the next interval starts at or after the furthest end
// seen so far.
func assignClusterWidths(ps []Positioned) {
	clusterStart := 0
	clusterEnd := 0   // furthest end minute seen in the current cluster
	maxColumn := 0    // widest track index in the current cluster
	flush := func(upTo int) {
		for i := clusterStart; i < upTo; i++ {
			ps[i].ColumnCount = maxColumn + 1
		}
	}

	for i, p := range ps {
		if i > 0 && p.StartMinutes() >= clusterEnd {
			flush(i)
			clusterStart = i
			maxColumn = 0
			clusterEnd = 0
		}
		if p.Column > maxColumn {
			maxColumn = p.Column
		}
		if end := p.EndMinutes(); end > clusterEnd {
			clusterEnd = end
		}
	}
	flush(len(ps))
}

// Clusters groups one day's positioned intervals into their transitive
// overlap clusters, preserving sorted order within each cluster. The
// grouping is recomputed from scratch; nothing is cached.
func Clusters(ps []Positioned) [][]Positioned {
	if len(ps) == 0 {
		return nil
	}

	var out [][]Positioned
	clusterStart := 0
	clusterEnd := 0
	for i, p := range ps {
		if i > 0 && p.StartMinutes() >= clusterEnd {
			out = append(out, ps[clusterStart:i])
			clusterStart = i
			clusterEnd = 0
		}
		if end := p.EndMinutes(); end > clusterEnd {
			clusterEnd = end
		}
	}
	return append(out, ps[clusterStart:])
}
