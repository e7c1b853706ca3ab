// Package layout turns a timeline document into geometry: lane
// assignments for overlapping leave blocks, the ordered list of visible
// rows with vertical offsets, and the mapping between calendar dates and
// pixel positions on the zoomable day grid.
//
// The package is pure computation over
// [github.com/tmarsh/gantry/pkg/plan] values; it performs no drawing.
// The renderer consumes its outputs: per-task pixel spans, per-row
// vertical centers, and dependency-arrow endpoint anchors.
package layout

import (
	"slices"

	"github.com/tmarsh/gantry/pkg/calendar"
	"github.com/tmarsh/gantry/pkg/plan"
)

// PackedLeave is a leave block tagged with its day-index span and lane.
type PackedLeave struct {
	Leave    plan.Leave
	StartIdx int // inclusive, clamped to [0, days-1]
	EndIdx   int // inclusive, clamped to [0, days-1]
	Lane     int
}

// PackLeaves assigns each leave the lowest-numbered lane whose current
// occupant ends strictly before the leave starts, opening a new lane when
// none fits. Spans are clamped to the visible window of daysLen days from
// rangeStart and sorted by start index (end index breaks ties), which
// makes the greedy assignment produce the minimum possible lane count:
// the maximum number of leaves overlapping any single day.
//
// LaneCount is at least 1 even with no leaves, so the leaves strip always
// reserves one row of height.
func PackLeaves(leaves []plan.Leave, rangeStart calendar.Date, daysLen int) (packed []PackedLeave, laneCount int) {
	lastIdx := daysLen - 1
	if lastIdx < 0 {
		lastIdx = 0
	}

	spans := make([]PackedLeave, 0, len(leaves))
	for _, lv := range leaves {
		s := clampInt(calendar.DayIndex(rangeStart, lv.Start), 0, lastIdx)
		e := clampInt(calendar.DayIndex(rangeStart, lv.EndDate()), 0, lastIdx)
		if e < s {
			s, e = e, s
		}
		spans = append(spans, PackedLeave{Leave: lv, StartIdx: s, EndIdx: e})
	}

	slices.SortStableFunc(spans, func(a, b PackedLeave) int {
		if a.StartIdx != b.StartIdx {
			return a.StartIdx - b.StartIdx
		}
		return a.EndIdx - b.EndIdx
	})

	var laneEnds []int
	for i := range spans {
		lane := -1
		for l, end := range laneEnds {
			// Inclusive ranges: sharing a lane needs a strict gap.
			if spans[i].StartIdx > end {
				lane = l
				break
			}
		}
		if lane == -1 {
			lane = len(laneEnds)
			laneEnds = append(laneEnds, spans[i].EndIdx)
		} else if spans[i].EndIdx > laneEnds[lane] {
			laneEnds[lane] = spans[i].EndIdx
		}
		spans[i].Lane = lane
	}

	laneCount = len(laneEnds)
	if laneCount < 1 {
		laneCount = 1
	}
	return spans, laneCount
}

// CollapsedLaneLimit is how many lanes the leaves strip shows until the
// user expands it.
const CollapsedLaneLimit = 2

// VisibleLanes caps the lane count at [CollapsedLaneLimit] unless the
// strip is expanded. Leaves in hidden lanes are still packed; the caller
// just doesn't draw them.
func VisibleLanes(laneCount int, expanded bool) int {
	if !expanded && laneCount > CollapsedLaneLimit {
		return CollapsedLaneLimit
	}
	return laneCount
}

// LeavesInRange filters leaves to those intersecting the inclusive
// [rangeStart, rangeEnd] window.
func LeavesInRange(leaves []plan.Leave, rangeStart, rangeEnd calendar.Date) []plan.Leave {
	var out []plan.Leave
	for _, lv := range leaves {
		if !lv.Start.After(rangeEnd) && !lv.EndDate().Before(rangeStart) {
			out = append(out, lv)
		}
	}
	return out
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
