package layout

import (
	"math"

	"github.com/tmarsh/gantry/pkg/calendar"
	"github.com/tmarsh/gantry/pkg/plan"
)

// Zoom is a discrete zoom preset. Each preset fixes the pixel width of
// one day cell on the grid.
type Zoom string

// Zoom presets, widest to narrowest.
const (
	Zoom400 Zoom = "z400"
	Zoom200 Zoom = "z200"
	Zoom100 Zoom = "z100"
	Zoom75  Zoom = "z75"
	Zoom50  Zoom = "z50"
)

// ZoomOrder lists the presets from most to least zoomed in.
var ZoomOrder = []Zoom{Zoom400, Zoom200, Zoom100, Zoom75, Zoom50}

// CellWidth returns the pixel width of one day cell for the preset.
// Unknown presets fall back to the 100% width.
func (z Zoom) CellWidth() int {
	switch z {
	case Zoom400:
		return 44
	case Zoom200:
		return 30
	case Zoom100:
		return 20
	case Zoom75:
		return 16
	case Zoom50:
		return 12
	}
	return 20
}

// Label returns the preset's display label ("100%").
func (z Zoom) Label() string {
	switch z {
	case Zoom400:
		return "400%"
	case Zoom200:
		return "200%"
	case Zoom75:
		return "75%"
	case Zoom50:
		return "50%"
	}
	return "100%"
}

// In returns the next preset toward 400%, clamping at the end.
func (z Zoom) In() Zoom {
	for i, cur := range ZoomOrder {
		if cur == z && i > 0 {
			return ZoomOrder[i-1]
		}
	}
	return z
}

// Out returns the next preset toward 50%, clamping at the end.
func (z Zoom) Out() Zoom {
	for i, cur := range ZoomOrder {
		if cur == z && i < len(ZoomOrder)-1 {
			return ZoomOrder[i+1]
		}
	}
	return z
}

// Span is a horizontal pixel placement on the day grid.
type Span struct {
	Left  int
	Width int
}

// DateSpan clamps the [start, due] range to the visible window of
// visibleDays days from rangeStart and converts it to pixels. The span
// always covers at least one cell.
func DateSpan(rangeStart calendar.Date, cellWidth int, start, due calendar.Date, visibleDays int) Span {
	lastIdx := visibleDays - 1
	if lastIdx < 0 {
		lastIdx = 0
	}
	startIdx := clampInt(calendar.DayIndex(rangeStart, start), 0, lastIdx)
	endIdx := clampInt(calendar.DayIndex(rangeStart, due), 0, lastIdx)
	if endIdx < startIdx {
		startIdx, endIdx = endIdx, startIdx
	}
	span := endIdx - startIdx + 1
	return Span{
		Left:  startIdx * cellWidth,
		Width: span * cellWidth,
	}
}

// TaskSpan places a task's bar on the grid.
func TaskSpan(rangeStart calendar.Date, cellWidth int, t plan.Task, visibleDays int) Span {
	return DateSpan(rangeStart, cellWidth, t.Start, t.Due, visibleDays)
}

// PixelsToDays converts a horizontal pointer delta into a whole-day
// delta, rounding to the nearest day. Used by drag move/resize.
func PixelsToDays(deltaPixels float64, cellWidth int) int {
	if cellWidth <= 0 {
		return 0
	}
	return int(math.Round(deltaPixels / float64(cellWidth)))
}

// ArrowEndpoint is one end of a dependency arrow in grid coordinates.
type ArrowEndpoint struct {
	X int // horizontal pixel position
	Y int // vertical pixel position (row center)
}

// Arrow is a dependency edge with resolved pixel anchors: the
// predecessor's last-day edge and the successor's first-day edge.
type Arrow struct {
	PredecessorID string
	SuccessorID   string
	From          ArrowEndpoint
	To            ArrowEndpoint
}

// Arrows resolves every dependency edge in the document to pixel anchor
// pairs. Edges whose endpoints are not visible (collapsed group, unknown
// task) are omitted.
func Arrows(doc *plan.Document, rl RowLayout, rangeStart calendar.Date, cellWidth, visibleDays int) []Arrow {
	var out []Arrow
	for _, e := range doc.Edges() {
		pred, ok := doc.Task(e[0])
		if !ok {
			continue
		}
		succ, ok := doc.Task(e[1])
		if !ok {
			continue
		}
		fromY, okFrom := rl.TaskCenters[pred.ID]
		toY, okTo := rl.TaskCenters[succ.ID]
		if !okFrom || !okTo {
			continue
		}
		ps := TaskSpan(rangeStart, cellWidth, *pred, visibleDays)
		ss := TaskSpan(rangeStart, cellWidth, *succ, visibleDays)
		out = append(out, Arrow{
			PredecessorID: pred.ID,
			SuccessorID:   succ.ID,
			From:          ArrowEndpoint{X: ps.Left + ps.Width, Y: fromY},
			To:            ArrowEndpoint{X: ss.Left, Y: toY},
		})
	}
	return out
}

// RecenterScroll computes the scroll offset that keeps the calendar date
// under the viewport center fixed across a cell-width change. centerPx is
// the current scroll offset plus half the viewport width; the returned
// value is the new scroll offset (never negative).
func RecenterScroll(scrollLeft, viewportWidth float64, oldCellWidth, newCellWidth int) float64 {
	if oldCellWidth <= 0 || oldCellWidth == newCellWidth {
		return scrollLeft
	}
	centerPx := scrollLeft + viewportWidth/2
	centerIdx := centerPx / float64(oldCellWidth)
	next := centerIdx*float64(newCellWidth) - viewportWidth/2
	if next < 0 {
		next = 0
	}
	return next
}
