package layout

import (
	"github.com/tmarsh/gantry/pkg/calendar"
	"github.com/tmarsh/gantry/pkg/plan"
)

// DragKind identifies what a pointer drag manipulates.
type DragKind int

// Drag kinds.
const (
	DragMove        DragKind = iota // whole bar, start and due shift together
	DragResizeStart                 // start edge, due fixed
	DragResizeDue                   // due edge, start fixed
)

// DragState is the explicit interaction state of a bar drag. The zero
// value is idle. All date math is pure: the state captures the bar's
// dates at the drag origin, and [DragState.Apply] derives the speculative
// dates for any pointer position without mutating anything.
type DragState struct {
	Active  bool
	Kind    DragKind
	TaskID  string
	OriginX float64 // pointer X at drag start

	BaseStart calendar.Date
	BaseDue   calendar.Date
}

// BeginDrag captures a task's window at the drag origin.
func BeginDrag(kind DragKind, t plan.Task, pointerX float64) DragState {
	return DragState{
		Active:    true,
		Kind:      kind,
		TaskID:    t.ID,
		OriginX:   pointerX,
		BaseStart: t.Start,
		BaseDue:   t.Due,
	}
}

// DayDelta converts the pointer's current X into a whole-day delta from
// the drag origin.
func (s DragState) DayDelta(pointerX float64, cellWidth int) int {
	return PixelsToDays(pointerX-s.OriginX, cellWidth)
}

// Apply returns the speculative start/due for the given day delta.
// Move shifts both ends; resizing moves one edge and clamps it at the
// other, so the bar never inverts. The result still has to pass through
// the constraint solver before it is settled.
func (s DragState) Apply(deltaDays int) (start, due calendar.Date) {
	switch s.Kind {
	case DragResizeStart:
		start = s.BaseStart.AddDays(deltaDays)
		due = s.BaseDue
		if start.After(due) {
			start = due
		}
	case DragResizeDue:
		start = s.BaseStart
		due = s.BaseDue.AddDays(deltaDays)
		if due.Before(start) {
			due = start
		}
	default:
		start = s.BaseStart.AddDays(deltaDays)
		due = s.BaseDue.AddDays(deltaDays)
	}
	return start, due
}

// End returns the idle state. The last speculative dates applied during
// the drag remain final; there is no rollback on pointer-up.
func (s DragState) End() DragState {
	return DragState{}
}
