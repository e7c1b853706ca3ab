package schedule

import (
	"context"
	"slices"
	"strconv"

	"github.com/tmarsh/gantry/pkg/calendar"
	"github.com/tmarsh/gantry/pkg/observability"
	"github.com/tmarsh/gantry/pkg/plan"
)

// Mutations in this file are the only supported write paths into a
// timeline document. Each one re-normalizes what it touched and pipes the
// task list through Enforce before returning, so a settled document never
// violates the finish-to-start invariant or carries a due date before its
// start.

// Settle normalizes the document and enforces all constraints in place.
// Called on load and after every external write.
func Settle(doc *plan.Document) {
	doc.Normalize()
	doc.Tasks = Enforce(doc.Tasks)
}

// SettleStats settles the document and reports how many tasks the solver
// moved, for callers that log or instrument settle runs.
func SettleStats(doc *plan.Document) (moved int) {
	before := make(map[string]string, len(doc.Tasks))
	for _, t := range doc.Tasks {
		before[t.ID] = t.Start.ISO() + t.Due.ISO()
	}
	Settle(doc)
	for _, t := range doc.Tasks {
		if b, ok := before[t.ID]; ok && b != t.Start.ISO()+t.Due.ISO() {
			moved++
		}
	}
	return moved
}

// PatchTask applies an arbitrary field edit to one task and settles the
// document. The patch function receives a pointer to the task copy inside
// the document. Returns false when the task does not exist.
func PatchTask(doc *plan.Document, taskID string, patch func(*plan.Task)) bool {
	t, ok := doc.Task(taskID)
	if !ok {
		return false
	}
	patch(t)
	t.DependsOn = plan.NormalizeDeps(t.DependsOn)
	if t.DependsOn.Contains(t.ID) {
		t.DependsOn = t.DependsOn.Without(map[string]bool{t.ID: true})
	}
	t.BarColor = plan.NormalizeHexColor(t.BarColor)
	t.ClampDates()
	doc.Tasks = Enforce(doc.Tasks)
	return true
}

// AddDependency adds the edge predecessor→successor unless it would
// create a cycle or reference a missing task. Returns true when the edge
// was added (or already present).
func AddDependency(doc *plan.Document, predecessorID, successorID string) bool {
	succ, ok := doc.Task(successorID)
	if !ok {
		return false
	}
	if _, ok := doc.Task(predecessorID); !ok {
		return false
	}
	if succ.DependsOn.Contains(predecessorID) {
		return true
	}
	if WouldCreateCycle(predecessorID, successorID, doc.Tasks) {
		observability.Solver().OnCycleRejected(context.Background(), predecessorID, successorID)
		return false
	}
	succ.DependsOn = append(slices.Clone(succ.DependsOn), predecessorID)
	doc.Tasks = Enforce(doc.Tasks)
	return true
}

// SetDependencies replaces a task's predecessor set with the given IDs,
// dropping any entry that is unknown, a self-reference, or would create a
// cycle. The surviving set is normalized and the document settled.
func SetDependencies(doc *plan.Document, successorID string, predecessorIDs []string) bool {
	succ, ok := doc.Task(successorID)
	if !ok {
		return false
	}
	succ.DependsOn = nil
	var accepted []string
	for _, pred := range plan.NormalizeDeps(predecessorIDs) {
		if pred == successorID {
			continue
		}
		if _, ok := doc.Task(pred); !ok {
			continue
		}
		if WouldCreateCycle(pred, successorID, doc.Tasks) {
			continue
		}
		accepted = append(accepted, pred)
		succ.DependsOn = plan.NormalizeDeps(accepted)
	}
	doc.Tasks = Enforce(doc.Tasks)
	return true
}

// RemoveDependency removes the edge predecessor→successor if present.
func RemoveDependency(doc *plan.Document, predecessorID, successorID string) {
	succ, ok := doc.Task(successorID)
	if !ok {
		return
	}
	succ.DependsOn = succ.DependsOn.Without(map[string]bool{predecessorID: true})
	doc.Tasks = Enforce(doc.Tasks)
}

// DeleteTasks removes the given tasks, strips them from every other
// task's dependency list, and settles. Tasks whose predecessors vanish
// keep their current dates: no predecessor means no constraint.
func DeleteTasks(doc *plan.Document, taskIDs []string) {
	removed := make(map[string]bool, len(taskIDs))
	for _, id := range taskIDs {
		if id != "" {
			removed[id] = true
		}
	}
	if len(removed) == 0 {
		return
	}

	kept := doc.Tasks[:0]
	for _, t := range doc.Tasks {
		if removed[t.ID] {
			continue
		}
		t.DependsOn = t.DependsOn.Without(removed)
		kept = append(kept, t)
	}
	doc.Tasks = Enforce(slices.Clone(kept))
}

// DeleteGroup removes a group, cascades to its tasks, and strips the
// deleted task IDs from every remaining dependency list.
func DeleteGroup(doc *plan.Document, groupID string) {
	doc.Groups = slices.DeleteFunc(slices.Clone(doc.Groups), func(g plan.Group) bool {
		return g.ID == groupID
	})

	var ids []string
	for _, t := range doc.Tasks {
		if t.GroupID == groupID {
			ids = append(ids, t.ID)
		}
	}
	DeleteTasks(doc, ids)
}

// AddTask appends a new task to the group, starting on the next business
// day on or after the group's latest due date and depending on the task
// that ends last. Returns the new task's ID.
func AddTask(doc *plan.Document, groupID string) string {
	var last *plan.Task
	maxOrder := 0
	for i := range doc.Tasks {
		t := &doc.Tasks[i]
		if t.GroupID != groupID {
			continue
		}
		if last == nil || t.Due.After(last.Due) {
			last = t
		}
		if t.RowOrder > maxOrder {
			maxOrder = t.RowOrder
		}
	}

	var base calendar.Date
	var deps plan.DependsOn
	if last != nil {
		base = calendar.NextBusinessDay(last.Due)
		deps = plan.DependsOn{last.ID}
	} else {
		base = calendar.NextBusinessDay(calendar.Today())
	}

	t := plan.Task{
		ID:        plan.NewID("t"),
		GroupID:   groupID,
		Name:      "New task",
		RowOrder:  maxOrder + 1,
		Assignee:  plan.AssigneeMax,
		Status:    plan.StatusNotStarted,
		Start:     base,
		Due:       calendar.AddBusinessDays(base, 1),
		DependsOn: deps,
	}
	doc.Tasks = Enforce(append(slices.Clone(doc.Tasks), t))
	return t.ID
}

// AddGroup appends a new group seeded with the template task chain. The
// chain is placed after the latest due date in the document, each task
// depending on the one before it. Returns the new group's ID.
func AddGroup(doc *plan.Document) string {
	gid := plan.NewID("g")
	doc.Groups = append(slices.Clone(doc.Groups), plan.Group{
		ID:   gid,
		Name: "Group " + strconv.Itoa(len(doc.Groups)+1),
	})

	base := calendar.Today()
	if len(doc.Tasks) > 0 {
		base = doc.Range().Due.AddDays(1)
	}

	added := make([]plan.Task, 0, len(plan.TemplateTasks))
	var prevID string
	for i, tpl := range plan.TemplateTasks {
		start := base.AddDays(i * 2)
		t := plan.Task{
			ID:          plan.NewID("t"),
			GroupID:     gid,
			RowOrder:    i + 1,
			Name:        tpl.Name,
			QuotedHours: tpl.QuotedHours,
			Assignee:    tpl.Assignee,
			Status:      plan.StatusNotStarted,
			Start:       start,
			Due:         start.AddDays(1),
		}
		if prevID != "" {
			t.DependsOn = plan.DependsOn{prevID}
		}
		prevID = t.ID
		added = append(added, t)
	}

	doc.Tasks = Enforce(append(slices.Clone(doc.Tasks), added...))
	return gid
}

// MoveTask shifts a task's window by deltaDays calendar days and settles.
// Used by drag-move; each intermediate pointer frame calls this with the
// cumulative delta from the drag origin already applied upstream.
func MoveTask(doc *plan.Document, taskID string, deltaDays int) bool {
	return PatchTask(doc, taskID, func(t *plan.Task) {
		t.Start = t.Start.AddDays(deltaDays)
		t.Due = t.Due.AddDays(deltaDays)
	})
}

// ResizeEdge selects which end of a task bar a resize drags.
type ResizeEdge int

// Resize edges.
const (
	EdgeStart ResizeEdge = iota
	EdgeDue
)

// ResizeTask moves one edge of a task's window by deltaDays calendar
// days. The opposite edge is fixed; the moving edge clamps at it.
func ResizeTask(doc *plan.Document, taskID string, edge ResizeEdge, deltaDays int) bool {
	return PatchTask(doc, taskID, func(t *plan.Task) {
		switch edge {
		case EdgeStart:
			ns := t.Start.AddDays(deltaDays)
			if ns.After(t.Due) {
				ns = t.Due
			}
			t.Start = ns
		case EdgeDue:
			nd := t.Due.AddDays(deltaDays)
			if nd.Before(t.Start) {
				nd = t.Start
			}
			t.Due = nd
		}
	})
}

// MoveGroup shifts every task in the group by deltaDays calendar days
// and settles the whole document.
func MoveGroup(doc *plan.Document, groupID string, deltaDays int) {
	for i := range doc.Tasks {
		if doc.Tasks[i].GroupID == groupID {
			doc.Tasks[i].Start = doc.Tasks[i].Start.AddDays(deltaDays)
			doc.Tasks[i].Due = doc.Tasks[i].Due.AddDays(deltaDays)
		}
	}
	doc.Tasks = Enforce(doc.Tasks)
}
