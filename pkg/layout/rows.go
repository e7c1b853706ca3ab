package layout

import (
	"github.com/tmarsh/gantry/pkg/plan"
)

// Row heights in pixels. Detail mode is the default; compact mode trims a
// few pixels from each row. Every rendered row also carries a 1px top
// border that counts toward the running offset.
const (
	GroupRowHeight        = 44
	GroupRowHeightCompact = 40
	TaskRowHeight         = 34
	TaskRowHeightCompact  = 32
	RowBorderHeight       = 1
)

// RowKind distinguishes the row descriptor variants.
type RowKind int

// Row kinds in display order within a group.
const (
	RowGroup RowKind = iota // group header row
	RowTask                 // one task bar row
	RowAdd                  // trailing "add task" affordance row
)

// Row is one visible row of the flattened timeline.
type Row struct {
	Kind  RowKind
	Group plan.Group // set for all kinds (owning group)
	Task  plan.Task  // set when Kind == RowTask
	Index int        // 1-based running task index across all groups
}

// Metrics configures row layout.
type Metrics struct {
	Compact  bool // compact mode trims row heights
	AutoRows bool // order tasks by start date instead of RowOrder

	// LeavesLaneCount is the number of lanes the leaves strip occupies.
	// The strip sits above all group rows; its height is
	// LeavesLaneCount * task row height.
	LeavesLaneCount int
}

func (m Metrics) groupRowH() int {
	if m.Compact {
		return GroupRowHeightCompact
	}
	return GroupRowHeight
}

func (m Metrics) taskRowH() int {
	if m.Compact {
		return TaskRowHeightCompact
	}
	return TaskRowHeight
}

// Rows flattens the document into its visible row list: for each group a
// header row, then (unless collapsed) its tasks in display order followed
// by the add-task row.
func Rows(doc *plan.Document, m Metrics) []Row {
	var out []Row
	idx := 1
	for _, g := range doc.Groups {
		out = append(out, Row{Kind: RowGroup, Group: g})
		if g.Collapsed {
			continue
		}
		for _, t := range doc.TasksInGroup(g.ID, m.AutoRows) {
			out = append(out, Row{Kind: RowTask, Group: g, Task: t, Index: idx})
			idx++
		}
		out = append(out, Row{Kind: RowAdd, Group: g})
	}
	return out
}

// RowLayout is the vertical geometry of the flattened timeline.
type RowLayout struct {
	Rows []Row

	// Offsets[i] is the pixel offset of the top of Rows[i], including its
	// top border.
	Offsets []int

	// TaskCenters maps task ID to the vertical center of its row, the
	// anchor height for dependency arrows.
	TaskCenters map[string]int

	// TotalHeight is the full stacked height including the leaves strip.
	TotalHeight int

	// LeavesHeight is the height of the leaves strip at the top.
	LeavesHeight int
}

// Layout computes vertical offsets for every visible row. The leaves
// strip occupies the top of the stack; group and task rows follow with
// their per-kind heights.
func Layout(doc *plan.Document, m Metrics) RowLayout {
	rows := Rows(doc, m)

	lanes := m.LeavesLaneCount
	if lanes < 1 {
		lanes = 1
	}
	leavesH := lanes * m.taskRowH()

	y := RowBorderHeight + leavesH
	offsets := make([]int, len(rows))
	centers := make(map[string]int)

	for i, r := range rows {
		h := m.taskRowH()
		if r.Kind == RowGroup {
			h = m.groupRowH()
		}
		y += RowBorderHeight
		offsets[i] = y
		if r.Kind == RowTask {
			centers[r.Task.ID] = y + h/2
		}
		y += h
	}

	return RowLayout{
		Rows:         rows,
		Offsets:      offsets,
		TaskCenters:  centers,
		TotalHeight:  y,
		LeavesHeight: leavesH,
	}
}
