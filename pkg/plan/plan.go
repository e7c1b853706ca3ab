// Package plan defines the timeline data model: groups of tasks with
// start/due dates, assignees, and finish-to-start dependencies, plus the
// auxiliary leave blocks displayed alongside the task grid.
//
// The package is purely structural. Constraint propagation lives in
// [github.com/tmarsh/gantry/pkg/schedule] and geometry in
// [github.com/tmarsh/gantry/pkg/layout]; both operate on the types defined
// here.
//
// # Persistence contract
//
// [Document] is the shape exchanged with the persistence layer:
// {groups, tasks}. Older drafts stored a task's dependencies as a single
// string ID; [DependsOn] upgrades that representation transparently during
// JSON decoding, so business logic only ever sees the canonical ordered
// list form. See [Document.Normalize] for the full load-time pipeline.
package plan

import (
	"github.com/google/uuid"

	"github.com/tmarsh/gantry/pkg/calendar"
)

// Status is a task's progress state.
type Status string

// Task statuses.
const (
	StatusNotStarted Status = "Not Started"
	StatusInProgress Status = "In Progress"
	StatusCompleted  Status = "Completed"
)

// Statuses lists all valid task statuses in display order.
var Statuses = []Status{StatusNotStarted, StatusInProgress, StatusCompleted}

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusNotStarted, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// Assignee identifies a team member. The set is fixed per deployment;
// the defaults below match the seed data.
type Assignee string

// Default assignee roster.
const (
	AssigneeXiaoMing Assignee = "Xiao Ming"
	AssigneeMax      Assignee = "Max"
	AssigneeReno     Assignee = "Reno"
	AssigneeAina     Assignee = "Aina"
)

// Assignees lists the default roster in display order.
var Assignees = []Assignee{AssigneeXiaoMing, AssigneeMax, AssigneeReno, AssigneeAina}

// Task is a single schedulable bar on the timeline.
//
// Invariants maintained by this package and the schedule package:
//   - Due is never before Start (violations are clamped, Due := Start)
//   - DependsOn never contains duplicates, blanks, or the task's own ID
//   - The dependency relation over all tasks is acyclic
type Task struct {
	ID          string        `json:"id" bson:"id"`
	GroupID     string        `json:"groupId" bson:"group_id"`
	Name        string        `json:"name" bson:"name"`
	QuotedHours float64       `json:"quotedHours" bson:"quoted_hours"`
	ActualHours float64       `json:"actualHours" bson:"actual_hours"`
	Assignee    Assignee      `json:"assignee" bson:"assignee"`
	Status      Status        `json:"status" bson:"status"`
	Start       calendar.Date `json:"start" bson:"start"`
	Due         calendar.Date `json:"due" bson:"due"`

	// RowOrder is the manual vertical position within the group (1-based).
	// Zero means unset; date order is the fallback for the whole group.
	RowOrder int `json:"rowOrder,omitempty" bson:"row_order,omitempty"`

	// DependsOn lists predecessor task IDs (finish-to-start).
	// Nil means no dependencies.
	DependsOn DependsOn `json:"dependsOn,omitempty" bson:"depends_on,omitempty"`

	// BarColor is an optional "#RRGGBB" display override.
	BarColor string `json:"barColor,omitempty" bson:"bar_color,omitempty"`
}

// ClampDates restores the Due >= Start invariant by pulling Due up to
// Start. Returns true if a correction was made.
func (t *Task) ClampDates() bool {
	if t.Due.Before(t.Start) {
		t.Due = t.Start
		return true
	}
	return false
}

// Duration returns the task's length in inclusive business days
// (minimum 1).
func (t *Task) Duration() int {
	d := calendar.BusinessDays(t.Start, t.Due)
	if d < 1 {
		d = 1
	}
	return d
}

// Group is a named collection of tasks.
type Group struct {
	ID        string `json:"id" bson:"id"`
	Name      string `json:"name" bson:"name"`
	Collapsed bool   `json:"collapsed,omitempty" bson:"collapsed,omitempty"`
}

// Leave is a read-only business-calendar block (annual leave, OOO).
// Leaves are not part of the dependency graph; they exist for lane-packed
// display above the task rows.
type Leave struct {
	ID       string        `json:"id" bson:"id"`
	Assignee Assignee      `json:"assignee" bson:"assignee"`
	Start    calendar.Date `json:"start" bson:"start"`
	Due      calendar.Date `json:"due" bson:"due"`

	// End is a legacy alias for Due kept for old stored data; when set it
	// takes precedence. New data always writes Due.
	End *calendar.Date `json:"end,omitempty" bson:"end,omitempty"`

	Label    string `json:"label,omitempty" bson:"label,omitempty"`
	BarColor string `json:"barColor,omitempty" bson:"bar_color,omitempty"`
}

// EndDate resolves the leave's final day, honoring the legacy End field.
func (l Leave) EndDate() calendar.Date {
	if l.End != nil {
		return *l.End
	}
	return l.Due
}

// NewID returns a fresh opaque identifier with the given prefix
// ("t" for tasks, "g" for groups, "v" for versions).
func NewID(prefix string) string {
	return prefix + "_" + uuid.NewString()
}
