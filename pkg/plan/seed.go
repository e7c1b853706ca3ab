package plan

import "github.com/tmarsh/gantry/pkg/calendar"

// SeedDocument returns the starter timeline shown on first run: one group
// with the standard production task chain.
func SeedDocument() *Document {
	doc := &Document{
		Groups: []Group{{ID: "g1", Name: "Group 1"}},
		Tasks: []Task{
			{ID: "t1", GroupID: "g1", Name: "Sketches", QuotedHours: 24, Assignee: AssigneeXiaoMing, Status: StatusInProgress, Start: calendar.MustParse("2025-11-30"), Due: calendar.MustParse("2025-12-03")},
			{ID: "t2", GroupID: "g1", Name: "Storyboard", QuotedHours: 80, Assignee: AssigneeXiaoMing, Status: StatusInProgress, Start: calendar.MustParse("2025-12-04"), Due: calendar.MustParse("2025-12-15"), DependsOn: DependsOn{"t1"}},
			{ID: "t3", GroupID: "g1", Name: "Styleframe", QuotedHours: 80, Assignee: AssigneeXiaoMing, Status: StatusNotStarted, Start: calendar.MustParse("2025-12-12"), Due: calendar.MustParse("2025-12-22"), DependsOn: DependsOn{"t2"}},
			{ID: "t4", GroupID: "g1", Name: "Asset Build", QuotedHours: 90, Assignee: AssigneeReno, Status: StatusNotStarted, Start: calendar.MustParse("2025-12-16"), Due: calendar.MustParse("2025-12-26"), DependsOn: DependsOn{"t3"}},
			{ID: "t5", GroupID: "g1", Name: "BGM Options", QuotedHours: 12, Assignee: AssigneeMax, Status: StatusNotStarted, Start: calendar.MustParse("2025-12-20"), Due: calendar.MustParse("2025-12-23"), DependsOn: DependsOn{"t4"}},
			{ID: "t6", GroupID: "g1", Name: "Sound Design", QuotedHours: 30, Assignee: AssigneeMax, Status: StatusNotStarted, Start: calendar.MustParse("2025-12-26"), Due: calendar.MustParse("2026-01-03"), DependsOn: DependsOn{"t5"}},
			{ID: "t7", GroupID: "g1", Name: "Sound Mastering", QuotedHours: 18, Assignee: AssigneeMax, Status: StatusNotStarted, Start: calendar.MustParse("2026-01-02"), Due: calendar.MustParse("2026-01-06"), DependsOn: DependsOn{"t6"}},
			{ID: "t8", GroupID: "g1", Name: "Cut 1", QuotedHours: 70, Assignee: AssigneeAina, Status: StatusNotStarted, Start: calendar.MustParse("2025-12-11"), Due: calendar.MustParse("2025-12-25"), DependsOn: DependsOn{"t4"}},
			{ID: "t9", GroupID: "g1", Name: "Cut 2", QuotedHours: 50, Assignee: AssigneeAina, Status: StatusNotStarted, Start: calendar.MustParse("2025-12-26"), Due: calendar.MustParse("2026-01-05"), DependsOn: DependsOn{"t8"}},
			{ID: "t10", GroupID: "g1", Name: "Final Cut", QuotedHours: 20, Assignee: AssigneeAina, Status: StatusNotStarted, Start: calendar.MustParse("2026-01-05"), Due: calendar.MustParse("2026-01-10"), DependsOn: DependsOn{"t9"}},
		},
	}
	doc.Normalize()
	return doc
}

// SeedLeaves returns the fixed leave blocks. Leaves are not editable from
// the timeline surface; they come from the business calendar.
func SeedLeaves() []Leave {
	return []Leave{
		{ID: "l1", Assignee: AssigneeAina, Start: calendar.MustParse("2025-12-09"), Due: calendar.MustParse("2025-12-11"), Label: "Annual Leave", BarColor: "#FFD1DC"},
		{ID: "l2", Assignee: AssigneeMax, Start: calendar.MustParse("2025-12-18"), Due: calendar.MustParse("2025-12-19"), Label: "OOO", BarColor: "#B8F2E6"},
		{ID: "l3", Assignee: AssigneeReno, Start: calendar.MustParse("2025-12-23"), Due: calendar.MustParse("2025-12-24"), Label: "Medical", BarColor: "#A7C7E7"},
		{ID: "l4", Assignee: AssigneeXiaoMing, Start: calendar.MustParse("2025-12-30"), Due: calendar.MustParse("2026-01-02"), Label: "Annual Leave", BarColor: "#D7BCE8"},
	}
}

// TemplateTask is one entry of the task chain seeded into a new group.
type TemplateTask struct {
	Name        string
	QuotedHours float64
	Assignee    Assignee
}

// TemplateTasks is the standard production chain used by AddGroup.
var TemplateTasks = []TemplateTask{
	{Name: "Sketches", QuotedHours: 24, Assignee: AssigneeXiaoMing},
	{Name: "Storyboard", QuotedHours: 80, Assignee: AssigneeXiaoMing},
	{Name: "Styleframe", QuotedHours: 80, Assignee: AssigneeXiaoMing},
	{Name: "Asset Build", QuotedHours: 90, Assignee: AssigneeReno},
	{Name: "BGM Options", QuotedHours: 12, Assignee: AssigneeMax},
	{Name: "Sound Design", QuotedHours: 30, Assignee: AssigneeMax},
	{Name: "Sound Mastering", QuotedHours: 18, Assignee: AssigneeMax},
	{Name: "Cut 1", QuotedHours: 70, Assignee: AssigneeAina},
	{Name: "Cut 2", QuotedHours: 50, Assignee: AssigneeAina},
	{Name: "Final Cut", QuotedHours: 20, Assignee: AssigneeAina},
}
