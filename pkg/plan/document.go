package plan

import (
	"encoding/json"
	"fmt"
	"slices"
	"time"

	"github.com/tmarsh/gantry/pkg/calendar"
)

// Document is the persistence and render contract: the full materialized
// collection of groups and tasks. The persistence layer treats it as an
// opaque blob; the core requires it to pass through [Document.Normalize]
// on every load and external write.
type Document struct {
	Groups []Group `json:"groups" bson:"groups"`
	Tasks  []Task  `json:"tasks" bson:"tasks"`
}

// Version is a published snapshot of a document, labeled V1, V2, ...
type Version struct {
	ID        string    `json:"id" bson:"id"`
	Label     string    `json:"label" bson:"label"`
	CreatedAt time.Time `json:"createdAt" bson:"created_at"`
	Groups    []Group   `json:"groups" bson:"groups"`
	Tasks     []Task    `json:"tasks" bson:"tasks"`
}

// Decode parses a JSON document and normalizes it. Legacy single-string
// dependsOn entries are upgraded during decoding.
func Decode(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode timeline document: %w", err)
	}
	doc.Normalize()
	return &doc, nil
}

// Encode serializes the document as JSON.
func (doc *Document) Encode() ([]byte, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode timeline document: %w", err)
	}
	return data, nil
}

// Normalize runs the load-time pipeline over the document in place:
//
//  1. dependency lists are re-canonicalized (blanks, duplicates, and
//     self-references stripped)
//  2. date ordering is clamped (due := start where due < start)
//  3. bar colors are normalized or dropped
//  4. row order is derived from date order for any group where a task
//     lacks it
//
// Normalize is idempotent.
func (doc *Document) Normalize() {
	for i := range doc.Tasks {
		t := &doc.Tasks[i]
		deps := NormalizeDeps(t.DependsOn)
		if deps.Contains(t.ID) {
			deps = deps.Without(map[string]bool{t.ID: true})
		}
		t.DependsOn = deps
		t.ClampDates()
		t.BarColor = NormalizeHexColor(t.BarColor)
	}
	doc.DeriveRowOrder()
}

// Clone returns a deep copy of the document.
func (doc *Document) Clone() *Document {
	out := &Document{
		Groups: slices.Clone(doc.Groups),
		Tasks:  make([]Task, len(doc.Tasks)),
	}
	for i, t := range doc.Tasks {
		t.DependsOn = slices.Clone(t.DependsOn)
		out.Tasks[i] = t
	}
	return out
}

// Task returns the task with the given ID and true, or nil and false.
func (doc *Document) Task(id string) (*Task, bool) {
	for i := range doc.Tasks {
		if doc.Tasks[i].ID == id {
			return &doc.Tasks[i], true
		}
	}
	return nil, false
}

// Group returns the group with the given ID and true, or nil and false.
func (doc *Document) Group(id string) (*Group, bool) {
	for i := range doc.Groups {
		if doc.Groups[i].ID == id {
			return &doc.Groups[i], true
		}
	}
	return nil, false
}

// TasksInGroup returns the group's tasks in display order: by RowOrder
// when autoRows is false (date order breaks ties and covers unset
// entries), by start date when autoRows is true.
func (doc *Document) TasksInGroup(groupID string, autoRows bool) []Task {
	var list []Task
	for _, t := range doc.Tasks {
		if t.GroupID == groupID {
			list = append(list, t)
		}
	}
	slices.SortStableFunc(list, func(a, b Task) int {
		if !autoRows {
			ao, bo := a.RowOrder, b.RowOrder
			if ao == 0 {
				ao = int(^uint(0) >> 1)
			}
			if bo == 0 {
				bo = int(^uint(0) >> 1)
			}
			if ao != bo {
				return ao - bo
			}
		}
		return a.Start.Compare(b.Start)
	})
	return list
}

// DateRange is an inclusive start/due span.
type DateRange struct {
	Start calendar.Date
	Due   calendar.Date
}

// GroupRange returns the min start and max due over the group's tasks,
// or false when the group has none.
func (doc *Document) GroupRange(groupID string) (DateRange, bool) {
	var r DateRange
	found := false
	for _, t := range doc.Tasks {
		if t.GroupID != groupID {
			continue
		}
		if !found {
			r = DateRange{Start: t.Start, Due: t.Due}
			found = true
			continue
		}
		r.Start = calendar.Min(r.Start, t.Start)
		r.Due = calendar.Max(r.Due, t.Due)
	}
	return r, found
}

// Range returns the min start and max due over all tasks. When the
// document is empty it falls back to today plus sixty days, matching the
// empty-timeline viewport.
func (doc *Document) Range() DateRange {
	if len(doc.Tasks) == 0 {
		today := calendar.Today()
		return DateRange{Start: today, Due: today.AddDays(60)}
	}
	r := DateRange{Start: doc.Tasks[0].Start, Due: doc.Tasks[0].Due}
	for _, t := range doc.Tasks[1:] {
		r.Start = calendar.Min(r.Start, t.Start)
		r.Due = calendar.Max(r.Due, t.Due)
	}
	return r
}

// DeriveRowOrder stamps RowOrder 1..n from date order in every group
// where at least one task lacks it. Groups where every task already has a
// manual order are left untouched.
func (doc *Document) DeriveRowOrder() {
	for _, g := range doc.Groups {
		var idx []int
		missing := false
		for i, t := range doc.Tasks {
			if t.GroupID == g.ID {
				idx = append(idx, i)
				if t.RowOrder == 0 {
					missing = true
				}
			}
		}
		if !missing || len(idx) == 0 {
			continue
		}
		slices.SortStableFunc(idx, func(a, b int) int {
			return doc.Tasks[a].Start.Compare(doc.Tasks[b].Start)
		})
		for order, i := range idx {
			doc.Tasks[i].RowOrder = order + 1
		}
	}
}

// FreezeRowOrder stamps RowOrder 1..n from the current date sort in every
// group. Used when switching from automatic date ordering to manual
// ordering, so the visible arrangement is preserved.
func (doc *Document) FreezeRowOrder() {
	for _, g := range doc.Groups {
		var idx []int
		for i, t := range doc.Tasks {
			if t.GroupID == g.ID {
				idx = append(idx, i)
			}
		}
		slices.SortStableFunc(idx, func(a, b int) int {
			return doc.Tasks[a].Start.Compare(doc.Tasks[b].Start)
		})
		for order, i := range idx {
			doc.Tasks[i].RowOrder = order + 1
		}
	}
}

// Edges returns every (predecessor, successor) pair implied by the
// normalized dependency lists, in task order. This is the edge list the
// renderer draws arrows for.
func (doc *Document) Edges() [][2]string {
	var out [][2]string
	for _, t := range doc.Tasks {
		for _, dep := range t.DependsOn {
			out = append(out, [2]string{dep, t.ID})
		}
	}
	return out
}
