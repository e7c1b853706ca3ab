package layout

import (
	"testing"

	"github.com/tmarsh/gantry/pkg/plan"
)

func TestZoom_CellWidth(t *testing.T) {
	tests := []struct {
		zoom Zoom
		want int
	}{
		{Zoom400, 44},
		{Zoom200, 30},
		{Zoom100, 20},
		{Zoom75, 16},
		{Zoom50, 12},
		{Zoom("bogus"), 20},
	}
	for _, tt := range tests {
		if got := tt.zoom.CellWidth(); got != tt.want {
			t.Errorf("Zoom(%q).CellWidth() = %d, want %d", tt.zoom, got, tt.want)
		}
	}
}

func TestZoom_InOutClamp(t *testing.T) {
	if got := Zoom400.In(); got != Zoom400 {
		t.Errorf("Zoom400.In() = %v, want clamped at Zoom400", got)
	}
	if got := Zoom50.Out(); got != Zoom50 {
		t.Errorf("Zoom50.Out() = %v, want clamped at Zoom50", got)
	}
	if got := Zoom100.In(); got != Zoom200 {
		t.Errorf("Zoom100.In() = %v, want Zoom200", got)
	}
	if got := Zoom100.Out(); got != Zoom75 {
		t.Errorf("Zoom100.Out() = %v, want Zoom75", got)
	}
}

func TestDateSpan(t *testing.T) {
	rangeStart := date("2025-12-01")
	tests := []struct {
		name       string
		start, due string
		want       Span
	}{
		{"single day", "2025-12-01", "2025-12-01", Span{Left: 0, Width: 20}},
		{"three days offset", "2025-12-03", "2025-12-05", Span{Left: 40, Width: 60}},
		{"clamped before window", "2025-11-25", "2025-12-02", Span{Left: 0, Width: 40}},
		{"clamped after window", "2025-12-09", "2025-12-20", Span{Left: 160, Width: 40}},
		{"fully before window", "2025-11-01", "2025-11-05", Span{Left: 0, Width: 20}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DateSpan(rangeStart, 20, date(tt.start), date(tt.due), 10)
			if got != tt.want {
				t.Errorf("DateSpan() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestPixelsToDays(t *testing.T) {
	tests := []struct {
		delta float64
		cellW int
		want  int
	}{
		{0, 20, 0},
		{9, 20, 0},
		{10, 20, 1},
		{45, 20, 2},
		{-31, 20, -2},
		{100, 0, 0},
	}
	for _, tt := range tests {
		if got := PixelsToDays(tt.delta, tt.cellW); got != tt.want {
			t.Errorf("PixelsToDays(%v, %d) = %d, want %d", tt.delta, tt.cellW, got, tt.want)
		}
	}
}

func TestArrows_AnchorsAtBarEdges(t *testing.T) {
	doc := &plan.Document{
		Groups: []plan.Group{{ID: "g1"}},
		Tasks: []plan.Task{
			{ID: "a", GroupID: "g1", Start: date("2025-12-01"), Due: date("2025-12-02"), RowOrder: 1},
			{ID: "b", GroupID: "g1", Start: date("2025-12-04"), Due: date("2025-12-05"), RowOrder: 2,
				DependsOn: plan.DependsOn{"a"}},
		},
	}
	rl := Layout(doc, Metrics{LeavesLaneCount: 1})
	arrows := Arrows(doc, rl, date("2025-12-01"), 20, 30)

	if len(arrows) != 1 {
		t.Fatalf("len(arrows) = %d, want 1", len(arrows))
	}
	ar := arrows[0]
	if ar.From.X != 40 {
		t.Errorf("From.X = %d, want 40 (right edge of a)", ar.From.X)
	}
	if ar.To.X != 60 {
		t.Errorf("To.X = %d, want 60 (left edge of b)", ar.To.X)
	}
	if ar.From.Y != rl.TaskCenters["a"] || ar.To.Y != rl.TaskCenters["b"] {
		t.Error("arrow Y anchors do not match row centers")
	}
}

func TestArrows_SkipsDanglingEdges(t *testing.T) {
	// A dependency on a task that no longer exists produces no arrow.
	doc := &plan.Document{
		Groups: []plan.Group{{ID: "g1"}},
		Tasks: []plan.Task{
			{ID: "b", GroupID: "g1", Start: date("2025-12-04"), Due: date("2025-12-05"),
				DependsOn: plan.DependsOn{"ghost"}},
		},
	}
	rl := Layout(doc, Metrics{LeavesLaneCount: 1})
	if arrows := Arrows(doc, rl, date("2025-12-01"), 20, 30); len(arrows) != 0 {
		t.Errorf("len(arrows) = %d, want 0 for a dangling edge", len(arrows))
	}
}

func TestArrows_SkipsCollapsedGroup(t *testing.T) {
	doc := &plan.Document{
		Groups: []plan.Group{{ID: "g1", Collapsed: true}},
		Tasks: []plan.Task{
			{ID: "a", GroupID: "g1", Start: date("2025-12-01"), Due: date("2025-12-02")},
			{ID: "b", GroupID: "g1", Start: date("2025-12-04"), Due: date("2025-12-05"),
				DependsOn: plan.DependsOn{"a"}},
		},
	}
	rl := Layout(doc, Metrics{LeavesLaneCount: 1})
	if arrows := Arrows(doc, rl, date("2025-12-01"), 20, 30); len(arrows) != 0 {
		t.Errorf("len(arrows) = %d, want 0 for a collapsed group", len(arrows))
	}
}

func TestRecenterScroll_PreservesCenterDate(t *testing.T) {
	// Viewport 400px wide scrolled to 800px at 20px cells: the center
	// sits at day index 50. Zooming to 44px cells must keep day 50 at
	// the viewport center.
	got := RecenterScroll(800, 400, 20, 44)
	want := 50.0*44 - 200
	if got != want {
		t.Errorf("RecenterScroll() = %v, want %v", got, want)
	}
}

func TestRecenterScroll_NeverNegative(t *testing.T) {
	if got := RecenterScroll(0, 400, 44, 12); got != 0 {
		t.Errorf("RecenterScroll() = %v, want 0", got)
	}
}

func TestRecenterScroll_NoopOnSameWidth(t *testing.T) {
	if got := RecenterScroll(123, 400, 20, 20); got != 123 {
		t.Errorf("RecenterScroll() = %v, want unchanged 123", got)
	}
}

func TestDragState_Apply(t *testing.T) {
	task := plan.Task{ID: "a", Start: date("2025-12-01"), Due: date("2025-12-05")}

	move := BeginDrag(DragMove, task, 100)
	start, due := move.Apply(3)
	if start.ISO() != "2025-12-04" || due.ISO() != "2025-12-08" {
		t.Errorf("move Apply(3) = %s..%s, want 2025-12-04..2025-12-08", start, due)
	}

	resize := BeginDrag(DragResizeDue, task, 100)
	start, due = resize.Apply(-10)
	if !due.Equal(start) {
		t.Errorf("resize due Apply(-10) = %s..%s, want due clamped at start", start, due)
	}

	resize = BeginDrag(DragResizeStart, task, 100)
	start, due = resize.Apply(10)
	if !start.Equal(due) {
		t.Errorf("resize start Apply(10) = %s..%s, want start clamped at due", start, due)
	}
}

func TestDragState_DayDelta(t *testing.T) {
	s := BeginDrag(DragMove, plan.Task{ID: "a"}, 100)
	if got := s.DayDelta(163, 20); got != 3 {
		t.Errorf("DayDelta(163) = %d, want 3", got)
	}
	if got := s.DayDelta(47, 20); got != -3 {
		t.Errorf("DayDelta(47) = %d, want -3", got)
	}
}

func TestDragState_EndIsIdle(t *testing.T) {
	s := BeginDrag(DragMove, plan.Task{ID: "a"}, 100)
	if done := s.End(); done.Active {
		t.Error("End() returned an active state")
	}
}
