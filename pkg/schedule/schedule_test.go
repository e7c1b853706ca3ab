package schedule

import (
	"testing"

	"github.com/tmarsh/gantry/pkg/calendar"
	"github.com/tmarsh/gantry/pkg/plan"
)

func date(iso string) calendar.Date { return calendar.MustParse(iso) }

func task(id string, start, due string, deps ...string) plan.Task {
	return plan.Task{
		ID:        id,
		GroupID:   "g1",
		Name:      id,
		Status:    plan.StatusNotStarted,
		Assignee:  plan.AssigneeMax,
		Start:     date(start),
		Due:       date(due),
		DependsOn: plan.NormalizeDeps(deps),
	}
}

func findTask(t *testing.T, tasks []plan.Task, id string) plan.Task {
	t.Helper()
	for _, task := range tasks {
		if task.ID == id {
			return task
		}
	}
	t.Fatalf("task %q not found", id)
	return plan.Task{}
}

func TestEnforce_NoDependencies(t *testing.T) {
	tasks := []plan.Task{
		task("a", "2025-12-01", "2025-12-03"),
		task("b", "2025-12-02", "2025-12-05"),
	}
	got := Enforce(tasks)
	for i, tk := range got {
		if !tk.Start.Equal(tasks[i].Start) || !tk.Due.Equal(tasks[i].Due) {
			t.Errorf("Enforce() moved independent task %s", tk.ID)
		}
	}
}

func TestEnforce_PushesViolatingSuccessor(t *testing.T) {
	// Predecessor due Wednesday 2025-12-03; successor starts Thursday
	// 2025-12-04 with an 8-business-day duration. Moving the
	// predecessor's due to Friday 2025-12-05 must push the successor to
	// that same Friday (a weekday due allows a same-day start),
	// preserving its duration.
	tasks := []plan.Task{
		task("t1", "2025-11-30", "2025-12-03"),
		task("t2", "2025-12-04", "2025-12-15", "t1"),
	}

	before := findTask(t, tasks, "t2")
	wantDur := before.Duration()
	if wantDur != 8 {
		t.Fatalf("precondition: t2 duration = %d, want 8", wantDur)
	}

	// Settled input stays put.
	settled := Enforce(tasks)
	t2 := findTask(t, settled, "t2")
	if !t2.Start.Equal(date("2025-12-04")) {
		t.Fatalf("Enforce() moved a satisfied task: start = %s", t2.Start)
	}

	// Edit the predecessor's due date two weekdays later.
	settled[0].Due = date("2025-12-05")
	got := Enforce(settled)

	t2 = findTask(t, got, "t2")
	if want := date("2025-12-05"); !t2.Start.Equal(want) {
		t.Errorf("t2.Start = %s, want %s", t2.Start, want)
	}
	if got, want := t2.Duration(), wantDur; got != want {
		t.Errorf("t2 duration = %d, want %d", got, want)
	}
	if want := date("2025-12-16"); !t2.Due.Equal(want) {
		t.Errorf("t2.Due = %s, want %s", t2.Due, want)
	}
}

func TestEnforce_AllowsSameDayStartOnWeekdayDue(t *testing.T) {
	// Predecessor due Wednesday 2025-12-03, successor already starting
	// that Wednesday: the constraint is satisfied and nothing moves.
	tasks := []plan.Task{
		task("t1", "2025-12-01", "2025-12-03"),
		task("t2", "2025-12-03", "2025-12-05", "t1"),
	}
	got := Enforce(tasks)
	t2 := findTask(t, got, "t2")
	if !t2.Start.Equal(date("2025-12-03")) || !t2.Due.Equal(date("2025-12-05")) {
		t.Errorf("t2 = %s..%s, want unchanged 2025-12-03..2025-12-05", t2.Start, t2.Due)
	}
}

func TestEnforce_WeekendDueRollsFloorToMonday(t *testing.T) {
	// A predecessor due on Sunday 2025-12-07 floors its successor at
	// Monday 2025-12-08.
	tasks := []plan.Task{
		task("t1", "2025-12-03", "2025-12-07"),
		task("t2", "2025-12-04", "2025-12-04", "t1"),
	}
	got := Enforce(tasks)
	t2 := findTask(t, got, "t2")
	if want := date("2025-12-08"); !t2.Start.Equal(want) {
		t.Errorf("t2.Start = %s, want %s", t2.Start, want)
	}
}

func TestEnforce_NeverPullsEarlier(t *testing.T) {
	// Moving a predecessor earlier leaves the successor's slack alone:
	// constraints are a floor, not a pin.
	tasks := []plan.Task{
		task("t1", "2025-11-30", "2025-12-03"),
		task("t2", "2025-12-10", "2025-12-12", "t1"),
	}
	got := Enforce(tasks)
	t2 := findTask(t, got, "t2")
	if !t2.Start.Equal(date("2025-12-10")) {
		t.Errorf("t2.Start = %s, want unchanged 2025-12-10", t2.Start)
	}
}

func TestEnforce_ChainPropagation(t *testing.T) {
	// a -> b -> c with everything violating; one call settles the chain.
	tasks := []plan.Task{
		task("a", "2025-12-01", "2025-12-05"),
		task("b", "2025-12-01", "2025-12-02", "a"),
		task("c", "2025-12-01", "2025-12-01", "b"),
	}
	got := Enforce(tasks)

	b := findTask(t, got, "b")
	if want := date("2025-12-05"); !b.Start.Equal(want) {
		t.Errorf("b.Start = %s, want %s", b.Start, want)
	}
	if want := date("2025-12-08"); !b.Due.Equal(want) {
		t.Errorf("b.Due = %s, want %s (second day skips the weekend)", b.Due, want)
	}
	c := findTask(t, got, "c")
	if want := date("2025-12-08"); !c.Start.Equal(want) {
		t.Errorf("c.Start = %s, want %s", c.Start, want)
	}
}

func TestEnforce_MultiplePredecessorsUseLatest(t *testing.T) {
	tasks := []plan.Task{
		task("a", "2025-12-01", "2025-12-02"),
		task("b", "2025-12-01", "2025-12-10"),
		task("c", "2025-12-01", "2025-12-03", "a", "b"),
	}
	got := Enforce(tasks)
	c := findTask(t, got, "c")
	if want := date("2025-12-10"); !c.Start.Equal(want) {
		t.Errorf("c.Start = %s, want %s (floored by latest predecessor)", c.Start, want)
	}
}

func TestEnforce_SkipsUnknownPredecessors(t *testing.T) {
	tasks := []plan.Task{
		task("a", "2025-12-01", "2025-12-03", "ghost"),
	}
	got := Enforce(tasks)
	a := findTask(t, got, "a")
	if !a.Start.Equal(date("2025-12-01")) || !a.Due.Equal(date("2025-12-03")) {
		t.Errorf("task with only unknown predecessors moved: %s..%s", a.Start, a.Due)
	}
}

func TestEnforce_Idempotent(t *testing.T) {
	tasks := []plan.Task{
		task("a", "2025-12-01", "2025-12-03"),
		task("b", "2025-12-01", "2025-12-05", "a"),
		task("c", "2025-12-02", "2025-12-04", "b"),
		task("d", "2025-12-01", "2025-12-02", "a", "c"),
	}
	once := Enforce(tasks)
	twice := Enforce(once)
	for i := range once {
		if !once[i].Start.Equal(twice[i].Start) || !once[i].Due.Equal(twice[i].Due) {
			t.Errorf("second Enforce() moved %s: %s..%s -> %s..%s",
				once[i].ID, once[i].Start, once[i].Due, twice[i].Start, twice[i].Due)
		}
	}
}

func TestEnforce_DurationPreserved(t *testing.T) {
	tasks := []plan.Task{
		task("a", "2025-12-01", "2025-12-05"),
		task("b", "2025-12-01", "2025-12-09", "a"),
		task("c", "2025-12-03", "2025-12-12", "b"),
	}
	before := map[string]int{}
	for _, tk := range tasks {
		before[tk.ID] = tk.Duration()
	}
	got := Enforce(tasks)
	for _, tk := range got {
		if tk.Duration() != before[tk.ID] {
			t.Errorf("%s duration = %d, want %d", tk.ID, tk.Duration(), before[tk.ID])
		}
	}
}

func TestEnforce_StartsOnOrAfterPredecessorDue(t *testing.T) {
	// Invariant: T.Start >= next business day on or after P.Due for all
	// edges.
	tasks := []plan.Task{
		task("a", "2025-12-01", "2025-12-05"), // due Friday
		task("b", "2025-12-01", "2025-12-09", "a"),
		task("c", "2025-12-03", "2025-12-12", "b"),
		task("d", "2025-12-01", "2025-12-02", "a", "c"),
	}
	got := Enforce(tasks)
	byID := map[string]plan.Task{}
	for _, tk := range got {
		byID[tk.ID] = tk
	}
	for _, tk := range got {
		for _, dep := range tk.DependsOn {
			pred, ok := byID[dep]
			if !ok {
				continue
			}
			floor := calendar.NextBusinessDay(pred.Due)
			if tk.Start.Before(floor) {
				t.Errorf("%s starts %s, before floor %s from predecessor %s",
					tk.ID, tk.Start, floor, dep)
			}
		}
	}
}

func TestEnforce_CyclicInputTerminates(t *testing.T) {
	// A cyclic graph can only arrive through corrupted storage. The
	// solver must stop at its pass bound, not hang or panic.
	tasks := []plan.Task{
		task("a", "2025-12-01", "2025-12-02", "b"),
		task("b", "2025-12-01", "2025-12-02", "a"),
	}
	got := Enforce(tasks)
	if len(got) != 2 {
		t.Fatalf("Enforce() returned %d tasks, want 2", len(got))
	}
}

func TestWouldCreateCycle(t *testing.T) {
	// Chain a -> b -> c (b depends on a, c depends on b).
	tasks := []plan.Task{
		task("a", "2025-12-01", "2025-12-02"),
		task("b", "2025-12-03", "2025-12-04", "a"),
		task("c", "2025-12-05", "2025-12-06", "b"),
	}

	tests := []struct {
		name       string
		pred, succ string
		want       bool
	}{
		{"closing the chain is a cycle", "c", "a", true},
		{"skip edge is a cycle", "b", "a", true},
		{"self reference", "a", "a", true},
		{"forward shortcut is fine", "a", "c", false},
		{"reversing an existing edge is a cycle", "c", "b", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WouldCreateCycle(tt.pred, tt.succ, tasks); got != tt.want {
				t.Errorf("WouldCreateCycle(%q, %q) = %v, want %v", tt.pred, tt.succ, got, tt.want)
			}
		})
	}
}

func TestWouldCreateCycle_TransitiveReachability(t *testing.T) {
	// A -> B -> C exists; adding C as a predecessor of A must report
	// true because C already transitively depends on A.
	tasks := []plan.Task{
		task("A", "2025-12-01", "2025-12-02"),
		task("B", "2025-12-03", "2025-12-04", "A"),
		task("C", "2025-12-05", "2025-12-06", "B"),
	}
	if !WouldCreateCycle("C", "A", tasks) {
		t.Error("WouldCreateCycle(C, A) = false, want true")
	}
}

func TestLegalPredecessors(t *testing.T) {
	tasks := []plan.Task{
		task("a", "2025-12-01", "2025-12-02"),
		task("b", "2025-12-03", "2025-12-04", "a"),
		task("c", "2025-12-05", "2025-12-06", "b"),
	}
	got := LegalPredecessors("a", tasks)
	if len(got) != 0 {
		t.Errorf("LegalPredecessors(a) = %v, want none (all downstream)", got)
	}
	got = LegalPredecessors("c", tasks)
	if len(got) != 2 {
		t.Errorf("LegalPredecessors(c) = %v, want [a b]", got)
	}
}
