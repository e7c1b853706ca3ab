// Package schedule implements the dependency-constrained scheduling core:
// cycle detection over the task dependency graph, the finish-to-start
// constraint solver, and the mutation layer that funnels every edit
// through the solver before it is considered settled.
//
// # Finish-to-start constraints
//
// A task with predecessors may not start before the next business day on
// or after its latest predecessor's due date: a predecessor finishing on
// a weekday allows a same-day start, and a weekend due date rolls the
// floor forward to Monday. [Enforce] restores this invariant by
// iterative relaxation: each pass pushes violating tasks later while
// preserving their business-day duration, and iteration stops at the
// first pass that changes nothing (the fixed point). Constraints are a
// floor, not a pin: the solver only ever pushes tasks later, it never
// pulls a task earlier when a predecessor moves up. Auto-compaction of
// manually placed tasks would be surprising, so slack is left alone.
//
// # Cycles
//
// The dependency graph must stay acyclic. [WouldCreateCycle] gates edge
// creation; because every mutation path checks it, [Enforce] does not
// need its own cycle detection. A cyclic graph smuggled in through
// corrupted storage degrades gracefully: the solver runs to its pass
// bound and returns its best-effort state rather than crashing.
package schedule

import (
	"github.com/tmarsh/gantry/pkg/calendar"
	"github.com/tmarsh/gantry/pkg/plan"
)

// minPasses is the floor of the solver's pass bound. Realistic graphs
// converge within (dependency-chain depth) passes; the bound only binds
// on corrupted cyclic input.
const minPasses = 4

// Enforce returns a copy of tasks satisfying every finish-to-start
// constraint. Each violating task is moved to start on the next business
// day on or after its latest predecessor's due date, keeping its
// business-day duration. Unknown predecessor IDs are skipped as
// non-constraining.
//
// Enforce is pure and idempotent on acyclic input: calling it on its own
// output changes nothing.
func Enforce(tasks []plan.Task) []plan.Task {
	next := make([]plan.Task, len(tasks))
	copy(next, tasks)

	maxPasses := 2 * len(tasks)
	if maxPasses < minPasses {
		maxPasses = minPasses
	}

	for pass := 0; pass < maxPasses; pass++ {
		byID := make(map[string]*plan.Task, len(next))
		for i := range next {
			byID[next[i].ID] = &next[i]
		}

		changed := false
		updated := make([]plan.Task, len(next))
		for i, t := range next {
			if len(t.DependsOn) == 0 {
				updated[i] = t
				continue
			}

			// Earliest allowed start across all predecessors.
			var required calendar.Date
			haveRequired := false
			for _, depID := range t.DependsOn {
				pred, ok := byID[depID]
				if !ok {
					continue
				}
				r := calendar.NextBusinessDay(pred.Due)
				if !haveRequired || r.After(required) {
					required = r
					haveRequired = true
				}
			}
			if !haveRequired || !t.Start.Before(required) {
				updated[i] = t
				continue
			}

			dur := t.Duration()
			t.Start = required
			t.Due = calendar.AddBusinessDays(required, dur-1)
			changed = true
			updated[i] = t
		}

		next = updated
		if !changed {
			break
		}
	}

	return next
}

// WouldCreateCycle reports whether adding the edge predecessor→successor
// to the dependency graph implied by tasks would close a cycle.
//
// The check walks the successor graph (predecessor ID → tasks that depend
// on it) from successorID: if predecessorID is reachable, the candidate
// predecessor is already downstream of the successor and the edge is
// illegal. A self-edge is always a cycle.
func WouldCreateCycle(predecessorID, successorID string, tasks []plan.Task) bool {
	if predecessorID == successorID {
		return true
	}

	succ := make(map[string][]string)
	for _, t := range tasks {
		for _, dep := range t.DependsOn {
			succ[dep] = append(succ[dep], t.ID)
		}
	}

	stack := []string{successorID}
	seen := make(map[string]bool)
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if cur == predecessorID {
			return true
		}
		if seen[cur] {
			continue
		}
		seen[cur] = true
		stack = append(stack, succ[cur]...)
	}
	return false
}

// LegalPredecessors returns the IDs of tasks that could be added as
// predecessors of successorID without creating a cycle. Used to disable
// illegal choices in a dependency picker.
func LegalPredecessors(successorID string, tasks []plan.Task) []string {
	var out []string
	for _, t := range tasks {
		if t.ID == successorID {
			continue
		}
		if !WouldCreateCycle(t.ID, successorID, tasks) {
			out = append(out, t.ID)
		}
	}
	return out
}
