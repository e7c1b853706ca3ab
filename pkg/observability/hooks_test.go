package observability

import (
	"context"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	s := NoopSolverHooks{}
	s.OnSettleStart(ctx, 10)
	s.OnSettleComplete(ctx, 10, 3, time.Second)
	s.OnCycleRejected(ctx, "t1", "t2")

	st := NoopStoreHooks{}
	st.OnLoad(ctx, "draft", true)
	st.OnSave(ctx, "version", 1024)

	r := NoopRoomHooks{}
	r.OnRoomCreate(ctx, "abc123")
	r.OnRoomJoin(ctx, "abc123")
	r.OnMove(ctx, "abc123", "playing")
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()

	if _, ok := Solver().(NoopSolverHooks); !ok {
		t.Error("Solver() should return NoopSolverHooks by default")
	}
	if _, ok := Store().(NoopStoreHooks); !ok {
		t.Error("Store() should return NoopStoreHooks by default")
	}
	if _, ok := Rooms().(NoopRoomHooks); !ok {
		t.Error("Rooms() should return NoopRoomHooks by default")
	}

	customSolver := &testSolverHooks{}
	SetSolverHooks(customSolver)
	if Solver() != SolverHooks(customSolver) {
		t.Error("SetSolverHooks should set custom hooks")
	}

	customStore := &testStoreHooks{}
	SetStoreHooks(customStore)
	if Store() != StoreHooks(customStore) {
		t.Error("SetStoreHooks should set custom hooks")
	}

	customRooms := &testRoomHooks{}
	SetRoomHooks(customRooms)
	if Rooms() != RoomHooks(customRooms) {
		t.Error("SetRoomHooks should set custom hooks")
	}

	// Nil registrations are ignored
	SetSolverHooks(nil)
	if Solver() != SolverHooks(customSolver) {
		t.Error("SetSolverHooks(nil) should keep the previous hooks")
	}

	Reset()
	if _, ok := Solver().(NoopSolverHooks); !ok {
		t.Error("Reset() should restore noop solver hooks")
	}
}

func TestHooksReceiveEvents(t *testing.T) {
	Reset()
	defer Reset()

	h := &testSolverHooks{}
	SetSolverHooks(h)

	ctx := context.Background()
	Solver().OnSettleStart(ctx, 5)
	Solver().OnSettleComplete(ctx, 5, 0, time.Millisecond)
	Solver().OnCycleRejected(ctx, "a", "b")

	if h.starts != 1 || h.completes != 1 || h.cycles != 1 {
		t.Errorf("hooks received starts=%d completes=%d cycles=%d, want 1 each",
			h.starts, h.completes, h.cycles)
	}
}

type testSolverHooks struct {
	starts, completes, cycles int
}

func (h *testSolverHooks) OnSettleStart(context.Context, int) { h.starts++ }
func (h *testSolverHooks) OnSettleComplete(context.Context, int, int, time.Duration) {
	h.completes++
}
func (h *testSolverHooks) OnCycleRejected(context.Context, string, string) { h.cycles++ }

type testStoreHooks struct{}

func (*testStoreHooks) OnLoad(context.Context, string, bool) {}
func (*testStoreHooks) OnSave(context.Context, string, int)  {}

type testRoomHooks struct{}

func (*testRoomHooks) OnRoomCreate(context.Context, string)   {}
func (*testRoomHooks) OnRoomJoin(context.Context, string)     {}
func (*testRoomHooks) OnMove(context.Context, string, string) {}
