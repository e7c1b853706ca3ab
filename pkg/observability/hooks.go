// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about solver runs, store operations, and game rooms.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// This approach:
//   - Avoids import cycles (hooks are registered by main, not by libraries)
//   - Keeps the core library dependency-free from observability frameworks
//   - Allows different backends (OpenTelemetry, Prometheus, DataDog, etc.)
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetSolverHooks(&mySolverHooks{})
//	    observability.SetStoreHooks(&myStoreHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Solver().OnSettleStart(ctx, taskCount)
//	// ... run passes ...
//	observability.Solver().OnSettleComplete(ctx, taskCount, moved, duration)
package observability

import (
	"context"
	"sync"
	"time"
)

// SolverHooks receives events from the constraint solver.
type SolverHooks interface {
	// OnSettleStart records the start of a settle run.
	OnSettleStart(ctx context.Context, taskCount int)

	// OnSettleComplete records a finished settle run and how many tasks
	// the solver moved.
	OnSettleComplete(ctx context.Context, taskCount, moved int, duration time.Duration)

	// OnCycleRejected records a dependency edge refused because it would
	// close a cycle.
	OnCycleRejected(ctx context.Context, predecessorID, successorID string)
}

// StoreHooks receives events from draft and version stores.
type StoreHooks interface {
	// OnLoad records a store read.
	OnLoad(ctx context.Context, kind string, found bool)

	// OnSave records a store write.
	OnSave(ctx context.Context, kind string, size int)
}

// RoomHooks receives events from game room operations.
type RoomHooks interface {
	// OnRoomCreate records a new room.
	OnRoomCreate(ctx context.Context, roomID string)

	// OnRoomJoin records a player joining a room.
	OnRoomJoin(ctx context.Context, roomID string)

	// OnMove records a move, with the room status after it applied.
	OnMove(ctx context.Context, roomID, status string)
}

// NoopSolverHooks is a no-op implementation of SolverHooks.
type NoopSolverHooks struct{}

func (NoopSolverHooks) OnSettleStart(context.Context, int)                        {}
func (NoopSolverHooks) OnSettleComplete(context.Context, int, int, time.Duration) {}
func (NoopSolverHooks) OnCycleRejected(context.Context, string, string)           {}

// NoopStoreHooks is a no-op implementation of StoreHooks.
type NoopStoreHooks struct{}

func (NoopStoreHooks) OnLoad(context.Context, string, bool) {}
func (NoopStoreHooks) OnSave(context.Context, string, int)  {}

// NoopRoomHooks is a no-op implementation of RoomHooks.
type NoopRoomHooks struct{}

func (NoopRoomHooks) OnRoomCreate(context.Context, string)   {}
func (NoopRoomHooks) OnRoomJoin(context.Context, string)     {}
func (NoopRoomHooks) OnMove(context.Context, string, string) {}

var (
	solverHooks SolverHooks = NoopSolverHooks{}
	storeHooks  StoreHooks  = NoopStoreHooks{}
	roomHooks   RoomHooks   = NoopRoomHooks{}
	hooksMu     sync.RWMutex
)

// SetSolverHooks registers custom solver hooks.
// This should be called once at application startup before any solver runs.
func SetSolverHooks(h SolverHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		solverHooks = h
	}
}

// SetStoreHooks registers custom store hooks.
// This should be called once at application startup before any store operations.
func SetStoreHooks(h StoreHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		storeHooks = h
	}
}

// SetRoomHooks registers custom room hooks.
// This should be called once at application startup before any room operations.
func SetRoomHooks(h RoomHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		roomHooks = h
	}
}

// Solver returns the registered solver hooks.
func Solver() SolverHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return solverHooks
}

// Store returns the registered store hooks.
func Store() StoreHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return storeHooks
}

// Rooms returns the registered room hooks.
func Rooms() RoomHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return roomHooks
}

// Reset restores all hooks to their no-op defaults. Intended for tests.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	solverHooks = NoopSolverHooks{}
	storeHooks = NoopStoreHooks{}
	roomHooks = NoopRoomHooks{}
}
