// Package pkg provides the core libraries for Gantry timeline scheduling.
//
// # Overview
//
// Gantry keeps dependency-constrained project timelines consistent: tasks
// carry finish-to-start dependencies, and every edit is settled by a
// constraint solver before it is stored or displayed. The pkg directory
// is organized into these areas:
//
//  1. [calendar] - Date arithmetic and business-day utilities
//  2. [plan] - The timeline document model (groups, tasks, leaves, versions)
//  3. [schedule] - Cycle detection, the constraint solver, and mutations
//  4. [layout] - Row stacking, lane packing, and day-grid geometry
//  5. [render] - Graphviz dependency diagrams and the terminal Gantt view
//  6. [store] - Draft and version persistence (file, memory, MongoDB)
//  7. [rooms] - Tic-tac-toe game rooms (memory, Redis)
//
// # Architecture
//
// The typical data flow through Gantry:
//
//	JSON document (draft store or file)
//	         ↓
//	    [plan] package (decode + normalize)
//	         ↓
//	    [schedule] package (settle finish-to-start constraints)
//	         ↓
//	    [layout] package (rows, lanes, bar geometry)
//	         ↓
//	    [render] package (DOT/SVG, terminal chart)
//
// Supporting packages: [errors] for coded errors, [observability] for
// optional instrumentation hooks, [buildinfo] for version stamping.
package pkg
