// Package tool defines the contract between the dispatch manager and the
// editing tools it drives: stable tool identity, the lifecycle hooks every
// tool exposes, and the scheduling capabilities the manager hands back to a
// tool at registration.
package tool

import (
	"hash/fnv"

	"github.com/dshills/toolframe/internal/env"
	"github.com/dshills/toolframe/internal/event"
	"github.com/dshills/toolframe/internal/menu"
)

// ID is the numeric identity of a tool, derived deterministically from its
// name. IDs are collision-checked at registration.
type ID int32

// MakeID derives the stable id for a tool name. The same name always yields
// the same id across runs and processes.
func MakeID(name string) ID {
	h := fnv.New32a()
	_, _ = h.Write([]byte(name))
	// Keep ids positive so callers can use -1 as a sentinel.
	return ID(h.Sum32() & 0x7fffffff)
}

// Handler is a transition entry point. The manager invokes it with the event
// that fired the transition (or satisfied the activation). A returned error
// is logged by the manager and does not stop dispatch; panics propagate out
// of ProcessEvent.
type Handler func(ev event.Event) error

// Manager is the capability surface a tool programs against. The concrete
// manager is passed to Init as a back-reference; tools must not retain
// scheduling state across Reset.
type Manager interface {
	// ScheduleNextState arms a (conditions -> handler) transition for the
	// tool. Repeated calls before the running handler returns accumulate
	// alternatives; the table is cleared when one fires.
	ScheduleNextState(t Tool, h Handler, conds event.ConditionList)

	// ScheduleWait suspends the calling handler until an event matching
	// conds arrives, returning that event. ok is false when the wait was
	// abandoned by a reset; the handler must unwind promptly in that case.
	// Callable only from inside the tool's own running handler.
	ScheduleWait(t Tool, conds event.ConditionList) (ev event.Event, ok bool)

	// ScheduleContextMenu records a context-menu request for the tool.
	ScheduleContextMenu(t Tool, m *menu.Menu, trigger menu.Trigger)

	// PassEvent marks the event being handled as not fully consumed, so
	// dispatch continues to the next tool down the active stack.
	PassEvent()

	// InvokeTool activates a registered tool by name, pushing it on top of
	// the active stack. Reports whether the tool was found.
	InvokeTool(name string) bool

	// FindTool returns the registered tool with the given name, or nil.
	FindTool(name string) Tool

	// Environment returns the current session environment handles. Tools
	// re-fetch this on demand rather than caching it.
	Environment() env.Handles
}

// Tool is one self-contained unit of interactive behavior. Beyond the
// contract below the manager treats it as opaque.
type Tool interface {
	// Name is the stable human-readable identity; the numeric id is derived
	// from it.
	Name() string

	// Init is called once at registration with the manager back-reference.
	// Tools typically arm their activation transition here.
	Init(m Manager)

	// Reset is called when the manager forcibly clears the tool's state.
	Reset()
}
