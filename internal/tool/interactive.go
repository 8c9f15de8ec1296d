package tool

import (
	"github.com/dshills/toolframe/internal/env"
	"github.com/dshills/toolframe/internal/event"
	"github.com/dshills/toolframe/internal/menu"
)

// Interactive is an embeddable base for event-driven tools. It stores the
// manager back-reference and exposes the scheduling calls without the
// explicit tool argument, so handler bodies read as straight-line logic:
//
//	func (t *moveTool) main(ev event.Event) error {
//		start, ok := t.WaitForEvent(event.OnMouse(event.KindMouseClick, event.ButtonLeft))
//		if !ok {
//			return nil
//		}
//		...
//	}
//
// The manager resolves scheduling calls by tool name, so the base can act on
// behalf of the embedding tool. Embedders that override Init must call
// Interactive.Init to keep the back-reference.
type Interactive struct {
	name string
	mgr  Manager
}

// NewInteractive creates the base for a named tool.
func NewInteractive(name string) Interactive {
	return Interactive{name: name}
}

// Name returns the tool name.
func (t *Interactive) Name() string {
	return t.name
}

// Init stores the manager back-reference.
func (t *Interactive) Init(m Manager) {
	t.mgr = m
}

// Reset is a no-op; tools with their own state override it.
func (t *Interactive) Reset() {}

// Manager returns the back-reference set at registration (nil before Init).
func (t *Interactive) Manager() Manager {
	return t.mgr
}

// Go arms a transition from this tool to the given handler.
func (t *Interactive) Go(h Handler, conds ...event.Condition) {
	t.mgr.ScheduleNextState(t, h, event.ConditionList(conds))
}

// WaitForEvent suspends the running handler until a matching event arrives.
// ok is false when the wait was abandoned by a reset.
func (t *Interactive) WaitForEvent(conds ...event.Condition) (event.Event, bool) {
	return t.mgr.ScheduleWait(t, event.ConditionList(conds))
}

// SetContextMenu schedules this tool's context menu.
func (t *Interactive) SetContextMenu(m *menu.Menu, trigger menu.Trigger) {
	t.mgr.ScheduleContextMenu(t, m, trigger)
}

// PassEvent lets the event currently being handled continue down the stack.
func (t *Interactive) PassEvent() {
	t.mgr.PassEvent()
}

// Environment fetches the current session environment handles.
func (t *Interactive) Environment() env.Handles {
	return t.mgr.Environment()
}
