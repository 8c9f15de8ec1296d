package manager

import (
	"fmt"

	"github.com/dshills/toolframe/internal/env"
	"github.com/dshills/toolframe/internal/event"
	"github.com/dshills/toolframe/internal/log"
	"github.com/dshills/toolframe/internal/menu"
	"github.com/dshills/toolframe/internal/tool"
)

// Config configures a Manager.
type Config struct {
	// Logger receives dispatch traces and handler errors. Defaults to the
	// nop logger.
	Logger *log.Logger

	// Presenter receives scheduled context-menu requests. May be nil, in
	// which case menu requests are recorded but never forwarded.
	Presenter menu.Presenter
}

// DefaultConfig returns the default manager configuration.
func DefaultConfig() Config {
	return Config{Logger: log.Nop}
}

// Manager is the master controller: it registers editing tools, pumps
// application events to the tools requesting them, and runs the per-tool
// state machines (transitions and wait requests).
type Manager struct {
	// byName and byID are bijective views of the same record set.
	byName map[string]*toolState
	byID   map[tool.ID]*toolState

	// activeTools is the dispatch-priority stack; the last element is the
	// top (most recently invoked).
	activeTools []tool.ID

	environment env.Handles
	presenter   menu.Presenter
	logger      *log.Logger

	// current is the record whose handler is executing right now. It is a
	// single slot; nesting is handled by save/restore around each run.
	current *toolState

	// passEvent is the dispatch-local propagation flag set by PassEvent.
	passEvent bool
}

var _ tool.Manager = (*Manager)(nil)

// New creates a manager with the given configuration.
func New(cfg Config) *Manager {
	if cfg.Logger == nil {
		cfg.Logger = log.Nop
	}
	return &Manager{
		byName:    make(map[string]*toolState),
		byID:      make(map[tool.ID]*toolState),
		presenter: cfg.Presenter,
		logger:    cfg.Logger,
	}
}

// NewWithDefaults creates a manager with the default configuration.
func NewWithDefaults() *Manager {
	return New(DefaultConfig())
}

// SetPresenter sets the context-menu presenter.
func (m *Manager) SetPresenter(p menu.Presenter) {
	m.presenter = p
}

// SetEnvironment sets the per-session environment handle bundle shared with
// every tool. Called by the application shell when a session is set up.
func (m *Manager) SetEnvironment(h env.Handles) {
	m.environment = h
}

// Environment returns the current environment handle bundle.
func (m *Manager) Environment() env.Handles {
	return m.environment
}

// RegisterTool adds a tool to the manager set and initializes it. Called
// once per tool during application start-up. Duplicate names or id
// collisions are programmer errors and panic before any registry mutation.
// The manager owns the registered tool for the rest of its lifetime.
func (m *Manager) RegisterTool(t tool.Tool) {
	name := t.Name()
	if name == "" {
		panic("manager: cannot register tool with empty name")
	}

	id := tool.MakeID(name)
	if _, ok := m.byName[name]; ok {
		panic(fmt.Sprintf("manager: tool %q already registered", name))
	}
	if other, ok := m.byID[id]; ok {
		panic(fmt.Sprintf("manager: tool id collision between %q and %q", name, other.tool.Name()))
	}

	st := &toolState{tool: t, id: id}
	m.byName[name] = st
	m.byID[id] = st

	m.logger.Debug("registered tool %q (id %d)", name, id)
	t.Init(m)
}

// FindTool returns the registered tool with the given name, or nil.
func (m *Manager) FindTool(name string) tool.Tool {
	if st, ok := m.byName[name]; ok {
		return st.tool
	}
	return nil
}

// FindToolByID returns the registered tool with the given id, or nil.
func (m *Manager) FindToolByID(id tool.ID) tool.Tool {
	if st, ok := m.byID[id]; ok {
		return st.tool
	}
	return nil
}

// InvokeTool activates a registered tool by name: the tool is pushed on top
// of the active stack and its synthesized activation event is delivered
// directly, bypassing the top-down scan. Reports whether the tool exists.
func (m *Manager) InvokeTool(name string) bool {
	return m.InvokeToolWithParam(name, nil)
}

// InvokeToolWithParam activates a tool by name with a caller-supplied
// parameter attached to the activation event. The payload's type is opaque
// to the manager.
func (m *Manager) InvokeToolWithParam(name string, param any) bool {
	st, ok := m.byName[name]
	if !ok {
		return false
	}
	m.invoke(st, param)
	return true
}

// InvokeToolByID activates a registered tool by id.
func (m *Manager) InvokeToolByID(id tool.ID) bool {
	st, ok := m.byID[id]
	if !ok {
		return false
	}
	m.invoke(st, nil)
	return true
}

func (m *Manager) invoke(st *toolState, param any) {
	m.pushActive(st)

	ev := event.Activation(st.tool.Name(), param)
	m.logger.Debug("invoke tool %q", st.tool.Name())

	saved := m.passEvent
	m.passEvent = false
	m.deliver(st, ev)
	m.passEvent = saved
}

// ScheduleNextState arms a (conditions -> handler) transition for the tool.
// Multiple calls before the running handler returns accumulate
// simultaneously-armed alternatives; the table is cleared when one fires.
// When more than one armed transition matches the same event, the first
// one scheduled wins.
func (m *Manager) ScheduleNextState(t tool.Tool, h tool.Handler, conds event.ConditionList) {
	st := m.stateFor(t)
	st.transitions = append(st.transitions, transition{conds: conds, handler: h})
}

// ScheduleWait cooperatively suspends the calling handler until an event
// matching conds arrives, returning that event. ok is false when the wait
// was abandoned by ResetTool; the handler must unwind promptly then.
//
// Callable only from inside the tool's own running handler; calling it
// elsewhere, or while a wait is already pending, is a programmer error.
func (m *Manager) ScheduleWait(t tool.Tool, conds event.ConditionList) (event.Event, bool) {
	st := m.stateFor(t)
	if m.current != st || st.routine == nil {
		panic(fmt.Sprintf("manager: ScheduleWait for %q called outside its running handler", t.Name()))
	}
	if st.pendingWait != nil {
		panic(fmt.Sprintf("manager: tool %q already has a pending wait", t.Name()))
	}

	st.pendingWait = conds
	return st.routine.park()
}

// ScheduleContextMenu records the tool's context-menu request. TriggerNow
// forwards the menu to the presenter immediately, TriggerButton arms it for
// the trigger input (a right click reaching this tool), TriggerOff clears
// it. The manager never renders menus itself.
func (m *Manager) ScheduleContextMenu(t tool.Tool, mn *menu.Menu, trigger menu.Trigger) {
	st := m.stateFor(t)

	switch trigger {
	case menu.TriggerOff:
		st.cmenu = nil
		st.cmenuTrigger = menu.TriggerOff
	case menu.TriggerNow:
		st.cmenu = mn
		st.cmenuTrigger = trigger
		m.showMenu(st)
	case menu.TriggerButton:
		st.cmenu = mn
		st.cmenuTrigger = trigger
	}
}

// PassEvent marks the event currently being handled as not fully consumed:
// dispatch continues offering the same event to the next tool down the
// active stack even though this tool acted on it.
func (m *Manager) PassEvent() {
	m.passEvent = true
}

// ProcessEvent takes one event from the input pump and propagates it to the
// tools that requested events of matching type, walking the active stack
// top-down. It reports whether a tool fully consumed the event. Unmatched
// events are dropped. Panics raised inside tool handlers propagate to the
// caller.
func (m *Manager) ProcessEvent(ev event.Event) bool {
	saved := m.passEvent
	defer func() { m.passEvent = saved }()

	m.logger.Debug("process event %s", ev)

	// Handlers may invoke or reset tools mid-dispatch, so walk a snapshot.
	ids := make([]tool.ID, len(m.activeTools))
	copy(ids, m.activeTools)

	for i := len(ids) - 1; i >= 0; i-- {
		st, ok := m.byID[ids[i]]
		if !ok || !st.active {
			continue
		}

		m.passEvent = false
		if m.deliver(st, ev) && !m.passEvent {
			return true
		}
	}

	m.dispatchContextMenu(ev)
	return false
}

// deliver offers one event to one tool: a matching pending wait is resumed,
// else the first matching armed transition fires (clearing the table).
// Reports whether the tool acted on the event.
func (m *Manager) deliver(st *toolState, ev event.Event) bool {
	if st.pendingWait != nil {
		if !st.pendingWait.Matches(ev) {
			return false
		}
		st.pendingWait = nil
		m.resume(st, ev)
		return true
	}

	for _, tr := range st.transitions {
		if tr.conds.Matches(ev) {
			st.transitions = nil
			m.run(st, tr.handler, ev)
			return true
		}
	}
	return false
}

// run starts a handler invocation and blocks until it parks or returns.
func (m *Manager) run(st *toolState, h tool.Handler, ev event.Event) {
	r := newRoutine()
	st.routine = r

	prev := m.current
	m.current = st
	r.start(h, ev, func(err error) {
		m.logger.Warn("tool %q handler: %v", st.tool.Name(), err)
	})
	k := r.wait()
	m.current = prev

	m.settle(st, r, k)
}

// resume wakes a suspended handler with the event that satisfied its wait
// and blocks until it parks again or returns.
func (m *Manager) resume(st *toolState, ev event.Event) {
	r := st.routine

	prev := m.current
	m.current = st
	r.send(ev)
	k := r.wait()
	m.current = prev

	m.settle(st, r, k)
}

func (m *Manager) settle(st *toolState, r *routine, k yieldKind) {
	switch k {
	case yieldParked:
		// Suspended inside ScheduleWait; pendingWait was recorded there.
	case yieldDone:
		if st.routine == r {
			st.routine = nil
		}
		if len(st.transitions) == 0 && st.pendingWait == nil {
			m.finishTool(st)
		}
	case yieldPanic:
		if st.routine == r {
			st.routine = nil
		}
		m.finishTool(st)
		panic(r.panicked)
	}
}

// finishTool retires a tool that reached a terminal state: no armed
// transition and no pending wait. The record survives; only its mutable
// fields and stack membership are cleared.
func (m *Manager) finishTool(st *toolState) {
	m.logger.Debug("tool %q finished", st.tool.Name())
	st.clear()
	m.removeActive(st)
}

// ResetTool forcibly clears a tool's wait/transition state and active-stack
// membership, abandons any suspended execution, and runs the tool's Reset
// hook. The cancellation primitive: a stale suspension never resumes.
func (m *Manager) ResetTool(t tool.Tool) {
	st, ok := m.byName[t.Name()]
	if !ok {
		return
	}
	if m.current == st {
		panic(fmt.Sprintf("manager: tool %q cannot reset itself from its own handler", t.Name()))
	}
	if st.routine != nil && st.pendingWait == nil {
		// Running but not parked: the tool is somewhere below the caller in
		// a nested dispatch chain.
		panic(fmt.Sprintf("manager: tool %q cannot be reset while its handler is executing", t.Name()))
	}

	m.logger.Debug("reset tool %q", st.tool.Name())
	m.releaseRoutine(st)
	st.clear()
	m.removeActive(st)
	st.tool.Reset()
}

// releaseRoutine abandons a parked handler and blocks until its goroutine
// finishes unwinding, so the Reset hook never overlaps handler code. A panic
// raised during the unwind propagates to the caller.
func (m *Manager) releaseRoutine(st *toolState) {
	r := st.routine
	if r == nil {
		return
	}
	st.routine = nil
	r.abandon()
	if r.wait() == yieldPanic {
		panic(r.panicked)
	}
}

// Close tears the manager down: every tool is reset and any parked handler
// is released. The registry itself is torn down with the manager.
func (m *Manager) Close() {
	for i := len(m.activeTools) - 1; i >= 0; i-- {
		if st, ok := m.byID[m.activeTools[i]]; ok {
			st.active = false
		}
	}
	m.activeTools = nil

	for _, st := range m.byName {
		m.releaseRoutine(st)
		st.clear()
		st.tool.Reset()
	}
}

// ActiveTools returns the active stack bottom-up; the last name is the top.
func (m *Manager) ActiveTools() []string {
	names := make([]string, 0, len(m.activeTools))
	for _, id := range m.activeTools {
		if st, ok := m.byID[id]; ok {
			names = append(names, st.tool.Name())
		}
	}
	return names
}

func (m *Manager) stateFor(t tool.Tool) *toolState {
	st, ok := m.byName[t.Name()]
	if !ok {
		panic(fmt.Sprintf("manager: tool %q is not registered", t.Name()))
	}
	return st
}

// pushActive puts the tool on top of the stack. A tool id appears at most
// once: re-invoking an active tool moves it to the top.
func (m *Manager) pushActive(st *toolState) {
	if st.active {
		m.removeActive(st)
	}
	m.activeTools = append(m.activeTools, st.id)
	st.active = true
}

func (m *Manager) removeActive(st *toolState) {
	if !st.active {
		return
	}
	for i, id := range m.activeTools {
		if id == st.id {
			m.activeTools = append(m.activeTools[:i], m.activeTools[i+1:]...)
			break
		}
	}
	st.active = false
}

// dispatchContextMenu forwards an armed TriggerButton menu when the trigger
// input (a right click) went unconsumed. The topmost armed tool wins.
func (m *Manager) dispatchContextMenu(ev event.Event) {
	if ev.Category != event.CategoryMouse || ev.Kind != event.KindMouseClick || ev.Button != event.ButtonRight {
		return
	}

	for i := len(m.activeTools) - 1; i >= 0; i-- {
		st, ok := m.byID[m.activeTools[i]]
		if !ok {
			continue
		}
		if st.cmenu != nil && st.cmenuTrigger == menu.TriggerButton {
			m.showMenu(st)
			return
		}
	}
}

func (m *Manager) showMenu(st *toolState) {
	if m.presenter == nil || st.cmenu == nil {
		return
	}
	m.logger.Debug("show menu %q for tool %q", st.cmenu.Title, st.tool.Name())
	m.presenter.ShowMenu(menu.Request{Tool: st.tool.Name(), Menu: st.cmenu})
}
