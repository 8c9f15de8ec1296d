// Package script lets tools be authored in Lua. A script chunk returns a
// table of handler functions; the bound tool arms its activation transition
// on Init and dispatches events into the Lua state. Scripts use the tf
// module to reach the manager:
//
//	return {
//		on_activate = function(ev)
//			local click = tf.wait({ "mouse:click" })
//			if click == nil then return end -- wait abandoned by reset
//			tf.go("on_second", { "mouse:click" })
//		end,
//		on_second = function(ev) end,
//	}
//
// Lua handlers run inside the manager's handler goroutine, so tf.wait
// suspends the script exactly like a native tool's WaitForEvent.
package script

import (
	"fmt"
	"os"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/toolframe/internal/event"
	"github.com/dshills/toolframe/internal/log"
	"github.com/dshills/toolframe/internal/tool"
)

// entryHandler is the handler armed for the activation event.
const entryHandler = "on_activate"

// resetHandler, when defined, runs on the tool's Reset hook.
const resetHandler = "on_reset"

// Tool is a tool whose behavior is defined by a Lua script. Each tool owns
// its own Lua state; states are never shared between tools.
type Tool struct {
	tool.Interactive
	state    *lua.LState
	handlers *lua.LTable
	logger   *log.Logger
}

// NewTool compiles and runs a script chunk and binds its handler table to a
// named tool. The chunk must return a table with at least on_activate.
func NewTool(name, source string, logger *log.Logger) (*Tool, error) {
	if logger == nil {
		logger = log.Nop
	}

	t := &Tool{
		Interactive: tool.NewInteractive(name),
		state:       lua.NewState(),
		logger:      logger,
	}
	t.registerModule()

	if err := t.state.DoString(source); err != nil {
		t.state.Close()
		return nil, fmt.Errorf("script: loading tool %q: %w", name, err)
	}
	if err := t.takeHandlers(); err != nil {
		t.state.Close()
		return nil, err
	}
	return t, nil
}

// NewToolFile loads a script tool from a file.
func NewToolFile(name, path string, logger *log.Logger) (*Tool, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("script: reading %s: %w", path, err)
	}
	return NewTool(name, string(src), logger)
}

func (t *Tool) takeHandlers() error {
	ret := t.state.Get(-1)
	t.state.Pop(1)

	tb, ok := ret.(*lua.LTable)
	if !ok {
		return fmt.Errorf("%w (tool %q)", ErrBadScript, t.Name())
	}
	if _, ok := tb.RawGetString(entryHandler).(*lua.LFunction); !ok {
		return fmt.Errorf("%w: %q (tool %q)", ErrNoHandler, entryHandler, t.Name())
	}
	t.handlers = tb
	return nil
}

// Init arms the activation transition for the scripted entry handler.
func (t *Tool) Init(m tool.Manager) {
	t.Interactive.Init(m)
	t.Go(t.handler(entryHandler), event.OnActivate(t.Name()))
}

// Reset runs the script's optional on_reset handler.
func (t *Tool) Reset() {
	fn, ok := t.handlers.RawGetString(resetHandler).(*lua.LFunction)
	if !ok {
		return
	}
	if err := t.state.CallByParam(lua.P{Fn: fn, NRet: 0, Protect: true}); err != nil {
		t.logger.Warn("script tool %q on_reset: %v", t.Name(), err)
	}
}

// Close releases the Lua state. The tool must not be dispatched afterward.
func (t *Tool) Close() {
	t.state.Close()
}

// handler adapts a named Lua function to a dispatch handler.
func (t *Tool) handler(name string) tool.Handler {
	return func(ev event.Event) error {
		fn, ok := t.handlers.RawGetString(name).(*lua.LFunction)
		if !ok {
			return fmt.Errorf("%w: %q (tool %q)", ErrNoHandler, name, t.Name())
		}
		return t.state.CallByParam(lua.P{Fn: fn, NRet: 0, Protect: true}, t.eventToLua(ev))
	}
}

// registerModule installs the tf module the script programs against.
func (t *Tool) registerModule() {
	mod := t.state.NewTable()
	t.state.SetFuncs(mod, map[string]lua.LGFunction{
		"wait":   t.luaWait,
		"go":     t.luaGo,
		"pass":   t.luaPass,
		"invoke": t.luaInvoke,
	})
	t.state.SetGlobal("tf", mod)
}

// luaWait suspends the running handler until a matching event arrives.
// Returns the event table, or nil when the wait was abandoned.
func (t *Tool) luaWait(L *lua.LState) int {
	conds, err := t.checkConditions(L, 1)
	if err != nil {
		L.RaiseError("%v", err)
		return 0
	}

	ev, ok := t.Manager().ScheduleWait(t, conds)
	if !ok {
		L.Push(lua.LNil)
		return 1
	}
	L.Push(t.eventToLua(ev))
	return 1
}

// luaGo arms a transition to another named handler in the script.
func (t *Tool) luaGo(L *lua.LState) int {
	name := L.CheckString(1)
	conds, err := t.checkConditions(L, 2)
	if err != nil {
		L.RaiseError("%v", err)
		return 0
	}
	t.Manager().ScheduleNextState(t, t.handler(name), conds)
	return 0
}

// luaPass lets the current event continue down the active stack.
func (t *Tool) luaPass(L *lua.LState) int {
	t.PassEvent()
	return 0
}

// luaInvoke activates another registered tool by name.
func (t *Tool) luaInvoke(L *lua.LState) int {
	name := L.CheckString(1)
	L.Push(lua.LBool(t.Manager().InvokeTool(name)))
	return 1
}

// checkConditions reads a condition spec argument: a string or a table of
// strings in the textual condition syntax.
func (t *Tool) checkConditions(L *lua.LState, idx int) (event.ConditionList, error) {
	var specs []string
	switch v := L.Get(idx).(type) {
	case lua.LString:
		specs = []string{string(v)}
	case *lua.LTable:
		v.ForEach(func(_, item lua.LValue) {
			if s, ok := item.(lua.LString); ok {
				specs = append(specs, string(s))
			}
		})
	default:
		return nil, fmt.Errorf("script: tool %q: conditions must be a string or table of strings", t.Name())
	}
	return event.ParseList(specs)
}

// eventToLua converts an event into the table handed to Lua handlers.
// Opaque Go payloads are exposed only when they are basic values.
func (t *Tool) eventToLua(ev event.Event) *lua.LTable {
	tb := t.state.NewTable()
	tb.RawSetString("category", lua.LString(ev.Category.String()))
	tb.RawSetString("kind", lua.LString(ev.Kind.String()))
	tb.RawSetString("button", lua.LString(ev.Button.String()))
	tb.RawSetString("x", lua.LNumber(ev.Pos.X))
	tb.RawSetString("y", lua.LNumber(ev.Pos.Y))
	if ev.Key != 0 {
		tb.RawSetString("key", lua.LString(string(ev.Key)))
	}
	if ev.Command != "" {
		tb.RawSetString("command", lua.LString(ev.Command))
	}
	switch p := ev.Param.(type) {
	case string:
		tb.RawSetString("param", lua.LString(p))
	case bool:
		tb.RawSetString("param", lua.LBool(p))
	case int:
		tb.RawSetString("param", lua.LNumber(p))
	case int64:
		tb.RawSetString("param", lua.LNumber(p))
	case float64:
		tb.RawSetString("param", lua.LNumber(p))
	}
	return tb
}
