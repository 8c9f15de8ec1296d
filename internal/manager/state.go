package manager

import (
	"github.com/dshills/toolframe/internal/event"
	"github.com/dshills/toolframe/internal/menu"
	"github.com/dshills/toolframe/internal/tool"
)

// transition is one armed (conditions -> entry point) binding.
type transition struct {
	conds   event.ConditionList
	handler tool.Handler
}

// toolState is the manager's private bookkeeping for one registered tool.
// Records are created once at registration and live for the life of the
// manager; ResetTool clears the mutable fields without destroying the
// record.
type toolState struct {
	tool tool.Tool
	id   tool.ID

	// transitions are armed in registration order; when an event matches,
	// the first match wins and the whole table is cleared.
	transitions []transition

	// pendingWait is non-nil iff the tool is suspended inside a wait.
	pendingWait event.ConditionList

	// routine is the suspended execution, non-nil iff a handler has been
	// started and has not yet returned.
	routine *routine

	// active reports membership in the active-tool stack.
	active bool

	// Scheduled context menu, if any.
	cmenu        *menu.Menu
	cmenuTrigger menu.Trigger
}

// clear drops all armed transitions, the pending wait and the menu request.
func (st *toolState) clear() {
	st.transitions = nil
	st.pendingWait = nil
	st.cmenu = nil
	st.cmenuTrigger = menu.TriggerOff
}
