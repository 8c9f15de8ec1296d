package manager

import (
	"github.com/dshills/toolframe/internal/event"
	"github.com/dshills/toolframe/internal/tool"
)

// yieldKind is what a handler goroutine reports back to the dispatcher when
// it gives up control.
type yieldKind int

const (
	// yieldParked means the handler suspended inside ScheduleWait.
	yieldParked yieldKind = iota

	// yieldDone means the handler returned.
	yieldDone

	// yieldPanic means the handler panicked; the dispatcher re-raises the
	// value on the caller's goroutine.
	yieldPanic
)

// routine is one cooperative handler execution. resume carries the event
// that satisfied a wait from the dispatcher to the parked handler; closing
// it abandons the wait. yield carries control back to the dispatcher. yield
// is buffered by one slot so an abandoned handler can post its final
// yieldDone and exit even when the dispatcher drains it later.
type routine struct {
	resume   chan event.Event
	yield    chan yieldKind
	panicked any
}

func newRoutine() *routine {
	return &routine{
		resume: make(chan event.Event),
		yield:  make(chan yieldKind, 1),
	}
}

// start launches the handler on its own goroutine. onErr receives a non-nil
// handler error; it runs on the handler goroutine before the final yield,
// so the dispatcher is still blocked when it fires.
func (r *routine) start(h tool.Handler, ev event.Event, onErr func(error)) {
	go func() {
		defer func() {
			if p := recover(); p != nil {
				r.panicked = p
				r.yield <- yieldPanic
			}
		}()
		if err := h(ev); err != nil && onErr != nil {
			onErr(err)
		}
		r.yield <- yieldDone
	}()
}

// park suspends the calling handler goroutine until the dispatcher resumes
// or abandons it. ok is false when the wait was abandoned.
func (r *routine) park() (event.Event, bool) {
	r.yield <- yieldParked
	ev, ok := <-r.resume
	return ev, ok
}

// send resumes a parked handler with the event that satisfied its wait.
// Must only be called while the routine is parked.
func (r *routine) send(ev event.Event) {
	r.resume <- ev
}

// abandon releases a parked handler with ok == false. The handler is
// expected to unwind promptly; the caller must drain its final yield with
// wait before touching the tool again.
func (r *routine) abandon() {
	close(r.resume)
}

// wait blocks the dispatcher until the handler gives up control.
func (r *routine) wait() yieldKind {
	return <-r.yield
}
