// Package manager implements the event-routing core of the editing
// environment: it owns the set of registered tools, the active-tool stack
// that determines dispatch priority, and the per-tool state machines that
// let a tool's handler suspend mid-operation waiting for a future event and
// resume exactly where it left off.
//
// The scheduling model is single-threaded and cooperative. Each handler
// invocation runs on its own goroutine, but an unbuffered channel handoff
// between the dispatcher and the handler guarantees that exactly one of
// them executes at any instant: the dispatcher blocks until the handler
// either returns or parks inside ScheduleWait, and a parked handler blocks
// until the dispatcher resumes it with a matching event. Events must be fed
// to ProcessEvent one at a time from a single goroutine; re-entrant calls
// to ProcessEvent from inside a handler are supported and serialize through
// the same dispatch path.
package manager
