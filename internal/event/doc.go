// Package event defines the immutable event values routed through the tool
// manager and the condition patterns they are matched against.
//
// An Event describes one occurrence: a category (mouse, keyboard, command,
// message, view), a specific kind within that category, and an optional
// payload. Events are matched structurally against Condition patterns; the
// matching layer never interprets payload semantics.
package event
