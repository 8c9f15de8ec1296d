package script

import "errors"

// Script tool errors.
var (
	// ErrNoHandler indicates the script does not define a requested handler.
	ErrNoHandler = errors.New("script: handler not defined")

	// ErrBadScript indicates the script did not return a handler table.
	ErrBadScript = errors.New("script: chunk must return a table of handlers")
)
