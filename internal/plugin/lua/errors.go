package lua

import "errors"

var (
	// ErrStateClosed is returned by runs on a closed State.
	ErrStateClosed = errors.New("keymap script state closed")

	// ErrExecutionTimeout wraps the error of a script stopped at its
	// deadline.
	ErrExecutionTimeout = errors.New("keymap script timed out")
)
