package dispatcher

import "errors"

// Dispatcher errors.
var (
	// ErrMissingDependency indicates a required collaborator was not set.
	ErrMissingDependency = errors.New("dispatcher: missing dependency")

	// ErrPanic indicates a command panicked.
	ErrPanic = errors.New("dispatcher: command panic")
)
