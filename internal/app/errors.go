// Package app wires settings, commands, tools, windows and shortcut
// dispatch into a running editor session.
package app

import (
	"errors"
	"fmt"
)

// Application errors.
var (
	// ErrAlreadyRunning indicates the application is already running.
	ErrAlreadyRunning = errors.New("application already running")

	// ErrNoBackend indicates Run was called without a backend.
	ErrNoBackend = errors.New("no input backend")

	// ErrNoActiveDocument indicates no sprite is open.
	ErrNoActiveDocument = errors.New("no active document")

	// ErrInvalidParam indicates a command parameter with an unusable value.
	ErrInvalidParam = errors.New("invalid command parameter")
)

// InitError reports a component that failed to start.
type InitError struct {
	Component string
	Err       error
}

func (e *InitError) Error() string {
	return "init " + e.Component + ": " + e.Err.Error()
}

func (e *InitError) Unwrap() error {
	return e.Err
}

// ErrorList collects non-fatal problems, such as keymap warnings.
// It is not safe for concurrent use.
type ErrorList struct {
	errors []error
}

// Add adds errors to the list. Nil errors are ignored.
func (e *ErrorList) Add(errs ...error) {
	for _, err := range errs {
		if err != nil {
			e.errors = append(e.errors, err)
		}
	}
}

// Len returns the number of errors.
func (e *ErrorList) Len() int {
	return len(e.errors)
}

// Errors returns a copy of the collected errors.
func (e *ErrorList) Errors() []error {
	if e == nil || len(e.errors) == 0 {
		return nil
	}
	out := make([]error, len(e.errors))
	copy(out, e.errors)
	return out
}

// Error returns a combined error message.
func (e *ErrorList) Error() string {
	switch {
	case e == nil || len(e.errors) == 0:
		return ""
	case len(e.errors) == 1:
		return e.errors[0].Error()
	}
	return fmt.Sprintf("%d errors: first: %v", len(e.errors), e.errors[0])
}

// AsError returns nil if the list is empty, otherwise the list itself.
func (e *ErrorList) AsError() error {
	if e.Len() == 0 {
		return nil
	}
	return e
}

// Unwrap exposes the collected errors to errors.Is and errors.As.
func (e *ErrorList) Unwrap() []error {
	return e.Errors()
}
