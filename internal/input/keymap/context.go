package keymap

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownContext is returned when parsing an unknown context name.
var ErrUnknownContext = errors.New("unknown key context")

// Context restricts when a binding is eligible.
type Context uint8

// Contexts.
const (
	// ContextAny applies regardless of the current context.
	ContextAny Context = iota

	// ContextNormal applies when no selection is being edited.
	ContextNormal

	// ContextSelection applies when a selection tool works on a visible
	// selection mask.
	ContextSelection
)

// String returns the context name.
func (c Context) String() string {
	switch c {
	case ContextAny:
		return "Any"
	case ContextNormal:
		return "Normal"
	case ContextSelection:
		return "Selection"
	default:
		return fmt.Sprintf("Context(%d)", c)
	}
}

// Allows reports whether a binding with context c is eligible when the
// current context is current.
func (c Context) Allows(current Context) bool {
	return c == ContextAny || c == current
}

// ParseContext parses a context name. The empty string is ContextAny.
func ParseContext(s string) (Context, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "any":
		return ContextAny, nil
	case "normal":
		return ContextNormal, nil
	case "selection":
		return ContextSelection, nil
	}
	return ContextAny, fmt.Errorf("%w: %q", ErrUnknownContext, s)
}

// ContextSnapshot is the application state the current context derives from.
type ContextSnapshot struct {
	// HasSelectionMask is true when there is an active document whose
	// selection mask is visible.
	HasSelectionMask bool

	// ToolIsSelectionInk is true when the current tool edits the selection.
	ToolIsSelectionInk bool
}

// CurrentContext derives the interaction context from a snapshot.
func CurrentContext(s ContextSnapshot) Context {
	if s.HasSelectionMask && s.ToolIsSelectionInk {
		return ContextSelection
	}
	return ContextNormal
}
