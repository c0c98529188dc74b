package dispatcher

import (
	"github.com/dshills/pixelkeys/internal/input/keymap"
	"github.com/dshills/pixelkeys/internal/tool"
)

// Outcome classifies what a key-down did.
type Outcome uint8

// Outcomes.
const (
	// OutcomeUnmatched means no binding matched; the event passes through.
	OutcomeUnmatched Outcome = iota

	// OutcomeSuppressed means a foreground window owns the keyboard.
	OutcomeSuppressed

	// OutcomeCommand means a command ran.
	OutcomeCommand

	// OutcomeCommandBlocked means a command matched but a foreground window
	// shadows the main window.
	OutcomeCommandBlocked

	// OutcomeToolSelected means a tool was selected.
	OutcomeToolSelected

	// OutcomeToolNoop means a tool chord matched but no candidate could be
	// chosen.
	OutcomeToolNoop

	// OutcomePassThrough means a quick-tool or sprite-editor binding
	// matched; those are polled, not dispatched.
	OutcomePassThrough

	outcomeCount
)

// String returns the outcome name.
func (o Outcome) String() string {
	switch o {
	case OutcomeUnmatched:
		return "unmatched"
	case OutcomeSuppressed:
		return "suppressed"
	case OutcomeCommand:
		return "command"
	case OutcomeCommandBlocked:
		return "command-blocked"
	case OutcomeToolSelected:
		return "tool-selected"
	case OutcomeToolNoop:
		return "tool-noop"
	case OutcomePassThrough:
		return "pass-through"
	default:
		return "unknown"
	}
}

// Result describes the handling of one key-down.
type Result struct {
	Outcome Outcome

	// Consumed reports whether the event should stop propagating.
	Consumed bool

	// Binding is the first binding the key triggered, if any.
	Binding *keymap.Binding

	// Tool is the selected tool for OutcomeToolSelected.
	Tool *tool.Tool

	// Err is the command error for OutcomeCommand.
	Err error
}
