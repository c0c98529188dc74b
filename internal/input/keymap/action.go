package keymap

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dshills/pixelkeys/internal/command"
	"github.com/dshills/pixelkeys/internal/tool"
)

// ErrUnknownEditorAction is returned for editor action names outside the
// fixed set.
var ErrUnknownEditorAction = errors.New("unknown sprite editor action")

// Kind identifies the kind of action a binding triggers.
type Kind uint8

// Action kinds.
const (
	KindCommand Kind = iota
	KindTool
	KindQuickTool
	KindEditor
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindCommand:
		return "command"
	case KindTool:
		return "tool"
	case KindQuickTool:
		return "quicktool"
	case KindEditor:
		return "editor"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// Action is what a binding triggers. The concrete types are CommandAction,
// ToolAction, QuickToolAction and EditorAction.
type Action interface {
	Kind() Kind
	String() string

	action()
}

// CommandAction executes a command with fixed parameters.
type CommandAction struct {
	Command string
	Params  command.Params
}

// ToolAction makes a tool the active tool.
type ToolAction struct {
	Tool tool.ID
}

// QuickToolAction uses a tool only while the chord is held.
type QuickToolAction struct {
	Tool tool.ID
}

// EditorAction is a sprite-editor modifier, queried while dragging.
type EditorAction struct {
	Name EditorActionName
}

func (CommandAction) Kind() Kind   { return KindCommand }
func (ToolAction) Kind() Kind      { return KindTool }
func (QuickToolAction) Kind() Kind { return KindQuickTool }
func (EditorAction) Kind() Kind    { return KindEditor }

func (CommandAction) action()   {}
func (ToolAction) action()      {}
func (QuickToolAction) action() {}
func (EditorAction) action()    {}

func (a CommandAction) String() string {
	if a.Params.IsEmpty() {
		return a.Command
	}
	return a.Command + "(" + a.Params.String() + ")"
}

func (a ToolAction) String() string      { return "tool:" + string(a.Tool) }
func (a QuickToolAction) String() string { return "quicktool:" + string(a.Tool) }
func (a EditorAction) String() string    { return "editor:" + string(a.Name) }

// EditorActionName names a sprite-editor modifier action.
type EditorActionName string

// Sprite-editor actions.
const (
	CopySelection       EditorActionName = "CopySelection"
	SnapToGrid          EditorActionName = "SnapToGrid"
	AngleSnap           EditorActionName = "AngleSnap"
	MaintainAspectRatio EditorActionName = "MaintainAspectRatio"
	LockAxis            EditorActionName = "LockAxis"
	AddSelection        EditorActionName = "AddSelection"
	SubtractSelection   EditorActionName = "SubtractSelection"
)

var editorActions = []EditorActionName{
	CopySelection,
	SnapToGrid,
	AngleSnap,
	MaintainAspectRatio,
	LockAxis,
	AddSelection,
	SubtractSelection,
}

// EditorActions returns every sprite-editor action name.
func EditorActions() []EditorActionName {
	out := make([]EditorActionName, len(editorActions))
	copy(out, editorActions)
	return out
}

// ParseEditorAction resolves an action name. Case, dashes, underscores and
// spaces are ignored, so "copy-selection" names CopySelection.
func ParseEditorAction(s string) (EditorActionName, error) {
	want := foldName(s)
	for _, name := range editorActions {
		if foldName(string(name)) == want {
			return name, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownEditorAction, s)
}

func foldName(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer("-", "", "_", "", " ", "").Replace(s)
}
