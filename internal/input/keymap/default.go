package keymap

import (
	"fmt"

	"github.com/dshills/pixelkeys/internal/command"
	"github.com/dshills/pixelkeys/internal/tool"
)

// Default describes one stock shortcut.
type Default struct {
	Keys        string
	Kind        Kind
	Target      string
	Params      command.Params
	Context     Context
	Description string
	Category    string
}

// LoadDefaults registers the stock pixel-editor shortcuts.
func LoadDefaults(r *Registry) error {
	for _, d := range Defaults() {
		if err := d.Register(r); err != nil {
			return err
		}
	}
	return nil
}

// Register adds the shortcut to r.
func (d Default) Register(r *Registry) error {
	var err error
	switch d.Kind {
	case KindCommand:
		_, err = r.RegisterCommand(d.Keys, d.Target, d.Params, d.Context)
	case KindTool:
		_, err = r.RegisterTool(d.Keys, tool.ID(d.Target))
	case KindQuickTool:
		_, err = r.RegisterQuickTool(d.Keys, tool.ID(d.Target))
	case KindEditor:
		var name EditorActionName
		if name, err = ParseEditorAction(d.Target); err == nil {
			_, err = r.RegisterEditor(d.Keys, name)
		}
	default:
		err = fmt.Errorf("unknown binding kind %v", d.Kind)
	}
	if err != nil {
		return fmt.Errorf("default %s %q: %w", d.Kind, d.Target, err)
	}
	return nil
}

func cmd(keys, name, desc, category string) Default {
	return Default{Keys: keys, Kind: KindCommand, Target: name, Description: desc, Category: category}
}

// Defaults returns the stock shortcut table in registration order.
func Defaults() []Default {
	return []Default{
		// File
		cmd("Ctrl+N", "NewFile", "New sprite", "File"),
		cmd("Ctrl+O", "OpenFile", "Open sprite", "File"),
		cmd("Ctrl+S", "SaveFile", "Save sprite", "File"),
		cmd("Ctrl+Shift+S", "SaveFileAs", "Save sprite as", "File"),
		cmd("Ctrl+W", "CloseFile", "Close sprite", "File"),
		cmd("Ctrl+Q", "Exit", "Quit", "File"),
		cmd("Alt+F4", "Exit", "Quit", "File"),

		// Edit
		cmd("Ctrl+Z", "Undo", "Undo", "Edit"),
		cmd("Ctrl+Y", "Redo", "Redo", "Edit"),
		cmd("Ctrl+Shift+Z", "Redo", "Redo", "Edit"),
		cmd("Ctrl+X", "Cut", "Cut", "Edit"),
		cmd("Ctrl+C", "Copy", "Copy", "Edit"),
		cmd("Ctrl+V", "Paste", "Paste", "Edit"),
		cmd("Delete", "Clear", "Clear", "Edit"),
		{Keys: "Shift+H", Kind: KindCommand, Target: "Flip", Params: command.NewParams("orientation", "horizontal"),
			Description: "Flip horizontally", Category: "Edit"},
		{Keys: "Shift+V", Kind: KindCommand, Target: "Flip", Params: command.NewParams("orientation", "vertical"),
			Description: "Flip vertically", Category: "Edit"},

		// Select
		cmd("Ctrl+A", "SelectAll", "Select all", "Select"),
		cmd("Ctrl+D", "DeselectMask", "Deselect", "Select"),
		cmd("Ctrl+Shift+D", "ReselectMask", "Reselect", "Select"),
		cmd("Ctrl+Shift+I", "InvertMask", "Invert selection", "Select"),
		{Keys: "Left", Kind: KindCommand, Target: "MoveMask", Params: command.NewParams("direction", "left"),
			Context: ContextSelection, Description: "Nudge selection left", Category: "Select"},
		{Keys: "Right", Kind: KindCommand, Target: "MoveMask", Params: command.NewParams("direction", "right"),
			Context: ContextSelection, Description: "Nudge selection right", Category: "Select"},
		{Keys: "Up", Kind: KindCommand, Target: "MoveMask", Params: command.NewParams("direction", "up"),
			Context: ContextSelection, Description: "Nudge selection up", Category: "Select"},
		{Keys: "Down", Kind: KindCommand, Target: "MoveMask", Params: command.NewParams("direction", "down"),
			Context: ContextSelection, Description: "Nudge selection down", Category: "Select"},

		// View
		{Keys: "+", Kind: KindCommand, Target: "Zoom", Params: command.NewParams("action", "in"),
			Description: "Zoom in", Category: "View"},
		{Keys: "-", Kind: KindCommand, Target: "Zoom", Params: command.NewParams("action", "out"),
			Description: "Zoom out", Category: "View"},
		{Keys: "1", Kind: KindCommand, Target: "Zoom", Params: command.NewParams("action", "set", "percent", "100"),
			Description: "Actual size", Category: "View"},
		cmd("Ctrl+'", "ShowGrid", "Toggle grid", "View"),
		cmd("Tab", "ToggleTimeline", "Toggle timeline", "View"),
		cmd("F11", "FullscreenMode", "Full screen", "View"),

		// Frames
		// A binding keeps the context it was created with; "," and "." step
		// frames in every context, Left and Right lose to MoveMask.
		cmd(",", "GotoPreviousFrame", "Previous frame", "Frame"),
		cmd(".", "GotoNextFrame", "Next frame", "Frame"),
		cmd("Left", "GotoPreviousFrame", "Previous frame", "Frame"),
		cmd("Right", "GotoNextFrame", "Next frame", "Frame"),
		cmd("Enter", "PlayAnimation", "Play animation", "Frame"),

		// Tools
		{Keys: "M", Kind: KindTool, Target: "rectangular_marquee", Category: "Tools"},
		{Keys: "M", Kind: KindTool, Target: "elliptical_marquee", Category: "Tools"},
		{Keys: "Q", Kind: KindTool, Target: "lasso", Category: "Tools"},
		{Keys: "Q", Kind: KindTool, Target: "polygonal_lasso", Category: "Tools"},
		{Keys: "W", Kind: KindTool, Target: "magic_wand", Category: "Tools"},
		{Keys: "B", Kind: KindTool, Target: "pencil", Category: "Tools"},
		{Keys: "Shift+S", Kind: KindTool, Target: "spray", Category: "Tools"},
		{Keys: "E", Kind: KindTool, Target: "eraser", Category: "Tools"},
		{Keys: "I", Kind: KindTool, Target: "eyedropper", Category: "Tools"},
		{Keys: "Z", Kind: KindTool, Target: "zoom", Category: "Tools"},
		{Keys: "H", Kind: KindTool, Target: "hand", Category: "Tools"},
		{Keys: "V", Kind: KindTool, Target: "move", Category: "Tools"},
		{Keys: "G", Kind: KindTool, Target: "paint_bucket", Category: "Tools"},
		{Keys: "L", Kind: KindTool, Target: "line", Category: "Tools"},
		{Keys: "Shift+L", Kind: KindTool, Target: "curve", Category: "Tools"},
		{Keys: "U", Kind: KindTool, Target: "rectangle", Category: "Tools"},
		{Keys: "U", Kind: KindTool, Target: "filled_rectangle", Category: "Tools"},
		{Keys: "U", Kind: KindTool, Target: "ellipse", Category: "Tools"},
		{Keys: "U", Kind: KindTool, Target: "filled_ellipse", Category: "Tools"},
		{Keys: "D", Kind: KindTool, Target: "contour", Category: "Tools"},
		{Keys: "Shift+D", Kind: KindTool, Target: "polygon", Category: "Tools"},
		{Keys: "R", Kind: KindTool, Target: "blur", Category: "Tools"},
		{Keys: "R", Kind: KindTool, Target: "jumble", Category: "Tools"},

		// Quick tools
		{Keys: "Space", Kind: KindQuickTool, Target: "hand", Category: "Quick Tools"},
		{Keys: "Alt", Kind: KindQuickTool, Target: "eyedropper", Category: "Quick Tools"},
		{Keys: "Ctrl", Kind: KindQuickTool, Target: "move", Category: "Quick Tools"},

		// Sprite editor modifiers
		{Keys: "Ctrl", Kind: KindEditor, Target: string(CopySelection), Category: "Sprite Editor"},
		{Keys: "Shift", Kind: KindEditor, Target: string(SnapToGrid), Category: "Sprite Editor"},
		{Keys: "Shift", Kind: KindEditor, Target: string(AngleSnap), Category: "Sprite Editor"},
		{Keys: "Shift", Kind: KindEditor, Target: string(MaintainAspectRatio), Category: "Sprite Editor"},
		{Keys: "Shift", Kind: KindEditor, Target: string(LockAxis), Category: "Sprite Editor"},
		{Keys: "Shift", Kind: KindEditor, Target: string(AddSelection), Category: "Sprite Editor"},
		{Keys: "Alt", Kind: KindEditor, Target: string(SubtractSelection), Category: "Sprite Editor"},
	}
}
