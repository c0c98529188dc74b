package keymap

import (
	"github.com/dshills/pixelkeys/internal/input/key"
	"github.com/dshills/pixelkeys/internal/tool"
)

// Pressed reports whether the key-down event triggers the binding under the
// current context. The accelerator is tested first; a chord match in the
// wrong context does not count.
func (b *Binding) Pressed(ev key.Event, current Context) bool {
	b.mu.RLock()
	hit := b.accel.MatchEvent(ev)
	b.mu.RUnlock()
	return hit && b.context.Allows(current)
}

// Held reports whether one of the binding's chords is held in the keyboard
// snapshot under the current context.
func (b *Binding) Held(s key.Snapshot, current Context) bool {
	b.mu.RLock()
	hit := b.accel.MatchState(s)
	b.mu.RUnlock()
	return hit && b.context.Allows(current)
}

// FirstPressed returns the first binding, in registration order, that the
// event triggers.
func (r *Registry) FirstPressed(ev key.Event, current Context) (*Binding, bool) {
	for _, b := range r.Bindings() {
		if b.Pressed(ev, current) {
			return b, true
		}
	}
	return nil, false
}

// CommandForEvent returns the command of the first command binding the event
// triggers. The returned parameters are a copy and never nil.
func (r *Registry) CommandForEvent(ev key.Event, current Context) (CommandAction, bool) {
	for _, b := range r.Bindings() {
		ca, ok := b.action.(CommandAction)
		if ok && b.Pressed(ev, current) {
			return CommandAction{Command: ca.Command, Params: ca.Params.Clone()}, true
		}
	}
	return CommandAction{}, false
}

// PressedTools returns, in the given tool order, every tool whose
// tool-switch binding the event triggers.
func (r *Registry) PressedTools(ev key.Event, current Context, tools []*tool.Tool) []*tool.Tool {
	var out []*tool.Tool
	for _, t := range tools {
		if b, ok := r.FindTool(t.ID); ok && b.Pressed(ev, current) {
			out = append(out, t)
		}
	}
	return out
}

// HeldQuickTool returns the first tool, in the given order, whose quick-tool
// chord is held.
func (r *Registry) HeldQuickTool(s key.Snapshot, current Context, tools []*tool.Tool) (*tool.Tool, bool) {
	for _, t := range tools {
		if b, ok := r.FindQuickTool(t.ID); ok && b.Held(s, current) {
			return t, true
		}
	}
	return nil, false
}

// HeldEditorAction reports whether the chord of a sprite-editor action is
// held. It is false when the action has no binding.
func (r *Registry) HeldEditorAction(name EditorActionName, s key.Snapshot, current Context) bool {
	b, ok := r.FindEditor(name)
	return ok && b.Held(s, current)
}
