package keymap

import (
	"sync"

	"github.com/dshills/pixelkeys/internal/command"
	"github.com/dshills/pixelkeys/internal/input/key"
	"github.com/dshills/pixelkeys/internal/tool"
)

// Registry owns every shortcut binding, in registration order.
//
// Lookups are linear scans; the binding set is bounded by the number of
// commands, tools and editor actions.
type Registry struct {
	mu       sync.RWMutex
	bindings []*Binding
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Close releases every binding. The registry is empty but usable afterwards.
func (r *Registry) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bindings = nil
}

// ReplaceAll atomically replaces this registry's bindings with src's.
// src should not be used afterwards.
func (r *Registry) ReplaceAll(src *Registry) {
	src.mu.RLock()
	bindings := make([]*Binding, len(src.bindings))
	copy(bindings, src.bindings)
	src.mu.RUnlock()

	r.mu.Lock()
	r.bindings = bindings
	r.mu.Unlock()
}

// Len returns the number of bindings.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.bindings)
}

// Bindings returns all bindings in registration order.
func (r *Registry) Bindings() []*Binding {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Binding, len(r.bindings))
	copy(out, r.bindings)
	return out
}

// find returns the first binding whose action satisfies match.
// Caller must hold r.mu.
func (r *Registry) find(match func(Action) bool) *Binding {
	for _, b := range r.bindings {
		if match(b.action) {
			return b
		}
	}
	return nil
}

// getOrCreate returns the binding matched by match, creating one for
// action with ctx if none exists.
func (r *Registry) getOrCreate(match func(Action) bool, action Action, ctx Context) *Binding {
	r.mu.RLock()
	b := r.find(match)
	r.mu.RUnlock()
	if b != nil {
		return b
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	// Re-check under the write lock.
	if b := r.find(match); b != nil {
		return b
	}
	b = newBinding(action, ctx)
	r.bindings = append(r.bindings, b)
	return b
}

func matchCommand(name string, params command.Params) func(Action) bool {
	return func(a Action) bool {
		ca, ok := a.(CommandAction)
		return ok && ca.Command == name && ca.Params.Equal(params)
	}
}

func matchTool(id tool.ID) func(Action) bool {
	return func(a Action) bool {
		ta, ok := a.(ToolAction)
		return ok && ta.Tool == id
	}
}

func matchQuickTool(id tool.ID) func(Action) bool {
	return func(a Action) bool {
		qa, ok := a.(QuickToolAction)
		return ok && qa.Tool == id
	}
}

func matchEditor(name EditorActionName) func(Action) bool {
	return func(a Action) bool {
		ea, ok := a.(EditorAction)
		return ok && ea.Name == name
	}
}

// CommandBinding returns the binding for the command and parameters,
// creating it with ctx and no chords if absent. The context of an existing
// binding is left unchanged.
func (r *Registry) CommandBinding(name string, params command.Params, ctx Context) *Binding {
	return r.getOrCreate(matchCommand(name, params),
		CommandAction{Command: name, Params: params.Clone()}, ctx)
}

// ToolBinding returns the tool-switch binding for id, creating it if absent.
func (r *Registry) ToolBinding(id tool.ID) *Binding {
	return r.getOrCreate(matchTool(id), ToolAction{Tool: id}, ContextAny)
}

// QuickToolBinding returns the quick-tool binding for id, creating it if
// absent.
func (r *Registry) QuickToolBinding(id tool.ID) *Binding {
	return r.getOrCreate(matchQuickTool(id), QuickToolAction{Tool: id}, ContextAny)
}

// EditorBinding returns the binding for a sprite-editor action, creating it
// if absent.
func (r *Registry) EditorBinding(name EditorActionName) *Binding {
	return r.getOrCreate(matchEditor(name), EditorAction{Name: name}, ContextAny)
}

func (r *Registry) lookup(match func(Action) bool) (*Binding, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b := r.find(match)
	return b, b != nil
}

// FindCommand looks up the binding for a command and parameters. Nil and
// empty parameters are equal.
func (r *Registry) FindCommand(name string, params command.Params) (*Binding, bool) {
	return r.lookup(matchCommand(name, params))
}

// FindTool looks up the tool-switch binding for id.
func (r *Registry) FindTool(id tool.ID) (*Binding, bool) {
	return r.lookup(matchTool(id))
}

// FindQuickTool looks up the quick-tool binding for id.
func (r *Registry) FindQuickTool(id tool.ID) (*Binding, bool) {
	return r.lookup(matchQuickTool(id))
}

// FindEditor looks up the binding for a sprite-editor action.
func (r *Registry) FindEditor(name EditorActionName) (*Binding, bool) {
	return r.lookup(matchEditor(name))
}

// RegisterCommand adds a chord to the command's binding and returns a copy
// of its accelerator. Nothing is registered if the chord does not parse.
func (r *Registry) RegisterCommand(chord, name string, params command.Params, ctx Context) (*key.Accelerator, error) {
	c, err := key.Parse(chord)
	if err != nil {
		return nil, err
	}
	b := r.CommandBinding(name, params, ctx)
	b.AddChord(c)
	return b.Accelerator(), nil
}

// RegisterTool adds a chord that switches to the tool.
func (r *Registry) RegisterTool(chord string, id tool.ID) (*key.Accelerator, error) {
	c, err := key.Parse(chord)
	if err != nil {
		return nil, err
	}
	b := r.ToolBinding(id)
	b.AddChord(c)
	return b.Accelerator(), nil
}

// RegisterQuickTool adds a chord that activates the tool while held.
func (r *Registry) RegisterQuickTool(chord string, id tool.ID) (*key.Accelerator, error) {
	c, err := key.Parse(chord)
	if err != nil {
		return nil, err
	}
	b := r.QuickToolBinding(id)
	b.AddChord(c)
	return b.Accelerator(), nil
}

// RegisterEditor adds a chord for a sprite-editor action.
func (r *Registry) RegisterEditor(chord string, name EditorActionName) (*key.Accelerator, error) {
	c, err := key.Parse(chord)
	if err != nil {
		return nil, err
	}
	b := r.EditorBinding(name)
	b.AddChord(c)
	return b.Accelerator(), nil
}

func acceleratorOf(b *Binding, ok bool) *key.Accelerator {
	if !ok {
		return nil
	}
	return b.Accelerator()
}

// CommandAccelerator returns the chords bound to a command, or nil.
func (r *Registry) CommandAccelerator(name string, params command.Params) *key.Accelerator {
	return acceleratorOf(r.FindCommand(name, params))
}

// ToolAccelerator returns the chords that switch to a tool, or nil.
func (r *Registry) ToolAccelerator(id tool.ID) *key.Accelerator {
	return acceleratorOf(r.FindTool(id))
}

// QuickToolAccelerator returns the chords of a quick tool, or nil.
func (r *Registry) QuickToolAccelerator(id tool.ID) *key.Accelerator {
	return acceleratorOf(r.FindQuickTool(id))
}

// EditorAccelerator returns the chords of a sprite-editor action, or nil.
func (r *Registry) EditorAccelerator(name EditorActionName) *key.Accelerator {
	return acceleratorOf(r.FindEditor(name))
}

// CopySelectionAccelerator returns the copy-selection modifier chords.
func (r *Registry) CopySelectionAccelerator() *key.Accelerator {
	return r.EditorAccelerator(CopySelection)
}

// SnapToGridAccelerator returns the snap-to-grid modifier chords.
func (r *Registry) SnapToGridAccelerator() *key.Accelerator {
	return r.EditorAccelerator(SnapToGrid)
}

// AngleSnapAccelerator returns the angle-snap modifier chords.
func (r *Registry) AngleSnapAccelerator() *key.Accelerator {
	return r.EditorAccelerator(AngleSnap)
}

// MaintainAspectRatioAccelerator returns the keep-aspect modifier chords.
func (r *Registry) MaintainAspectRatioAccelerator() *key.Accelerator {
	return r.EditorAccelerator(MaintainAspectRatio)
}

// LockAxisAccelerator returns the lock-axis modifier chords.
func (r *Registry) LockAxisAccelerator() *key.Accelerator {
	return r.EditorAccelerator(LockAxis)
}

// AddSelectionAccelerator returns the add-to-selection modifier chords.
func (r *Registry) AddSelectionAccelerator() *key.Accelerator {
	return r.EditorAccelerator(AddSelection)
}

// SubtractSelectionAccelerator returns the subtract-from-selection modifier
// chords.
func (r *Registry) SubtractSelectionAccelerator() *key.Accelerator {
	return r.EditorAccelerator(SubtractSelection)
}
