package keymap

import (
	"sync"

	"github.com/dshills/pixelkeys/internal/input/key"
)

// Binding ties one action to an accelerator and a context. The action and
// context are fixed at creation; chords may be added later.
type Binding struct {
	action  Action
	context Context

	mu    sync.RWMutex
	accel *key.Accelerator
}

func newBinding(a Action, ctx Context) *Binding {
	return &Binding{
		action:  a,
		context: ctx,
		accel:   key.NewAccelerator(),
	}
}

// Action returns the bound action.
func (b *Binding) Action() Action {
	return b.action
}

// Kind returns the kind of the bound action.
func (b *Binding) Kind() Kind {
	return b.action.Kind()
}

// Context returns the context the binding is restricted to.
func (b *Binding) Context() Context {
	return b.context
}

// Accelerator returns a copy of the binding's chords. It is never nil.
func (b *Binding) Accelerator() *key.Accelerator {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.accel.Clone()
}

// AddChord appends a chord to the binding's accelerator.
func (b *Binding) AddChord(c key.Chord) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.accel.Add(c)
}

// String returns a display form such as "Undo [Ctrl+Z, Ctrl+Shift+Z]".
func (b *Binding) String() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.action.String() + " [" + b.accel.String() + "]"
}
