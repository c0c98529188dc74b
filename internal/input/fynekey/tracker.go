package fynekey

import (
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"

	"github.com/dshills/pixelkeys/internal/input/key"
)

// KeyHandler receives converted key-down events and reports whether the
// event was consumed.
type KeyHandler func(key.Event) bool

// Tracker follows key-down and key-up events of a desktop canvas.
type Tracker struct {
	mu    sync.Mutex
	state *key.State
	mods  key.Modifier
	onKey KeyHandler
}

// NewTracker creates a tracker feeding state. A nil state gets a fresh one.
func NewTracker(state *key.State) *Tracker {
	if state == nil {
		state = key.NewState()
	}
	return &Tracker{state: state}
}

// Attach installs the tracker on the canvas. It returns false when the
// canvas does not report key-up events.
func (t *Tracker) Attach(c fyne.Canvas) bool {
	dc, ok := c.(desktop.Canvas)
	if !ok {
		return false
	}
	dc.SetOnKeyDown(t.KeyDown)
	dc.SetOnKeyUp(t.KeyUp)
	return true
}

// OnKey sets the handler for non-modifier key-down events.
func (t *Tracker) OnKey(fn KeyHandler) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onKey = fn
}

// State returns the held-key tracker.
func (t *Tracker) State() *key.State {
	return t.state
}

// Snapshot returns the held keys.
func (t *Tracker) Snapshot() key.Snapshot {
	return t.state.Snapshot()
}

// Modifiers returns the modifiers currently held.
func (t *Tracker) Modifiers() key.Modifier {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.mods
}

// KeyDown records a key press and forwards it to the handler.
func (t *Tracker) KeyDown(ev *fyne.KeyEvent) {
	t.mu.Lock()
	k, _, ok := KeyFromName(ev.Name)
	if ok && k.IsModifierKey() {
		t.mods = t.mods.With(k.Modifier())
	}
	mods := t.mods
	handler := t.onKey
	t.mu.Unlock()

	e, ok := ConvertKeyEvent(ev, mods)
	if !ok {
		return
	}
	t.state.Press(e)
	if handler != nil && !e.IsModifierOnly() {
		handler(e)
	}
}

// KeyUp records a key release.
func (t *Tracker) KeyUp(ev *fyne.KeyEvent) {
	t.mu.Lock()
	k, r, ok := KeyFromName(ev.Name)
	if ok && k.IsModifierKey() {
		t.mods = t.mods.Without(k.Modifier())
	}
	mods := t.mods
	t.mu.Unlock()

	if !ok {
		return
	}
	t.state.Release(key.NewEvent(k, r, mods))
	if k.IsModifierKey() {
		t.state.SetModifiers(mods)
	}
}

// Reset forgets every held key, e.g. when the window loses focus.
func (t *Tracker) Reset() {
	t.mu.Lock()
	t.mods = key.ModNone
	t.mu.Unlock()
	t.state.Reset()
}
