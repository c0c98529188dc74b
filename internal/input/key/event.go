package key

import (
	"time"
	"unicode"
)

// Event is one key-down (or key-up) reported by a backend.
type Event struct {
	Key       Key
	Rune      rune // set when Key is KeyRune
	Modifiers Modifier
	Timestamp time.Time
}

// NewEvent stamps a key event with the current time.
func NewEvent(k Key, r rune, mods Modifier) Event {
	return Event{Key: k, Rune: r, Modifiers: mods, Timestamp: time.Now()}
}

// NewRuneEvent creates a character event.
func NewRuneEvent(r rune, mods Modifier) Event {
	return NewEvent(KeyRune, r, mods)
}

// NewSpecialEvent creates an event for a named key such as KeyF5.
func NewSpecialEvent(k Key, mods Modifier) Event {
	return NewEvent(k, 0, mods)
}

// IsRune reports whether the event carries a character.
func (e Event) IsRune() bool {
	return e.Key == KeyRune && e.Rune != 0
}

// IsModifierOnly reports whether the key pressed is itself a modifier, as
// when Ctrl goes down on its own.
func (e Event) IsModifierOnly() bool {
	return e.Key.IsModifierKey()
}

// Chord returns the normalized chord of the event.
func (e Event) Chord() Chord {
	return normalizeEvent(e.Key, e.Rune, e.Modifiers)
}

// String returns the chord text, e.g. "Ctrl+Shift+Z".
func (e Event) String() string {
	return e.Chord().String()
}

// Equals reports whether both events are the same chord. Timestamps are
// ignored.
func (e Event) Equals(other Event) bool {
	return e.Chord() == other.Chord()
}

// normalizeEvent folds the platform-dependent shapes of a key press into one
// chord: upper-case letters become Shift plus the lower-case letter and a
// lone modifier key always carries its own modifier bit.
func normalizeEvent(k Key, r rune, mods Modifier) Chord {
	switch {
	case k == KeyRune && unicode.IsUpper(r):
		r = unicode.ToLower(r)
		mods = mods.With(ModShift)
	case k == KeyRune && r == 0:
		k = KeyNone
	case k.IsModifierKey():
		mods = mods.With(k.Modifier())
	}
	if k != KeyRune {
		r = 0
	}
	return Chord{Key: k, Rune: r, Modifiers: mods}
}
