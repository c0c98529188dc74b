package key

import (
	"strings"
	"unicode"
)

// Chord is one physical key-press pattern: modifiers plus a key code or a
// character. A chord with no key and at least one modifier is a
// modifier-only chord ("Ctrl", "Alt+Shift").
type Chord struct {
	Key       Key
	Rune      rune
	Modifiers Modifier
}

// IsZero returns true for the empty chord.
func (c Chord) IsZero() bool {
	return c.Key == KeyNone && c.Rune == 0 && c.Modifiers == ModNone
}

// IsModifierOnly returns true if the chord consists of modifiers only.
func (c Chord) IsModifierOnly() bool {
	return c.Key == KeyNone && c.Modifiers != ModNone
}

// Match reports whether a live key press matches the chord.
func (c Chord) Match(mods Modifier, k Key, r rune) bool {
	return c.matchChord(normalizeEvent(k, r, mods))
}

func (c Chord) matchChord(ev Chord) bool {
	switch {
	case c.IsZero():
		return false
	case c.IsModifierOnly():
		return ev.Modifiers == c.Modifiers && (ev.Key == KeyNone || ev.Key.IsModifierKey())
	case c.Key == KeyRune:
		if ev.Key != KeyRune || ev.Rune != c.Rune {
			return false
		}
		mods := ev.Modifiers
		// Shifted punctuation arrives with or without Shift depending on
		// the backend.
		if !unicode.IsLetter(c.Rune) && !c.Modifiers.HasShift() {
			mods = mods.Without(ModShift)
		}
		return mods == c.Modifiers
	default:
		return ev.Key == c.Key && ev.Modifiers == c.Modifiers
	}
}

// String returns the canonical text of the chord, e.g. "Ctrl+Shift+Z".
// The result parses back to the same chord.
func (c Chord) String() string {
	parts := c.Modifiers.names()
	switch {
	case c.Key == KeyRune:
		parts = append(parts, runeName(c.Rune))
	case c.Key != KeyNone:
		parts = append(parts, c.Key.String())
	}
	return strings.Join(parts, "+")
}

func runeName(r rune) string {
	switch r {
	case ' ':
		return "Space"
	case '+':
		return "Plus"
	}
	return strings.ToUpper(string(r))
}
