// Package fynekey adapts Fyne desktop key events to the key package.
//
// Fyne reports key-down and key-up separately but without modifier state,
// so a Tracker derives modifiers from the modifier keys it has seen go down.
package fynekey

import (
	"strings"
	"unicode"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"

	"github.com/dshills/pixelkeys/internal/input/key"
)

var specialNames = map[fyne.KeyName]key.Key{
	fyne.KeyEscape:    key.KeyEscape,
	fyne.KeyReturn:    key.KeyEnter,
	fyne.KeyEnter:     key.KeyEnter,
	fyne.KeyTab:       key.KeyTab,
	fyne.KeyBackspace: key.KeyBackspace,
	fyne.KeyInsert:    key.KeyInsert,
	fyne.KeyDelete:    key.KeyDelete,
	fyne.KeyRight:     key.KeyRight,
	fyne.KeyLeft:      key.KeyLeft,
	fyne.KeyDown:      key.KeyDown,
	fyne.KeyUp:        key.KeyUp,
	fyne.KeyPageUp:    key.KeyPageUp,
	fyne.KeyPageDown:  key.KeyPageDown,
	fyne.KeyHome:      key.KeyHome,
	fyne.KeyEnd:       key.KeyEnd,
	fyne.KeyF1:        key.KeyF1,
	fyne.KeyF2:        key.KeyF2,
	fyne.KeyF3:        key.KeyF3,
	fyne.KeyF4:        key.KeyF4,
	fyne.KeyF5:        key.KeyF5,
	fyne.KeyF6:        key.KeyF6,
	fyne.KeyF7:        key.KeyF7,
	fyne.KeyF8:        key.KeyF8,
	fyne.KeyF9:        key.KeyF9,
	fyne.KeyF10:       key.KeyF10,
	fyne.KeyF11:       key.KeyF11,
	fyne.KeyF12:       key.KeyF12,

	desktop.KeyShiftLeft:    key.KeyShift,
	desktop.KeyShiftRight:   key.KeyShift,
	desktop.KeyControlLeft:  key.KeyCtrl,
	desktop.KeyControlRight: key.KeyCtrl,
	desktop.KeyAltLeft:      key.KeyAlt,
	desktop.KeyAltRight:     key.KeyAlt,
	desktop.KeySuperLeft:    key.KeyMeta,
	desktop.KeySuperRight:   key.KeyMeta,
}

var runeNames = map[fyne.KeyName]rune{
	fyne.KeySpace:        ' ',
	fyne.KeyApostrophe:   '\'',
	fyne.KeyComma:        ',',
	fyne.KeyMinus:        '-',
	fyne.KeyPeriod:       '.',
	fyne.KeySlash:        '/',
	fyne.KeyBackslash:    '\\',
	fyne.KeyLeftBracket:  '[',
	fyne.KeyRightBracket: ']',
	fyne.KeySemicolon:    ';',
	fyne.KeyEqual:        '=',
	fyne.KeyAsterisk:     '*',
	fyne.KeyPlus:         '+',
	fyne.KeyBackTick:     '`',
}

// KeyFromName converts a Fyne key name. It returns false for keys the
// shortcut engine does not know.
func KeyFromName(name fyne.KeyName) (key.Key, rune, bool) {
	if k, ok := specialNames[name]; ok {
		return k, 0, true
	}
	if r, ok := runeNames[name]; ok {
		return key.KeyRune, r, true
	}
	runes := []rune(string(name))
	if len(runes) == 1 && (unicode.IsLetter(runes[0]) || unicode.IsDigit(runes[0])) {
		return key.KeyRune, unicode.ToLower(runes[0]), true
	}
	return key.KeyNone, 0, false
}

// ConvertModifier converts Fyne modifier flags.
func ConvertModifier(m fyne.KeyModifier) key.Modifier {
	var mods key.Modifier
	if m&fyne.KeyModifierShift != 0 {
		mods = mods.With(key.ModShift)
	}
	if m&fyne.KeyModifierControl != 0 {
		mods = mods.With(key.ModCtrl)
	}
	if m&fyne.KeyModifierAlt != 0 {
		mods = mods.With(key.ModAlt)
	}
	if m&fyne.KeyModifierSuper != 0 {
		mods = mods.With(key.ModMeta)
	}
	return mods
}

func toFyneModifier(m key.Modifier) fyne.KeyModifier {
	var mods fyne.KeyModifier
	if m.HasShift() {
		mods |= fyne.KeyModifierShift
	}
	if m.HasCtrl() {
		mods |= fyne.KeyModifierControl
	}
	if m.HasAlt() {
		mods |= fyne.KeyModifierAlt
	}
	if m.HasMeta() {
		mods |= fyne.KeyModifierSuper
	}
	return mods
}

// ConvertKeyEvent converts a Fyne key event given the modifiers held.
func ConvertKeyEvent(ev *fyne.KeyEvent, mods key.Modifier) (key.Event, bool) {
	k, r, ok := KeyFromName(ev.Name)
	if !ok {
		return key.Event{}, false
	}
	return key.NewEvent(k, r, mods), true
}

// Shortcut converts a chord to a Fyne shortcut for menu items. Modifier-only
// chords and keys Fyne cannot name have no shortcut.
func Shortcut(c key.Chord) (*desktop.CustomShortcut, bool) {
	if c.IsModifierOnly() || c.IsZero() {
		return nil, false
	}
	name, ok := fyneName(c)
	if !ok {
		return nil, false
	}
	return &desktop.CustomShortcut{KeyName: name, Modifier: toFyneModifier(c.Modifiers)}, true
}

func fyneName(c key.Chord) (fyne.KeyName, bool) {
	if c.Key != key.KeyRune {
		for name, k := range specialNames {
			if k == c.Key && name != fyne.KeyEnter && !k.IsModifierKey() {
				return name, true
			}
		}
		return "", false
	}
	for name, r := range runeNames {
		if r == c.Rune {
			return name, true
		}
	}
	if unicode.IsLetter(c.Rune) || unicode.IsDigit(c.Rune) {
		return fyne.KeyName(strings.ToUpper(string(c.Rune))), true
	}
	return "", false
}
