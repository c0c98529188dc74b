package backend

import (
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/pixelkeys/internal/input/key"
)

var specialKeys = map[tcell.Key]key.Key{
	tcell.KeyEscape:     key.KeyEscape,
	tcell.KeyEnter:      key.KeyEnter,
	tcell.KeyTab:        key.KeyTab,
	tcell.KeyBackspace:  key.KeyBackspace,
	tcell.KeyBackspace2: key.KeyBackspace,
	tcell.KeyDelete:     key.KeyDelete,
	tcell.KeyInsert:     key.KeyInsert,
	tcell.KeyHome:       key.KeyHome,
	tcell.KeyEnd:        key.KeyEnd,
	tcell.KeyPgUp:       key.KeyPageUp,
	tcell.KeyPgDn:       key.KeyPageDown,
	tcell.KeyUp:         key.KeyUp,
	tcell.KeyDown:       key.KeyDown,
	tcell.KeyLeft:       key.KeyLeft,
	tcell.KeyRight:      key.KeyRight,
	tcell.KeyF1:         key.KeyF1,
	tcell.KeyF2:         key.KeyF2,
	tcell.KeyF3:         key.KeyF3,
	tcell.KeyF4:         key.KeyF4,
	tcell.KeyF5:         key.KeyF5,
	tcell.KeyF6:         key.KeyF6,
	tcell.KeyF7:         key.KeyF7,
	tcell.KeyF8:         key.KeyF8,
	tcell.KeyF9:         key.KeyF9,
	tcell.KeyF10:        key.KeyF10,
	tcell.KeyF11:        key.KeyF11,
	tcell.KeyF12:        key.KeyF12,
}

// ConvertKey converts a tcell key event. Control characters become their
// letter with Ctrl; Backtab becomes Shift+Tab.
func ConvertKey(e *tcell.EventKey) key.Event {
	mods := convertMod(e.Modifiers())
	ts := e.When()
	if ts.IsZero() {
		ts = time.Now()
	}

	k := e.Key()
	switch {
	case k == tcell.KeyRune:
		return key.Event{Key: key.KeyRune, Rune: e.Rune(), Modifiers: mods, Timestamp: ts}
	case k == tcell.KeyBacktab:
		return key.Event{Key: key.KeyTab, Modifiers: mods.With(key.ModShift), Timestamp: ts}
	}
	if special, ok := specialKeys[k]; ok {
		return key.Event{Key: special, Modifiers: mods, Timestamp: ts}
	}
	switch {
	case k == tcell.KeyCtrlSpace:
		return key.Event{Key: key.KeyRune, Rune: ' ', Modifiers: mods.With(key.ModCtrl), Timestamp: ts}
	case k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ:
		r := 'a' + rune(k-tcell.KeyCtrlA)
		return key.Event{Key: key.KeyRune, Rune: r, Modifiers: mods.With(key.ModCtrl), Timestamp: ts}
	}
	return key.Event{Key: key.KeyNone, Modifiers: mods, Timestamp: ts}
}

func convertMod(m tcell.ModMask) key.Modifier {
	var mods key.Modifier
	if m&tcell.ModShift != 0 {
		mods = mods.With(key.ModShift)
	}
	if m&tcell.ModCtrl != 0 {
		mods = mods.With(key.ModCtrl)
	}
	if m&tcell.ModAlt != 0 {
		mods = mods.With(key.ModAlt)
	}
	if m&tcell.ModMeta != 0 {
		mods = mods.With(key.ModMeta)
	}
	return mods
}

func toTcellMod(m key.Modifier) tcell.ModMask {
	var mask tcell.ModMask
	if m.HasShift() {
		mask |= tcell.ModShift
	}
	if m.HasCtrl() {
		mask |= tcell.ModCtrl
	}
	if m.HasAlt() {
		mask |= tcell.ModAlt
	}
	if m.HasMeta() {
		mask |= tcell.ModMeta
	}
	return mask
}

func toTcell(e key.Event) (tcell.Key, rune, tcell.ModMask) {
	if e.Key == key.KeyRune {
		return tcell.KeyRune, e.Rune, toTcellMod(e.Modifiers)
	}
	for tk, k := range specialKeys {
		if k == e.Key && tk != tcell.KeyBackspace {
			return tk, 0, toTcellMod(e.Modifiers)
		}
	}
	return tcell.KeyNUL, 0, toTcellMod(e.Modifiers)
}
