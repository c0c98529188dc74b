package key

import "strings"

// Modifier is a set of held modifier keys.
type Modifier uint8

// Modifier bits. ModAlt is Option on macOS; ModMeta is Cmd on macOS and the
// Windows key elsewhere.
const (
	ModNone  Modifier = 0
	ModShift Modifier = 1 << (iota - 1)
	ModCtrl
	ModAlt
	ModMeta
)

// modifiers lists every modifier in display order with the names chord
// specs may use for it. The first name is the display name.
var modifiers = []struct {
	mod   Modifier
	names []string
}{
	{ModCtrl, []string{"Ctrl", "control"}},
	{ModAlt, []string{"Alt", "option", "opt"}},
	{ModShift, []string{"Shift"}},
	{ModMeta, []string{"Meta", "cmd", "command", "win", "super"}},
}

// Has reports whether any modifier of mod is set in m.
func (m Modifier) Has(mod Modifier) bool { return m&mod != 0 }

func (m Modifier) HasShift() bool { return m.Has(ModShift) }
func (m Modifier) HasCtrl() bool  { return m.Has(ModCtrl) }
func (m Modifier) HasAlt() bool   { return m.Has(ModAlt) }
func (m Modifier) HasMeta() bool  { return m.Has(ModMeta) }

// With returns m plus mod.
func (m Modifier) With(mod Modifier) Modifier { return m | mod }

// Without returns m minus mod.
func (m Modifier) Without(mod Modifier) Modifier { return m &^ mod }

// IsEmpty reports whether no modifier is set.
func (m Modifier) IsEmpty() bool { return m == ModNone }

// String returns the display form, e.g. "Ctrl+Alt+Shift".
func (m Modifier) String() string {
	return strings.Join(m.names(), "+")
}

func (m Modifier) names() []string {
	var out []string
	for _, d := range modifiers {
		if m.Has(d.mod) {
			out = append(out, d.names[0])
		}
	}
	return out
}

// ModifierFromName resolves a modifier name or alias, ignoring case. It
// returns ModNone for anything else. Single-letter forms such as "C" are
// handled by the bracketed chord parser, not here.
func ModifierFromName(name string) Modifier {
	name = strings.TrimSpace(name)
	for _, d := range modifiers {
		for _, n := range d.names {
			if strings.EqualFold(n, name) {
				return d.mod
			}
		}
	}
	return ModNone
}
