package key

import (
	"errors"
	"testing"
)

func TestParseSingleKey(t *testing.T) {
	tests := []struct {
		spec     string
		wantKey  Key
		wantRune rune
	}{
		{"b", KeyRune, 'b'},
		{"B", KeyRune, 'b'},
		{"1", KeyRune, '1'},
		{"@", KeyRune, '@'},
		{"+", KeyRune, '+'},
		{"Space", KeyRune, ' '},
		{"Enter", KeyEnter, 0},
		{"escape", KeyEscape, 0},
		{"Tab", KeyTab, 0},
		{"Backspace", KeyBackspace, 0},
		{"Delete", KeyDelete, 0},
		{"PageDown", KeyPageDown, 0},
		{"F5", KeyF5, 0},
		{"F12", KeyF12, 0},
	}

	for _, tt := range tests {
		c, err := Parse(tt.spec)
		if err != nil {
			t.Errorf("Parse(%q) error = %v", tt.spec, err)
			continue
		}
		if c.Key != tt.wantKey {
			t.Errorf("Parse(%q) key = %v, want %v", tt.spec, c.Key, tt.wantKey)
		}
		if c.Rune != tt.wantRune {
			t.Errorf("Parse(%q) rune = %q, want %q", tt.spec, c.Rune, tt.wantRune)
		}
		if c.Modifiers != ModNone {
			t.Errorf("Parse(%q) modifiers = %v, want none", tt.spec, c.Modifiers)
		}
	}
}

func TestParseModifierStyle(t *testing.T) {
	tests := []struct {
		spec     string
		wantKey  Key
		wantRune rune
		wantMod  Modifier
	}{
		{"Ctrl+N", KeyRune, 'n', ModCtrl},
		{"ctrl+n", KeyRune, 'n', ModCtrl},
		{"Alt+f", KeyRune, 'f', ModAlt},
		{"Ctrl+Alt+x", KeyRune, 'x', ModCtrl | ModAlt},
		{"Ctrl+Shift+Z", KeyRune, 'z', ModCtrl | ModShift},
		{"Shift+B", KeyRune, 'b', ModShift},
		{"Ctrl+Enter", KeyEnter, 0, ModCtrl},
		{"Alt+F4", KeyF4, 0, ModAlt},
		{"Cmd+S", KeyRune, 's', ModMeta},
		{"Ctrl++", KeyRune, '+', ModCtrl},
		{"Ctrl+Plus", KeyRune, '+', ModCtrl},
		{"Ctrl+-", KeyRune, '-', ModCtrl},
		{"Ctrl + Shift + Z", KeyRune, 'z', ModCtrl | ModShift},
	}

	for _, tt := range tests {
		c, err := Parse(tt.spec)
		if err != nil {
			t.Errorf("Parse(%q) error = %v", tt.spec, err)
			continue
		}
		if c.Key != tt.wantKey {
			t.Errorf("Parse(%q) key = %v, want %v", tt.spec, c.Key, tt.wantKey)
		}
		if c.Rune != tt.wantRune {
			t.Errorf("Parse(%q) rune = %q, want %q", tt.spec, c.Rune, tt.wantRune)
		}
		if c.Modifiers != tt.wantMod {
			t.Errorf("Parse(%q) modifiers = %v, want %v", tt.spec, c.Modifiers, tt.wantMod)
		}
	}
}

func TestParseModifierOnly(t *testing.T) {
	tests := []struct {
		spec    string
		wantMod Modifier
	}{
		{"Ctrl", ModCtrl},
		{"Shift", ModShift},
		{"alt", ModAlt},
		{"Alt+Shift", ModAlt | ModShift},
		{"Ctrl+Alt+Shift", ModCtrl | ModAlt | ModShift},
	}

	for _, tt := range tests {
		c, err := Parse(tt.spec)
		if err != nil {
			t.Errorf("Parse(%q) error = %v", tt.spec, err)
			continue
		}
		if !c.IsModifierOnly() {
			t.Errorf("Parse(%q) = %#v, want modifier-only chord", tt.spec, c)
		}
		if c.Modifiers != tt.wantMod {
			t.Errorf("Parse(%q) modifiers = %v, want %v", tt.spec, c.Modifiers, tt.wantMod)
		}
	}
}

func TestParseBracketed(t *testing.T) {
	tests := []struct {
		spec     string
		wantKey  Key
		wantRune rune
		wantMod  Modifier
	}{
		{"<C-n>", KeyRune, 'n', ModCtrl},
		{"<C-S-z>", KeyRune, 'z', ModCtrl | ModShift},
		{"<A-F4>", KeyF4, 0, ModAlt},
		{"<D-s>", KeyRune, 's', ModMeta},
		{"<CR>", KeyEnter, 0, ModNone},
		{"<Esc>", KeyEscape, 0, ModNone},
		{"<Space>", KeyRune, ' ', ModNone},
		{"<lt>", KeyRune, '<', ModNone},
		{"<C-->", KeyRune, '-', ModCtrl},
		{"<Ctrl-Tab>", KeyTab, 0, ModCtrl},
	}

	for _, tt := range tests {
		c, err := Parse(tt.spec)
		if err != nil {
			t.Errorf("Parse(%q) error = %v", tt.spec, err)
			continue
		}
		if c.Key != tt.wantKey {
			t.Errorf("Parse(%q) key = %v, want %v", tt.spec, c.Key, tt.wantKey)
		}
		if c.Rune != tt.wantRune {
			t.Errorf("Parse(%q) rune = %q, want %q", tt.spec, c.Rune, tt.wantRune)
		}
		if c.Modifiers != tt.wantMod {
			t.Errorf("Parse(%q) modifiers = %v, want %v", tt.spec, c.Modifiers, tt.wantMod)
		}
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		spec    string
		wantErr error
	}{
		{"", ErrEmptySpec},
		{"  ", ErrEmptySpec},
		{"<C->", ErrInvalidSpec},
		{"<X-a>", ErrInvalidSpec},
		{"Ctrl+", ErrInvalidSpec},
		{"Unknown+a", ErrInvalidSpec},
		{"C+a", ErrInvalidSpec},
		{"NotAKey", ErrInvalidSpec},
		{"Ctrl+NotAKey", ErrInvalidSpec},
	}

	for _, tt := range tests {
		_, err := Parse(tt.spec)
		if !errors.Is(err, tt.wantErr) {
			t.Errorf("Parse(%q) error = %v, want %v", tt.spec, err, tt.wantErr)
		}
	}
}

func TestNormalizeSpecRoundTrip(t *testing.T) {
	tests := []struct {
		spec string
		want string
	}{
		{"ctrl+n", "Ctrl+N"},
		{"<C-S-z>", "Ctrl+Shift+Z"},
		{"shift+ctrl+z", "Ctrl+Shift+Z"},
		{"Ctrl++", "Ctrl+Plus"},
		{"space", "Space"},
		{"alt+shift", "Alt+Shift"},
		{"f5", "F5"},
		{"b", "B"},
	}

	for _, tt := range tests {
		got, err := NormalizeSpec(tt.spec)
		if err != nil {
			t.Errorf("NormalizeSpec(%q) error = %v", tt.spec, err)
			continue
		}
		if got != tt.want {
			t.Errorf("NormalizeSpec(%q) = %q, want %q", tt.spec, got, tt.want)
		}

		again, err := Parse(got)
		if err != nil {
			t.Errorf("Parse(%q) error = %v", got, err)
			continue
		}
		if again != MustParse(tt.spec) {
			t.Errorf("Parse(%q) = %#v, want %#v", got, again, MustParse(tt.spec))
		}
	}
}

func TestMustParsePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustParse should panic on an invalid spec")
		}
	}()
	MustParse("Ctrl+")
}
