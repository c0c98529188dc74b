package key

import (
	"errors"
	"testing"
)

func TestAcceleratorAddIgnoresDuplicates(t *testing.T) {
	a := NewAccelerator()
	if !a.IsEmpty() {
		t.Fatal("new accelerator should be empty")
	}

	for _, spec := range []string{"Ctrl+Y", "ctrl+y", "<C-y>", "Ctrl+Shift+Z"} {
		if err := a.AddFromString(spec); err != nil {
			t.Fatalf("AddFromString(%q) error = %v", spec, err)
		}
	}
	a.Add(Chord{})

	if a.Len() != 2 {
		t.Errorf("Len() = %d, want 2", a.Len())
	}
	if got := a.String(); got != "Ctrl+Y, Ctrl+Shift+Z" {
		t.Errorf("String() = %q, want %q", got, "Ctrl+Y, Ctrl+Shift+Z")
	}
}

func TestAcceleratorAddFromStringError(t *testing.T) {
	a := NewAccelerator()
	if err := a.AddFromString("Hyper+Q"); !errors.Is(err, ErrInvalidSpec) {
		t.Errorf("AddFromString error = %v, want ErrInvalidSpec", err)
	}
	if !a.IsEmpty() {
		t.Error("failed parse should not add a chord")
	}
}

func TestAcceleratorMatch(t *testing.T) {
	a := NewAccelerator(MustParse("Ctrl+N"), MustParse("B"), MustParse("Shift+M"), MustParse("F5"), MustParse("Ctrl++"))

	tests := []struct {
		name string
		mods Modifier
		key  Key
		r    rune
		want bool
	}{
		{"ctrl+n", ModCtrl, KeyRune, 'n', true},
		{"ctrl+shift+n", ModCtrl | ModShift, KeyRune, 'n', false},
		{"plain n", ModNone, KeyRune, 'n', false},
		{"b", ModNone, KeyRune, 'b', true},
		{"shift+b via upper rune", ModNone, KeyRune, 'B', false},
		{"shift+m via upper rune", ModNone, KeyRune, 'M', true},
		{"shift+m explicit", ModShift, KeyRune, 'm', true},
		{"f5", ModNone, KeyF5, 0, true},
		{"ctrl+f5", ModCtrl, KeyF5, 0, false},
		{"ctrl+plus", ModCtrl, KeyRune, '+', true},
		{"ctrl+shift+plus", ModCtrl | ModShift, KeyRune, '+', true},
		{"enter", ModNone, KeyEnter, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := a.Match(tt.mods, tt.key, tt.r); got != tt.want {
				t.Errorf("Match(%v, %v, %q) = %v, want %v", tt.mods, tt.key, tt.r, got, tt.want)
			}
		})
	}
}

func TestAcceleratorMatchModifierOnly(t *testing.T) {
	a := NewAccelerator(MustParse("Ctrl"))

	if !a.MatchEvent(NewSpecialEvent(KeyCtrl, ModNone)) {
		t.Error("pressing Ctrl should match a Ctrl-only chord")
	}
	if a.MatchEvent(NewRuneEvent('c', ModCtrl)) {
		t.Error("Ctrl+C should not match a Ctrl-only chord")
	}
	if a.MatchEvent(NewSpecialEvent(KeyShift, ModCtrl)) {
		t.Error("Ctrl+Shift should not match a Ctrl-only chord")
	}
}

func TestAcceleratorMatchState(t *testing.T) {
	a := NewAccelerator(MustParse("Alt"), MustParse("Space"))

	tests := []struct {
		name string
		snap Snapshot
		want bool
	}{
		{"nothing held", NewSnapshot(ModNone), false},
		{"alt held", NewSnapshot(ModNone, Chord{Key: KeyAlt}), true},
		{"alt+shift held", NewSnapshot(ModShift, Chord{Key: KeyAlt}), false},
		{"space held", NewSnapshot(ModNone, Chord{Key: KeyRune, Rune: ' '}), true},
		{"ctrl+space held", NewSnapshot(ModCtrl, Chord{Key: KeyRune, Rune: ' '}), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := a.MatchState(tt.snap); got != tt.want {
				t.Errorf("MatchState() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAcceleratorNilSafety(t *testing.T) {
	var a *Accelerator
	if a.Match(ModCtrl, KeyRune, 'n') || a.MatchState(NewSnapshot(ModCtrl)) {
		t.Error("nil accelerator should never match")
	}
	if a.Len() != 0 || a.String() != "" || a.Chords() != nil || a.Clone() != nil {
		t.Error("nil accelerator accessors should return zero values")
	}
}

func TestAcceleratorCloneIsIndependent(t *testing.T) {
	a := NewAccelerator(MustParse("Ctrl+C"))
	clone := a.Clone()
	clone.Add(MustParse("Ctrl+Insert"))

	if a.Len() != 1 {
		t.Errorf("original Len() = %d, want 1", a.Len())
	}
	if clone.Len() != 2 {
		t.Errorf("clone Len() = %d, want 2", clone.Len())
	}
}
