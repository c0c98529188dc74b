package key

import "strings"

// Accelerator holds the chords assigned to one action. A user may assign
// several chords to the same action; any of them triggers it.
//
// Accelerator is not safe for concurrent mutation. Owners that share it
// across goroutines must synchronize or hand out clones.
type Accelerator struct {
	chords []Chord
}

// NewAccelerator creates an accelerator holding the given chords.
func NewAccelerator(chords ...Chord) *Accelerator {
	a := &Accelerator{}
	for _, c := range chords {
		a.Add(c)
	}
	return a
}

// Add appends a chord. Empty and duplicate chords are ignored.
func (a *Accelerator) Add(c Chord) {
	if c.IsZero() || a.Has(c) {
		return
	}
	a.chords = append(a.chords, c)
}

// AddFromString parses spec and appends the resulting chord.
func (a *Accelerator) AddFromString(spec string) error {
	c, err := Parse(spec)
	if err != nil {
		return err
	}
	a.Add(c)
	return nil
}

// Has returns true if the chord is already part of the accelerator.
func (a *Accelerator) Has(c Chord) bool {
	for _, existing := range a.chords {
		if existing == c {
			return true
		}
	}
	return false
}

// Match reports whether a key press with the given modifiers, key code and
// character matches any chord.
func (a *Accelerator) Match(mods Modifier, k Key, r rune) bool {
	if a == nil {
		return false
	}
	ev := normalizeEvent(k, r, mods)
	for _, c := range a.chords {
		if c.matchChord(ev) {
			return true
		}
	}
	return false
}

// MatchEvent reports whether the event matches any chord.
func (a *Accelerator) MatchEvent(e Event) bool {
	return a.Match(e.Modifiers, e.Key, e.Rune)
}

// MatchState reports whether any chord is currently held according to the
// keyboard snapshot.
func (a *Accelerator) MatchState(s Snapshot) bool {
	if a == nil {
		return false
	}
	for _, c := range a.chords {
		if s.Holds(c) {
			return true
		}
	}
	return false
}

// Chords returns a copy of the chords in insertion order.
func (a *Accelerator) Chords() []Chord {
	if a == nil {
		return nil
	}
	out := make([]Chord, len(a.chords))
	copy(out, a.chords)
	return out
}

// Len returns the number of chords.
func (a *Accelerator) Len() int {
	if a == nil {
		return 0
	}
	return len(a.chords)
}

// IsEmpty returns true if no chord is assigned.
func (a *Accelerator) IsEmpty() bool {
	return a.Len() == 0
}

// String returns the chords as display text, e.g. "Ctrl+Y, Ctrl+Shift+Z".
func (a *Accelerator) String() string {
	if a == nil {
		return ""
	}
	parts := make([]string, len(a.chords))
	for i, c := range a.chords {
		parts[i] = c.String()
	}
	return strings.Join(parts, ", ")
}

// Clone returns an independent copy.
func (a *Accelerator) Clone() *Accelerator {
	if a == nil {
		return nil
	}
	return &Accelerator{chords: a.Chords()}
}
