package key

import (
	"sync"
	"time"
	"unicode"
)

// State tracks which keys are physically held right now. Backends feed it
// from key-down/key-up notifications; pollers read it through Snapshot.
//
// State is safe for concurrent use.
type State struct {
	mu sync.RWMutex

	// keys maps held keys (modifiers stripped) to the time they were last
	// reported down.
	keys map[Chord]time.Time

	// reported holds modifiers announced by the backend alongside events,
	// for backends that never report modifier keys on their own.
	reported   Modifier
	reportedAt time.Time
}

// NewState creates an empty keyboard state.
func NewState() *State {
	return &State{keys: make(map[Chord]time.Time)}
}

// Press records a key-down event.
func (s *State) Press(e Event) {
	c := e.Chord()
	ts := e.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if c.Key != KeyNone {
		s.keys[Chord{Key: c.Key, Rune: c.Rune}] = ts
	}
	s.reported = c.Modifiers
	s.reportedAt = ts
}

// Release records a key-up event.
func (s *State) Release(e Event) {
	c := e.Chord()

	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.keys, Chord{Key: c.Key, Rune: c.Rune})
	if c.Key.IsModifierKey() {
		s.reported = s.reported.Without(c.Key.Modifier())
	}
}

// SetModifiers replaces the reported modifier set.
func (s *State) SetModifiers(mods Modifier) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reported = mods
	s.reportedAt = time.Now()
}

// Expire forgets keys last reported before the cutoff. Backends without
// key-up notifications call it periodically with now minus the key-repeat
// window.
func (s *State) Expire(cutoff time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for c, ts := range s.keys {
		if ts.Before(cutoff) {
			delete(s.keys, c)
		}
	}
	if s.reportedAt.Before(cutoff) {
		s.reported = ModNone
	}
}

// Reset releases every key.
func (s *State) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.keys = make(map[Chord]time.Time)
	s.reported = ModNone
}

// Snapshot returns an immutable copy of the current state.
func (s *State) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := Snapshot{
		mods: s.reported,
		keys: make(map[Chord]struct{}, len(s.keys)),
	}
	for c := range s.keys {
		snap.keys[c] = struct{}{}
		snap.mods = snap.mods.With(c.Key.Modifier())
	}
	return snap
}

// Snapshot is a point-in-time view of the keyboard.
type Snapshot struct {
	mods Modifier
	keys map[Chord]struct{}
}

// NewSnapshot builds a snapshot directly, mainly for tests and for hosts
// that own their own key tracking. Chord modifiers are ignored; only the
// key part of each chord is recorded as held.
func NewSnapshot(mods Modifier, held ...Chord) Snapshot {
	snap := Snapshot{mods: mods, keys: make(map[Chord]struct{}, len(held))}
	for _, c := range held {
		snap.keys[Chord{Key: c.Key, Rune: c.Rune}] = struct{}{}
		snap.mods = snap.mods.With(c.Key.Modifier())
	}
	return snap
}

// Modifiers returns the modifiers held in the snapshot.
func (s Snapshot) Modifiers() Modifier {
	return s.mods
}

// IsDown returns true if the key is held.
func (s Snapshot) IsDown(k Key, r rune) bool {
	_, ok := s.keys[Chord{Key: k, Rune: r}]
	return ok
}

// Holds reports whether the chord is fully held: its key is down and the
// held modifiers equal the chord's modifiers.
func (s Snapshot) Holds(c Chord) bool {
	switch {
	case c.IsZero():
		return false
	case c.IsModifierOnly():
		return s.mods == c.Modifiers
	}

	if !s.IsDown(c.Key, c.Rune) {
		return false
	}
	mods := s.mods
	if c.Key == KeyRune && !unicode.IsLetter(c.Rune) && !c.Modifiers.HasShift() {
		mods = mods.Without(ModShift)
	}
	return mods == c.Modifiers
}
