// Package ui models the application's top-level window stack as seen by
// the shortcut dispatcher.
package ui

import (
	"errors"
	"sync"

	"github.com/google/uuid"
)

// ErrWindowNotFound is returned when removing a window that is not stacked.
var ErrWindowNotFound = errors.New("window not found")

// Window is a top-level window.
type Window struct {
	ID   uuid.UUID
	Name string

	// Foreground marks a modal window that owns the keyboard while on top:
	// menus, dialogs, popups.
	Foreground bool

	// Desktop marks the main desktop window.
	Desktop bool
}

// NewWindow creates a regular window.
func NewWindow(name string) *Window {
	return &Window{ID: uuid.New(), Name: name}
}

// NewDialog creates a modal foreground window.
func NewDialog(name string) *Window {
	return &Window{ID: uuid.New(), Name: name, Foreground: true}
}

// NewDesktop creates the main desktop window.
func NewDesktop(name string) *Window {
	return &Window{ID: uuid.New(), Name: name, Desktop: true}
}

// IsForeground returns true for modal foreground windows.
func (w *Window) IsForeground() bool { return w.Foreground }

// IsDesktop returns true for the main desktop window.
func (w *Window) IsDesktop() bool { return w.Desktop }

// Stack is the ordered set of top-level windows, topmost last.
// It is safe for concurrent use.
type Stack struct {
	mu      sync.RWMutex
	windows []*Window
}

// NewStack creates a stack holding the given windows, bottom first.
func NewStack(windows ...*Window) *Stack {
	s := &Stack{}
	for _, w := range windows {
		s.Push(w)
	}
	return s
}

// Push puts w on top. A window already stacked is moved to the top.
func (s *Stack) Push(w *Window) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.remove(w.ID)
	s.windows = append(s.windows, w)
}

// Remove takes the window with the given ID off the stack.
func (s *Stack) Remove(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.remove(id) {
		return ErrWindowNotFound
	}
	return nil
}

func (s *Stack) remove(id uuid.UUID) bool {
	for i, w := range s.windows {
		if w.ID == id {
			s.windows = append(s.windows[:i], s.windows[i+1:]...)
			return true
		}
	}
	return false
}

// Top returns the topmost window, or nil if the stack is empty.
func (s *Stack) Top() *Window {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.windows) == 0 {
		return nil
	}
	return s.windows[len(s.windows)-1]
}

// TopToBottom returns the windows from topmost to bottommost.
func (s *Stack) TopToBottom() []*Window {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Window, len(s.windows))
	for i, w := range s.windows {
		out[len(s.windows)-1-i] = w
	}
	return out
}

// Main returns the desktop window, or nil if none is stacked.
func (s *Stack) Main() *Window {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, w := range s.windows {
		if w.Desktop {
			return w
		}
	}
	return nil
}

// Len returns the number of stacked windows.
func (s *Stack) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.windows)
}
