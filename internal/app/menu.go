package app

import "sync/atomic"

// MenuBar tracks whether the main menu is in its modal loop.
type MenuBar struct {
	open    atomic.Bool
	cancels atomic.Uint64
}

// NewMenuBar creates a closed menu bar.
func NewMenuBar() *MenuBar {
	return &MenuBar{}
}

// Open enters the menu loop.
func (m *MenuBar) Open() {
	m.open.Store(true)
}

// IsOpen reports whether the menu loop is active.
func (m *MenuBar) IsOpen() bool {
	return m.open.Load()
}

// CancelMenuLoop leaves the menu loop. Every shortcut hit calls it.
func (m *MenuBar) CancelMenuLoop() {
	m.open.Store(false)
	m.cancels.Add(1)
}

// Cancels returns how often the loop was cancelled.
func (m *MenuBar) Cancels() uint64 {
	return m.cancels.Load()
}
