package tool

import (
	"fmt"
	"sync"
)

// ToolBar tracks the current tool and which tool of each group is shown.
// It is safe for concurrent use.
type ToolBar struct {
	mu      sync.RWMutex
	box     *ToolBox
	current *Tool
	visible map[string]*Tool

	onChange func(prev, next *Tool)
}

// NewToolBar creates a toolbar over box. The first tool of each group starts
// visible and the first tool overall starts current.
func NewToolBar(box *ToolBox) *ToolBar {
	tb := &ToolBar{
		box:     box,
		visible: make(map[string]*Tool),
	}
	for _, g := range box.groups {
		tb.visible[g.Name] = g.Tools[0]
		if tb.current == nil {
			tb.current = g.Tools[0]
		}
	}
	return tb
}

// ToolBox returns the underlying toolbox.
func (tb *ToolBar) ToolBox() *ToolBox {
	return tb.box
}

// Tools returns every tool in visual order.
func (tb *ToolBar) Tools() []*Tool {
	return tb.box.Tools()
}

// Current returns the active tool, or nil if none.
func (tb *ToolBar) Current() *Tool {
	tb.mu.RLock()
	defer tb.mu.RUnlock()
	return tb.current
}

// IsVisible returns true if t is the shown tool of its group.
func (tb *ToolBar) IsVisible(t *Tool) bool {
	if t == nil {
		return false
	}
	tb.mu.RLock()
	defer tb.mu.RUnlock()
	return tb.visible[t.Group] == t
}

// Select makes t the current tool and the visible tool of its group.
func (tb *ToolBar) Select(t *Tool) error {
	if t == nil {
		return fmt.Errorf("%w: nil", ErrUnknownTool)
	}
	if known, ok := tb.box.byID[t.ID]; !ok || known != t {
		return fmt.Errorf("%w: %s", ErrUnknownTool, t.ID)
	}

	tb.mu.Lock()
	prev := tb.current
	tb.current = t
	tb.visible[t.Group] = t
	onChange := tb.onChange
	tb.mu.Unlock()

	if onChange != nil && prev != t {
		onChange(prev, t)
	}
	return nil
}

// Clear leaves the toolbar with no current tool.
func (tb *ToolBar) Clear() {
	tb.mu.Lock()
	defer tb.mu.Unlock()
	tb.current = nil
}

// OnChange registers a callback invoked after the current tool changes.
func (tb *ToolBar) OnChange(fn func(prev, next *Tool)) {
	tb.mu.Lock()
	defer tb.mu.Unlock()
	tb.onChange = fn
}
