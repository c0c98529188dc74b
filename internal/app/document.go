package app

import (
	"fmt"
	"path/filepath"
	"sync"
)

// Zoom limits in percent.
const (
	minZoom = 100
	maxZoom = 3200
)

// Mask is a rectangular selection.
type Mask struct {
	X, Y, Width, Height int
}

// IsEmpty returns true for a zero-area mask.
func (m Mask) IsEmpty() bool {
	return m.Width <= 0 || m.Height <= 0
}

// Document is an open sprite and its view state. Pixel data is out of
// scope; the document tracks what shortcuts change.
type Document struct {
	mu sync.RWMutex

	Name string
	Path string

	width, height int
	frames        int
	frame         int
	zoom          int
	playing       bool

	mask        Mask
	maskVisible bool
	lastMask    Mask

	modified bool
	undo     []string
	redo     []string
}

// NewDocument creates a sprite document.
func NewDocument(name string, width, height, frames int) *Document {
	if frames < 1 {
		frames = 1
	}
	return &Document{Name: name, width: width, height: height, frames: frames, zoom: minZoom}
}

// HasVisibleSelectionMask reports whether a selection is shown.
func (d *Document) HasVisibleSelectionMask() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.maskVisible && !d.mask.IsEmpty()
}

// Mask returns the selection and whether it is visible.
func (d *Document) Mask() (Mask, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.mask, d.maskVisible
}

// SetMask shows a selection.
func (d *Document) SetMask(m Mask) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.mask = m
	d.maskVisible = !m.IsEmpty()
}

// SelectAll selects the whole sprite.
func (d *Document) SelectAll() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.mask = Mask{Width: d.width, Height: d.height}
	d.maskVisible = true
}

// Deselect hides the selection, remembering it for Reselect.
func (d *Document) Deselect() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.maskVisible {
		d.lastMask = d.mask
	}
	d.maskVisible = false
}

// Reselect restores the last hidden selection.
func (d *Document) Reselect() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.lastMask.IsEmpty() {
		return false
	}
	d.mask = d.lastMask
	d.maskVisible = true
	return true
}

// InvertMask inverts the selection. A rectangle's inverse is approximated
// by the full sprite when nothing was selected and by no selection when
// everything was.
func (d *Document) InvertMask() {
	d.mu.Lock()
	defer d.mu.Unlock()
	full := Mask{Width: d.width, Height: d.height}
	switch {
	case !d.maskVisible:
		d.mask, d.maskVisible = full, true
	case d.mask == full:
		d.lastMask, d.maskVisible = d.mask, false
	}
}

// MoveMask nudges the selection by dx, dy pixels.
func (d *Document) MoveMask(dx, dy int) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.maskVisible {
		return false
	}
	d.mask.X += dx
	d.mask.Y += dy
	return true
}

// Zoom returns the zoom level in percent.
func (d *Document) Zoom() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.zoom
}

// SetZoom sets the zoom level, clamped to the supported range.
func (d *Document) SetZoom(percent int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.zoom = min(max(percent, minZoom), maxZoom)
}

// ZoomIn doubles the zoom level.
func (d *Document) ZoomIn() {
	d.SetZoom(d.Zoom() * 2)
}

// ZoomOut halves the zoom level.
func (d *Document) ZoomOut() {
	d.SetZoom(d.Zoom() / 2)
}

// Frame returns the current frame index and the frame count.
func (d *Document) Frame() (int, int) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.frame, d.frames
}

// StepFrame moves delta frames, wrapping around.
func (d *Document) StepFrame(delta int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.frame = ((d.frame+delta)%d.frames + d.frames) % d.frames
}

// TogglePlaying starts or stops animation playback.
func (d *Document) TogglePlaying() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.playing = !d.playing
	return d.playing
}

// IsPlaying reports whether the animation plays.
func (d *Document) IsPlaying() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.playing
}

// Apply records an undoable edit and clears the redo history.
func (d *Document) Apply(edit string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.undo = append(d.undo, edit)
	d.redo = nil
	d.modified = true
}

// Undo reverts the last edit and returns its name.
func (d *Document) Undo() (string, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.undo) == 0 {
		return "", false
	}
	edit := d.undo[len(d.undo)-1]
	d.undo = d.undo[:len(d.undo)-1]
	d.redo = append(d.redo, edit)
	d.modified = true
	return edit, true
}

// Redo reapplies the last undone edit and returns its name.
func (d *Document) Redo() (string, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.redo) == 0 {
		return "", false
	}
	edit := d.redo[len(d.redo)-1]
	d.redo = d.redo[:len(d.redo)-1]
	d.undo = append(d.undo, edit)
	d.modified = true
	return edit, true
}

// History returns the undo stack, oldest first.
func (d *Document) History() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]string, len(d.undo))
	copy(out, d.undo)
	return out
}

// IsModified reports unsaved changes.
func (d *Document) IsModified() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.modified
}

// MarkSaved clears the modified flag, optionally under a new path.
func (d *Document) MarkSaved(path string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if path != "" {
		d.Path = path
		d.Name = filepath.Base(path)
	}
	d.modified = false
}

// DocumentManager tracks open sprites.
type DocumentManager struct {
	mu      sync.RWMutex
	docs    []*Document
	active  *Document
	counter int
}

// NewDocumentManager creates an empty manager.
func NewDocumentManager() *DocumentManager {
	return &DocumentManager{}
}

// New creates and activates an untitled sprite.
func (dm *DocumentManager) New(width, height int) *Document {
	dm.mu.Lock()
	defer dm.mu.Unlock()
	dm.counter++
	doc := NewDocument(fmt.Sprintf("Sprite-%d", dm.counter), width, height, 1)
	dm.docs = append(dm.docs, doc)
	dm.active = doc
	return doc
}

// Open activates the sprite at path, adding it if not open yet.
func (dm *DocumentManager) Open(path string) *Document {
	dm.mu.Lock()
	defer dm.mu.Unlock()
	for _, doc := range dm.docs {
		if doc.Path == path {
			dm.active = doc
			return doc
		}
	}
	doc := NewDocument(filepath.Base(path), 32, 32, 1)
	doc.Path = path
	dm.docs = append(dm.docs, doc)
	dm.active = doc
	return doc
}

// Close closes the active sprite; the most recently opened remaining one
// becomes active.
func (dm *DocumentManager) Close() error {
	dm.mu.Lock()
	defer dm.mu.Unlock()
	if dm.active == nil {
		return ErrNoActiveDocument
	}
	for i, doc := range dm.docs {
		if doc == dm.active {
			dm.docs = append(dm.docs[:i], dm.docs[i+1:]...)
			break
		}
	}
	dm.active = nil
	if n := len(dm.docs); n > 0 {
		dm.active = dm.docs[n-1]
	}
	return nil
}

// Active returns the active sprite, or nil.
func (dm *DocumentManager) Active() *Document {
	dm.mu.RLock()
	defer dm.mu.RUnlock()
	return dm.active
}

// Count returns the number of open sprites.
func (dm *DocumentManager) Count() int {
	dm.mu.RLock()
	defer dm.mu.RUnlock()
	return len(dm.docs)
}

// HasVisibleSelectionMask reports whether the active sprite shows a
// selection. It lets the manager stand in for the active document.
func (dm *DocumentManager) HasVisibleSelectionMask() bool {
	doc := dm.Active()
	return doc != nil && doc.HasVisibleSelectionMask()
}
