package app

import (
	"fmt"
	"strconv"
	"sync"

	"github.com/dshills/pixelkeys/internal/command"
)

// Default size for new sprites.
const (
	defaultSpriteWidth  = 32
	defaultSpriteHeight = 32
)

// View holds editor-wide view toggles.
type View struct {
	Grid       bool
	Timeline   bool
	Fullscreen bool
}

// EditorHooks connect commands to the surrounding application. Nil hooks
// are skipped.
type EditorHooks struct {
	// Quit is called by the Exit command.
	Quit func()

	// OpenDialog is called when a command needs user input, such as
	// OpenFile without a path.
	OpenDialog func(title string)
}

// Editor is the state commands act on.
type Editor struct {
	docs  *DocumentManager
	hooks EditorHooks

	mu        sync.RWMutex
	view      View
	clipboard *Mask
}

// NewEditor creates an editor with one empty sprite.
func NewEditor(hooks EditorHooks) *Editor {
	e := &Editor{docs: NewDocumentManager(), hooks: hooks, view: View{Timeline: true}}
	e.docs.New(defaultSpriteWidth, defaultSpriteHeight)
	return e
}

// Documents returns the open sprites.
func (e *Editor) Documents() *DocumentManager {
	return e.docs
}

// View returns the view toggles.
func (e *Editor) View() View {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.view
}

// RegisterCommands adds every editor command to reg.
func (e *Editor) RegisterCommands(reg *command.Registry) error {
	for _, cmd := range e.Commands() {
		if err := reg.Register(cmd); err != nil {
			return err
		}
	}
	return nil
}

// Commands returns the editor commands.
func (e *Editor) Commands() []*command.Command {
	return []*command.Command{
		command.New("NewFile", "Create a sprite", e.newFile),
		command.New("OpenFile", "Open the sprite named by path", e.openFile),
		command.New("SaveFile", "Save the active sprite", e.saveFile),
		command.New("SaveFileAs", "Save the active sprite under path", e.saveFile),
		command.New("CloseFile", "Close the active sprite", e.closeFile),
		command.New("Exit", "Quit", e.exit),

		command.New("Undo", "Undo the last edit", e.undo),
		command.New("Redo", "Redo the last undone edit", e.redo),
		command.New("Cut", "Cut the selection", e.cut),
		command.New("Copy", "Copy the selection", e.copy),
		command.New("Paste", "Paste the clipboard", e.paste),
		command.New("Clear", "Clear the selection", e.edit("clear")),
		command.New("Flip", "Flip by orientation", e.flip),

		command.New("SelectAll", "Select the whole sprite", e.withDoc(func(d *Document, _ command.Params) error {
			d.SelectAll()
			return nil
		})),
		command.New("DeselectMask", "Hide the selection", e.withDoc(func(d *Document, _ command.Params) error {
			d.Deselect()
			return nil
		})),
		command.New("ReselectMask", "Restore the last selection", e.withDoc(func(d *Document, _ command.Params) error {
			d.Reselect()
			return nil
		})),
		command.New("InvertMask", "Invert the selection", e.withDoc(func(d *Document, _ command.Params) error {
			d.InvertMask()
			return nil
		})),
		command.New("MoveMask", "Nudge the selection by direction and quantity", e.moveMask),

		command.New("Zoom", "Zoom in, out or to percent", e.withDoc(zoom)),
		command.New("ShowGrid", "Toggle the pixel grid", e.toggle(func(v *View) { v.Grid = !v.Grid })),
		command.New("ToggleTimeline", "Toggle the timeline", e.toggle(func(v *View) { v.Timeline = !v.Timeline })),
		command.New("FullscreenMode", "Toggle full screen", e.toggle(func(v *View) { v.Fullscreen = !v.Fullscreen })),

		command.New("GotoPreviousFrame", "Go to the previous frame", e.withDoc(func(d *Document, _ command.Params) error {
			d.StepFrame(-1)
			return nil
		})),
		command.New("GotoNextFrame", "Go to the next frame", e.withDoc(func(d *Document, _ command.Params) error {
			d.StepFrame(1)
			return nil
		})),
		command.New("PlayAnimation", "Start or stop playback", e.withDoc(func(d *Document, _ command.Params) error {
			d.TogglePlaying()
			return nil
		})),
	}
}

func (e *Editor) withDoc(fn func(*Document, command.Params) error) command.Handler {
	return func(p command.Params) error {
		doc := e.docs.Active()
		if doc == nil {
			return ErrNoActiveDocument
		}
		return fn(doc, p)
	}
}

func (e *Editor) edit(name string) command.Handler {
	return e.withDoc(func(d *Document, _ command.Params) error {
		if !d.HasVisibleSelectionMask() {
			return nil
		}
		d.Apply(name)
		return nil
	})
}

func (e *Editor) toggle(fn func(*View)) command.Handler {
	return func(command.Params) error {
		e.mu.Lock()
		defer e.mu.Unlock()
		fn(&e.view)
		return nil
	}
}

func (e *Editor) newFile(command.Params) error {
	e.docs.New(defaultSpriteWidth, defaultSpriteHeight)
	return nil
}

func (e *Editor) openFile(p command.Params) error {
	path := p.Get("path")
	if path == "" {
		if e.hooks.OpenDialog != nil {
			e.hooks.OpenDialog("Open File")
		}
		return nil
	}
	e.docs.Open(path)
	return nil
}

func (e *Editor) saveFile(p command.Params) error {
	doc := e.docs.Active()
	if doc == nil {
		return ErrNoActiveDocument
	}
	doc.MarkSaved(p.Get("path"))
	return nil
}

func (e *Editor) closeFile(command.Params) error {
	return e.docs.Close()
}

func (e *Editor) exit(command.Params) error {
	if e.hooks.Quit != nil {
		e.hooks.Quit()
	}
	return nil
}

func (e *Editor) undo(command.Params) error {
	doc := e.docs.Active()
	if doc == nil {
		return ErrNoActiveDocument
	}
	doc.Undo()
	return nil
}

func (e *Editor) redo(command.Params) error {
	doc := e.docs.Active()
	if doc == nil {
		return ErrNoActiveDocument
	}
	doc.Redo()
	return nil
}

func (e *Editor) copy(command.Params) error {
	doc := e.docs.Active()
	if doc == nil {
		return ErrNoActiveDocument
	}
	mask, visible := doc.Mask()
	if !visible {
		return nil
	}
	e.mu.Lock()
	e.clipboard = &mask
	e.mu.Unlock()
	return nil
}

func (e *Editor) cut(p command.Params) error {
	if err := e.copy(p); err != nil {
		return err
	}
	return e.edit("cut")(p)
}

func (e *Editor) paste(command.Params) error {
	doc := e.docs.Active()
	if doc == nil {
		return ErrNoActiveDocument
	}
	e.mu.RLock()
	clip := e.clipboard
	e.mu.RUnlock()
	if clip == nil {
		return nil
	}
	doc.SetMask(*clip)
	doc.Apply("paste")
	return nil
}

func (e *Editor) flip(p command.Params) error {
	orientation := p.Get("orientation")
	switch orientation {
	case "horizontal", "vertical":
	default:
		return fmt.Errorf("%w: orientation %q", ErrInvalidParam, orientation)
	}
	return e.withDoc(func(d *Document, _ command.Params) error {
		d.Apply("flip " + orientation)
		return nil
	})(p)
}

func (e *Editor) moveMask(p command.Params) error {
	quantity := 1
	if q := p.Get("quantity"); q != "" {
		n, err := strconv.Atoi(q)
		if err != nil {
			return fmt.Errorf("%w: quantity %q", ErrInvalidParam, q)
		}
		quantity = n
	}

	var dx, dy int
	switch p.Get("direction") {
	case "left":
		dx = -quantity
	case "right":
		dx = quantity
	case "up":
		dy = -quantity
	case "down":
		dy = quantity
	default:
		return fmt.Errorf("%w: direction %q", ErrInvalidParam, p.Get("direction"))
	}
	return e.withDoc(func(d *Document, _ command.Params) error {
		d.MoveMask(dx, dy)
		return nil
	})(p)
}

func zoom(d *Document, p command.Params) error {
	switch action := p.Get("action"); action {
	case "in":
		d.ZoomIn()
	case "out":
		d.ZoomOut()
	case "set":
		percent, err := strconv.Atoi(p.Get("percent"))
		if err != nil {
			return fmt.Errorf("%w: percent %q", ErrInvalidParam, p.Get("percent"))
		}
		d.SetZoom(percent)
	default:
		return fmt.Errorf("%w: action %q", ErrInvalidParam, action)
	}
	return nil
}
