package app

import (
	"fmt"
	"strings"

	"github.com/dshills/pixelkeys/internal/dispatcher"
	"github.com/dshills/pixelkeys/internal/input/key"
)

func describeResult(ev key.Event, res dispatcher.Result) string {
	switch {
	case res.Tool != nil:
		return fmt.Sprintf("%s -> %s (%s)", ev, res.Tool, res.Outcome)
	case res.Binding != nil && res.Err != nil:
		return fmt.Sprintf("%s -> %s (%s: %v)", ev, res.Binding.Action(), res.Outcome, res.Err)
	case res.Binding != nil:
		return fmt.Sprintf("%s -> %s (%s)", ev, res.Binding.Action(), res.Outcome)
	}
	return fmt.Sprintf("%s (%s)", ev, res.Outcome)
}

// StatusLines renders the session state as text, one line per row.
func (app *Application) StatusLines() []string {
	var lines []string

	doc := app.editor.Documents().Active()
	if doc == nil {
		lines = append(lines, "pixelkeys  no sprite open")
	} else {
		frame, frames := doc.Frame()
		name := doc.Name
		if doc.IsModified() {
			name += "*"
		}
		line := fmt.Sprintf("pixelkeys  %s  frame %d/%d  zoom %d%%", name, frame+1, frames, doc.Zoom())
		if mask, ok := doc.Mask(); ok {
			line += fmt.Sprintf("  selection %dx%d@%d,%d", mask.Width, mask.Height, mask.X, mask.Y)
		}
		if doc.IsPlaying() {
			line += "  playing"
		}
		lines = append(lines, line)
	}

	view := app.editor.View()
	var toggles []string
	if view.Grid {
		toggles = append(toggles, "grid")
	}
	if view.Timeline {
		toggles = append(toggles, "timeline")
	}
	if view.Fullscreen {
		toggles = append(toggles, "fullscreen")
	}
	lines = append(lines, "view: "+strings.Join(toggles, " "))

	current := app.toolbar.Current()
	line := fmt.Sprintf("tool: %s  context: %s", current, app.controller.CurrentContext(current))
	app.mu.RLock()
	if app.quickTool != nil {
		line += fmt.Sprintf("  quick: %s", app.quickTool)
	}
	if len(app.held) > 0 {
		names := make([]string, len(app.held))
		for i, n := range app.held {
			names[i] = string(n)
		}
		line += "  modifiers: " + strings.Join(names, ",")
	}
	last := app.last
	app.mu.RUnlock()
	lines = append(lines, line)

	if last != "" {
		lines = append(lines, "last: "+last)
	}
	if err := app.KeymapWarnings(); err != nil {
		lines = append(lines, "keymap: "+err.Error())
	}
	if top := app.windows.Top(); top != nil && top != app.main {
		lines = append(lines, fmt.Sprintf("window: %s (Esc to close)", top.Name))
	}
	if accel := app.keymap.CommandAccelerator("Exit", nil); accel != nil {
		lines = append(lines, "quit: "+accel.String())
	}
	return lines
}
