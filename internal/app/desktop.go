package app

import (
	"context"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/dshills/pixelkeys/internal/input/fynekey"
	"github.com/dshills/pixelkeys/internal/input/keymap"
)

// menuCategories orders the desktop menus.
var menuCategories = []string{"File", "Edit", "Select", "View", "Frame"}

// runDesktop runs the session in a Fyne window. Key-down and key-up come
// from the canvas, so held keys are exact and need no expiry.
func (app *Application) runDesktop(ctx context.Context) error {
	fa := fyneapp.NewWithID("com.github.dshills.pixelkeys")
	win := fa.NewWindow("pixelkeys")

	status := widget.NewLabel("")
	win.SetContent(container.NewVBox(status))
	win.Resize(fyne.NewSize(640, 240))
	win.SetMainMenu(app.mainMenu())

	tracker := fynekey.NewTracker(nil)
	tracker.OnKey(app.HandleKey)
	if !tracker.Attach(win.Canvas()) {
		return &InitError{Component: "desktop", Err: ErrNoBackend}
	}
	win.SetCloseIntercept(app.RequestClose)

	refresh := func() {
		text := strings.Join(app.StatusLines(), "\n")
		fyne.Do(func() { status.SetText(text) })
	}

	go func() {
		ticker := time.NewTicker(app.settings.Input.PollInterval)
		defer ticker.Stop()
		refresh()
		for {
			select {
			case <-ctx.Done():
				fyne.Do(fa.Quit)
				return
			case <-app.quit:
				fyne.Do(fa.Quit)
				return
			case <-ticker.C:
				if app.Poll(tracker.Snapshot()) {
					app.notify()
				}
			case <-app.changed:
				refresh()
			}
		}
	}()

	win.ShowAndRun()
	app.Quit()
	return nil
}

// mainMenu builds menus from the command bindings, showing each binding's
// first chord as the item's shortcut.
func (app *Application) mainMenu() *fyne.MainMenu {
	items := make(map[string][]*fyne.MenuItem)
	for _, d := range keymap.Defaults() {
		if d.Kind != keymap.KindCommand || d.Description == "" {
			continue
		}
		name, params := d.Target, d.Params
		if hasItem(items[d.Category], d.Description) {
			continue
		}
		item := fyne.NewMenuItem(d.Description, func() { app.runMenuCommand(name, params) })
		if accel := app.keymap.CommandAccelerator(name, params); accel != nil && !accel.IsEmpty() {
			if sc, ok := fynekey.Shortcut(accel.Chords()[0]); ok {
				item.Shortcut = sc
			}
		}
		items[d.Category] = append(items[d.Category], item)
	}

	var menus []*fyne.Menu
	for _, cat := range menuCategories {
		if len(items[cat]) > 0 {
			menus = append(menus, fyne.NewMenu(cat, items[cat]...))
		}
	}
	return fyne.NewMainMenu(menus...)
}

func hasItem(items []*fyne.MenuItem, label string) bool {
	for _, it := range items {
		if it.Label == label {
			return true
		}
	}
	return false
}
