package app

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"

	"github.com/dshills/pixelkeys/internal/backend"
	"github.com/dshills/pixelkeys/internal/config"
	"github.com/dshills/pixelkeys/internal/dispatcher"
	"github.com/dshills/pixelkeys/internal/input/key"
	"github.com/dshills/pixelkeys/internal/input/keymap"
)

func testSettings(keymapFile string) config.Settings {
	return config.Settings{
		Log:      config.LogSettings{Level: "off"},
		Keymap:   config.KeymapSettings{File: keymapFile},
		Input:    config.InputSettings{ReleaseTimeout: time.Hour, PollInterval: 5 * time.Millisecond},
		Backend:  config.BackendSettings{Kind: "terminal"},
		Dispatch: config.DispatchSettings{Metrics: true, RecoverPanics: true},
	}
}

func newTestApp(t *testing.T, keymapFile string) *Application {
	t.Helper()
	app, err := New(context.Background(), testSettings(keymapFile), zerolog.Nop())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return app
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestNewUsesStockShortcuts(t *testing.T) {
	app := newTestApp(t, filepath.Join(t.TempDir(), "missing.toml"))

	stock := keymap.NewRegistry()
	if err := keymap.LoadDefaults(stock); err != nil {
		t.Fatal(err)
	}
	if app.Keymap().Len() != stock.Len() {
		t.Errorf("Keymap().Len() = %d, want %d", app.Keymap().Len(), stock.Len())
	}
	if app.ToolBar().Current() == nil {
		t.Error("a tool should be current")
	}
	if app.Windows().Main() == nil {
		t.Error("main window should exist")
	}
}

func TestHandleKeyRunsCommandsAndSelectsTools(t *testing.T) {
	app := newTestApp(t, "")
	doc := app.Editor().Documents().Active()

	if !app.HandleKey(key.NewRuneEvent('+', key.ModNone)) {
		t.Fatal("+ should be consumed")
	}
	if doc.Zoom() != 200 {
		t.Errorf("Zoom = %d, want 200", doc.Zoom())
	}

	if !app.HandleKey(key.NewRuneEvent('e', key.ModNone)) {
		t.Fatal("E should be consumed")
	}
	if got := app.ToolBar().Current().ID; got != "eraser" {
		t.Errorf("current tool = %s, want eraser", got)
	}

	if app.HandleKey(key.NewRuneEvent('k', key.ModNone)) {
		t.Error("unbound key should not be consumed")
	}
}

func TestHandleKeyContextSwitchesArrowMeaning(t *testing.T) {
	app := newTestApp(t, "")
	doc := app.Editor().Documents().Active()

	app.HandleKey(key.NewRuneEvent('m', key.ModNone))
	app.HandleKey(key.NewRuneEvent('a', key.ModCtrl))
	if app.Controller().CurrentContext(app.ToolBar().Current()) != keymap.ContextSelection {
		t.Fatal("marquee with a selection should be the selection context")
	}

	app.HandleKey(key.NewSpecialEvent(key.KeyRight, key.ModNone))
	if m, _ := doc.Mask(); m.X != 1 {
		t.Errorf("Right should nudge the selection, mask X = %d", m.X)
	}
}

func TestDialogSuppressesShortcuts(t *testing.T) {
	app := newTestApp(t, "")

	app.HandleKey(key.NewRuneEvent('o', key.ModCtrl))
	if top := app.Windows().Top(); top == nil || top.Name != "Open File" {
		t.Fatalf("Ctrl+O should open a dialog, top = %v", top)
	}

	before := app.ToolBar().Current()
	app.HandleKey(key.NewRuneEvent('e', key.ModNone))
	if app.ToolBar().Current() != before {
		t.Error("shortcuts should be suppressed under a dialog")
	}

	if !app.HandleKey(key.NewSpecialEvent(key.KeyEscape, key.ModNone)) {
		t.Error("Escape should close the dialog")
	}
	if app.Windows().Top() != app.Windows().Main() {
		t.Error("main window should be on top again")
	}
}

func TestPollQuickToolAndModifiers(t *testing.T) {
	app := newTestApp(t, "")

	space := key.MustParse("Space")
	if !app.Poll(key.NewSnapshot(key.ModNone, space)) {
		t.Error("holding Space should change state")
	}
	if got := app.ActiveTool().ID; got != "hand" {
		t.Errorf("ActiveTool = %s, want hand", got)
	}

	if !app.Poll(key.NewSnapshot(key.ModShift)) {
		t.Error("switching to Shift should change state")
	}
	held := app.HeldEditorActions()
	if len(held) != 5 {
		t.Errorf("Shift should hold five editor actions, got %v", held)
	}
	if app.ActiveTool() != app.ToolBar().Current() {
		t.Error("no quick tool should be active with Shift")
	}

	if app.Poll(key.NewSnapshot(key.ModShift)) {
		t.Error("same snapshot should not report a change")
	}
	if s := app.Metrics().Snapshot(); s.Polls != 3 || s.QuickToolChanges != 2 {
		t.Errorf("metrics = %+v", s)
	}
}

func TestKeymapFileAndReload(t *testing.T) {
	path := writeFile(t, "keys.toml", `
no_defaults = true

[[commands]]
keys = ["Ctrl+G"]
command = "ShowGrid"

[[commands]]
keys = ["Ctrl+K"]
command = "ShowGird"
`)
	app := newTestApp(t, path)

	if app.Keymap().Len() != 1 {
		t.Fatalf("Keymap().Len() = %d, want 1", app.Keymap().Len())
	}
	app.HandleKey(key.NewRuneEvent('g', key.ModCtrl))
	if !app.Editor().View().Grid {
		t.Error("Ctrl+G should toggle the grid")
	}
	if err := app.KeymapWarnings(); err == nil || !strings.Contains(err.Error(), "ShowGird") {
		t.Errorf("KeymapWarnings() = %v, want the misspelled command", err)
	}

	if err := os.WriteFile(path, []byte(`
[[tools]]
keys = ["X"]
tool = "pencil"
`), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := app.Reload(context.Background()); err != nil {
		t.Fatalf("Reload: %v", err)
	}
	if app.Keymap().ToolAccelerator("pencil").String() != "B, X" {
		t.Errorf("pencil = %q, want stock B plus X", app.Keymap().ToolAccelerator("pencil"))
	}
	if app.Keymap().CommandAccelerator("ShowGrid", nil).String() != "Ctrl+'" {
		t.Error("stock ShowGrid binding should be back")
	}
	if err := app.KeymapWarnings(); err != nil {
		t.Errorf("clean reload left warnings: %v", err)
	}

	if err := os.WriteFile(path, []byte("[[commands]\nbroken"), 0o644); err != nil {
		t.Fatal(err)
	}
	before := app.Keymap().Len()
	if err := app.Reload(context.Background()); err == nil {
		t.Error("a broken file should fail to reload")
	}
	if app.Keymap().Len() != before {
		t.Error("a failed reload should keep the current shortcuts")
	}
	if s := app.Metrics().Snapshot(); s.Reloads != 2 || s.ReloadFailures != 1 {
		t.Errorf("metrics = %+v", s)
	}
}

func TestRequestCloseQuits(t *testing.T) {
	app := newTestApp(t, "")
	app.RequestClose()

	select {
	case <-app.Done():
	default:
		t.Fatal("close request should quit")
	}
	if s := app.Controller().Metrics().Stats(); s.CloseRequests != 1 {
		t.Errorf("CloseRequests = %d", s.CloseRequests)
	}
}

func TestDispatchMetricsSetting(t *testing.T) {
	settings := testSettings("")
	settings.Dispatch.Metrics = false
	app, err := New(context.Background(), settings, zerolog.Nop())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if app.Controller().Metrics() != nil {
		t.Error("dispatch.metrics = false should disable controller metrics")
	}
	app.HandleKey(key.NewRuneEvent('e', key.ModNone))
	if got := app.ToolBar().Current().ID; got != "eraser" {
		t.Errorf("current tool = %s, want eraser", got)
	}
}

func TestMenuLoopCancelledOnHit(t *testing.T) {
	app := newTestApp(t, "")
	app.Menu().Open()

	app.HandleKey(key.NewRuneEvent('b', key.ModNone))
	if app.Menu().IsOpen() {
		t.Error("a shortcut hit should cancel the menu loop")
	}
}

func TestMenuIgnoresKeyDispatchedCommand(t *testing.T) {
	app := newTestApp(t, "")
	if app.dispatchedByKey("NewFile") {
		t.Fatal("nothing dispatched yet")
	}

	app.HandleKey(key.NewRuneEvent('n', key.ModCtrl))
	if !app.dispatchedByKey("NewFile") {
		t.Error("Ctrl+N should mark NewFile as key-dispatched")
	}
	if app.dispatchedByKey("OpenFile") {
		t.Error("OpenFile was not dispatched")
	}

	app.mu.Lock()
	app.lastCommandAt = time.Now().Add(-time.Second)
	app.mu.Unlock()
	if app.dispatchedByKey("NewFile") {
		t.Error("an old dispatch should not suppress the menu item")
	}
}

func TestMenuCommandBlockedUnderDialog(t *testing.T) {
	app := newTestApp(t, "")
	docs := app.Editor().Documents()

	app.HandleKey(key.NewRuneEvent('o', key.ModCtrl))
	before := docs.Count()
	app.HandleKey(key.NewRuneEvent('n', key.ModCtrl))
	if app.runMenuCommand("NewFile", nil) {
		t.Error("menu shortcut should not run under a dialog")
	}
	if docs.Count() != before {
		t.Errorf("documents = %d, want %d", docs.Count(), before)
	}

	app.HandleKey(key.NewSpecialEvent(key.KeyEscape, key.ModNone))
	if !app.runMenuCommand("NewFile", nil) {
		t.Fatal("menu item should run with the main window on top")
	}
	if docs.Count() != before+1 {
		t.Errorf("documents = %d, want %d", docs.Count(), before+1)
	}
}

func TestStatusLines(t *testing.T) {
	app := newTestApp(t, "")
	app.HandleKey(key.NewRuneEvent('n', key.ModCtrl))

	lines := app.StatusLines()
	if len(lines) < 4 {
		t.Fatalf("StatusLines = %v", lines)
	}
	if want := "pixelkeys  Sprite-2  frame 1/1  zoom 100%"; lines[0] != want {
		t.Errorf("line 0 = %q, want %q", lines[0], want)
	}
	if want := "last: Ctrl+N -> NewFile (" + dispatcher.OutcomeCommand.String() + ")"; lines[3] != want {
		t.Errorf("line 3 = %q, want %q", lines[3], want)
	}
}

func TestRunTerminal(t *testing.T) {
	app := newTestApp(t, "")
	sim := tcell.NewSimulationScreen("UTF-8")
	term := backend.NewTerminalWithScreen(sim, time.Hour)

	done := make(chan error, 1)
	go func() { done <- app.RunTerminal(context.Background(), term) }()

	deadline := time.Now().Add(2 * time.Second)
	for !screenHasText(sim) {
		if time.Now().After(deadline) {
			t.Fatal("status was never drawn")
		}
		time.Sleep(5 * time.Millisecond)
	}

	sim.InjectKey(tcell.KeyRune, 'e', tcell.ModNone)
	sim.InjectKey(tcell.KeyCtrlQ, 0, tcell.ModCtrl)

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("RunTerminal: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Ctrl+Q should end the session")
	}
	if got := app.ToolBar().Current().ID; got != "eraser" {
		t.Errorf("current tool = %s, want eraser", got)
	}
}

func screenHasText(sim tcell.SimulationScreen) bool {
	cells, _, _ := sim.GetContents()
	for _, c := range cells {
		if len(c.Runes) > 0 && c.Runes[0] != ' ' {
			return true
		}
	}
	return false
}
