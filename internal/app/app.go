package app

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/dshills/pixelkeys/internal/command"
	"github.com/dshills/pixelkeys/internal/config"
	"github.com/dshills/pixelkeys/internal/config/watcher"
	"github.com/dshills/pixelkeys/internal/dispatcher"
	"github.com/dshills/pixelkeys/internal/input/key"
	"github.com/dshills/pixelkeys/internal/input/keymap"
	"github.com/dshills/pixelkeys/internal/logging"
	"github.com/dshills/pixelkeys/internal/tool"
	"github.com/dshills/pixelkeys/internal/ui"
)

const (
	// reloadDebounce coalesces bursts of keymap file writes.
	reloadDebounce = 200 * time.Millisecond

	// menuEchoWindow is how long after a key-dispatched command the same
	// menu item's action is ignored.
	menuEchoWindow = 150 * time.Millisecond
)

// Application is the central coordinator. It owns the shortcut registry
// and every collaborator the dispatcher consults.
type Application struct {
	settings config.Settings
	logger   zerolog.Logger

	editor   *Editor
	commands *command.Registry
	toolbox  *tool.ToolBox
	toolbar  *tool.ToolBar
	windows  *ui.Stack
	main     *ui.Window
	menu     *MenuBar

	keymap     *keymap.Registry
	controller *dispatcher.Controller
	metrics    *Metrics
	watcher    *watcher.Watcher

	mu        sync.RWMutex
	quickTool *tool.Tool
	held      []keymap.EditorActionName
	last      string
	warnings  ErrorList

	lastCommand   string
	lastCommandAt time.Time

	changed  chan struct{}
	running  atomic.Bool
	quit     chan struct{}
	quitOnce sync.Once
}

// New creates an application from settings. The keymap is assembled from
// the stock shortcuts, the configured keymap file and Lua scripts.
func New(ctx context.Context, settings config.Settings, logger zerolog.Logger) (*Application, error) {
	app := &Application{
		settings: settings,
		logger:   logger,
		commands: command.NewRegistry(),
		toolbox:  tool.DefaultToolBox(),
		main:     ui.NewDesktop("Sprite Editor"),
		menu:     NewMenuBar(),
		metrics:  NewMetrics(),
		changed:  make(chan struct{}, 1),
		quit:     make(chan struct{}),
	}
	app.toolbar = tool.NewToolBar(app.toolbox)
	app.windows = ui.NewStack(app.main)
	app.editor = NewEditor(EditorHooks{
		Quit:       app.Quit,
		OpenDialog: app.OpenDialog,
	})
	if err := app.editor.RegisterCommands(app.commands); err != nil {
		return nil, &InitError{Component: "commands", Err: err}
	}

	reg, warnings, err := BuildRegistry(ctx, app.keymapSources(), app.commands, app.toolbox,
		logging.WithComponent(logger, "keymap"))
	if err != nil {
		return nil, &InitError{Component: "keymap", Err: err}
	}
	app.keymap = reg
	app.warnings.Add(warnings...)

	app.controller, err = dispatcher.New(app.keymap, dispatcher.Deps{
		Commands: app.commands,
		Tools:    app.toolbar,
		ToolBox:  app.toolbox,
		Windows:  app.windows,
		Document: app.editor.Documents(),
		Menu:     app.menu,
	}, dispatcherConfig(settings.Dispatch), logger)
	if err != nil {
		return nil, &InitError{Component: "dispatcher", Err: err}
	}

	app.toolbar.OnChange(func(prev, next *tool.Tool) {
		app.logger.Debug().Stringer("from", prev).Stringer("to", next).Msg("tool changed")
	})
	app.controller.OnDispatch(func(ev key.Event, res dispatcher.Result) {
		app.mu.Lock()
		app.last = describeResult(ev, res)
		if res.Outcome == dispatcher.OutcomeCommand {
			app.lastCommand = res.Binding.Action().String()
			app.lastCommandAt = time.Now()
		}
		app.mu.Unlock()
		app.notify()
	})
	return app, nil
}

func dispatcherConfig(s config.DispatchSettings) dispatcher.Config {
	return dispatcher.DefaultConfig().
		WithMetrics(s.Metrics).
		WithPanicRecovery(s.RecoverPanics)
}

func (app *Application) keymapSources() KeymapSources {
	return KeymapSources{
		File:          app.settings.Keymap.File,
		Scripts:       app.settings.Plugins.Scripts,
		ScriptTimeout: app.settings.Plugins.Timeout,
	}
}

// Reload rebuilds the keymap from its sources and swaps it in atomically.
// On failure the current shortcuts stay in effect.
func (app *Application) Reload(ctx context.Context) error {
	start := time.Now()
	reg, warnings, err := BuildRegistry(ctx, app.keymapSources(), app.commands, app.toolbox,
		logging.WithComponent(app.logger, "keymap"))
	app.metrics.RecordReload(time.Since(start), len(warnings), err != nil)
	if err != nil {
		app.logger.Error().Err(err).Msg("keymap reload failed, keeping current shortcuts")
		return err
	}
	app.keymap.ReplaceAll(reg)
	app.mu.Lock()
	app.warnings = ErrorList{}
	app.warnings.Add(warnings...)
	app.mu.Unlock()
	app.logger.Info().Int("bindings", app.keymap.Len()).Int("warnings", len(warnings)).Msg("keymap reloaded")
	app.notify()
	return nil
}

// startWatcher reloads the keymap when its file changes.
func (app *Application) startWatcher(ctx context.Context) {
	if !app.settings.Keymap.Watch || app.settings.Keymap.File == "" {
		return
	}
	w, err := watcher.New(
		watcher.WithDebounce(reloadDebounce),
		watcher.WithErrorHandler(func(err error) {
			app.logger.Warn().Err(err).Msg("keymap watcher error")
		}),
	)
	if err != nil {
		app.logger.Warn().Err(err).Msg("keymap watching disabled")
		return
	}
	if err := w.Watch(app.settings.Keymap.File); err != nil {
		app.logger.Warn().Err(err).Str("file", app.settings.Keymap.File).Msg("keymap watching disabled")
		w.Close()
		return
	}
	w.OnChange(func(ev watcher.Event) {
		app.logger.Debug().Str("file", ev.Path).Stringer("op", ev.Op).Msg("keymap file changed")
		_ = app.Reload(ctx)
	})
	app.watcher = w
	go func() {
		if err := w.Run(ctx); err != nil && ctx.Err() == nil {
			app.logger.Warn().Err(err).Msg("keymap watcher stopped")
		}
	}()
}

func (app *Application) stopWatcher() {
	if app.watcher != nil {
		app.watcher.Close()
	}
}

// HandleKey dispatches a key-down. Unconsumed Escape closes the top dialog.
func (app *Application) HandleKey(ev key.Event) bool {
	if app.controller.HandleKeyDown(ev) {
		return true
	}
	if ev.Key == key.KeyEscape && ev.Modifiers == key.ModNone {
		return app.CloseDialog()
	}
	return false
}

// Poll refreshes the quick tool and the held sprite-editor modifiers from
// the keyboard snapshot. It reports whether either changed.
func (app *Application) Poll(snap key.Snapshot) bool {
	qt := app.controller.QuickTool(app.toolbar.Current(), snap)

	var held []keymap.EditorActionName
	for _, name := range keymap.EditorActions() {
		if app.controller.EditorActionHeld(name, snap) {
			held = append(held, name)
		}
	}

	app.mu.Lock()
	changed := qt != app.quickTool || !equalNames(held, app.held)
	if qt != app.quickTool {
		app.logger.Debug().Stringer("quick_tool", qt).Msg("quick tool")
	}
	app.quickTool = qt
	app.held = held
	app.mu.Unlock()

	app.metrics.RecordPoll(changed)
	return changed
}

func equalNames(a, b []keymap.EditorActionName) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// KeymapWarnings returns the problems found while building the current
// keymap, or nil.
func (app *Application) KeymapWarnings() error {
	app.mu.RLock()
	defer app.mu.RUnlock()
	if app.warnings.Len() == 0 {
		return nil
	}
	list := &ErrorList{}
	list.Add(app.warnings.Errors()...)
	return list
}

// dispatchedByKey reports whether the command action ran from a key-down
// within menuEchoWindow.
func (app *Application) dispatchedByKey(action string) bool {
	app.mu.RLock()
	defer app.mu.RUnlock()
	return app.lastCommand == action && time.Since(app.lastCommandAt) < menuEchoWindow
}

// runMenuCommand runs a menu item's command. Fyne fires a menu item's
// shortcut after the canvas key-down, so a command the key tracker just ran
// is skipped; otherwise the controller's window rules decide.
func (app *Application) runMenuCommand(name string, params command.Params) bool {
	if app.dispatchedByKey(keymap.CommandAction{Command: name, Params: params}.String()) {
		return false
	}
	res := app.controller.RunCommand(name, params)
	if !res.Consumed {
		return false
	}
	app.menu.CancelMenuLoop()
	if res.Err != nil {
		app.logger.Error().Err(res.Err).Str("command", name).Msg("menu command failed")
	}
	app.notify()
	return true
}

// ActiveTool returns the quick tool when one is held, else the current tool.
func (app *Application) ActiveTool() *tool.Tool {
	app.mu.RLock()
	qt := app.quickTool
	app.mu.RUnlock()
	if qt != nil {
		return qt
	}
	return app.toolbar.Current()
}

// HeldEditorActions returns the sprite-editor modifiers held at the last
// poll.
func (app *Application) HeldEditorActions() []keymap.EditorActionName {
	app.mu.RLock()
	defer app.mu.RUnlock()
	out := make([]keymap.EditorActionName, len(app.held))
	copy(out, app.held)
	return out
}

// OpenDialog shows a modal window above the editor.
func (app *Application) OpenDialog(title string) {
	app.windows.Push(ui.NewDialog(title))
	app.notify()
}

// CloseDialog closes the topmost window unless it is the main window.
func (app *Application) CloseDialog() bool {
	top := app.windows.Top()
	if top == nil || top == app.main {
		return false
	}
	if err := app.windows.Remove(top.ID); err != nil {
		return false
	}
	app.notify()
	return true
}

// RequestClose handles the window manager's close request.
func (app *Application) RequestClose() {
	if err := app.controller.HandleCloseApp(); err != nil {
		app.logger.Error().Err(err).Msg("close request failed")
	}
}

// Quit stops Run. It is safe to call more than once.
func (app *Application) Quit() {
	app.quitOnce.Do(func() { close(app.quit) })
}

// Done is closed once Quit has been called.
func (app *Application) Done() <-chan struct{} {
	return app.quit
}

// Changed signals that visible state changed and a redraw is due.
func (app *Application) Changed() <-chan struct{} {
	return app.changed
}

func (app *Application) notify() {
	select {
	case app.changed <- struct{}{}:
	default:
	}
}

func (app *Application) logStats() {
	ev := app.logger.Info()
	if m := app.controller.Metrics(); m != nil {
		s := m.Stats()
		ev = ev.Uint64("key_events", s.KeyEvents).
			Uint64("commands", s.Commands).
			Uint64("tool_switches", s.ToolSwitches).
			Dur("avg_latency", s.AvgLatency)
	}
	s := app.metrics.Snapshot()
	ev.Uint64("polls", s.Polls).Uint64("reloads", s.Reloads).Dur("uptime", s.Uptime).Msg("session ended")
}

// Settings returns the settings the application was built with.
func (app *Application) Settings() config.Settings { return app.settings }

// Commands returns the command registry.
func (app *Application) Commands() *command.Registry { return app.commands }

// Keymap returns the shortcut registry.
func (app *Application) Keymap() *keymap.Registry { return app.keymap }

// Controller returns the shortcut dispatcher.
func (app *Application) Controller() *dispatcher.Controller { return app.controller }

// ToolBar returns the toolbar.
func (app *Application) ToolBar() *tool.ToolBar { return app.toolbar }

// ToolBox returns the toolbox.
func (app *Application) ToolBox() *tool.ToolBox { return app.toolbox }

// Windows returns the window stack.
func (app *Application) Windows() *ui.Stack { return app.windows }

// Editor returns the command target state.
func (app *Application) Editor() *Editor { return app.editor }

// Menu returns the menu bar.
func (app *Application) Menu() *MenuBar { return app.menu }

// Metrics returns session metrics.
func (app *Application) Metrics() *Metrics { return app.metrics }
