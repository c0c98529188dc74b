package app

import (
	"context"
	"fmt"
	"time"

	"github.com/dshills/pixelkeys/internal/backend"
)

// Run starts the configured backend and blocks until Quit is called or ctx
// is done.
func (app *Application) Run(ctx context.Context) error {
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	app.startWatcher(ctx)
	defer app.stopWatcher()
	defer app.logStats()

	app.logger.Info().
		Str("backend", app.settings.Backend.Kind).
		Int("bindings", app.keymap.Len()).
		Msg("starting")

	switch app.settings.Backend.Kind {
	case "terminal":
		term, err := backend.NewTerminal(app.settings.Input.ReleaseTimeout)
		if err != nil {
			return &InitError{Component: "terminal", Err: err}
		}
		return app.RunTerminal(ctx, term)
	case "desktop":
		return app.runDesktop(ctx)
	}
	return fmt.Errorf("%w: %q", ErrNoBackend, app.settings.Backend.Kind)
}

// RunTerminal runs the event loop on a terminal backend.
func (app *Application) RunTerminal(ctx context.Context, term *backend.Terminal) error {
	if err := term.Init(); err != nil {
		return &InitError{Component: "terminal", Err: err}
	}
	defer term.Shutdown()

	stop := make(chan struct{})
	defer close(stop)

	events := make(chan backend.Event)
	go func() {
		for {
			ev := term.PollEvent()
			if ev.Type == backend.EventNone {
				select {
				case <-stop:
					return
				default:
					continue
				}
			}
			select {
			case events <- ev:
			case <-stop:
				return
			}
		}
	}()

	ticker := time.NewTicker(app.settings.Input.PollInterval)
	defer ticker.Stop()

	term.DrawLines(app.StatusLines())
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-app.quit:
			return nil
		case ev := <-events:
			app.handleTerminalEvent(ev)
		case <-ticker.C:
			if app.Poll(term.Snapshot()) {
				app.notify()
			}
		case <-app.changed:
			term.DrawLines(app.StatusLines())
		}
	}
}

func (app *Application) handleTerminalEvent(ev backend.Event) {
	switch ev.Type {
	case backend.EventKey:
		app.HandleKey(ev.Key)
		app.notify()
	case backend.EventResize, backend.EventFocus:
		app.notify()
	}
}
