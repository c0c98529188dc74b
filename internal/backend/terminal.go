package backend

import (
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/pixelkeys/internal/input/key"
)

// Terminal reads keys from a tcell screen.
//
// Terminals report key presses (with auto-repeat) but never releases, so a
// key counts as held until it has not been reported for the release
// timeout.
type Terminal struct {
	mu             sync.Mutex
	screen         tcell.Screen
	state          *key.State
	releaseTimeout time.Duration
	resizeHandler  func(width, height int)
}

// NewTerminal creates a terminal backend on the controlling terminal.
func NewTerminal(releaseTimeout time.Duration) (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return NewTerminalWithScreen(screen, releaseTimeout), nil
}

// NewTerminalWithScreen creates a terminal backend on an existing screen,
// such as a tcell.SimulationScreen.
func NewTerminalWithScreen(screen tcell.Screen, releaseTimeout time.Duration) *Terminal {
	return &Terminal{
		screen:         screen,
		state:          key.NewState(),
		releaseTimeout: releaseTimeout,
	}
}

// Init initializes the screen.
func (t *Terminal) Init() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.screen.Init(); err != nil {
		return err
	}
	t.screen.EnableFocus()
	t.screen.HideCursor()
	return nil
}

// Shutdown restores the terminal.
func (t *Terminal) Shutdown() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.screen.Fini()
}

// Size returns the screen size in cells.
func (t *Terminal) Size() (int, int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.screen.Size()
}

// OnResize registers a callback for screen size changes.
func (t *Terminal) OnResize(callback func(width, height int)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.resizeHandler = callback
}

// State returns the held-key tracker.
func (t *Terminal) State() *key.State {
	return t.state
}

// Snapshot forgets keys not reported within the release timeout and
// returns the held keys.
func (t *Terminal) Snapshot() key.Snapshot {
	t.state.Expire(time.Now().Add(-t.releaseTimeout))
	return t.state.Snapshot()
}

// PollEvent blocks for the next event. Key events are recorded as held.
func (t *Terminal) PollEvent() Event {
	ev := t.screen.PollEvent()
	if ev == nil {
		return Event{Type: EventNone}
	}
	out := t.convertEvent(ev)
	if out.Type == EventKey {
		t.state.Press(out.Key)
	}
	if out.Type == EventFocus && !out.Focused {
		t.state.Reset()
	}
	return out
}

// PostKey injects a key event as if typed.
func (t *Terminal) PostKey(e key.Event) error {
	k, r, m := toTcell(e)
	return t.screen.PostEvent(tcell.NewEventKey(k, r, m))
}

// Interrupt wakes PollEvent with an EventInterrupt carrying data.
func (t *Terminal) Interrupt(data any) error {
	return t.screen.PostEvent(tcell.NewEventInterrupt(data))
}

// DrawLines clears the screen and draws one line per row.
func (t *Terminal) DrawLines(lines []string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.Clear()
	width, height := t.screen.Size()
	style := tcell.StyleDefault
	for y, line := range lines {
		if y >= height {
			break
		}
		x := 0
		for _, r := range line {
			if x >= width {
				break
			}
			t.screen.SetContent(x, y, r, nil, style)
			x++
		}
	}
	t.screen.Show()
}

func (t *Terminal) convertEvent(ev tcell.Event) Event {
	switch e := ev.(type) {
	case *tcell.EventKey:
		return Event{Type: EventKey, Key: ConvertKey(e)}

	case *tcell.EventResize:
		w, h := e.Size()
		t.mu.Lock()
		handler := t.resizeHandler
		t.mu.Unlock()
		if handler != nil {
			handler(w, h)
		}
		return Event{Type: EventResize, Width: w, Height: h}

	case *tcell.EventInterrupt:
		return Event{Type: EventInterrupt, Data: e.Data()}

	case *tcell.EventFocus:
		return Event{Type: EventFocus, Focused: e.Focused}

	default:
		return Event{Type: EventNone}
	}
}
