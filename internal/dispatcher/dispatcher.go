package dispatcher

import (
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/dshills/pixelkeys/internal/command"
	"github.com/dshills/pixelkeys/internal/input/key"
	"github.com/dshills/pixelkeys/internal/input/keymap"
	"github.com/dshills/pixelkeys/internal/tool"
	"github.com/dshills/pixelkeys/internal/ui"
)

// CommandExecutor runs commands by name.
type CommandExecutor interface {
	Execute(name string, params command.Params) error
}

// ToolSelector exposes the toolbar: the current tool, which tools are shown
// and tool selection.
type ToolSelector interface {
	Current() *tool.Tool
	IsVisible(t *tool.Tool) bool
	Select(t *tool.Tool) error
}

// ToolBox enumerates tools in stable visual order.
type ToolBox interface {
	Tools() []*tool.Tool
}

// WindowStack enumerates the top-level windows.
type WindowStack interface {
	TopToBottom() []*ui.Window
	Main() *ui.Window
}

// DocumentState reports the state of the active document.
type DocumentState interface {
	HasVisibleSelectionMask() bool
}

// MenuBar is the main window's menu bar.
type MenuBar interface {
	CancelMenuLoop()
}

// Deps are the controller's collaborators. Document and Menu are optional.
type Deps struct {
	Commands CommandExecutor
	Tools    ToolSelector
	ToolBox  ToolBox
	Windows  WindowStack
	Document DocumentState
	Menu     MenuBar
}

// Controller dispatches shortcuts.
type Controller struct {
	registry *keymap.Registry
	deps     Deps
	config   Config
	logger   zerolog.Logger
	metrics  *Metrics

	mu        sync.RWMutex
	observers []func(key.Event, Result)
}

// New creates a controller over the registry.
func New(registry *keymap.Registry, deps Deps, config Config, logger zerolog.Logger) (*Controller, error) {
	switch {
	case registry == nil:
		return nil, fmt.Errorf("%w: registry", ErrMissingDependency)
	case deps.Commands == nil:
		return nil, fmt.Errorf("%w: commands", ErrMissingDependency)
	case deps.Tools == nil:
		return nil, fmt.Errorf("%w: tools", ErrMissingDependency)
	case deps.ToolBox == nil:
		return nil, fmt.Errorf("%w: toolbox", ErrMissingDependency)
	case deps.Windows == nil:
		return nil, fmt.Errorf("%w: windows", ErrMissingDependency)
	}
	if config.ExitCommand == "" {
		config.ExitCommand = DefaultConfig().ExitCommand
	}

	c := &Controller{
		registry: registry,
		deps:     deps,
		config:   config,
		logger:   logger.With().Str("component", "dispatcher").Logger(),
	}
	if config.EnableMetrics {
		c.metrics = NewMetrics()
	}
	return c, nil
}

// Registry returns the binding registry.
func (c *Controller) Registry() *keymap.Registry {
	return c.registry
}

// Metrics returns the metrics collector, or nil if disabled.
func (c *Controller) Metrics() *Metrics {
	return c.metrics
}

// OnDispatch registers an observer called after every key-down.
func (c *Controller) OnDispatch(fn func(key.Event, Result)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.observers = append(c.observers, fn)
}

// CurrentContext computes the interaction context from live state with the
// given tool as the current tool.
func (c *Controller) CurrentContext(current *tool.Tool) keymap.Context {
	snap := keymap.ContextSnapshot{ToolIsSelectionInk: current.IsSelectionInk()}
	if c.deps.Document != nil {
		snap.HasSelectionMask = c.deps.Document.HasVisibleSelectionMask()
	}
	return keymap.CurrentContext(snap)
}

// HandleKeyDown dispatches a key-down event and reports whether it was
// consumed.
func (c *Controller) HandleKeyDown(ev key.Event) bool {
	return c.Dispatch(ev).Consumed
}

// Dispatch handles a key-down event and describes what happened.
func (c *Controller) Dispatch(ev key.Event) Result {
	start := time.Now()
	res := c.dispatch(ev)

	if c.metrics != nil {
		c.metrics.RecordKeyDown(res.Outcome, time.Since(start))
	}
	c.logResult(ev, res)

	c.mu.RLock()
	observers := c.observers
	c.mu.RUnlock()
	for _, fn := range observers {
		fn(ev, res)
	}
	return res
}

func (c *Controller) dispatch(ev key.Event) Result {
	if c.foregroundOnTop() {
		return Result{Outcome: OutcomeSuppressed}
	}

	current := c.deps.Tools.Current()
	ctx := c.CurrentContext(current)

	hit, ok := c.registry.FirstPressed(ev, ctx)
	if !ok {
		return Result{Outcome: OutcomeUnmatched}
	}
	if c.deps.Menu != nil {
		c.deps.Menu.CancelMenuLoop()
	}

	res := Result{Binding: hit}
	switch a := hit.Action().(type) {
	case keymap.ToolAction:
		candidates := c.registry.PressedTools(ev, ctx, c.deps.ToolBox.Tools())
		t := c.chooseTool(candidates, current)
		res.Consumed = true
		if t == nil {
			res.Outcome = OutcomeToolNoop
			return res
		}
		if err := c.deps.Tools.Select(t); err != nil {
			res.Outcome = OutcomeToolNoop
			res.Err = err
			return res
		}
		res.Outcome = OutcomeToolSelected
		res.Tool = t

	case keymap.CommandAction:
		if !c.mainWindowActive() {
			res.Outcome = OutcomeCommandBlocked
			return res
		}
		res.Outcome = OutcomeCommand
		res.Consumed = true
		res.Err = c.execute(a.Command, a.Params)

	case keymap.QuickToolAction, keymap.EditorAction:
		res.Outcome = OutcomePassThrough

	default:
		panic(fmt.Sprintf("dispatcher: unhandled action %T", a))
	}
	return res
}

// foregroundOnTop reports whether a foreground window other than the main
// window is topmost.
func (c *Controller) foregroundOnTop() bool {
	windows := c.deps.Windows.TopToBottom()
	if len(windows) == 0 {
		return false
	}
	top := windows[0]
	return top != c.deps.Windows.Main() && top.IsForeground()
}

// mainWindowActive walks the stack from the top: a foreground window
// blocks, reaching the main desktop window allows.
func (c *Controller) mainWindowActive() bool {
	main := c.deps.Windows.Main()
	for _, w := range c.deps.Windows.TopToBottom() {
		if w.IsForeground() {
			return false
		}
		if w.IsDesktop() && w == main {
			return true
		}
	}
	return false
}

// chooseTool breaks ties among tools sharing a chord. Candidates are in
// toolbox order.
func (c *Controller) chooseTool(candidates []*tool.Tool, current *tool.Tool) *tool.Tool {
	switch len(candidates) {
	case 0:
		return nil
	case 1:
		return candidates[0]
	}

	for _, t := range candidates {
		if t != current && c.deps.Tools.IsVisible(t) {
			return t
		}
	}
	for i, t := range candidates {
		if t == current {
			return candidates[(i+1)%len(candidates)]
		}
	}
	return nil
}

// QuickTool returns the tool to use while keys are held, or nil. Holding
// the copy-selection chord with a selection tool active wins over any
// quick-tool chord.
func (c *Controller) QuickTool(current *tool.Tool, snap key.Snapshot) *tool.Tool {
	ctx := c.CurrentContext(current)
	if current.IsSelectionInk() && c.registry.HeldEditorAction(keymap.CopySelection, snap, ctx) {
		return nil
	}
	t, _ := c.registry.HeldQuickTool(snap, ctx, c.deps.ToolBox.Tools())
	return t
}

// EditorActionHeld reports whether a sprite-editor modifier is held.
func (c *Controller) EditorActionHeld(name keymap.EditorActionName, snap key.Snapshot) bool {
	return c.registry.HeldEditorAction(name, snap, c.CurrentContext(c.deps.Tools.Current()))
}

// ResolveCommand returns the command the event would trigger in the current
// context, without executing it.
func (c *Controller) ResolveCommand(ev key.Event) (keymap.CommandAction, bool) {
	return c.registry.CommandForEvent(ev, c.CurrentContext(c.deps.Tools.Current()))
}

// RunCommand executes a command that did not come from a key-down, such as
// a menu item or its shortcut. The window rules of Dispatch apply: nothing
// runs while a foreground window is on top or shadows the main window.
func (c *Controller) RunCommand(name string, params command.Params) Result {
	var res Result
	switch {
	case c.foregroundOnTop():
		res.Outcome = OutcomeSuppressed
	case !c.mainWindowActive():
		res.Outcome = OutcomeCommandBlocked
	default:
		res.Outcome = OutcomeCommand
		res.Consumed = true
		res.Err = c.execute(name, params)
	}
	c.logger.Debug().Str("command", name).Stringer("outcome", res.Outcome).Msg("run command")
	return res
}

// HandleCloseApp executes the exit command in response to a window close
// request.
func (c *Controller) HandleCloseApp() error {
	if c.metrics != nil {
		c.metrics.RecordCloseRequest()
	}
	c.logger.Debug().Str("command", c.config.ExitCommand).Msg("close requested")
	return c.execute(c.config.ExitCommand, nil)
}

func (c *Controller) execute(name string, params command.Params) (err error) {
	if c.config.RecoverFromPanic {
		defer func() {
			if r := recover(); r != nil {
				stack := make([]byte, 4096)
				n := runtime.Stack(stack, false)
				err = fmt.Errorf("%w: %s: %v\n%s", ErrPanic, name, r, stack[:n])
				if c.metrics != nil {
					c.metrics.RecordPanic()
				}
			}
		}()
	}

	err = c.deps.Commands.Execute(name, params)
	if err != nil && c.metrics != nil {
		c.metrics.RecordCommandError()
	}
	return err
}

func (c *Controller) logResult(ev key.Event, res Result) {
	if res.Err != nil {
		c.logger.Error().Err(res.Err).
			Str("key", ev.String()).
			Stringer("outcome", res.Outcome).
			Msg("shortcut failed")
		return
	}

	e := c.logger.Debug()
	if !e.Enabled() {
		return
	}
	e = e.Str("key", ev.String()).Stringer("outcome", res.Outcome)
	if res.Binding != nil {
		e = e.Stringer("action", res.Binding.Action())
	}
	if res.Tool != nil {
		e = e.Str("tool", string(res.Tool.ID))
	}
	e.Msg("key down")
}
