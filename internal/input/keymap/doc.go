// Package keymap provides the shortcut binding registry for the pixel editor.
//
// A binding ties an action to an accelerator (one or more key chords) and an
// interaction context. There are four kinds of action:
//
//	CommandAction    - execute a named command with parameters
//	ToolAction       - switch the active tool
//	QuickToolAction  - use a tool only while its key is held
//	EditorAction     - a sprite-editor modifier such as snap-to-grid
//
// # Registration
//
// Registration is register-or-get: asking for a binding whose identity is
// already registered returns the existing binding, and new chords accumulate
// on its accelerator. Identity is the command name plus parameter equality
// for commands, the tool ID for tool and quick-tool bindings, and the action
// name for editor actions.
//
//	r := keymap.NewRegistry()
//	r.RegisterCommand("Ctrl+Z", "Undo", nil, keymap.ContextAny)
//	r.RegisterCommand("Ctrl+Shift+Z", "Undo", nil, keymap.ContextAny)
//	r.RegisterTool("B", "pencil")
//	r.RegisterQuickTool("Space", "hand")
//	r.RegisterEditor("Ctrl", keymap.CopySelection)
//
// # Contexts
//
// A binding with ContextAny always applies. Otherwise it applies only when
// its context equals the current one, derived by CurrentContext from a
// ContextSnapshot taken fresh for every resolution.
//
// # Thread Safety
//
// Registry is safe for concurrent use. Bindings returned from the registry
// may be read concurrently with registration.
package keymap
