package lua

import (
	"strings"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/pixelkeys/internal/command"
	"github.com/dshills/pixelkeys/internal/input/key"
	"github.com/dshills/pixelkeys/internal/input/keymap"
	"github.com/dshills/pixelkeys/internal/tool"
)

// ModuleName is the global table scripts use.
const ModuleName = "shortcuts"

// Shortcuts exposes a keymap registry to Lua:
//
//	shortcuts.command(keys, name [, params [, context]]) -> accelerator text
//	shortcuts.tool(keys, id) -> accelerator text
//	shortcuts.quicktool(keys, id) -> accelerator text
//	shortcuts.editor(keys, action) -> accelerator text
//	shortcuts.accelerator(kind, target [, params]) -> text or nil
//	shortcuts.bindings() -> {{kind=, target=, keys=, context=}, ...}
//	shortcuts.commands() -> {name, ...}
//
// keys is a chord string or a list of chord strings. Scripts run on every
// keymap build, including reloads and the check command, so the module
// registers and queries but never runs commands.
type Shortcuts struct {
	keymap   *keymap.Registry
	commands *command.Registry
	toolbox  *tool.ToolBox
}

// NewShortcuts binds the module to a registry. commands and toolbox
// validate targets and may be nil.
func NewShortcuts(r *keymap.Registry, commands *command.Registry, toolbox *tool.ToolBox) *Shortcuts {
	return &Shortcuts{keymap: r, commands: commands, toolbox: toolbox}
}

// Install registers the module into the state.
func (m *Shortcuts) Install(s *State) {
	s.RegisterModule(ModuleName, map[string]lua.LGFunction{
		"command":     m.command,
		"tool":        m.tool,
		"quicktool":   m.quickTool,
		"editor":      m.editor,
		"accelerator": m.accelerator,
		"bindings":    m.bindings,
		"commands":    m.commandNames,
	})
}

func (m *Shortcuts) command(L *lua.LState) int {
	keys := checkKeys(L, 1)
	name := L.CheckString(2)
	params := optParams(L, 3)
	ctx, err := keymap.ParseContext(L.OptString(4, ""))
	if err != nil {
		L.ArgError(4, err.Error())
		return 0
	}
	if m.commands != nil && !m.commands.Has(name) {
		msg := "unknown command " + name
		if s := m.commands.Suggest(name); len(s) > 0 {
			msg += " (did you mean " + strings.Join(s, ", ") + "?)"
		}
		L.ArgError(2, msg)
		return 0
	}
	return m.register(L, keys, func(k string) (*key.Accelerator, error) {
		return m.keymap.RegisterCommand(k, name, params, ctx)
	})
}

func (m *Shortcuts) tool(L *lua.LState) int {
	keys := checkKeys(L, 1)
	id := m.checkTool(L, 2)
	return m.register(L, keys, func(k string) (*key.Accelerator, error) {
		return m.keymap.RegisterTool(k, id)
	})
}

func (m *Shortcuts) quickTool(L *lua.LState) int {
	keys := checkKeys(L, 1)
	id := m.checkTool(L, 2)
	return m.register(L, keys, func(k string) (*key.Accelerator, error) {
		return m.keymap.RegisterQuickTool(k, id)
	})
}

func (m *Shortcuts) editor(L *lua.LState) int {
	keys := checkKeys(L, 1)
	name, err := keymap.ParseEditorAction(L.CheckString(2))
	if err != nil {
		L.ArgError(2, err.Error())
		return 0
	}
	return m.register(L, keys, func(k string) (*key.Accelerator, error) {
		return m.keymap.RegisterEditor(k, name)
	})
}

func (m *Shortcuts) register(L *lua.LState, keys []string, fn func(string) (*key.Accelerator, error)) int {
	var accel *key.Accelerator
	for _, k := range keys {
		a, err := fn(k)
		if err != nil {
			L.ArgError(1, err.Error())
			return 0
		}
		accel = a
	}
	L.Push(lua.LString(accel.String()))
	return 1
}

func (m *Shortcuts) accelerator(L *lua.LState) int {
	kind := strings.ToLower(L.CheckString(1))
	target := L.CheckString(2)

	var accel *key.Accelerator
	switch kind {
	case "command":
		accel = m.keymap.CommandAccelerator(target, optParams(L, 3))
	case "tool":
		accel = m.keymap.ToolAccelerator(tool.NormalizeID(target))
	case "quicktool":
		accel = m.keymap.QuickToolAccelerator(tool.NormalizeID(target))
	case "editor":
		name, err := keymap.ParseEditorAction(target)
		if err != nil {
			L.ArgError(2, err.Error())
			return 0
		}
		accel = m.keymap.EditorAccelerator(name)
	default:
		L.ArgError(1, "kind must be command, tool, quicktool or editor")
		return 0
	}

	if accel == nil {
		L.Push(lua.LNil)
	} else {
		L.Push(lua.LString(accel.String()))
	}
	return 1
}

func (m *Shortcuts) bindings(L *lua.LState) int {
	out := L.NewTable()
	for _, b := range m.keymap.Bindings() {
		entry := L.NewTable()
		L.SetField(entry, "kind", lua.LString(b.Kind().String()))
		L.SetField(entry, "target", lua.LString(target(b.Action())))
		L.SetField(entry, "keys", lua.LString(b.Accelerator().String()))
		L.SetField(entry, "context", lua.LString(strings.ToLower(b.Context().String())))
		if ca, ok := b.Action().(keymap.CommandAction); ok && !ca.Params.IsEmpty() {
			L.SetField(entry, "params", paramsTable(L, ca.Params))
		}
		out.Append(entry)
	}
	L.Push(out)
	return 1
}

func (m *Shortcuts) commandNames(L *lua.LState) int {
	out := L.NewTable()
	if m.commands != nil {
		for _, name := range m.commands.Names() {
			out.Append(lua.LString(name))
		}
	}
	L.Push(out)
	return 1
}

func (m *Shortcuts) checkTool(L *lua.LState, n int) tool.ID {
	id := tool.NormalizeID(L.CheckString(n))
	if m.toolbox != nil {
		if _, ok := m.toolbox.Lookup(id); !ok {
			L.ArgError(n, "unknown tool "+string(id))
		}
	}
	return id
}

func target(a keymap.Action) string {
	switch a := a.(type) {
	case keymap.CommandAction:
		return a.Command
	case keymap.ToolAction:
		return string(a.Tool)
	case keymap.QuickToolAction:
		return string(a.Tool)
	case keymap.EditorAction:
		return string(a.Name)
	}
	return ""
}

// checkKeys reads a chord string or a list of chord strings.
func checkKeys(L *lua.LState, n int) []string {
	switch v := L.Get(n).(type) {
	case lua.LString:
		return []string{string(v)}
	case *lua.LTable:
		var keys []string
		v.ForEach(func(_, val lua.LValue) {
			if s, ok := val.(lua.LString); ok {
				keys = append(keys, string(s))
			}
		})
		if len(keys) == 0 {
			L.ArgError(n, "keys cannot be empty")
		}
		return keys
	default:
		L.TypeError(n, lua.LTString)
		return nil
	}
}

func optParams(L *lua.LState, n int) command.Params {
	tbl, ok := L.Get(n).(*lua.LTable)
	if !ok {
		return nil
	}
	params := make(command.Params)
	tbl.ForEach(func(k, v lua.LValue) {
		params[k.String()] = v.String()
	})
	return params
}

func paramsTable(L *lua.LState, p command.Params) *lua.LTable {
	tbl := L.NewTable()
	for _, k := range p.Keys() {
		L.SetField(tbl, k, lua.LString(p[k]))
	}
	return tbl
}
