package loader

import (
	"strings"

	"github.com/dshills/pixelkeys/internal/command"
	"github.com/dshills/pixelkeys/internal/input/keymap"
	"github.com/dshills/pixelkeys/internal/tool"
)

// Catalog lists the known commands and tools. Nil members skip validation.
type Catalog struct {
	Commands *command.Registry
	ToolBox  *tool.ToolBox
}

// Apply registers every entry of f into r. Entries that name unknown
// commands, tools or actions are skipped; chords that do not parse are
// skipped individually. Each problem is reported as an *EntryError.
func Apply(f *File, r *keymap.Registry, cat Catalog) []error {
	var errs []error

	for i, e := range f.Commands {
		ctx, err := keymap.ParseContext(e.Context)
		if err != nil {
			errs = append(errs, &EntryError{Section: "commands", Index: i, Target: e.Command, Err: err})
			continue
		}
		if cat.Commands != nil && !cat.Commands.Has(e.Command) {
			errs = append(errs, &EntryError{
				Section:     "commands",
				Index:       i,
				Target:      e.Command,
				Suggestions: cat.Commands.Suggest(e.Command),
				Err:         ErrUnknownCommand,
			})
			continue
		}
		params := command.Params(e.Params)
		errs = applyKeys(errs, "commands", i, e.Command, e.Keys, func(k string) error {
			_, err := r.RegisterCommand(k, e.Command, params, ctx)
			return err
		})
	}

	applyTools := func(section string, entries []ToolEntry, register func(string, tool.ID) error) {
		for i, e := range entries {
			id := tool.NormalizeID(e.Tool)
			if cat.ToolBox != nil {
				if _, ok := cat.ToolBox.Lookup(id); !ok {
					errs = append(errs, &EntryError{Section: section, Index: i, Target: e.Tool, Err: ErrUnknownTool})
					continue
				}
			}
			errs = applyKeys(errs, section, i, e.Tool, e.Keys, func(k string) error {
				return register(k, id)
			})
		}
	}
	applyTools("tools", f.Tools, func(k string, id tool.ID) error {
		_, err := r.RegisterTool(k, id)
		return err
	})
	applyTools("quicktools", f.QuickTools, func(k string, id tool.ID) error {
		_, err := r.RegisterQuickTool(k, id)
		return err
	})

	for i, e := range f.Editor {
		name, err := keymap.ParseEditorAction(e.Action)
		if err != nil {
			errs = append(errs, &EntryError{Section: "editor", Index: i, Target: e.Action, Err: err})
			continue
		}
		errs = applyKeys(errs, "editor", i, e.Action, e.Keys, func(k string) error {
			_, err := r.RegisterEditor(k, name)
			return err
		})
	}

	return errs
}

func applyKeys(errs []error, section string, index int, target string, keys []string, register func(string) error) []error {
	if len(keys) == 0 {
		return append(errs, &EntryError{Section: section, Index: index, Target: target, Err: ErrNoKeys})
	}
	for _, k := range keys {
		if err := register(k); err != nil {
			errs = append(errs, &EntryError{Section: section, Index: index, Target: target, Keys: k, Err: err})
		}
	}
	return errs
}

// Export converts the registry's bindings into a file, in registration
// order. Bindings with no chords are left out.
func Export(r *keymap.Registry) *File {
	f := &File{NoDefaults: true}
	for _, b := range r.Bindings() {
		accel := b.Accelerator()
		if accel.IsEmpty() {
			continue
		}
		var keys []string
		for _, c := range accel.Chords() {
			keys = append(keys, c.String())
		}

		switch a := b.Action().(type) {
		case keymap.CommandAction:
			e := CommandEntry{Keys: keys, Command: a.Command}
			if !a.Params.IsEmpty() {
				e.Params = a.Params.Clone()
			}
			if b.Context() != keymap.ContextAny {
				e.Context = strings.ToLower(b.Context().String())
			}
			f.Commands = append(f.Commands, e)
		case keymap.ToolAction:
			f.Tools = append(f.Tools, ToolEntry{Keys: keys, Tool: string(a.Tool)})
		case keymap.QuickToolAction:
			f.QuickTools = append(f.QuickTools, ToolEntry{Keys: keys, Tool: string(a.Tool)})
		case keymap.EditorAction:
			f.Editor = append(f.Editor, EditorEntry{Keys: keys, Action: string(a.Name)})
		}
	}
	return f
}
