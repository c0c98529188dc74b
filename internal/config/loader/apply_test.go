package loader

import (
	"errors"
	"testing"

	"github.com/dshills/pixelkeys/internal/command"
	"github.com/dshills/pixelkeys/internal/input/keymap"
	"github.com/dshills/pixelkeys/internal/tool"
)

func testCatalog(t *testing.T) Catalog {
	t.Helper()
	cmds := command.NewRegistry()
	noop := func(command.Params) error { return nil }
	for _, name := range []string{"NewFile", "SaveFile", "Zoom", "Clear"} {
		if err := cmds.Register(command.New(name, "", noop)); err != nil {
			t.Fatal(err)
		}
	}
	return Catalog{Commands: cmds, ToolBox: tool.DefaultToolBox()}
}

func TestApply(t *testing.T) {
	f, err := Parse(FormatTOML, "keys.toml", []byte(sampleTOML))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	r := keymap.NewRegistry()
	if errs := Apply(f, r, testCatalog(t)); len(errs) != 0 {
		t.Fatalf("Apply() errors = %v", errs)
	}

	if r.Len() != 6 {
		t.Errorf("Len() = %d, want 6", r.Len())
	}
	if got := r.CommandAccelerator("Zoom", command.NewParams("action", "in")).String(); got != "Plus, Ctrl+Up" {
		t.Errorf("zoom chords = %q", got)
	}
	clear, ok := r.FindCommand("Clear", nil)
	if !ok || clear.Context() != keymap.ContextSelection {
		t.Errorf("Clear binding = %v, want selection context", clear)
	}
	if r.CopySelectionAccelerator().String() != "Ctrl" {
		t.Errorf("copy selection chords = %q", r.CopySelectionAccelerator())
	}
}

func TestApplyReportsBadEntries(t *testing.T) {
	f := &File{
		Commands: []CommandEntry{
			{Keys: []string{"Ctrl+N"}, Command: "NewFiel"},
			{Keys: []string{"Ctrl+S", "Hyper+S"}, Command: "SaveFile"},
			{Keys: nil, Command: "Zoom"},
			{Keys: []string{"Delete"}, Command: "Clear", Context: "insert"},
		},
		Tools:  []ToolEntry{{Keys: []string{"P"}, Tool: "paintbrush"}},
		Editor: []EditorEntry{{Keys: []string{"Alt"}, Action: "Rotate"}},
	}

	r := keymap.NewRegistry()
	errs := Apply(f, r, testCatalog(t))
	if len(errs) != 6 {
		t.Fatalf("Apply() errors = %d (%v), want 6", len(errs), errs)
	}

	var ee *EntryError
	if !errors.As(errs[0], &ee) || !errors.Is(ee, ErrUnknownCommand) {
		t.Fatalf("errs[0] = %v, want unknown command", errs[0])
	}
	if len(ee.Suggestions) == 0 || ee.Suggestions[0] != "NewFile" {
		t.Errorf("suggestions = %v, want NewFile", ee.Suggestions)
	}
	if !errors.As(errs[1], &ee) || ee.Keys != "Hyper+S" {
		t.Errorf("errs[1] = %v, want bad chord Hyper+S", errs[1])
	}
	if !errors.Is(errs[2], ErrNoKeys) {
		t.Errorf("errs[2] = %v, want ErrNoKeys", errs[2])
	}
	if !errors.Is(errs[3], keymap.ErrUnknownContext) {
		t.Errorf("errs[3] = %v, want ErrUnknownContext", errs[3])
	}
	if !errors.Is(errs[4], ErrUnknownTool) {
		t.Errorf("errs[4] = %v, want ErrUnknownTool", errs[4])
	}
	if !errors.Is(errs[5], keymap.ErrUnknownEditorAction) {
		t.Errorf("errs[5] = %v, want ErrUnknownEditorAction", errs[5])
	}

	// The valid chord of a partially bad entry still applies.
	if r.Len() != 1 || r.CommandAccelerator("SaveFile", nil).String() != "Ctrl+S" {
		t.Errorf("registry = %v", r.Bindings())
	}
}

func TestExportRoundTrip(t *testing.T) {
	src := keymap.NewRegistry()
	if err := keymap.LoadDefaults(src); err != nil {
		t.Fatal(err)
	}
	// A binding without chords is not exported.
	src.CommandBinding("Unbound", nil, keymap.ContextAny)

	f := Export(src)
	if !f.NoDefaults {
		t.Error("exported file should set no_defaults")
	}

	for _, format := range []Format{FormatTOML, FormatYAML} {
		data, err := f.Encode(format)
		if err != nil {
			t.Fatalf("Encode(%s) error = %v", format, err)
		}
		decoded, err := Parse(format, "export", data)
		if err != nil {
			t.Fatalf("Parse(%s) error = %v\n%s", format, err, data)
		}

		dst := keymap.NewRegistry()
		if errs := Apply(decoded, dst, Catalog{}); len(errs) != 0 {
			t.Fatalf("Apply(%s) errors = %v", format, errs)
		}
		if dst.Len() != src.Len()-1 {
			t.Errorf("%s: Len() = %d, want %d", format, dst.Len(), src.Len()-1)
		}

		srcBindings := src.Bindings()
		for i, b := range dst.Bindings() {
			want := srcBindings[i]
			if b.Action().String() != want.Action().String() ||
				b.Context() != want.Context() ||
				b.Accelerator().String() != want.Accelerator().String() {
				t.Errorf("%s: binding %d = %v, want %v", format, i, b, want)
			}
		}
	}
}
