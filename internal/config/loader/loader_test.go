package loader

import (
	"errors"
	"io/fs"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// MemFS is an in-memory file system for testing.
type MemFS struct {
	files map[string][]byte
}

func NewMemFS() *MemFS {
	return &MemFS{files: make(map[string][]byte)}
}

func (m *MemFS) AddFile(path string, content string) {
	m.files[path] = []byte(content)
}

func (m *MemFS) Open(name string) (fs.File, error) {
	return nil, fs.ErrNotExist
}

func (m *MemFS) ReadFile(path string) ([]byte, error) {
	data, ok := m.files[path]
	if !ok {
		return nil, fs.ErrNotExist
	}
	return data, nil
}

func (m *MemFS) Stat(path string) (fs.FileInfo, error) {
	if _, ok := m.files[path]; ok {
		return &memFileInfo{name: path}, nil
	}
	return nil, fs.ErrNotExist
}

type memFileInfo struct {
	name string
}

func (f *memFileInfo) Name() string       { return f.name }
func (f *memFileInfo) Size() int64        { return 0 }
func (f *memFileInfo) Mode() fs.FileMode  { return 0644 }
func (f *memFileInfo) ModTime() time.Time { return time.Now() }
func (f *memFileInfo) IsDir() bool        { return false }
func (f *memFileInfo) Sys() any           { return nil }

const sampleTOML = `
no_defaults = true

[[commands]]
keys = ["Ctrl+N"]
command = "NewFile"

[[commands]]
keys = ["+", "Ctrl+Up"]
command = "Zoom"
params = { action = "in" }

[[commands]]
keys = ["Delete"]
command = "Clear"
context = "selection"

[[tools]]
keys = ["B"]
tool = "pencil"

[[quicktools]]
keys = ["Space"]
tool = "hand"

[[editor]]
keys = ["Ctrl"]
action = "copy-selection"
`

const sampleYAML = `
commands:
  - keys: ["Ctrl+N"]
    command: NewFile
  - keys: ["-"]
    command: Zoom
    params:
      action: out
tools:
  - keys: ["E"]
    tool: eraser
editor:
  - keys: ["Shift"]
    action: SnapToGrid
`

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		path    string
		want    Format
		wantErr bool
	}{
		{"keys.toml", FormatTOML, false},
		{"keys.TOML", FormatTOML, false},
		{"keys.yaml", FormatYAML, false},
		{"keys.yml", FormatYAML, false},
		{"keys.json", "", true},
		{"keys", "", true},
	}

	for _, tt := range tests {
		got, err := DetectFormat(tt.path)
		if (err != nil) != tt.wantErr {
			t.Errorf("DetectFormat(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("DetectFormat(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestLoadTOML(t *testing.T) {
	mfs := NewMemFS()
	mfs.AddFile("/cfg/keys.toml", sampleTOML)

	f, err := NewWithFS(mfs).Load("/cfg/keys.toml")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if !f.NoDefaults {
		t.Error("NoDefaults = false, want true")
	}
	if len(f.Commands) != 3 || f.Len() != 6 {
		t.Fatalf("commands = %d, entries = %d, want 3 and 6", len(f.Commands), f.Len())
	}
	zoom := f.Commands[1]
	if zoom.Params["action"] != "in" || len(zoom.Keys) != 2 {
		t.Errorf("zoom entry = %+v", zoom)
	}
	if f.Commands[2].Context != "selection" {
		t.Errorf("context = %q, want selection", f.Commands[2].Context)
	}
	if f.Editor[0].Action != "copy-selection" {
		t.Errorf("editor action = %q", f.Editor[0].Action)
	}
}

func TestLoadYAML(t *testing.T) {
	mfs := NewMemFS()
	mfs.AddFile("/cfg/keys.yaml", sampleYAML)

	f, err := NewWithFS(mfs).Load("/cfg/keys.yaml")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if f.NoDefaults {
		t.Error("NoDefaults should default to false")
	}
	if len(f.Commands) != 2 || f.Commands[1].Params["action"] != "out" {
		t.Errorf("commands = %+v", f.Commands)
	}
	if len(f.Tools) != 1 || f.Tools[0].Tool != "eraser" {
		t.Errorf("tools = %+v", f.Tools)
	}
}

func TestLoadMissing(t *testing.T) {
	_, err := NewWithFS(NewMemFS()).Load("/cfg/keys.toml")
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Load() error = %v, want fs.ErrNotExist", err)
	}
}

func TestParseErrors(t *testing.T) {
	_, err := Parse(FormatTOML, "bad.toml", []byte("[[commands]\nkeys = "))
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("Parse() error = %v, want *ParseError", err)
	}
	if pe.Line == 0 {
		t.Error("TOML parse error should carry a line")
	}
	if !strings.Contains(pe.Error(), "bad.toml") {
		t.Errorf("Error() = %q, want path", pe.Error())
	}

	_, err = Parse(FormatTOML, "typo.toml", []byte("[[commands]]\nkey = [\"Ctrl+N\"]\ncommand = \"NewFile\"\n"))
	if !errors.As(err, &pe) {
		t.Errorf("unknown field error = %v, want *ParseError", err)
	}

	_, err = Parse(FormatYAML, "bad.yaml", []byte("commands: [keys: ]]"))
	if !errors.As(err, &pe) {
		t.Errorf("YAML error = %v, want *ParseError", err)
	}

	_, err = Parse("ini", "x.ini", nil)
	if !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("Parse(ini) error = %v, want ErrUnknownFormat", err)
	}
}

func TestParseEmpty(t *testing.T) {
	for _, format := range []Format{FormatTOML, FormatYAML} {
		f, err := Parse(format, "empty", nil)
		if err != nil {
			t.Errorf("Parse(%s, empty) error = %v", format, err)
			continue
		}
		if f.Len() != 0 {
			t.Errorf("Parse(%s, empty) entries = %d", format, f.Len())
		}
	}
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	f := &File{
		Commands: []CommandEntry{{Keys: []string{"Ctrl+S"}, Command: "SaveFile"}},
		Tools:    []ToolEntry{{Keys: []string{"B"}, Tool: "pencil"}},
	}

	for _, name := range []string{"keys.toml", "keys.yaml"} {
		path := filepath.Join(dir, "nested", name)
		if err := f.Save(path); err != nil {
			t.Fatalf("Save(%s) error = %v", name, err)
		}
		got, err := New().Load(path)
		if err != nil {
			t.Fatalf("Load(%s) error = %v", name, err)
		}
		if len(got.Commands) != 1 || got.Commands[0].Command != "SaveFile" || got.Tools[0].Tool != "pencil" {
			t.Errorf("%s round trip = %+v", name, got)
		}
	}

	if err := f.Save(filepath.Join(dir, "keys.ini")); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("Save(ini) error = %v, want ErrUnknownFormat", err)
	}
}
