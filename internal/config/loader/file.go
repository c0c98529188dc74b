package loader

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// File is the decoded content of a keymap file.
type File struct {
	// NoDefaults skips the stock shortcuts; only this file's entries apply.
	NoDefaults bool `toml:"no_defaults,omitempty" yaml:"no_defaults,omitempty"`

	Commands   []CommandEntry `toml:"commands,omitempty" yaml:"commands,omitempty"`
	Tools      []ToolEntry    `toml:"tools,omitempty" yaml:"tools,omitempty"`
	QuickTools []ToolEntry    `toml:"quicktools,omitempty" yaml:"quicktools,omitempty"`
	Editor     []EditorEntry  `toml:"editor,omitempty" yaml:"editor,omitempty"`
}

// CommandEntry binds chords to a command.
type CommandEntry struct {
	Keys    []string          `toml:"keys" yaml:"keys"`
	Command string            `toml:"command" yaml:"command"`
	Params  map[string]string `toml:"params,omitempty" yaml:"params,omitempty"`
	Context string            `toml:"context,omitempty" yaml:"context,omitempty"`
}

// ToolEntry binds chords to a tool.
type ToolEntry struct {
	Keys []string `toml:"keys" yaml:"keys"`
	Tool string   `toml:"tool" yaml:"tool"`
}

// EditorEntry binds chords to a sprite-editor action.
type EditorEntry struct {
	Keys   []string `toml:"keys" yaml:"keys"`
	Action string   `toml:"action" yaml:"action"`
}

// Len returns the number of entries across all sections.
func (f *File) Len() int {
	return len(f.Commands) + len(f.Tools) + len(f.QuickTools) + len(f.Editor)
}

// Encode serializes the file.
func (f *File) Encode(format Format) ([]byte, error) {
	var buf bytes.Buffer
	switch format {
	case FormatTOML:
		enc := toml.NewEncoder(&buf)
		enc.SetIndentTables(true)
		if err := enc.Encode(f); err != nil {
			return nil, fmt.Errorf("encoding toml: %w", err)
		}
	case FormatYAML:
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(f); err != nil {
			return nil, fmt.Errorf("encoding yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("encoding yaml: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	return buf.Bytes(), nil
}

// Save writes the file to path in the format its extension names. The file
// is written to a temporary sibling first and renamed into place.
func (f *File) Save(path string) error {
	format, err := DetectFormat(path)
	if err != nil {
		return err
	}
	data, err := f.Encode(format)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, ".keymap-*")
	if err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("saving %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	return nil
}
