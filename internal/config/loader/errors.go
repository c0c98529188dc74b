package loader

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownFormat is returned for files that are neither TOML nor YAML.
var ErrUnknownFormat = errors.New("unknown keymap file format")

// Entry validation errors.
var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrUnknownTool    = errors.New("unknown tool")
	ErrNoKeys         = errors.New("no keys")
)

// ParseError represents an error while parsing a keymap file.
type ParseError struct {
	Path    string
	Line    int
	Column  int
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	if e.Line > 0 && e.Column > 0 {
		return fmt.Sprintf("parse error in %s at line %d, column %d: %s", e.Path, e.Line, e.Column, e.Message)
	}
	if e.Line > 0 {
		return fmt.Sprintf("parse error in %s at line %d: %s", e.Path, e.Line, e.Message)
	}
	return fmt.Sprintf("parse error in %s: %s", e.Path, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// EntryError describes one keymap entry that could not be applied in full.
type EntryError struct {
	Section string
	Index   int
	Target  string
	Keys    string

	// Suggestions lists close known names for an unknown target.
	Suggestions []string

	Err error
}

func (e *EntryError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s[%d] %q", e.Section, e.Index, e.Target)
	if e.Keys != "" {
		fmt.Fprintf(&b, " keys %q", e.Keys)
	}
	fmt.Fprintf(&b, ": %v", e.Err)
	if len(e.Suggestions) > 0 {
		fmt.Fprintf(&b, " (did you mean %s?)", strings.Join(e.Suggestions, ", "))
	}
	return b.String()
}

func (e *EntryError) Unwrap() error {
	return e.Err
}
