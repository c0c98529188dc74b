package tool

import (
	"errors"
	"strings"
)

// Errors
var (
	ErrUnknownTool   = errors.New("unknown tool")
	ErrDuplicateTool = errors.New("duplicate tool")
	ErrEmptyGroup    = errors.New("empty tool group")
)

// ID is the stable name of a tool, e.g. "pencil" or "rectangular_marquee".
type ID string

// Ink describes what a tool does to the sprite.
type Ink uint8

// Ink kinds.
const (
	InkPaint Ink = iota
	InkEraser
	InkSelection
	InkScroll
	InkZoom
	InkMove
	InkPicker
)

var inkNames = map[Ink]string{
	InkPaint:     "paint",
	InkEraser:    "eraser",
	InkSelection: "selection",
	InkScroll:    "scroll",
	InkZoom:      "zoom",
	InkMove:      "move",
	InkPicker:    "picker",
}

// String returns the ink name.
func (i Ink) String() string {
	if name, ok := inkNames[i]; ok {
		return name
	}
	return "unknown"
}

// Tool is a single drawing tool.
type Tool struct {
	ID    ID
	Name  string
	Group string
	Ink   Ink
}

// New creates a tool.
func New(id ID, name, group string, ink Ink) *Tool {
	return &Tool{ID: id, Name: name, Group: group, Ink: ink}
}

// IsSelectionInk returns true if the tool edits the selection mask rather
// than pixels.
func (t *Tool) IsSelectionInk() bool {
	return t != nil && t.Ink == InkSelection
}

// String returns the tool ID.
func (t *Tool) String() string {
	if t == nil {
		return "<none>"
	}
	return string(t.ID)
}

// NormalizeID lowercases an ID and folds spaces and dashes to underscores,
// so "Rectangular Marquee" names the same tool as "rectangular_marquee".
func NormalizeID(s string) ID {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.NewReplacer(" ", "_", "-", "_").Replace(s)
	return ID(s)
}
