package tool

import "fmt"

// Group is a named set of tools sharing one toolbar slot.
type Group struct {
	Name  string
	Tools []*Tool
}

// ToolBox holds every tool in a stable visual order: groups in insertion
// order, tools in group order.
//
// A ToolBox is built once at startup and read-only afterwards.
type ToolBox struct {
	groups []*Group
	byID   map[ID]*Tool
}

// NewToolBox creates an empty toolbox.
func NewToolBox() *ToolBox {
	return &ToolBox{byID: make(map[ID]*Tool)}
}

// AddGroup appends a group. Each tool's Group field is set to the group name.
func (b *ToolBox) AddGroup(name string, tools ...*Tool) error {
	if len(tools) == 0 {
		return fmt.Errorf("%w: %s", ErrEmptyGroup, name)
	}
	for _, t := range tools {
		if _, exists := b.byID[t.ID]; exists {
			return fmt.Errorf("%w: %s", ErrDuplicateTool, t.ID)
		}
	}

	g := &Group{Name: name, Tools: make([]*Tool, len(tools))}
	for i, t := range tools {
		t.Group = name
		g.Tools[i] = t
		b.byID[t.ID] = t
	}
	b.groups = append(b.groups, g)
	return nil
}

// Tools returns all tools in visual order.
func (b *ToolBox) Tools() []*Tool {
	out := make([]*Tool, 0, len(b.byID))
	for _, g := range b.groups {
		out = append(out, g.Tools...)
	}
	return out
}

// Groups returns the groups in visual order.
func (b *ToolBox) Groups() []*Group {
	out := make([]*Group, len(b.groups))
	copy(out, b.groups)
	return out
}

// Lookup finds a tool by ID.
func (b *ToolBox) Lookup(id ID) (*Tool, bool) {
	t, ok := b.byID[NormalizeID(string(id))]
	return t, ok
}

// Len returns the number of tools.
func (b *ToolBox) Len() int {
	return len(b.byID)
}

// DefaultToolBox returns the stock pixel-editor tools.
func DefaultToolBox() *ToolBox {
	b := NewToolBox()
	groups := []struct {
		name  string
		tools []*Tool
	}{
		{"selection", []*Tool{
			New("rectangular_marquee", "Rectangular Marquee", "", InkSelection),
			New("elliptical_marquee", "Elliptical Marquee", "", InkSelection),
			New("lasso", "Lasso", "", InkSelection),
			New("polygonal_lasso", "Polygonal Lasso", "", InkSelection),
			New("magic_wand", "Magic Wand", "", InkSelection),
		}},
		{"freehand", []*Tool{
			New("pencil", "Pencil", "", InkPaint),
			New("spray", "Spray", "", InkPaint),
		}},
		{"eraser", []*Tool{
			New("eraser", "Eraser", "", InkEraser),
		}},
		{"eyedropper", []*Tool{
			New("eyedropper", "Eyedropper", "", InkPicker),
		}},
		{"zoom", []*Tool{
			New("zoom", "Zoom", "", InkZoom),
		}},
		{"hand", []*Tool{
			New("hand", "Hand", "", InkScroll),
		}},
		{"move", []*Tool{
			New("move", "Move", "", InkMove),
		}},
		{"paint_bucket", []*Tool{
			New("paint_bucket", "Paint Bucket", "", InkPaint),
		}},
		{"line", []*Tool{
			New("line", "Line", "", InkPaint),
			New("curve", "Curve", "", InkPaint),
		}},
		{"rectangle", []*Tool{
			New("rectangle", "Rectangle", "", InkPaint),
			New("filled_rectangle", "Filled Rectangle", "", InkPaint),
		}},
		{"ellipse", []*Tool{
			New("ellipse", "Ellipse", "", InkPaint),
			New("filled_ellipse", "Filled Ellipse", "", InkPaint),
		}},
		{"contour", []*Tool{
			New("contour", "Contour", "", InkPaint),
			New("polygon", "Polygon", "", InkPaint),
		}},
		{"blur", []*Tool{
			New("blur", "Blur", "", InkPaint),
			New("jumble", "Jumble", "", InkPaint),
		}},
	}
	for _, g := range groups {
		if err := b.AddGroup(g.name, g.tools...); err != nil {
			panic(err)
		}
	}
	return b
}
