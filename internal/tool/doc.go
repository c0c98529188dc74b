// Package tool defines the drawing tools of the editor, the toolbox that
// orders them and the toolbar that tracks the active tool.
//
// Tools are grouped. A toolbar shows one tool per group; the others in the
// group are hidden until selected. Selecting a tool makes it both the
// current tool and its group's visible tool.
package tool
