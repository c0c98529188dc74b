// Package key provides key event types, chord parsing and accelerators for
// the shortcut system.
//
// This package defines the fundamental types for representing keyboard input:
//
//   - Key: Identifies a keyboard key (special keys, function keys, modifier
//     keys, or runes)
//   - Modifier: Represents modifier keys (Ctrl, Alt, Shift, Meta)
//   - Event: A single key press with modifiers and timestamp
//   - Chord: One physical key-press pattern that a binding can react to
//   - Accelerator: The set of chords assigned to one action
//   - State: The live keyboard state, polled by continuous checks
//
// # Chord Specifications
//
// Chords can be written in multiple formats:
//
//   - Simple keys: "b", "B", "1", "F5", "Space", "Delete"
//   - With modifiers: "Ctrl+N", "Alt+F4", "Ctrl+Shift+Z"
//   - Modifier only: "Ctrl", "Shift", "Alt+Shift"
//   - Bracketed: "<C-n>", "<C-S-z>", "<Esc>"
//
// Letters in a chord are case-insensitive key names: "B" and "b" are the same
// chord and Shift must be spelled out ("Shift+B"). Events are normalized the
// other way round, so an upper-case rune typed on a terminal reads as Shift
// plus the lower-case key.
package key
