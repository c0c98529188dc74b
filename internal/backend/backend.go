// Package backend connects a terminal to the shortcut engine: it reads key
// events, approximates which keys are held and draws a status area.
package backend

import "github.com/dshills/pixelkeys/internal/input/key"

// EventType identifies the kind of backend event.
type EventType uint8

// Event types.
const (
	EventNone EventType = iota
	EventKey
	EventResize
	EventInterrupt
	EventFocus
)

// Event is a backend event.
type Event struct {
	Type EventType

	// Key is set for EventKey.
	Key key.Event

	// Width and Height are set for EventResize.
	Width, Height int

	// Focused is set for EventFocus.
	Focused bool

	// Data is the payload of an EventInterrupt.
	Data any
}
