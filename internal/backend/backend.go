// Package backend provides the terminal front end for the recorder control.
package backend

import "github.com/dshills/holdrec/internal/input/mouse"

// EventType identifies the type of terminal event.
type EventType int

const (
	EventNone EventType = iota
	EventKey
	EventMouse
	EventResize
	EventInterrupt
)

// String returns the event type name.
func (t EventType) String() string {
	switch t {
	case EventKey:
		return "key"
	case EventMouse:
		return "mouse"
	case EventResize:
		return "resize"
	case EventInterrupt:
		return "interrupt"
	default:
		return "none"
	}
}

// Key is a key the front end reacts to.
type Key int

const (
	KeyNone Key = iota
	// KeyQuit is q, Escape or Ctrl-C.
	KeyQuit
	// KeyStop is s: finish a locked hands-free recording.
	KeyStop
	// KeyOther is any other key.
	KeyOther
)

// Event represents a terminal event.
type Event struct {
	Type EventType

	// Key event fields
	Key  Key
	Rune rune

	// Mouse event fields
	Mouse mouse.Event

	// Resize event fields
	Width, Height int
}
