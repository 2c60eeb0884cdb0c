package recorder

import (
	"fmt"
	"time"

	"github.com/dshills/holdrec/internal/input/gesture"
)

// Transition is a change of the gesture state within one session.
type Transition struct {
	// SessionID identifies the press the transition belongs to.
	SessionID string

	// From is nil for the first transition of a session.
	From gesture.State
	To   gesture.State

	// Point is the pointer position that caused the transition.
	Point gesture.Point

	Time time.Time
}

// String formats the transition for logs.
func (t Transition) String() string {
	return fmt.Sprintf("%s %s -> %s at (%g,%g)",
		shortID(t.SessionID), gesture.Name(t.From), t.To, t.Point.X, t.Point.Y)
}

// Final reports whether the session ends with this transition.
func (t Transition) Final() bool {
	switch t.To.(type) {
	case gesture.Stopped, gesture.Cancelled:
		return true
	}
	return false
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// Listener receives transitions.
type Listener interface {
	OnTransition(t Transition)
}

// ListenerFunc adapts a function to the Listener interface.
type ListenerFunc func(t Transition)

// OnTransition calls f(t).
func (f ListenerFunc) OnTransition(t Transition) {
	f(t)
}
