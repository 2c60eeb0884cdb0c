// Package mouse normalizes raw pointer input for the press-and-hold
// recorder control.
//
// The mouse package turns button presses, drags and releases into the
// begin/move/end calls of a GestureSink, converting cell coordinates to
// pixels on the way.
//
// # Core Types
//
// Event represents a raw mouse input event with position, button and
// action type:
//
//	event := mouse.Event{
//	    Position:  mouse.Position{X: 40, Y: 20},
//	    Button:    mouse.ButtonLeft,
//	    Action:    mouse.ActionPress,
//	    Timestamp: time.Now(),
//	}
//
// # Handler
//
// Handler forwards the hold button's gesture to a sink:
//
//	handler := mouse.NewHandler(mouse.DefaultConfig(), controller)
//	handler.Handle(event)
//
// Only the configured hold button starts a gesture. Hover motion and other
// buttons are ignored. A press that arrives while a drag is still active
// ends the stale drag first, so the sink always sees balanced Begin/End
// calls.
//
// # Thread Safety
//
// Handler is safe for concurrent use. All state mutations are properly
// synchronized with mutex protection.
package mouse
