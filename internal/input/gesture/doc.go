// Package gesture classifies the drag motion of a press-and-hold recorder
// control into cancel and lock gestures.
//
// # Core Types
//
// Point is an absolute screen coordinate in pixels. State is a closed set of
// gesture states:
//
//   - Started: pressed, no direction chosen yet
//   - Cancelling: sliding toward cancel, carries the horizontal displacement
//   - Locking: sliding up toward lock, carries the vertical displacement
//   - Cancelled, Locked: terminal until the next Reset
//   - Stopped: released normally; never produced here, passed through
//
// # Classifier
//
// A Classifier is built once from a Config and reset at the start of every
// press:
//
//	c, err := gesture.NewClassifier(gesture.DefaultConfig())
//	if err != nil {
//	    return err
//	}
//	c.Reset(gesture.Point{X: 100, Y: 100})
//	state := gesture.State(gesture.Started{})
//	for _, p := range samples {
//	    state = c.Process(p, state)
//	}
//
// Displacements are measured from the fixed origin on every sample. A branch
// is only entered while the displacement keeps growing, and dropping back
// under Config.MinimumMove while moving toward the origin returns to Started.
//
// # Thread Safety
//
// Classifier is not safe for concurrent use. The recorder controller owns one
// and serializes access to it.
package gesture
