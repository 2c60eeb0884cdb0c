package gesture

import "fmt"

// State is the classification of the current gesture.
// The set of states is closed; switch on the concrete type.
type State interface {
	fmt.Stringer
	isState()
}

// Started is the state of a freshly pressed gesture with no direction yet.
type Started struct{}

// Cancelling means the pointer is sliding toward the cancel side.
type Cancelling struct {
	// DistanceX is the current horizontal displacement from the origin.
	DistanceX float64
}

// Locking means the pointer is sliding up toward the lock target.
type Locking struct {
	// DistanceY is the current vertical displacement from the origin.
	DistanceY float64
}

// Cancelled is terminal: the recording is discarded.
type Cancelled struct{}

// Locked is terminal: the recording continues hands-free.
type Locked struct{}

// Stopped means the gesture ended by releasing the control.
// The classifier never produces it and passes it through unchanged.
type Stopped struct{}

func (Started) isState()    {}
func (Cancelling) isState() {}
func (Locking) isState()    {}
func (Cancelled) isState()  {}
func (Locked) isState()     {}
func (Stopped) isState()    {}

func (Started) String() string { return "started" }

func (s Cancelling) String() string { return fmt.Sprintf("cancelling(%g)", s.DistanceX) }

func (s Locking) String() string { return fmt.Sprintf("locking(%g)", s.DistanceY) }

func (Cancelled) String() string { return "cancelled" }
func (Locked) String() string    { return "locked" }
func (Stopped) String() string   { return "stopped" }

// IsTerminal reports whether no further transition happens before a Reset.
func IsTerminal(s State) bool {
	switch s.(type) {
	case Cancelled, Locked:
		return true
	}
	return false
}

// Name returns the state name without its payload, or "none" for nil.
func Name(s State) string {
	switch s.(type) {
	case nil:
		return "none"
	case Cancelling:
		return "cancelling"
	case Locking:
		return "locking"
	}
	return s.String()
}

// Distance returns the displacement carried by Cancelling or Locking,
// and zero for every other state.
func Distance(s State) float64 {
	switch v := s.(type) {
	case Cancelling:
		return v.DistanceX
	case Locking:
		return v.DistanceY
	}
	return 0
}
