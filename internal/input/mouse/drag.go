package mouse

import "time"

// dragTracker tracks the hold button while it is down.
type dragTracker struct {
	// active indicates a drag is in progress.
	active bool

	// button is the mouse button being held.
	button Button

	// startPos is where the drag started.
	startPos Position

	// currentPos is the current drag position.
	currentPos Position

	// startTime is when the button was pressed.
	startTime time.Time

	// moves counts the drag samples since the press.
	moves int
}

// newDragTracker creates a new drag tracker.
func newDragTracker() *dragTracker {
	return &dragTracker{}
}

// start begins a new drag operation.
func (t *dragTracker) start(pos Position, button Button, at time.Time) {
	t.active = true
	t.button = button
	t.startPos = pos
	t.currentPos = pos
	t.startTime = at
	t.moves = 0
}

// update updates the current drag position.
func (t *dragTracker) update(pos Position) {
	if t.active {
		t.currentPos = pos
		t.moves++
	}
}

// end ends the current drag operation.
func (t *dragTracker) end() {
	t.active = false
	t.button = ButtonNone
	t.startPos = Position{}
	t.currentPos = Position{}
	t.startTime = time.Time{}
	t.moves = 0
}

// getDelta returns the distance dragged from start.
func (t *dragTracker) getDelta() Position {
	return Position{
		X: t.currentPos.X - t.startPos.X,
		Y: t.currentPos.Y - t.startPos.Y,
	}
}

// DragState represents the current state of a drag operation.
type DragState struct {
	// Active indicates a drag is in progress.
	Active bool

	// Button is the mouse button being held.
	Button Button

	// StartPos is where the drag started.
	StartPos Position

	// CurrentPos is the current drag position.
	CurrentPos Position

	// Delta is CurrentPos minus StartPos.
	Delta Position

	// Held is how long the button has been down, measured at the last event.
	Held time.Duration

	// Moves is the number of drag samples since the press.
	Moves int
}

// state returns a snapshot of the tracker.
func (t *dragTracker) state(now time.Time) DragState {
	s := DragState{
		Active:     t.active,
		Button:     t.button,
		StartPos:   t.startPos,
		CurrentPos: t.currentPos,
		Delta:      t.getDelta(),
		Moves:      t.moves,
	}
	if t.active && !t.startTime.IsZero() && now.After(t.startTime) {
		s.Held = now.Sub(t.startTime)
	}
	return s
}
