package mouse

import (
	"sync"
	"time"

	"github.com/dshills/holdrec/internal/input/gesture"
)

// Button represents a mouse button.
type Button uint8

const (
	// ButtonNone indicates no button.
	ButtonNone Button = iota
	// ButtonLeft is the primary (left) mouse button.
	ButtonLeft
	// ButtonMiddle is the middle mouse button (scroll wheel click).
	ButtonMiddle
	// ButtonRight is the secondary (right) mouse button.
	ButtonRight
)

// String returns a string representation of the button.
func (b Button) String() string {
	switch b {
	case ButtonLeft:
		return "left"
	case ButtonMiddle:
		return "middle"
	case ButtonRight:
		return "right"
	default:
		return "none"
	}
}

// ParseButton parses a button name as returned by String.
func ParseButton(s string) (Button, bool) {
	switch s {
	case "left", "":
		return ButtonLeft, true
	case "middle":
		return ButtonMiddle, true
	case "right":
		return ButtonRight, true
	case "none":
		return ButtonNone, true
	}
	return ButtonNone, false
}

// Action represents the type of mouse action.
type Action uint8

const (
	// ActionNone indicates no action.
	ActionNone Action = iota
	// ActionPress indicates a button press.
	ActionPress
	// ActionRelease indicates a button release.
	ActionRelease
	// ActionMove indicates mouse movement (no button held).
	ActionMove
	// ActionDrag indicates mouse movement with a button held.
	ActionDrag
)

// String returns a string representation of the action.
func (a Action) String() string {
	switch a {
	case ActionPress:
		return "press"
	case ActionRelease:
		return "release"
	case ActionMove:
		return "move"
	case ActionDrag:
		return "drag"
	default:
		return "none"
	}
}

// ParseAction parses an action name as returned by String.
func ParseAction(s string) (Action, bool) {
	switch s {
	case "press":
		return ActionPress, true
	case "release":
		return ActionRelease, true
	case "move":
		return ActionMove, true
	case "drag":
		return ActionDrag, true
	}
	return ActionNone, false
}

// Position represents a screen coordinate.
type Position struct {
	X int
	Y int
}

// Equal returns true if two positions are equal.
func (p Position) Equal(other Position) bool {
	return p.X == other.X && p.Y == other.Y
}

// Distance returns the Manhattan distance between two positions.
func (p Position) Distance(other Position) int {
	dx := p.X - other.X
	if dx < 0 {
		dx = -dx
	}
	dy := p.Y - other.Y
	if dy < 0 {
		dy = -dy
	}
	return dx + dy
}

// Event represents a mouse input event.
type Event struct {
	// Position is the screen coordinates.
	Position Position

	// Button is the mouse button involved.
	Button Button

	// Action is the type of mouse action.
	Action Action

	// Timestamp is when the event occurred.
	Timestamp time.Time
}

// GestureSink receives the gesture of the hold button in pixels.
type GestureSink interface {
	Begin(p gesture.Point, at time.Time)
	Move(p gesture.Point, at time.Time)
	End(p gesture.Point, at time.Time)
}

// Config configures mouse handler behavior.
type Config struct {
	// HoldButton is the button that drives the recorder control.
	HoldButton Button

	// CellWidth and CellHeight scale event coordinates to pixels.
	// Use 1 for sources that already report pixels.
	CellWidth  float64
	CellHeight float64
}

// DefaultConfig returns sensible default configuration.
func DefaultConfig() Config {
	return Config{
		HoldButton: ButtonLeft,
		CellWidth:  1,
		CellHeight: 1,
	}
}

// Handler translates mouse events into gesture sink calls.
type Handler struct {
	mu     sync.Mutex
	config Config
	sink   GestureSink

	// Drag tracking
	drag *dragTracker

	// Last event time, for DragState.Held
	lastTime time.Time
}

// NewHandler creates a new mouse handler with the given configuration.
func NewHandler(config Config, sink GestureSink) *Handler {
	if config.CellWidth <= 0 {
		config.CellWidth = 1
	}
	if config.CellHeight <= 0 {
		config.CellHeight = 1
	}
	return &Handler{
		config: config,
		sink:   sink,
		drag:   newDragTracker(),
	}
}

// Handle processes a mouse event. It returns true if the event was
// forwarded to the sink.
func (h *Handler) Handle(event Event) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	h.lastTime = event.Timestamp

	switch event.Action {
	case ActionPress:
		return h.handlePress(event)
	case ActionRelease:
		return h.handleRelease(event)
	case ActionMove, ActionDrag:
		return h.handleDrag(event)
	}

	return false
}

// handlePress starts a gesture when the hold button goes down.
func (h *Handler) handlePress(event Event) bool {
	if event.Button != h.config.HoldButton {
		return false
	}

	// A missed release leaves a stale drag behind; close it at its last position.
	if h.drag.active {
		h.sink.End(h.toPoint(h.drag.currentPos), event.Timestamp)
		h.drag.end()
	}

	h.drag.start(event.Position, event.Button, event.Timestamp)
	h.sink.Begin(h.toPoint(event.Position), event.Timestamp)
	return true
}

// handleRelease ends the gesture of the hold button.
// Terminals often report releases without a button, so any release ends it.
func (h *Handler) handleRelease(event Event) bool {
	if !h.drag.active {
		return false
	}
	if event.Button != ButtonNone && event.Button != h.drag.button {
		return false
	}

	h.drag.update(event.Position)
	h.sink.End(h.toPoint(event.Position), event.Timestamp)
	h.drag.end()
	return true
}

// handleDrag forwards motion while the hold button is down.
func (h *Handler) handleDrag(event Event) bool {
	if !h.drag.active {
		// Hover
		return false
	}
	if event.Action == ActionDrag && event.Button != ButtonNone && event.Button != h.drag.button {
		return false
	}
	if event.Position.Equal(h.drag.currentPos) {
		return false
	}

	h.drag.update(event.Position)
	h.sink.Move(h.toPoint(event.Position), event.Timestamp)
	return true
}

// toPoint converts a cell position to pixels.
func (h *Handler) toPoint(pos Position) gesture.Point {
	return gesture.Point{
		X: float64(pos.X) * h.config.CellWidth,
		Y: float64(pos.Y) * h.config.CellHeight,
	}
}

// SetConfig replaces the handler configuration.
// An active drag keeps the button it started with.
func (h *Handler) SetConfig(config Config) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if config.CellWidth <= 0 {
		config.CellWidth = 1
	}
	if config.CellHeight <= 0 {
		config.CellHeight = 1
	}
	h.config = config
}

// Reset clears all handler state without notifying the sink.
func (h *Handler) Reset() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.drag.end()
	h.lastTime = time.Time{}
}

// IsDragging returns true if a drag operation is in progress.
func (h *Handler) IsDragging() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.drag.active
}

// DragStart returns the starting position of the current drag (if any).
func (h *Handler) DragStart() (Position, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.drag.active {
		return Position{}, false
	}
	return h.drag.startPos, true
}

// DragState returns a snapshot of the current drag.
func (h *Handler) DragState() DragState {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.drag.state(h.lastTime)
}
