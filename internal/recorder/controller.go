package recorder

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dshills/holdrec/internal/input/gesture"
)

// Stats counts finished sessions by outcome.
type Stats struct {
	Sessions  int64
	Sent      int64
	Cancelled int64
	Locked    int64
}

// Controller holds the gesture state of the recorder control.
type Controller struct {
	mu sync.Mutex

	// config applies to the classifier built by the next Begin.
	config     gesture.Config
	classifier *gesture.Classifier

	sessionID string
	state     gesture.State
	active    bool

	listeners []Listener
	stats     Stats

	// Transitions are delivered after the lock is released, in order.
	pending []Transition
}

// NewController creates a controller for the given thresholds.
func NewController(config gesture.Config) (*Controller, error) {
	classifier, err := gesture.NewClassifier(config)
	if err != nil {
		return nil, err
	}
	return &Controller{
		config:     config,
		classifier: classifier,
	}, nil
}

// AddListener registers a listener for transitions.
func (c *Controller) AddListener(l Listener) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listeners = append(c.listeners, l)
}

// SetConfig replaces the thresholds. An active session keeps the
// classifier it started with; the new config applies from the next Begin.
func (c *Controller) SetConfig(config gesture.Config) error {
	if err := config.Validate(); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.config = config
	return nil
}

// Config returns the thresholds for the next session.
func (c *Controller) Config() gesture.Config {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.config
}

// Begin starts a new session at p. An active hands-free session is
// finished first.
func (c *Controller) Begin(p gesture.Point, at time.Time) {
	c.mu.Lock()
	if c.active {
		if _, ok := c.state.(gesture.Cancelled); !ok {
			c.finish(p, at)
		}
	}

	if c.classifier.Config() != c.config {
		// config was validated by SetConfig
		c.classifier, _ = gesture.NewClassifier(c.config)
	}

	c.sessionID = uuid.NewString()
	c.state = nil
	c.active = true
	c.stats.Sessions++
	c.classifier.Reset(p)
	c.transition(gesture.Started{}, p, at)
	c.mu.Unlock()

	c.flush()
}

// Move classifies p. Samples outside a session, or after the session
// reached a terminal state, are ignored.
func (c *Controller) Move(p gesture.Point, at time.Time) {
	c.mu.Lock()
	if c.active && !gesture.IsTerminal(c.state) {
		next := c.classifier.Process(p, c.state)
		if next != c.state {
			c.transition(next, p, at)
		}
	}
	c.mu.Unlock()

	c.flush()
}

// End handles the release of the control.
func (c *Controller) End(p gesture.Point, at time.Time) {
	c.mu.Lock()
	if c.active {
		switch c.state.(type) {
		case gesture.Locked:
			// Hands-free: keep recording until Stop.
		case gesture.Cancelled:
			c.active = false
		default:
			c.finish(p, at)
		}
	}
	c.mu.Unlock()

	c.flush()
}

// Stop finishes a locked session and sends the message.
func (c *Controller) Stop(at time.Time) error {
	c.mu.Lock()
	if !c.active {
		c.mu.Unlock()
		return ErrNoSession
	}
	if _, ok := c.state.(gesture.Locked); !ok {
		c.mu.Unlock()
		return ErrNotLocked
	}
	c.finish(c.classifier.Last(), at)
	c.mu.Unlock()

	c.flush()
	return nil
}

// finish moves the session to Stopped. Must hold c.mu.
func (c *Controller) finish(p gesture.Point, at time.Time) {
	if _, ok := c.state.(gesture.Locked); ok {
		c.stats.Locked++
	}
	c.transition(gesture.Stopped{}, p, at)
	c.active = false
}

// transition records a state change. Must hold c.mu.
func (c *Controller) transition(next gesture.State, p gesture.Point, at time.Time) {
	switch next.(type) {
	case gesture.Stopped:
		c.stats.Sent++
	case gesture.Cancelled:
		c.stats.Cancelled++
	}

	c.pending = append(c.pending, Transition{
		SessionID: c.sessionID,
		From:      c.state,
		To:        next,
		Point:     p,
		Time:      at,
	})
	c.state = next
}

// flush delivers pending transitions outside the lock so listeners may
// call back into the controller.
func (c *Controller) flush() {
	c.mu.Lock()
	pending := c.pending
	c.pending = nil
	listeners := c.listeners
	c.mu.Unlock()

	for _, t := range pending {
		for _, l := range listeners {
			l.OnTransition(t)
		}
	}
}

// State returns the current gesture state, or nil before the first press.
func (c *Controller) State() gesture.State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// SessionID returns the id of the current or last session.
func (c *Controller) SessionID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sessionID
}

// Active reports whether a session is in progress.
func (c *Controller) Active() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active
}

// Stats returns the session counters.
func (c *Controller) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}
