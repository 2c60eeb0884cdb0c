package gesture

// Point is an absolute screen coordinate in pixels.
type Point struct {
	X float64
	Y float64
}

// Classifier turns the pointer samples of one gesture into States.
type Classifier struct {
	config Config

	// Set by Reset, read-only until the next Reset.
	origin Point

	last          Point
	lastDistanceX float64
	lastDistanceY float64
}

// NewClassifier creates a classifier with an immutable configuration.
func NewClassifier(config Config) (*Classifier, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &Classifier{config: config}, nil
}

// Config returns the classifier configuration.
func (c *Classifier) Config() Config {
	return c.config
}

// Origin returns the point the current gesture started at.
func (c *Classifier) Origin() Point {
	return c.origin
}

// Last returns the most recently processed point.
func (c *Classifier) Last() Point {
	return c.last
}

// Reset starts a new gesture at p.
func (c *Classifier) Reset(p Point) {
	c.origin = p
	c.last = p
	c.lastDistanceX = 0
	c.lastDistanceY = 0
}

// Process classifies p given the state the caller held before this sample.
// States other than Started, Cancelling and Locking are returned unchanged.
func (c *Classifier) Process(p Point, current State) State {
	// Horizontal displacement is oriented so that positive is toward cancel.
	distanceX := (c.origin.X - p.X) * float64(c.config.Layout)
	distanceY := c.origin.Y - p.Y

	next := c.next(current, p, distanceX, distanceY)

	c.last = p
	c.lastDistanceX = distanceX
	c.lastDistanceY = distanceY
	return next
}

func (c *Classifier) next(current State, p Point, distanceX, distanceY float64) State {
	switch current.(type) {
	case Started:
		if c.isSlidingToCancel(p.X) && distanceX > distanceY && distanceX > c.lastDistanceX {
			return Cancelling{DistanceX: distanceX}
		}
		if c.isSlidingToLock(p.Y) && distanceY > distanceX && distanceY > c.lastDistanceY {
			return Locking{DistanceY: distanceY}
		}
		return current

	case Cancelling:
		if distanceX < c.config.MinimumMove && distanceX < c.lastDistanceX {
			return Started{}
		}
		if distanceX >= c.config.DistanceToCancel {
			return Cancelled{}
		}
		return Cancelling{DistanceX: distanceX}

	case Locking:
		if distanceY < c.config.MinimumMove && distanceY < c.lastDistanceY {
			return Started{}
		}
		if distanceY >= c.config.DistanceToLock {
			return Locked{}
		}
		return Locking{DistanceY: distanceY}
	}

	return current
}

func (c *Classifier) isSlidingToLock(y float64) bool {
	return y < c.origin.Y
}

func (c *Classifier) isSlidingToCancel(x float64) bool {
	return (x < c.origin.X && c.config.Layout == LayoutLeftToRight) ||
		(x > c.origin.X && c.config.Layout == LayoutRightToLeft)
}
