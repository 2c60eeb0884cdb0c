package gesture

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is returned when a Config fails validation.
var ErrInvalidConfig = errors.New("invalid gesture config")

// Layout is the horizontal direction of the surrounding layout.
// Its value is the multiplier that selects which way counts as cancel.
type Layout int

const (
	// LayoutLeftToRight cancels by sliding left.
	LayoutLeftToRight Layout = 1
	// LayoutRightToLeft cancels by sliding right.
	LayoutRightToLeft Layout = -1
)

// String returns "ltr", "rtl" or "unknown".
func (l Layout) String() string {
	switch l {
	case LayoutLeftToRight:
		return "ltr"
	case LayoutRightToLeft:
		return "rtl"
	default:
		return "unknown"
	}
}

// ParseLayout parses "ltr" or "rtl".
func ParseLayout(s string) (Layout, error) {
	switch s {
	case "ltr", "LTR", "":
		return LayoutLeftToRight, nil
	case "rtl", "RTL":
		return LayoutRightToLeft, nil
	}
	return 0, fmt.Errorf("%w: unknown layout %q", ErrInvalidConfig, s)
}

// Config holds the thresholds of a Classifier, in pixels.
type Config struct {
	// MinimumMove is the displacement under which moving back toward the
	// origin returns the gesture to Started.
	MinimumMove float64

	// DistanceToLock is the upward displacement that commits to Locked.
	DistanceToLock float64

	// DistanceToCancel is the horizontal displacement that commits to Cancelled.
	DistanceToCancel float64

	// Layout selects the cancel direction.
	Layout Layout
}

// DefaultConfig returns the thresholds used by the recorder control.
func DefaultConfig() Config {
	return Config{
		MinimumMove:      16,
		DistanceToLock:   48,
		DistanceToCancel: 120,
		Layout:           LayoutLeftToRight,
	}
}

// Validate checks the thresholds and layout.
func (c Config) Validate() error {
	if c.MinimumMove <= 0 || c.DistanceToLock <= 0 || c.DistanceToCancel <= 0 {
		return fmt.Errorf("%w: thresholds must be positive", ErrInvalidConfig)
	}
	if c.MinimumMove >= c.DistanceToLock || c.MinimumMove >= c.DistanceToCancel {
		return fmt.Errorf("%w: minimum move %g must be below lock %g and cancel %g",
			ErrInvalidConfig, c.MinimumMove, c.DistanceToLock, c.DistanceToCancel)
	}
	if c.Layout != LayoutLeftToRight && c.Layout != LayoutRightToLeft {
		return fmt.Errorf("%w: layout %d", ErrInvalidConfig, int(c.Layout))
	}
	return nil
}
