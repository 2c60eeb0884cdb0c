// Package trace loads recorded pointer gestures and replays them through a
// mouse handler.
//
// Traces are TOML files:
//
//	name = "slide to cancel"
//
//	[[event]]
//	action = "press"
//	x = 100
//	y = 100
//
//	[[event]]
//	action = "drag"
//	x = 70
//	y = 100
//	at_ms = 16
//
// An optional [gesture] table uses the same keys as the configuration file
// and overrides its thresholds for the replay.
package trace

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/holdrec/internal/config"
	"github.com/dshills/holdrec/internal/input/mouse"
)

// ErrInvalidTrace indicates a malformed trace.
var ErrInvalidTrace = errors.New("invalid trace")

// Trace is a recorded sequence of pointer events.
type Trace struct {
	Name    string                 `toml:"name"`
	Gesture *config.GestureSection `toml:"gesture"`
	Events  []EventRecord          `toml:"event"`
}

// EventRecord is one recorded pointer event.
type EventRecord struct {
	Action string `toml:"action"`
	// Button defaults to left for press events.
	Button string `toml:"button"`
	X      int    `toml:"x"`
	Y      int    `toml:"y"`
	// AtMS is the offset from the start of the trace in milliseconds.
	AtMS int64 `toml:"at_ms"`
}

// Load reads a trace file.
func Load(path string) (*Trace, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading trace %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes and checks a trace.
func Parse(data []byte) (*Trace, error) {
	var tr Trace
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&tr); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTrace, err)
	}

	if len(tr.Events) == 0 {
		return nil, fmt.Errorf("%w: no events", ErrInvalidTrace)
	}

	var last int64
	for i, rec := range tr.Events {
		if _, ok := mouse.ParseAction(rec.Action); !ok {
			return nil, fmt.Errorf("%w: event %d: unknown action %q", ErrInvalidTrace, i, rec.Action)
		}
		if _, ok := mouse.ParseButton(rec.Button); !ok {
			return nil, fmt.Errorf("%w: event %d: unknown button %q", ErrInvalidTrace, i, rec.Button)
		}
		if rec.AtMS < last {
			return nil, fmt.Errorf("%w: event %d: at_ms %d before previous %d", ErrInvalidTrace, i, rec.AtMS, last)
		}
		last = rec.AtMS
	}
	return &tr, nil
}

// ApplyGesture overlays the trace's gesture thresholds on cfg.
// Keys missing from the trace keep cfg's values.
func (tr *Trace) ApplyGesture(cfg *config.Config) {
	if tr.Gesture == nil {
		return
	}
	g := tr.Gesture
	if g.MinimumMove != 0 {
		cfg.Gesture.MinimumMove = g.MinimumMove
	}
	if g.DistanceToLock != 0 {
		cfg.Gesture.DistanceToLock = g.DistanceToLock
	}
	if g.DistanceToCancel != 0 {
		cfg.Gesture.DistanceToCancel = g.DistanceToCancel
	}
	if g.Layout != "" {
		cfg.Gesture.Layout = g.Layout
	}
}

// Events converts the records to mouse events starting at start.
func (tr *Trace) Events(start time.Time) []mouse.Event {
	events := make([]mouse.Event, 0, len(tr.Events))
	for _, rec := range tr.Events {
		action, _ := mouse.ParseAction(rec.Action)
		button, _ := mouse.ParseButton(rec.Button)
		// Releases and motion carry the held button only if recorded.
		if rec.Button == "" && action != mouse.ActionPress {
			button = mouse.ButtonNone
		}
		events = append(events, mouse.Event{
			Position:  mouse.Position{X: rec.X, Y: rec.Y},
			Button:    button,
			Action:    action,
			Timestamp: start.Add(time.Duration(rec.AtMS) * time.Millisecond),
		})
	}
	return events
}

// Replay feeds every event to h and returns how many were forwarded.
func (tr *Trace) Replay(h *mouse.Handler, start time.Time) int {
	forwarded := 0
	for _, ev := range tr.Events(start) {
		if h.Handle(ev) {
			forwarded++
		}
	}
	return forwarded
}
