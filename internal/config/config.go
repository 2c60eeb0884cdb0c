package config

import (
	"github.com/dshills/holdrec/internal/input/gesture"
	"github.com/dshills/holdrec/internal/input/mouse"
)

// Config is the full holdrec configuration.
type Config struct {
	Gesture  GestureSection  `toml:"gesture"`
	Terminal TerminalSection `toml:"terminal"`
	Log      LogSection      `toml:"log"`
	Hooks    HooksSection    `toml:"hooks"`

	// Path is the file the configuration was loaded from, if any.
	Path string `toml:"-"`
}

// GestureSection holds the classifier thresholds in pixels.
type GestureSection struct {
	MinimumMove      float64 `toml:"minimum_move"`
	DistanceToLock   float64 `toml:"distance_to_lock"`
	DistanceToCancel float64 `toml:"distance_to_cancel"`
	// Layout is "ltr" or "rtl".
	Layout string `toml:"layout"`
}

// TerminalSection configures the terminal front end.
type TerminalSection struct {
	// CellWidth and CellHeight are the pixel size of one terminal cell.
	CellWidth  float64 `toml:"cell_width"`
	CellHeight float64 `toml:"cell_height"`
	HoldButton string  `toml:"hold_button"`
}

// LogSection configures logging.
type LogSection struct {
	Level string `toml:"level"`
	// File is a log file path; empty logs to stderr.
	File string `toml:"file"`
}

// HooksSection configures scripted transition hooks.
type HooksSection struct {
	// Script is a Lua file defining on_transition(t).
	Script string `toml:"script"`
}

// Default returns the built-in configuration.
func Default() *Config {
	g := gesture.DefaultConfig()
	return &Config{
		Gesture: GestureSection{
			MinimumMove:      g.MinimumMove,
			DistanceToLock:   g.DistanceToLock,
			DistanceToCancel: g.DistanceToCancel,
			Layout:           g.Layout.String(),
		},
		Terminal: TerminalSection{
			CellWidth:  8,
			CellHeight: 16,
			HoldButton: mouse.ButtonLeft.String(),
		},
		Log: LogSection{
			Level: "info",
		},
	}
}

// Validate checks every section.
func (c *Config) Validate() error {
	layout, err := gesture.ParseLayout(c.Gesture.Layout)
	if err != nil {
		return &ValidationError{Path: "gesture.layout", Message: "must be ltr or rtl", Value: c.Gesture.Layout}
	}
	g := gesture.Config{
		MinimumMove:      c.Gesture.MinimumMove,
		DistanceToLock:   c.Gesture.DistanceToLock,
		DistanceToCancel: c.Gesture.DistanceToCancel,
		Layout:           layout,
	}
	if err := g.Validate(); err != nil {
		return &ValidationError{Path: "gesture", Message: err.Error(), Value: c.Gesture}
	}

	if c.Terminal.CellWidth <= 0 {
		return &ValidationError{Path: "terminal.cell_width", Message: "must be positive", Value: c.Terminal.CellWidth}
	}
	if c.Terminal.CellHeight <= 0 {
		return &ValidationError{Path: "terminal.cell_height", Message: "must be positive", Value: c.Terminal.CellHeight}
	}
	if b, ok := mouse.ParseButton(c.Terminal.HoldButton); !ok || b == mouse.ButtonNone {
		return &ValidationError{Path: "terminal.hold_button", Message: "must be left, middle or right", Value: c.Terminal.HoldButton}
	}

	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return &ValidationError{Path: "log.level", Message: "must be debug, info, warn or error", Value: c.Log.Level}
	}
	return nil
}

// GestureConfig converts the gesture section. Call Validate first.
func (c *Config) GestureConfig() gesture.Config {
	layout, err := gesture.ParseLayout(c.Gesture.Layout)
	if err != nil {
		layout = gesture.LayoutLeftToRight
	}
	return gesture.Config{
		MinimumMove:      c.Gesture.MinimumMove,
		DistanceToLock:   c.Gesture.DistanceToLock,
		DistanceToCancel: c.Gesture.DistanceToCancel,
		Layout:           layout,
	}
}

// MouseConfig converts the terminal section.
func (c *Config) MouseConfig() mouse.Config {
	button, ok := mouse.ParseButton(c.Terminal.HoldButton)
	if !ok || button == mouse.ButtonNone {
		button = mouse.ButtonLeft
	}
	return mouse.Config{
		HoldButton: button,
		CellWidth:  c.Terminal.CellWidth,
		CellHeight: c.Terminal.CellHeight,
	}
}
