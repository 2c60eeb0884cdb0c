package app

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestLogLevel_String(t *testing.T) {
	tests := []struct {
		level    LogLevel
		expected string
	}{
		{LogLevelDebug, "DEBUG"},
		{LogLevelInfo, "INFO"},
		{LogLevelWarn, "WARN"},
		{LogLevelError, "ERROR"},
		{LogLevel(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		result := tt.level.String()
		if result != tt.expected {
			t.Errorf("LogLevel(%d).String() = '%s', expected '%s'", tt.level, result, tt.expected)
		}
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected LogLevel
	}{
		{"debug", LogLevelDebug},
		{"DEBUG", LogLevelDebug},
		{"info", LogLevelInfo},
		{"warn", LogLevelWarn},
		{"warning", LogLevelWarn},
		{"error", LogLevelError},
		{"unknown", LogLevelInfo},
		{"", LogLevelInfo},
	}

	for _, tt := range tests {
		result := ParseLogLevel(tt.input)
		if result != tt.expected {
			t.Errorf("ParseLogLevel('%s') = %d, expected %d", tt.input, result, tt.expected)
		}
	}
}

func newTestLogger(level LogLevel) (*Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	l := NewLogger(LoggerConfig{Level: level, Output: &buf, Prefix: "test"})
	l.core.now = func() time.Time {
		return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	}
	return l, &buf
}

func TestLogger_Format(t *testing.T) {
	l, buf := newTestLogger(LogLevelDebug)
	l.Info("hello %s", "world")

	want := "2024-05-01T12:00:00.000 [INFO] test: hello world\n"
	if buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	l, buf := newTestLogger(LogLevelWarn)

	l.Debug("debug")
	l.Info("info")
	l.Warn("warn")
	l.Error("error")

	out := buf.String()
	if strings.Contains(out, "debug") || strings.Contains(out, "info") {
		t.Errorf("messages below warn were written: %q", out)
	}
	if !strings.Contains(out, "[WARN] test: warn") || !strings.Contains(out, "[ERROR] test: error") {
		t.Errorf("missing warn/error lines: %q", out)
	}
}

func TestLogger_WithFieldSorted(t *testing.T) {
	l, buf := newTestLogger(LogLevelInfo)

	l.WithField("zeta", 1).WithComponent("recorder").Info("msg")

	if !strings.HasSuffix(buf.String(), "msg {component=recorder, zeta=1}\n") {
		t.Errorf("unexpected fields: %q", buf.String())
	}
}

func TestLogger_WithFieldDoesNotMutateParent(t *testing.T) {
	l, buf := newTestLogger(LogLevelInfo)
	_ = l.WithField("k", "v")

	l.Info("plain")
	if strings.Contains(buf.String(), "k=v") {
		t.Errorf("parent logger gained a field: %q", buf.String())
	}
}

func TestLogger_SetLevelShared(t *testing.T) {
	l, buf := newTestLogger(LogLevelInfo)
	child := l.WithComponent("hook")

	l.SetLevel(LogLevelDebug)
	child.Debug("visible")

	if child.Level() != LogLevelDebug {
		t.Errorf("child level = %s, want DEBUG", child.Level())
	}
	if !strings.Contains(buf.String(), "visible") {
		t.Errorf("derived logger did not follow level change: %q", buf.String())
	}
}

func TestNullLogger(t *testing.T) {
	l := NullLogger()
	// Must not panic or write anywhere.
	l.Error("ignored")
	l.WithField("a", 1).Warn("ignored")
}

func TestDefaultLoggerConfig(t *testing.T) {
	cfg := DefaultLoggerConfig()
	if cfg.Level != LogLevelInfo {
		t.Errorf("Level = %s, want INFO", cfg.Level)
	}
	if cfg.Prefix != "holdrec" {
		t.Errorf("Prefix = %q, want holdrec", cfg.Prefix)
	}
	if cfg.Output == nil {
		t.Error("Output is nil")
	}
}
