package app

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"
	"time"
)

// LogLevel represents the severity level of a log message.
type LogLevel int

const (
	// LogLevelDebug is for detailed debugging information.
	LogLevelDebug LogLevel = iota
	// LogLevelInfo is for general informational messages.
	LogLevelInfo
	// LogLevelWarn is for warning messages.
	LogLevelWarn
	// LogLevelError is for error messages.
	LogLevelError
)

// String returns the string representation of the log level.
func (l LogLevel) String() string {
	switch l {
	case LogLevelDebug:
		return "DEBUG"
	case LogLevelInfo:
		return "INFO"
	case LogLevelWarn:
		return "WARN"
	case LogLevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLogLevel parses a string into a LogLevel.
func ParseLogLevel(s string) LogLevel {
	switch strings.ToLower(s) {
	case "debug":
		return LogLevelDebug
	case "warn", "warning":
		return LogLevelWarn
	case "error":
		return LogLevelError
	default:
		return LogLevelInfo
	}
}

// Logger is a leveled logger with key/value fields.
// Loggers derived with WithField share the parent's output and level.
type Logger struct {
	core   *logCore
	prefix string
	fields map[string]any
}

// logCore is the state shared by a logger and its derived loggers.
type logCore struct {
	mu       sync.Mutex
	level    LogLevel
	output   io.Writer
	disabled bool
	now      func() time.Time
}

// LoggerConfig configures the logger.
type LoggerConfig struct {
	// Level is the minimum log level to output.
	Level LogLevel
	// Output is where logs are written. Defaults to os.Stderr.
	Output io.Writer
	// Prefix is prepended to all log messages.
	Prefix string
}

// DefaultLoggerConfig returns the default logger configuration.
func DefaultLoggerConfig() LoggerConfig {
	return LoggerConfig{
		Level:  LogLevelInfo,
		Output: os.Stderr,
		Prefix: "holdrec",
	}
}

// NewLogger creates a new logger with the given configuration.
func NewLogger(cfg LoggerConfig) *Logger {
	if cfg.Output == nil {
		cfg.Output = os.Stderr
	}
	return &Logger{
		core: &logCore{
			level:  cfg.Level,
			output: cfg.Output,
			now:    time.Now,
		},
		prefix: cfg.Prefix,
	}
}

// NullLogger returns a logger that discards all output.
func NullLogger() *Logger {
	l := NewLogger(LoggerConfig{Output: io.Discard})
	l.core.disabled = true
	return l
}

// WithField returns a new logger with the given field added.
func (l *Logger) WithField(key string, value any) *Logger {
	newFields := make(map[string]any, len(l.fields)+1)
	for k, v := range l.fields {
		newFields[k] = v
	}
	newFields[key] = value

	return &Logger{
		core:   l.core,
		prefix: l.prefix,
		fields: newFields,
	}
}

// WithComponent returns a new logger with the component field set.
func (l *Logger) WithComponent(component string) *Logger {
	return l.WithField("component", component)
}

// SetLevel sets the minimum log level.
func (l *Logger) SetLevel(level LogLevel) {
	l.core.mu.Lock()
	defer l.core.mu.Unlock()
	l.core.level = level
}

// Level returns the minimum log level.
func (l *Logger) Level() LogLevel {
	l.core.mu.Lock()
	defer l.core.mu.Unlock()
	return l.core.level
}

// Debug logs a debug message.
func (l *Logger) Debug(msg string, args ...any) {
	l.log(LogLevelDebug, msg, args...)
}

// Info logs an info message.
func (l *Logger) Info(msg string, args ...any) {
	l.log(LogLevelInfo, msg, args...)
}

// Warn logs a warning message.
func (l *Logger) Warn(msg string, args ...any) {
	l.log(LogLevelWarn, msg, args...)
}

// Error logs an error message.
func (l *Logger) Error(msg string, args ...any) {
	l.log(LogLevelError, msg, args...)
}

// log writes a log message if the level is enabled.
func (l *Logger) log(level LogLevel, msg string, args ...any) {
	c := l.core
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.disabled || level < c.level {
		return
	}

	if len(args) > 0 {
		msg = fmt.Sprintf(msg, args...)
	}

	var b strings.Builder
	b.WriteString(c.now().Format("2006-01-02T15:04:05.000"))
	b.WriteString(" [")
	b.WriteString(level.String())
	b.WriteString("] ")
	if l.prefix != "" {
		b.WriteString(l.prefix)
		b.WriteString(": ")
	}
	b.WriteString(msg)

	// Fields are sorted so lines are stable.
	if len(l.fields) > 0 {
		keys := make([]string, 0, len(l.fields))
		for k := range l.fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		b.WriteString(" {")
		for i, k := range keys {
			if i > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "%s=%v", k, l.fields[k])
		}
		b.WriteString("}")
	}
	b.WriteByte('\n')

	_, _ = io.WriteString(c.output, b.String())
}
