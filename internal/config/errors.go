package config

import (
	"errors"
	"fmt"
)

// Errors returned by configuration operations.
var (
	// ErrValidationFailed indicates the value fails validation.
	ErrValidationFailed = errors.New("validation failed")

	// ErrWatcherClosed indicates the watcher was already closed.
	ErrWatcherClosed = errors.New("config watcher closed")
)

// ParseError represents an error while parsing a configuration file.
type ParseError struct {
	// Path is the file path that failed to parse.
	Path string
	// Line is the line number where the error occurred (if available).
	Line int
	// Column is the column number where the error occurred (if available).
	Column int
	// Message describes the parse error.
	Message string
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Line > 0 && e.Column > 0 {
		return fmt.Sprintf("parse error in %s at line %d, column %d: %s", e.Path, e.Line, e.Column, e.Message)
	}
	if e.Line > 0 {
		return fmt.Sprintf("parse error in %s at line %d: %s", e.Path, e.Line, e.Message)
	}
	return fmt.Sprintf("parse error in %s: %s", e.Path, e.Message)
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// ValidationError describes a validation failure for a setting.
type ValidationError struct {
	// Path is the setting path that failed validation.
	Path string
	// Message describes the validation error.
	Message string
	// Value is the invalid value.
	Value any
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (value: %v)", e.Path, e.Message, e.Value)
}

// Unwrap lets errors.Is match ErrValidationFailed.
func (e *ValidationError) Unwrap() error {
	return ErrValidationFailed
}
