// Package app provides the main application structure and coordination.
package app

import "errors"

// Application errors.
var (
	// ErrQuit signals that the application should exit normally.
	ErrQuit = errors.New("quit requested")

	// ErrAlreadyRunning indicates the application is already running.
	ErrAlreadyRunning = errors.New("application already running")

	// ErrNoBackend indicates Run was called before SetBackend.
	ErrNoBackend = errors.New("no backend set")
)

// InitError reports which component failed to start.
type InitError struct {
	Component string
	Err       error
}

func (e *InitError) Error() string {
	return "init " + e.Component + ": " + e.Err.Error()
}

func (e *InitError) Unwrap() error {
	return e.Err
}
