package plugin

import "errors"

// Errors for hook operations.
var (
	// ErrHookClosed is returned when operating on a closed hook.
	ErrHookClosed = errors.New("hook is closed")

	// ErrNoHandler is returned when the script defines no on_transition.
	ErrNoHandler = errors.New("script does not define on_transition")
)
