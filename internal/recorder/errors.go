package recorder

import "errors"

// Errors returned by controller operations.
var (
	// ErrNoSession indicates there is no active recording session.
	ErrNoSession = errors.New("no active recording session")

	// ErrNotLocked indicates Stop was called on a session that is not locked.
	ErrNotLocked = errors.New("recording session is not locked")
)
