package session

import "errors"

var (
	// ErrInvalidDuration indicates a planned duration outside 1-120 minutes.
	ErrInvalidDuration = errors.New("invalid duration")
	// ErrNoActiveSession indicates an operation that requires an
	// in-progress session was called without one.
	ErrNoActiveSession = errors.New("no active session")
	// ErrSessionActive indicates a session is already in progress.
	ErrSessionActive = errors.New("session already active")
)
