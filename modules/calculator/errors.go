package calculator

import "errors"

// Sentinel errors for calculator session operations.
var (
	// ErrSessionNotFound is returned when the session does not exist or has expired.
	ErrSessionNotFound = errors.New("session not found")

	// ErrInvalidSessionID is returned when the session ID is not a UUID.
	ErrInvalidSessionID = errors.New("invalid session id")

	// ErrNoKeys is returned when a key press request carries no tokens.
	ErrNoKeys = errors.New("no keys pressed")

	// ErrTooManyKeys is returned when a single request exceeds MaxKeysPerPress.
	ErrTooManyKeys = errors.New("too many keys")
)
