package history

import "errors"

var (
	// ErrInvalidLimit is returned when a list limit is outside 1..MaxLimit.
	ErrInvalidLimit = errors.New("invalid limit")

	// ErrMissingSessionID is returned when a request names no session.
	ErrMissingSessionID = errors.New("session id is required")
)
