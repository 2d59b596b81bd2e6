package user

import "errors"

// Sentinel errors surfaced to handlers so they can pick the right HTTP status
// and client-facing message.
var (
	ErrMissingFields      = errors.New("all fields are required")
	ErrDuplicateEmail     = errors.New("a user with this email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
)
