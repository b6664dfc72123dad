package repository

import "errors"

// Stable error kinds surfaced to the HTTP layer. Handlers map them to
// status codes with errors.Is instead of matching message text.
var (
	ErrNotFound           = errors.New("not found")
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
)
