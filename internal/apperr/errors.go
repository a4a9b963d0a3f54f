// Package apperr defines the sentinel errors the service layer returns
// and the handler layer translates into HTTP statuses.
package apperr

import "errors"

var (
	// ErrValidation indicates missing or malformed input from the caller.
	ErrValidation = errors.New("validation failed")

	// ErrUserExists indicates a registration with an already-taken username.
	ErrUserExists = errors.New("user already exists")

	// ErrUserNotFound indicates a login attempt for an unknown username.
	ErrUserNotFound = errors.New("user does not exist")

	// ErrInvalidCredentials indicates a password mismatch at login.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrNotFound indicates a lookup for a record that does not exist.
	ErrNotFound = errors.New("not found")
)
