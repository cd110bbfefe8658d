// Package common defines shared sentinel errors used across the service and
// transport layers. Callers should match these values with errors.Is.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Login failures. Unknown email and wrong password both map here so the
	// caller cannot tell which check failed.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// Registration conflict.
	ErrEmailExists = errors.New("email already exists")

	// A token resolved but its owning user row is gone. Handled gracefully
	// but logged as unexpected: it means user deletion was not cascaded.
	ErrUserNotFound = errors.New("user not found")
)
