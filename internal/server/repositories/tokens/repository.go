// Package tokens declares the repository contract for opaque bearer tokens.
package tokens

import "context"

// Repository defines operations for storing, resolving, and revoking
// auth tokens. Global token uniqueness is guarded by the database unique
// index, not by application-level checks.
type Repository interface {
	// Create persists a freshly generated token bound to userID.
	Create(ctx context.Context, userID int64, token string) error

	// FindUserID resolves a token string to its owning user ID by exact
	// match, or returns common.ErrorNotFound.
	FindUserID(ctx context.Context, token string) (int64, error)

	// DeleteAllForUser removes every token bound to userID. Deleting when
	// none exist is not an error.
	DeleteAllForUser(ctx context.Context, userID int64) error
}
