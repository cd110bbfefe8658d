// Package users declares the repository contract for identity records.
package users

import (
	"context"

	"github.com/itemgallery/backend/internal/server/models"
)

// Repository defines persistence operations for users.
type Repository interface {
	// Create inserts a new user and returns it with ID and CreatedAt set.
	// A duplicate email returns common.ErrEmailExists, whether it was caught
	// by a pre-check or by the unique index on a concurrent insert.
	Create(ctx context.Context, user *models.User) (*models.User, error)

	// GetByEmail returns the user with the given email, or common.ErrorNotFound.
	GetByEmail(ctx context.Context, email string) (*models.User, error)

	// GetByID returns the user with the given ID, or common.ErrorNotFound.
	GetByID(ctx context.Context, id int64) (*models.User, error)
}
