// Package items declares the repository contract for gallery items.
package items

import (
	"context"

	"github.com/itemgallery/backend/internal/server/models"
)

// Repository defines persistence operations for items. Update and Delete are
// ownership-scoped: the owner is part of the lookup filter, so an item that
// exists but belongs to another user reads as common.ErrorNotFound.
type Repository interface {
	// Create inserts a new item and returns it with ID and CreatedAt set.
	Create(ctx context.Context, item *models.Item) (*models.Item, error)

	// GetByID returns an item regardless of owner, or common.ErrorNotFound.
	GetByID(ctx context.Context, id int64) (*models.Item, error)

	// List returns items of all users, newest first, with paging.
	List(ctx context.Context, skip, limit int) ([]*models.Item, error)

	// ListByUser returns the given user's items, newest first.
	ListByUser(ctx context.Context, userID int64) ([]*models.Item, error)

	// Update rewrites the mutable fields of the item with the given ID owned
	// by userID, or returns common.ErrorNotFound.
	Update(ctx context.Context, userID int64, item *models.Item) error

	// Delete removes the item with the given ID owned by userID, or returns
	// common.ErrorNotFound.
	Delete(ctx context.Context, userID, id int64) error
}
