package items

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/itemgallery/backend/internal/common"
	"github.com/itemgallery/backend/internal/dbx"
	"github.com/itemgallery/backend/internal/server/models"
)

// PostgresRepository implements item storage over dbx.DBTX
// (satisfied by *sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, item *models.Item) (*models.Item, error) {
	query := `
		INSERT INTO items (user_id, title, description, cover_image, images)
		VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''), $5)
		RETURNING id, created_at
	`
	err := r.db.QueryRowContext(ctx, query,
		item.UserID, item.Title, item.Description, item.CoverImage,
		models.EncodeImages(item.Images)).
		Scan(&item.ID, &item.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	if item.Images == nil {
		item.Images = []string{}
	}
	return item, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.Item, error) {
	query := `
		SELECT id, user_id, title, description, cover_image, images, created_at
		FROM items
		WHERE id = $1
	`
	item, err := scanItem(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return item, nil
}

func (r *PostgresRepository) List(ctx context.Context, skip, limit int) ([]*models.Item, error) {
	query := `
		SELECT id, user_id, title, description, cover_image, images, created_at
		FROM items
		ORDER BY created_at DESC, id DESC
		OFFSET $1 LIMIT $2
	`
	return r.queryItems(ctx, query, skip, limit)
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID int64) ([]*models.Item, error) {
	query := `
		SELECT id, user_id, title, description, cover_image, images, created_at
		FROM items
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
	`
	return r.queryItems(ctx, query, userID)
}

func (r *PostgresRepository) Update(ctx context.Context, userID int64, item *models.Item) error {
	query := `
		UPDATE items
		SET title = $1, description = NULLIF($2, ''), cover_image = NULLIF($3, ''), images = $4
		WHERE id = $5 AND user_id = $6
	`
	res, err := r.db.ExecContext(ctx, query,
		item.Title, item.Description, item.CoverImage,
		models.EncodeImages(item.Images), item.ID, userID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		// absent or owned by someone else; the two are indistinguishable here
		return common.ErrorNotFound
	}
	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, userID, id int64) error {
	query := `
		DELETE FROM items
		WHERE id = $1 AND user_id = $2
	`
	res, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *PostgresRepository) queryItems(ctx context.Context, query string, args ...any) ([]*models.Item, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Item, 0)
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// rowScanner covers *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(row rowScanner) (*models.Item, error) {
	item := &models.Item{}
	var description, coverImage sql.NullString
	var images string
	err := row.Scan(&item.ID, &item.UserID, &item.Title,
		&description, &coverImage, &images, &item.CreatedAt)
	if err != nil {
		return nil, err
	}
	item.Description = description.String
	item.CoverImage = coverImage.String
	item.Images = models.DecodeImages(images)
	return item, nil
}
