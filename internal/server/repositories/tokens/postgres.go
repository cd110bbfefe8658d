package tokens

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/itemgallery/backend/internal/common"
	"github.com/itemgallery/backend/internal/dbx"
)

// PostgresRepository implements token storage over dbx.DBTX
// (satisfied by *sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, userID int64, token string) error {
	query := `
		INSERT INTO auth_tokens (token, user_id)
		VALUES ($1, $2)
	`
	if _, err := r.db.ExecContext(ctx, query, token, userID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) FindUserID(ctx context.Context, token string) (int64, error) {
	query := `
		SELECT user_id
		FROM auth_tokens
		WHERE token = $1
	`
	var userID int64
	if err := r.db.QueryRowContext(ctx, query, token).Scan(&userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, common.ErrorNotFound
		}
		return 0, fmt.Errorf("db error: %w", err)
	}
	return userID, nil
}

func (r *PostgresRepository) DeleteAllForUser(ctx context.Context, userID int64) error {
	query := `
		DELETE FROM auth_tokens
		WHERE user_id = $1
	`
	if _, err := r.db.ExecContext(ctx, query, userID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
