// Package repomanager wires repository constructors to a concrete storage
// backend and exposes the schema migration hook.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/itemgallery/backend/internal/dbx"
	"github.com/itemgallery/backend/internal/server/repositories/items"
	"github.com/itemgallery/backend/internal/server/repositories/tokens"
	"github.com/itemgallery/backend/internal/server/repositories/users"
)

// RepositoryManager vends repositories bound to a DBTX, so services can run
// the same repository code against the pool or inside a transaction.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Tokens(db dbx.DBTX) tokens.Repository
	Items(db dbx.DBTX) items.Repository
}
