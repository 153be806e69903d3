// Package db wires the database connection to the repositories and applies
// schema migrations.
package db

import (
	"context"
	"database/sql"

	"github.com/avlasov/chatauth/internal/server/users"
)

type RepositoryManager interface {
	Conn() *sql.DB
	Users() users.Repository
	RunMigrations(ctx context.Context) error
	Close() error
}
