// Package repomanager provides a concrete RepositoryManager for PostgreSQL.
package repomanager

import (
	"github.com/ajcloudsolutions/vmailapi/internal/dbx"
	"github.com/ajcloudsolutions/vmailapi/internal/server/repositories/mailboxes"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// DriverName is the database/sql driver registered by pgx.
const DriverName = "pgx"

// PostgresRepositoryManager vends PostgreSQL-backed repository implementations.
type PostgresRepositoryManager struct{}

// Mailboxes returns a mailboxes.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Mailboxes(db dbx.DBTX) mailboxes.Repository {
	return mailboxes.NewPostgresRepository(db)
}

// NewPostgresRepositoryManager constructs a PostgreSQL-backed RepositoryManager.
func NewPostgresRepositoryManager() RepositoryManager {
	return &PostgresRepositoryManager{}
}
