package repomanager

import (
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/ajcloudsolutions/vmailapi/internal/server/repositories/mailboxes"
	"github.com/stretchr/testify/require"
)

func TestNewPostgresRepositoryManager_ReturnsInterface(t *testing.T) {
	var _ RepositoryManager = NewPostgresRepositoryManager()
}

func TestMailboxes_ReturnsPostgresRepo(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	m := NewPostgresRepositoryManager()
	repo := m.Mailboxes(db)
	require.NotNil(t, repo)

	_, ok := repo.(*mailboxes.PostgresRepository)
	require.True(t, ok)
}

func TestDriverIsRegistered(t *testing.T) {
	found := false
	for _, d := range sql.Drivers() {
		if d == DriverName {
			found = true
		}
	}
	require.True(t, found, "pgx driver must be registered")
}
