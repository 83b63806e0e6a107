package services

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/ajcloudsolutions/vmailapi/internal/common"
	"github.com/ajcloudsolutions/vmailapi/internal/dbx"
	"github.com/ajcloudsolutions/vmailapi/internal/server/config"
	"github.com/ajcloudsolutions/vmailapi/internal/server/models"
	"github.com/ajcloudsolutions/vmailapi/internal/server/repositories/mailboxes"
	"github.com/stretchr/testify/require"
)

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.SecretKey = "test-secret"
	cfg.AccessTokenValidityDuration = time.Hour
	return cfg
}

type fakeMailboxRepo struct {
	mu sync.Mutex

	credential    *models.Mailbox
	credentialErr error

	byUsername    *models.Mailbox
	byUsernameErr error

	exists    bool
	existsErr error

	createErr error
	created   []*models.Mailbox

	count    int64
	countErr error

	recent      []*models.Mailbox
	recentErr   error
	recentLimit int

	columns    []models.Column
	columnsErr error
}

func (f *fakeMailboxRepo) GetCredential(ctx context.Context, username string) (*models.Mailbox, error) {
	if f.credentialErr != nil {
		return nil, f.credentialErr
	}
	if f.credential == nil {
		return nil, common.ErrorNotFound
	}
	return f.credential, nil
}

func (f *fakeMailboxRepo) GetByUsername(ctx context.Context, username string) (*models.Mailbox, error) {
	if f.byUsernameErr != nil {
		return nil, f.byUsernameErr
	}
	return f.byUsername, nil
}

func (f *fakeMailboxRepo) Exists(ctx context.Context, username string) (bool, error) {
	return f.exists, f.existsErr
}

func (f *fakeMailboxRepo) Create(ctx context.Context, m *models.Mailbox) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *m
	f.created = append(f.created, &cp)
	return nil
}

func (f *fakeMailboxRepo) Count(ctx context.Context) (int64, error) {
	return f.count, f.countErr
}

func (f *fakeMailboxRepo) Recent(ctx context.Context, limit int) ([]*models.Mailbox, error) {
	f.recentLimit = limit
	return f.recent, f.recentErr
}

func (f *fakeMailboxRepo) Columns(ctx context.Context) ([]models.Column, error) {
	return f.columns, f.columnsErr
}

type fakeRepoManager struct {
	repo *fakeMailboxRepo
}

func (m *fakeRepoManager) Mailboxes(db dbx.DBTX) mailboxes.Repository { return m.repo }

type fakeRecorder struct {
	mu            sync.Mutex
	logins        []string
	registrations []string
}

func (r *fakeRecorder) Login(outcome string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.logins = append(r.logins, outcome)
}

func (r *fakeRecorder) Registration(outcome string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.registrations = append(r.registrations, outcome)
}

type fakeLimiter struct {
	enforceErr error
	attempts   int
	resets     int
}

func (l *fakeLimiter) Enforce(context.Context, string) error {
	l.attempts++
	return l.enforceErr
}

func (l *fakeLimiter) Reset(context.Context, string) error {
	l.resets++
	return nil
}

type fakeProvisioner struct {
	err   error
	calls []*models.Mailbox
}

func (p *fakeProvisioner) Provision(ctx context.Context, m *models.Mailbox) error {
	p.calls = append(p.calls, m)
	return p.err
}

var errBoom = errors.New("boom")

func ptr[T any](v T) *T { return &v }
