package mailboxes

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ajcloudsolutions/vmailapi/internal/common"
	"github.com/ajcloudsolutions/vmailapi/internal/dbx"
	"github.com/ajcloudsolutions/vmailapi/internal/server/models"
	"github.com/jackc/pgx/v5/pgconn"
)

// uniqueViolation is the PostgreSQL SQLSTATE for a duplicate key.
const uniqueViolation = "23505"

// TableName is the iRedMail table holding mailbox accounts.
const TableName = "mailbox"

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) GetCredential(ctx context.Context, username string) (*models.Mailbox, error) {
	query :=
		`SELECT username, password, active, isadmin, isglobaladmin FROM mailbox
		 WHERE username = $1
		 `

	m := &models.Mailbox{}
	err := r.db.QueryRowContext(ctx, query, username).Scan(&m.Username, &m.Password, &m.Active, &m.IsAdmin, &m.IsGlobalAdmin)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return m, nil
}

func (r *PostgresRepository) GetByUsername(ctx context.Context, username string) (*models.Mailbox, error) {
	query :=
		`SELECT username, name, language, storagebasedirectory, storagenode, maildir, quota, domain,
		        mailboxformat, mailboxfolder, isadmin, isglobaladmin, active, created, modified, expired
		 FROM mailbox
		 WHERE username = $1
		 `

	m := &models.Mailbox{}
	err := r.db.QueryRowContext(ctx, query, username).Scan(
		&m.Username, &m.Name, &m.Language, &m.StorageBaseDirectory, &m.StorageNode, &m.Maildir, &m.Quota, &m.Domain,
		&m.MailboxFormat, &m.MailboxFolder, &m.IsAdmin, &m.IsGlobalAdmin, &m.Active, &m.Created, &m.Modified, &m.Expired,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return m, nil
}

func (r *PostgresRepository) Exists(ctx context.Context, username string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM mailbox WHERE username = $1)`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, username).Scan(&exists); err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}

	return exists, nil
}

// Create inserts a mailbox row. created and modified are set by the
// database; the stored values are written back into mailbox.
func (r *PostgresRepository) Create(ctx context.Context, mailbox *models.Mailbox) error {
	query :=
		`INSERT INTO mailbox (username, password, name, language, storagebasedirectory, storagenode, maildir,
		                      quota, domain, mailboxformat, mailboxfolder, isadmin, isglobaladmin, active,
		                      created, modified, expired)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, NOW(), NOW(), $15)
		 RETURNING created, modified
		 `

	err := r.db.QueryRowContext(ctx, query,
		mailbox.Username, mailbox.Password, mailbox.Name, mailbox.Language, mailbox.StorageBaseDirectory,
		mailbox.StorageNode, mailbox.Maildir, mailbox.Quota, mailbox.Domain, mailbox.MailboxFormat,
		mailbox.MailboxFolder, mailbox.IsAdmin, mailbox.IsGlobalAdmin, mailbox.Active, mailbox.Expired,
	).Scan(&mailbox.Created, &mailbox.Modified)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return common.ErrorAlreadyExists
		}
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *PostgresRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM mailbox`).Scan(&n); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}

func (r *PostgresRepository) Recent(ctx context.Context, limit int) ([]*models.Mailbox, error) {
	query :=
		`SELECT username, name, quota, created, active FROM mailbox
		 ORDER BY created DESC
		 LIMIT $1
		 `

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var out []*models.Mailbox
	for rows.Next() {
		m := &models.Mailbox{}
		if err := rows.Scan(&m.Username, &m.Name, &m.Quota, &m.Created, &m.Active); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return out, nil
}

func (r *PostgresRepository) Columns(ctx context.Context) ([]models.Column, error) {
	query :=
		`SELECT column_name, data_type FROM information_schema.columns
		 WHERE table_name = $1
		 ORDER BY ordinal_position
		 `

	rows, err := r.db.QueryContext(ctx, query, TableName)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var out []models.Column
	for rows.Next() {
		var c models.Column
		if err := rows.Scan(&c.Name, &c.DataType); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return out, nil
}
