// Package mailboxes is the storage boundary for vmail mailbox accounts.
package mailboxes

import (
	"context"

	"github.com/ajcloudsolutions/vmailapi/internal/server/models"
)

type Repository interface {
	// GetCredential returns the login-relevant fields of a mailbox:
	// Username, Password, Active, IsAdmin and IsGlobalAdmin.
	GetCredential(ctx context.Context, username string) (*models.Mailbox, error)
	// GetByUsername returns the full row without the password column.
	GetByUsername(ctx context.Context, username string) (*models.Mailbox, error)
	Exists(ctx context.Context, username string) (bool, error)
	Create(ctx context.Context, mailbox *models.Mailbox) error
	Count(ctx context.Context) (int64, error)
	Recent(ctx context.Context, limit int) ([]*models.Mailbox, error)
	Columns(ctx context.Context) ([]models.Column, error)
}
