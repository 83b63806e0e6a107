// Package provision prepares mail storage for a freshly registered mailbox.
//
// iRedMail setups normally let Dovecot create the Maildir on first login, so
// the default backend does nothing. The maildir backend creates the
// directory tree up front; the s3 backend writes a marker object for
// object-storage mail backends.
package provision

import (
	"context"
	"fmt"
	"path"

	"github.com/ajcloudsolutions/vmailapi/internal/server/config"
	"github.com/ajcloudsolutions/vmailapi/internal/server/models"
)

const (
	BackendNone    = "none"
	BackendMaildir = "maildir"
	BackendS3      = "s3"
)

// Provisioner creates storage for a mailbox. Implementations must be
// idempotent: provisioning an existing mailbox is not an error.
type Provisioner interface {
	Provision(ctx context.Context, mailbox *models.Mailbox) error
}

// New returns the provisioner selected by cfg.ProvisionBackend.
func New(ctx context.Context, cfg *config.Config) (Provisioner, error) {
	switch cfg.ProvisionBackend {
	case "", BackendNone:
		return Nop{}, nil
	case BackendMaildir:
		return NewMaildir(cfg.StorageBaseDirectory), nil
	case BackendS3:
		return NewS3FromConfig(ctx, cfg)
	default:
		return nil, fmt.Errorf("unknown provision backend %q", cfg.ProvisionBackend)
	}
}

// relativeHome is "<storagenode>/<maildir>/<mailboxfolder>" using forward slashes.
func relativeHome(m *models.Mailbox) string {
	return path.Join(m.StorageNode, m.Maildir, m.MailboxFolder)
}

// Nop leaves storage creation to the mail server.
type Nop struct{}

func (Nop) Provision(context.Context, *models.Mailbox) error { return nil }
