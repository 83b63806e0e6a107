package provision

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ajcloudsolutions/vmailapi/internal/server/models"
	"github.com/emersion/go-maildir"
)

// ErrOutsideBase is returned when a mailbox path escapes the storage base.
var ErrOutsideBase = errors.New("mailbox path escapes storage base directory")

// Maildir creates <base>/<storagenode>/<maildir>/<mailboxfolder> with the
// cur, new and tmp subdirectories.
type Maildir struct {
	base string
}

func NewMaildir(base string) *Maildir {
	return &Maildir{base: base}
}

// Path returns the Maildir location for mailbox.
func (p *Maildir) Path(mailbox *models.Mailbox) (string, error) {
	base := filepath.Clean(p.base)
	full := filepath.Join(base, filepath.FromSlash(relativeHome(mailbox)))

	rel, err := filepath.Rel(base, full)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", ErrOutsideBase
	}
	return full, nil
}

func (p *Maildir) Provision(ctx context.Context, mailbox *models.Mailbox) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	path, err := p.Path(mailbox)
	if err != nil {
		return err
	}

	if _, err := os.Stat(filepath.Join(path, "cur")); err == nil {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create mailbox home: %w", err)
	}
	if err := maildir.Dir(path).Init(); err != nil {
		return fmt.Errorf("init maildir: %w", err)
	}
	return nil
}
