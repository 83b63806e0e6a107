package repomanager

import (
	"github.com/ajcloudsolutions/vmailapi/internal/dbx"
	"github.com/ajcloudsolutions/vmailapi/internal/server/repositories/mailboxes"
)

// RepositoryManager vends repositories bound to a DB handle, which may be
// the pool or a transaction.
type RepositoryManager interface {
	Mailboxes(db dbx.DBTX) mailboxes.Repository
}
