package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/gophledger/internal/dbx"
	"github.com/dmitrijs2005/gophledger/internal/server/repositories/entries"
	"github.com/dmitrijs2005/gophledger/internal/server/repositories/users"
)

// RepositoryManager vends repositories bound to a connection or transaction.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Entries(db dbx.DBTX) entries.Repository
}
