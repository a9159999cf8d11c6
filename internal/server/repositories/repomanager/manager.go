package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/helpdesk/internal/dbx"
	"github.com/dmitrijs2005/helpdesk/internal/server/repositories/problems"
	"github.com/dmitrijs2005/helpdesk/internal/server/repositories/regtokens"
	"github.com/dmitrijs2005/helpdesk/internal/server/repositories/sessions"
	"github.com/dmitrijs2005/helpdesk/internal/server/repositories/users"
)

// RepositoryManager hands out repositories bound to either the pool or a
// transaction, so services can compose them inside dbx.WithTx.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Sessions(db dbx.DBTX) sessions.Repository
	RegistrationTokens(db dbx.DBTX) regtokens.Repository
	Problems(db dbx.DBTX) problems.Repository
}
