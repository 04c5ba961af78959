package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/gamekeeper/internal/dbx"
	"github.com/dmitrijs2005/gamekeeper/internal/server/repositories/games"
	"github.com/dmitrijs2005/gamekeeper/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/gamekeeper/internal/server/repositories/users"
)

// RepositoryManager vends repositories bound to a DB handle or transaction.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	RefreshTokens(db dbx.DBTX) refreshtokens.Repository
	Games(db dbx.DBTX) games.Repository
}
