// Package repomanager abstracts the construction of repositories so services
// can bind them to either a plain connection or an open transaction.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/avosk/threadhub/internal/dbx"
	"github.com/avosk/threadhub/internal/server/repositories/posts"
	"github.com/avosk/threadhub/internal/server/repositories/refreshtokens"
	"github.com/avosk/threadhub/internal/server/repositories/topics"
	"github.com/avosk/threadhub/internal/server/repositories/users"
)

// RepositoryManager vends repositories bound to the provided DBTX and runs
// schema migrations.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Topics(db dbx.DBTX) topics.Repository
	Posts(db dbx.DBTX) posts.Repository
	RefreshTokens(db dbx.DBTX) refreshtokens.Repository
}
