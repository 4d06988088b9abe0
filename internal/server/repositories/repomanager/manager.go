package repomanager

import (
	"context"
	"database/sql"

	"github.com/mpetrov/taskkeeper/internal/dbx"
	"github.com/mpetrov/taskkeeper/internal/server/repositories/tasks"
	"github.com/mpetrov/taskkeeper/internal/server/repositories/users"
)

// RepositoryManager vends repository implementations bound to a database
// handle and exposes a schema migration hook.
type RepositoryManager interface {
	Users(db dbx.DBTX) users.Repository
	Tasks(db dbx.DBTX) tasks.Repository
	RunMigrations(ctx context.Context, db *sql.DB) error
}
