// Package repomanager hands out repositories bound to a DB handle (pool or
// transaction) and owns schema migrations.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/admintieri/tractoradmin/internal/dbx"
	"github.com/admintieri/tractoradmin/internal/server/repositories/admins"
	"github.com/admintieri/tractoradmin/internal/server/repositories/audit"
	"github.com/admintieri/tractoradmin/internal/server/repositories/tractors"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Admins(db dbx.DBTX) admins.Repository
	Tractors(db dbx.DBTX) tractors.Repository
	Audit(db dbx.DBTX) audit.Repository
}
