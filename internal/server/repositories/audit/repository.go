// Package audit persists the append-only log of mutating actions consumed by
// the notification feed.
package audit

import (
	"context"

	"github.com/admintieri/tractoradmin/internal/server/models"
)

type Repository interface {
	Append(ctx context.Context, record *models.AuditRecord) error
	List(ctx context.Context, offset, limit int) ([]*models.AuditRecord, error)
	Count(ctx context.Context) (int64, error)
}
