// Package tractors persists the two inventory catalogs (new and used
// machines) behind a single table partitioned by condition.
package tractors

import (
	"context"

	"github.com/admintieri/tractoradmin/internal/server/models"
)

type Repository interface {
	List(ctx context.Context, condition models.Condition, q string) ([]*models.Tractor, error)
	Get(ctx context.Context, condition models.Condition, id int64) (*models.Tractor, error)
	Create(ctx context.Context, tractor *models.Tractor) (*models.Tractor, error)
	Update(ctx context.Context, condition models.Condition, id int64, patch *models.TractorPatch) (*models.Tractor, error)
	Delete(ctx context.Context, condition models.Condition, id int64) error
}
