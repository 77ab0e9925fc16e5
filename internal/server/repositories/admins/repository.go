// Package admins is the credential store: the durable record of
// administrator accounts and password hashes.
package admins

import (
	"context"

	"github.com/admintieri/tractoradmin/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, admin *models.Administrator) (*models.Administrator, error)
	GetByEmail(ctx context.Context, email string) (*models.Administrator, error)
	GetByID(ctx context.Context, id int64) (*models.Administrator, error)
	List(ctx context.Context, offset, limit int) ([]*models.Administrator, error)
	Count(ctx context.Context) (int64, error)
}
