package tractors

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/admintieri/tractoradmin/internal/common"
	"github.com/admintieri/tractoradmin/internal/dbx"
	"github.com/admintieri/tractoradmin/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const tractorColumns = `id, condition, name, photo, description, price, quantity, created_at, updated_at`

func scanTractor(row interface{ Scan(...any) error }) (*models.Tractor, error) {
	t := &models.Tractor{}
	err := row.Scan(&t.ID, &t.Condition, &t.Name, &t.Photo, &t.Description,
		&t.Price, &t.Quantity, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return t, nil
}

// List returns the whole catalog for one condition, optionally filtered by a
// case-insensitive substring over name and description (the list view's
// search box).
func (r *PostgresRepository) List(ctx context.Context, condition models.Condition, q string) ([]*models.Tractor, error) {
	query :=
		`SELECT ` + tractorColumns + ` FROM tractors
		 WHERE condition = $1
		   AND ($2 = '' OR name ILIKE '%' || $2 || '%' OR description ILIKE '%' || $2 || '%')
		 ORDER BY id
		 `

	rows, err := r.db.QueryContext(ctx, query, condition, q)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Tractor
	for rows.Next() {
		t, err := scanTractor(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) Get(ctx context.Context, condition models.Condition, id int64) (*models.Tractor, error) {
	query :=
		`SELECT ` + tractorColumns + ` FROM tractors
		 WHERE condition = $1 AND id = $2
		 `

	t, err := scanTractor(r.db.QueryRowContext(ctx, query, condition, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return t, nil
}

func (r *PostgresRepository) Create(ctx context.Context, tractor *models.Tractor) (*models.Tractor, error) {
	query :=
		`INSERT INTO tractors (condition, name, photo, description, price, quantity)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at, updated_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		tractor.Condition, tractor.Name, tractor.Photo, tractor.Description,
		tractor.Price, tractor.Quantity).
		Scan(&tractor.ID, &tractor.CreatedAt, &tractor.UpdatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return tractor, nil
}

// Update applies a partial patch; nil fields keep the stored value (COALESCE
// against NULL parameters).
func (r *PostgresRepository) Update(ctx context.Context, condition models.Condition, id int64, patch *models.TractorPatch) (*models.Tractor, error) {
	query :=
		`UPDATE tractors SET
		   name        = COALESCE($1, name),
		   photo       = COALESCE($2, photo),
		   description = COALESCE($3, description),
		   price       = COALESCE($4, price),
		   quantity    = COALESCE($5, quantity),
		   updated_at  = now()
		 WHERE condition = $6 AND id = $7
		 RETURNING ` + tractorColumns + `
		 `

	t, err := scanTractor(r.db.QueryRowContext(ctx, query,
		patch.Name, patch.Photo, patch.Description, patch.Price, patch.Quantity,
		condition, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return t, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, condition models.Condition, id int64) error {
	query := `DELETE FROM tractors WHERE condition = $1 AND id = $2`

	res, err := r.db.ExecContext(ctx, query, condition, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if affected == 0 {
		return common.ErrorNotFound
	}

	return nil
}
