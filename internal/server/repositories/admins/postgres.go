package admins

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

func (r *PostgresRepository) Create(ctx context.Context, admin *models.Administrator) (*models.Administrator, error) {

	query :=
		`INSERT INTO administrators (name, email, password_hash)
         VALUES ($1, $2, $3)
		 RETURNING id, created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		admin.Name, admin.Email, admin.PasswordHash).Scan(&admin.ID, &admin.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return admin, nil
}

// GetByEmail does a case-sensitive exact match; email normalization is the
// caller's business, not the store's.
func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*models.Administrator, error) {
	query :=
		`SELECT id, name, email, password_hash, created_at FROM administrators
		 WHERE email = $1
		 `

	admin := &models.Administrator{}
	err := r.db.QueryRowContext(ctx, query, email).Scan(
		&admin.ID, &admin.Name, &admin.Email, &admin.PasswordHash, &admin.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return admin, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.Administrator, error) {
	query :=
		`SELECT id, name, email, password_hash, created_at FROM administrators
		 WHERE id = $1
		 `

	admin := &models.Administrator{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&admin.ID, &admin.Name, &admin.Email, &admin.PasswordHash, &admin.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return admin, nil
}

func (r *PostgresRepository) List(ctx context.Context, offset, limit int) ([]*models.Administrator, error) {
	query :=
		`SELECT id, name, email, password_hash, created_at FROM administrators
		 ORDER BY id
		 OFFSET $1 LIMIT $2
		 `

	rows, err := r.db.QueryContext(ctx, query, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Administrator
	for rows.Next() {
		admin := &models.Administrator{}
		if err := rows.Scan(&admin.ID, &admin.Name, &admin.Email, &admin.PasswordHash, &admin.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, admin)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM administrators`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}
