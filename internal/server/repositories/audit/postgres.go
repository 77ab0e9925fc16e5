package audit

import (
	"context"
	"fmt"

	"github.com/admintieri/tractoradmin/internal/dbx"
	"github.com/admintieri/tractoradmin/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Append(ctx context.Context, record *models.AuditRecord) error {
	query :=
		`INSERT INTO audit_log (id, action, entity, meta, created_at, user_id, user_email, ip, ua)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 `

	var meta any
	if len(record.Meta) > 0 {
		meta = []byte(record.Meta)
	}

	_, err := r.db.ExecContext(ctx, query,
		record.ID, record.Action, record.Entity, meta, record.CreatedAt,
		record.UserID, record.UserEmail, record.IP, record.UA)

	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

// List returns records newest first, the order the notification feed shows.
func (r *PostgresRepository) List(ctx context.Context, offset, limit int) ([]*models.AuditRecord, error) {
	query :=
		`SELECT id, action, entity, meta, created_at, user_id, user_email, ip, ua FROM audit_log
		 ORDER BY created_at DESC
		 OFFSET $1 LIMIT $2
		 `

	rows, err := r.db.QueryContext(ctx, query, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.AuditRecord
	for rows.Next() {
		rec := &models.AuditRecord{}
		var meta []byte
		if err := rows.Scan(&rec.ID, &rec.Action, &rec.Entity, &meta, &rec.CreatedAt,
			&rec.UserID, &rec.UserEmail, &rec.IP, &rec.UA); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		rec.Meta = meta
		result = append(result, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM audit_log`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}
