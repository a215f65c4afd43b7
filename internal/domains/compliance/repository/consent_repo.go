package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"memoir-backend/internal/domains/compliance/model"
)

type consentRepository struct {
	pool *pgxpool.Pool
}

func NewConsentRepository(pool *pgxpool.Pool) ConsentRepository {
	return &consentRepository{pool: pool}
}

func (r *consentRepository) Append(ctx context.Context, rec *model.ConsentRecord) error {
	rec.CreatedAt = time.Now()

	_, err := r.pool.Exec(ctx, `
        INSERT INTO consent_records (id, user_id, purpose, granted, method, version, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
    `, rec.ID, rec.UserID, rec.Purpose, rec.Granted, rec.Method, rec.Version, rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to append consent record: %w", err)
	}

	return nil
}

func (r *consentRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.ConsentRecord, error) {
	rows, err := r.pool.Query(ctx, `
        SELECT id, user_id, purpose, granted, method, version, created_at
        FROM consent_records
        WHERE user_id = $1
        ORDER BY created_at ASC
    `, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query consent records: %w", err)
	}
	defer rows.Close()

	var records []model.ConsentRecord
	for rows.Next() {
		var rec model.ConsentRecord
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.Purpose, &rec.Granted, &rec.Method, &rec.Version, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan consent record: %w", err)
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read consent rows: %w", err)
	}

	return records, nil
}

func (r *consentRepository) DeleteByUserWithTx(ctx context.Context, tx pgx.Tx, userID uuid.UUID) error {
	_, err := tx.Exec(ctx, `DELETE FROM consent_records WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("failed to delete consent records: %w", err)
	}
	return nil
}
