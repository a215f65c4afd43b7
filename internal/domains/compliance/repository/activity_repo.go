package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"memoir-backend/internal/domains/compliance/model"
)

type activityRepository struct {
	pool *pgxpool.Pool
}

func NewActivityRepository(pool *pgxpool.Pool) ActivityRepository {
	return &activityRepository{pool: pool}
}

func (r *activityRepository) Append(ctx context.Context, entry *model.ActivityLogEntry) error {
	entry.CreatedAt = time.Now()

	_, err := r.pool.Exec(ctx, `
        INSERT INTO compliance_activity_log (id, user_id, action, metadata, created_at)
        VALUES ($1, $2, $3, $4, $5)
    `, entry.ID, entry.UserID, entry.Action, entry.Metadata, entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to append activity entry: %w", err)
	}

	return nil
}

func (r *activityRepository) ListByUser(ctx context.Context, userID uuid.UUID, page, limit int) ([]model.ActivityLogEntry, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM compliance_activity_log WHERE user_id = $1`,
		userID,
	).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count activity entries: %w", err)
	}

	offset := (page - 1) * limit
	rows, err := r.pool.Query(ctx, `
        SELECT id, user_id, action, metadata, created_at
        FROM compliance_activity_log
        WHERE user_id = $1
        ORDER BY created_at DESC
        LIMIT $2 OFFSET $3
    `, userID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query activity entries: %w", err)
	}
	defer rows.Close()

	var entries []model.ActivityLogEntry
	for rows.Next() {
		var entry model.ActivityLogEntry
		if err := rows.Scan(&entry.ID, &entry.UserID, &entry.Action, &entry.Metadata, &entry.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("failed to scan activity entry: %w", err)
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to read activity rows: %w", err)
	}

	return entries, total, nil
}
