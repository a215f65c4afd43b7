package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"memoir-backend/internal/domains/compliance/model"
)

type deletionRepository struct {
	pool *pgxpool.Pool
}

func NewDeletionRepository(pool *pgxpool.Pool) DeletionRepository {
	return &deletionRepository{pool: pool}
}

func (r *deletionRepository) Create(ctx context.Context, req *model.AccountDeletionRequest) error {
	req.CreatedAt = time.Now()

	_, err := r.pool.Exec(ctx, `
        INSERT INTO account_deletion_requests (id, user_id, status, reason, created_at)
        VALUES ($1, $2, $3, $4, $5)
    `, req.ID, req.UserID, req.Status, req.Reason, req.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create deletion request: %w", err)
	}

	return nil
}

func (r *deletionRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.AccountDeletionRequest, error) {
	req := &model.AccountDeletionRequest{}
	err := r.pool.QueryRow(ctx, `
        SELECT id, user_id, status, reason, completed_at, created_at
        FROM account_deletion_requests
        WHERE id = $1
    `, id).Scan(&req.ID, &req.UserID, &req.Status, &req.Reason, &req.CompletedAt, &req.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, model.ErrDeletionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get deletion request: %w", err)
	}

	return req, nil
}

func (r *deletionRepository) HasOpen(ctx context.Context, userID uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `
        SELECT EXISTS(
            SELECT 1 FROM account_deletion_requests
            WHERE user_id = $1 AND status IN ($2, $3)
        )
    `, userID, model.DeletionStatusPending, model.DeletionStatusProcessing).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check open deletion requests: %w", err)
	}

	return exists, nil
}

func (r *deletionRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	query := `UPDATE account_deletion_requests SET status = $1 WHERE id = $2`
	if status == model.DeletionStatusCompleted {
		query = `UPDATE account_deletion_requests SET status = $1, completed_at = NOW() WHERE id = $2`
	}

	_, err := r.pool.Exec(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("failed to update deletion status: %w", err)
	}

	return nil
}
