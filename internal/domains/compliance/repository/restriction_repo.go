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

type restrictionRepository struct {
	pool *pgxpool.Pool
}

func NewRestrictionRepository(pool *pgxpool.Pool) RestrictionRepository {
	return &restrictionRepository{pool: pool}
}

func (r *restrictionRepository) Create(ctx context.Context, restriction *model.ProcessingRestriction) error {
	restriction.CreatedAt = time.Now()

	_, err := r.pool.Exec(ctx, `
        INSERT INTO processing_restrictions (id, user_id, reason, active, created_at)
        VALUES ($1, $2, $3, $4, $5)
    `, restriction.ID, restriction.UserID, restriction.Reason, restriction.Active, restriction.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create restriction: %w", err)
	}

	return nil
}

func (r *restrictionRepository) GetActiveByUser(ctx context.Context, userID uuid.UUID) (*model.ProcessingRestriction, error) {
	restriction := &model.ProcessingRestriction{}
	err := r.pool.QueryRow(ctx, `
        SELECT id, user_id, reason, active, lifted_at, created_at
        FROM processing_restrictions
        WHERE user_id = $1 AND active = TRUE
        ORDER BY created_at DESC
        LIMIT 1
    `, userID).Scan(
		&restriction.ID,
		&restriction.UserID,
		&restriction.Reason,
		&restriction.Active,
		&restriction.LiftedAt,
		&restriction.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, model.ErrNoRestriction
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get restriction: %w", err)
	}

	return restriction, nil
}

func (r *restrictionRepository) HasActive(ctx context.Context, userID uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM processing_restrictions WHERE user_id = $1 AND active = TRUE)`,
		userID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check restriction: %w", err)
	}

	return exists, nil
}

func (r *restrictionRepository) Lift(ctx context.Context, userID uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `
        UPDATE processing_restrictions SET active = FALSE, lifted_at = NOW()
        WHERE user_id = $1 AND active = TRUE
    `, userID)
	if err != nil {
		return fmt.Errorf("failed to lift restriction: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNoRestriction
	}

	return nil
}

func (r *restrictionRepository) DeleteByUserWithTx(ctx context.Context, tx pgx.Tx, userID uuid.UUID) error {
	_, err := tx.Exec(ctx, `DELETE FROM processing_restrictions WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("failed to delete restrictions: %w", err)
	}
	return nil
}
