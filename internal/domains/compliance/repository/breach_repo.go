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

type breachRepository struct {
	pool *pgxpool.Pool
}

func NewBreachRepository(pool *pgxpool.Pool) BreachRepository {
	return &breachRepository{pool: pool}
}

func (r *breachRepository) Create(ctx context.Context, report *model.BreachReport) error {
	now := time.Now()
	report.CreatedAt = now
	report.UpdatedAt = now

	_, err := r.pool.Exec(ctx, `
        INSERT INTO breach_reports (id, reporter_id, title, description, status, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
    `, report.ID, report.ReporterID, report.Title, report.Description, report.Status, report.CreatedAt, report.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create breach report: %w", err)
	}

	return nil
}

func (r *breachRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.BreachReport, error) {
	report := &model.BreachReport{}
	err := r.pool.QueryRow(ctx, `
        SELECT id, reporter_id, title, description, status, created_at, updated_at
        FROM breach_reports
        WHERE id = $1
    `, id).Scan(&report.ID, &report.ReporterID, &report.Title, &report.Description, &report.Status, &report.CreatedAt, &report.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, model.ErrBreachNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get breach report: %w", err)
	}

	return report, nil
}

func (r *breachRepository) ListByReporter(ctx context.Context, reporterID uuid.UUID) ([]model.BreachReport, error) {
	rows, err := r.pool.Query(ctx, `
        SELECT id, reporter_id, title, description, status, created_at, updated_at
        FROM breach_reports
        WHERE reporter_id = $1
        ORDER BY created_at DESC
    `, reporterID)
	if err != nil {
		return nil, fmt.Errorf("failed to query breach reports: %w", err)
	}
	defer rows.Close()

	var reports []model.BreachReport
	for rows.Next() {
		var report model.BreachReport
		if err := rows.Scan(&report.ID, &report.ReporterID, &report.Title, &report.Description, &report.Status, &report.CreatedAt, &report.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan breach report: %w", err)
		}
		reports = append(reports, report)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read breach report rows: %w", err)
	}

	return reports, nil
}

func (r *breachRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE breach_reports SET status = $1, updated_at = NOW() WHERE id = $2`,
		status, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update breach status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrBreachNotFound
	}

	return nil
}

func (r *breachRepository) DeleteByReporterWithTx(ctx context.Context, tx pgx.Tx, reporterID uuid.UUID) error {
	_, err := tx.Exec(ctx, `DELETE FROM breach_reports WHERE reporter_id = $1`, reporterID)
	if err != nil {
		return fmt.Errorf("failed to delete breach reports: %w", err)
	}
	return nil
}
