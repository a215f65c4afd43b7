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
	"memoir-backend/pkg/database"
)

type exportRepository struct {
	pool *pgxpool.Pool
}

func NewExportRepository(pool *pgxpool.Pool) ExportRepository {
	return &exportRepository{pool: pool}
}

const exportColumns = `
    id, user_id, status, storage_key, file_url, error_message,
    expires_at, completed_at, created_at
`

func scanExport(row pgx.Row) (*model.DataExportRequest, error) {
	req := &model.DataExportRequest{}
	err := row.Scan(
		&req.ID,
		&req.UserID,
		&req.Status,
		&req.StorageKey,
		&req.FileURL,
		&req.ErrorMessage,
		&req.ExpiresAt,
		&req.CompletedAt,
		&req.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return req, nil
}

func (r *exportRepository) Create(ctx context.Context, req *model.DataExportRequest) error {
	req.CreatedAt = time.Now()

	_, err := r.pool.Exec(ctx, `
        INSERT INTO data_export_requests (id, user_id, status, created_at)
        VALUES ($1, $2, $3, $4)
    `, req.ID, req.UserID, req.Status, req.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create export request: %w", err)
	}

	return nil
}

func (r *exportRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.DataExportRequest, error) {
	query := fmt.Sprintf(`SELECT %s FROM data_export_requests WHERE id = $1`, exportColumns)

	req, err := scanExport(r.pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, model.ErrExportNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get export request: %w", err)
	}

	return req, nil
}

func (r *exportRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.DataExportRequest, error) {
	query := fmt.Sprintf(`
        SELECT %s FROM data_export_requests
        WHERE user_id = $1
        ORDER BY created_at DESC
    `, exportColumns)

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query export requests: %w", err)
	}
	defer rows.Close()

	var requests []model.DataExportRequest
	for rows.Next() {
		req, err := scanExport(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan export request: %w", err)
		}
		requests = append(requests, *req)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read export rows: %w", err)
	}

	return requests, nil
}

func (r *exportRepository) HasOpen(ctx context.Context, userID uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `
        SELECT EXISTS(
            SELECT 1 FROM data_export_requests
            WHERE user_id = $1 AND status IN ($2, $3)
        )
    `, userID, model.ExportStatusPending, model.ExportStatusProcessing).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check open exports: %w", err)
	}

	return exists, nil
}

func (r *exportRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string, errorMsg string) error {
	var errMsgPtr *string
	if errorMsg != "" {
		errMsgPtr = &errorMsg
	}

	_, err := r.pool.Exec(ctx, `
        UPDATE data_export_requests SET status = $1, error_message = $2 WHERE id = $3
    `, status, errMsgPtr, id)
	if err != nil {
		return fmt.Errorf("failed to update export status: %w", err)
	}

	return nil
}

func (r *exportRepository) MarkReady(ctx context.Context, id uuid.UUID, storageKey, fileURL string, expiresAt time.Time) error {
	_, err := r.pool.Exec(ctx, `
        UPDATE data_export_requests SET
            status = $1,
            storage_key = $2,
            file_url = $3,
            expires_at = $4,
            completed_at = NOW()
        WHERE id = $5
    `, model.ExportStatusReady, storageKey, fileURL, expiresAt, id)
	if err != nil {
		return fmt.Errorf("failed to mark export ready: %w", err)
	}

	return nil
}

func (r *exportRepository) PurgeExpired(ctx context.Context, now time.Time) ([]string, error) {
	return database.WithTransactionResult(ctx, r.pool, func(tx pgx.Tx) ([]string, error) {
		rows, err := tx.Query(ctx, `
            SELECT storage_key FROM data_export_requests
            WHERE expires_at IS NOT NULL AND expires_at < $1 AND storage_key IS NOT NULL
            FOR UPDATE
        `, now)
		if err != nil {
			return nil, fmt.Errorf("failed to query expired exports: %w", err)
		}

		var keys []string
		for rows.Next() {
			var key string
			if err := rows.Scan(&key); err != nil {
				rows.Close()
				return nil, fmt.Errorf("failed to scan storage key: %w", err)
			}
			keys = append(keys, key)
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("failed to read expired export rows: %w", err)
		}

		_, err = tx.Exec(ctx, `
            DELETE FROM data_export_requests
            WHERE expires_at IS NOT NULL AND expires_at < $1
        `, now)
		if err != nil {
			return nil, fmt.Errorf("failed to purge expired exports: %w", err)
		}

		return keys, nil
	})
}

func (r *exportRepository) DeleteByUserWithTx(ctx context.Context, tx pgx.Tx, userID uuid.UUID) ([]string, error) {
	rows, err := tx.Query(ctx, `
        SELECT storage_key FROM data_export_requests
        WHERE user_id = $1 AND storage_key IS NOT NULL
    `, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query export keys: %w", err)
	}

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan storage key: %w", err)
		}
		keys = append(keys, key)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read export key rows: %w", err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM data_export_requests WHERE user_id = $1`, userID); err != nil {
		return nil, fmt.Errorf("failed to delete export requests: %w", err)
	}

	return keys, nil
}
