package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"memoir-backend/internal/domains/media/model"
	"memoir-backend/pkg/database"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

const mediaColumns = `
    id, biography_id, owner_type, owner_id, collection,
    mime_type, caption, alt_text, file_size_bytes,
    storage_key, original_url, conversion_urls,
    status, error_message, sort_order, created_at, updated_at, deleted_at
`

func scanMedia(row pgx.Row) (*model.Media, error) {
	m := &model.Media{}
	err := row.Scan(
		&m.ID,
		&m.BiographyID,
		&m.OwnerType,
		&m.OwnerID,
		&m.Collection,
		&m.MimeType,
		&m.Caption,
		&m.AltText,
		&m.FileSizeBytes,
		&m.StorageKey,
		&m.OriginalURL,
		&m.ConversionURLs,
		&m.Status,
		&m.ErrorMessage,
		&m.SortOrder,
		&m.CreatedAt,
		&m.UpdatedAt,
		&m.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	return m, nil
}

// Attach inserts the item and, for singleton collections, supersedes the
// current active item in the same transaction.
func (r *postgresRepository) Attach(ctx context.Context, m *model.Media) error {
	return database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		return r.attachInTx(ctx, tx, m)
	})
}

func (r *postgresRepository) attachInTx(ctx context.Context, tx pgx.Tx, m *model.Media) error {
	if m.Collection.Singleton() {
		_, err := tx.Exec(ctx, `
            UPDATE media SET deleted_at = NOW(), updated_at = NOW()
            WHERE owner_type = $1 AND owner_id = $2 AND collection = $3 AND deleted_at IS NULL
        `, m.OwnerType, m.OwnerID, m.Collection)
		if err != nil {
			return fmt.Errorf("failed to supersede previous item: %w", err)
		}
	}

	var next int
	err := tx.QueryRow(ctx, `
        SELECT COALESCE(MAX(sort_order) + 1, 0) FROM media
        WHERE owner_type = $1 AND owner_id = $2 AND collection = $3 AND deleted_at IS NULL
    `, m.OwnerType, m.OwnerID, m.Collection).Scan(&next)
	if err != nil {
		return fmt.Errorf("failed to get next sort order: %w", err)
	}

	m.SortOrder = next
	now := time.Now()
	m.CreatedAt = now
	m.UpdatedAt = now

	query := `
        INSERT INTO media (
            id, biography_id, owner_type, owner_id, collection,
            mime_type, caption, alt_text, file_size_bytes,
            storage_key, original_url, conversion_urls,
            status, sort_order, created_at, updated_at
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
    `

	_, err = tx.Exec(ctx, query,
		m.ID,
		m.BiographyID,
		m.OwnerType,
		m.OwnerID,
		m.Collection,
		m.MimeType,
		m.Caption,
		m.AltText,
		m.FileSizeBytes,
		m.StorageKey,
		m.OriginalURL,
		m.ConversionURLs,
		m.Status,
		m.SortOrder,
		m.CreatedAt,
		m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create media: %w", err)
	}

	return nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Media, error) {
	query := fmt.Sprintf(`SELECT %s FROM media WHERE id = $1`, mediaColumns)

	m, err := scanMedia(r.pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, model.ErrMediaNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get media: %w", err)
	}

	return m, nil
}

func (r *postgresRepository) ListByOwner(ctx context.Context, ownerType model.OwnerType, ownerID uuid.UUID, collection *model.Collection) ([]model.Media, error) {
	query := fmt.Sprintf(`
        SELECT %s FROM media
        WHERE owner_type = $1 AND owner_id = $2 AND deleted_at IS NULL
    `, mediaColumns)
	args := []interface{}{ownerType, ownerID}

	if collection != nil {
		query += ` AND collection = $3`
		args = append(args, *collection)
	}
	query += ` ORDER BY sort_order ASC, created_at ASC`

	return r.queryMedia(ctx, query, args...)
}

func (r *postgresRepository) ListByBiographyID(ctx context.Context, biographyID uuid.UUID) ([]model.Media, error) {
	query := fmt.Sprintf(`
        SELECT %s FROM media
        WHERE biography_id = $1 AND deleted_at IS NULL
        ORDER BY sort_order ASC, created_at ASC
    `, mediaColumns)

	return r.queryMedia(ctx, query, biographyID)
}

func (r *postgresRepository) queryMedia(ctx context.Context, query string, args ...interface{}) ([]model.Media, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query media: %w", err)
	}
	return collectMedia(rows)
}

// collectMedia drains the result set. A mid-stream query failure surfaces via
// rows.Err, so a truncated set is never mistaken for a complete one.
func collectMedia(rows pgx.Rows) ([]model.Media, error) {
	defer rows.Close()

	var items []model.Media
	for rows.Next() {
		m, err := scanMedia(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan media: %w", err)
		}
		items = append(items, *m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read media rows: %w", err)
	}

	return items, nil
}

func (r *postgresRepository) Update(ctx context.Context, m *model.Media) error {
	query := `
        UPDATE media SET
            caption = $1,
            alt_text = $2,
            updated_at = NOW()
        WHERE id = $3 AND deleted_at IS NULL
    `

	tag, err := r.pool.Exec(ctx, query, m.Caption, m.AltText, m.ID)
	if err != nil {
		return fmt.Errorf("failed to update media: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrMediaNotFound
	}

	return nil
}

func (r *postgresRepository) UpdateConversions(ctx context.Context, id uuid.UUID, conversions map[string]string) error {
	query := `
        UPDATE media SET
            conversion_urls = $1,
            status = $2,
            updated_at = NOW()
        WHERE id = $3
    `

	_, err := r.pool.Exec(ctx, query, conversions, model.StatusReady, id)
	if err != nil {
		return fmt.Errorf("failed to update conversions: %w", err)
	}

	return nil
}

func (r *postgresRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string, errorMsg string) error {
	query := `
        UPDATE media SET
            status = $1,
            error_message = $2,
            updated_at = NOW()
        WHERE id = $3
    `

	var errMsgPtr *string
	if errorMsg != "" {
		errMsgPtr = &errorMsg
	}

	_, err := r.pool.Exec(ctx, query, status, errMsgPtr, id)
	if err != nil {
		return fmt.Errorf("failed to update status: %w", err)
	}

	return nil
}

func (r *postgresRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE media SET deleted_at = NOW(), updated_at = NOW() WHERE id = $1 AND deleted_at IS NULL`

	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete media: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrMediaNotFound
	}

	return nil
}

func (r *postgresRepository) StorageKeysByOwner(ctx context.Context, ownerType model.OwnerType, ownerID uuid.UUID) ([]string, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT storage_key FROM media WHERE owner_type = $1 AND owner_id = $2`,
		ownerType, ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query storage keys: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("failed to scan storage key: %w", err)
		}
		keys = append(keys, key)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read storage key rows: %w", err)
	}

	return keys, nil
}

func (r *postgresRepository) DeleteByOwnerWithTx(ctx context.Context, tx pgx.Tx, ownerType model.OwnerType, ownerID uuid.UUID) error {
	_, err := tx.Exec(ctx, `DELETE FROM media WHERE owner_type = $1 AND owner_id = $2`, ownerType, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete media: %w", err)
	}
	return nil
}

func (r *postgresRepository) DeleteByBiographyWithTx(ctx context.Context, tx pgx.Tx, biographyID uuid.UUID) error {
	_, err := tx.Exec(ctx, `DELETE FROM media WHERE biography_id = $1`, biographyID)
	if err != nil {
		return fmt.Errorf("failed to delete media: %w", err)
	}
	return nil
}

func (r *postgresRepository) PurgeDeletedBefore(ctx context.Context, cutoff time.Time) ([]string, error) {
	return database.WithTransactionResult(ctx, r.pool, func(tx pgx.Tx) ([]string, error) {
		rows, err := tx.Query(ctx,
			`SELECT storage_key FROM media WHERE deleted_at IS NOT NULL AND deleted_at < $1 FOR UPDATE`,
			cutoff,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to query purgeable media: %w", err)
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
			return nil, fmt.Errorf("failed to read purgeable media rows: %w", err)
		}

		_, err = tx.Exec(ctx, `DELETE FROM media WHERE deleted_at IS NOT NULL AND deleted_at < $1`, cutoff)
		if err != nil {
			return nil, fmt.Errorf("failed to purge media: %w", err)
		}

		return keys, nil
	})
}
