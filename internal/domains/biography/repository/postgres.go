package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"memoir-backend/internal/domains/biography/model"
	"memoir-backend/pkg/database"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

// =====================================================
// BIOGRAPHIES
// =====================================================

func (r *postgresRepository) Create(ctx context.Context, b *model.Biography) error {
	query := `
        INSERT INTO biographies (
            id, owner_id, title, type, content, excerpt,
            is_public, is_completed, created_at, updated_at
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
    `

	now := time.Now()
	b.CreatedAt = now
	b.UpdatedAt = now

	_, err := r.pool.Exec(ctx, query,
		b.ID,
		b.OwnerID,
		b.Title,
		b.Type,
		b.Content,
		b.Excerpt,
		b.IsPublic,
		b.IsCompleted,
		b.CreatedAt,
		b.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create biography: %w", err)
	}

	return nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Biography, error) {
	query := `
        SELECT id, owner_id, title, type, content, excerpt,
               is_public, is_completed, created_at, updated_at
        FROM biographies
        WHERE id = $1
    `

	b := &model.Biography{}
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&b.ID,
		&b.OwnerID,
		&b.Title,
		&b.Type,
		&b.Content,
		&b.Excerpt,
		&b.IsPublic,
		&b.IsCompleted,
		&b.CreatedAt,
		&b.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, model.ErrBiographyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get biography: %w", err)
	}

	return b, nil
}

func (r *postgresRepository) Update(ctx context.Context, b *model.Biography) error {
	query := `
        UPDATE biographies SET
            title = $1,
            content = $2,
            excerpt = $3,
            is_completed = $4,
            updated_at = NOW()
        WHERE id = $5
    `

	tag, err := r.pool.Exec(ctx, query,
		b.Title,
		b.Content,
		b.Excerpt,
		b.IsCompleted,
		b.ID,
	)

	if err != nil {
		return fmt.Errorf("failed to update biography: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrBiographyNotFound
	}

	return nil
}

func (r *postgresRepository) UpdateVisibility(ctx context.Context, id uuid.UUID, isPublic bool) error {
	query := `UPDATE biographies SET is_public = $1, updated_at = NOW() WHERE id = $2`

	tag, err := r.pool.Exec(ctx, query, isPublic, id)
	if err != nil {
		return fmt.Errorf("failed to update visibility: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrBiographyNotFound
	}

	return nil
}

// DeleteWithTx deletes the biography and its chapters. Media rows are removed
// by the caller within the same transaction so the whole subtree commits
// together.
func (r *postgresRepository) DeleteWithTx(ctx context.Context, tx pgx.Tx, id uuid.UUID) error {
	if _, err := tx.Exec(ctx, `DELETE FROM chapters WHERE biography_id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete chapters: %w", err)
	}

	tag, err := tx.Exec(ctx, `DELETE FROM biographies WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete biography: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrBiographyNotFound
	}

	return nil
}

func (r *postgresRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID, page, limit int) ([]model.BiographySummary, int, error) {
	return r.list(ctx, `b.owner_id = $1`, []interface{}{ownerID}, page, limit)
}

func (r *postgresRepository) ListPublic(ctx context.Context, page, limit int) ([]model.BiographySummary, int, error) {
	// Owners under an active processing restriction are withheld from the
	// public listing until the restriction is lifted.
	where := `b.is_public = TRUE
          AND b.owner_id NOT IN (SELECT user_id FROM processing_restrictions WHERE active = TRUE)`
	return r.list(ctx, where, nil, page, limit)
}

func (r *postgresRepository) list(ctx context.Context, where string, args []interface{}, page, limit int) ([]model.BiographySummary, int, error) {
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM biographies b WHERE %s`, where)

	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count biographies: %w", err)
	}

	query := fmt.Sprintf(`
        SELECT b.id, b.owner_id, b.title, b.type, b.excerpt,
               b.is_public, b.is_completed, COUNT(c.id), b.updated_at
        FROM biographies b
        LEFT JOIN chapters c ON c.biography_id = b.id
        WHERE %s
        GROUP BY b.id
        ORDER BY b.updated_at DESC
        LIMIT $%d OFFSET $%d
    `, where, len(args)+1, len(args)+2)

	args = append(args, limit, (page-1)*limit)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query biographies: %w", err)
	}
	defer rows.Close()

	var summaries []model.BiographySummary
	for rows.Next() {
		var s model.BiographySummary
		err := rows.Scan(
			&s.ID,
			&s.OwnerID,
			&s.Title,
			&s.Type,
			&s.Excerpt,
			&s.IsPublic,
			&s.IsCompleted,
			&s.ChapterCount,
			&s.UpdatedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan biography summary: %w", err)
		}
		summaries = append(summaries, s)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to read biography rows: %w", err)
	}

	return summaries, total, nil
}

func (r *postgresRepository) ListIDsByOwner(ctx context.Context, ownerID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := r.pool.Query(ctx, `SELECT id FROM biographies WHERE owner_id = $1`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query biography ids: %w", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan biography id: %w", err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read biography id rows: %w", err)
	}

	return ids, nil
}

// =====================================================
// CHAPTERS
// =====================================================

// CreateChapter appends the chapter at the end of the sort order. The next
// position is taken inside a transaction so concurrent appends cannot collide.
func (r *postgresRepository) CreateChapter(ctx context.Context, ch *model.Chapter) error {
	return database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		var next int
		err := tx.QueryRow(ctx,
			`SELECT COALESCE(MAX(sort_order) + 1, 0) FROM chapters WHERE biography_id = $1`,
			ch.BiographyID,
		).Scan(&next)
		if err != nil {
			return fmt.Errorf("failed to get next sort order: %w", err)
		}

		ch.SortOrder = next
		now := time.Now()
		ch.CreatedAt = now
		ch.UpdatedAt = now

		query := `
            INSERT INTO chapters (
                id, biography_id, title, subtitle, content,
                date_from, date_to, is_ongoing, chapter_type,
                sort_order, created_at, updated_at
            ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
        `

		_, err = tx.Exec(ctx, query,
			ch.ID,
			ch.BiographyID,
			ch.Title,
			ch.Subtitle,
			ch.Content,
			ch.DateFrom,
			ch.DateTo,
			ch.IsOngoing,
			ch.ChapterType,
			ch.SortOrder,
			ch.CreatedAt,
			ch.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to create chapter: %w", err)
		}

		return nil
	})
}

func (r *postgresRepository) GetChapterByID(ctx context.Context, id uuid.UUID) (*model.Chapter, error) {
	query := `
        SELECT id, biography_id, title, subtitle, content,
               date_from, date_to, is_ongoing, chapter_type,
               sort_order, created_at, updated_at
        FROM chapters
        WHERE id = $1
    `

	ch := &model.Chapter{}
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&ch.ID,
		&ch.BiographyID,
		&ch.Title,
		&ch.Subtitle,
		&ch.Content,
		&ch.DateFrom,
		&ch.DateTo,
		&ch.IsOngoing,
		&ch.ChapterType,
		&ch.SortOrder,
		&ch.CreatedAt,
		&ch.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, model.ErrChapterNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get chapter: %w", err)
	}

	return ch, nil
}

func (r *postgresRepository) GetChaptersByBiographyID(ctx context.Context, biographyID uuid.UUID) ([]model.Chapter, error) {
	query := `
        SELECT id, biography_id, title, subtitle, content,
               date_from, date_to, is_ongoing, chapter_type,
               sort_order, created_at, updated_at
        FROM chapters
        WHERE biography_id = $1
        ORDER BY sort_order ASC
    `

	rows, err := r.pool.Query(ctx, query, biographyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query chapters: %w", err)
	}
	defer rows.Close()

	var chapters []model.Chapter
	for rows.Next() {
		var ch model.Chapter
		err := rows.Scan(
			&ch.ID,
			&ch.BiographyID,
			&ch.Title,
			&ch.Subtitle,
			&ch.Content,
			&ch.DateFrom,
			&ch.DateTo,
			&ch.IsOngoing,
			&ch.ChapterType,
			&ch.SortOrder,
			&ch.CreatedAt,
			&ch.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan chapter: %w", err)
		}
		chapters = append(chapters, ch)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read chapter rows: %w", err)
	}

	return chapters, nil
}

func (r *postgresRepository) UpdateChapter(ctx context.Context, ch *model.Chapter) error {
	query := `
        UPDATE chapters SET
            title = $1,
            subtitle = $2,
            content = $3,
            date_from = $4,
            date_to = $5,
            is_ongoing = $6,
            chapter_type = $7,
            updated_at = NOW()
        WHERE id = $8
    `

	tag, err := r.pool.Exec(ctx, query,
		ch.Title,
		ch.Subtitle,
		ch.Content,
		ch.DateFrom,
		ch.DateTo,
		ch.IsOngoing,
		ch.ChapterType,
		ch.ID,
	)

	if err != nil {
		return fmt.Errorf("failed to update chapter: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrChapterNotFound
	}

	return nil
}

func (r *postgresRepository) DeleteChapterWithTx(ctx context.Context, tx pgx.Tx, id uuid.UUID) error {
	tag, err := tx.Exec(ctx, `DELETE FROM chapters WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete chapter: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrChapterNotFound
	}

	return nil
}

// ReorderChapters rewrites sort_order to match orderedIDs. The list must be a
// permutation of the biography's chapters; any foreign id fails the whole
// transaction.
func (r *postgresRepository) ReorderChapters(ctx context.Context, biographyID uuid.UUID, orderedIDs []uuid.UUID) error {
	return database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, `SELECT id FROM chapters WHERE biography_id = $1 FOR UPDATE`, biographyID)
		if err != nil {
			return fmt.Errorf("failed to lock chapters: %w", err)
		}

		existing := make(map[uuid.UUID]bool)
		for rows.Next() {
			var id uuid.UUID
			if err := rows.Scan(&id); err != nil {
				rows.Close()
				return fmt.Errorf("failed to scan chapter id: %w", err)
			}
			existing[id] = true
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return fmt.Errorf("failed to read chapter id rows: %w", err)
		}

		seen := make(map[uuid.UUID]bool, len(orderedIDs))
		for _, id := range orderedIDs {
			if !existing[id] {
				return model.ErrChapterNotFound
			}
			if seen[id] {
				return model.NewValidationError("Ordered IDs must not contain duplicates")
			}
			seen[id] = true
		}
		if len(orderedIDs) != len(existing) {
			return model.NewValidationError("Ordered IDs must include every chapter exactly once")
		}

		for position, id := range orderedIDs {
			_, err := tx.Exec(ctx,
				`UPDATE chapters SET sort_order = $1, updated_at = NOW() WHERE id = $2`,
				position, id,
			)
			if err != nil {
				return fmt.Errorf("failed to update sort order: %w", err)
			}
		}

		return nil
	})
}
