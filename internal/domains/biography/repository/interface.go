package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"memoir-backend/internal/domains/biography/model"
)

// Repository is the data access contract for biographies and their chapters.
type Repository interface {
	Create(ctx context.Context, b *model.Biography) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Biography, error)
	Update(ctx context.Context, b *model.Biography) error
	UpdateVisibility(ctx context.Context, id uuid.UUID, isPublic bool) error

	// DeleteWithTx removes the biography and its chapters inside the given
	// transaction so callers can include media rows in the same commit.
	DeleteWithTx(ctx context.Context, tx pgx.Tx, id uuid.UUID) error

	ListByOwner(ctx context.Context, ownerID uuid.UUID, page, limit int) ([]model.BiographySummary, int, error)
	ListPublic(ctx context.Context, page, limit int) ([]model.BiographySummary, int, error)
	ListIDsByOwner(ctx context.Context, ownerID uuid.UUID) ([]uuid.UUID, error)

	CreateChapter(ctx context.Context, ch *model.Chapter) error
	GetChapterByID(ctx context.Context, id uuid.UUID) (*model.Chapter, error)
	GetChaptersByBiographyID(ctx context.Context, biographyID uuid.UUID) ([]model.Chapter, error)
	UpdateChapter(ctx context.Context, ch *model.Chapter) error

	// DeleteChapterWithTx removes the chapter inside the given transaction so
	// callers can include the chapter's media rows in the same commit.
	DeleteChapterWithTx(ctx context.Context, tx pgx.Tx, id uuid.UUID) error
	ReorderChapters(ctx context.Context, biographyID uuid.UUID, orderedIDs []uuid.UUID) error
}
