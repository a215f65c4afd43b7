package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"memoir-backend/internal/domains/media/model"
)

// Repository is the data access contract for media items.
type Repository interface {
	// Attach inserts the media item. For singleton collections the current
	// active item is soft-deleted in the same transaction so exactly one
	// item survives the commit.
	Attach(ctx context.Context, m *model.Media) error

	GetByID(ctx context.Context, id uuid.UUID) (*model.Media, error)

	// ListByOwner returns active items for the owner in attachment order.
	// A nil collection means all collections.
	ListByOwner(ctx context.Context, ownerType model.OwnerType, ownerID uuid.UUID, collection *model.Collection) ([]model.Media, error)

	ListByBiographyID(ctx context.Context, biographyID uuid.UUID) ([]model.Media, error)

	Update(ctx context.Context, m *model.Media) error
	UpdateConversions(ctx context.Context, id uuid.UUID, conversions map[string]string) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status string, errorMsg string) error

	SoftDelete(ctx context.Context, id uuid.UUID) error

	// StorageKeysByOwner returns key bases for every item of the owner,
	// soft-deleted ones included, so object cleanup can cover them all.
	StorageKeysByOwner(ctx context.Context, ownerType model.OwnerType, ownerID uuid.UUID) ([]string, error)

	// DeleteByOwnerWithTx hard-deletes the owner's media rows inside the
	// given transaction.
	DeleteByOwnerWithTx(ctx context.Context, tx pgx.Tx, ownerType model.OwnerType, ownerID uuid.UUID) error

	// DeleteByBiographyWithTx hard-deletes every media row under a biography,
	// chapter media included.
	DeleteByBiographyWithTx(ctx context.Context, tx pgx.Tx, biographyID uuid.UUID) error

	// PurgeDeletedBefore removes soft-deleted rows older than the cutoff and
	// returns their storage key bases for object cleanup.
	PurgeDeletedBefore(ctx context.Context, cutoff time.Time) ([]string, error)
}
