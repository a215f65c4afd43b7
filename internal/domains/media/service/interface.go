package service

import (
	"context"

	"github.com/google/uuid"

	biographyModel "memoir-backend/internal/domains/biography/model"
	"memoir-backend/internal/domains/media/model"
)

// Service is the business logic contract for media.
type Service interface {
	// AttachMedia validates the upload, stores the original, applies the
	// collection cardinality rule and schedules conversion generation.
	AttachMedia(ctx context.Context, viewer biographyModel.Viewer, req model.AttachMediaRequest, data []byte) (*model.MediaResponse, error)

	// GetMedia returns active items for an owner in attachment order.
	GetMedia(ctx context.Context, viewer biographyModel.Viewer, ownerType model.OwnerType, ownerID uuid.UUID, collection *model.Collection) ([]model.MediaResponse, error)

	UpdateMedia(ctx context.Context, viewer biographyModel.Viewer, id uuid.UUID, req model.UpdateMediaRequest) (*model.MediaResponse, error)

	// DeleteMedia soft-deletes the item and schedules object cleanup.
	DeleteMedia(ctx context.Context, viewer biographyModel.Viewer, id uuid.UUID) error

	// ResolveRendition returns the URL for a named conversion, falling back
	// to the original when the conversion is absent.
	ResolveRendition(ctx context.Context, viewer biographyModel.Viewer, id uuid.UUID, conversion string) (string, error)

	// Worker entry points.
	ProcessConversions(ctx context.Context, mediaID uuid.UUID) error
	CleanupObjects(ctx context.Context, storageKeyPrefix string) error
	PurgeDeleted(ctx context.Context, olderThanDays int) error
}
