package service

import (
	"context"

	"github.com/google/uuid"

	"memoir-backend/internal/domains/biography/model"
)

// Service is the business logic contract for biographies.
type Service interface {
	CreateBiography(ctx context.Context, ownerID uuid.UUID, req model.CreateBiographyRequest) (*model.BiographyResponse, error)

	// GetBiography resolves access for the viewer. Private biographies are
	// indistinguishable from missing ones for non-owners.
	GetBiography(ctx context.Context, viewer model.Viewer, id uuid.UUID) (*model.BiographyResponse, error)

	UpdateBiography(ctx context.Context, viewer model.Viewer, id uuid.UUID, req model.UpdateBiographyRequest) (*model.BiographyResponse, error)

	// DeleteBiography removes the biography, its chapters and every media row
	// in one transaction, then schedules stored object cleanup.
	DeleteBiography(ctx context.Context, viewer model.Viewer, id uuid.UUID) error

	UpdateVisibility(ctx context.Context, viewer model.Viewer, id uuid.UUID, req model.UpdateVisibilityRequest) error

	AddChapter(ctx context.Context, viewer model.Viewer, biographyID uuid.UUID, req model.AddChapterRequest) (*model.ChapterResponse, error)
	UpdateChapter(ctx context.Context, viewer model.Viewer, chapterID uuid.UUID, req model.UpdateChapterRequest) (*model.ChapterResponse, error)
	DeleteChapter(ctx context.Context, viewer model.Viewer, chapterID uuid.UUID) error
	ReorderChapters(ctx context.Context, viewer model.Viewer, biographyID uuid.UUID, req model.ReorderChaptersRequest) error

	ListMine(ctx context.Context, ownerID uuid.UUID, req model.ListBiographiesRequest) (*model.ListBiographiesResponse, error)
	ListPublic(ctx context.Context, req model.ListBiographiesRequest) (*model.ListBiographiesResponse, error)
}

// RestrictionChecker reports whether a user has an active processing
// restriction. Implemented by the compliance domain; restricted accounts
// cannot mutate their content until the restriction is lifted.
type RestrictionChecker interface {
	IsRestricted(ctx context.Context, userID uuid.UUID) (bool, error)
}
