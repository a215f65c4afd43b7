package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"memoir-backend/internal/domains/biography/model"
	"memoir-backend/internal/domains/biography/repository"
	mediaModel "memoir-backend/internal/domains/media/model"
	mediaRepository "memoir-backend/internal/domains/media/repository"
	"memoir-backend/internal/infrastructure/queue"
	"memoir-backend/pkg/cache"
	"memoir-backend/pkg/database"
	"memoir-backend/pkg/logger"
)

const (
	publicDetailCacheKey   = "biographies:public:detail:%s"
	publicListCachePattern = "biographies:public:list:*"
	publicListCacheKey     = "biographies:public:list:%d:%d"
	publicDetailCacheTTL   = 5 * time.Minute
	publicListCacheTTL     = 1 * time.Minute
)

type biographyService struct {
	repo         repository.Repository
	mediaRepo    mediaRepository.Repository
	pool         *pgxpool.Pool
	queueClient  *queue.Client
	cache        cache.Cache
	restrictions RestrictionChecker
}

func NewBiographyService(
	repo repository.Repository,
	mediaRepo mediaRepository.Repository,
	pool *pgxpool.Pool,
	queueClient *queue.Client,
	cacheClient cache.Cache,
	restrictions RestrictionChecker,
) Service {
	return &biographyService{
		repo:         repo,
		mediaRepo:    mediaRepo,
		pool:         pool,
		queueClient:  queueClient,
		cache:        cacheClient,
		restrictions: restrictions,
	}
}

// =====================================================
// BIOGRAPHY OPERATIONS
// =====================================================

func (s *biographyService) CreateBiography(ctx context.Context, ownerID uuid.UUID, req model.CreateBiographyRequest) (*model.BiographyResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, model.NewValidationError(err.Error())
	}
	if err := s.ensureNotRestricted(ctx, ownerID); err != nil {
		return nil, err
	}

	b := &model.Biography{
		ID:       uuid.New(),
		OwnerID:  ownerID,
		Title:    req.Title,
		Type:     model.BiographyType(req.Type),
		Content:  req.Content,
		Excerpt:  req.Excerpt,
		IsPublic: req.IsPublic,
	}

	if err := s.repo.Create(ctx, b); err != nil {
		return nil, fmt.Errorf("failed to create biography: %w", err)
	}

	s.invalidatePublicLists(ctx)

	return model.NewBiographyResponse(b, nil), nil
}

func (s *biographyService) GetBiography(ctx context.Context, viewer model.Viewer, id uuid.UUID) (*model.BiographyResponse, error) {
	b, err := s.getAccessible(ctx, viewer, id)
	if err != nil {
		return nil, err
	}

	// Public reads by non-owners are the hot path and safe to cache; owner
	// reads always hit the database so drafts are never stale.
	cacheable := b.IsPublic && !viewer.IsOwner(b)
	if cacheable {
		key := fmt.Sprintf(publicDetailCacheKey, id)
		var cached model.BiographyResponse
		if found, cacheErr := s.cache.Get(ctx, key, &cached); cacheErr == nil && found {
			return &cached, nil
		}
	}

	resp, err := s.buildResponse(ctx, b)
	if err != nil {
		return nil, err
	}

	if cacheable {
		key := fmt.Sprintf(publicDetailCacheKey, id)
		if cacheErr := s.cache.Set(ctx, key, resp, publicDetailCacheTTL); cacheErr != nil {
			logger.Error("failed to cache biography", cacheErr)
		}
	}

	return resp, nil
}

func (s *biographyService) UpdateBiography(ctx context.Context, viewer model.Viewer, id uuid.UUID, req model.UpdateBiographyRequest) (*model.BiographyResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, model.NewValidationError(err.Error())
	}

	b, err := s.getEditable(ctx, viewer, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		b.Title = *req.Title
	}
	if req.Content != nil {
		b.Content = *req.Content
	}
	if req.Excerpt != nil {
		b.Excerpt = req.Excerpt
	}
	if req.IsCompleted != nil {
		b.IsCompleted = *req.IsCompleted
	}

	if err := s.repo.Update(ctx, b); err != nil {
		return nil, s.mapRepoError(err)
	}

	s.invalidateBiography(ctx, id)

	return s.buildResponse(ctx, b)
}

func (s *biographyService) DeleteBiography(ctx context.Context, viewer model.Viewer, id uuid.UUID) error {
	b, err := s.getEditable(ctx, viewer, id)
	if err != nil {
		return err
	}

	err = database.WithTransaction(ctx, s.pool, func(tx pgx.Tx) error {
		if err := s.mediaRepo.DeleteByBiographyWithTx(ctx, tx, b.ID); err != nil {
			return err
		}
		return s.repo.DeleteWithTx(ctx, tx, b.ID)
	})
	if err != nil {
		return fmt.Errorf("failed to delete biography: %w", err)
	}

	s.invalidateBiography(ctx, id)

	// All objects of the biography share one key prefix, chapter media included.
	prefix := fmt.Sprintf("biographies/%s/", b.ID)
	if err := s.queueClient.EnqueueMediaCleanup(ctx, prefix); err != nil {
		logger.Error("failed to enqueue media cleanup", err)
	}

	return nil
}

func (s *biographyService) UpdateVisibility(ctx context.Context, viewer model.Viewer, id uuid.UUID, req model.UpdateVisibilityRequest) error {
	b, err := s.getEditable(ctx, viewer, id)
	if err != nil {
		return err
	}

	if b.IsPublic == req.IsPublic {
		return nil
	}

	if err := s.repo.UpdateVisibility(ctx, id, req.IsPublic); err != nil {
		return s.mapRepoError(err)
	}

	s.invalidateBiography(ctx, id)

	return nil
}

// =====================================================
// CHAPTER OPERATIONS
// =====================================================

func (s *biographyService) AddChapter(ctx context.Context, viewer model.Viewer, biographyID uuid.UUID, req model.AddChapterRequest) (*model.ChapterResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, asBiographyError(err)
	}

	b, err := s.getEditable(ctx, viewer, biographyID)
	if err != nil {
		return nil, err
	}
	if !b.IsChapterBased() {
		return nil, model.NewNotChapterBasedError()
	}

	ch := &model.Chapter{
		ID:          uuid.New(),
		BiographyID: biographyID,
		Title:       req.Title,
		Subtitle:    req.Subtitle,
		Content:     req.Content,
		DateFrom:    req.DateFrom,
		DateTo:      req.DateTo,
		IsOngoing:   req.IsOngoing,
		ChapterType: req.ChapterType,
	}
	if ch.IsOngoing {
		ch.DateTo = nil
	}

	if err := s.repo.CreateChapter(ctx, ch); err != nil {
		return nil, fmt.Errorf("failed to create chapter: %w", err)
	}

	s.invalidateBiography(ctx, biographyID)

	resp := model.NewChapterResponse(ch)
	return &resp, nil
}

func (s *biographyService) UpdateChapter(ctx context.Context, viewer model.Viewer, chapterID uuid.UUID, req model.UpdateChapterRequest) (*model.ChapterResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, model.NewValidationError(err.Error())
	}

	ch, err := s.getEditableChapter(ctx, viewer, chapterID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		ch.Title = *req.Title
	}
	if req.Subtitle != nil {
		ch.Subtitle = req.Subtitle
	}
	if req.Content != nil {
		ch.Content = *req.Content
	}
	if req.DateFrom != nil {
		ch.DateFrom = req.DateFrom
	}
	if req.DateTo != nil {
		ch.DateTo = req.DateTo
	}
	if req.IsOngoing != nil {
		ch.IsOngoing = *req.IsOngoing
	}
	if req.ChapterType != nil {
		ch.ChapterType = req.ChapterType
	}

	if ch.IsOngoing {
		ch.DateTo = nil
	} else if ch.DateFrom != nil && ch.DateTo != nil && ch.DateFrom.After(*ch.DateTo) {
		return nil, model.NewInvalidDateRangeError()
	}

	if err := s.repo.UpdateChapter(ctx, ch); err != nil {
		return nil, s.mapRepoError(err)
	}

	s.invalidateBiography(ctx, ch.BiographyID)

	resp := model.NewChapterResponse(ch)
	return &resp, nil
}

func (s *biographyService) DeleteChapter(ctx context.Context, viewer model.Viewer, chapterID uuid.UUID) error {
	ch, err := s.getEditableChapter(ctx, viewer, chapterID)
	if err != nil {
		return err
	}

	// Collect object keys before the rows disappear.
	keys, err := s.mediaRepo.StorageKeysByOwner(ctx, mediaModel.OwnerChapter, chapterID)
	if err != nil {
		return fmt.Errorf("failed to collect chapter media keys: %w", err)
	}

	err = database.WithTransaction(ctx, s.pool, func(tx pgx.Tx) error {
		if err := s.mediaRepo.DeleteByOwnerWithTx(ctx, tx, mediaModel.OwnerChapter, chapterID); err != nil {
			return err
		}
		return s.repo.DeleteChapterWithTx(ctx, tx, chapterID)
	})
	if err != nil {
		return fmt.Errorf("failed to delete chapter: %w", err)
	}

	s.invalidateBiography(ctx, ch.BiographyID)

	for _, key := range keys {
		if err := s.queueClient.EnqueueMediaCleanup(ctx, key); err != nil {
			logger.Error("failed to enqueue media cleanup", err)
		}
	}

	return nil
}

func (s *biographyService) ReorderChapters(ctx context.Context, viewer model.Viewer, biographyID uuid.UUID, req model.ReorderChaptersRequest) error {
	if err := req.Validate(); err != nil {
		return model.NewValidationError(err.Error())
	}

	b, err := s.getEditable(ctx, viewer, biographyID)
	if err != nil {
		return err
	}
	if !b.IsChapterBased() {
		return model.NewNotChapterBasedError()
	}

	if err := s.repo.ReorderChapters(ctx, biographyID, req.OrderedIDs); err != nil {
		return s.mapRepoError(err)
	}

	s.invalidateBiography(ctx, biographyID)

	return nil
}

// =====================================================
// LIST OPERATIONS
// =====================================================

func (s *biographyService) ListMine(ctx context.Context, ownerID uuid.UUID, req model.ListBiographiesRequest) (*model.ListBiographiesResponse, error) {
	req.Normalize()

	summaries, total, err := s.repo.ListByOwner(ctx, ownerID, req.Page, req.Limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list biographies: %w", err)
	}

	return buildListResponse(summaries, total, req.Page, req.Limit), nil
}

func (s *biographyService) ListPublic(ctx context.Context, req model.ListBiographiesRequest) (*model.ListBiographiesResponse, error) {
	req.Normalize()

	key := fmt.Sprintf(publicListCacheKey, req.Page, req.Limit)
	var cached model.ListBiographiesResponse
	if found, err := s.cache.Get(ctx, key, &cached); err == nil && found {
		return &cached, nil
	}

	summaries, total, err := s.repo.ListPublic(ctx, req.Page, req.Limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list public biographies: %w", err)
	}

	resp := buildListResponse(summaries, total, req.Page, req.Limit)
	if err := s.cache.Set(ctx, key, resp, publicListCacheTTL); err != nil {
		logger.Error("failed to cache public biography list", err)
	}

	return resp, nil
}

// =====================================================
// HELPERS
// =====================================================

// getAccessible loads the biography and enforces the view rule. A private
// biography reads as not found for anyone but its owner.
func (s *biographyService) getAccessible(ctx context.Context, viewer model.Viewer, id uuid.UUID) (*model.Biography, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapRepoError(err)
	}
	if !b.CanView(viewer) {
		return nil, model.NewBiographyNotFoundError()
	}

	// A processing restriction withholds the owner's public content from
	// everyone else; the owner keeps reading their own material.
	if !viewer.IsOwner(b) && s.restrictions != nil {
		restricted, err := s.restrictions.IsRestricted(ctx, b.OwnerID)
		if err != nil {
			return nil, fmt.Errorf("failed to check processing restriction: %w", err)
		}
		if restricted {
			return nil, model.NewBiographyNotFoundError()
		}
	}

	return b, nil
}

// getEditable loads the biography and enforces the edit rule. Viewers who can
// see the biography but not edit it get an explicit authorization failure.
func (s *biographyService) getEditable(ctx context.Context, viewer model.Viewer, id uuid.UUID) (*model.Biography, error) {
	b, err := s.getAccessible(ctx, viewer, id)
	if err != nil {
		return nil, err
	}
	if !b.CanEdit(viewer) {
		return nil, model.NewUnauthorizedError()
	}
	if err := s.ensureNotRestricted(ctx, b.OwnerID); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *biographyService) getEditableChapter(ctx context.Context, viewer model.Viewer, chapterID uuid.UUID) (*model.Chapter, error) {
	ch, err := s.repo.GetChapterByID(ctx, chapterID)
	if err != nil {
		return nil, s.mapRepoError(err)
	}
	if _, err := s.getEditable(ctx, viewer, ch.BiographyID); err != nil {
		return nil, err
	}
	return ch, nil
}

func (s *biographyService) ensureNotRestricted(ctx context.Context, userID uuid.UUID) error {
	if s.restrictions == nil {
		return nil
	}
	restricted, err := s.restrictions.IsRestricted(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to check processing restriction: %w", err)
	}
	if restricted {
		return model.NewProcessingRestrictedError()
	}
	return nil
}

func (s *biographyService) buildResponse(ctx context.Context, b *model.Biography) (*model.BiographyResponse, error) {
	var chapters []model.Chapter
	if b.IsChapterBased() {
		var err error
		chapters, err = s.repo.GetChaptersByBiographyID(ctx, b.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to load chapters: %w", err)
		}
	}
	return model.NewBiographyResponse(b, chapters), nil
}

func (s *biographyService) invalidateBiography(ctx context.Context, id uuid.UUID) {
	if err := s.cache.Delete(ctx, fmt.Sprintf(publicDetailCacheKey, id)); err != nil {
		logger.Error("failed to invalidate biography cache", err)
	}
	s.invalidatePublicLists(ctx)
}

func (s *biographyService) invalidatePublicLists(ctx context.Context) {
	if err := s.cache.DeletePattern(ctx, publicListCachePattern); err != nil {
		logger.Error("failed to invalidate public list cache", err)
	}
}

func (s *biographyService) mapRepoError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, model.ErrBiographyNotFound):
		return model.NewBiographyNotFoundError()
	case errors.Is(err, model.ErrChapterNotFound):
		return model.NewChapterNotFoundError()
	default:
		return err
	}
}

// asBiographyError keeps typed validation errors intact and wraps the rest.
func asBiographyError(err error) error {
	if be, ok := err.(*model.BiographyError); ok {
		return be
	}
	return model.NewValidationError(err.Error())
}

func buildListResponse(summaries []model.BiographySummary, total, page, limit int) *model.ListBiographiesResponse {
	if summaries == nil {
		summaries = []model.BiographySummary{}
	}

	totalPages := (total + limit - 1) / limit
	return &model.ListBiographiesResponse{
		Biographies: summaries,
		Pagination: model.PaginationMeta{
			Page:       page,
			Limit:      limit,
			Total:      total,
			TotalPages: totalPages,
			HasNext:    page < totalPages,
			HasPrev:    page > 1,
		},
	}
}
