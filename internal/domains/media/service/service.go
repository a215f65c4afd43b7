package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	biographyModel "memoir-backend/internal/domains/biography/model"
	biographyRepository "memoir-backend/internal/domains/biography/repository"
	"memoir-backend/internal/domains/media/model"
	"memoir-backend/internal/domains/media/repository"
	"memoir-backend/internal/infrastructure/queue"
	"memoir-backend/internal/infrastructure/storage"
	"memoir-backend/pkg/logger"
)

type mediaService struct {
	repo          repository.Repository
	biographyRepo biographyRepository.Repository
	storage       *storage.MinIOStorage
	processor     *storage.ImageProcessor
	queueClient   *queue.Client
}

func NewMediaService(
	repo repository.Repository,
	biographyRepo biographyRepository.Repository,
	minioStorage *storage.MinIOStorage,
	processor *storage.ImageProcessor,
	queueClient *queue.Client,
) Service {
	return &mediaService{
		repo:          repo,
		biographyRepo: biographyRepo,
		storage:       minioStorage,
		processor:     processor,
		queueClient:   queueClient,
	}
}

// =====================================================
// UPLOAD
// =====================================================

func (s *mediaService) AttachMedia(ctx context.Context, viewer biographyModel.Viewer, req model.AttachMediaRequest, data []byte) (*model.MediaResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, model.NewValidationError(err.Error())
	}
	if int64(len(data)) > model.MaxUploadSize {
		return nil, model.NewFileTooLargeError()
	}

	ownerID, err := uuid.Parse(req.OwnerID)
	if err != nil {
		return nil, model.NewValidationError("Owner ID must be a valid UUID")
	}

	ownerType := model.OwnerType(req.OwnerType)
	collection := model.Collection(req.Collection)
	if !collection.AllowedFor(ownerType) {
		return nil, model.NewInvalidCollectionError(
			fmt.Sprintf("Collection %s cannot be attached to a %s", collection, ownerType),
		)
	}

	biography, err := s.resolveOwner(ctx, ownerType, ownerID)
	if err != nil {
		return nil, err
	}
	if !biography.CanEdit(viewer) {
		return nil, model.NewUnauthorizedError()
	}

	mimeType, isImage, err := s.processor.ValidateUpload(data)
	if err != nil {
		return nil, model.NewInvalidFileError(err.Error())
	}

	mediaID := uuid.New()
	keyBase := fmt.Sprintf("biographies/%s/%s", biography.ID, mediaID)
	originalKey := fmt.Sprintf("%s_original.%s", keyBase, extForMime(mimeType))

	originalURL, err := s.storage.Upload(ctx, originalKey, data, mimeType)
	if err != nil {
		return nil, fmt.Errorf("failed to store original: %w", err)
	}

	// Videos get no renditions; lookups serve the original directly.
	status := model.StatusPending
	if !isImage {
		status = model.StatusReady
	}

	m := &model.Media{
		ID:             mediaID,
		BiographyID:    biography.ID,
		OwnerType:      ownerType,
		OwnerID:        ownerID,
		Collection:     collection,
		MimeType:       mimeType,
		Caption:        req.Caption,
		AltText:        req.AltText,
		FileSizeBytes:  int64(len(data)),
		StorageKey:     keyBase,
		OriginalURL:    originalURL,
		ConversionURLs: map[string]string{},
		Status:         status,
	}

	if err := s.repo.Attach(ctx, m); err != nil {
		// The row never existed, so remove the orphaned object.
		if cleanupErr := s.storage.Delete(ctx, originalKey); cleanupErr != nil {
			logger.Error("failed to remove orphaned upload", cleanupErr)
		}
		return nil, fmt.Errorf("failed to attach media: %w", err)
	}

	// Rendition lookups fall back to the original until the worker finishes,
	// so a failed enqueue degrades quality, not correctness.
	if isImage {
		if err := s.queueClient.EnqueueMediaConversions(ctx, mediaID.String()); err != nil {
			logger.Error("failed to enqueue media conversions", err)
		}
	}

	return model.NewMediaResponse(m), nil
}

// =====================================================
// READ / UPDATE / DELETE
// =====================================================

func (s *mediaService) GetMedia(ctx context.Context, viewer biographyModel.Viewer, ownerType model.OwnerType, ownerID uuid.UUID, collection *model.Collection) ([]model.MediaResponse, error) {
	if !ownerType.Valid() {
		return nil, model.NewValidationError("Owner type must be biography or chapter")
	}
	if collection != nil && !collection.Valid() {
		return nil, model.NewInvalidCollectionError("Unknown media collection")
	}

	biography, err := s.resolveOwner(ctx, ownerType, ownerID)
	if err != nil {
		return nil, err
	}
	if !biography.CanView(viewer) {
		return nil, model.NewOwnerNotFoundError()
	}

	items, err := s.repo.ListByOwner(ctx, ownerType, ownerID, collection)
	if err != nil {
		return nil, fmt.Errorf("failed to list media: %w", err)
	}

	responses := make([]model.MediaResponse, 0, len(items))
	for i := range items {
		responses = append(responses, *model.NewMediaResponse(&items[i]))
	}

	return responses, nil
}

func (s *mediaService) UpdateMedia(ctx context.Context, viewer biographyModel.Viewer, id uuid.UUID, req model.UpdateMediaRequest) (*model.MediaResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, model.NewValidationError(err.Error())
	}

	m, err := s.getEditable(ctx, viewer, id)
	if err != nil {
		return nil, err
	}

	if req.Caption != nil {
		m.Caption = req.Caption
	}
	if req.AltText != nil {
		m.AltText = req.AltText
	}

	if err := s.repo.Update(ctx, m); err != nil {
		return nil, s.mapRepoError(err)
	}

	return model.NewMediaResponse(m), nil
}

func (s *mediaService) DeleteMedia(ctx context.Context, viewer biographyModel.Viewer, id uuid.UUID) error {
	m, err := s.getEditable(ctx, viewer, id)
	if err != nil {
		return err
	}

	if err := s.repo.SoftDelete(ctx, m.ID); err != nil {
		return s.mapRepoError(err)
	}

	if err := s.queueClient.EnqueueMediaCleanup(ctx, m.StorageKey); err != nil {
		logger.Error("failed to enqueue media cleanup", err)
	}

	return nil
}

func (s *mediaService) ResolveRendition(ctx context.Context, viewer biographyModel.Viewer, id uuid.UUID, conversion string) (string, error) {
	m, err := s.getViewable(ctx, viewer, id)
	if err != nil {
		return "", err
	}
	return m.RenditionURL(conversion), nil
}

// =====================================================
// WORKER OPERATIONS
// =====================================================

// ProcessConversions generates the resized renditions for an uploaded item.
func (s *mediaService) ProcessConversions(ctx context.Context, mediaID uuid.UUID) error {
	m, err := s.repo.GetByID(ctx, mediaID)
	if errors.Is(err, model.ErrMediaNotFound) {
		// Deleted between upload and processing, nothing to do.
		return nil
	}
	if err != nil {
		return err
	}
	if !m.Active() {
		return nil
	}
	if !strings.HasPrefix(m.MimeType, "image/") {
		return nil
	}

	originalKey := fmt.Sprintf("%s_original.%s", m.StorageKey, extForMime(m.MimeType))
	data, err := s.storage.Download(ctx, originalKey)
	if err != nil {
		return s.failConversion(ctx, m.ID, fmt.Errorf("failed to download original: %w", err))
	}

	renditions, err := s.processor.ProcessImage(data)
	if err != nil {
		return s.failConversion(ctx, m.ID, fmt.Errorf("failed to process image: %w", err))
	}

	urls := make(map[string]string, len(renditions))
	for name, payload := range renditions {
		key := fmt.Sprintf("%s_%s.jpg", m.StorageKey, name)
		url, err := s.storage.Upload(ctx, key, payload, "image/jpeg")
		if err != nil {
			return s.failConversion(ctx, m.ID, fmt.Errorf("failed to store %s rendition: %w", name, err))
		}
		urls[name] = url
	}

	if err := s.repo.UpdateConversions(ctx, m.ID, urls); err != nil {
		return err
	}

	logger.Info("media conversions ready", map[string]interface{}{
		"media_id":   m.ID.String(),
		"renditions": len(urls),
	})

	return nil
}

// CleanupObjects removes every stored object under a key prefix.
func (s *mediaService) CleanupObjects(ctx context.Context, storageKeyPrefix string) error {
	if storageKeyPrefix == "" {
		return nil
	}
	return s.storage.DeleteByPrefix(ctx, storageKeyPrefix)
}

// PurgeDeleted hard-deletes media rows soft-deleted longer than the retention
// window and removes their stored objects.
func (s *mediaService) PurgeDeleted(ctx context.Context, olderThanDays int) error {
	cutoff := time.Now().AddDate(0, 0, -olderThanDays)

	keys, err := s.repo.PurgeDeletedBefore(ctx, cutoff)
	if err != nil {
		return err
	}

	for _, key := range keys {
		if err := s.storage.DeleteByPrefix(ctx, key); err != nil {
			logger.Error("failed to delete purged media objects", err)
		}
	}

	logger.Info("purged deleted media", map[string]interface{}{"count": len(keys)})

	return nil
}

// =====================================================
// HELPERS
// =====================================================

// resolveOwner loads the biography that ultimately owns the media, walking
// through the chapter when needed. Missing owners of either kind surface as
// the same error so callers cannot probe for private structure.
func (s *mediaService) resolveOwner(ctx context.Context, ownerType model.OwnerType, ownerID uuid.UUID) (*biographyModel.Biography, error) {
	biographyID := ownerID
	if ownerType == model.OwnerChapter {
		ch, err := s.biographyRepo.GetChapterByID(ctx, ownerID)
		if errors.Is(err, biographyModel.ErrChapterNotFound) {
			return nil, model.NewOwnerNotFoundError()
		}
		if err != nil {
			return nil, fmt.Errorf("failed to resolve chapter: %w", err)
		}
		biographyID = ch.BiographyID
	}

	b, err := s.biographyRepo.GetByID(ctx, biographyID)
	if errors.Is(err, biographyModel.ErrBiographyNotFound) {
		return nil, model.NewOwnerNotFoundError()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to resolve biography: %w", err)
	}

	return b, nil
}

func (s *mediaService) getViewable(ctx context.Context, viewer biographyModel.Viewer, id uuid.UUID) (*model.Media, error) {
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapRepoError(err)
	}
	if !m.Active() {
		return nil, model.NewMediaNotFoundError()
	}

	biography, err := s.resolveOwner(ctx, m.OwnerType, m.OwnerID)
	if err != nil {
		return nil, err
	}
	if !biography.CanView(viewer) {
		return nil, model.NewMediaNotFoundError()
	}

	return m, nil
}

func (s *mediaService) getEditable(ctx context.Context, viewer biographyModel.Viewer, id uuid.UUID) (*model.Media, error) {
	m, err := s.getViewable(ctx, viewer, id)
	if err != nil {
		return nil, err
	}

	biography, err := s.resolveOwner(ctx, m.OwnerType, m.OwnerID)
	if err != nil {
		return nil, err
	}
	if !biography.CanEdit(viewer) {
		return nil, model.NewUnauthorizedError()
	}

	return m, nil
}

func (s *mediaService) failConversion(ctx context.Context, id uuid.UUID, cause error) error {
	if err := s.repo.UpdateStatus(ctx, id, model.StatusFailed, cause.Error()); err != nil {
		logger.Error("failed to record conversion failure", err)
	}
	return cause
}

func (s *mediaService) mapRepoError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, model.ErrMediaNotFound):
		return model.NewMediaNotFoundError()
	default:
		return err
	}
}

var mimeExtensions = map[string]string{
	"image/jpeg":      "jpg",
	"image/png":       "png",
	"image/gif":       "gif",
	"image/webp":      "webp",
	"video/mp4":       "mp4",
	"video/quicktime": "mov",
	"video/webm":      "webm",
}

func extForMime(mimeType string) string {
	if ext, ok := mimeExtensions[mimeType]; ok {
		return ext
	}
	return "bin"
}
