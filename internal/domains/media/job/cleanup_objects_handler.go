package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	mediaService "memoir-backend/internal/domains/media/service"
	"memoir-backend/internal/shared"
)

// CleanupObjectsHandler removes stored objects for deleted media.
type CleanupObjectsHandler struct {
	mediaService mediaService.Service
}

func NewCleanupObjectsHandler(mediaService mediaService.Service) *CleanupObjectsHandler {
	return &CleanupObjectsHandler{mediaService: mediaService}
}

func (h *CleanupObjectsHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload shared.CleanupMediaObjectsPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		log.Error().Err(err).Msg("Failed to unmarshal cleanup payload")
		return fmt.Errorf("unmarshal payload: %w", err)
	}

	log.Info().Str("prefix", payload.StorageKeyPrefix).Msg("Cleaning up media objects")

	if err := h.mediaService.CleanupObjects(ctx, payload.StorageKeyPrefix); err != nil {
		log.Error().Err(err).Str("prefix", payload.StorageKeyPrefix).Msg("Failed to clean up media objects")
		return fmt.Errorf("cleanup objects: %w", err)
	}

	return nil
}
