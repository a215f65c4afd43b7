package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	mediaService "memoir-backend/internal/domains/media/service"
	"memoir-backend/internal/shared"
)

// ProcessConversionsHandler generates the resized renditions for an upload.
type ProcessConversionsHandler struct {
	mediaService mediaService.Service
}

func NewProcessConversionsHandler(mediaService mediaService.Service) *ProcessConversionsHandler {
	return &ProcessConversionsHandler{mediaService: mediaService}
}

func (h *ProcessConversionsHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload shared.ProcessMediaConversionsPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		log.Error().Err(err).Msg("Failed to unmarshal conversions payload")
		return fmt.Errorf("unmarshal payload: %w", err)
	}

	mediaID, err := uuid.Parse(payload.MediaID)
	if err != nil {
		log.Error().Str("media_id", payload.MediaID).Msg("Invalid media ID in payload")
		return fmt.Errorf("parse media id: %w", err)
	}

	log.Info().Str("media_id", payload.MediaID).Msg("Processing media conversions")

	if err := h.mediaService.ProcessConversions(ctx, mediaID); err != nil {
		log.Error().Err(err).Str("media_id", payload.MediaID).Msg("Failed to process conversions")
		return fmt.Errorf("process conversions: %w", err)
	}

	return nil
}
