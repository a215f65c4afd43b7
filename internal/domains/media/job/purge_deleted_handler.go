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

// PurgeDeletedHandler runs the scheduled purge of soft-deleted media.
type PurgeDeletedHandler struct {
	mediaService mediaService.Service
}

func NewPurgeDeletedHandler(mediaService mediaService.Service) *PurgeDeletedHandler {
	return &PurgeDeletedHandler{mediaService: mediaService}
}

func (h *PurgeDeletedHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload shared.PurgeDeletedMediaPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		log.Error().Err(err).Msg("Failed to unmarshal purge payload")
		return fmt.Errorf("unmarshal payload: %w", err)
	}

	log.Info().Int("older_than_days", payload.OlderThanDays).Msg("Purging soft-deleted media")

	if err := h.mediaService.PurgeDeleted(ctx, payload.OlderThanDays); err != nil {
		log.Error().Err(err).Msg("Failed to purge deleted media")
		return fmt.Errorf("purge deleted media: %w", err)
	}

	return nil
}
