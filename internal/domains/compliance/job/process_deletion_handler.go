package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	complianceService "memoir-backend/internal/domains/compliance/service"
	"memoir-backend/internal/shared"
)

// ProcessDeletionHandler erases an account for a confirmed deletion request.
type ProcessDeletionHandler struct {
	complianceService complianceService.Service
}

func NewProcessDeletionHandler(complianceService complianceService.Service) *ProcessDeletionHandler {
	return &ProcessDeletionHandler{complianceService: complianceService}
}

func (h *ProcessDeletionHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload shared.ProcessAccountDeletionPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		log.Error().Err(err).Msg("Failed to unmarshal deletion payload")
		return fmt.Errorf("unmarshal payload: %w", err)
	}

	requestID, err := uuid.Parse(payload.RequestID)
	if err != nil {
		log.Error().Str("request_id", payload.RequestID).Msg("Invalid request ID in payload")
		return fmt.Errorf("parse request id: %w", err)
	}

	log.Info().Str("request_id", payload.RequestID).Msg("Processing account deletion")

	if err := h.complianceService.ProcessAccountDeletion(ctx, requestID); err != nil {
		log.Error().Err(err).Str("request_id", payload.RequestID).Msg("Failed to process account deletion")
		return fmt.Errorf("process account deletion: %w", err)
	}

	return nil
}
