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

// GenerateExportHandler builds the workbook for a data export request.
type GenerateExportHandler struct {
	complianceService complianceService.Service
}

func NewGenerateExportHandler(complianceService complianceService.Service) *GenerateExportHandler {
	return &GenerateExportHandler{complianceService: complianceService}
}

func (h *GenerateExportHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload shared.GenerateDataExportPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		log.Error().Err(err).Msg("Failed to unmarshal export payload")
		return fmt.Errorf("unmarshal payload: %w", err)
	}

	requestID, err := uuid.Parse(payload.RequestID)
	if err != nil {
		log.Error().Str("request_id", payload.RequestID).Msg("Invalid request ID in payload")
		return fmt.Errorf("parse request id: %w", err)
	}

	log.Info().Str("request_id", payload.RequestID).Msg("Generating data export")

	if err := h.complianceService.GenerateExport(ctx, requestID); err != nil {
		log.Error().Err(err).Str("request_id", payload.RequestID).Msg("Failed to generate export")
		return fmt.Errorf("generate export: %w", err)
	}

	return nil
}
