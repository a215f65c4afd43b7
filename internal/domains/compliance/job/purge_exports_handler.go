package job

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	complianceService "memoir-backend/internal/domains/compliance/service"
)

// PurgeExportsHandler runs the scheduled purge of expired export files.
type PurgeExportsHandler struct {
	complianceService complianceService.Service
}

func NewPurgeExportsHandler(complianceService complianceService.Service) *PurgeExportsHandler {
	return &PurgeExportsHandler{complianceService: complianceService}
}

func (h *PurgeExportsHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	log.Info().Msg("Purging expired data exports")

	if err := h.complianceService.PurgeExpiredExports(ctx); err != nil {
		log.Error().Err(err).Msg("Failed to purge expired exports")
		return fmt.Errorf("purge expired exports: %w", err)
	}

	return nil
}
