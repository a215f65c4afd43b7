package main

import (
	"github.com/hibiken/asynq"

	complianceJob "memoir-backend/internal/domains/compliance/job"
	mediaJob "memoir-backend/internal/domains/media/job"
	"memoir-backend/internal/shared"
	"memoir-backend/pkg/container"
)

func registerHandlers(mux *asynq.ServeMux, c *container.Container) {
	mux.Handle(shared.TypeProcessMediaConversions, mediaJob.NewProcessConversionsHandler(c.MediaService))
	mux.Handle(shared.TypeCleanupMediaObjects, mediaJob.NewCleanupObjectsHandler(c.MediaService))
	mux.Handle(shared.TypePurgeDeletedMedia, mediaJob.NewPurgeDeletedHandler(c.MediaService))

	mux.Handle(shared.TypeGenerateDataExport, complianceJob.NewGenerateExportHandler(c.ComplianceService))
	mux.Handle(shared.TypePurgeExpiredExports, complianceJob.NewPurgeExportsHandler(c.ComplianceService))
	mux.Handle(shared.TypeProcessAccountDeletion, complianceJob.NewProcessDeletionHandler(c.ComplianceService))
}
