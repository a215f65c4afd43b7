package shared

// Asynq task types.
const (
	TypeProcessMediaConversions = "media:process_conversions"
	TypeCleanupMediaObjects     = "media:cleanup_objects"
	TypePurgeDeletedMedia       = "media:purge_deleted"
	TypeGenerateDataExport      = "compliance:generate_export"
	TypePurgeExpiredExports     = "compliance:purge_expired_exports"
	TypeProcessAccountDeletion  = "compliance:process_account_deletion"
)

// Queue names with worker priorities high > default > low.
const (
	QueueMedia      = "high"
	QueueCompliance = "default"
	QueueCleanup    = "low"
)

// ProcessMediaConversionsPayload is enqueued after an upload commits.
type ProcessMediaConversionsPayload struct {
	MediaID string `json:"media_id"`
}

// CleanupMediaObjectsPayload removes stored objects for a deleted media item.
type CleanupMediaObjectsPayload struct {
	StorageKeyPrefix string `json:"storage_key_prefix"`
}

// PurgeDeletedMediaPayload drives the scheduled purge of soft-deleted media.
type PurgeDeletedMediaPayload struct {
	OlderThanDays int `json:"older_than_days"`
}

// GenerateDataExportPayload identifies a pending export request.
type GenerateDataExportPayload struct {
	RequestID string `json:"request_id"`
}

// PurgeExpiredExportsPayload drives the scheduled purge of stale export files.
type PurgeExpiredExportsPayload struct {
	OlderThanDays int `json:"older_than_days"`
}

// ProcessAccountDeletionPayload identifies a confirmed deletion request.
type ProcessAccountDeletionPayload struct {
	RequestID string `json:"request_id"`
}
