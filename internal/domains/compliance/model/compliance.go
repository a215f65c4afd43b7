package model

import (
	"time"

	"github.com/google/uuid"
)

// Consent purposes recognized by the portal.
const (
	PurposePublicSharing = "public_sharing"
	PurposeAnalytics     = "analytics"
	PurposeMarketing     = "marketing"
)

// ConsentRecord is one entry in the append-only consent log. Granting or
// withdrawing appends a new row; existing rows are never mutated, so the log
// doubles as the audit trail.
type ConsentRecord struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Purpose   string    `json:"purpose"`
	Granted   bool      `json:"granted"`
	Method    string    `json:"method"`  // how consent was captured, e.g. "settings_page"
	Version   string    `json:"version"` // policy version the user saw
	CreatedAt time.Time `json:"created_at"`
}

// Export request lifecycle.
const (
	ExportStatusPending    = "pending"
	ExportStatusProcessing = "processing"
	ExportStatusReady      = "ready"
	ExportStatusFailed     = "failed"
)

// DataExportRequest tracks a right-of-access export. The worker fills in the
// file once the workbook is generated.
type DataExportRequest struct {
	ID           uuid.UUID  `json:"id"`
	UserID       uuid.UUID  `json:"user_id"`
	Status       string     `json:"status"`
	StorageKey   *string    `json:"-"`
	FileURL      *string    `json:"file_url"`
	ErrorMessage *string    `json:"-"`
	ExpiresAt    *time.Time `json:"expires_at"`
	CompletedAt  *time.Time `json:"completed_at"`
	CreatedAt    time.Time  `json:"created_at"`
}

// ProcessingRestriction marks an account whose content must not be processed.
// At most one active restriction per user.
type ProcessingRestriction struct {
	ID        uuid.UUID  `json:"id"`
	UserID    uuid.UUID  `json:"user_id"`
	Reason    string     `json:"reason"`
	Active    bool       `json:"active"`
	LiftedAt  *time.Time `json:"lifted_at"`
	CreatedAt time.Time  `json:"created_at"`
}

// Deletion request lifecycle.
const (
	DeletionStatusPending    = "pending"
	DeletionStatusProcessing = "processing"
	DeletionStatusCompleted  = "completed"
	DeletionStatusFailed     = "failed"
)

// AccountDeletionRequest tracks a right-of-erasure request. The row survives
// the erasure as the audit record of it.
type AccountDeletionRequest struct {
	ID          uuid.UUID  `json:"id"`
	UserID      uuid.UUID  `json:"user_id"`
	Status      string     `json:"status"`
	Reason      *string    `json:"reason"`
	CompletedAt *time.Time `json:"completed_at"`
	CreatedAt   time.Time  `json:"created_at"`
}

// Breach report lifecycle.
const (
	BreachStatusOpen          = "open"
	BreachStatusInvestigating = "investigating"
	BreachStatusResolved      = "resolved"
)

// BreachReport is a user-submitted report of a suspected data breach.
type BreachReport struct {
	ID          uuid.UUID `json:"id"`
	ReporterID  uuid.UUID `json:"reporter_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Activity actions recorded in the compliance audit log.
const (
	ActionConsentGranted    = "consent_granted"
	ActionConsentWithdrawn  = "consent_withdrawn"
	ActionExportRequested   = "export_requested"
	ActionExportReady       = "export_ready"
	ActionRestrictionSet    = "restriction_set"
	ActionRestrictionLifted = "restriction_lifted"
	ActionDeletionRequested = "deletion_requested"
	ActionDeletionCompleted = "deletion_completed"
	ActionBreachReported    = "breach_reported"
)

// ActivityLogEntry is one row of the append-only compliance audit log.
type ActivityLogEntry struct {
	ID        uuid.UUID              `json:"id"`
	UserID    uuid.UUID              `json:"user_id"`
	Action    string                 `json:"action"`
	Metadata  map[string]interface{} `json:"metadata"`
	CreatedAt time.Time              `json:"created_at"`
}
