package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// =====================================================
// REQUEST DTOs
// =====================================================

// ConsentRequest records a grant or withdrawal for one purpose.
type ConsentRequest struct {
	Purpose string `json:"purpose"`
	Method  string `json:"method"`
	Version string `json:"version"`
}

func (r ConsentRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Purpose,
			validation.Required.Error("Purpose must not be empty"),
			validation.In(PurposePublicSharing, PurposeAnalytics, PurposeMarketing).Error("Unknown consent purpose"),
		),
		validation.Field(&r.Method,
			validation.Required.Error("Method must not be empty"),
			validation.Length(1, 100),
		),
		validation.Field(&r.Version,
			validation.Required.Error("Policy version must not be empty"),
			validation.Length(1, 50),
		),
	)
}

// RestrictionRequest asks for processing of the account to be restricted.
type RestrictionRequest struct {
	Reason string `json:"reason"`
}

func (r RestrictionRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Reason,
			validation.Required.Error("Reason must not be empty"),
			validation.Length(1, 1000),
		),
	)
}

// DeletionRequest asks for the account and its content to be erased.
type DeletionRequest struct {
	Reason *string `json:"reason"`
}

func (r DeletionRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Reason, validation.Length(0, 1000)),
	)
}

// BreachReportRequest submits a suspected breach.
type BreachReportRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

func (r BreachReportRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.Required.Error("Title must not be empty"),
			validation.Length(1, 255),
		),
		validation.Field(&r.Description,
			validation.Required.Error("Description must not be empty"),
			validation.Length(1, 5000),
		),
	)
}

// ListActivityRequest pages through the audit log.
type ListActivityRequest struct {
	Page  int `form:"page"`
	Limit int `form:"limit"`
}

func (r *ListActivityRequest) Normalize() {
	if r.Page < 1 {
		r.Page = 1
	}
	if r.Limit < 1 || r.Limit > 100 {
		r.Limit = 50
	}
}

// =====================================================
// RESPONSE DTOs
// =====================================================

// ConsentStatusResponse is the latest decision per purpose plus the full log.
type ConsentStatusResponse struct {
	Current map[string]bool `json:"current"`
	History []ConsentRecord `json:"history"`
}

// NewConsentStatusResponse derives the effective decisions from the log.
// Records must be in chronological order.
func NewConsentStatusResponse(history []ConsentRecord) *ConsentStatusResponse {
	if history == nil {
		history = []ConsentRecord{}
	}
	current := map[string]bool{}
	for _, rec := range history {
		current[rec.Purpose] = rec.Granted
	}
	return &ConsentStatusResponse{
		Current: current,
		History: history,
	}
}

// ExportResponse public view of an export request.
type ExportResponse struct {
	ID          uuid.UUID  `json:"id"`
	Status      string     `json:"status"`
	FileURL     *string    `json:"file_url"`
	ExpiresAt   *time.Time `json:"expires_at"`
	CompletedAt *time.Time `json:"completed_at"`
	CreatedAt   time.Time  `json:"created_at"`
}

func NewExportResponse(req *DataExportRequest) *ExportResponse {
	return &ExportResponse{
		ID:          req.ID,
		Status:      req.Status,
		FileURL:     req.FileURL,
		ExpiresAt:   req.ExpiresAt,
		CompletedAt: req.CompletedAt,
		CreatedAt:   req.CreatedAt,
	}
}

// ActivityLogResponse paginated audit log.
type ActivityLogResponse struct {
	Entries []ActivityLogEntry `json:"entries"`
	Page    int                `json:"page"`
	Limit   int                `json:"limit"`
	Total   int                `json:"total"`
}
