package service

import (
	"context"

	"github.com/google/uuid"

	"memoir-backend/internal/domains/compliance/model"
)

// Service is the business logic contract for the compliance portal.
type Service interface {
	// Consent log. Grant and withdraw append; history is never rewritten.
	GrantConsent(ctx context.Context, userID uuid.UUID, req model.ConsentRequest) error
	WithdrawConsent(ctx context.Context, userID uuid.UUID, req model.ConsentRequest) error
	GetConsentStatus(ctx context.Context, userID uuid.UUID) (*model.ConsentStatusResponse, error)

	// Data export (right of access).
	RequestDataExport(ctx context.Context, userID uuid.UUID) (*model.ExportResponse, error)
	GetDataExport(ctx context.Context, userID, requestID uuid.UUID) (*model.ExportResponse, error)
	ListDataExports(ctx context.Context, userID uuid.UUID) ([]model.ExportResponse, error)

	// Processing restriction. IsRestricted also backs the content domain's
	// restriction checks.
	RestrictProcessing(ctx context.Context, userID uuid.UUID, req model.RestrictionRequest) (*model.ProcessingRestriction, error)
	LiftRestriction(ctx context.Context, userID uuid.UUID) error
	GetRestriction(ctx context.Context, userID uuid.UUID) (*model.ProcessingRestriction, error)
	IsRestricted(ctx context.Context, userID uuid.UUID) (bool, error)

	// Account deletion (right of erasure).
	RequestAccountDeletion(ctx context.Context, userID uuid.UUID, req model.DeletionRequest) (*model.AccountDeletionRequest, error)

	// Breach reports.
	ReportBreach(ctx context.Context, userID uuid.UUID, req model.BreachReportRequest) (*model.BreachReport, error)
	ListBreachReports(ctx context.Context, userID uuid.UUID) ([]model.BreachReport, error)

	// Audit log.
	ListActivity(ctx context.Context, userID uuid.UUID, req model.ListActivityRequest) (*model.ActivityLogResponse, error)

	// Worker entry points.
	GenerateExport(ctx context.Context, requestID uuid.UUID) error
	PurgeExpiredExports(ctx context.Context) error
	ProcessAccountDeletion(ctx context.Context, requestID uuid.UUID) error
}
