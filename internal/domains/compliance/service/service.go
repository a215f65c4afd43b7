package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"memoir-backend/internal/config"
	biographyRepository "memoir-backend/internal/domains/biography/repository"
	"memoir-backend/internal/domains/compliance/model"
	"memoir-backend/internal/domains/compliance/repository"
	mediaRepository "memoir-backend/internal/domains/media/repository"
	userRepository "memoir-backend/internal/domains/user/repository"
	"memoir-backend/internal/infrastructure/queue"
	"memoir-backend/internal/infrastructure/storage"
	"memoir-backend/pkg/logger"
)

type complianceService struct {
	consents     repository.ConsentRepository
	exports      repository.ExportRepository
	restrictions repository.RestrictionRepository
	deletions    repository.DeletionRepository
	breaches     repository.BreachRepository
	activity     repository.ActivityRepository

	biographyRepo biographyRepository.Repository
	mediaRepo     mediaRepository.Repository
	userRepo      userRepository.Repository

	pool        *pgxpool.Pool
	storage     *storage.MinIOStorage
	queueClient *queue.Client

	jobs config.JobConfig
}

func NewComplianceService(
	consents repository.ConsentRepository,
	exports repository.ExportRepository,
	restrictions repository.RestrictionRepository,
	deletions repository.DeletionRepository,
	breaches repository.BreachRepository,
	activity repository.ActivityRepository,
	biographyRepo biographyRepository.Repository,
	mediaRepo mediaRepository.Repository,
	userRepo userRepository.Repository,
	pool *pgxpool.Pool,
	minioStorage *storage.MinIOStorage,
	queueClient *queue.Client,
	jobs config.JobConfig,
) Service {
	return &complianceService{
		consents:      consents,
		exports:       exports,
		restrictions:  restrictions,
		deletions:     deletions,
		breaches:      breaches,
		activity:      activity,
		biographyRepo: biographyRepo,
		mediaRepo:     mediaRepo,
		userRepo:      userRepo,
		pool:          pool,
		storage:       minioStorage,
		queueClient:   queueClient,
		jobs:          jobs,
	}
}

// =====================================================
// CONSENT
// =====================================================

func (s *complianceService) GrantConsent(ctx context.Context, userID uuid.UUID, req model.ConsentRequest) error {
	return s.appendConsent(ctx, userID, req, true)
}

func (s *complianceService) WithdrawConsent(ctx context.Context, userID uuid.UUID, req model.ConsentRequest) error {
	return s.appendConsent(ctx, userID, req, false)
}

func (s *complianceService) appendConsent(ctx context.Context, userID uuid.UUID, req model.ConsentRequest, granted bool) error {
	if err := req.Validate(); err != nil {
		return model.NewValidationError(err.Error())
	}

	rec := &model.ConsentRecord{
		ID:      uuid.New(),
		UserID:  userID,
		Purpose: req.Purpose,
		Granted: granted,
		Method:  req.Method,
		Version: req.Version,
	}

	if err := s.consents.Append(ctx, rec); err != nil {
		return err
	}

	action := model.ActionConsentGranted
	if !granted {
		action = model.ActionConsentWithdrawn
	}
	s.logActivity(ctx, userID, action, map[string]interface{}{
		"purpose": req.Purpose,
		"version": req.Version,
	})

	return nil
}

func (s *complianceService) GetConsentStatus(ctx context.Context, userID uuid.UUID) (*model.ConsentStatusResponse, error) {
	history, err := s.consents.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return model.NewConsentStatusResponse(history), nil
}

// =====================================================
// DATA EXPORT
// =====================================================

func (s *complianceService) RequestDataExport(ctx context.Context, userID uuid.UUID) (*model.ExportResponse, error) {
	open, err := s.exports.HasOpen(ctx, userID)
	if err != nil {
		return nil, err
	}
	if open {
		return nil, model.NewExportPendingError()
	}

	req := &model.DataExportRequest{
		ID:     uuid.New(),
		UserID: userID,
		Status: model.ExportStatusPending,
	}
	if err := s.exports.Create(ctx, req); err != nil {
		return nil, err
	}

	if err := s.queueClient.EnqueueDataExport(ctx, req.ID.String()); err != nil {
		// Leave the row pending; a requeue can pick it up.
		logger.Error("failed to enqueue data export", err)
	}

	s.logActivity(ctx, userID, model.ActionExportRequested, map[string]interface{}{
		"request_id": req.ID.String(),
	})

	return model.NewExportResponse(req), nil
}

func (s *complianceService) GetDataExport(ctx context.Context, userID, requestID uuid.UUID) (*model.ExportResponse, error) {
	req, err := s.exports.GetByID(ctx, requestID)
	if errors.Is(err, model.ErrExportNotFound) {
		return nil, model.NewExportNotFoundError()
	}
	if err != nil {
		return nil, err
	}
	if req.UserID != userID {
		return nil, model.NewExportNotFoundError()
	}

	return model.NewExportResponse(req), nil
}

func (s *complianceService) ListDataExports(ctx context.Context, userID uuid.UUID) ([]model.ExportResponse, error) {
	requests, err := s.exports.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	responses := make([]model.ExportResponse, 0, len(requests))
	for i := range requests {
		responses = append(responses, *model.NewExportResponse(&requests[i]))
	}

	return responses, nil
}

// =====================================================
// PROCESSING RESTRICTION
// =====================================================

func (s *complianceService) RestrictProcessing(ctx context.Context, userID uuid.UUID, req model.RestrictionRequest) (*model.ProcessingRestriction, error) {
	if err := req.Validate(); err != nil {
		return nil, model.NewValidationError(err.Error())
	}

	// Idempotent: an existing active restriction is returned as-is.
	existing, err := s.restrictions.GetActiveByUser(ctx, userID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, model.ErrNoRestriction) {
		return nil, err
	}

	restriction := &model.ProcessingRestriction{
		ID:     uuid.New(),
		UserID: userID,
		Reason: req.Reason,
		Active: true,
	}
	if err := s.restrictions.Create(ctx, restriction); err != nil {
		return nil, err
	}

	s.logActivity(ctx, userID, model.ActionRestrictionSet, nil)

	return restriction, nil
}

func (s *complianceService) LiftRestriction(ctx context.Context, userID uuid.UUID) error {
	if err := s.restrictions.Lift(ctx, userID); err != nil {
		if errors.Is(err, model.ErrNoRestriction) {
			return model.NewNoActiveRestrictionError()
		}
		return err
	}

	s.logActivity(ctx, userID, model.ActionRestrictionLifted, nil)

	return nil
}

func (s *complianceService) GetRestriction(ctx context.Context, userID uuid.UUID) (*model.ProcessingRestriction, error) {
	restriction, err := s.restrictions.GetActiveByUser(ctx, userID)
	if errors.Is(err, model.ErrNoRestriction) {
		return nil, model.NewNoActiveRestrictionError()
	}
	if err != nil {
		return nil, err
	}
	return restriction, nil
}

func (s *complianceService) IsRestricted(ctx context.Context, userID uuid.UUID) (bool, error) {
	return s.restrictions.HasActive(ctx, userID)
}

// =====================================================
// ACCOUNT DELETION
// =====================================================

func (s *complianceService) RequestAccountDeletion(ctx context.Context, userID uuid.UUID, req model.DeletionRequest) (*model.AccountDeletionRequest, error) {
	if err := req.Validate(); err != nil {
		return nil, model.NewValidationError(err.Error())
	}

	open, err := s.deletions.HasOpen(ctx, userID)
	if err != nil {
		return nil, err
	}
	if open {
		return nil, model.NewDeletionPendingError()
	}

	deletion := &model.AccountDeletionRequest{
		ID:     uuid.New(),
		UserID: userID,
		Status: model.DeletionStatusPending,
		Reason: req.Reason,
	}
	if err := s.deletions.Create(ctx, deletion); err != nil {
		return nil, err
	}

	if err := s.queueClient.EnqueueAccountDeletion(ctx, deletion.ID.String()); err != nil {
		logger.Error("failed to enqueue account deletion", err)
	}

	s.logActivity(ctx, userID, model.ActionDeletionRequested, map[string]interface{}{
		"request_id": deletion.ID.String(),
	})

	return deletion, nil
}

// =====================================================
// BREACH REPORTS
// =====================================================

func (s *complianceService) ReportBreach(ctx context.Context, userID uuid.UUID, req model.BreachReportRequest) (*model.BreachReport, error) {
	if err := req.Validate(); err != nil {
		return nil, model.NewValidationError(err.Error())
	}

	report := &model.BreachReport{
		ID:          uuid.New(),
		ReporterID:  userID,
		Title:       req.Title,
		Description: req.Description,
		Status:      model.BreachStatusOpen,
	}
	if err := s.breaches.Create(ctx, report); err != nil {
		return nil, err
	}

	s.logActivity(ctx, userID, model.ActionBreachReported, map[string]interface{}{
		"report_id": report.ID.String(),
	})

	return report, nil
}

func (s *complianceService) ListBreachReports(ctx context.Context, userID uuid.UUID) ([]model.BreachReport, error) {
	reports, err := s.breaches.ListByReporter(ctx, userID)
	if err != nil {
		return nil, err
	}
	if reports == nil {
		reports = []model.BreachReport{}
	}
	return reports, nil
}

// =====================================================
// ACTIVITY LOG
// =====================================================

func (s *complianceService) ListActivity(ctx context.Context, userID uuid.UUID, req model.ListActivityRequest) (*model.ActivityLogResponse, error) {
	req.Normalize()

	entries, total, err := s.activity.ListByUser(ctx, userID, req.Page, req.Limit)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []model.ActivityLogEntry{}
	}

	return &model.ActivityLogResponse{
		Entries: entries,
		Page:    req.Page,
		Limit:   req.Limit,
		Total:   total,
	}, nil
}

// logActivity appends an audit row. Audit failures are logged, never fatal:
// the primary action has already happened.
func (s *complianceService) logActivity(ctx context.Context, userID uuid.UUID, action string, metadata map[string]interface{}) {
	entry := &model.ActivityLogEntry{
		ID:       uuid.New(),
		UserID:   userID,
		Action:   action,
		Metadata: metadata,
	}
	if err := s.activity.Append(ctx, entry); err != nil {
		logger.Error(fmt.Sprintf("failed to log %s activity", action), err)
	}
}
