package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"memoir-backend/internal/domains/compliance/model"
)

// ConsentRepository stores the append-only consent log.
type ConsentRepository interface {
	Append(ctx context.Context, rec *model.ConsentRecord) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.ConsentRecord, error)
	DeleteByUserWithTx(ctx context.Context, tx pgx.Tx, userID uuid.UUID) error
}

// ExportRepository stores data export requests.
type ExportRepository interface {
	Create(ctx context.Context, req *model.DataExportRequest) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.DataExportRequest, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.DataExportRequest, error)

	// HasOpen reports whether the user already has a pending or processing request.
	HasOpen(ctx context.Context, userID uuid.UUID) (bool, error)

	UpdateStatus(ctx context.Context, id uuid.UUID, status string, errorMsg string) error
	MarkReady(ctx context.Context, id uuid.UUID, storageKey, fileURL string, expiresAt time.Time) error

	// PurgeExpired removes requests whose download window has passed and
	// returns their storage keys for object cleanup.
	PurgeExpired(ctx context.Context, now time.Time) ([]string, error)

	DeleteByUserWithTx(ctx context.Context, tx pgx.Tx, userID uuid.UUID) ([]string, error)
}

// RestrictionRepository stores processing restrictions.
type RestrictionRepository interface {
	Create(ctx context.Context, r *model.ProcessingRestriction) error
	GetActiveByUser(ctx context.Context, userID uuid.UUID) (*model.ProcessingRestriction, error)
	HasActive(ctx context.Context, userID uuid.UUID) (bool, error)
	Lift(ctx context.Context, userID uuid.UUID) error
	DeleteByUserWithTx(ctx context.Context, tx pgx.Tx, userID uuid.UUID) error
}

// DeletionRepository stores account deletion requests. Completed rows are the
// audit record of the erasure and are never removed.
type DeletionRepository interface {
	Create(ctx context.Context, req *model.AccountDeletionRequest) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.AccountDeletionRequest, error)
	HasOpen(ctx context.Context, userID uuid.UUID) (bool, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
}

// BreachRepository stores breach reports.
type BreachRepository interface {
	Create(ctx context.Context, r *model.BreachReport) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.BreachReport, error)
	ListByReporter(ctx context.Context, reporterID uuid.UUID) ([]model.BreachReport, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	DeleteByReporterWithTx(ctx context.Context, tx pgx.Tx, reporterID uuid.UUID) error
}

// ActivityRepository stores the append-only compliance audit log.
type ActivityRepository interface {
	Append(ctx context.Context, entry *model.ActivityLogEntry) error
	ListByUser(ctx context.Context, userID uuid.UUID, page, limit int) ([]model.ActivityLogEntry, int, error)
}
