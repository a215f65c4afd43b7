package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"memoir-backend/internal/domains/compliance/model"
	"memoir-backend/pkg/database"
	"memoir-backend/pkg/logger"
)

// ProcessAccountDeletion erases the account and everything it owns:
// biographies with chapters and media rows, consents, restrictions, breach
// reports, export requests and the user row, all in one transaction. The
// deletion request row and the activity log survive as the audit trail.
// Stored objects are removed after the commit; the rows referencing them are
// already gone, so a retry can only re-delete objects.
func (s *complianceService) ProcessAccountDeletion(ctx context.Context, requestID uuid.UUID) error {
	req, err := s.deletions.GetByID(ctx, requestID)
	if errors.Is(err, model.ErrDeletionNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if req.Status == model.DeletionStatusCompleted {
		return nil
	}

	if err := s.deletions.UpdateStatus(ctx, req.ID, model.DeletionStatusProcessing); err != nil {
		return err
	}

	biographyIDs, err := s.biographyRepo.ListIDsByOwner(ctx, req.UserID)
	if err != nil {
		return s.failDeletion(ctx, req.ID, fmt.Errorf("failed to list biographies: %w", err))
	}

	var exportKeys []string
	err = database.WithTransaction(ctx, s.pool, func(tx pgx.Tx) error {
		for _, id := range biographyIDs {
			if err := s.mediaRepo.DeleteByBiographyWithTx(ctx, tx, id); err != nil {
				return err
			}
			if err := s.biographyRepo.DeleteWithTx(ctx, tx, id); err != nil {
				return err
			}
		}

		if err := s.consents.DeleteByUserWithTx(ctx, tx, req.UserID); err != nil {
			return err
		}
		if err := s.restrictions.DeleteByUserWithTx(ctx, tx, req.UserID); err != nil {
			return err
		}
		if err := s.breaches.DeleteByReporterWithTx(ctx, tx, req.UserID); err != nil {
			return err
		}

		keys, err := s.exports.DeleteByUserWithTx(ctx, tx, req.UserID)
		if err != nil {
			return err
		}
		exportKeys = keys

		return s.userRepo.DeleteWithTx(ctx, tx, req.UserID)
	})
	if err != nil {
		return s.failDeletion(ctx, req.ID, err)
	}

	for _, id := range biographyIDs {
		prefix := fmt.Sprintf("biographies/%s/", id)
		if err := s.storage.DeleteByPrefix(ctx, prefix); err != nil {
			logger.Error("failed to delete biography objects", err)
		}
	}
	for _, key := range exportKeys {
		if err := s.storage.Delete(ctx, key); err != nil {
			logger.Error("failed to delete export file", err)
		}
	}

	if err := s.deletions.UpdateStatus(ctx, req.ID, model.DeletionStatusCompleted); err != nil {
		return err
	}

	s.logActivity(ctx, req.UserID, model.ActionDeletionCompleted, map[string]interface{}{
		"request_id":  req.ID.String(),
		"biographies": len(biographyIDs),
	})

	logger.Info("account deletion processed", map[string]interface{}{
		"request_id": req.ID.String(),
		"user_id":    req.UserID.String(),
	})

	return nil
}

func (s *complianceService) failDeletion(ctx context.Context, id uuid.UUID, cause error) error {
	if err := s.deletions.UpdateStatus(ctx, id, model.DeletionStatusFailed); err != nil {
		logger.Error("failed to record deletion failure", err)
	}
	return cause
}
