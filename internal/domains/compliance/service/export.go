package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	biographyModel "memoir-backend/internal/domains/biography/model"
	"memoir-backend/internal/domains/compliance/model"
	mediaModel "memoir-backend/internal/domains/media/model"
	userModel "memoir-backend/internal/domains/user/model"
	"memoir-backend/pkg/logger"
)

// activityExportLimit caps how many audit rows go into the workbook.
const activityExportLimit = 1000

// GenerateExport builds the XLSX workbook for a pending export request,
// stores it and marks the request ready with a download URL.
func (s *complianceService) GenerateExport(ctx context.Context, requestID uuid.UUID) error {
	if s.jobs.ExportTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.jobs.ExportTimeout)
		defer cancel()
	}

	req, err := s.exports.GetByID(ctx, requestID)
	if errors.Is(err, model.ErrExportNotFound) {
		// Purged or erased before the worker got to it.
		return nil
	}
	if err != nil {
		return err
	}
	if req.Status == model.ExportStatusReady {
		return nil
	}

	if err := s.exports.UpdateStatus(ctx, req.ID, model.ExportStatusProcessing, ""); err != nil {
		return err
	}

	data, err := s.collectUserData(ctx, req.UserID)
	if err != nil {
		return s.failExport(ctx, req.ID, err)
	}

	workbook, err := buildExportWorkbook(data)
	if err != nil {
		return s.failExport(ctx, req.ID, fmt.Errorf("failed to build workbook: %w", err))
	}

	buf, err := workbook.WriteToBuffer()
	if err != nil {
		return s.failExport(ctx, req.ID, fmt.Errorf("failed to serialize workbook: %w", err))
	}

	storageKey := fmt.Sprintf("exports/%s/%s.xlsx", req.UserID, req.ID)
	fileURL, err := s.storage.Upload(ctx, storageKey, buf.Bytes(),
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err != nil {
		return s.failExport(ctx, req.ID, fmt.Errorf("failed to store export file: %w", err))
	}

	expiresAt := time.Now().AddDate(0, 0, s.jobs.ExportRetentionDays)
	if err := s.exports.MarkReady(ctx, req.ID, storageKey, fileURL, expiresAt); err != nil {
		return err
	}

	s.logActivity(ctx, req.UserID, model.ActionExportReady, map[string]interface{}{
		"request_id": req.ID.String(),
	})

	logger.Info("data export ready", map[string]interface{}{
		"request_id": req.ID.String(),
		"user_id":    req.UserID.String(),
	})

	return nil
}

// PurgeExpiredExports removes export rows past their download window and
// deletes the stored workbooks.
func (s *complianceService) PurgeExpiredExports(ctx context.Context) error {
	keys, err := s.exports.PurgeExpired(ctx, time.Now())
	if err != nil {
		return err
	}

	for _, key := range keys {
		if err := s.storage.Delete(ctx, key); err != nil {
			logger.Error("failed to delete expired export file", err)
		}
	}

	logger.Info("purged expired exports", map[string]interface{}{"count": len(keys)})

	return nil
}

func (s *complianceService) failExport(ctx context.Context, id uuid.UUID, cause error) error {
	if err := s.exports.UpdateStatus(ctx, id, model.ExportStatusFailed, cause.Error()); err != nil {
		logger.Error("failed to record export failure", err)
	}
	return cause
}

// exportData is everything the portal hands back for a right-of-access request.
type exportData struct {
	user        *userModel.User
	biographies []biographyModel.Biography
	chapters    map[uuid.UUID][]biographyModel.Chapter
	media       []mediaModel.Media
	consents    []model.ConsentRecord
	activity    []model.ActivityLogEntry
}

func (s *complianceService) collectUserData(ctx context.Context, userID uuid.UUID) (*exportData, error) {
	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	ids, err := s.biographyRepo.ListIDsByOwner(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list biography ids: %w", err)
	}

	data := &exportData{
		user:     u,
		chapters: map[uuid.UUID][]biographyModel.Chapter{},
	}

	for _, id := range ids {
		b, err := s.biographyRepo.GetByID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("failed to load biography %s: %w", id, err)
		}
		data.biographies = append(data.biographies, *b)

		chapters, err := s.biographyRepo.GetChaptersByBiographyID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("failed to load chapters of %s: %w", id, err)
		}
		data.chapters[id] = chapters

		media, err := s.mediaRepo.ListByBiographyID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("failed to load media of %s: %w", id, err)
		}
		data.media = append(data.media, media...)
	}

	data.consents, err = s.consents.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load consents: %w", err)
	}

	data.activity, _, err = s.activity.ListByUser(ctx, userID, 1, activityExportLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to load activity log: %w", err)
	}

	return data, nil
}

func buildExportWorkbook(data *exportData) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := writeProfileSheet(f, data.user); err != nil {
		return nil, err
	}
	if err := writeBiographiesSheet(f, data); err != nil {
		return nil, err
	}
	if err := writeMediaSheet(f, data.media); err != nil {
		return nil, err
	}
	if err := writeConsentsSheet(f, data.consents); err != nil {
		return nil, err
	}
	if err := writeActivitySheet(f, data.activity); err != nil {
		return nil, err
	}

	return f, nil
}

func writeProfileSheet(f *excelize.File, u *userModel.User) error {
	const sheet = "Profile"
	f.SetSheetName("Sheet1", sheet)

	rows := [][2]interface{}{
		{"ID", u.ID.String()},
		{"Email", u.Email},
		{"Display Name", u.DisplayName},
		{"Created At", u.CreatedAt.Format(time.RFC3339)},
	}
	if u.LastLoginAt != nil {
		rows = append(rows, [2]interface{}{"Last Login", u.LastLoginAt.Format(time.RFC3339)})
	}

	for i, row := range rows {
		keyCell, _ := excelize.CoordinatesToCellName(1, i+1)
		valCell, _ := excelize.CoordinatesToCellName(2, i+1)
		f.SetCellValue(sheet, keyCell, row[0])
		f.SetCellValue(sheet, valCell, row[1])
	}

	return nil
}

func writeBiographiesSheet(f *excelize.File, data *exportData) error {
	const sheet = "Biographies"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	writeHeaderRow(f, sheet, []string{"ID", "Title", "Type", "Public", "Completed", "Content", "Excerpt", "Created At"})
	for i, b := range data.biographies {
		row := i + 2
		setRow(f, sheet, row,
			b.ID.String(), b.Title, string(b.Type), b.IsPublic, b.IsCompleted,
			b.Content, derefString(b.Excerpt), b.CreatedAt.Format(time.RFC3339),
		)
	}

	const chapterSheet = "Chapters"
	if _, err := f.NewSheet(chapterSheet); err != nil {
		return err
	}

	writeHeaderRow(f, chapterSheet, []string{"ID", "Biography ID", "Title", "Subtitle", "Content", "Date From", "Date To", "Ongoing", "Order"})
	row := 2
	for _, b := range data.biographies {
		for _, ch := range data.chapters[b.ID] {
			from, to := ch.DisplayRange()
			setRow(f, chapterSheet, row,
				ch.ID.String(), ch.BiographyID.String(), ch.Title, derefString(ch.Subtitle),
				ch.Content, formatDate(from), formatDate(to), ch.IsOngoing, ch.SortOrder,
			)
			row++
		}
	}

	return nil
}

func writeMediaSheet(f *excelize.File, media []mediaModel.Media) error {
	const sheet = "Media"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	writeHeaderRow(f, sheet, []string{"ID", "Owner Type", "Owner ID", "Collection", "MIME Type", "Caption", "Original URL", "Created At"})
	for i, m := range media {
		row := i + 2
		setRow(f, sheet, row,
			m.ID.String(), string(m.OwnerType), m.OwnerID.String(), string(m.Collection),
			m.MimeType, derefString(m.Caption), m.OriginalURL, m.CreatedAt.Format(time.RFC3339),
		)
	}

	return nil
}

func writeConsentsSheet(f *excelize.File, consents []model.ConsentRecord) error {
	const sheet = "Consents"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	writeHeaderRow(f, sheet, []string{"Purpose", "Granted", "Method", "Policy Version", "Recorded At"})
	for i, rec := range consents {
		row := i + 2
		setRow(f, sheet, row, rec.Purpose, rec.Granted, rec.Method, rec.Version, rec.CreatedAt.Format(time.RFC3339))
	}

	return nil
}

func writeActivitySheet(f *excelize.File, entries []model.ActivityLogEntry) error {
	const sheet = "Activity"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	writeHeaderRow(f, sheet, []string{"Action", "Recorded At"})
	for i, entry := range entries {
		row := i + 2
		setRow(f, sheet, row, entry.Action, entry.CreatedAt.Format(time.RFC3339))
	}

	return nil
}

func writeHeaderRow(f *excelize.File, sheet string, headers []string) {
	for colIdx, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(colIdx+1, 1)
		f.SetCellValue(sheet, cell, header)
	}
}

func setRow(f *excelize.File, sheet string, row int, values ...interface{}) {
	for colIdx, value := range values {
		cell, _ := excelize.CoordinatesToCellName(colIdx+1, row)
		f.SetCellValue(sheet, cell, value)
	}
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}
