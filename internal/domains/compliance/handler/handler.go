package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"memoir-backend/internal/domains/compliance/model"
	"memoir-backend/internal/domains/compliance/service"
	"memoir-backend/internal/shared/middleware"
	"memoir-backend/internal/shared/response"
)

type ComplianceHandler struct {
	service service.Service
}

func NewComplianceHandler(service service.Service) *ComplianceHandler {
	return &ComplianceHandler{service: service}
}

// GrantConsent POST /api/v1/compliance/consents/grant
func (h *ComplianceHandler) GrantConsent(c *gin.Context) {
	var req model.ConsentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.service.GrantConsent(c.Request.Context(), userIDFromContext(c), req); err != nil {
		h.mapError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"message": "Consent recorded"})
}

// WithdrawConsent POST /api/v1/compliance/consents/withdraw
func (h *ComplianceHandler) WithdrawConsent(c *gin.Context) {
	var req model.ConsentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.service.WithdrawConsent(c.Request.Context(), userIDFromContext(c), req); err != nil {
		h.mapError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"message": "Withdrawal recorded"})
}

// GetConsentStatus GET /api/v1/compliance/consents
func (h *ComplianceHandler) GetConsentStatus(c *gin.Context) {
	resp, err := h.service.GetConsentStatus(c.Request.Context(), userIDFromContext(c))
	if err != nil {
		h.mapError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// RequestDataExport POST /api/v1/compliance/exports
func (h *ComplianceHandler) RequestDataExport(c *gin.Context) {
	resp, err := h.service.RequestDataExport(c.Request.Context(), userIDFromContext(c))
	if err != nil {
		h.mapError(c, err)
		return
	}

	response.Success(c, http.StatusAccepted, resp)
}

// GetDataExport GET /api/v1/compliance/exports/:id
func (h *ComplianceHandler) GetDataExport(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid ID")
		return
	}

	resp, err := h.service.GetDataExport(c.Request.Context(), userIDFromContext(c), id)
	if err != nil {
		h.mapError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// ListDataExports GET /api/v1/compliance/exports
func (h *ComplianceHandler) ListDataExports(c *gin.Context) {
	resp, err := h.service.ListDataExports(c.Request.Context(), userIDFromContext(c))
	if err != nil {
		h.mapError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// RestrictProcessing POST /api/v1/compliance/restriction
func (h *ComplianceHandler) RestrictProcessing(c *gin.Context) {
	var req model.RestrictionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	resp, err := h.service.RestrictProcessing(c.Request.Context(), userIDFromContext(c), req)
	if err != nil {
		h.mapError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp)
}

// LiftRestriction DELETE /api/v1/compliance/restriction
func (h *ComplianceHandler) LiftRestriction(c *gin.Context) {
	if err := h.service.LiftRestriction(c.Request.Context(), userIDFromContext(c)); err != nil {
		h.mapError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Restriction lifted"})
}

// GetRestriction GET /api/v1/compliance/restriction
func (h *ComplianceHandler) GetRestriction(c *gin.Context) {
	resp, err := h.service.GetRestriction(c.Request.Context(), userIDFromContext(c))
	if err != nil {
		h.mapError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// RequestAccountDeletion POST /api/v1/compliance/deletion
func (h *ComplianceHandler) RequestAccountDeletion(c *gin.Context) {
	var req model.DeletionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	resp, err := h.service.RequestAccountDeletion(c.Request.Context(), userIDFromContext(c), req)
	if err != nil {
		h.mapError(c, err)
		return
	}

	response.Success(c, http.StatusAccepted, resp)
}

// ReportBreach POST /api/v1/compliance/breaches
func (h *ComplianceHandler) ReportBreach(c *gin.Context) {
	var req model.BreachReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	resp, err := h.service.ReportBreach(c.Request.Context(), userIDFromContext(c), req)
	if err != nil {
		h.mapError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp)
}

// ListBreachReports GET /api/v1/compliance/breaches
func (h *ComplianceHandler) ListBreachReports(c *gin.Context) {
	resp, err := h.service.ListBreachReports(c.Request.Context(), userIDFromContext(c))
	if err != nil {
		h.mapError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// ListActivity GET /api/v1/compliance/activity
func (h *ComplianceHandler) ListActivity(c *gin.Context) {
	var req model.ListActivityRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	resp, err := h.service.ListActivity(c.Request.Context(), userIDFromContext(c), req)
	if err != nil {
		h.mapError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// =====================================================
// HELPERS
// =====================================================

func (h *ComplianceHandler) mapError(c *gin.Context, err error) {
	var compErr *model.ComplianceError
	if errors.As(err, &compErr) {
		switch compErr.Code {
		case model.ErrCodeExportNotFound, model.ErrCodeBreachNotFound,
			model.ErrCodeNoActiveRestriction, model.ErrCodeRequestNotFound:
			response.ErrorResponse(c, http.StatusNotFound, compErr.Code, compErr.Message)
		case model.ErrCodeExportPending, model.ErrCodeDeletionPending:
			response.ErrorResponse(c, http.StatusConflict, compErr.Code, compErr.Message)
		default:
			response.ErrorResponse(c, http.StatusBadRequest, compErr.Code, compErr.Message)
		}
		return
	}

	response.InternalServerError(c, "Something went wrong")
}

func userIDFromContext(c *gin.Context) uuid.UUID {
	if v, exists := c.Get(middleware.ContextUserID); exists {
		if id, ok := v.(uuid.UUID); ok {
			return id
		}
	}
	return uuid.Nil
}
