package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"memoir-backend/internal/domains/biography/model"
	"memoir-backend/internal/domains/biography/service"
	"memoir-backend/internal/shared/middleware"
	"memoir-backend/internal/shared/response"
)

type BiographyHandler struct {
	service service.Service
}

func NewBiographyHandler(service service.Service) *BiographyHandler {
	return &BiographyHandler{service: service}
}

// CreateBiography POST /api/v1/biographies
func (h *BiographyHandler) CreateBiography(c *gin.Context) {
	var req model.CreateBiographyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	resp, err := h.service.CreateBiography(c.Request.Context(), userIDFromContext(c), req)
	if err != nil {
		h.mapError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp)
}

// GetBiography GET /api/v1/biographies/:id
func (h *BiographyHandler) GetBiography(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	resp, err := h.service.GetBiography(c.Request.Context(), viewerFromContext(c), id)
	if err != nil {
		h.mapError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// UpdateBiography PUT /api/v1/biographies/:id
func (h *BiographyHandler) UpdateBiography(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req model.UpdateBiographyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	resp, err := h.service.UpdateBiography(c.Request.Context(), viewerFromContext(c), id, req)
	if err != nil {
		h.mapError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// DeleteBiography DELETE /api/v1/biographies/:id
func (h *BiographyHandler) DeleteBiography(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.service.DeleteBiography(c.Request.Context(), viewerFromContext(c), id); err != nil {
		h.mapError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Biography deleted"})
}

// UpdateVisibility PATCH /api/v1/biographies/:id/visibility
func (h *BiographyHandler) UpdateVisibility(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req model.UpdateVisibilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.service.UpdateVisibility(c.Request.Context(), viewerFromContext(c), id, req); err != nil {
		h.mapError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"is_public": req.IsPublic})
}

// AddChapter POST /api/v1/biographies/:id/chapters
func (h *BiographyHandler) AddChapter(c *gin.Context) {
	biographyID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req model.AddChapterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	resp, err := h.service.AddChapter(c.Request.Context(), viewerFromContext(c), biographyID, req)
	if err != nil {
		h.mapError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp)
}

// UpdateChapter PUT /api/v1/chapters/:id
func (h *BiographyHandler) UpdateChapter(c *gin.Context) {
	chapterID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req model.UpdateChapterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	resp, err := h.service.UpdateChapter(c.Request.Context(), viewerFromContext(c), chapterID, req)
	if err != nil {
		h.mapError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// DeleteChapter DELETE /api/v1/chapters/:id
func (h *BiographyHandler) DeleteChapter(c *gin.Context) {
	chapterID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.service.DeleteChapter(c.Request.Context(), viewerFromContext(c), chapterID); err != nil {
		h.mapError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Chapter deleted"})
}

// ReorderChapters PUT /api/v1/biographies/:id/chapters/reorder
func (h *BiographyHandler) ReorderChapters(c *gin.Context) {
	biographyID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req model.ReorderChaptersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.service.ReorderChapters(c.Request.Context(), viewerFromContext(c), biographyID, req); err != nil {
		h.mapError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Chapters reordered"})
}

// ListMine GET /api/v1/biographies/me
func (h *BiographyHandler) ListMine(c *gin.Context) {
	var req model.ListBiographiesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	resp, err := h.service.ListMine(c.Request.Context(), userIDFromContext(c), req)
	if err != nil {
		h.mapError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// ListPublic GET /api/v1/biographies/public
func (h *BiographyHandler) ListPublic(c *gin.Context) {
	var req model.ListBiographiesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	resp, err := h.service.ListPublic(c.Request.Context(), req)
	if err != nil {
		h.mapError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// =====================================================
// HELPERS
// =====================================================

func (h *BiographyHandler) mapError(c *gin.Context, err error) {
	var bioErr *model.BiographyError
	if errors.As(err, &bioErr) {
		switch bioErr.Code {
		case model.ErrCodeBiographyNotFound, model.ErrCodeChapterNotFound:
			response.ErrorResponse(c, http.StatusNotFound, bioErr.Code, bioErr.Message)
		case model.ErrCodeUnauthorized, model.ErrCodeRestricted:
			response.ErrorResponse(c, http.StatusForbidden, bioErr.Code, bioErr.Message)
		default:
			response.ErrorResponse(c, http.StatusBadRequest, bioErr.Code, bioErr.Message)
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

func viewerFromContext(c *gin.Context) model.Viewer {
	if v, exists := c.Get(middleware.ContextUserID); exists {
		if id, ok := v.(uuid.UUID); ok {
			return model.Viewer{ID: id, Authenticated: true}
		}
	}
	return model.Anonymous()
}

func parseUUIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		response.BadRequest(c, "Invalid ID")
		return uuid.Nil, false
	}
	return id, true
}
