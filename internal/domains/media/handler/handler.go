package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	biographyModel "memoir-backend/internal/domains/biography/model"
	"memoir-backend/internal/domains/media/model"
	"memoir-backend/internal/domains/media/service"
	"memoir-backend/internal/shared/middleware"
	"memoir-backend/internal/shared/response"
)

type MediaHandler struct {
	service service.Service
}

func NewMediaHandler(service service.Service) *MediaHandler {
	return &MediaHandler{service: service}
}

// AttachMedia POST /api/v1/media
// Multipart upload: the file plus owner_type, owner_id and collection fields.
func (h *MediaHandler) AttachMedia(c *gin.Context) {
	var req model.AttachMediaRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, "Invalid request")
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "Missing file")
		return
	}
	if fileHeader.Size > model.MaxUploadSize {
		mediaErr := model.NewFileTooLargeError()
		response.ErrorResponse(c, http.StatusBadRequest, mediaErr.Code, mediaErr.Message)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.InternalServerError(c, "Cannot read uploaded file")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		response.InternalServerError(c, "Cannot read uploaded file")
		return
	}

	resp, err := h.service.AttachMedia(c.Request.Context(), viewerFromContext(c), req, data)
	if err != nil {
		h.mapError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp)
}

// ListMedia GET /api/v1/media?owner_type=&owner_id=&collection=
func (h *MediaHandler) ListMedia(c *gin.Context) {
	ownerType := model.OwnerType(c.Query("owner_type"))
	ownerID, err := uuid.Parse(c.Query("owner_id"))
	if err != nil {
		response.BadRequest(c, "Invalid owner ID")
		return
	}

	var collection *model.Collection
	if raw := c.Query("collection"); raw != "" {
		col := model.Collection(raw)
		collection = &col
	}

	items, err := h.service.GetMedia(c.Request.Context(), viewerFromContext(c), ownerType, ownerID, collection)
	if err != nil {
		h.mapError(c, err)
		return
	}

	response.Success(c, http.StatusOK, items)
}

// UpdateMedia PUT /api/v1/media/:id
func (h *MediaHandler) UpdateMedia(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid ID")
		return
	}

	var req model.UpdateMediaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	resp, err := h.service.UpdateMedia(c.Request.Context(), viewerFromContext(c), id, req)
	if err != nil {
		h.mapError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// DeleteMedia DELETE /api/v1/media/:id
func (h *MediaHandler) DeleteMedia(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid ID")
		return
	}

	if err := h.service.DeleteMedia(c.Request.Context(), viewerFromContext(c), id); err != nil {
		h.mapError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Media deleted"})
}

// GetRendition GET /api/v1/media/:id/renditions/:name
// Always resolves to a URL; unknown names fall back to the original.
func (h *MediaHandler) GetRendition(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid ID")
		return
	}

	url, err := h.service.ResolveRendition(c.Request.Context(), viewerFromContext(c), id, c.Param("name"))
	if err != nil {
		h.mapError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"url": url})
}

// =====================================================
// HELPERS
// =====================================================

func (h *MediaHandler) mapError(c *gin.Context, err error) {
	var mediaErr *model.MediaError
	if errors.As(err, &mediaErr) {
		switch mediaErr.Code {
		case model.ErrCodeMediaNotFound, model.ErrCodeOwnerNotFound:
			response.ErrorResponse(c, http.StatusNotFound, mediaErr.Code, mediaErr.Message)
		case model.ErrCodeUnauthorized:
			response.ErrorResponse(c, http.StatusForbidden, mediaErr.Code, mediaErr.Message)
		default:
			response.ErrorResponse(c, http.StatusBadRequest, mediaErr.Code, mediaErr.Message)
		}
		return
	}

	response.InternalServerError(c, "Something went wrong")
}

func viewerFromContext(c *gin.Context) biographyModel.Viewer {
	if v, exists := c.Get(middleware.ContextUserID); exists {
		if id, ok := v.(uuid.UUID); ok {
			return biographyModel.Viewer{ID: id, Authenticated: true}
		}
	}
	return biographyModel.Anonymous()
}
