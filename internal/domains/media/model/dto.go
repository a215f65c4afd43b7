package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// =====================================================
// REQUEST DTOs
// =====================================================

// AttachMediaRequest accompanies a multipart upload.
type AttachMediaRequest struct {
	OwnerType  string  `form:"owner_type"`
	OwnerID    string  `form:"owner_id"`
	Collection string  `form:"collection"`
	Caption    *string `form:"caption"`
	AltText    *string `form:"alt_text"`
}

func (r AttachMediaRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.OwnerType,
			validation.Required.Error("Owner type must not be empty"),
			validation.In(string(OwnerBiography), string(OwnerChapter)).Error("Owner type must be biography or chapter"),
		),
		validation.Field(&r.OwnerID,
			validation.Required.Error("Owner ID must not be empty"),
		),
		validation.Field(&r.Collection,
			validation.Required.Error("Collection must not be empty"),
			validation.In(
				string(CollectionFeaturedImage),
				string(CollectionMainGallery),
				string(CollectionChapterImages),
				string(CollectionChapterFeatured),
			).Error("Unknown media collection"),
		),
		validation.Field(&r.Caption, validation.Length(0, 500)),
		validation.Field(&r.AltText, validation.Length(0, 255)),
	)
}

// UpdateMediaRequest edits caption/alt text.
type UpdateMediaRequest struct {
	Caption *string `json:"caption"`
	AltText *string `json:"alt_text"`
}

func (r UpdateMediaRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Caption, validation.Length(0, 500)),
		validation.Field(&r.AltText, validation.Length(0, 255)),
	)
}

// =====================================================
// RESPONSE DTOs
// =====================================================

// MediaResponse response for a media item
type MediaResponse struct {
	ID             uuid.UUID         `json:"id"`
	OwnerType      OwnerType         `json:"owner_type"`
	OwnerID        uuid.UUID         `json:"owner_id"`
	Collection     Collection        `json:"collection"`
	MimeType       string            `json:"mime_type"`
	Caption        *string           `json:"caption"`
	AltText        *string           `json:"alt_text"`
	OriginalURL    string            `json:"original_url"`
	ConversionURLs map[string]string `json:"conversion_urls"`
	Status         string            `json:"status"`
	SortOrder      int               `json:"sort_order"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}

func NewMediaResponse(m *Media) *MediaResponse {
	conversions := m.ConversionURLs
	if conversions == nil {
		conversions = map[string]string{}
	}
	return &MediaResponse{
		ID:             m.ID,
		OwnerType:      m.OwnerType,
		OwnerID:        m.OwnerID,
		Collection:     m.Collection,
		MimeType:       m.MimeType,
		Caption:        m.Caption,
		AltText:        m.AltText,
		OriginalURL:    m.OriginalURL,
		ConversionURLs: conversions,
		Status:         m.Status,
		SortOrder:      m.SortOrder,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}
