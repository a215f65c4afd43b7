package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// =====================================================
// REQUEST DTOs
// =====================================================

// CreateBiographyRequest request to create a biography
type CreateBiographyRequest struct {
	Title    string  `json:"title"`
	Type     string  `json:"type"`
	Content  string  `json:"content"`
	Excerpt  *string `json:"excerpt"`
	IsPublic bool    `json:"is_public"`
}

func (r CreateBiographyRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.Required.Error("Title must not be empty"),
			validation.Length(1, MaxTitleLength),
		),
		validation.Field(&r.Type,
			validation.Required.Error("Type must not be empty"),
			validation.In(string(TypeSingle), string(TypeChapters)).Error("Type must be single or chapters"),
		),
		validation.Field(&r.Excerpt,
			validation.Length(0, MaxExcerptLength).Error("Excerpt must not exceed 500 characters"),
		),
	)
}

// UpdateBiographyRequest request to update a biography
type UpdateBiographyRequest struct {
	Title       *string `json:"title"`
	Content     *string `json:"content"`
	Excerpt     *string `json:"excerpt"`
	IsCompleted *bool   `json:"is_completed"`
}

func (r UpdateBiographyRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.NilOrNotEmpty.Error("Title must not be empty"),
			validation.Length(1, MaxTitleLength),
		),
		validation.Field(&r.Excerpt,
			validation.Length(0, MaxExcerptLength).Error("Excerpt must not exceed 500 characters"),
		),
	)
}

// AddChapterRequest request to append a chapter
type AddChapterRequest struct {
	Title       string     `json:"title"`
	Subtitle    *string    `json:"subtitle"`
	Content     string     `json:"content"`
	DateFrom    *time.Time `json:"date_from"`
	DateTo      *time.Time `json:"date_to"`
	IsOngoing   bool       `json:"is_ongoing"`
	ChapterType *string    `json:"chapter_type"`
}

func (r AddChapterRequest) Validate() error {
	if err := validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.Required.Error("Chapter title must not be empty"),
			validation.Length(1, MaxTitleLength),
		),
		validation.Field(&r.Content,
			validation.Required.Error("Chapter content must not be empty"),
		),
	); err != nil {
		return err
	}

	// Ongoing chapters drop date_to, so the range check only applies otherwise.
	if !r.IsOngoing && r.DateFrom != nil && r.DateTo != nil && r.DateFrom.After(*r.DateTo) {
		return NewInvalidDateRangeError()
	}

	return nil
}

// UpdateChapterRequest request to update a chapter
type UpdateChapterRequest struct {
	Title       *string    `json:"title"`
	Subtitle    *string    `json:"subtitle"`
	Content     *string    `json:"content"`
	DateFrom    *time.Time `json:"date_from"`
	DateTo      *time.Time `json:"date_to"`
	IsOngoing   *bool      `json:"is_ongoing"`
	ChapterType *string    `json:"chapter_type"`
}

func (r UpdateChapterRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.NilOrNotEmpty.Error("Chapter title must not be empty"),
			validation.Length(1, MaxTitleLength),
		),
	)
}

// ReorderChaptersRequest request to reorder chapters
type ReorderChaptersRequest struct {
	OrderedIDs []uuid.UUID `json:"ordered_ids"`
}

func (r ReorderChaptersRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.OrderedIDs,
			validation.Required.Error("Ordered chapter IDs must not be empty"),
		),
	)
}

// UpdateVisibilityRequest request to toggle visibility
type UpdateVisibilityRequest struct {
	IsPublic bool `json:"is_public"`
}

// ListBiographiesRequest request to list biographies
type ListBiographiesRequest struct {
	Page  int `form:"page"`
	Limit int `form:"limit"`
}

func (r *ListBiographiesRequest) Normalize() {
	if r.Page < 1 {
		r.Page = 1
	}
	if r.Limit < 1 || r.Limit > 100 {
		r.Limit = 20
	}
}

// =====================================================
// RESPONSE DTOs
// =====================================================

// Content kinds for the tagged content payload.
const (
	ContentKindSingle   = "single"
	ContentKindChapters = "chapters"
)

// ContentResponse is a tagged variant: either a single narrative body or a
// chapter sequence. The branch is decided once when the response is built,
// so consumers switch on Kind instead of probing nullable fields.
type ContentResponse struct {
	Kind     string            `json:"kind"`
	Content  *string           `json:"content,omitempty"`
	Excerpt  *string           `json:"excerpt,omitempty"`
	Chapters []ChapterResponse `json:"chapters,omitempty"`
}

func NewSingleContent(content string, excerpt *string) ContentResponse {
	return ContentResponse{
		Kind:    ContentKindSingle,
		Content: &content,
		Excerpt: excerpt,
	}
}

func NewChaptersContent(chapters []ChapterResponse) ContentResponse {
	if chapters == nil {
		chapters = []ChapterResponse{}
	}
	return ContentResponse{
		Kind:     ContentKindChapters,
		Chapters: chapters,
	}
}

// ChapterResponse response for a chapter
type ChapterResponse struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Subtitle    *string    `json:"subtitle"`
	Content     string     `json:"content"`
	DateFrom    *time.Time `json:"date_from"`
	DateTo      *time.Time `json:"date_to"`
	IsOngoing   bool       `json:"is_ongoing"`
	ChapterType *string    `json:"chapter_type"`
	SortOrder   int        `json:"sort_order"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// NewChapterResponse builds the response using the effective date range.
func NewChapterResponse(ch *Chapter) ChapterResponse {
	from, to := ch.DisplayRange()
	return ChapterResponse{
		ID:          ch.ID,
		Title:       ch.Title,
		Subtitle:    ch.Subtitle,
		Content:     ch.Content,
		DateFrom:    from,
		DateTo:      to,
		IsOngoing:   ch.IsOngoing,
		ChapterType: ch.ChapterType,
		SortOrder:   ch.SortOrder,
		CreatedAt:   ch.CreatedAt,
		UpdatedAt:   ch.UpdatedAt,
	}
}

// BiographyResponse response for biography detail
type BiographyResponse struct {
	ID                 uuid.UUID       `json:"id"`
	OwnerID            uuid.UUID       `json:"owner_id"`
	Title              string          `json:"title"`
	Type               BiographyType   `json:"type"`
	Body               ContentResponse `json:"body"`
	IsPublic           bool            `json:"is_public"`
	IsCompleted        bool            `json:"is_completed"`
	ReadingTimeMinutes int             `json:"reading_time_minutes"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

// NewBiographyResponse builds the tagged response for a biography and its
// chapters (empty for single-type biographies).
func NewBiographyResponse(b *Biography, chapters []Chapter) *BiographyResponse {
	var body ContentResponse
	if b.IsChapterBased() {
		chapterResponses := make([]ChapterResponse, 0, len(chapters))
		for i := range chapters {
			chapterResponses = append(chapterResponses, NewChapterResponse(&chapters[i]))
		}
		body = NewChaptersContent(chapterResponses)
	} else {
		body = NewSingleContent(b.Content, b.Excerpt)
	}

	return &BiographyResponse{
		ID:                 b.ID,
		OwnerID:            b.OwnerID,
		Title:              b.Title,
		Type:               b.Type,
		Body:               body,
		IsPublic:           b.IsPublic,
		IsCompleted:        b.IsCompleted,
		ReadingTimeMinutes: EstimatedReadingTime(b.Content, chapters),
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}
}

// BiographySummary response for list views
type BiographySummary struct {
	ID           uuid.UUID     `json:"id"`
	OwnerID      uuid.UUID     `json:"owner_id"`
	Title        string        `json:"title"`
	Type         BiographyType `json:"type"`
	Excerpt      *string       `json:"excerpt"`
	IsPublic     bool          `json:"is_public"`
	IsCompleted  bool          `json:"is_completed"`
	ChapterCount int           `json:"chapter_count"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

// PaginationMeta pagination metadata
type PaginationMeta struct {
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	Total      int  `json:"total"`
	TotalPages int  `json:"total_pages"`
	HasNext    bool `json:"has_next"`
	HasPrev    bool `json:"has_prev"`
}

// ListBiographiesResponse response for list biographies
type ListBiographiesResponse struct {
	Biographies []BiographySummary `json:"biographies"`
	Pagination  PaginationMeta     `json:"pagination"`
}
