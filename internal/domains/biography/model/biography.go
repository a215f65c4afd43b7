package model

import (
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
)

// BiographyType tells whether the canonical body is a single narrative or a
// sequence of chapters.
type BiographyType string

const (
	TypeSingle   BiographyType = "single"
	TypeChapters BiographyType = "chapters"
)

func (t BiographyType) Valid() bool {
	return t == TypeSingle || t == TypeChapters
}

// Centralized content constants.
const (
	ReadingSpeedWPM  = 200
	MaxExcerptLength = 500
	MaxTitleLength   = 255
)

// Biography is the top-level content record authored by a user.
type Biography struct {
	ID          uuid.UUID     `json:"id"`
	OwnerID     uuid.UUID     `json:"owner_id"`
	Title       string        `json:"title"`
	Type        BiographyType `json:"type"`
	Content     string        `json:"content"` // canonical body when type=single, supplementary otherwise
	Excerpt     *string       `json:"excerpt"`
	IsPublic    bool          `json:"is_public"`
	IsCompleted bool          `json:"is_completed"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// IsChapterBased reports whether the canonical body lives in chapters.
func (b *Biography) IsChapterBased() bool {
	return b.Type == TypeChapters
}

// Chapter is an ordered sub-unit of a chapters-type biography.
type Chapter struct {
	ID          uuid.UUID  `json:"id"`
	BiographyID uuid.UUID  `json:"biography_id"`
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

// DisplayRange returns the effective date range. An ongoing chapter has no end
// date regardless of what is stored.
func (ch *Chapter) DisplayRange() (from, to *time.Time) {
	if ch.IsOngoing {
		return ch.DateFrom, nil
	}
	return ch.DateFrom, ch.DateTo
}

// EstimatedReadingTime returns whole minutes at ReadingSpeedWPM, rounded up,
// never below 1. Counts the supplementary content plus every chapter body.
func EstimatedReadingTime(content string, chapters []Chapter) int {
	words := countWords(content)
	for i := range chapters {
		words += countWords(chapters[i].Content)
	}

	minutes := int(math.Ceil(float64(words) / float64(ReadingSpeedWPM)))
	if minutes < 1 {
		return 1
	}
	return minutes
}

func countWords(s string) int {
	return len(strings.Fields(s))
}
