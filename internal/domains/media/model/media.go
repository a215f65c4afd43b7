package model

import (
	"time"

	"github.com/google/uuid"
)

// OwnerType identifies the kind of entity a media item belongs to.
type OwnerType string

const (
	OwnerBiography OwnerType = "biography"
	OwnerChapter   OwnerType = "chapter"
)

func (t OwnerType) Valid() bool {
	return t == OwnerBiography || t == OwnerChapter
}

// Collection is a closed set of media buckets. Each carries its own
// cardinality rule instead of relying on naming convention.
type Collection string

const (
	CollectionFeaturedImage   Collection = "featured_image"
	CollectionMainGallery     Collection = "main_gallery"
	CollectionChapterImages   Collection = "chapter_images"
	CollectionChapterFeatured Collection = "chapter_featured"
)

func (c Collection) Valid() bool {
	switch c {
	case CollectionFeaturedImage, CollectionMainGallery, CollectionChapterImages, CollectionChapterFeatured:
		return true
	}
	return false
}

// Singleton collections hold at most one active item; attaching a new item
// supersedes the previous one.
func (c Collection) Singleton() bool {
	return c == CollectionFeaturedImage || c == CollectionChapterFeatured
}

// AllowedFor ties each collection to the entity kind that may own it.
func (c Collection) AllowedFor(owner OwnerType) bool {
	switch c {
	case CollectionFeaturedImage, CollectionMainGallery:
		return owner == OwnerBiography
	case CollectionChapterImages, CollectionChapterFeatured:
		return owner == OwnerChapter
	}
	return false
}

// Upload limits, taken from the product copy.
const MaxUploadSize = 2 * 1024 * 1024 // 2MB

// MediaStatus tracks the conversion pipeline.
const (
	StatusPending = "pending"
	StatusReady   = "ready"
	StatusFailed  = "failed"
)

// Media is an uploaded asset owned by exactly one biography or chapter.
type Media struct {
	ID          uuid.UUID `json:"id"`
	BiographyID uuid.UUID `json:"biography_id"` // owning biography, also for chapter media
	OwnerType   OwnerType `json:"owner_type"`
	OwnerID     uuid.UUID `json:"owner_id"`
	Collection  Collection `json:"collection"`

	MimeType      string  `json:"mime_type"`
	Caption       *string `json:"caption"`
	AltText       *string `json:"alt_text"`
	FileSizeBytes int64   `json:"file_size_bytes"`

	// StorageKey is the object key base; renditions live at
	// <StorageKey>_<name>.jpg and the original at <StorageKey>_original.<ext>.
	StorageKey     string            `json:"-"`
	OriginalURL    string            `json:"original_url"`
	ConversionURLs map[string]string `json:"conversion_urls"`

	Status       string  `json:"status"`
	ErrorMessage *string `json:"-"`

	SortOrder int        `json:"sort_order"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"-"`
}

// RenditionURL returns the derived URL for a named conversion, falling back
// to the original when the conversion does not exist. Never errors: a missing
// rendition must degrade, not break rendering.
func (m *Media) RenditionURL(name string) string {
	if url, ok := m.ConversionURLs[name]; ok && url != "" {
		return url
	}
	return m.OriginalURL
}

// Active reports whether the item is still attached (not superseded/removed).
func (m *Media) Active() bool {
	return m.DeletedAt == nil
}
