package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCollectionValid(t *testing.T) {
	valid := []Collection{
		CollectionFeaturedImage,
		CollectionMainGallery,
		CollectionChapterImages,
		CollectionChapterFeatured,
	}
	for _, c := range valid {
		assert.True(t, c.Valid(), "collection %q should be valid", c)
	}

	// The set is closed; nothing outside it is accepted.
	for _, c := range []Collection{"", "gallery", "featured", "avatars"} {
		assert.False(t, c.Valid(), "collection %q should be rejected", c)
	}
}

func TestCollectionSingleton(t *testing.T) {
	assert.True(t, CollectionFeaturedImage.Singleton())
	assert.True(t, CollectionChapterFeatured.Singleton())
	assert.False(t, CollectionMainGallery.Singleton())
	assert.False(t, CollectionChapterImages.Singleton())
}

func TestCollectionAllowedFor(t *testing.T) {
	tests := []struct {
		collection Collection
		owner      OwnerType
		want       bool
	}{
		{CollectionFeaturedImage, OwnerBiography, true},
		{CollectionFeaturedImage, OwnerChapter, false},
		{CollectionMainGallery, OwnerBiography, true},
		{CollectionMainGallery, OwnerChapter, false},
		{CollectionChapterImages, OwnerChapter, true},
		{CollectionChapterImages, OwnerBiography, false},
		{CollectionChapterFeatured, OwnerChapter, true},
		{CollectionChapterFeatured, OwnerBiography, false},
		{Collection("unknown"), OwnerBiography, false},
	}

	for _, tt := range tests {
		got := tt.collection.AllowedFor(tt.owner)
		assert.Equal(t, tt.want, got, "%s on %s", tt.collection, tt.owner)
	}
}

func TestRenditionURL(t *testing.T) {
	m := &Media{
		OriginalURL: "https://cdn.example.com/a_original.png",
		ConversionURLs: map[string]string{
			"thumb": "https://cdn.example.com/a_thumb.jpg",
			"web":   "",
		},
	}

	t.Run("existing rendition", func(t *testing.T) {
		assert.Equal(t, "https://cdn.example.com/a_thumb.jpg", m.RenditionURL("thumb"))
	})

	t.Run("unknown name falls back to original", func(t *testing.T) {
		assert.Equal(t, m.OriginalURL, m.RenditionURL("poster"))
	})

	t.Run("empty rendition falls back to original", func(t *testing.T) {
		assert.Equal(t, m.OriginalURL, m.RenditionURL("web"))
	})

	t.Run("nil map falls back to original", func(t *testing.T) {
		pending := &Media{OriginalURL: "https://cdn.example.com/b_original.jpg"}
		assert.Equal(t, pending.OriginalURL, pending.RenditionURL("thumb"))
	})
}

func TestMediaActive(t *testing.T) {
	now := time.Now()
	assert.True(t, (&Media{}).Active())
	assert.False(t, (&Media{DeletedAt: &now}).Active())
}

func TestAttachMediaRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		req     AttachMediaRequest
		wantErr bool
	}{
		{"valid biography gallery", AttachMediaRequest{OwnerType: "biography", OwnerID: "x", Collection: "main_gallery"}, false},
		{"valid chapter featured", AttachMediaRequest{OwnerType: "chapter", OwnerID: "x", Collection: "chapter_featured"}, false},
		{"missing owner type", AttachMediaRequest{OwnerID: "x", Collection: "main_gallery"}, true},
		{"unknown owner type", AttachMediaRequest{OwnerType: "album", OwnerID: "x", Collection: "main_gallery"}, true},
		{"missing owner id", AttachMediaRequest{OwnerType: "biography", Collection: "main_gallery"}, true},
		{"unknown collection", AttachMediaRequest{OwnerType: "biography", OwnerID: "x", Collection: "hero_image"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNewMediaResponse_NilConversions(t *testing.T) {
	resp := NewMediaResponse(&Media{Status: StatusPending})
	assert.NotNil(t, resp.ConversionURLs)
	assert.Empty(t, resp.ConversionURLs)
}
