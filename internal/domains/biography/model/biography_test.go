package model

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func words(n int) string {
	return strings.TrimSpace(strings.Repeat("word ", n))
}

func TestEstimatedReadingTime(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		chapters []Chapter
		want     int
	}{
		{"empty content floors at one minute", "", nil, 1},
		{"whitespace only floors at one minute", "   \n\t  ", nil, 1},
		{"single word floors at one minute", "hello", nil, 1},
		{"exactly one minute", words(200), nil, 1},
		{"one word over rounds up", words(201), nil, 2},
		{"exactly two minutes", words(400), nil, 2},
		{"chapter bodies are counted", words(100), []Chapter{
			{Content: words(100)},
			{Content: words(100)},
		}, 2},
		{"empty chapters add nothing", words(200), []Chapter{{Content: ""}}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EstimatedReadingTime(tt.content, tt.chapters))
		})
	}
}

func TestEstimatedReadingTime_Monotonic(t *testing.T) {
	// Adding content never lowers the estimate.
	prev := 0
	for n := 0; n <= 1000; n += 100 {
		got := EstimatedReadingTime(words(n), nil)
		require.GreaterOrEqual(t, got, prev, "estimate dropped at %d words", n)
		prev = got
	}
}

func TestAccess(t *testing.T) {
	ownerID := uuid.New()
	strangerID := uuid.New()

	owner := Viewer{ID: ownerID, Authenticated: true}
	stranger := Viewer{ID: strangerID, Authenticated: true}
	anonymous := Anonymous()

	tests := []struct {
		name     string
		isPublic bool
		viewer   Viewer
		canView  bool
		canEdit  bool
	}{
		{"owner views private", false, owner, true, true},
		{"owner views public", true, owner, true, true},
		{"stranger views private", false, stranger, false, false},
		{"stranger views public", true, stranger, true, false},
		{"anonymous views private", false, anonymous, false, false},
		{"anonymous views public", true, anonymous, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &Biography{ID: uuid.New(), OwnerID: ownerID, IsPublic: tt.isPublic}
			assert.Equal(t, tt.canView, b.CanView(tt.viewer))
			assert.Equal(t, tt.canEdit, b.CanEdit(tt.viewer))
		})
	}
}

func TestAccess_AnonymousNeverOwns(t *testing.T) {
	// An unauthenticated viewer with a forged matching ID still fails the
	// owner check.
	ownerID := uuid.New()
	b := &Biography{OwnerID: ownerID, IsPublic: false}
	forged := Viewer{ID: ownerID, Authenticated: false}

	assert.False(t, b.CanView(forged))
	assert.False(t, b.CanEdit(forged))
}

func TestChapterDisplayRange(t *testing.T) {
	from := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2021, 6, 1, 0, 0, 0, 0, time.UTC)

	t.Run("finished chapter keeps both dates", func(t *testing.T) {
		ch := &Chapter{DateFrom: &from, DateTo: &to, IsOngoing: false}
		gotFrom, gotTo := ch.DisplayRange()
		assert.Equal(t, &from, gotFrom)
		assert.Equal(t, &to, gotTo)
	})

	t.Run("ongoing chapter hides stored end date", func(t *testing.T) {
		ch := &Chapter{DateFrom: &from, DateTo: &to, IsOngoing: true}
		gotFrom, gotTo := ch.DisplayRange()
		assert.Equal(t, &from, gotFrom)
		assert.Nil(t, gotTo)
	})
}

func TestCreateBiographyRequestValidate(t *testing.T) {
	longExcerpt := strings.Repeat("a", MaxExcerptLength+1)
	okExcerpt := strings.Repeat("a", MaxExcerptLength)

	tests := []struct {
		name    string
		req     CreateBiographyRequest
		wantErr bool
	}{
		{"valid single", CreateBiographyRequest{Title: "My Life", Type: "single"}, false},
		{"valid chapters", CreateBiographyRequest{Title: "My Life", Type: "chapters"}, false},
		{"missing title", CreateBiographyRequest{Type: "single"}, true},
		{"missing type", CreateBiographyRequest{Title: "My Life"}, true},
		{"unknown type", CreateBiographyRequest{Title: "My Life", Type: "memoir"}, true},
		{"excerpt at limit", CreateBiographyRequest{Title: "My Life", Type: "single", Excerpt: &okExcerpt}, false},
		{"excerpt over limit", CreateBiographyRequest{Title: "My Life", Type: "single", Excerpt: &longExcerpt}, true},
		{"title over limit", CreateBiographyRequest{Title: strings.Repeat("t", MaxTitleLength+1), Type: "single"}, true},
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

func TestAddChapterRequestValidate(t *testing.T) {
	from := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	before := time.Date(2019, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		req     AddChapterRequest
		wantErr bool
	}{
		{"valid", AddChapterRequest{Title: "Childhood", Content: "It began."}, false},
		{"missing title", AddChapterRequest{Content: "It began."}, true},
		{"missing content", AddChapterRequest{Title: "Childhood"}, true},
		{"inverted range", AddChapterRequest{Title: "Childhood", Content: "x", DateFrom: &from, DateTo: &before}, true},
		{"inverted range ignored when ongoing", AddChapterRequest{Title: "Childhood", Content: "x", DateFrom: &from, DateTo: &before, IsOngoing: true}, false},
		{"open-ended range", AddChapterRequest{Title: "Childhood", Content: "x", DateFrom: &from}, false},
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

func TestNewBiographyResponse(t *testing.T) {
	ownerID := uuid.New()

	t.Run("single narrative", func(t *testing.T) {
		excerpt := "short"
		b := &Biography{
			ID:      uuid.New(),
			OwnerID: ownerID,
			Title:   "My Life",
			Type:    TypeSingle,
			Content: words(300),
			Excerpt: &excerpt,
		}

		resp := NewBiographyResponse(b, nil)
		assert.Equal(t, ContentKindSingle, resp.Body.Kind)
		require.NotNil(t, resp.Body.Content)
		assert.Equal(t, b.Content, *resp.Body.Content)
		assert.Nil(t, resp.Body.Chapters)
		assert.Equal(t, 2, resp.ReadingTimeMinutes)
	})

	t.Run("chapter sequence", func(t *testing.T) {
		b := &Biography{
			ID:      uuid.New(),
			OwnerID: ownerID,
			Title:   "My Life",
			Type:    TypeChapters,
		}
		chapters := []Chapter{
			{ID: uuid.New(), Title: "One", Content: words(100), SortOrder: 0},
			{ID: uuid.New(), Title: "Two", Content: words(150), SortOrder: 1},
		}

		resp := NewBiographyResponse(b, chapters)
		assert.Equal(t, ContentKindChapters, resp.Body.Kind)
		assert.Nil(t, resp.Body.Content)
		require.Len(t, resp.Body.Chapters, 2)
		assert.Equal(t, "One", resp.Body.Chapters[0].Title)
		assert.Equal(t, 2, resp.ReadingTimeMinutes)
	})

	t.Run("chapter type with no chapters still tags as chapters", func(t *testing.T) {
		b := &Biography{ID: uuid.New(), OwnerID: ownerID, Type: TypeChapters}

		resp := NewBiographyResponse(b, nil)
		assert.Equal(t, ContentKindChapters, resp.Body.Kind)
		assert.NotNil(t, resp.Body.Chapters)
		assert.Empty(t, resp.Body.Chapters)
		assert.Equal(t, 1, resp.ReadingTimeMinutes)
	})
}

func TestListBiographiesRequestNormalize(t *testing.T) {
	tests := []struct {
		name      string
		page      int
		limit     int
		wantPage  int
		wantLimit int
	}{
		{"defaults", 0, 0, 1, 20},
		{"negative page", -3, 10, 1, 10},
		{"limit over cap", 1, 500, 1, 20},
		{"valid passthrough", 2, 50, 2, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := ListBiographiesRequest{Page: tt.page, Limit: tt.limit}
			req.Normalize()
			assert.Equal(t, tt.wantPage, req.Page)
			assert.Equal(t, tt.wantLimit, req.Limit)
		})
	}
}
