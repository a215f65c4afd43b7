package model

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConsentStatusResponse(t *testing.T) {
	t.Run("latest decision wins per purpose", func(t *testing.T) {
		history := []ConsentRecord{
			{Purpose: PurposeAnalytics, Granted: true},
			{Purpose: PurposeMarketing, Granted: true},
			{Purpose: PurposeAnalytics, Granted: false},
			{Purpose: PurposeAnalytics, Granted: true},
			{Purpose: PurposeMarketing, Granted: false},
		}

		resp := NewConsentStatusResponse(history)
		assert.True(t, resp.Current[PurposeAnalytics])
		assert.False(t, resp.Current[PurposeMarketing])
		assert.Len(t, resp.History, 5)
	})

	t.Run("purpose never decided is absent", func(t *testing.T) {
		resp := NewConsentStatusResponse([]ConsentRecord{
			{Purpose: PurposeAnalytics, Granted: true},
		})
		_, ok := resp.Current[PurposePublicSharing]
		assert.False(t, ok)
	})

	t.Run("empty history", func(t *testing.T) {
		resp := NewConsentStatusResponse(nil)
		require.NotNil(t, resp.Current)
		require.NotNil(t, resp.History)
		assert.Empty(t, resp.Current)
		assert.Empty(t, resp.History)
	})
}

func TestConsentRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		req     ConsentRequest
		wantErr bool
	}{
		{"valid", ConsentRequest{Purpose: PurposeAnalytics, Method: "settings_toggle", Version: "2026-01"}, false},
		{"unknown purpose", ConsentRequest{Purpose: "telemetry", Method: "settings_toggle", Version: "2026-01"}, true},
		{"missing method", ConsentRequest{Purpose: PurposeAnalytics, Version: "2026-01"}, true},
		{"missing version", ConsentRequest{Purpose: PurposeAnalytics, Method: "settings_toggle"}, true},
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

func TestRestrictionRequestValidate(t *testing.T) {
	assert.NoError(t, RestrictionRequest{Reason: "disputing accuracy of content"}.Validate())
	assert.Error(t, RestrictionRequest{}.Validate())
	assert.Error(t, RestrictionRequest{Reason: strings.Repeat("r", 1001)}.Validate())
}

func TestBreachReportRequestValidate(t *testing.T) {
	assert.NoError(t, BreachReportRequest{Title: "Leaked export link", Description: "The link was shared publicly."}.Validate())
	assert.Error(t, BreachReportRequest{Description: "no title"}.Validate())
	assert.Error(t, BreachReportRequest{Title: "no description"}.Validate())
}

func TestListActivityRequestNormalize(t *testing.T) {
	req := ListActivityRequest{}
	req.Normalize()
	assert.Equal(t, 1, req.Page)
	assert.Equal(t, 50, req.Limit)

	req = ListActivityRequest{Page: 3, Limit: 1000}
	req.Normalize()
	assert.Equal(t, 3, req.Page)
	assert.Equal(t, 50, req.Limit)
}
