package model

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegisterRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		req     RegisterRequest
		wantErr bool
	}{
		{"valid", RegisterRequest{Email: "ana@example.com", Password: "correcthorse", DisplayName: "Ana"}, false},
		{"bad email", RegisterRequest{Email: "not-an-email", Password: "correcthorse", DisplayName: "Ana"}, true},
		{"short password", RegisterRequest{Email: "ana@example.com", Password: "short", DisplayName: "Ana"}, true},
		{"password over bcrypt limit", RegisterRequest{Email: "ana@example.com", Password: strings.Repeat("p", 73), DisplayName: "Ana"}, true},
		{"missing display name", RegisterRequest{Email: "ana@example.com", Password: "correcthorse"}, true},
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

func TestChangePasswordRequestValidate(t *testing.T) {
	assert.NoError(t, ChangePasswordRequest{CurrentPassword: "oldsecret1", NewPassword: "newsecret1"}.Validate())
	assert.Error(t, ChangePasswordRequest{NewPassword: "newsecret1"}.Validate())
	assert.Error(t, ChangePasswordRequest{CurrentPassword: "oldsecret1", NewPassword: "tiny"}.Validate())
}

func TestUpdateProfileRequestValidate(t *testing.T) {
	name := "Ana Marie"
	empty := ""

	assert.NoError(t, UpdateProfileRequest{}.Validate())
	assert.NoError(t, UpdateProfileRequest{DisplayName: &name}.Validate())
	assert.Error(t, UpdateProfileRequest{DisplayName: &empty}.Validate())
}
