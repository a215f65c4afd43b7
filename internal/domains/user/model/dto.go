package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// =====================================================
// REQUEST DTOs
// =====================================================

type RegisterRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
}

func (r RegisterRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email,
			validation.Required.Error("Email must not be empty"),
			is.Email.Error("Email is not valid"),
		),
		validation.Field(&r.Password,
			validation.Required.Error("Password must not be empty"),
			validation.Length(8, 72).Error("Password must be between 8 and 72 characters"),
		),
		validation.Field(&r.DisplayName,
			validation.Required.Error("Display name must not be empty"),
			validation.Length(1, 100),
		),
	)
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required.Error("Email must not be empty")),
		validation.Field(&r.Password, validation.Required.Error("Password must not be empty")),
	)
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

func (r RefreshTokenRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.RefreshToken, validation.Required.Error("Refresh token must not be empty")),
	)
}

type UpdateProfileRequest struct {
	DisplayName *string `json:"display_name"`
}

func (r UpdateProfileRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.DisplayName,
			validation.NilOrNotEmpty.Error("Display name must not be empty"),
			validation.Length(1, 100),
		),
	)
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

func (r ChangePasswordRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.CurrentPassword, validation.Required.Error("Current password must not be empty")),
		validation.Field(&r.NewPassword,
			validation.Required.Error("New password must not be empty"),
			validation.Length(8, 72).Error("Password must be between 8 and 72 characters"),
		),
	)
}

// =====================================================
// RESPONSE DTOs
// =====================================================

type LoginResponse struct {
	AccessToken  string        `json:"access_token"`
	RefreshToken string        `json:"refresh_token"`
	User         *UserResponse `json:"user"`
}
