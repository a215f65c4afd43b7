package service

import (
	"context"

	"github.com/google/uuid"

	"memoir-backend/internal/domains/user/model"
)

// Service is the business logic contract for accounts and authentication.
type Service interface {
	Register(ctx context.Context, req model.RegisterRequest) (*model.UserResponse, error)
	Login(ctx context.Context, req model.LoginRequest) (*model.LoginResponse, error)
	RefreshTokens(ctx context.Context, req model.RefreshTokenRequest) (*model.LoginResponse, error)

	GetProfile(ctx context.Context, userID uuid.UUID) (*model.UserResponse, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req model.UpdateProfileRequest) (*model.UserResponse, error)
	ChangePassword(ctx context.Context, userID uuid.UUID, req model.ChangePasswordRequest) error
}
