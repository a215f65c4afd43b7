package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"memoir-backend/internal/domains/user/model"
)

// Repository is the data access contract for user accounts.
type Repository interface {
	Create(ctx context.Context, u *model.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	Update(ctx context.Context, u *model.User) error
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
	UpdateLastLogin(ctx context.Context, id uuid.UUID) error

	// DeleteWithTx hard-deletes the account inside the given transaction so
	// account erasure can include the user's content in the same commit.
	DeleteWithTx(ctx context.Context, tx pgx.Tx, id uuid.UUID) error
}
