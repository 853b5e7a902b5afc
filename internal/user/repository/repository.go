package repository

import (
	"context"

	"account-console/backend/internal/user/domain"
)

// Repository defines persistence for users.
type Repository interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByUsername(ctx context.Context, realmID, username string) (*domain.User, error)
	Create(ctx context.Context, u *domain.User) error
}
