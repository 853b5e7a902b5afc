package repository

import (
	"context"

	"account-console/backend/internal/realm/domain"
)

// Repository defines persistence for realms.
type Repository interface {
	GetByID(ctx context.Context, id string) (*domain.Realm, error)
	GetByName(ctx context.Context, name string) (*domain.Realm, error)
	Create(ctx context.Context, r *domain.Realm) error
}
