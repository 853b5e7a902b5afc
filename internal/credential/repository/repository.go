package repository

import (
	"context"

	"account-console/backend/internal/credential/domain"
)

// Repository defines persistence for user credentials.
type Repository interface {
	GetByID(ctx context.Context, id string) (*domain.Credential, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.Credential, error)
	Create(ctx context.Context, c *domain.Credential) error
	// UpdateSecret replaces secret data of an existing credential. Returns ErrNotFound if no row matches.
	UpdateSecret(ctx context.Context, id, secretData, credentialData string) error
	// Delete removes the credential of userID with id. Returns ErrNotFound if no row matches.
	Delete(ctx context.Context, userID, id string) error
}

// OrderRepository persists the per-user credential type order.
type OrderRepository interface {
	// GetOrder returns the stored order, or nil if the user never stored one.
	GetOrder(ctx context.Context, userID string) ([]domain.TypeID, error)
	// SaveOrder replaces the stored order atomically.
	SaveOrder(ctx context.Context, userID string, order []domain.TypeID) error
}
