package repository

import (
	"context"

	"account-console/backend/internal/policy/domain"
)

// Repository defines persistence for realm credential policies.
type Repository interface {
	ListByRealm(ctx context.Context, realmID string) ([]*domain.Policy, error)
	// GetEnabledByRealm returns only enabled policies, ordered by name.
	GetEnabledByRealm(ctx context.Context, realmID string) ([]*domain.Policy, error)
	// Upsert creates the policy or replaces rules and enabled flag of the realm's policy with the same name.
	// Returns the stored policy.
	Upsert(ctx context.Context, p *domain.Policy) (*domain.Policy, error)
}
