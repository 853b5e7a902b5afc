package repository

import (
	"context"

	"account-console/backend/internal/membership/domain"
)

// Repository defines persistence for realm memberships.
type Repository interface {
	GetMembershipByUserAndRealm(ctx context.Context, userID, realmID string) (*domain.Membership, error)
	CreateMembership(ctx context.Context, m *domain.Membership) error
}
