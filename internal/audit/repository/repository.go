package repository

import (
	"context"

	"account-console/backend/internal/audit/domain"
)

// Repository defines persistence for audit logs.
type Repository interface {
	GetByID(ctx context.Context, id string) (*domain.AuditLog, error)
	// ListByRealm returns the realm's entries newest first.
	ListByRealm(ctx context.Context, realmID string, f domain.Filter, limit, offset int32) ([]*domain.AuditLog, error)
	Create(ctx context.Context, a *domain.AuditLog) error
}
