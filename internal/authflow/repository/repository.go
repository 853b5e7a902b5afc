package repository

import (
	"context"

	"account-console/backend/internal/authflow/domain"
)

// Repository defines persistence for authentication flow executions.
type Repository interface {
	// ListByFlow returns the executions of a realm flow ordered by priority.
	ListByFlow(ctx context.Context, realmID, flowAlias string) ([]*domain.Execution, error)
	GetByID(ctx context.Context, id string) (*domain.Execution, error)
	Create(ctx context.Context, e *domain.Execution) error
	// UpdateRequirement sets the requirement of the execution with id in realmID.
	// Returns nil, nil if no such execution exists.
	UpdateRequirement(ctx context.Context, realmID, id string, req domain.Requirement) (*domain.Execution, error)
}
