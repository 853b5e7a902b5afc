// Package engine evaluates realm credential policies written in Rego.
package engine

import (
	"context"

	credentialdomain "account-console/backend/internal/credential/domain"
)

// Input describes the user and realm a credential policy decides about.
type Input struct {
	RealmID   string
	RealmName string
	UserID    string
	Username  string
	Email     string
	// Configured counts the user's credentials per type.
	Configured map[credentialdomain.TypeID]int
	// Requirements maps each type to its browser-flow execution requirement, if any.
	Requirements map[credentialdomain.TypeID]string
}

// Evaluator decides which credential types a user may not create.
type Evaluator interface {
	// CreateVetoes returns the set of types whose creation the realm's policies forbid.
	CreateVetoes(ctx context.Context, in Input) (map[credentialdomain.TypeID]bool, error)
	// Validate compiles rules as a standalone credential policy module.
	Validate(rules string) error
	// HealthCheck verifies the engine can compile and evaluate the built-in policy.
	HealthCheck(ctx context.Context) error
}
