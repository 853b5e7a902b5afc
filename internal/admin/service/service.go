// Package service implements realm administration of user credentials, the browser
// flow executions that enable credential types, credential policies and audit logs.
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	auditdomain "account-console/backend/internal/audit/domain"
	auditrepo "account-console/backend/internal/audit/repository"
	authflowdomain "account-console/backend/internal/authflow/domain"
	authflowrepo "account-console/backend/internal/authflow/repository"
	credentialdomain "account-console/backend/internal/credential/domain"
	credentialrepo "account-console/backend/internal/credential/repository"
	policydomain "account-console/backend/internal/policy/domain"
	policyengine "account-console/backend/internal/policy/engine"
	policyrepo "account-console/backend/internal/policy/repository"
	"account-console/backend/internal/telemetry"
	telemetrydomain "account-console/backend/internal/telemetry/domain"
	userdomain "account-console/backend/internal/user/domain"
)

// Sentinel errors for the admin service; the handler maps them to gRPC codes.
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrCredentialNotFound = errors.New("credential not found")
	ErrExecutionNotFound  = errors.New("execution not found")
	ErrInvalidRequirement = errors.New("invalid requirement")
)

// Audit log page bounds.
const (
	DefaultAuditPageSize = 50
	MaxAuditPageSize     = 500
)

// UserRepo is the minimal user repository needed by the admin service.
type UserRepo interface {
	GetByID(ctx context.Context, id string) (*userdomain.User, error)
}

// Deps are the collaborators of Service. Evaluator and Emitter may be nil.
type Deps struct {
	Users       UserRepo
	Credentials credentialrepo.Repository
	Executions  authflowrepo.Repository
	Policies    policyrepo.Repository
	Evaluator   policyengine.Evaluator
	Audit       auditrepo.Repository
	Emitter     telemetry.EventEmitter
}

// Service implements realm administration. Every method is scoped to realmID.
type Service struct {
	deps Deps
	now  func() time.Time
}

// NewService returns a Service using deps.
func NewService(deps Deps) *Service {
	return &Service{deps: deps, now: func() time.Time { return time.Now().UTC() }}
}

func (s *Service) user(ctx context.Context, realmID, userID string) error {
	u, err := s.deps.Users.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("load user: %w", err)
	}
	if u == nil || u.RealmID != realmID {
		return ErrUserNotFound
	}
	return nil
}

// ListUserCredentials returns every credential of a realm user.
func (s *Service) ListUserCredentials(ctx context.Context, realmID, userID string) ([]*credentialdomain.Credential, error) {
	if err := s.user(ctx, realmID, userID); err != nil {
		return nil, err
	}
	return s.deps.Credentials.ListByUser(ctx, userID)
}

// DeleteUserCredential removes a credential of any type, including passwords and
// credentials whose type is fixed on the user's own panel.
func (s *Service) DeleteUserCredential(ctx context.Context, realmID, userID, credentialID string) error {
	if err := s.user(ctx, realmID, userID); err != nil {
		return err
	}
	c, err := s.deps.Credentials.GetByID(ctx, credentialID)
	if err != nil {
		return fmt.Errorf("load credential: %w", err)
	}
	if c == nil || c.UserID != userID {
		return ErrCredentialNotFound
	}
	if err := s.deps.Credentials.Delete(ctx, userID, credentialID); err != nil {
		if errors.Is(err, credentialrepo.ErrNotFound) {
			return ErrCredentialNotFound
		}
		return fmt.Errorf("delete credential: %w", err)
	}
	s.emit(realmID, userID, telemetrydomain.EventCredentialRemoved, map[string]any{
		"credentialId": credentialID, "type": c.Type,
	})
	return nil
}

// ListExecutions returns the executions of flow, the browser flow when flow is empty.
func (s *Service) ListExecutions(ctx context.Context, realmID, flow string) ([]*authflowdomain.Execution, error) {
	if flow == "" {
		flow = authflowdomain.BrowserFlow
	}
	return s.deps.Executions.ListByFlow(ctx, realmID, flow)
}

// UpdateExecution sets the requirement of an execution. The change shows on every
// user's panel the next time it is computed.
func (s *Service) UpdateExecution(ctx context.Context, realmID, executionID, requirement string) (*authflowdomain.Execution, error) {
	req, err := authflowdomain.ParseRequirement(requirement)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidRequirement, requirement)
	}
	e, err := s.deps.Executions.UpdateRequirement(ctx, realmID, executionID, req)
	if err != nil {
		return nil, fmt.Errorf("update execution: %w", err)
	}
	if e == nil {
		return nil, ErrExecutionNotFound
	}
	s.emit(realmID, "", telemetrydomain.EventExecutionUpdated, map[string]any{
		"executionId": e.ID, "providerId": e.ProviderID, "requirement": e.Requirement,
	})
	return e, nil
}

// ListCredentialPolicies returns the realm's policies, enabled or not.
func (s *Service) ListCredentialPolicies(ctx context.Context, realmID string) ([]*policydomain.Policy, error) {
	return s.deps.Policies.ListByRealm(ctx, realmID)
}

// PutCredentialPolicy creates or replaces the realm policy called name after compiling rules.
func (s *Service) PutCredentialPolicy(ctx context.Context, realmID, name, rules string, enabled bool) (*policydomain.Policy, error) {
	p := &policydomain.Policy{
		ID:        uuid.New().String(),
		RealmID:   realmID,
		Name:      strings.TrimSpace(name),
		Rules:     rules,
		Enabled:   enabled,
		CreatedAt: s.now(),
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if s.deps.Evaluator != nil {
		if err := s.deps.Evaluator.Validate(rules); err != nil {
			return nil, fmt.Errorf("%w: %w", policydomain.ErrInvalidPolicy, err)
		}
	}
	return s.deps.Policies.Upsert(ctx, p)
}

// ListAuditLogs returns one page of the realm's audit log, newest first.
func (s *Service) ListAuditLogs(ctx context.Context, realmID string, f auditdomain.Filter, pageSize, offset int32) ([]*auditdomain.AuditLog, error) {
	if offset < 0 {
		offset = 0
	}
	return s.deps.Audit.ListByRealm(ctx, realmID, f, PageSize(pageSize), offset)
}

// PageSize returns n bounded to (0, MaxAuditPageSize], DefaultAuditPageSize when unset.
func PageSize(n int32) int32 {
	switch {
	case n <= 0:
		return DefaultAuditPageSize
	case n > MaxAuditPageSize:
		return MaxAuditPageSize
	}
	return n
}

func (s *Service) emit(realmID, userID, eventType string, metadata map[string]any) {
	if s.deps.Emitter == nil {
		return
	}
	raw, err := json.Marshal(metadata)
	if err != nil {
		log.Printf("admin: marshal %s metadata: %v", eventType, err)
		return
	}
	telemetry.EmitAsync(s.deps.Emitter, &telemetrydomain.Event{
		RealmID:   realmID,
		UserID:    userID,
		EventType: eventType,
		Source:    "admin",
		Metadata:  raw,
		CreatedAt: s.now(),
	})
}
