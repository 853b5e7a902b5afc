// Package service implements the self-service "Signing in" panel: listing, reordering,
// registering, updating and removing a user's credentials.
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	authflowdomain "account-console/backend/internal/authflow/domain"
	credentialdomain "account-console/backend/internal/credential/domain"
	"account-console/backend/internal/credential/passwordpolicy"
	credentialrepo "account-console/backend/internal/credential/repository"
	"account-console/backend/internal/panel"
	policyengine "account-console/backend/internal/policy/engine"
	realmdomain "account-console/backend/internal/realm/domain"
	"account-console/backend/internal/security"
	"account-console/backend/internal/setup"
	"account-console/backend/internal/telemetry"
	telemetrydomain "account-console/backend/internal/telemetry/domain"
	userdomain "account-console/backend/internal/user/domain"
)

// Sentinel errors for the account service; the handler maps them to gRPC codes.
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrCredentialNotFound = errors.New("credential not found")
	ErrCreateNotOffered   = errors.New("credential type cannot be set up")
	ErrNotRemovable       = errors.New("credential cannot be removed")
	ErrSetupNotFound      = errors.New("setup not found or expired")
	ErrInvalidOTPCode     = errors.New("invalid authenticator code")
	ErrNotConfirmed       = errors.New("recovery codes must be confirmed as saved")
	ErrPasswordConfirm    = errors.New("password confirmation does not match")
	ErrPasswordPolicy     = errors.New("password does not satisfy realm policy")
)

// RealmRepo is the minimal realm repository needed by the service.
type RealmRepo interface {
	GetByID(ctx context.Context, id string) (*realmdomain.Realm, error)
}

// UserRepo is the minimal user repository needed by the service.
type UserRepo interface {
	GetByID(ctx context.Context, id string) (*userdomain.User, error)
}

// ExecutionRepo is the minimal authentication flow repository needed by the service.
type ExecutionRepo interface {
	ListByFlow(ctx context.Context, realmID, flowAlias string) ([]*authflowdomain.Execution, error)
}

// CredentialRepo stores credentials and the per-user type order.
type CredentialRepo interface {
	credentialrepo.Repository
	credentialrepo.OrderRepository
}

// MetricsRecorder counts panel operations.
type MetricsRecorder interface {
	Record(ctx context.Context, op, credType, outcome string)
}

// Deps are the collaborators of Service. Policy, Emitter and Metrics may be nil.
type Deps struct {
	Realms      RealmRepo
	Users       UserRepo
	Executions  ExecutionRepo
	Credentials CredentialRepo
	Policy      policyengine.Evaluator
	Setups      setup.Store
	Hasher      *security.Hasher
	Emitter     telemetry.EventEmitter
	Metrics     MetricsRecorder
	// SetupTTL bounds how long a started registration can be completed.
	SetupTTL time.Duration
	// TOTPIssuer is the issuer shown by authenticator apps. Empty means the realm name.
	TOTPIssuer string
	// RecoveryCodeCount is the number of codes per batch.
	RecoveryCodeCount int
	// Now is the clock for timestamps and setup expiry. It must be the clock Setups checks expiry with.
	// Nil means the wall clock in UTC.
	Now func() time.Time
}

// Service implements the account console credential operations.
type Service struct {
	deps Deps
	now  func() time.Time
}

// NewService returns a Service using deps.
func NewService(deps Deps) *Service {
	if deps.SetupTTL <= 0 {
		deps.SetupTTL = 10 * time.Minute
	}
	if deps.RecoveryCodeCount <= 0 {
		deps.RecoveryCodeCount = 12
	}
	now := deps.Now
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	return &Service{deps: deps, now: now}
}

// state is everything one panel computation reads.
type state struct {
	realm *realmdomain.Realm
	user  *userdomain.User
	snap  panel.Snapshot
}

func (s *Service) load(ctx context.Context, realmID, userID string) (*state, error) {
	user, err := s.deps.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}
	if user == nil || user.RealmID != realmID {
		return nil, ErrUserNotFound
	}
	realm, err := s.deps.Realms.GetByID(ctx, realmID)
	if err != nil {
		return nil, fmt.Errorf("load realm: %w", err)
	}
	if realm == nil {
		return nil, ErrUserNotFound
	}
	creds, err := s.deps.Credentials.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load credentials: %w", err)
	}
	execs, err := s.deps.Executions.ListByFlow(ctx, realmID, authflowdomain.BrowserFlow)
	if err != nil {
		return nil, fmt.Errorf("load browser flow: %w", err)
	}
	pref, err := s.deps.Credentials.GetOrder(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load credential order: %w", err)
	}
	st := &state{
		realm: realm,
		user:  user,
		snap:  panel.Snapshot{Credentials: creds, Executions: execs, Preference: pref},
	}
	if s.deps.Policy != nil {
		vetoes, err := s.deps.Policy.CreateVetoes(ctx, policyInput(st))
		if err != nil {
			return nil, fmt.Errorf("evaluate credential policy: %w", err)
		}
		st.snap.CreateVetoes = vetoes
	}
	return st, nil
}

func policyInput(st *state) policyengine.Input {
	reqs := make(map[credentialdomain.TypeID]string)
	for _, e := range st.snap.Executions {
		if spec, ok := credentialdomain.LookupByProvider(e.ProviderID); ok {
			if _, seen := reqs[spec.ID]; !seen {
				reqs[spec.ID] = string(e.Requirement)
			}
		}
	}
	return policyengine.Input{
		RealmID:      st.realm.ID,
		RealmName:    st.realm.Name,
		UserID:       st.user.ID,
		Username:     st.user.Username,
		Email:        st.user.Email,
		Configured:   credentialdomain.CountByType(st.snap.Credentials),
		Requirements: reqs,
	}
}

func findRow(rows []panel.Row, t credentialdomain.TypeID) *panel.Row {
	for i := range rows {
		if rows[i].Type == t {
			return &rows[i]
		}
	}
	return nil
}

// GetSigningIn returns the rows of the user's signing-in panel.
func (s *Service) GetSigningIn(ctx context.Context, realmID, userID string) ([]panel.Row, error) {
	st, err := s.load(ctx, realmID, userID)
	if err != nil {
		return nil, err
	}
	return panel.ComputeRows(st.snap)
}

// MoveCredential moves type t one position in dir and returns the rows afterwards.
// A move at the boundary succeeds and leaves the stored order untouched.
func (s *Service) MoveCredential(ctx context.Context, realmID, userID string, t credentialdomain.TypeID, dir panel.Direction) ([]panel.Row, error) {
	st, err := s.load(ctx, realmID, userID)
	if err != nil {
		return nil, err
	}
	pref, changed, err := panel.Move(st.snap, t, dir)
	if err != nil {
		s.record(ctx, "move", t, err)
		return nil, err
	}
	if changed {
		if err := s.deps.Credentials.SaveOrder(ctx, userID, pref); err != nil {
			s.record(ctx, "move", t, err)
			return nil, fmt.Errorf("save credential order: %w", err)
		}
		st.snap.Preference = pref
		s.emit(realmID, userID, telemetrydomain.EventCredentialsMoved, map[string]any{
			"type": t, "direction": dir.String(), "order": pref,
		})
	}
	s.record(ctx, "move", t, nil)
	return panel.ComputeRows(st.snap)
}

// SetupResult describes a started registration.
type SetupResult struct {
	// SetupID is empty for password, which has no pending state.
	SetupID        string
	Type           credentialdomain.TypeID
	RequiredAction credentialdomain.RequiredAction
	PageTitle      string
	// Secret and OTPAuthURL are set for otp.
	Secret     string
	OTPAuthURL string
	// RecoveryCodes are set for recovery-authn-codes and are never returned again.
	RecoveryCodes []string
	ExpiresAt     time.Time
}

// StartCredentialSetup begins registering a credential of type t. The panel row
// must currently offer create.
func (s *Service) StartCredentialSetup(ctx context.Context, realmID, userID string, t credentialdomain.TypeID) (*SetupResult, error) {
	st, err := s.load(ctx, realmID, userID)
	if err != nil {
		return nil, err
	}
	rows, err := panel.ComputeRows(st.snap)
	if err != nil {
		return nil, err
	}
	row := findRow(rows, t)
	if row == nil || row.Create == nil {
		return nil, fmt.Errorf("%w: %s", ErrCreateNotOffered, t)
	}
	res := &SetupResult{Type: t, RequiredAction: row.Create.RequiredAction, PageTitle: row.Create.PageTitle}
	pending := setup.Pending{
		ID:        uuid.New().String(),
		UserID:    userID,
		Type:      t,
		ExpiresAt: s.now().Add(s.deps.SetupTTL),
	}
	switch t {
	case credentialdomain.TypeOTP:
		issuer := s.deps.TOTPIssuer
		if issuer == "" {
			issuer = st.realm.Name
		}
		secret, url, err := setup.GenerateTOTP(issuer, st.user.Username)
		if err != nil {
			return nil, err
		}
		pending.Secret = secret
		res.Secret, res.OTPAuthURL = secret, url
	case credentialdomain.TypeRecoveryAuthnCodes:
		codes, err := setup.NewRecoveryCodes(s.deps.RecoveryCodeCount)
		if err != nil {
			return nil, err
		}
		pending.Codes = codes
		res.RecoveryCodes = codes
	default:
		return res, nil
	}
	s.deps.Setups.Put(ctx, pending)
	res.SetupID = pending.ID
	res.ExpiresAt = pending.ExpiresAt
	return res, nil
}

// CompleteOtpSetup stores the otp credential of a started setup once code verifies against its secret.
// A wrong code leaves the setup pending so the user can retry.
func (s *Service) CompleteOtpSetup(ctx context.Context, realmID, userID, setupID, code, label string) (*credentialdomain.Credential, error) {
	p, ok := s.deps.Setups.Peek(ctx, userID, setupID)
	if !ok || p.Type != credentialdomain.TypeOTP {
		return nil, ErrSetupNotFound
	}
	if !setup.ValidateTOTP(code, p.Secret, s.now()) {
		s.record(ctx, "create", credentialdomain.TypeOTP, ErrInvalidOTPCode)
		return nil, ErrInvalidOTPCode
	}
	if err := s.ensureCreateOffered(ctx, realmID, userID, credentialdomain.TypeOTP); err != nil {
		return nil, err
	}
	if _, ok := s.deps.Setups.Take(ctx, userID, setupID); !ok {
		return nil, ErrSetupNotFound
	}
	return s.create(ctx, realmID, &credentialdomain.Credential{
		UserID:         userID,
		Type:           credentialdomain.TypeOTP,
		UserLabel:      label,
		SecretData:     p.Secret,
		CredentialData: setup.OTPCredentialJSON(),
	})
}

// CompleteRecoveryCodesSetup stores the hashed codes of a started setup after the user confirmed saving them.
func (s *Service) CompleteRecoveryCodesSetup(ctx context.Context, realmID, userID, setupID string, confirmed bool) (*credentialdomain.Credential, error) {
	if !confirmed {
		return nil, ErrNotConfirmed
	}
	p, ok := s.deps.Setups.Peek(ctx, userID, setupID)
	if !ok || p.Type != credentialdomain.TypeRecoveryAuthnCodes {
		return nil, ErrSetupNotFound
	}
	if err := s.ensureCreateOffered(ctx, realmID, userID, credentialdomain.TypeRecoveryAuthnCodes); err != nil {
		return nil, err
	}
	secret, data, err := setup.EncodeRecoveryCodes(p.Codes)
	if err != nil {
		return nil, err
	}
	if _, ok := s.deps.Setups.Take(ctx, userID, setupID); !ok {
		return nil, ErrSetupNotFound
	}
	return s.create(ctx, realmID, &credentialdomain.Credential{
		UserID:         userID,
		Type:           credentialdomain.TypeRecoveryAuthnCodes,
		SecretData:     secret,
		CredentialData: data,
	})
}

func (s *Service) ensureCreateOffered(ctx context.Context, realmID, userID string, t credentialdomain.TypeID) error {
	st, err := s.load(ctx, realmID, userID)
	if err != nil {
		return err
	}
	rows, err := panel.ComputeRows(st.snap)
	if err != nil {
		return err
	}
	if row := findRow(rows, t); row == nil || row.Create == nil {
		return fmt.Errorf("%w: %s", ErrCreateNotOffered, t)
	}
	return nil
}

func (s *Service) create(ctx context.Context, realmID string, c *credentialdomain.Credential) (*credentialdomain.Credential, error) {
	c.ID = uuid.New().String()
	c.CreatedAt = s.now()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if err := s.deps.Credentials.Create(ctx, c); err != nil {
		s.record(ctx, "create", c.Type, err)
		return nil, fmt.Errorf("create credential: %w", err)
	}
	s.record(ctx, "create", c.Type, nil)
	s.emit(realmID, c.UserID, telemetrydomain.EventCredentialCreated, map[string]any{
		"credentialId": c.ID, "type": c.Type,
	})
	return c, nil
}

// UpdatePassword validates newPassword against the realm policy and stores its hash,
// creating the password credential when the user has none.
func (s *Service) UpdatePassword(ctx context.Context, realmID, userID, newPassword, confirmation string) error {
	if newPassword != confirmation {
		return ErrPasswordConfirm
	}
	st, err := s.load(ctx, realmID, userID)
	if err != nil {
		return err
	}
	policy, err := passwordpolicy.Parse(st.realm.PasswordPolicy)
	if err != nil {
		// Unparseable stored policies enforce nothing.
		log.Printf("account: realm %s password policy: %v", realmID, err)
	}
	if err := policy.Validate(newPassword, st.user.Username); err != nil {
		s.record(ctx, "update_password", credentialdomain.TypePassword, err)
		return fmt.Errorf("%w: %w", ErrPasswordPolicy, err)
	}
	hash, err := s.deps.Hasher.Hash([]byte(newPassword))
	if err != nil {
		return err
	}
	var existing *credentialdomain.Credential
	for _, c := range st.snap.Credentials {
		if c.Type == credentialdomain.TypePassword {
			existing = c
			break
		}
	}
	if existing == nil {
		rows, err := panel.ComputeRows(st.snap)
		if err != nil {
			return err
		}
		if row := findRow(rows, credentialdomain.TypePassword); row == nil || row.Create == nil {
			return fmt.Errorf("%w: %s", ErrCreateNotOffered, credentialdomain.TypePassword)
		}
		_, err = s.create(ctx, realmID, &credentialdomain.Credential{
			UserID:     userID,
			Type:       credentialdomain.TypePassword,
			SecretData: hash,
		})
		return err
	}
	if err := s.deps.Credentials.UpdateSecret(ctx, existing.ID, hash, existing.CredentialData); err != nil {
		s.record(ctx, "update_password", credentialdomain.TypePassword, err)
		if errors.Is(err, credentialrepo.ErrNotFound) {
			return ErrCredentialNotFound
		}
		return fmt.Errorf("update password: %w", err)
	}
	s.record(ctx, "update_password", credentialdomain.TypePassword, nil)
	s.emit(realmID, userID, telemetrydomain.EventCredentialUpdated, map[string]any{
		"credentialId": existing.ID, "type": credentialdomain.TypePassword,
	})
	return nil
}

// RemoveCredential deletes one of the user's credentials when its panel row offers remove.
func (s *Service) RemoveCredential(ctx context.Context, realmID, userID, credentialID string) error {
	st, err := s.load(ctx, realmID, userID)
	if err != nil {
		return err
	}
	var target *credentialdomain.Credential
	for _, c := range st.snap.Credentials {
		if c.ID == credentialID {
			target = c
			break
		}
	}
	if target == nil {
		return ErrCredentialNotFound
	}
	rows, err := panel.ComputeRows(st.snap)
	if err != nil {
		return err
	}
	if row := findRow(rows, target.Type); row == nil || !row.Removable {
		s.record(ctx, "remove", target.Type, ErrNotRemovable)
		return fmt.Errorf("%w: %s", ErrNotRemovable, target.Type)
	}
	if err := s.deps.Credentials.Delete(ctx, userID, credentialID); err != nil {
		s.record(ctx, "remove", target.Type, err)
		if errors.Is(err, credentialrepo.ErrNotFound) {
			return ErrCredentialNotFound
		}
		return fmt.Errorf("delete credential: %w", err)
	}
	s.record(ctx, "remove", target.Type, nil)
	s.emit(realmID, userID, telemetrydomain.EventCredentialRemoved, map[string]any{
		"credentialId": credentialID, "type": target.Type,
	})
	return nil
}

func (s *Service) record(ctx context.Context, op string, t credentialdomain.TypeID, err error) {
	if s.deps.Metrics == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	s.deps.Metrics.Record(ctx, op, string(t), outcome)
}

func (s *Service) emit(realmID, userID, eventType string, metadata map[string]any) {
	if s.deps.Emitter == nil {
		return
	}
	raw, err := json.Marshal(metadata)
	if err != nil {
		log.Printf("account: marshal %s metadata: %v", eventType, err)
		return
	}
	telemetry.EmitAsync(s.deps.Emitter, &telemetrydomain.Event{
		RealmID:   realmID,
		UserID:    userID,
		EventType: eventType,
		Source:    "account",
		Metadata:  raw,
		CreatedAt: s.now(),
	})
}
