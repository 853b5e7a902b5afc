package service

import (
	"context"
	"errors"
	"strings"
	"time"

	credentialdomain "account-console/backend/internal/credential/domain"
	realmdomain "account-console/backend/internal/realm/domain"
	"account-console/backend/internal/security"
	userdomain "account-console/backend/internal/user/domain"
)

// Sentinel errors for auth service; handler maps them to gRPC codes.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// AuthResult holds the outcome of Login.
type AuthResult struct {
	AccessToken string
	ExpiresAt   time.Time
	UserID      string
	RealmID     string
}

// RealmRepo is the minimal realm repository needed by the auth service.
type RealmRepo interface {
	GetByName(ctx context.Context, name string) (*realmdomain.Realm, error)
}

// UserRepo is the minimal user repository needed by the auth service.
type UserRepo interface {
	GetByID(ctx context.Context, id string) (*userdomain.User, error)
	GetByUsername(ctx context.Context, realmID, username string) (*userdomain.User, error)
}

// CredentialRepo is the minimal credential repository needed by the auth service.
type CredentialRepo interface {
	ListByUser(ctx context.Context, userID string) ([]*credentialdomain.Credential, error)
}

// AccessIssuer issues access tokens.
type AccessIssuer interface {
	IssueAccess(id security.Identity) (token string, expiresAt time.Time, err error)
}

// AuthService implements password login against a realm's users.
type AuthService struct {
	realmRepo RealmRepo
	userRepo  UserRepo
	credRepo  CredentialRepo
	hasher    *security.Hasher
	tokens    AccessIssuer
}

// NewAuthService returns an AuthService with the given dependencies.
func NewAuthService(realmRepo RealmRepo, userRepo UserRepo, credRepo CredentialRepo, hasher *security.Hasher, tokens AccessIssuer) *AuthService {
	return &AuthService{
		realmRepo: realmRepo,
		userRepo:  userRepo,
		credRepo:  credRepo,
		hasher:    hasher,
		tokens:    tokens,
	}
}

// Login verifies username and password in the named realm and returns an access token.
// Unknown realms, unknown or disabled users, users without a password and wrong
// passwords all yield ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, realmName, username, password string) (*AuthResult, error) {
	realmName = strings.TrimSpace(realmName)
	username = strings.TrimSpace(username)
	if realmName == "" || username == "" || password == "" {
		return nil, ErrInvalidCredentials
	}
	realm, err := s.realmRepo.GetByName(ctx, realmName)
	if err != nil {
		return nil, err
	}
	if realm == nil {
		return nil, ErrInvalidCredentials
	}
	user, err := s.userRepo.GetByUsername(ctx, realm.ID, username)
	if err != nil {
		return nil, err
	}
	if user == nil || user.Status != userdomain.UserStatusActive {
		return nil, ErrInvalidCredentials
	}
	creds, err := s.credRepo.ListByUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	var hash string
	for _, c := range creds {
		if c.Type == credentialdomain.TypePassword {
			hash = c.SecretData
			break
		}
	}
	if hash == "" {
		return nil, ErrInvalidCredentials
	}
	if err := s.hasher.Compare(hash, []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	sessionID, err := security.NewSessionID()
	if err != nil {
		return nil, err
	}
	token, exp, err := s.tokens.IssueAccess(security.Identity{UserID: user.ID, RealmID: realm.ID, SessionID: sessionID})
	if err != nil {
		return nil, err
	}
	return &AuthResult{AccessToken: token, ExpiresAt: exp, UserID: user.ID, RealmID: realm.ID}, nil
}

// IsActive reports whether the user exists and is not disabled. The auth interceptor
// calls it for every authenticated request.
func (s *AuthService) IsActive(ctx context.Context, userID string) (bool, error) {
	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return false, err
	}
	return u != nil && u.Status == userdomain.UserStatusActive, nil
}
