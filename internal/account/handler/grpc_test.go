package handler

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	accountv1 "account-console/backend/api/account/v1"
	"account-console/backend/internal/account/service"
	credentialdomain "account-console/backend/internal/credential/domain"
	"account-console/backend/internal/credential/passwordpolicy"
	"account-console/backend/internal/panel"
	"account-console/backend/internal/security"
	"account-console/backend/internal/server/interceptors"
)

// mockService implements CredentialService for tests.
type mockService struct {
	rows     []panel.Row
	err      error
	setup    *service.SetupResult
	cred     *credentialdomain.Credential
	gotRealm string
	gotUser  string
	gotType  credentialdomain.TypeID
	gotDir   panel.Direction
}

func (m *mockService) GetSigningIn(ctx context.Context, realmID, userID string) ([]panel.Row, error) {
	m.gotRealm, m.gotUser = realmID, userID
	return m.rows, m.err
}

func (m *mockService) MoveCredential(ctx context.Context, realmID, userID string, t credentialdomain.TypeID, dir panel.Direction) ([]panel.Row, error) {
	m.gotType, m.gotDir = t, dir
	return m.rows, m.err
}

func (m *mockService) StartCredentialSetup(ctx context.Context, realmID, userID string, t credentialdomain.TypeID) (*service.SetupResult, error) {
	m.gotType = t
	return m.setup, m.err
}

func (m *mockService) CompleteOtpSetup(ctx context.Context, realmID, userID, setupID, code, label string) (*credentialdomain.Credential, error) {
	return m.cred, m.err
}

func (m *mockService) CompleteRecoveryCodesSetup(ctx context.Context, realmID, userID, setupID string, confirmed bool) (*credentialdomain.Credential, error) {
	return m.cred, m.err
}

func (m *mockService) UpdatePassword(ctx context.Context, realmID, userID, newPassword, confirmation string) error {
	return m.err
}

func (m *mockService) RemoveCredential(ctx context.Context, realmID, userID, credentialID string) error {
	return m.err
}

func authed() context.Context {
	return interceptors.WithIdentity(context.Background(), security.Identity{UserID: "user-1", RealmID: "realm-1", SessionID: "s"})
}

func TestGetSigningIn(t *testing.T) {
	svc := &mockService{rows: []panel.Row{
		{
			Type: credentialdomain.TypePassword, Title: "Password", Configured: true, Fixed: true,
			Items:  []panel.Item{{CredentialID: "c1", Label: "My password"}},
			Update: &panel.Action{RequiredAction: credentialdomain.ActionUpdatePassword, PageTitle: "Update password"},
		},
		{
			Type: credentialdomain.TypeOTP, Title: "Authenticator application", NotSetUpText: "Authenticator application is not set up.",
			Create: &panel.Action{RequiredAction: credentialdomain.ActionConfigureTOTP, PageTitle: "Mobile Authenticator Setup"},
			Up:     &panel.Control{Enabled: false}, Down: &panel.Control{Enabled: true},
		},
	}}
	resp, err := NewServer(svc).GetSigningIn(authed(), &accountv1.GetSigningInRequest{})
	if err != nil {
		t.Fatalf("GetSigningIn: %v", err)
	}
	want := []*accountv1.CredentialRow{
		{
			Type: "password", Title: "Password", Configured: true, Fixed: true,
			Items:        []*accountv1.CredentialItem{{CredentialId: "c1", Label: "My password"}},
			UpdateAction: &accountv1.Action{RequiredAction: "UPDATE_PASSWORD", PageTitle: "Update password"},
		},
		{
			Type: "otp", Title: "Authenticator application", NotSetUpText: "Authenticator application is not set up.",
			CreateAction: &accountv1.Action{RequiredAction: "CONFIGURE_TOTP", PageTitle: "Mobile Authenticator Setup"},
			Up:           &accountv1.Control{Enabled: false}, Down: &accountv1.Control{Enabled: true},
		},
	}
	if diff := cmp.Diff(want, resp.Rows); diff != "" {
		t.Errorf("rows (-want +got):\n%s", diff)
	}
	if svc.gotRealm != "realm-1" || svc.gotUser != "user-1" {
		t.Errorf("called with realm=%q user=%q", svc.gotRealm, svc.gotUser)
	}
}

func TestUnauthenticatedAndStub(t *testing.T) {
	_, err := NewServer(&mockService{}).GetSigningIn(context.Background(), &accountv1.GetSigningInRequest{})
	if status.Code(err) != codes.Unauthenticated {
		t.Errorf("code = %v, want Unauthenticated", status.Code(err))
	}
	_, err = NewServer(nil).GetSigningIn(authed(), &accountv1.GetSigningInRequest{})
	if status.Code(err) != codes.Unimplemented {
		t.Errorf("code = %v, want Unimplemented", status.Code(err))
	}
}

func TestMoveCredential_Arguments(t *testing.T) {
	tests := []struct {
		name     string
		req      *accountv1.MoveCredentialRequest
		wantCode codes.Code
		wantDir  panel.Direction
	}{
		{"up", &accountv1.MoveCredentialRequest{Type: "otp", Direction: accountv1.Direction_UP}, codes.OK, panel.Up},
		{"down", &accountv1.MoveCredentialRequest{Type: "otp", Direction: accountv1.Direction_DOWN}, codes.OK, panel.Down},
		{"bad direction", &accountv1.MoveCredentialRequest{Type: "otp", Direction: "LEFT"}, codes.InvalidArgument, panel.Up},
		{"bad type", &accountv1.MoveCredentialRequest{Type: "webauthn", Direction: accountv1.Direction_UP}, codes.InvalidArgument, panel.Up},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockService{}
			_, err := NewServer(svc).MoveCredential(authed(), tt.req)
			if status.Code(err) != tt.wantCode {
				t.Fatalf("code = %v, want %v", status.Code(err), tt.wantCode)
			}
			if tt.wantCode == codes.OK && (svc.gotType != credentialdomain.TypeOTP || svc.gotDir != tt.wantDir) {
				t.Errorf("called with %s %s", svc.gotType, svc.gotDir)
			}
		})
	}
}

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		err  error
		want codes.Code
	}{
		{fmt.Errorf("%w: auth-otp-form", panel.ErrExecutionNotFound), codes.FailedPrecondition},
		{fmt.Errorf("%w: password", panel.ErrNotReorderable), codes.InvalidArgument},
		{service.ErrCreateNotOffered, codes.FailedPrecondition},
		{service.ErrNotRemovable, codes.FailedPrecondition},
		{service.ErrCredentialNotFound, codes.NotFound},
		{service.ErrSetupNotFound, codes.NotFound},
		{service.ErrInvalidOTPCode, codes.InvalidArgument},
		{service.ErrPasswordConfirm, codes.InvalidArgument},
		{security.ErrPasswordTooLong, codes.InvalidArgument},
		{fmt.Errorf("%w: %w", service.ErrPasswordPolicy, &passwordpolicy.ViolationError{Violations: []passwordpolicy.Violation{{Rule: "length", Message: "short"}}}), codes.InvalidArgument},
		{service.ErrUserNotFound, codes.PermissionDenied},
		{errors.New("connection refused"), codes.Internal},
	}
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			_, err := NewServer(&mockService{err: tt.err}).GetSigningIn(authed(), &accountv1.GetSigningInRequest{})
			if got := status.Code(err); got != tt.want {
				t.Errorf("code = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestStartCredentialSetup(t *testing.T) {
	exp := time.Date(2026, 1, 1, 0, 10, 0, 0, time.UTC)
	svc := &mockService{setup: &service.SetupResult{
		SetupID: "s1", Type: credentialdomain.TypeOTP, RequiredAction: credentialdomain.ActionConfigureTOTP,
		PageTitle: "Mobile Authenticator Setup", Secret: "ABC", OTPAuthURL: "otpauth://totp/x", ExpiresAt: exp,
	}}
	resp, err := NewServer(svc).StartCredentialSetup(authed(), &accountv1.StartCredentialSetupRequest{Type: "otp"})
	if err != nil {
		t.Fatal(err)
	}
	if resp.SetupId != "s1" || resp.Secret != "ABC" || !resp.ExpiresAt.AsTime().Equal(exp) {
		t.Errorf("resp = %+v", resp)
	}
}

func TestCompleteOtpSetup(t *testing.T) {
	svc := &mockService{cred: &credentialdomain.Credential{ID: "c9", Type: credentialdomain.TypeOTP}}
	srv := NewServer(svc)
	if _, err := srv.CompleteOtpSetup(authed(), &accountv1.CompleteOtpSetupRequest{SetupId: "s1"}); status.Code(err) != codes.InvalidArgument {
		t.Errorf("missing code: %v", err)
	}
	resp, err := srv.CompleteOtpSetup(authed(), &accountv1.CompleteOtpSetupRequest{SetupId: "s1", Code: "123456"})
	if err != nil {
		t.Fatal(err)
	}
	if resp.Credential.Id != "c9" || resp.Credential.Label != "Authenticator application" {
		t.Errorf("credential = %+v", resp.Credential)
	}
}

func TestRemoveCredential_RequiresID(t *testing.T) {
	_, err := NewServer(&mockService{}).RemoveCredential(authed(), &accountv1.RemoveCredentialRequest{})
	if status.Code(err) != codes.InvalidArgument {
		t.Errorf("code = %v, want InvalidArgument", status.Code(err))
	}
}
