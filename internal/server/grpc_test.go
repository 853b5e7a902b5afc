package server

import (
	"context"
	"net"
	"testing"

	"github.com/google/go-cmp/cmp"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	accountv1 "account-console/backend/api/account/v1"
	adminv1 "account-console/backend/api/admin/v1"
	authv1 "account-console/backend/api/auth/v1"
	"account-console/backend/internal/account/service"
	credentialdomain "account-console/backend/internal/credential/domain"
	"account-console/backend/internal/panel"
	"account-console/backend/internal/security"
)

// mockServiceRegistrar implements grpc.ServiceRegistrar for testing.
type mockServiceRegistrar struct {
	services []string
}

func (m *mockServiceRegistrar) RegisterService(desc *grpc.ServiceDesc, impl interface{}) {
	m.services = append(m.services, desc.ServiceName)
}

func TestRegisterServices_AllServicesRegistered(t *testing.T) {
	reg := &mockServiceRegistrar{}
	RegisterServices(reg, Deps{})

	want := []string{accountv1.ServiceName, adminv1.ServiceName, authv1.ServiceName, "grpc.health.v1.Health"}
	if diff := cmp.Diff(want, reg.services); diff != "" {
		t.Errorf("registered services mismatch (-want +got):\n%s", diff)
	}
}

func TestPublicMethods(t *testing.T) {
	if !PublicMethods[authv1.AuthService_Login_FullMethodName] {
		t.Error("Login must be public")
	}
	if !PublicMethods[healthpb.Health_Check_FullMethodName] {
		t.Error("health Check must be public")
	}
	if PublicMethods[accountv1.AccountService_GetSigningIn_FullMethodName] {
		t.Error("GetSigningIn must require a token")
	}
}

// panelService returns a fixed one-row panel for any caller.
type panelService struct {
	gotRealm, gotUser string
}

func (p *panelService) GetSigningIn(ctx context.Context, realmID, userID string) ([]panel.Row, error) {
	p.gotRealm, p.gotUser = realmID, userID
	return []panel.Row{{
		Type:       credentialdomain.TypePassword,
		Title:      "Password",
		Configured: true,
		Fixed:      true,
	}}, nil
}

func (p *panelService) MoveCredential(ctx context.Context, realmID, userID string, t credentialdomain.TypeID, dir panel.Direction) ([]panel.Row, error) {
	return nil, nil
}

func (p *panelService) StartCredentialSetup(ctx context.Context, realmID, userID string, t credentialdomain.TypeID) (*service.SetupResult, error) {
	return nil, nil
}

func (p *panelService) CompleteOtpSetup(ctx context.Context, realmID, userID, setupID, code, label string) (*credentialdomain.Credential, error) {
	return nil, nil
}

func (p *panelService) CompleteRecoveryCodesSetup(ctx context.Context, realmID, userID, setupID string, confirmed bool) (*credentialdomain.Credential, error) {
	return nil, nil
}

func (p *panelService) UpdatePassword(ctx context.Context, realmID, userID, newPassword, confirmation string) error {
	return nil
}

func (p *panelService) RemoveCredential(ctx context.Context, realmID, userID, credentialID string) error {
	return nil
}

func startServer(t *testing.T, deps Deps, tokens *security.TokenProvider) *grpc.ClientConn {
	t.Helper()
	lis := bufconn.Listen(1 << 20)
	s := grpc.NewServer(ServerOptions(Interceptors{Tokens: tokens})...)
	RegisterServices(s, deps)
	go func() { _ = s.Serve(lis) }()
	t.Cleanup(s.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) { return lis.DialContext(ctx) }),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestServer_RoundTrip(t *testing.T) {
	tokens, err := security.NewTestTokenProvider()
	if err != nil {
		t.Fatalf("NewTestTokenProvider: %v", err)
	}
	svc := &panelService{}
	conn := startServer(t, Deps{Account: svc}, tokens)
	ctx := context.Background()

	t.Run("health check is public", func(t *testing.T) {
		resp, err := healthpb.NewHealthClient(conn).Check(ctx, &healthpb.HealthCheckRequest{})
		if err != nil {
			t.Fatalf("Check: %v", err)
		}
		if resp.GetStatus() != healthpb.HealthCheckResponse_SERVING {
			t.Errorf("status = %v, want SERVING", resp.GetStatus())
		}
	})

	t.Run("login without auth service is unimplemented", func(t *testing.T) {
		_, err := authv1.NewAuthServiceClient(conn).Login(ctx, &authv1.LoginRequest{Realm: "r", Username: "u", Password: "p"})
		if status.Code(err) != codes.Unimplemented {
			t.Errorf("code = %v, want Unimplemented", status.Code(err))
		}
	})

	client := accountv1.NewAccountServiceClient(conn)

	t.Run("panel requires a token", func(t *testing.T) {
		_, err := client.GetSigningIn(ctx, &accountv1.GetSigningInRequest{})
		if status.Code(err) != codes.Unauthenticated {
			t.Errorf("code = %v, want Unauthenticated", status.Code(err))
		}
	})

	t.Run("panel with token over json codec", func(t *testing.T) {
		token, _, err := tokens.IssueAccess(security.Identity{UserID: "user-1", RealmID: "realm-1", SessionID: "s1"})
		if err != nil {
			t.Fatalf("IssueAccess: %v", err)
		}
		authCtx := metadata.AppendToOutgoingContext(ctx, "authorization", "Bearer "+token)
		resp, err := client.GetSigningIn(authCtx, &accountv1.GetSigningInRequest{})
		if err != nil {
			t.Fatalf("GetSigningIn: %v", err)
		}
		if len(resp.Rows) != 1 || resp.Rows[0].Type != "password" || !resp.Rows[0].Fixed {
			t.Errorf("rows = %+v", resp.Rows)
		}
		if svc.gotRealm != "realm-1" || svc.gotUser != "user-1" {
			t.Errorf("service saw realm=%q user=%q", svc.gotRealm, svc.gotUser)
		}
	})
}
