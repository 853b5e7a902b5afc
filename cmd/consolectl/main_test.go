package main

import (
	"bytes"
	"context"
	"io"
	"net"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/test/bufconn"

	accountv1 "account-console/backend/api/account/v1"
	adminv1 "account-console/backend/api/admin/v1"
)

type fakeAccount struct {
	accountv1.UnimplementedAccountServiceServer
	gotAuth []string
	gotMove *accountv1.MoveCredentialRequest
}

var panelRows = []*accountv1.CredentialRow{
	{Type: "password", Title: "Password", Configured: true, Fixed: true,
		Items: []*accountv1.CredentialItem{{CredentialId: "c1", Label: "My password"}}, UpdateAction: &accountv1.Action{RequiredAction: "UPDATE_PASSWORD"}},
	{Type: "otp", Title: "Authenticator application", NotSetUpText: "Authenticator application is not set up.",
		CreateAction: &accountv1.Action{RequiredAction: "CONFIGURE_TOTP"}},
}

func (f *fakeAccount) GetSigningIn(ctx context.Context, _ *accountv1.GetSigningInRequest) (*accountv1.GetSigningInResponse, error) {
	md, _ := metadata.FromIncomingContext(ctx)
	f.gotAuth = md.Get("authorization")
	return &accountv1.GetSigningInResponse{Rows: panelRows}, nil
}

func (f *fakeAccount) MoveCredential(_ context.Context, req *accountv1.MoveCredentialRequest) (*accountv1.MoveCredentialResponse, error) {
	f.gotMove = req
	return &accountv1.MoveCredentialResponse{Rows: panelRows}, nil
}

type fakeAdmin struct {
	adminv1.UnimplementedAdminServiceServer
}

func (fakeAdmin) UpdateExecution(_ context.Context, req *adminv1.UpdateExecutionRequest) (*adminv1.UpdateExecutionResponse, error) {
	return &adminv1.UpdateExecutionResponse{Execution: &adminv1.Execution{
		Id: req.GetExecutionId(), ProviderId: "auth-otp-form", DisplayName: "OTP Form", Requirement: req.GetRequirement(),
	}}, nil
}

func testDeps(t *testing.T, account *fakeAccount) deps {
	t.Helper()
	lis := bufconn.Listen(1 << 20)
	s := grpc.NewServer()
	accountv1.RegisterAccountServiceServer(s, account)
	adminv1.RegisterAdminServiceServer(s, fakeAdmin{})
	go func() { _ = s.Serve(lis) }()
	t.Cleanup(s.Stop)

	return deps{
		getenv: func(key string) string {
			if key == "CONSOLE_TOKEN" {
				return "tok-123"
			}
			return ""
		},
		dial: func(string) (grpc.ClientConnInterface, io.Closer, error) {
			conn, err := grpc.NewClient("passthrough:///bufnet",
				grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) { return lis.DialContext(ctx) }),
				grpc.WithTransportCredentials(insecure.NewCredentials()),
			)
			if err != nil {
				return nil, nil, err
			}
			return conn, conn, nil
		},
	}
}

func run(t *testing.T, d deps, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand(d)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestSigningInList(t *testing.T) {
	account := &fakeAccount{}
	out, err := run(t, testDeps(t, account), "signing-in", "list")
	if err != nil {
		t.Fatalf("list: %v\n%s", err, out)
	}
	for _, want := range []string{"TYPE", "My password [c1]", "update", "Authenticator application is not set up.", "setup"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if diff := cmp.Diff([]string{"Bearer tok-123"}, account.gotAuth); diff != "" {
		t.Errorf("authorization header (-want +got):\n%s", diff)
	}
}

func TestSigningInMove(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantDir accountv1.Direction
		wantErr bool
	}{
		{name: "up", args: []string{"si", "move", "otp", "up"}, wantDir: accountv1.Direction_UP},
		{name: "down is case insensitive", args: []string{"si", "move", "otp", "DOWN"}, wantDir: accountv1.Direction_DOWN},
		{name: "bad direction", args: []string{"si", "move", "otp", "left"}, wantErr: true},
		{name: "missing direction", args: []string{"si", "move", "otp"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			account := &fakeAccount{}
			out, err := run(t, testDeps(t, account), tt.args...)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, output:\n%s", out)
				}
				if account.gotMove != nil {
					t.Error("request sent despite invalid arguments")
				}
				return
			}
			if err != nil {
				t.Fatalf("move: %v\n%s", err, out)
			}
			if account.gotMove.GetType() != "otp" || account.gotMove.GetDirection() != tt.wantDir {
				t.Errorf("request = %+v", account.gotMove)
			}
		})
	}
}

func TestAdminExecutionUpdate_JSON(t *testing.T) {
	out, err := run(t, testDeps(t, &fakeAccount{}), "admin", "executions", "update", "exec-2", "REQUIRED", "-o", "json")
	if err != nil {
		t.Fatalf("update: %v\n%s", err, out)
	}
	if !strings.Contains(out, `"requirement": "REQUIRED"`) || !strings.Contains(out, `"id": "exec-2"`) {
		t.Errorf("output:\n%s", out)
	}
}

func TestUnimplementedRPCFails(t *testing.T) {
	if _, err := run(t, testDeps(t, &fakeAccount{}), "signing-in", "remove", "c1"); err == nil {
		t.Fatal("expected error from unimplemented RemoveCredential")
	}
}
