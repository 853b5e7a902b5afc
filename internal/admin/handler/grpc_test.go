package handler

import (
	"context"
	"errors"
	"testing"
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	adminv1 "account-console/backend/api/admin/v1"
	"account-console/backend/internal/admin/service"
	auditdomain "account-console/backend/internal/audit/domain"
	authflowdomain "account-console/backend/internal/authflow/domain"
	credentialdomain "account-console/backend/internal/credential/domain"
	membershipdomain "account-console/backend/internal/membership/domain"
	policydomain "account-console/backend/internal/policy/domain"
	"account-console/backend/internal/security"
	"account-console/backend/internal/server/interceptors"
)

type mockMemberships map[string]membershipdomain.Role

func (m mockMemberships) GetMembershipByUserAndRealm(ctx context.Context, userID, realmID string) (*membershipdomain.Membership, error) {
	role, ok := m[userID+":"+realmID]
	if !ok {
		return nil, nil
	}
	return &membershipdomain.Membership{UserID: userID, RealmID: realmID, Role: role}, nil
}

// mockAdminService implements AdminService for tests.
type mockAdminService struct {
	err       error
	creds     []*credentialdomain.Credential
	exec      *authflowdomain.Execution
	logs      []*auditdomain.AuditLog
	gotRealm  string
	gotOffset int32
	gotFilter auditdomain.Filter
}

func (m *mockAdminService) ListUserCredentials(ctx context.Context, realmID, userID string) ([]*credentialdomain.Credential, error) {
	m.gotRealm = realmID
	return m.creds, m.err
}

func (m *mockAdminService) DeleteUserCredential(ctx context.Context, realmID, userID, credentialID string) error {
	m.gotRealm = realmID
	return m.err
}

func (m *mockAdminService) ListExecutions(ctx context.Context, realmID, flow string) ([]*authflowdomain.Execution, error) {
	return []*authflowdomain.Execution{m.exec}, m.err
}

func (m *mockAdminService) UpdateExecution(ctx context.Context, realmID, executionID, requirement string) (*authflowdomain.Execution, error) {
	return m.exec, m.err
}

func (m *mockAdminService) ListCredentialPolicies(ctx context.Context, realmID string) ([]*policydomain.Policy, error) {
	return nil, m.err
}

func (m *mockAdminService) PutCredentialPolicy(ctx context.Context, realmID, name, rules string, enabled bool) (*policydomain.Policy, error) {
	return &policydomain.Policy{ID: "p1", RealmID: realmID, Name: name, Rules: rules, Enabled: enabled}, m.err
}

func (m *mockAdminService) ListAuditLogs(ctx context.Context, realmID string, f auditdomain.Filter, pageSize, offset int32) ([]*auditdomain.AuditLog, error) {
	m.gotOffset, m.gotFilter = offset, f
	return m.logs, m.err
}

var members = mockMemberships{"admin-1:realm-1": membershipdomain.RoleAdmin, "user-1:realm-1": membershipdomain.RoleMember}

func ctxAs(userID string) context.Context {
	return interceptors.WithIdentity(context.Background(), security.Identity{UserID: userID, RealmID: "realm-1", SessionID: "s"})
}

func TestRequiresRealmAdmin(t *testing.T) {
	srv := NewServer(&mockAdminService{}, members)
	_, err := srv.ListUserCredentials(ctxAs("user-1"), &adminv1.ListUserCredentialsRequest{UserId: "u"})
	if status.Code(err) != codes.PermissionDenied {
		t.Errorf("member code = %v, want PermissionDenied", status.Code(err))
	}
	_, err = srv.ListExecutions(context.Background(), &adminv1.ListExecutionsRequest{})
	if status.Code(err) != codes.Unauthenticated {
		t.Errorf("anonymous code = %v, want Unauthenticated", status.Code(err))
	}
	_, err = NewServer(nil, members).ListExecutions(ctxAs("admin-1"), &adminv1.ListExecutionsRequest{})
	if status.Code(err) != codes.Unimplemented {
		t.Errorf("stub code = %v, want Unimplemented", status.Code(err))
	}
}

func TestListUserCredentials(t *testing.T) {
	svc := &mockAdminService{creds: []*credentialdomain.Credential{
		{ID: "c1", UserID: "u1", Type: credentialdomain.TypePassword, CreatedAt: time.Unix(100, 0)},
	}}
	resp, err := NewServer(svc, members).ListUserCredentials(ctxAs("admin-1"), &adminv1.ListUserCredentialsRequest{UserId: "u1"})
	if err != nil {
		t.Fatal(err)
	}
	if len(resp.Credentials) != 1 || resp.Credentials[0].Label != "My password" || resp.Credentials[0].Type != "password" {
		t.Errorf("credentials = %+v", resp.Credentials)
	}
	if svc.gotRealm != "realm-1" {
		t.Errorf("realm = %q", svc.gotRealm)
	}
}

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		err  error
		want codes.Code
	}{
		{service.ErrUserNotFound, codes.NotFound},
		{service.ErrCredentialNotFound, codes.NotFound},
		{service.ErrExecutionNotFound, codes.NotFound},
		{service.ErrInvalidRequirement, codes.InvalidArgument},
		{policydomain.ErrInvalidPolicy, codes.InvalidArgument},
		{errors.New("boom"), codes.Internal},
	}
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			_, err := NewServer(&mockAdminService{err: tt.err}, members).DeleteUserCredential(ctxAs("admin-1"),
				&adminv1.DeleteUserCredentialRequest{UserId: "u1", CredentialId: "c1"})
			if got := status.Code(err); got != tt.want {
				t.Errorf("code = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestUpdateExecution(t *testing.T) {
	svc := &mockAdminService{exec: &authflowdomain.Execution{ID: "e1", FlowAlias: "browser", ProviderID: "auth-otp-form", Requirement: authflowdomain.RequirementRequired, Priority: 20}}
	srv := NewServer(svc, members)
	if _, err := srv.UpdateExecution(ctxAs("admin-1"), &adminv1.UpdateExecutionRequest{}); status.Code(err) != codes.InvalidArgument {
		t.Errorf("missing id code = %v", status.Code(err))
	}
	resp, err := srv.UpdateExecution(ctxAs("admin-1"), &adminv1.UpdateExecutionRequest{ExecutionId: "e1", Requirement: "REQUIRED"})
	if err != nil {
		t.Fatal(err)
	}
	if resp.Execution.Requirement != "REQUIRED" || resp.Execution.Priority != 20 {
		t.Errorf("execution = %+v", resp.Execution)
	}
}

func TestListAuditLogs_Paging(t *testing.T) {
	logs := make([]*auditdomain.AuditLog, 2)
	for i := range logs {
		logs[i] = &auditdomain.AuditLog{ID: "a", Action: "delete", Resource: "credential"}
	}
	svc := &mockAdminService{logs: logs}
	srv := NewServer(svc, members)

	resp, err := srv.ListAuditLogs(ctxAs("admin-1"), &adminv1.ListAuditLogsRequest{PageSize: 2, PageToken: "4", Action: "delete"})
	if err != nil {
		t.Fatal(err)
	}
	if svc.gotOffset != 4 || svc.gotFilter.Action != "delete" {
		t.Errorf("offset=%d filter=%+v", svc.gotOffset, svc.gotFilter)
	}
	if resp.NextPageToken != "6" {
		t.Errorf("NextPageToken = %q, want 6", resp.NextPageToken)
	}

	resp, err = srv.ListAuditLogs(ctxAs("admin-1"), &adminv1.ListAuditLogsRequest{PageSize: 10})
	if err != nil {
		t.Fatal(err)
	}
	if resp.NextPageToken != "" {
		t.Errorf("last page NextPageToken = %q", resp.NextPageToken)
	}

	if _, err := srv.ListAuditLogs(ctxAs("admin-1"), &adminv1.ListAuditLogsRequest{PageToken: "x"}); status.Code(err) != codes.InvalidArgument {
		t.Errorf("bad token code = %v", status.Code(err))
	}
}

func TestPutCredentialPolicy(t *testing.T) {
	resp, err := NewServer(&mockAdminService{}, members).PutCredentialPolicy(ctxAs("admin-1"),
		&adminv1.PutCredentialPolicyRequest{Name: "kiosk", Rules: "package console.credentials", Enabled: true})
	if err != nil {
		t.Fatal(err)
	}
	if resp.Policy.Name != "kiosk" || !resp.Policy.Enabled {
		t.Errorf("policy = %+v", resp.Policy)
	}
}
