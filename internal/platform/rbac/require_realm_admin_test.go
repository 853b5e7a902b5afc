package rbac

import (
	"context"
	"errors"
	"testing"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"account-console/backend/internal/membership/domain"
	"account-console/backend/internal/security"
	"account-console/backend/internal/server/interceptors"
)

// mockMembershipGetter implements RealmMembershipGetter for tests.
type mockMembershipGetter struct {
	memberships map[string]*domain.Membership
	err         error
}

func (m *mockMembershipGetter) GetMembershipByUserAndRealm(ctx context.Context, userID, realmID string) (*domain.Membership, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.memberships[userID+":"+realmID], nil
}

func ctxFor(userID, realmID string) context.Context {
	return interceptors.WithIdentity(context.Background(), security.Identity{UserID: userID, RealmID: realmID, SessionID: "session-1"})
}

func TestRequireRealmAdmin(t *testing.T) {
	getter := &mockMembershipGetter{memberships: map[string]*domain.Membership{
		"admin-1:realm-1":  {ID: "m1", UserID: "admin-1", RealmID: "realm-1", Role: domain.RoleAdmin},
		"member-1:realm-1": {ID: "m2", UserID: "member-1", RealmID: "realm-1", Role: domain.RoleMember},
	}}
	tests := []struct {
		name     string
		ctx      context.Context
		getter   RealmMembershipGetter
		wantCode codes.Code
	}{
		{"admin", ctxFor("admin-1", "realm-1"), getter, codes.OK},
		{"member", ctxFor("member-1", "realm-1"), getter, codes.PermissionDenied},
		{"no membership", ctxFor("admin-1", "realm-2"), getter, codes.PermissionDenied},
		{"no identity", context.Background(), getter, codes.Unauthenticated},
		{"missing realm", ctxFor("admin-1", ""), getter, codes.Unauthenticated},
		{"lookup failure", ctxFor("admin-1", "realm-1"), &mockMembershipGetter{err: errors.New("db down")}, codes.Internal},
		{"nil getter", ctxFor("admin-1", "realm-1"), nil, codes.PermissionDenied},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			realmID, userID, err := RequireRealmAdmin(tt.ctx, tt.getter)
			if got := status.Code(err); got != tt.wantCode {
				t.Fatalf("code = %v, want %v (err %v)", got, tt.wantCode, err)
			}
			if tt.wantCode == codes.OK && (realmID != "realm-1" || userID != "admin-1") {
				t.Errorf("got realm=%q user=%q", realmID, userID)
			}
		})
	}
}
