package rbac

import (
	"context"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"account-console/backend/internal/membership/domain"
	"account-console/backend/internal/server/interceptors"
)

// RealmMembershipGetter returns a user's membership in a realm.
type RealmMembershipGetter interface {
	GetMembershipByUserAndRealm(ctx context.Context, userID, realmID string) (*domain.Membership, error)
}

// RequireRealmAdmin ensures the caller is authenticated and has the admin role in the context realm.
// Returns (realmID, userID, nil) on success; returns a gRPC error (Unauthenticated, PermissionDenied or Internal) on failure.
func RequireRealmAdmin(ctx context.Context, getter RealmMembershipGetter) (realmID, userID string, err error) {
	realmID, okRealm := interceptors.GetRealmID(ctx)
	userID, okUser := interceptors.GetUserID(ctx)
	if !okRealm || !okUser {
		return "", "", status.Error(codes.Unauthenticated, "realm and user context required")
	}
	if getter == nil {
		return "", "", status.Error(codes.PermissionDenied, "realm membership unavailable")
	}
	m, err := getter.GetMembershipByUserAndRealm(ctx, userID, realmID)
	if err != nil {
		return "", "", status.Error(codes.Internal, "failed to resolve membership")
	}
	if m == nil {
		return "", "", status.Error(codes.PermissionDenied, "not a member of this realm")
	}
	if m.Role != domain.RoleAdmin {
		return "", "", status.Error(codes.PermissionDenied, "realm admin required")
	}
	return realmID, userID, nil
}
