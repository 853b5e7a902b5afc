package interceptors

import (
	"context"

	"account-console/backend/internal/security"
)

type identityKey struct{}

// WithIdentity returns a context carrying the authenticated caller.
func WithIdentity(ctx context.Context, id security.Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// IdentityFrom returns the caller set by AuthUnary, if any.
func IdentityFrom(ctx context.Context) (security.Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(security.Identity)
	return id, ok
}

// GetUserID returns the caller's user id and true if set; otherwise "", false.
func GetUserID(ctx context.Context) (string, bool) {
	id, ok := IdentityFrom(ctx)
	return id.UserID, ok && id.UserID != ""
}

// GetRealmID returns the caller's realm id and true if set; otherwise "", false.
func GetRealmID(ctx context.Context) (string, bool) {
	id, ok := IdentityFrom(ctx)
	return id.RealmID, ok && id.RealmID != ""
}

// GetSessionID returns the caller's session id and true if set; otherwise "", false.
func GetSessionID(ctx context.Context) (string, bool) {
	id, ok := IdentityFrom(ctx)
	return id.SessionID, ok && id.SessionID != ""
}
