package interceptors

import (
	"context"
	"log"
	"strings"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"account-console/backend/internal/security"
)

const bearerPrefix = "bearer "

// AccessValidator resolves a Bearer access token to the caller.
type AccessValidator interface {
	ValidateAccess(token string) (security.Identity, error)
}

// ActiveUserFunc reports whether the user behind a valid token may still call the API
// (e.g. not disabled). Nil skips the check.
type ActiveUserFunc func(ctx context.Context, userID string) (bool, error)

var errUnauthenticated = status.Error(codes.Unauthenticated, "missing or invalid authorization")

// AuthUnary returns a unary server interceptor that validates the Bearer token from metadata
// and stores the caller identity in context. Methods in publicMethods run without a token;
// an invalid token on a public method is ignored rather than rejected.
func AuthUnary(tokens AccessValidator, publicMethods map[string]bool, active ActiveUserFunc) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		public := publicMethods[info.FullMethod]
		token := extractBearer(ctx)
		if token == "" {
			if public {
				return handler(ctx, req)
			}
			return nil, errUnauthenticated
		}
		id, err := tokens.ValidateAccess(token)
		if err != nil {
			if public {
				return handler(ctx, req)
			}
			return nil, errUnauthenticated
		}
		if active != nil {
			ok, err := active(ctx, id.UserID)
			if err != nil {
				log.Printf("auth: active user check for %s: %v", id.UserID, err)
				return nil, errUnauthenticated
			}
			if !ok {
				return nil, errUnauthenticated
			}
		}
		return handler(WithIdentity(ctx, id), req)
	}
}

// extractBearer returns the Bearer token from ctx metadata, or "" if missing or malformed.
func extractBearer(ctx context.Context) string {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return ""
	}
	vals := md.Get("authorization")
	if len(vals) == 0 {
		return ""
	}
	v := strings.TrimSpace(vals[0])
	if len(v) < len(bearerPrefix) || !strings.EqualFold(v[:len(bearerPrefix)], bearerPrefix) {
		return ""
	}
	return strings.TrimSpace(v[len(bearerPrefix):])
}
