package interceptors

import (
	"context"
	"net"
	"testing"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/peer"
	"google.golang.org/grpc/status"

	"account-console/backend/internal/security"
)

type auditCall struct {
	realmID, userID, action, resource, metadata string
}

type recordingAuditLogger struct {
	calls []auditCall
}

func (r *recordingAuditLogger) LogEvent(_ context.Context, realmID, userID, action, resource, metadata string) {
	r.calls = append(r.calls, auditCall{realmID, userID, action, resource, metadata})
}

func TestAuditUnary(t *testing.T) {
	authed := WithIdentity(context.Background(), security.Identity{UserID: "user-1", RealmID: "realm-1"})
	tests := []struct {
		name       string
		ctx        context.Context
		method     string
		handlerErr error
		want       []auditCall
	}{
		{"authenticated success", authed, "/console.account.v1.AccountService/MoveCredential", nil,
			[]auditCall{{"realm-1", "user-1", "reorder", "credential", `{"code":"OK"}`}}},
		{"handler error recorded", authed, "/console.admin.v1.AdminService/UpdateExecution",
			status.Error(codes.NotFound, "missing"),
			[]auditCall{{"realm-1", "user-1", "update", "execution", `{"code":"NotFound"}`}}},
		{"skipped method", authed, "/grpc.health.v1.Health/Check", nil, nil},
		{"unauthenticated", context.Background(), "/console.auth.v1.AuthService/Login", nil, nil},
	}
	skip := map[string]bool{"/grpc.health.v1.Health/Check": true}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := &recordingAuditLogger{}
			handler := func(context.Context, interface{}) (interface{}, error) { return "resp", tt.handlerErr }
			resp, err := AuditUnary(logger, skip)(tt.ctx, "req", &grpc.UnaryServerInfo{FullMethod: tt.method}, handler)
			if resp != "resp" || err != tt.handlerErr {
				t.Errorf("interceptor altered result: %v, %v", resp, err)
			}
			if len(logger.calls) != len(tt.want) {
				t.Fatalf("calls = %+v, want %+v", logger.calls, tt.want)
			}
			for i := range tt.want {
				if logger.calls[i] != tt.want[i] {
					t.Errorf("call %d = %+v, want %+v", i, logger.calls[i], tt.want[i])
				}
			}
		})
	}
}

func TestClientIP(t *testing.T) {
	withMD := func(kv ...string) context.Context {
		return metadata.NewIncomingContext(context.Background(), metadata.Pairs(kv...))
	}
	withPeer := peer.NewContext(context.Background(), &peer.Peer{Addr: &net.TCPAddr{IP: net.ParseIP("10.0.0.7"), Port: 5555}})
	tests := []struct {
		name string
		ctx  context.Context
		want string
	}{
		{"forwarded", withMD("x-forwarded-for", "203.0.113.1"), "203.0.113.1"},
		{"forwarded chain", withMD("x-forwarded-for", " 203.0.113.1 , 10.0.0.1"), "203.0.113.1"},
		{"real ip", withMD("x-real-ip", "198.51.100.2"), "198.51.100.2"},
		{"forwarded wins", withMD("x-forwarded-for", "203.0.113.1", "x-real-ip", "198.51.100.2"), "203.0.113.1"},
		{"blank forwarded falls through", withMD("x-forwarded-for", "  ", "x-real-ip", "198.51.100.2"), "198.51.100.2"},
		{"peer", withPeer, "10.0.0.7"},
		{"unknown", context.Background(), "unknown"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClientIP(tt.ctx); got != tt.want {
				t.Errorf("ClientIP = %q, want %q", got, tt.want)
			}
		})
	}
}
