package server

import (
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	accountv1 "account-console/backend/api/account/v1"
	adminv1 "account-console/backend/api/admin/v1"
	authv1 "account-console/backend/api/auth/v1"
	_ "account-console/backend/api/codec"
	accounthandler "account-console/backend/internal/account/handler"
	adminhandler "account-console/backend/internal/admin/handler"
	"account-console/backend/internal/audit"
	healthhandler "account-console/backend/internal/health/handler"
	identityhandler "account-console/backend/internal/identity/handler"
	identityservice "account-console/backend/internal/identity/service"
	"account-console/backend/internal/platform/rbac"
	"account-console/backend/internal/server/interceptors"
	"account-console/backend/internal/telemetry"
)

// Deps holds optional service dependencies for gRPC handlers.
type Deps struct {
	// Account serves the signing-in panel. If nil, AccountService RPCs return Unimplemented.
	Account accounthandler.CredentialService
	// Admin serves realm administration. If nil, AdminService RPCs return Unimplemented.
	Admin adminhandler.AdminService
	// Memberships resolves the caller's realm role for AdminService. If nil, every admin RPC is denied.
	Memberships rbac.RealmMembershipGetter
	// Auth is the auth service for Login. If nil, Login returns Unimplemented.
	Auth *identityservice.AuthService
	// HealthPinger is used by the health service for readiness (e.g. *sql.DB). If nil, Check skips the DB ping.
	HealthPinger healthhandler.Pinger
	// HealthPolicyChecker is used by the health service for readiness (e.g. OPA evaluator). If nil, Check skips the policy check.
	HealthPolicyChecker healthhandler.PolicyChecker
}

// PublicMethods lists the RPCs that run without a Bearer token.
var PublicMethods = map[string]bool{
	authv1.AuthService_Login_FullMethodName: true,
	healthpb.Health_Check_FullMethodName:    true,
	healthpb.Health_Watch_FullMethodName:    true,
}

// quietMethods are neither audited nor reported as grpc_request telemetry.
var quietMethods = map[string]bool{
	healthpb.Health_Check_FullMethodName: true,
	healthpb.Health_Watch_FullMethodName: true,
}

// Interceptors holds what the unary interceptor chain needs. Tokens is required;
// a nil Audit or Telemetry disables that interceptor.
type Interceptors struct {
	Tokens     interceptors.AccessValidator
	ActiveUser interceptors.ActiveUserFunc
	Audit      audit.AuditLogger
	Telemetry  telemetry.EventEmitter
}

// ServerOptions returns the grpc.Server options: OTel stats handler plus auth, audit and
// telemetry interceptors in that order. Audit and telemetry run inside auth so they see the caller.
func ServerOptions(ic Interceptors) []grpc.ServerOption {
	return []grpc.ServerOption{
		grpc.StatsHandler(otelgrpc.NewServerHandler()),
		grpc.ChainUnaryInterceptor(
			interceptors.AuthUnary(ic.Tokens, PublicMethods, ic.ActiveUser),
			interceptors.AuditUnary(ic.Audit, quietMethods),
			interceptors.TelemetryUnary(ic.Telemetry, quietMethods),
		),
	}
}

// RegisterServices registers all gRPC services with the given server.
//
// Service → handler mapping:
//   - AccountService → internal/account/handler
//   - AdminService   → internal/admin/handler
//   - AuthService    → internal/identity/handler
//   - grpc.health.v1 → internal/health/handler
func RegisterServices(s grpc.ServiceRegistrar, deps Deps) {
	accountv1.RegisterAccountServiceServer(s, accounthandler.NewServer(deps.Account))
	adminv1.RegisterAdminServiceServer(s, adminhandler.NewServer(deps.Admin, deps.Memberships))
	authv1.RegisterAuthServiceServer(s, identityhandler.NewAuthServer(deps.Auth))
	healthpb.RegisterHealthServer(s, healthhandler.NewServer(deps.HealthPinger, deps.HealthPolicyChecker,
		accountv1.ServiceName, adminv1.ServiceName, authv1.ServiceName))
}
