package main

import (
	"context"
	"log"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"google.golang.org/grpc"

	accountservice "account-console/backend/internal/account/service"
	adminservice "account-console/backend/internal/admin/service"
	"account-console/backend/internal/audit"
	auditrepo "account-console/backend/internal/audit/repository"
	authflowrepo "account-console/backend/internal/authflow/repository"
	"account-console/backend/internal/config"
	credentialrepo "account-console/backend/internal/credential/repository"
	"account-console/backend/internal/db"
	identityservice "account-console/backend/internal/identity/service"
	membershiprepo "account-console/backend/internal/membership/repository"
	policyengine "account-console/backend/internal/policy/engine"
	policyrepo "account-console/backend/internal/policy/repository"
	realmrepo "account-console/backend/internal/realm/repository"
	"account-console/backend/internal/security"
	"account-console/backend/internal/server"
	"account-console/backend/internal/server/interceptors"
	"account-console/backend/internal/setup"
	"account-console/backend/internal/telemetry"
	telemetryotel "account-console/backend/internal/telemetry/otel"
	"account-console/backend/internal/telemetry/producer"
	userrepo "account-console/backend/internal/user/repository"
)

const (
	serviceName   = "account-console"
	shutdownGrace = 10 * time.Second
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is not set; create a .env from .env.example or set DATABASE_URL")
	}
	if !cfg.AuthEnabled() {
		log.Fatal("JWT_PRIVATE_KEY and JWT_PUBLIC_KEY must be set")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	providers, err := telemetryotel.NewProviders(ctx, cfg.OTLPEndpoint, serviceName, cfg.OTLPInsecure)
	if err != nil {
		log.Fatalf("telemetry: %v", err)
	}
	providers.SetGlobal()
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		_ = providers.Shutdown(sctx)
	}()

	emitters := []telemetry.EventEmitter{telemetryotel.NewEventEmitter(providers.LoggerProvider)}
	if brokers := cfg.KafkaBrokersList(); len(brokers) > 0 {
		kafka := producer.NewKafkaProducer(brokers, cfg.TelemetryKafkaTopic)
		defer kafka.Close()
		emitters = append(emitters, kafka)
		log.Printf("telemetry: publishing to kafka topic %s", cfg.TelemetryKafkaTopic)
	}
	emitter := telemetry.Multi(emitters...)

	metrics, err := telemetryotel.NewCredentialMetrics(providers.MeterProvider)
	if err != nil {
		log.Fatalf("telemetry: metrics: %v", err)
	}

	conn, err := db.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer conn.Close()

	signer, pub, err := security.LoadKeyPair(cfg.JWTPrivateKey, cfg.JWTPublicKey)
	if err != nil {
		log.Fatalf("jwt keys: %v", err)
	}
	tokens := security.NewTokenProvider(signer, pub, cfg.JWTIssuer, cfg.JWTAudience, cfg.AccessTTL())
	hasher := security.NewHasher(cfg.BcryptCost)

	realms := realmrepo.NewPostgresRepository(conn)
	users := userrepo.NewPostgresRepository(conn)
	memberships := membershiprepo.NewPostgresRepository(conn)
	credentials := credentialrepo.NewPostgresRepository(conn)
	executions := authflowrepo.NewPostgresRepository(conn)
	policies := policyrepo.NewPostgresRepository(conn)
	auditLogs := auditrepo.NewPostgresRepository(conn)
	evaluator := policyengine.NewOPAEvaluator(policies)

	clock := func() time.Time { return time.Now().UTC() }
	accountSvc := accountservice.NewService(accountservice.Deps{
		Realms:            realms,
		Users:             users,
		Executions:        executions,
		Credentials:       credentials,
		Policy:            evaluator,
		Setups:            setup.NewMemoryStore(clock),
		Hasher:            hasher,
		Emitter:           emitter,
		Metrics:           metrics,
		SetupTTL:          cfg.PendingSetupTTL(),
		TOTPIssuer:        cfg.TOTPIssuer,
		RecoveryCodeCount: cfg.RecoveryCodeCount,
		Now:               clock,
	})
	adminSvc := adminservice.NewService(adminservice.Deps{
		Users:       users,
		Credentials: credentials,
		Executions:  executions,
		Policies:    policies,
		Evaluator:   evaluator,
		Audit:       auditLogs,
		Emitter:     emitter,
	})
	authSvc := identityservice.NewAuthService(realms, users, credentials, hasher, tokens)

	s := grpc.NewServer(server.ServerOptions(server.Interceptors{
		Tokens:     tokens,
		ActiveUser: authSvc.IsActive,
		Audit:      audit.NewLogger(auditLogs, interceptors.ClientIP),
		Telemetry:  emitter,
	})...)
	server.RegisterServices(s, server.Deps{
		Account:             accountSvc,
		Admin:               adminSvc,
		Memberships:         memberships,
		Auth:                authSvc,
		HealthPinger:        conn,
		HealthPolicyChecker: evaluator,
	})

	lis, err := net.Listen("tcp", cfg.GRPCAddr)
	if err != nil {
		log.Fatalf("listen: %v", err)
	}
	defer lis.Close()

	go func() {
		log.Printf("gRPC server listening on %s", cfg.GRPCAddr)
		if err := s.Serve(lis); err != nil {
			log.Fatalf("serve: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("shutting down gRPC server...")
	stopped := make(chan struct{})
	go func() {
		s.GracefulStop()
		close(stopped)
	}()
	select {
	case <-stopped:
	case <-time.After(shutdownGrace):
		log.Println("graceful stop timed out; forcing")
		s.Stop()
	}
	log.Println("gRPC server stopped")

	// In-flight EmitAsync calls finish before the Kafka writer and OTel providers shut down.
	time.Sleep(telemetry.ShutdownDrainDuration)
}
