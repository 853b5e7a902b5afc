// seed inserts development sample data for local testing. Run via ./scripts/seed.sh.
// Idempotent: skips inserts if the dev realm already exists.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	authflowdomain "account-console/backend/internal/authflow/domain"
	authflowrepo "account-console/backend/internal/authflow/repository"
	"account-console/backend/internal/config"
	credentialdomain "account-console/backend/internal/credential/domain"
	"account-console/backend/internal/credential/passwordpolicy"
	credentialrepo "account-console/backend/internal/credential/repository"
	"account-console/backend/internal/db"
	membershipdomain "account-console/backend/internal/membership/domain"
	membershiprepo "account-console/backend/internal/membership/repository"
	policydomain "account-console/backend/internal/policy/domain"
	policyrepo "account-console/backend/internal/policy/repository"
	realmdomain "account-console/backend/internal/realm/domain"
	realmrepo "account-console/backend/internal/realm/repository"
	"account-console/backend/internal/security"
	userdomain "account-console/backend/internal/user/domain"
	userrepo "account-console/backend/internal/user/repository"
)

// sampleRegoPolicy vetoes recovery codes until an authenticator app is set up. Seeded disabled.
const sampleRegoPolicy = `package console.credentials

veto contains "recovery-authn-codes" if {
	input.configured.otp == 0
}
`

const (
	devRealmID        = "dev-realm-001"
	devRealmName      = "dev"
	devPasswordRule   = "length(8) and notUsername"
	devUserID         = "dev-user-001"
	devUsername       = "jdoe"
	devPassword       = "My password"
	adminUserID       = "dev-user-002"
	adminUsername     = "admin"
	adminPassword     = "admin password"
	devMembershipID   = "dev-membership-001"
	adminMembershipID = "dev-membership-002"
	devPolicyID       = "dev-policy-001"
)

// browserFlow is the dev realm's browser flow. All three are alternatives, so the user can reorder them.
var browserFlow = []*authflowdomain.Execution{
	{ID: "dev-exec-001", ProviderID: "auth-username-password-form", DisplayName: "Username Password Form", Requirement: authflowdomain.RequirementAlternative},
	{ID: "dev-exec-002", ProviderID: "auth-otp-form", DisplayName: "OTP Form", Requirement: authflowdomain.RequirementAlternative},
	{ID: "dev-exec-003", ProviderID: "auth-recovery-authn-code-form", DisplayName: "Recovery Authentication Code Form", Requirement: authflowdomain.RequirementAlternative},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is not set; create a .env from .env.example or set DATABASE_URL")
	}

	ctx := context.Background()
	conn, err := db.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer conn.Close()

	realms := realmrepo.NewPostgresRepository(conn)
	users := userrepo.NewPostgresRepository(conn)
	memberships := membershiprepo.NewPostgresRepository(conn)
	credentials := credentialrepo.NewPostgresRepository(conn)
	executions := authflowrepo.NewPostgresRepository(conn)
	policies := policyrepo.NewPostgresRepository(conn)

	existing, err := realms.GetByID(ctx, devRealmID)
	if err != nil {
		log.Fatalf("seed check: %v", err)
	}
	if existing != nil {
		log.Printf("Seed already applied (realm %s exists). Skipping.", devRealmName)
		os.Exit(0)
	}

	pwPolicy, err := passwordpolicy.Parse(devPasswordRule)
	if err != nil {
		log.Fatalf("password policy: %v", err)
	}
	hasher := security.NewHasher(cfg.BcryptCost)
	now := time.Now().UTC()

	if err := realms.Create(ctx, &realmdomain.Realm{
		ID:             devRealmID,
		Name:           devRealmName,
		PasswordPolicy: pwPolicy.String(),
		CreatedAt:      now,
	}); err != nil {
		log.Fatalf("create realm: %v", err)
	}

	for i, e := range browserFlow {
		e.RealmID = devRealmID
		e.FlowAlias = authflowdomain.BrowserFlow
		e.Priority = (i + 1) * 10
		if err := executions.Create(ctx, e); err != nil {
			log.Fatalf("create execution %s: %v", e.ProviderID, err)
		}
	}

	seedUser := func(id, username, password string, role membershipdomain.Role, membershipID string) {
		u := &userdomain.User{ID: id, RealmID: devRealmID, Username: username, Status: userdomain.UserStatusActive, CreatedAt: now, UpdatedAt: now}
		if err := users.Create(ctx, u); err != nil {
			log.Fatalf("create user %s: %v", username, err)
		}
		hash, err := hasher.Hash([]byte(password))
		if err != nil {
			log.Fatalf("hash password: %v", err)
		}
		if err := credentials.Create(ctx, &credentialdomain.Credential{
			ID:         id + "-password",
			UserID:     id,
			Type:       credentialdomain.TypePassword,
			UserLabel:  "My password",
			SecretData: hash,
			CreatedAt:  now,
		}); err != nil {
			log.Fatalf("create password for %s: %v", username, err)
		}
		if err := memberships.CreateMembership(ctx, &membershipdomain.Membership{
			ID: membershipID, UserID: id, RealmID: devRealmID, Role: role, CreatedAt: now,
		}); err != nil {
			log.Fatalf("create membership for %s: %v", username, err)
		}
	}
	seedUser(devUserID, devUsername, devPassword, membershipdomain.RoleMember, devMembershipID)
	seedUser(adminUserID, adminUsername, adminPassword, membershipdomain.RoleAdmin, adminMembershipID)

	if _, err := policies.Upsert(ctx, &policydomain.Policy{
		ID:        devPolicyID,
		RealmID:   devRealmID,
		Name:      "recovery-codes-need-otp",
		Rules:     sampleRegoPolicy,
		Enabled:   false,
		CreatedAt: now,
	}); err != nil {
		log.Fatalf("create policy: %v", err)
	}

	log.Println("Seed completed successfully.")
	fmt.Printf("User login: realm=%s %s / %s\n", devRealmName, devUsername, devPassword)
	fmt.Printf("Admin login: realm=%s %s / %s\n", devRealmName, adminUsername, adminPassword)
}
