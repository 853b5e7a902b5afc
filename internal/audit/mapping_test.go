package audit

import "testing"

func TestParseFullMethod(t *testing.T) {
	tests := []struct {
		fullMethod string
		want       ActionResource
	}{
		{"/console.account.v1.AccountService/GetSigningIn", ActionResource{"get", "credential"}},
		{"/console.account.v1.AccountService/MoveCredential", ActionResource{"reorder", "credential"}},
		{"/console.account.v1.AccountService/RemoveCredential", ActionResource{"delete", "credential"}},
		{"/console.account.v1.AccountService/UpdatePassword", ActionResource{"password_updated", "credential"}},
		{"/console.admin.v1.AdminService/ListExecutions", ActionResource{"list", "execution"}},
		{"/console.admin.v1.AdminService/UpdateExecution", ActionResource{"update", "execution"}},
		{"/console.admin.v1.AdminService/PutCredentialPolicy", ActionResource{"update", "credential_policy"}},
		{"/console.admin.v1.AdminService/ListCredentialPolicies", ActionResource{"list", "credential_policy"}},
		{"/console.admin.v1.AdminService/ListAuditLogs", ActionResource{"list", "audit_log"}},
		{"/console.auth.v1.AuthService/Login", ActionResource{"login", "session"}},
		{"/grpc.health.v1.Health/Check", ActionResource{"check", "health"}},
		{"/pkg.v1.ThingService/Get", ActionResource{"get", "thing"}},
		{"NoSlash", ActionResource{"unknown", "unknown"}},
		{"/Flat/DoIt", ActionResource{"doit", "unknown"}},
	}
	for _, tt := range tests {
		t.Run(tt.fullMethod, func(t *testing.T) {
			if got := ParseFullMethod(tt.fullMethod); got != tt.want {
				t.Errorf("ParseFullMethod(%q) = %+v, want %+v", tt.fullMethod, got, tt.want)
			}
		})
	}
}

func TestToSnake(t *testing.T) {
	for in, want := range map[string]string{"": "", "Credential": "credential", "AuditLog": "audit_log", "already": "already"} {
		if got := toSnake(in); got != want {
			t.Errorf("toSnake(%q) = %q, want %q", in, got, want)
		}
	}
}
