package security

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func mustTestProvider(t *testing.T) *TokenProvider {
	t.Helper()
	p, err := NewTestTokenProvider()
	if err != nil {
		t.Fatalf("NewTestTokenProvider: %v", err)
	}
	return p
}

func TestTokenProvider_RoundTrip(t *testing.T) {
	p := mustTestProvider(t)
	id := Identity{UserID: "u1", RealmID: "r1", SessionID: "s1"}
	token, exp, err := p.IssueAccess(id)
	if err != nil {
		t.Fatalf("IssueAccess: %v", err)
	}
	if token == "" || !exp.After(time.Now()) {
		t.Fatalf("token=%q exp=%v", token, exp)
	}
	got, err := p.ValidateAccess(token)
	if err != nil {
		t.Fatalf("ValidateAccess: %v", err)
	}
	if got != id {
		t.Errorf("ValidateAccess = %+v, want %+v", got, id)
	}
}

func TestTokenProvider_Rejects(t *testing.T) {
	p := mustTestProvider(t)
	good, _, err := p.IssueAccess(Identity{UserID: "u1", RealmID: "r1"})
	if err != nil {
		t.Fatalf("IssueAccess: %v", err)
	}
	noRealm, _, _ := p.IssueAccess(Identity{UserID: "u1"})

	expired := mustTestProvider(t)
	expired.now = func() time.Time { return time.Now().Add(-time.Hour) }
	old, _, _ := expired.IssueAccess(Identity{UserID: "u1", RealmID: "r1"})

	otherAud := mustTestProvider(t)
	otherAud.audience = "someone-else"

	tests := []struct {
		name  string
		p     *TokenProvider
		token string
	}{
		{"garbage", p, "invalid-token"},
		{"tampered", p, good[:len(good)-2] + "xx"},
		{"missing realm", p, noRealm},
		{"expired", p, old},
		{"wrong audience", otherAud, good},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.p.ValidateAccess(tt.token); !errors.Is(err, ErrInvalidToken) {
				t.Errorf("ValidateAccess err = %v, want ErrInvalidToken", err)
			}
		})
	}
}

func TestNewSessionID(t *testing.T) {
	a, err := NewSessionID()
	if err != nil {
		t.Fatal(err)
	}
	b, _ := NewSessionID()
	if len(a) != 32 || a == b || strings.Trim(a, "0123456789abcdef") != "" {
		t.Errorf("session ids %q %q", a, b)
	}
}
