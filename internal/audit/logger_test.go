package audit

import (
	"context"
	"errors"
	"testing"
	"time"

	"account-console/backend/internal/audit/domain"
)

// mockAuditRepo implements the audit repository for tests.
type mockAuditRepo struct {
	entries   []*domain.AuditLog
	createErr error
}

func (m *mockAuditRepo) GetByID(context.Context, string) (*domain.AuditLog, error) { return nil, nil }

func (m *mockAuditRepo) ListByRealm(context.Context, string, domain.Filter, int32, int32) ([]*domain.AuditLog, error) {
	return m.entries, nil
}

func (m *mockAuditRepo) Create(_ context.Context, entry *domain.AuditLog) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.entries = append(m.entries, entry)
	return nil
}

func TestLogger_LogEvent(t *testing.T) {
	repo := &mockAuditRepo{}
	logger := NewLogger(repo, func(context.Context) string { return "192.168.1.1" })
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	logger.now = func() time.Time { return fixed }

	logger.LogEvent(context.Background(), "realm-1", "user-1", "reorder", "credential", `{"type":"otp"}`)

	if len(repo.entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(repo.entries))
	}
	e := repo.entries[0]
	if e.ID == "" {
		t.Error("ID not generated")
	}
	want := domain.AuditLog{ID: e.ID, RealmID: "realm-1", UserID: "user-1", Action: "reorder", Resource: "credential",
		IP: "192.168.1.1", Metadata: `{"type":"otp"}`, CreatedAt: fixed}
	if *e != want {
		t.Errorf("entry = %+v, want %+v", *e, want)
	}
}

func TestLogger_LogEvent_Defaults(t *testing.T) {
	repo := &mockAuditRepo{}
	NewLogger(repo, nil).LogEvent(context.Background(), "", "", "login_failure", "session", "")
	if got := repo.entries[0]; got.RealmID != SentinelRealmID || got.IP != "unknown" {
		t.Errorf("entry = %+v, want sentinel realm and unknown ip", got)
	}
}

func TestLogger_LogEvent_RepoErrorSwallowed(t *testing.T) {
	repo := &mockAuditRepo{createErr: errors.New("db down")}
	NewLogger(repo, nil).LogEvent(context.Background(), "realm-1", "user-1", "x", "y", "")
	var nilLogger *Logger
	nilLogger.LogEvent(context.Background(), "realm-1", "", "x", "y", "")
	NewLogger(nil, nil).LogEvent(context.Background(), "realm-1", "", "x", "y", "")
}
