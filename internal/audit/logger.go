package audit

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"account-console/backend/internal/audit/domain"
	auditrepo "account-console/backend/internal/audit/repository"
)

// SentinelRealmID is the realm_id recorded for events without a resolved realm (e.g. a login against an unknown realm).
const SentinelRealmID = "_system"

// IPExtractor returns the client IP from the request context (e.g. gRPC metadata or peer).
type IPExtractor func(context.Context) string

// AuditLogger writes a single audit event with explicit action/resource.
// LogEvent is best-effort: failures are logged and do not affect the caller.
type AuditLogger interface {
	LogEvent(ctx context.Context, realmID, userID, action, resource, metadata string)
}

// Logger implements AuditLogger using the audit repository and an optional IP extractor.
type Logger struct {
	repo        auditrepo.Repository
	ipExtractor IPExtractor
	now         func() time.Time
}

// NewLogger returns a Logger that persists to repo. ipExtractor may be nil; IP is then "unknown".
func NewLogger(repo auditrepo.Repository, ipExtractor IPExtractor) *Logger {
	return &Logger{repo: repo, ipExtractor: ipExtractor, now: func() time.Time { return time.Now().UTC() }}
}

// LogEvent writes one audit log entry.
func (l *Logger) LogEvent(ctx context.Context, realmID, userID, action, resource, metadata string) {
	if l == nil || l.repo == nil {
		return
	}
	ip := "unknown"
	if l.ipExtractor != nil {
		ip = l.ipExtractor(ctx)
	}
	if realmID == "" {
		realmID = SentinelRealmID
	}
	entry := &domain.AuditLog{
		ID:        uuid.New().String(),
		RealmID:   realmID,
		UserID:    userID,
		Action:    action,
		Resource:  resource,
		IP:        ip,
		Metadata:  metadata,
		CreatedAt: l.now(),
	}
	if err := l.repo.Create(ctx, entry); err != nil {
		log.Printf("audit: failed to log event %s/%s: %v", action, resource, err)
	}
}
