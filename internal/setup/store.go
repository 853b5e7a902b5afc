// Package setup holds credential registrations that were started but not yet
// completed: generated TOTP secrets and recovery code batches awaiting confirmation.
package setup

import (
	"context"
	"sync"
	"time"

	"account-console/backend/internal/credential/domain"
)

// Pending is a started credential registration.
type Pending struct {
	ID     string
	UserID string
	Type   domain.TypeID
	// Secret is the base32 TOTP secret (otp only).
	Secret string
	// Codes are the plain recovery codes (recovery-authn-codes only), shown once.
	Codes     []string
	ExpiresAt time.Time
}

// Store holds pending setups by id.
type Store interface {
	// Put stores p until p.ExpiresAt. A later Put for the same user and type replaces earlier ones.
	Put(ctx context.Context, p Pending)
	// Take removes and returns the setup with id if it belongs to userID and has not expired.
	Take(ctx context.Context, userID, id string) (Pending, bool)
	// Peek returns the setup without removing it.
	Peek(ctx context.Context, userID, id string) (Pending, bool)
}

// MemoryStore is an in-memory Store. Pending setups do not survive a restart.
type MemoryStore struct {
	mu   sync.Mutex
	m    map[string]Pending
	nowF func() time.Time
}

// NewMemoryStore returns an empty MemoryStore that checks expiry against now.
// A nil now uses the wall clock. Pass the same clock the caller stamps ExpiresAt with.
func NewMemoryStore(now func() time.Time) *MemoryStore {
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	return &MemoryStore{
		m:    make(map[string]Pending),
		nowF: now,
	}
}

// Put stores p, dropping the user's other pending setups of the same type and any expired entries.
func (s *MemoryStore) Put(_ context.Context, p Pending) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.nowF()
	for id, e := range s.m {
		if !e.ExpiresAt.After(now) || (e.UserID == p.UserID && e.Type == p.Type) {
			delete(s.m, id)
		}
	}
	s.m[p.ID] = p
}

// Take returns and removes the setup.
func (s *MemoryStore) Take(ctx context.Context, userID, id string) (Pending, bool) {
	return s.get(userID, id, true)
}

// Peek returns the setup and leaves it in place.
func (s *MemoryStore) Peek(ctx context.Context, userID, id string) (Pending, bool) {
	return s.get(userID, id, false)
}

func (s *MemoryStore) get(userID, id string, remove bool) (Pending, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.m[id]
	if !ok || p.UserID != userID {
		return Pending{}, false
	}
	if !p.ExpiresAt.After(s.nowF()) {
		delete(s.m, id)
		return Pending{}, false
	}
	if remove {
		delete(s.m, id)
	}
	return p, true
}
