package setup

import (
	"context"
	"sync"
	"testing"
	"time"

	"account-console/backend/internal/credential/domain"
)

func newTestStore(now time.Time) *MemoryStore {
	return NewMemoryStore(func() time.Time { return now })
}

func TestMemoryStore_PutTake(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	s := newTestStore(now)
	ctx := context.Background()
	s.Put(ctx, Pending{ID: "s1", UserID: "u1", Type: domain.TypeOTP, Secret: "ABC", ExpiresAt: now.Add(time.Minute)})

	if _, ok := s.Take(ctx, "u2", "s1"); ok {
		t.Fatal("Take by another user should fail")
	}
	if p, ok := s.Peek(ctx, "u1", "s1"); !ok || p.Secret != "ABC" {
		t.Fatalf("Peek = %+v, %v", p, ok)
	}
	p, ok := s.Take(ctx, "u1", "s1")
	if !ok || p.Secret != "ABC" {
		t.Fatalf("Take = %+v, %v", p, ok)
	}
	if _, ok := s.Take(ctx, "u1", "s1"); ok {
		t.Error("second Take should fail")
	}
}

func TestMemoryStore_Expired(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	s := newTestStore(now)
	ctx := context.Background()
	s.Put(ctx, Pending{ID: "s1", UserID: "u1", Type: domain.TypeOTP, ExpiresAt: now})
	if _, ok := s.Take(ctx, "u1", "s1"); ok {
		t.Error("Take should fail at expiry")
	}
	if len(s.m) != 0 {
		t.Errorf("expired entry not removed, len = %d", len(s.m))
	}
}

func TestMemoryStore_PutReplacesSameType(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	s := newTestStore(now)
	ctx := context.Background()
	exp := now.Add(time.Minute)
	s.Put(ctx, Pending{ID: "otp1", UserID: "u1", Type: domain.TypeOTP, ExpiresAt: exp})
	s.Put(ctx, Pending{ID: "codes1", UserID: "u1", Type: domain.TypeRecoveryAuthnCodes, ExpiresAt: exp})
	s.Put(ctx, Pending{ID: "otp2", UserID: "u1", Type: domain.TypeOTP, ExpiresAt: exp})

	if _, ok := s.Peek(ctx, "u1", "otp1"); ok {
		t.Error("otp1 should be replaced by otp2")
	}
	for _, id := range []string{"otp2", "codes1"} {
		if _, ok := s.Peek(ctx, "u1", id); !ok {
			t.Errorf("%s missing", id)
		}
	}
}

func TestMemoryStore_ConcurrentAccess(t *testing.T) {
	s := NewMemoryStore(nil)
	ctx := context.Background()
	exp := time.Now().UTC().Add(time.Minute)
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := string(rune('a' + i))
			s.Put(ctx, Pending{ID: id, UserID: id, Type: domain.TypeOTP, ExpiresAt: exp})
			s.Take(ctx, id, id)
		}(i)
	}
	wg.Wait()
}
