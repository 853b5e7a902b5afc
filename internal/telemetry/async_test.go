package telemetry

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"account-console/backend/internal/telemetry/domain"
)

// recordingEmitter implements EventEmitter for tests and signals each emit on done.
type recordingEmitter struct {
	mu      sync.Mutex
	events  []*domain.Event
	ctxErrs []error
	emitErr error
	done    chan struct{}
}

func newRecordingEmitter(buffer int) *recordingEmitter {
	return &recordingEmitter{done: make(chan struct{}, buffer)}
}

func (r *recordingEmitter) Emit(ctx context.Context, event *domain.Event) error {
	r.mu.Lock()
	r.events = append(r.events, event)
	r.ctxErrs = append(r.ctxErrs, ctx.Err())
	r.mu.Unlock()
	if r.done != nil {
		r.done <- struct{}{}
	}
	return r.emitErr
}

func (r *recordingEmitter) wait(t *testing.T, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		select {
		case <-r.done:
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for emit %d of %d", i+1, n)
		}
	}
}

func TestEmitAsync_NilArgs(t *testing.T) {
	EmitAsync(nil, &domain.Event{EventType: "x"})
	em := newRecordingEmitter(1)
	EmitAsync(em, nil)
	select {
	case <-em.done:
		t.Fatal("nil event must not be emitted")
	case <-time.After(20 * time.Millisecond):
	}
}

func TestEmitAsync_EmitsWithFreshContext(t *testing.T) {
	em := newRecordingEmitter(1)
	event := &domain.Event{RealmID: "realm-1", UserID: "user-1", EventType: domain.EventCredentialCreated}
	EmitAsync(em, event)
	em.wait(t, 1)

	em.mu.Lock()
	defer em.mu.Unlock()
	if em.events[0] != event {
		t.Errorf("emitted %+v, want %+v", em.events[0], event)
	}
	if em.ctxErrs[0] != nil {
		t.Errorf("emit context already done: %v", em.ctxErrs[0])
	}
	if event.CreatedAt.IsZero() {
		t.Error("CreatedAt should be stamped")
	}
}

func TestEmitAsync_ErrorDoesNotPanic(t *testing.T) {
	em := newRecordingEmitter(1)
	em.emitErr = errors.New("broker down")
	EmitAsync(em, &domain.Event{EventType: "x"})
	em.wait(t, 1)
}

func TestEmitAsync_Concurrent(t *testing.T) {
	const n = 10
	em := newRecordingEmitter(n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			EmitAsync(em, &domain.Event{EventType: "x"})
		}()
	}
	wg.Wait()
	em.wait(t, n)
	em.mu.Lock()
	defer em.mu.Unlock()
	if len(em.events) != n {
		t.Errorf("events = %d, want %d", len(em.events), n)
	}
}

func TestMulti(t *testing.T) {
	a, b := newRecordingEmitter(1), newRecordingEmitter(1)
	b.emitErr = errors.New("b failed")
	m := Multi(a, nil, b)
	err := m.Emit(context.Background(), &domain.Event{EventType: "x"})
	if err == nil || err.Error() != "b failed" {
		t.Errorf("Emit err = %v, want b failed", err)
	}
	if len(a.events) != 1 || len(b.events) != 1 {
		t.Errorf("fan-out counts = %d, %d; want 1, 1", len(a.events), len(b.events))
	}
}
