package telemetry

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

// mockEventEmitter implements EventEmitter for tests.
type mockEventEmitter struct {
	mu      sync.Mutex
	events  []*Event
	emitErr error
}

func (m *mockEventEmitter) Emit(ctx context.Context, event *Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
	return m.emitErr
}

func (m *mockEventEmitter) getEvents() []*Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.events
}

func TestEmitAsync_NilEmitter(t *testing.T) {
	// Should not panic
	EmitAsync(nil, context.Background(), NewEvent("acct-1", "test", nil))
}

func TestEmitAsync_NilEvent(t *testing.T) {
	emitter := &mockEventEmitter{}

	// Should not panic
	EmitAsync(emitter, context.Background(), nil)

	time.Sleep(10 * time.Millisecond)
	if got := emitter.getEvents(); len(got) != 0 {
		t.Errorf("expected 0 events, got %d", len(got))
	}
}

func TestEmitAsync_SuccessfulEmit(t *testing.T) {
	emitter := &mockEventEmitter{}
	EmitAsync(emitter, context.Background(), NewEvent("acct-1", "login", map[string]string{"k": "v"}))

	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if len(emitter.getEvents()) == 1 {
			break
		}
		time.Sleep(5 * time.Millisecond)
	}
	events := emitter.getEvents()
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if events[0].EventType != "login" || events[0].AccountID != "acct-1" {
		t.Errorf("unexpected event %+v", events[0])
	}
}

func TestEmitAsync_EmitterErrorIsSwallowed(t *testing.T) {
	emitter := &mockEventEmitter{emitErr: errors.New("broker down")}
	EmitAsync(emitter, context.Background(), NewEvent("acct-1", "login", nil))
	time.Sleep(50 * time.Millisecond)
	// No panic, no error surfaced; the emit was still attempted.
	if len(emitter.getEvents()) != 1 {
		t.Error("emit should have been attempted despite the error")
	}
}

func TestNewEvent(t *testing.T) {
	e := NewEvent("acct-1", "note_created", map[string]string{"note_id": "n-1"})
	if e.Source != "notes-api" {
		t.Errorf("Source = %q, want notes-api", e.Source)
	}
	if e.CreatedAt.IsZero() {
		t.Error("CreatedAt should be stamped")
	}
	if e.Metadata["note_id"] != "n-1" {
		t.Error("Metadata should round-trip")
	}
}
