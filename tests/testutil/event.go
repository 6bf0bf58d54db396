package testutil

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/tinymillion/backend/internal/domain/shared"
)

// RecordingPublisher is an in-memory shared.EventPublisher. Publish keeps
// every event and returns whatever SetError configured.
type RecordingPublisher struct {
	mu     sync.Mutex
	events []shared.DomainEvent
	err    error
}

func NewRecordingPublisher() *RecordingPublisher {
	return &RecordingPublisher{}
}

func (p *RecordingPublisher) Publish(_ context.Context, events ...shared.DomainEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, events...)
	return p.err
}

func (p *RecordingPublisher) SetError(err error) {
	p.mu.Lock()
	p.err = err
	p.mu.Unlock()
}

// Types lists the published event types in order
func (p *RecordingPublisher) Types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.EventType())
	}
	return out
}

func (p *RecordingPublisher) Events() []shared.DomainEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]shared.DomainEvent(nil), p.events...)
}

// TestEvent is an event type no production handler subscribes to
type TestEvent struct {
	shared.BaseDomainEvent
}

func NewTestEvent(eventType string) *TestEvent {
	return &TestEvent{BaseDomainEvent: shared.NewBaseDomainEvent(eventType, "TestAggregate", uuid.New())}
}
