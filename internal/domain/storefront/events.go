package storefront

import "github.com/tinymillion/backend/internal/domain/shared"

// Aggregate type constant for MiniStore
const AggregateTypeMiniStore = "MiniStore"

// EventTypeMiniStoreCreated is emitted when a store is opened
const EventTypeMiniStoreCreated = "ministore.created"

// MiniStoreCreatedEvent is published when a store is opened
type MiniStoreCreatedEvent struct {
	shared.BaseDomainEvent
	Slug        string `json:"slug"`
	DisplayName string `json:"display_name"`
}

// NewMiniStoreCreatedEvent creates a new MiniStoreCreatedEvent
func NewMiniStoreCreatedEvent(s *MiniStore) *MiniStoreCreatedEvent {
	return &MiniStoreCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeMiniStoreCreated, AggregateTypeMiniStore, s.ID),
		Slug:            s.Slug,
		DisplayName:     s.DisplayName,
	}
}
