package shared

import (
	"time"

	"github.com/google/uuid"
)

// Entity is anything identified by a UUID
type Entity interface {
	EntityID() uuid.UUID
}

// BaseEntity carries the id and timestamps every stored record has
type BaseEntity struct {
	ID        uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewBaseEntity stamps a fresh id with both timestamps set to now
func NewBaseEntity() BaseEntity {
	now := time.Now()
	return BaseEntity{ID: uuid.New(), CreatedAt: now, UpdatedAt: now}
}

func (e *BaseEntity) EntityID() uuid.UUID { return e.ID }

// Touch bumps UpdatedAt
func (e *BaseEntity) Touch() { e.UpdatedAt = time.Now() }
