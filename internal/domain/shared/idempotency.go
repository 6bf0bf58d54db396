package shared

import (
	"context"
	"time"
)

// IdempotencyStore stores processed message IDs to prevent duplicate processing.
// It backs both domain event handlers and payment webhook deliveries.
type IdempotencyStore interface {
	// MarkProcessed marks an id as processed with a TTL
	// Returns true if the id was newly marked, false if it was already processed
	MarkProcessed(ctx context.Context, id string, ttl time.Duration) (bool, error)

	// IsProcessed checks if an id has already been processed
	IsProcessed(ctx context.Context, id string) (bool, error)

	// Release forgets an id so a later delivery can claim it again
	Release(ctx context.Context, id string) error

	// Close closes the store and releases resources
	Close() error
}

// IdempotencyConfig holds configuration for idempotency handling
type IdempotencyConfig struct {
	// TTL is the time-to-live for processed IDs
	TTL time.Duration

	Enabled bool
}

// DefaultIdempotencyConfig returns the default idempotency configuration
func DefaultIdempotencyConfig() IdempotencyConfig {
	return IdempotencyConfig{
		TTL:     24 * time.Hour,
		Enabled: true,
	}
}
