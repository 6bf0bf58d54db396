package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/tinymillion/backend/internal/domain/shared"
)

// Key prefixes for the idempotency stores
const (
	EventIdempotencyPrefix   = "event:idempotency:"
	WebhookIdempotencyPrefix = "webhook:idempotency:"
)

// RedisIdempotencyStore implements IdempotencyStore with SETNX so that every
// API instance shares the same processed set.
type RedisIdempotencyStore struct {
	client    redis.Cmdable
	keyPrefix string
}

// NewRedisIdempotencyStore creates a store on an existing Redis client
func NewRedisIdempotencyStore(client redis.Cmdable, keyPrefix string) *RedisIdempotencyStore {
	if keyPrefix == "" {
		keyPrefix = EventIdempotencyPrefix
	}
	return &RedisIdempotencyStore{client: client, keyPrefix: keyPrefix}
}

// MarkProcessed returns true if id was newly marked
func (s *RedisIdempotencyStore) MarkProcessed(ctx context.Context, id string, ttl time.Duration) (bool, error) {
	ok, err := s.client.SetNX(ctx, s.keyPrefix+id, "1", ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to mark %s as processed: %w", id, err)
	}
	return ok, nil
}

// IsProcessed checks if id has been marked and not expired
func (s *RedisIdempotencyStore) IsProcessed(ctx context.Context, id string) (bool, error) {
	exists, err := s.client.Exists(ctx, s.keyPrefix+id).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check %s: %w", id, err)
	}
	return exists > 0, nil
}

// Release deletes the marker for id
func (s *RedisIdempotencyStore) Release(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, s.keyPrefix+id).Err(); err != nil {
		return fmt.Errorf("failed to release %s: %w", id, err)
	}
	return nil
}

// Close is a no-op; the shared client is closed by the factory
func (s *RedisIdempotencyStore) Close() error {
	return nil
}

var _ shared.IdempotencyStore = (*RedisIdempotencyStore)(nil)

// InMemoryIdempotencyStore implements IdempotencyStore in process memory.
// It is suitable for single-instance deployments and tests.
type InMemoryIdempotencyStore struct {
	entries *ttlMap
}

// NewInMemoryIdempotencyStore creates a store with a background cleanup loop
func NewInMemoryIdempotencyStore() *InMemoryIdempotencyStore {
	return &InMemoryIdempotencyStore{entries: newTTLMap()}
}

// MarkProcessed returns true if id was newly marked
func (s *InMemoryIdempotencyStore) MarkProcessed(_ context.Context, id string, ttl time.Duration) (bool, error) {
	return s.entries.setNX(id, "1", ttl), nil
}

// IsProcessed checks if id has been marked and not expired
func (s *InMemoryIdempotencyStore) IsProcessed(_ context.Context, id string) (bool, error) {
	_, ok := s.entries.get(id)
	return ok, nil
}

func (s *InMemoryIdempotencyStore) Release(_ context.Context, id string) error {
	s.entries.delete(id)
	return nil
}

// Close stops the cleanup loop. Safe to call multiple times.
func (s *InMemoryIdempotencyStore) Close() error {
	s.entries.close()
	return nil
}

// Size returns the number of stored ids, expired ones included until purged
func (s *InMemoryIdempotencyStore) Size() int {
	return s.entries.size()
}

var _ shared.IdempotencyStore = (*InMemoryIdempotencyStore)(nil)
