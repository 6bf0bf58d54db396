package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// TextCache stores rendered documents such as sitemap.xml
type TextCache interface {
	// Get returns the cached value and whether it was present
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

const textCachePrefix = "cache:text:"

// RedisTextCache implements TextCache using Redis strings
type RedisTextCache struct {
	client redis.Cmdable
}

// NewRedisTextCache creates a text cache on an existing Redis client
func NewRedisTextCache(client redis.Cmdable) *RedisTextCache {
	return &RedisTextCache{client: client}
}

// Get implements TextCache
func (c *RedisTextCache) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := c.client.Get(ctx, textCachePrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read cache key %s: %w", key, err)
	}
	return val, true, nil
}

// Set implements TextCache
func (c *RedisTextCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if err := c.client.Set(ctx, textCachePrefix+key, value, ttl).Err(); err != nil {
		return fmt.Errorf("failed to write cache key %s: %w", key, err)
	}
	return nil
}

// Delete implements TextCache
func (c *RedisTextCache) Delete(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, textCachePrefix+key).Err(); err != nil {
		return fmt.Errorf("failed to delete cache key %s: %w", key, err)
	}
	return nil
}

var _ TextCache = (*RedisTextCache)(nil)

// InMemoryTextCache implements TextCache in process memory
type InMemoryTextCache struct {
	entries *ttlMap
}

// NewInMemoryTextCache creates an in-memory text cache
func NewInMemoryTextCache() *InMemoryTextCache {
	return &InMemoryTextCache{entries: newTTLMap()}
}

// Get implements TextCache
func (c *InMemoryTextCache) Get(_ context.Context, key string) (string, bool, error) {
	v, ok := c.entries.get(key)
	return v, ok, nil
}

// Set implements TextCache
func (c *InMemoryTextCache) Set(_ context.Context, key, value string, ttl time.Duration) error {
	c.entries.set(key, value, ttl)
	return nil
}

// Delete implements TextCache
func (c *InMemoryTextCache) Delete(_ context.Context, key string) error {
	c.entries.delete(key)
	return nil
}

// Close stops the cleanup loop
func (c *InMemoryTextCache) Close() error {
	c.entries.close()
	return nil
}

var _ TextCache = (*InMemoryTextCache)(nil)
