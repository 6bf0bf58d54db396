package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/tinymillion/backend/internal/domain/shared"
	"github.com/tinymillion/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// Factory hands out Redis-backed stores when Redis is reachable and
// in-memory stores otherwise.
type Factory struct {
	client                *redis.Client
	logger                *zap.Logger
	allowInMemoryFallback bool
	closers               []func() error
}

// FactoryOption configures a Factory
type FactoryOption func(*Factory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) FactoryOption {
	return func(f *Factory) {
		f.logger = logger
	}
}

// WithInMemoryFallback controls whether an unreachable Redis is tolerated.
// Default is true.
func WithInMemoryFallback(allow bool) FactoryOption {
	return func(f *Factory) {
		f.allowInMemoryFallback = allow
	}
}

// NewFactory connects to Redis when cfg.Enabled is set.
func NewFactory(ctx context.Context, cfg config.RedisConfig, opts ...FactoryOption) (*Factory, error) {
	f := &Factory{
		logger:                zap.NewNop(),
		allowInMemoryFallback: true,
	}
	for _, opt := range opts {
		opt(f)
	}

	if !cfg.Enabled {
		f.logger.Info("Redis disabled, using in-memory stores")
		return f, nil
	}

	client, err := NewRedisClient(ctx, cfg)
	if err != nil {
		if !f.allowInMemoryFallback {
			return nil, fmt.Errorf("redis required but unavailable: %w", err)
		}
		f.logger.Warn("Redis unavailable, falling back to in-memory stores. "+
			"Webhook de-duplication and token revocation will not be shared across instances.",
			zap.Error(err),
		)
		return f, nil
	}

	f.client = client
	f.closers = append(f.closers, client.Close)
	f.logger.Info("Connected to Redis", zap.String("addr", cfg.Addr()))
	return f, nil
}

// NewRedisClient creates a client and verifies it with PING
func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr(),
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     10,
		MinIdleConns: 3,
		MaxRetries:   3,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return client, nil
}

// Client returns the Redis client, or nil when running in memory
func (f *Factory) Client() *redis.Client {
	return f.client
}

// UsesRedis reports whether stores are Redis-backed
func (f *Factory) UsesRedis() bool {
	return f.client != nil
}

// IdempotencyStore returns a store whose keys are namespaced by prefix
func (f *Factory) IdempotencyStore(prefix string) shared.IdempotencyStore {
	if f.client != nil {
		return NewRedisIdempotencyStore(f.client, prefix)
	}
	store := NewInMemoryIdempotencyStore()
	f.closers = append(f.closers, store.Close)
	return store
}

// TextCache returns the document cache
func (f *Factory) TextCache() TextCache {
	if f.client != nil {
		return NewRedisTextCache(f.client)
	}
	c := NewInMemoryTextCache()
	f.closers = append(f.closers, c.Close)
	return c
}

// Close releases the Redis client and stops in-memory cleanup loops
func (f *Factory) Close() error {
	var firstErr error
	for _, closeFn := range f.closers {
		if err := closeFn(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	f.closers = nil
	return firstErr
}
