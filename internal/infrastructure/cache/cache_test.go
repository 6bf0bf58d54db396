package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tinymillion/backend/internal/infrastructure/config"
	"go.uber.org/zap/zaptest"
)

func TestInMemoryIdempotencyStore(t *testing.T) {
	store := NewInMemoryIdempotencyStore()
	defer store.Close()
	ctx := context.Background()

	t.Run("marks new id as processed", func(t *testing.T) {
		isNew, err := store.MarkProcessed(ctx, "evt_1", time.Hour)
		require.NoError(t, err)
		assert.True(t, isNew)

		processed, err := store.IsProcessed(ctx, "evt_1")
		require.NoError(t, err)
		assert.True(t, processed)
	})

	t.Run("second mark reports duplicate", func(t *testing.T) {
		_, err := store.MarkProcessed(ctx, "evt_2", time.Hour)
		require.NoError(t, err)

		isNew, err := store.MarkProcessed(ctx, "evt_2", time.Hour)
		require.NoError(t, err)
		assert.False(t, isNew)
	})

	t.Run("expired ids can be marked again", func(t *testing.T) {
		now := time.Now()
		store.entries.now = func() time.Time { return now }
		_, err := store.MarkProcessed(ctx, "evt_3", time.Minute)
		require.NoError(t, err)

		store.entries.now = func() time.Time { return now.Add(2 * time.Minute) }
		processed, err := store.IsProcessed(ctx, "evt_3")
		require.NoError(t, err)
		assert.False(t, processed)

		isNew, err := store.MarkProcessed(ctx, "evt_3", time.Minute)
		require.NoError(t, err)
		assert.True(t, isNew)
		store.entries.now = time.Now
	})

	t.Run("released ids can be claimed again", func(t *testing.T) {
		isNew, err := store.MarkProcessed(ctx, "evt_4", time.Hour)
		require.NoError(t, err)
		require.True(t, isNew)

		require.NoError(t, store.Release(ctx, "evt_4"))
		isNew, err = store.MarkProcessed(ctx, "evt_4", time.Hour)
		require.NoError(t, err)
		assert.True(t, isNew)
	})

	t.Run("close is idempotent", func(t *testing.T) {
		s := NewInMemoryIdempotencyStore()
		assert.NoError(t, s.Close())
		assert.NoError(t, s.Close())
	})
}

func TestTTLMap_Cleanup(t *testing.T) {
	m := newTTLMap()
	defer m.close()

	now := time.Now()
	m.now = func() time.Time { return now }
	m.set("a", "1", time.Minute)
	m.set("b", "2", time.Hour)

	m.now = func() time.Time { return now.Add(10 * time.Minute) }
	m.cleanup()

	assert.Equal(t, 1, m.size())
	v, ok := m.get("b")
	assert.True(t, ok)
	assert.Equal(t, "2", v)
}

func TestInMemoryTextCache(t *testing.T) {
	c := NewInMemoryTextCache()
	defer c.Close()
	ctx := context.Background()

	_, ok, err := c.Get(ctx, "sitemap")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, "sitemap", "<urlset/>", time.Hour))
	v, ok, err := c.Get(ctx, "sitemap")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "<urlset/>", v)

	require.NoError(t, c.Delete(ctx, "sitemap"))
	_, ok, _ = c.Get(ctx, "sitemap")
	assert.False(t, ok)
}

func TestFactory_InMemory(t *testing.T) {
	ctx := context.Background()

	t.Run("disabled redis hands out in-memory stores", func(t *testing.T) {
		f, err := NewFactory(ctx, config.RedisConfig{Enabled: false}, WithLogger(zaptest.NewLogger(t)))
		require.NoError(t, err)
		defer f.Close()

		assert.False(t, f.UsesRedis())
		assert.Nil(t, f.Client())
		assert.IsType(t, &InMemoryIdempotencyStore{}, f.IdempotencyStore(WebhookIdempotencyPrefix))
		assert.IsType(t, &InMemoryTextCache{}, f.TextCache())
	})

	t.Run("unreachable redis falls back", func(t *testing.T) {
		cfg := config.RedisConfig{Enabled: true, Host: "127.0.0.1", Port: 1}
		f, err := NewFactory(ctx, cfg)
		require.NoError(t, err)
		defer f.Close()
		assert.False(t, f.UsesRedis())
	})

	t.Run("unreachable redis without fallback fails", func(t *testing.T) {
		cfg := config.RedisConfig{Enabled: true, Host: "127.0.0.1", Port: 1}
		_, err := NewFactory(ctx, cfg, WithInMemoryFallback(false))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "redis required")
	})
}
