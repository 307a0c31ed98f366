package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mikey/bayes-spam-classifier/internal/core"
)

func newTestCache(t *testing.T) *MemoryCache {
	t.Helper()
	c := NewMemoryCache(zap.NewNop(), time.Hour)
	t.Cleanup(c.Stop)
	return c
}

func entry(digest string, ttl time.Duration) *core.CacheEntry {
	return &core.CacheEntry{
		TextDigest: digest,
		IsSpam:     true,
		Score:      0.9,
		LastSeen:   time.Now(),
		ExpiresAt:  time.Now().Add(ttl),
	}
}

func TestMemoryCacheSetAndGet(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, entry("abc", time.Hour)))

	got, err := c.Get(ctx, "abc")
	require.NoError(t, err)
	assert.True(t, got.IsSpam)
	assert.InDelta(t, 0.9, float64(got.Score), 1e-6)
}

func TestMemoryCacheGetMissing(t *testing.T) {
	c := newTestCache(t)

	_, err := c.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryCacheGetExpired(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, entry("old", -time.Minute)))

	_, err := c.Get(ctx, "old")
	assert.ErrorIs(t, err, ErrExpired)
}

func TestMemoryCacheDelete(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, entry("abc", time.Hour)))
	require.NoError(t, c.Delete(ctx, "abc"))

	_, err := c.Get(ctx, "abc")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryCacheCleanupRemovesExpired(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, entry("fresh", time.Hour)))
	require.NoError(t, c.Set(ctx, entry("stale", -time.Minute)))

	require.NoError(t, c.Cleanup(ctx))

	_, err := c.Get(ctx, "fresh")
	assert.NoError(t, err)
	_, err = c.Get(ctx, "stale")
	assert.ErrorIs(t, err, ErrNotFound)
}
