package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCache_Basic(t *testing.T) {
	cache := NewMemoryCache()
	ctx := context.Background()

	require.NoError(t, cache.Ping(ctx))
	require.NoError(t, cache.Set(ctx, "a", "1", 0))

	v, err := cache.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "1", v)

	exists, err := cache.Exists(ctx, "missing", "a")
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, cache.Del(ctx, "a"))
	v, err = cache.Get(ctx, "a")
	require.NoError(t, err)
	assert.Empty(t, v, "missing key returns empty string, not an error")
}

func TestMemoryCache_Expiration(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	cache := NewMemoryCache()
	cache.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "short", "x", time.Minute))
	require.NoError(t, cache.Set(ctx, "forever", "y", 0))
	assert.Equal(t, 2, cache.Len())

	now = now.Add(2 * time.Minute)

	v, _ := cache.Get(ctx, "short")
	assert.Empty(t, v)
	exists, _ := cache.Exists(ctx, "short")
	assert.False(t, exists)

	v, _ = cache.Get(ctx, "forever")
	assert.Equal(t, "y", v)
	assert.Equal(t, 1, cache.Len())
}

func TestMemoryCache_Close(t *testing.T) {
	cache := NewMemoryCache()
	ctx := context.Background()
	_ = cache.Set(ctx, "a", "1", 0)

	require.NoError(t, cache.Close())
	assert.Zero(t, cache.Len())
}
