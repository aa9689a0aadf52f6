package core

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	cache := NewMemoryCache(4, time.Minute)

	_, ok, err := cache.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, cache.Set(ctx, "k", []byte(`["a"]`)))
	value, ok, err := cache.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte(`["a"]`), value)
}

func TestMemoryCacheExpiry(t *testing.T) {
	ctx := context.Background()
	cache := NewMemoryCache(4, 10*time.Millisecond)

	require.NoError(t, cache.Set(ctx, "k", []byte("v")))
	time.Sleep(30 * time.Millisecond)

	_, ok, err := cache.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok, "entry should have expired")
}

func TestMemoryCacheCapacityEviction(t *testing.T) {
	ctx := context.Background()
	cache := NewMemoryCache(2, time.Minute)

	require.NoError(t, cache.Set(ctx, "a", []byte("1")))
	require.NoError(t, cache.Set(ctx, "b", []byte("2")))
	require.NoError(t, cache.Set(ctx, "c", []byte("3")))

	assert.Equal(t, 2, cache.Len())
	_, ok, err := cache.Get(ctx, "a")
	require.NoError(t, err)
	assert.False(t, ok, "oldest entry should have been evicted")
}
