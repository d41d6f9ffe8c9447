package rdb

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	server := miniredis.RunT(t)
	cache, err := New(server.Addr(), "", 0, time.Minute)
	require.NoError(t, err)
	t.Cleanup(func() { cache.Close() })
	require.NoError(t, cache.Ping(context.Background()))
	return cache, server
}

func TestGetSetDelete(t *testing.T) {
	cache, server := newTestCache(t)
	ctx := context.Background()

	_, found, err := cache.Get(ctx, "catalog")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, cache.Set(ctx, "catalog", []byte(`[{"id":"1"}]`)))
	assert.True(t, server.Exists(keyPrefix+"catalog"))

	data, found, err := cache.Get(ctx, "catalog")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `[{"id":"1"}]`, string(data))

	require.NoError(t, cache.Delete(ctx, "catalog"))
	_, found, err = cache.Get(ctx, "catalog")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestEntriesExpire(t *testing.T) {
	cache, server := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "catalog", []byte("x")))
	assert.Equal(t, time.Minute, server.TTL(keyPrefix+"catalog"))

	server.FastForward(2 * time.Minute)
	_, found, err := cache.Get(ctx, "catalog")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestUnreachableServer(t *testing.T) {
	cache, server := newTestCache(t)
	server.Close()

	_, _, err := cache.Get(context.Background(), "catalog")
	assert.Error(t, err)
}
