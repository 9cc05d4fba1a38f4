package tenants

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestRedisCache(t *testing.T) (Cache, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	cli := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewRedisCache(cli, zap.NewNop().Sugar()), mr
}

func TestRedisCacheRoundTrip(t *testing.T) {
	cache, mr := newTestRedisCache(t)
	ctx := context.Background()

	c := Club{ID: "1", Slug: "acme", Name: "Acme", PrimaryHost: "chess.acme.com"}
	cache.Set(ctx, "host:chess.acme.com", c, time.Hour)

	got, ok := cache.Get(ctx, "host:chess.acme.com")
	require.True(t, ok)
	assert.Equal(t, c, got)

	_, ok = cache.Get(ctx, "host:other.example.com")
	assert.False(t, ok)

	// TTL expiry is a miss again.
	mr.FastForward(2 * time.Hour)
	_, ok = cache.Get(ctx, "host:chess.acme.com")
	assert.False(t, ok)
}

func TestRedisCacheFailOpenWhenDown(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	cli := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	cache := NewRedisCache(cli, zap.NewNop().Sugar())
	mr.Close()

	ctx := context.Background()
	// Both operations degrade to a miss, never an error or panic.
	cache.Set(ctx, "host:x", Club{Slug: "x"}, time.Hour)
	_, ok := cache.Get(ctx, "host:x")
	assert.False(t, ok)
}

func TestRedisCacheCorruptEntryIsMiss(t *testing.T) {
	cache, mr := newTestRedisCache(t)
	require.NoError(t, mr.Set("club:host:bad", "{not json"))

	_, ok := cache.Get(context.Background(), "host:bad")
	assert.False(t, ok)
}

func TestNopCache(t *testing.T) {
	cache := NewNopCache()
	cache.Set(context.Background(), "k", Club{Slug: "x"}, time.Hour)
	_, ok := cache.Get(context.Background(), "k")
	assert.False(t, ok)
}
