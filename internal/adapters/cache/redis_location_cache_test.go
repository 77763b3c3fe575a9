package cache

import (
	"context"
	"ride-dispatch-service/internal/domain"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestRedisLocationCachePutGet(t *testing.T) {
	ctx := context.Background()
	mr, client := newTestRedis(t)
	c := NewRedisLocationCache(client, 0)

	loc := domain.NewLocation(40.7128, -74.0060)
	require.NoError(t, c.PutLocation(ctx, "rt_101", loc))

	got, ok, err := c.GetLocation(ctx, "rt_101")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, loc, got)

	assert.Equal(t, "40.7128", mr.HGet("vehicle:location:rt_101", "lat"))
	assert.Equal(t, time.Duration(0), mr.TTL("vehicle:location:rt_101"))
}

func TestRedisLocationCacheMiss(t *testing.T) {
	_, client := newTestRedis(t)
	c := NewRedisLocationCache(client, 0)

	_, ok, err := c.GetLocation(context.Background(), "nope")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisLocationCacheTTL(t *testing.T) {
	ctx := context.Background()
	mr, client := newTestRedis(t)
	c := NewRedisLocationCache(client, time.Minute)

	require.NoError(t, c.PutLocation(ctx, "taxi_202", domain.NewLocation(1, 2)))
	assert.Equal(t, time.Minute, mr.TTL("vehicle:location:taxi_202"))

	mr.FastForward(2 * time.Minute)

	_, ok, err := c.GetLocation(ctx, "taxi_202")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisLocationCacheRejectsEmptyID(t *testing.T) {
	_, client := newTestRedis(t)
	c := NewRedisLocationCache(client, 0)

	require.Error(t, c.PutLocation(context.Background(), " ", domain.Location{}))
}

func TestRedisLocationCacheUnreachable(t *testing.T) {
	mr, client := newTestRedis(t)
	c := NewRedisLocationCache(client, 0)
	mr.Close()

	require.Error(t, c.PutLocation(context.Background(), "rt_101", domain.Location{}))
}
