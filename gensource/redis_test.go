package gensource

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRedisSource(t *testing.T, ttl time.Duration) (*miniredis.Miniredis, *Redis) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	if ttl > 0 {
		return mr, NewRedisWithTTL(client, "rescache:gen:test", ttl)
	}
	return mr, NewRedis(client, "rescache:gen:test")
}

func TestRedisCurrentMissingIsBaseline(t *testing.T) {
	_, src := setupRedisSource(t, 0)

	g, err := src.Current(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), g)
}

func TestRedisBumpSeedsThenIncrements(t *testing.T) {
	_, src := setupRedisSource(t, 0)
	ctx := context.Background()

	g, err := src.Bump(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), g, "first bump after a fresh start lands on 2")

	g, err = src.Bump(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), g)

	cur, err := src.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), cur)
}

func TestRedisBumpRefreshesTTL(t *testing.T) {
	mr, src := setupRedisSource(t, time.Minute)
	ctx := context.Background()

	_, err := src.Bump(ctx)
	require.NoError(t, err)

	ttl := mr.TTL("rescache:gen:test")
	assert.Greater(t, ttl, time.Duration(0), "bump should arm the counter TTL")
}

func TestRedisCurrentCorruptCounter(t *testing.T) {
	mr, src := setupRedisSource(t, 0)
	require.NoError(t, mr.Set("rescache:gen:test", "not-a-number"))

	_, err := src.Current(context.Background())
	assert.Error(t, err)
}

func TestRedisCurrentConnectionError(t *testing.T) {
	mr, src := setupRedisSource(t, 0)
	mr.Close()

	_, err := src.Current(context.Background())
	assert.Error(t, err)
}
