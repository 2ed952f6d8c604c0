package gensource

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis shares the keyspace generation across processes and survives
// restarts. A missing counter reads as generation 1, matching the
// configuration default. Optionally a TTL keeps the counter from living
// forever on abandoned keyspaces; if it expires, readers fall back to
// generation 1 and the keyspace behaves as freshly bumped-to-baseline.
type Redis struct {
	rdb redis.UniversalClient
	key string
	ttl time.Duration // 0 disables expiry
}

var _ Source = (*Redis)(nil)

// NewRedis creates a Redis-backed generation source without TTL. key should
// be namespaced by the caller (e.g. "rescache:gen:responses").
func NewRedis(client redis.UniversalClient, key string) *Redis {
	return &Redis{rdb: client, key: key}
}

// NewRedisWithTTL is NewRedis with an expiry refreshed on every bump.
func NewRedisWithTTL(client redis.UniversalClient, key string, ttl time.Duration) *Redis {
	return &Redis{rdb: client, key: key, ttl: ttl}
}

func (s *Redis) Current(ctx context.Context) (int64, error) {
	res, err := s.rdb.Get(ctx, s.key).Result()
	if err == redis.Nil {
		return 1, nil
	}
	if err != nil {
		return 0, err
	}
	g, err := strconv.ParseInt(res, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("redis gen parse: %w", err)
	}
	return g, nil
}

// Bump seeds the counter at the baseline when missing and increments it in
// the same round-trip, so the first bump observed after a fresh start is 2.
// With ttl > 0 the expiry is refreshed in the same pipeline.
func (s *Redis) Bump(ctx context.Context) (int64, error) {
	var incr *redis.IntCmd
	_, err := s.rdb.Pipelined(ctx, func(p redis.Pipeliner) error {
		p.SetNX(ctx, s.key, 1, 0)
		incr = p.Incr(ctx, s.key)
		if s.ttl > 0 {
			p.Expire(ctx, s.key, s.ttl)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return incr.Val(), nil
}
