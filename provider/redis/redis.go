// Package redis adapts go-redis clients to the rescache provider contract.
// It covers the three Redis-family topologies: standalone, cluster, and a
// sentinel-managed reader/writer split.
package redis

import (
	"context"
	"errors"
	"time"

	goredis "github.com/redis/go-redis/v9"

	pr "github.com/rescache/rescache/provider"
)

var ErrNilClient = errors.New("redis provider: nil client")

// Store wraps any go-redis UniversalClient (single node, cluster, or
// failover) as a Provider.
type Store struct {
	rdb         goredis.UniversalClient
	closeClient bool
}

var _ pr.Provider = (*Store)(nil)

type Config struct {
	Client      goredis.UniversalClient
	CloseClient bool // set true only if this provider exclusively owns the client
}

func New(cfg Config) (*Store, error) {
	if cfg.Client == nil {
		return nil, ErrNilClient
	}
	return &Store{rdb: cfg.Client, closeClient: cfg.CloseClient}, nil
}

// NewStandalone connects to a single node via a redis:// URL. The provider
// owns the resulting client.
func NewStandalone(url string) (*Store, error) {
	opts, err := goredis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	return &Store{rdb: goredis.NewClient(opts), closeClient: true}, nil
}

// NewCluster connects to a Redis cluster with client-side routing. The
// provider owns the resulting client.
func NewCluster(addrs []string) (*Store, error) {
	if len(addrs) == 0 {
		return nil, errors.New("redis provider: at least one cluster address is required")
	}
	rdb := goredis.NewClusterClient(&goredis.ClusterOptions{Addrs: addrs})
	return &Store{rdb: rdb, closeClient: true}, nil
}

// SentinelConfig describes a sentinel-managed primary/replica deployment.
type SentinelConfig struct {
	MasterName       string
	SentinelAddrs    []string
	SentinelPassword string
	Password         string
	DB               int
}

// NewSentinelSplit builds a reader/writer provider pair for a sentinel
// topology: the reader talks to replicas, the writer to the elected
// primary. Route Get through the reader and Set through the writer; both
// providers own their clients.
func NewSentinelSplit(cfg SentinelConfig) (reader, writer *Store, err error) {
	if cfg.MasterName == "" || len(cfg.SentinelAddrs) == 0 {
		return nil, nil, errors.New("redis provider: sentinel master name and addresses are required")
	}
	base := goredis.FailoverOptions{
		MasterName:       cfg.MasterName,
		SentinelAddrs:    cfg.SentinelAddrs,
		SentinelPassword: cfg.SentinelPassword,
		Password:         cfg.Password,
		DB:               cfg.DB,
	}

	writerOpts := base
	writer = &Store{rdb: goredis.NewFailoverClient(&writerOpts), closeClient: true}

	readerOpts := base
	readerOpts.ReplicaOnly = true
	reader = &Store{rdb: goredis.NewFailoverClient(&readerOpts), closeClient: true}

	return reader, writer, nil
}

// Client exposes the underlying go-redis client so the host application can
// subscribe to connection events or hooks.
func (p *Store) Client() goredis.UniversalClient { return p.rdb }

func (p *Store) Get(ctx context.Context, key string) ([]byte, bool, error) {
	b, err := p.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, false, nil // miss
	}
	if err != nil {
		return nil, false, err // transport/server error
	}
	return b, true, nil
}

func (p *Store) Set(ctx context.Context, key string, value []byte, ttl time.Duration) (bool, error) {
	if ttl < 0 {
		ttl = 0 // non-positive TTLs mean "no expiry" per provider contract
	}
	status, err := p.rdb.Set(ctx, key, value, ttl).Result()
	if err != nil {
		return false, err
	}
	return status == "OK", nil
}

func (p *Store) Del(ctx context.Context, key string) error {
	return p.rdb.Del(ctx, key).Err()
}

// Close releases the underlying client only when this provider owns it.
// Repeated calls become no-ops.
func (p *Store) Close(context.Context) error {
	if p.closeClient {
		if err := p.rdb.Close(); err != nil && !errors.Is(err, goredis.ErrClosed) {
			return err
		}
	}
	return nil
}
