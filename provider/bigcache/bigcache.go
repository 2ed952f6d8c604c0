// Package bigcache adapts allegro/bigcache as an in-memory provider. It is
// mainly a store stand-in for tests and local development: BigCache has no
// per-entry TTL, so the cache-wide LifeWindow acts as the expiry for every
// entry regardless of the TTL passed to Set.
package bigcache

import (
	"context"
	"errors"
	"time"

	bc "github.com/allegro/bigcache/v3"

	pr "github.com/rescache/rescache/provider"
)

type Store struct {
	c *bc.BigCache
}

var _ pr.Provider = (*Store)(nil)

type Config struct {
	LifeWindow         time.Duration // global expiry; stands in for per-entry TTL
	CleanWindow        time.Duration
	MaxEntriesInWindow int
	MaxEntrySize       int
	HardMaxCacheSizeMB int // ~ memory limit; 0 = unlimited
}

func New(cfg Config) (*Store, error) {
	conf := bc.DefaultConfig(cfg.LifeWindow)
	if cfg.CleanWindow > 0 {
		conf.CleanWindow = cfg.CleanWindow
	}
	if cfg.MaxEntriesInWindow > 0 {
		conf.MaxEntriesInWindow = cfg.MaxEntriesInWindow
	}
	if cfg.MaxEntrySize > 0 {
		conf.MaxEntrySize = cfg.MaxEntrySize
	}
	if cfg.HardMaxCacheSizeMB > 0 {
		conf.HardMaxCacheSize = cfg.HardMaxCacheSizeMB
	}
	c, err := bc.New(context.Background(), conf)
	if err != nil {
		return nil, err
	}
	return &Store{c: c}, nil
}

func (p *Store) Get(_ context.Context, key string) ([]byte, bool, error) {
	b, err := p.c.Get(key)
	if errors.Is(err, bc.ErrEntryNotFound) {
		return nil, false, nil
	}
	return b, err == nil, err
}

func (p *Store) Set(_ context.Context, key string, value []byte, _ time.Duration) (bool, error) {
	return true, p.c.Set(key, value)
}

func (p *Store) Del(_ context.Context, key string) error {
	err := p.c.Delete(key)
	if errors.Is(err, bc.ErrEntryNotFound) {
		return nil
	}
	return err
}

func (p *Store) Close(_ context.Context) error {
	return p.c.Close()
}
