// Package cache provides small in-process key/value caches used by the
// configuration layer.
package cache

import (
	"context"
	"time"
)

// Cache is the common interface of every backend
type Cache interface {
	Get(ctx context.Context, key string) (interface{}, bool)
	// Set stores value. An expiration of zero uses the backend default.
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) bool
	Clear(ctx context.Context) error
	Close() error
}

const (
	TypeLRU   = "lru"
	TypeLocal = "local"
)

// Config selects and sizes a backend
type Config struct {
	Type  string `env:"CACHE_TYPE"`
	Local LocalConfig
}

// LocalConfig sizes both in-process backends
type LocalConfig struct {
	MaxSize           int           `env:"LOCAL_CACHE_MAX_SIZE"`
	DefaultExpiration time.Duration `env:"LOCAL_CACHE_DEFAULT_EXPIRATION"`
	CleanupInterval   time.Duration `env:"LOCAL_CACHE_CLEANUP_INTERVAL"`
}

// New builds the backend named by cfg.Type. Unknown types fall back to LRU.
func New(cfg Config) Cache {
	switch cfg.Type {
	case TypeLocal:
		return NewGoCache(cfg.Local)
	default:
		return NewLRUCache(LRUCacheConfig(cfg.Local))
	}
}
