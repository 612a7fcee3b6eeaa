package cache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// goCacheWrapper adapts patrickmn/go-cache. It has no size bound, so
// LocalConfig.MaxSize is ignored.
type goCacheWrapper struct {
	cache *gocache.Cache
}

// NewGoCache creates a cache backed by patrickmn/go-cache
func NewGoCache(config LocalConfig) Cache {
	exp := config.DefaultExpiration
	if exp <= 0 {
		exp = gocache.NoExpiration
	}
	cleanup := config.CleanupInterval
	if cleanup < 0 {
		cleanup = 0
	}
	return &goCacheWrapper{cache: gocache.New(exp, cleanup)}
}

func (g *goCacheWrapper) Get(ctx context.Context, key string) (interface{}, bool) {
	return g.cache.Get(key)
}

func (g *goCacheWrapper) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	if expiration <= 0 {
		expiration = gocache.DefaultExpiration
	}
	g.cache.Set(key, value, expiration)
	return nil
}

func (g *goCacheWrapper) Delete(ctx context.Context, key string) error {
	g.cache.Delete(key)
	return nil
}

func (g *goCacheWrapper) Exists(ctx context.Context, key string) bool {
	_, ok := g.cache.Get(key)
	return ok
}

func (g *goCacheWrapper) Clear(ctx context.Context) error {
	g.cache.Flush()
	return nil
}

func (g *goCacheWrapper) Close() error {
	return nil
}
