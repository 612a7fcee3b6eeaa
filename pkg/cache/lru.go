package cache

import (
	"context"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// LRUCacheConfig sizes the LRU backend
type LRUCacheConfig struct {
	// MaxSize is the number of entries kept before eviction
	MaxSize int
	// DefaultExpiration applies when Set is called with zero expiration
	DefaultExpiration time.Duration
	// CleanupInterval is how often expired entries are purged; zero disables it
	CleanupInterval time.Duration
}

type lruCacheImpl struct {
	cache    *lru.Cache[string, *lruCacheItem]
	config   LRUCacheConfig
	mu       sync.RWMutex
	stopChan chan struct{}
	stopOnce sync.Once
}

type lruCacheItem struct {
	value      interface{}
	expiration time.Time
}

func (i *lruCacheItem) expired(now time.Time) bool {
	return !i.expiration.IsZero() && now.After(i.expiration)
}

// NewLRUCache creates a cache backed by hashicorp/golang-lru
func NewLRUCache(config LRUCacheConfig) Cache {
	if config.MaxSize <= 0 {
		config.MaxSize = 1000
	}
	c, err := lru.New[string, *lruCacheItem](config.MaxSize)
	if err != nil {
		c, _ = lru.New[string, *lruCacheItem](1000)
	}

	lc := &lruCacheImpl{
		cache:    c,
		config:   config,
		stopChan: make(chan struct{}),
	}
	go lc.startCleanup()
	return lc
}

func (lc *lruCacheImpl) Get(ctx context.Context, key string) (interface{}, bool) {
	lc.mu.RLock()
	defer lc.mu.RUnlock()

	item, ok := lc.cache.Get(key)
	if !ok {
		return nil, false
	}
	if item.expired(time.Now()) {
		lc.cache.Remove(key)
		return nil, false
	}
	return item.value, true
}

func (lc *lruCacheImpl) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	lc.mu.Lock()
	defer lc.mu.Unlock()

	var exp time.Time
	if expiration > 0 {
		exp = time.Now().Add(expiration)
	} else if lc.config.DefaultExpiration > 0 {
		exp = time.Now().Add(lc.config.DefaultExpiration)
	}

	lc.cache.Add(key, &lruCacheItem{value: value, expiration: exp})
	return nil
}

func (lc *lruCacheImpl) Delete(ctx context.Context, key string) error {
	lc.mu.Lock()
	defer lc.mu.Unlock()

	lc.cache.Remove(key)
	return nil
}

func (lc *lruCacheImpl) Exists(ctx context.Context, key string) bool {
	_, ok := lc.Get(ctx, key)
	return ok
}

func (lc *lruCacheImpl) Clear(ctx context.Context) error {
	lc.mu.Lock()
	defer lc.mu.Unlock()

	lc.cache.Purge()
	return nil
}

func (lc *lruCacheImpl) Close() error {
	lc.stopOnce.Do(func() { close(lc.stopChan) })
	return nil
}

func (lc *lruCacheImpl) startCleanup() {
	if lc.config.CleanupInterval <= 0 {
		return
	}

	ticker := time.NewTicker(lc.config.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			lc.cleanup()
		case <-lc.stopChan:
			return
		}
	}
}

func (lc *lruCacheImpl) cleanup() {
	lc.mu.Lock()
	defer lc.mu.Unlock()

	now := time.Now()
	for _, key := range lc.cache.Keys() {
		if item, ok := lc.cache.Peek(key); ok && item.expired(now) {
			lc.cache.Remove(key)
		}
	}
}
