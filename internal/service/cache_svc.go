package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/limelightseychelles-git/KidsTube-filter/internal/metrics"
	"github.com/limelightseychelles-git/KidsTube-filter/pkg/hash"
)

const cacheKeyPrefix = "kidstube:"

// ConnectRedis opens a Redis client for the result cache. If redisURL is
// empty or the server is unreachable it returns nil and the cache runs
// memory-only.
func ConnectRedis(redisURL string, log zerolog.Logger) *redis.Client {
	if redisURL == "" {
		log.Info().Msg("redis: no URL configured, shared cache disabled")
		return nil
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Warn().Err(err).Msg("redis: invalid URL, shared cache disabled")
		return nil
	}

	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Warn().Err(err).Msg("redis: connection failed, shared cache disabled")
		_ = rdb.Close()
		return nil
	}

	log.Info().Str("addr", opts.Addr).Msg("redis: connected, shared cache enabled")
	return rdb
}

type cacheEntry struct {
	payload   []byte
	expiresAt time.Time
}

// ResultCache is a best-effort two-tier cache: a bounded in-process map in
// front of Redis. Every backend failure degrades to a miss on read and to a
// no-op on write; callers never see a cache error.
type ResultCache struct {
	rdb        *redis.Client
	ttl        time.Duration
	maxEntries int
	now        func() time.Time
	log        zerolog.Logger

	mu      sync.Mutex
	entries map[string]cacheEntry
}

// NewResultCache creates a cache. rdb may be nil for memory-only operation.
func NewResultCache(rdb *redis.Client, ttl time.Duration, maxEntries int, log zerolog.Logger) *ResultCache {
	return &ResultCache{
		rdb:        rdb,
		ttl:        ttl,
		maxEntries: maxEntries,
		now:        time.Now,
		log:        log.With().Str("component", "result_cache").Logger(),
		entries:    make(map[string]cacheEntry),
	}
}

// Get returns the payload stored under key, checking memory before Redis.
func (c *ResultCache) Get(ctx context.Context, key string) ([]byte, bool) {
	now := c.now()

	c.mu.Lock()
	if e, ok := c.entries[key]; ok {
		if now.Before(e.expiresAt) {
			c.mu.Unlock()
			metrics.CacheHits.WithLabelValues("memory").Inc()
			return e.payload, true
		}
		delete(c.entries, key)
	}
	c.mu.Unlock()

	if c.rdb != nil {
		data, ttl, err := c.getRemote(ctx, key)
		switch {
		case err == nil:
			c.store(key, data, now.Add(ttl))
			metrics.CacheHits.WithLabelValues("redis").Inc()
			return data, true
		case !errors.Is(err, redis.Nil):
			c.log.Warn().Err(err).Str("key", key).Msg("cache get failed, treating as miss")
		}
	}

	metrics.CacheMisses.Inc()
	return nil, false
}

// Put stores payload under key for the configured TTL.
func (c *ResultCache) Put(ctx context.Context, key string, payload []byte) {
	c.store(key, payload, c.now().Add(c.ttl))

	if c.rdb == nil {
		return
	}
	if err := c.rdb.Set(ctx, cacheKeyPrefix+key, payload, c.ttl).Err(); err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("cache set failed, ignoring")
	}
}

// getRemote fetches the value and its remaining TTL in one round trip so the
// memory tier never outlives the shared entry.
func (c *ResultCache) getRemote(ctx context.Context, key string) ([]byte, time.Duration, error) {
	pipe := c.rdb.Pipeline()
	get := pipe.Get(ctx, cacheKeyPrefix+key)
	pttl := pipe.PTTL(ctx, cacheKeyPrefix+key)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, 0, err
	}

	data, err := get.Bytes()
	if err != nil {
		return nil, 0, err
	}
	ttl := pttl.Val()
	if ttl <= 0 || ttl > c.ttl {
		ttl = c.ttl
	}
	return data, ttl, nil
}

func (c *ResultCache) store(key string, payload []byte, expiresAt time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; !exists {
		c.evictLocked()
	}
	c.entries[key] = cacheEntry{payload: payload, expiresAt: expiresAt}
}

// evictLocked makes room for one entry: expired entries go first, then the
// entries closest to expiry.
func (c *ResultCache) evictLocked() {
	if c.maxEntries <= 0 || len(c.entries) < c.maxEntries {
		return
	}

	now := c.now()
	for k, e := range c.entries {
		if !now.Before(e.expiresAt) {
			delete(c.entries, k)
		}
	}

	for len(c.entries) >= c.maxEntries {
		var oldestKey string
		var oldestAt time.Time
		for k, e := range c.entries {
			if oldestKey == "" || e.expiresAt.Before(oldestAt) {
				oldestKey, oldestAt = k, e.expiresAt
			}
		}
		delete(c.entries, oldestKey)
	}
}

// Len returns the number of entries in the memory tier.
func (c *ResultCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// NormalizeQuery lowercases q and collapses runs of whitespace so that
// equivalent searches share a cache entry.
func NormalizeQuery(q string) string {
	return strings.Join(strings.Fields(strings.ToLower(q)), " ")
}

// SearchCacheKey derives the cache key for a search of n results.
func SearchCacheKey(query string, n int) string {
	return fmt.Sprintf("search:%s:%d", hash.SHA256Hex(NormalizeQuery(query))[:32], n)
}

// DetailCacheKey derives the cache key for a video detail lookup.
func DetailCacheKey(videoID string) string {
	return fmt.Sprintf("video:%s", videoID)
}
