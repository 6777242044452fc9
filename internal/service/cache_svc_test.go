package service

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestCache(ttl time.Duration, maxEntries int) (*ResultCache, *fakeClock) {
	clock := &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	c := NewResultCache(nil, ttl, maxEntries, zerolog.Nop())
	c.now = clock.Now
	return c, clock
}

func TestResultCache_RoundTrip(t *testing.T) {
	c, clock := newTestCache(time.Hour, 10)
	ctx := context.Background()

	c.Put(ctx, "k", []byte("payload"))

	got, ok := c.Get(ctx, "k")
	if !ok || string(got) != "payload" {
		t.Fatalf("Get = %q, %v; want payload, true", got, ok)
	}

	clock.Advance(59 * time.Minute)
	if _, ok := c.Get(ctx, "k"); !ok {
		t.Error("entry should still be valid before ttl")
	}

	clock.Advance(time.Minute)
	if _, ok := c.Get(ctx, "k"); ok {
		t.Error("entry should be gone once ttl has elapsed")
	}
	if c.Len() != 0 {
		t.Errorf("expired entry not removed, len = %d", c.Len())
	}
}

func TestResultCache_Miss(t *testing.T) {
	c, _ := newTestCache(time.Hour, 10)
	if _, ok := c.Get(context.Background(), "absent"); ok {
		t.Error("expected miss")
	}
}

func TestResultCache_EvictsOldest(t *testing.T) {
	c, clock := newTestCache(time.Hour, 2)
	ctx := context.Background()

	c.Put(ctx, "a", []byte("1"))
	clock.Advance(time.Second)
	c.Put(ctx, "b", []byte("2"))
	clock.Advance(time.Second)
	c.Put(ctx, "c", []byte("3"))

	if c.Len() != 2 {
		t.Fatalf("len = %d, want 2", c.Len())
	}
	if _, ok := c.Get(ctx, "a"); ok {
		t.Error("oldest entry should have been evicted")
	}
	if _, ok := c.Get(ctx, "c"); !ok {
		t.Error("newest entry should be present")
	}
}

func TestResultCache_OverwriteDoesNotEvict(t *testing.T) {
	c, _ := newTestCache(time.Hour, 2)
	ctx := context.Background()

	c.Put(ctx, "a", []byte("1"))
	c.Put(ctx, "b", []byte("2"))
	c.Put(ctx, "b", []byte("3"))

	if _, ok := c.Get(ctx, "a"); !ok {
		t.Error("overwriting an existing key must not evict others")
	}
	if got, _ := c.Get(ctx, "b"); string(got) != "3" {
		t.Errorf("b = %q, want 3", got)
	}
}

func TestResultCache_RedisFailureIsMiss(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer rdb.Close()

	c := NewResultCache(rdb, time.Hour, 10, zerolog.Nop())
	ctx := context.Background()

	if _, ok := c.Get(ctx, "k"); ok {
		t.Fatal("unreachable redis must read as a miss")
	}

	// Write failure is swallowed and the memory tier still serves the value.
	c.Put(ctx, "k", []byte("v"))
	if got, ok := c.Get(ctx, "k"); !ok || string(got) != "v" {
		t.Errorf("Get after failed remote write = %q, %v", got, ok)
	}
}

func TestSearchCacheKey(t *testing.T) {
	a := SearchCacheKey("  Yoga   for KIDS ", 12)
	b := SearchCacheKey("yoga for kids", 12)
	if a != b {
		t.Errorf("equivalent queries produced different keys: %s vs %s", a, b)
	}
	if a == SearchCacheKey("yoga for kids", 6) {
		t.Error("result count must be part of the key")
	}
	if DetailCacheKey("abc") == SearchCacheKey("abc", 0) {
		t.Error("detail and search keys must not collide")
	}
}
