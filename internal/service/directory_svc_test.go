package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/limelightseychelles-git/KidsTube-filter/internal/model"
)

func TestDirectory_SearchUsesCache(t *testing.T) {
	up := newFakeUpstream()
	up.results["yoga"] = []model.VideoSummary{video("a", "UC1", "Yoga")}
	dir := NewDirectoryService(up, staticKeys{key: "k"}, newMapCache(), zerolog.Nop())

	for i := 0; i < 3; i++ {
		got, err := dir.Search(context.Background(), "yoga", 4)
		if err != nil {
			t.Fatal(err)
		}
		if ids(got) != "a" {
			t.Fatalf("got %s, want a", ids(got))
		}
	}
	if n := up.calls.Load(); n != 1 {
		t.Errorf("upstream called %d times, want 1", n)
	}
}

func TestDirectory_SearchNormalizesCacheKey(t *testing.T) {
	up := newFakeUpstream()
	dir := NewDirectoryService(up, staticKeys{key: "k"}, newMapCache(), zerolog.Nop())

	_, _ = dir.Search(context.Background(), "Yoga  Kids", 4)
	_, _ = dir.Search(context.Background(), "yoga kids", 4)
	if n := up.calls.Load(); n != 1 {
		t.Errorf("upstream called %d times, want 1", n)
	}
}

func TestDirectory_NoKeys(t *testing.T) {
	up := newFakeUpstream()
	dir := NewDirectoryService(up, staticKeys{err: ErrNoKeysAvailable}, newMapCache(), zerolog.Nop())

	_, err := dir.Search(context.Background(), "yoga", 4)
	if !errors.Is(err, ErrNoKeysAvailable) {
		t.Fatalf("err = %v, want ErrNoKeysAvailable", err)
	}
	if up.calls.Load() != 0 {
		t.Error("upstream must not be called without a key")
	}
}

func TestDirectory_UpstreamFailureNotCachedOrRetried(t *testing.T) {
	up := newFakeUpstream()
	up.fail["yoga"] = errors.New("quotaExceeded")
	cache := newMapCache()
	dir := NewDirectoryService(up, staticKeys{key: "k"}, cache, zerolog.Nop())

	_, err := dir.Search(context.Background(), "yoga", 4)
	var ue *UpstreamError
	if !errors.As(err, &ue) || ue.Op != "search" {
		t.Fatalf("err = %v, want search *UpstreamError", err)
	}
	if up.calls.Load() != 1 {
		t.Errorf("upstream called %d times, want exactly 1", up.calls.Load())
	}
	if len(cache.data) != 0 {
		t.Error("failures must not be cached")
	}
}

func TestDirectory_DetailsNotFound(t *testing.T) {
	dir := NewDirectoryService(newFakeUpstream(), staticKeys{key: "k"}, newMapCache(), zerolog.Nop())

	_, err := dir.Details(context.Background(), "missing0000")
	if !errors.Is(err, ErrVideoNotFound) {
		t.Errorf("err = %v, want ErrVideoNotFound", err)
	}
}

func TestDirectory_DetailsCached(t *testing.T) {
	up := newFakeUpstream()
	up.details["abc"] = &model.VideoDetails{
		VideoSummary:    model.VideoSummary{VideoID: "abc", Title: "T", PublishedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		DurationSeconds: 90,
	}
	dir := NewDirectoryService(up, staticKeys{key: "k"}, newMapCache(), zerolog.Nop())

	first, err := dir.Details(context.Background(), "abc")
	if err != nil {
		t.Fatal(err)
	}
	second, err := dir.Details(context.Background(), "abc")
	if err != nil {
		t.Fatal(err)
	}
	if first.DurationSeconds != 90 || second.DurationSeconds != 90 {
		t.Errorf("duration = %d/%d, want 90", first.DurationSeconds, second.DurationSeconds)
	}
	if !second.PublishedAt.Equal(first.PublishedAt) {
		t.Errorf("cached publishedAt = %v, want %v", second.PublishedAt, first.PublishedAt)
	}
	if up.calls.Load() != 1 {
		t.Errorf("upstream called %d times, want 1", up.calls.Load())
	}
}

// blockingUpstream holds every search until release is closed.
type blockingUpstream struct {
	*fakeUpstream
	release chan struct{}
}

func (b *blockingUpstream) Search(ctx context.Context, apiKey, query string, limit int) ([]model.VideoSummary, error) {
	<-b.release
	return b.fakeUpstream.Search(ctx, apiKey, query, limit)
}

func TestDirectory_CoalescesConcurrentMisses(t *testing.T) {
	up := &blockingUpstream{fakeUpstream: newFakeUpstream(), release: make(chan struct{})}
	up.results["yoga"] = []model.VideoSummary{video("a", "UC1", "Yoga")}
	dir := NewDirectoryService(up, staticKeys{key: "k"}, newMapCache(), zerolog.Nop())

	const n = 8
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := dir.Search(context.Background(), "yoga", 4); err != nil {
				t.Error(err)
			}
		}()
	}
	time.Sleep(50 * time.Millisecond)
	close(up.release)
	wg.Wait()

	if c := up.calls.Load(); c != 1 {
		t.Errorf("upstream called %d times, want 1", c)
	}
}

// ctxUpstream holds searches until release is closed or the call's
// context ends.
type ctxUpstream struct {
	*fakeUpstream
	started chan struct{}
	release chan struct{}
}

func (u *ctxUpstream) Search(ctx context.Context, apiKey, query string, limit int) ([]model.VideoSummary, error) {
	close(u.started)
	select {
	case <-u.release:
		return u.fakeUpstream.Search(ctx, apiKey, query, limit)
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func TestDirectory_CancelledCallerDoesNotFailOthers(t *testing.T) {
	up := &ctxUpstream{fakeUpstream: newFakeUpstream(), started: make(chan struct{}), release: make(chan struct{})}
	up.results["yoga"] = []model.VideoSummary{video("a", "UC1", "Yoga")}
	dir := NewDirectoryService(up, staticKeys{key: "k"}, newMapCache(), zerolog.Nop())

	ctxA, cancelA := context.WithCancel(context.Background())
	errA := make(chan error, 1)
	go func() {
		_, err := dir.Search(ctxA, "yoga", 4)
		errA <- err
	}()
	<-up.started

	type result struct {
		videos []model.VideoSummary
		err    error
	}
	resB := make(chan result, 1)
	go func() {
		v, err := dir.Search(context.Background(), "yoga", 4)
		resB <- result{v, err}
	}()
	time.Sleep(50 * time.Millisecond)

	cancelA()
	if err := <-errA; !errors.Is(err, context.Canceled) {
		t.Errorf("cancelled caller err = %v, want context.Canceled", err)
	}

	close(up.release)
	b := <-resB
	if b.err != nil {
		t.Fatalf("other caller err = %v, want success", b.err)
	}
	if ids(b.videos) != "a" {
		t.Errorf("other caller got %q, want a", ids(b.videos))
	}
	if c := up.calls.Load(); c != 1 {
		t.Errorf("upstream called %d times, want 1", c)
	}
}

func TestDirectory_RotatesKeysPerCall(t *testing.T) {
	up := newFakeUpstream()
	rot := NewKeyRotator(&fakeKeyStore{keys: []string{"A", "B"}}, nil, zerolog.Nop())
	dir := NewDirectoryService(up, rot, newMapCache(), zerolog.Nop())

	for _, q := range []string{"one", "two", "three"} {
		if _, err := dir.Search(context.Background(), q, 1); err != nil {
			t.Fatal(err)
		}
	}
	up.mu.Lock()
	defer up.mu.Unlock()
	if got := up.keys; len(got) != 3 || got[0] != "A" || got[1] != "B" || got[2] != "A" {
		t.Errorf("keys = %v, want [A B A]", got)
	}
}
