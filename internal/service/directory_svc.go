package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/limelightseychelles-git/KidsTube-filter/internal/metrics"
	"github.com/limelightseychelles-git/KidsTube-filter/internal/model"
	"github.com/limelightseychelles-git/KidsTube-filter/internal/youtube"
	"github.com/limelightseychelles-git/KidsTube-filter/pkg/hash"
)

// sharedCallTimeout bounds a coalesced upstream call once it no longer
// follows the cancellation of the caller that started it.
const sharedCallTimeout = 30 * time.Second

// Upstream is the raw video directory. Every call costs quota.
type Upstream interface {
	Search(ctx context.Context, apiKey, query string, limit int) ([]model.VideoSummary, error)
	Details(ctx context.Context, apiKey, videoID string) (*model.VideoDetails, error)
}

// KeySource hands out upstream credentials.
type KeySource interface {
	NextKey(ctx context.Context) (string, error)
}

// Cache is the best-effort result cache capability.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Put(ctx context.Context, key string, payload []byte)
}

// DirectoryService fronts the upstream with the result cache and key
// rotation. Identical uncached requests in flight at the same time share a
// single upstream call. Failures are not retried.
type DirectoryService struct {
	upstream Upstream
	keys     KeySource
	cache    Cache
	group    singleflight.Group
	log      zerolog.Logger
}

func NewDirectoryService(upstream Upstream, keys KeySource, cache Cache, log zerolog.Logger) *DirectoryService {
	return &DirectoryService{
		upstream: upstream,
		keys:     keys,
		cache:    cache,
		log:      log.With().Str("component", "directory").Logger(),
	}
}

// Search returns up to limit videos for query.
func (s *DirectoryService) Search(ctx context.Context, query string, limit int) ([]model.VideoSummary, error) {
	key := SearchCacheKey(query, limit)

	var cached []model.VideoSummary
	if s.loadCached(ctx, key, &cached) {
		return cached, nil
	}

	v, err := s.shared(ctx, key, func(ctx context.Context) (any, error) {
		apiKey, err := s.keys.NextKey(ctx)
		if err != nil {
			return nil, err
		}

		videos, err := s.upstream.Search(ctx, apiKey, query, limit)
		if err != nil {
			s.upstreamFailed("search", apiKey, err)
			return nil, &UpstreamError{Op: "search", Err: err}
		}
		metrics.UpstreamCallsTotal.WithLabelValues("search", "ok").Inc()

		s.storeCached(ctx, key, videos)
		return videos, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]model.VideoSummary), nil
}

// Details returns the detail record for videoID, or ErrVideoNotFound.
func (s *DirectoryService) Details(ctx context.Context, videoID string) (*model.VideoDetails, error) {
	key := DetailCacheKey(videoID)

	var cached model.VideoDetails
	if s.loadCached(ctx, key, &cached) {
		return &cached, nil
	}

	v, err := s.shared(ctx, key, func(ctx context.Context) (any, error) {
		apiKey, err := s.keys.NextKey(ctx)
		if err != nil {
			return nil, err
		}

		d, err := s.upstream.Details(ctx, apiKey, videoID)
		if errors.Is(err, youtube.ErrNotFound) {
			metrics.UpstreamCallsTotal.WithLabelValues("details", "not_found").Inc()
			return nil, ErrVideoNotFound
		}
		if err != nil {
			s.upstreamFailed("details", apiKey, err)
			return nil, &UpstreamError{Op: "details", Err: err}
		}
		metrics.UpstreamCallsTotal.WithLabelValues("details", "ok").Inc()

		s.storeCached(ctx, key, d)
		return d, nil
	})
	if err != nil {
		return nil, err
	}
	d := *v.(*model.VideoDetails)
	return &d, nil
}

// shared runs fn once for all concurrent callers of key. fn runs detached
// from any one caller's cancellation, bounded by sharedCallTimeout; a caller
// whose ctx ends stops waiting and the call completes for the others.
func (s *DirectoryService) shared(ctx context.Context, key string, fn func(context.Context) (any, error)) (any, error) {
	ch := s.group.DoChan(key, func() (any, error) {
		callCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), sharedCallTimeout)
		defer cancel()
		return fn(callCtx)
	})

	select {
	case res := <-ch:
		return res.Val, res.Err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (s *DirectoryService) upstreamFailed(op, apiKey string, err error) {
	metrics.UpstreamCallsTotal.WithLabelValues(op, "error").Inc()
	s.log.Error().Err(err).Str("op", op).Str("key_fp", hash.Fingerprint(apiKey)).Msg("upstream call failed")
}

func (s *DirectoryService) loadCached(ctx context.Context, key string, dst any) bool {
	data, ok := s.cache.Get(ctx, key)
	if !ok {
		return false
	}
	if err := json.Unmarshal(data, dst); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("discarding undecodable cache entry")
		return false
	}
	return true
}

func (s *DirectoryService) storeCached(ctx context.Context, key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("cache encode failed")
		return
	}
	s.cache.Put(ctx, key, data)
}
