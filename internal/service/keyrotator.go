package service

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/limelightseychelles-git/KidsTube-filter/internal/metrics"
	"github.com/limelightseychelles-git/KidsTube-filter/pkg/hash"
)

// KeyStore yields the active API keys, oldest first.
type KeyStore interface {
	ActiveKeyValues(ctx context.Context) ([]string, error)
}

// KeyRotator hands out upstream credentials round-robin. The pool is loaded
// lazily from the store and reloaded whenever it is empty; when the store
// yields nothing the static fallback list is used. Load and cursor advance
// happen under one mutex so concurrent callers never see duplicate or
// skipped keys.
type KeyRotator struct {
	store    KeyStore
	fallback []string
	log      zerolog.Logger

	mu     sync.Mutex
	pool   []string
	cursor int
}

func NewKeyRotator(store KeyStore, fallback []string, log zerolog.Logger) *KeyRotator {
	return &KeyRotator{
		store:    store,
		fallback: append([]string(nil), fallback...),
		log:      log.With().Str("component", "key_rotator").Logger(),
	}
}

// NextKey returns the key at the cursor and advances it.
func (r *KeyRotator) NextKey(ctx context.Context) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.pool) == 0 {
		r.load(ctx)
	}
	if len(r.pool) == 0 {
		return "", ErrNoKeysAvailable
	}

	key := r.pool[r.cursor%len(r.pool)]
	r.cursor = (r.cursor + 1) % len(r.pool)
	return key, nil
}

// Invalidate drops the loaded pool so the next NextKey reloads it. Called
// after API keys are added, toggled or deleted.
func (r *KeyRotator) Invalidate() {
	r.mu.Lock()
	r.pool = nil
	r.cursor = 0
	r.mu.Unlock()
}

// load must be called with mu held.
func (r *KeyRotator) load(ctx context.Context) {
	var keys []string
	if r.store != nil {
		stored, err := r.store.ActiveKeyValues(ctx)
		if err != nil {
			r.log.Warn().Err(err).Msg("load api keys from store failed, using fallback")
		}
		keys = stored
	}
	source := "store"
	if len(keys) == 0 {
		keys = r.fallback
		source = "fallback"
	}

	r.pool = append([]string(nil), keys...)
	r.cursor = 0
	metrics.KeyPoolSize.Set(float64(len(r.pool)))

	fingerprints := make([]string, len(r.pool))
	for i, k := range r.pool {
		fingerprints[i] = hash.Fingerprint(k)
	}
	r.log.Info().Str("source", source).Strs("keys", fingerprints).Msg("api key pool loaded")
}
