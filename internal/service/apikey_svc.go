package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/limelightseychelles-git/KidsTube-filter/internal/model"
	"github.com/limelightseychelles-git/KidsTube-filter/pkg/hash"
)

// apiKeyPrefix is the fixed prefix of Google API keys.
const apiKeyPrefix = "AIzaSy"

// APIKeyStore persists upstream credentials.
type APIKeyStore interface {
	List(ctx context.Context) ([]model.APIKey, error)
	Create(ctx context.Context, value string) (*model.APIKey, error)
	Toggle(ctx context.Context, id int64) (*model.APIKey, error)
	Delete(ctx context.Context, id int64) error
}

// APIKeyService manages credentials and keeps the rotator in sync with the
// store: every successful mutation invalidates the rotator's pool.
type APIKeyService struct {
	store   APIKeyStore
	rotator *KeyRotator
	log     zerolog.Logger
}

func NewAPIKeyService(store APIKeyStore, rotator *KeyRotator, log zerolog.Logger) *APIKeyService {
	return &APIKeyService{
		store:   store,
		rotator: rotator,
		log:     log.With().Str("component", "api_keys").Logger(),
	}
}

// List returns all keys in masked form.
func (s *APIKeyService) List(ctx context.Context) ([]model.APIKeyView, error) {
	keys, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	views := make([]model.APIKeyView, 0, len(keys))
	for _, k := range keys {
		views = append(views, k.View())
	}
	return views, nil
}

// Add stores a new active key. Returns ErrInvalidAPIKey for a value that is
// not shaped like a Google API key and repository.ErrDuplicate if it exists.
func (s *APIKeyService) Add(ctx context.Context, value string) (*model.APIKeyView, error) {
	value = strings.TrimSpace(value)
	if !strings.HasPrefix(value, apiKeyPrefix) {
		return nil, ErrInvalidAPIKey
	}

	k, err := s.store.Create(ctx, value)
	if err != nil {
		return nil, err
	}
	s.rotator.Invalidate()
	s.log.Info().Str("key_fp", hash.Fingerprint(value)).Msg("api key added")

	v := k.View()
	return &v, nil
}

// Toggle flips a key between active and inactive.
func (s *APIKeyService) Toggle(ctx context.Context, id int64) (*model.APIKeyView, error) {
	k, err := s.store.Toggle(ctx, id)
	if err != nil {
		return nil, err
	}
	s.rotator.Invalidate()
	s.log.Info().Int64("id", id).Bool("active", k.IsActive).Msg("api key toggled")

	v := k.View()
	return &v, nil
}

func (s *APIKeyService) Delete(ctx context.Context, id int64) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.rotator.Invalidate()
	s.log.Info().Int64("id", id).Msg("api key deleted")
	return nil
}
