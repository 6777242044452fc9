package service

import (
	"context"

	"github.com/limelightseychelles-git/KidsTube-filter/internal/model"
)

const (
	DefaultHistoryLimit = 50
	MaxHistoryLimit     = 200
)

// HistoryStore persists and aggregates the watch history.
type HistoryStore interface {
	Page(ctx context.Context, limit, offset int) (*model.HistoryPage, error)
	Stats(ctx context.Context) (*model.WatchStats, error)
	Delete(ctx context.Context, id int64) error
	Clear(ctx context.Context) (int64, error)
}

type HistoryService struct {
	store HistoryStore
}

func NewHistoryService(store HistoryStore) *HistoryService {
	return &HistoryService{store: store}
}

// Page returns one page of history. Out-of-range arguments are clamped.
func (s *HistoryService) Page(ctx context.Context, limit, offset int) (*model.HistoryPage, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	if limit > MaxHistoryLimit {
		limit = MaxHistoryLimit
	}
	if offset < 0 {
		offset = 0
	}
	return s.store.Page(ctx, limit, offset)
}

func (s *HistoryService) Stats(ctx context.Context) (*model.WatchStats, error) {
	return s.store.Stats(ctx)
}

func (s *HistoryService) Delete(ctx context.Context, id int64) error {
	return s.store.Delete(ctx, id)
}

func (s *HistoryService) Clear(ctx context.Context) (int64, error) {
	return s.store.Clear(ctx)
}
