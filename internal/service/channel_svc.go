package service

import (
	"context"
	"strings"

	"github.com/limelightseychelles-git/KidsTube-filter/internal/model"
)

// discoverResults is how many videos a channel discovery search inspects.
const discoverResults = 5

// ChannelStore persists the approved-channel allow-list.
type ChannelStore interface {
	List(ctx context.Context) ([]model.ApprovedChannel, error)
	Create(ctx context.Context, req model.AddChannelRequest) (*model.ApprovedChannel, error)
	Delete(ctx context.Context, id int64) error
}

type ChannelService struct {
	store    ChannelStore
	searcher Searcher
}

func NewChannelService(store ChannelStore, searcher Searcher) *ChannelService {
	return &ChannelService{store: store, searcher: searcher}
}

func (s *ChannelService) List(ctx context.Context) ([]model.ApprovedChannel, error) {
	channels, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	if channels == nil {
		channels = []model.ApprovedChannel{}
	}
	return channels, nil
}

// Add approves a channel. Returns repository.ErrDuplicate if already approved.
func (s *ChannelService) Add(ctx context.Context, req model.AddChannelRequest) (*model.ApprovedChannel, error) {
	req.ChannelID = strings.TrimSpace(req.ChannelID)
	req.ChannelName = strings.TrimSpace(req.ChannelName)
	return s.store.Create(ctx, req)
}

func (s *ChannelService) Remove(ctx context.Context, id int64) error {
	return s.store.Delete(ctx, id)
}

// Discover searches for videos matching query and returns the distinct
// channels that published them, in result order.
func (s *ChannelService) Discover(ctx context.Context, query string) ([]model.ChannelCandidate, error) {
	videos, err := s.searcher.Search(ctx, strings.TrimSpace(query), discoverResults)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(videos))
	candidates := make([]model.ChannelCandidate, 0, len(videos))
	for _, v := range videos {
		if _, ok := seen[v.ChannelID]; ok {
			continue
		}
		seen[v.ChannelID] = struct{}{}
		candidates = append(candidates, model.ChannelCandidate{
			ChannelID:   v.ChannelID,
			ChannelName: v.ChannelName,
			Thumbnail:   v.ThumbnailURL,
		})
	}
	return candidates, nil
}
