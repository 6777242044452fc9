package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/limelightseychelles-git/KidsTube-filter/internal/metrics"
	"github.com/limelightseychelles-git/KidsTube-filter/internal/model"
)

// ChannelLister reads the approved-channel allow-list.
type ChannelLister interface {
	List(ctx context.Context) ([]model.ApprovedChannel, error)
}

// KeywordSource reads the normalized deny-list.
type KeywordSource interface {
	Values(ctx context.Context) ([]string, error)
}

// HistoryRecorder appends to the watch history.
type HistoryRecorder interface {
	Record(ctx context.Context, e model.HistoryEntry) error
}

// DetailSource looks up a single video.
type DetailSource interface {
	Details(ctx context.Context, videoID string) (*model.VideoDetails, error)
}

// VideoService is the kid-facing catalog: search, latest and details.
type VideoService struct {
	channels ChannelLister
	keywords KeywordSource
	history  HistoryRecorder
	planner  *Planner
	details  DetailSource
	log      zerolog.Logger
}

func NewVideoService(channels ChannelLister, keywords KeywordSource, history HistoryRecorder, planner *Planner, details DetailSource, log zerolog.Logger) *VideoService {
	return &VideoService{
		channels: channels,
		keywords: keywords,
		history:  history,
		planner:  planner,
		details:  details,
		log:      log.With().Str("component", "video").Logger(),
	}
}

// Search returns the visible videos for query. A query containing a blocked
// keyword fails with *BlockedQueryError before any cache or upstream access.
func (s *VideoService) Search(ctx context.Context, query string, maxResults int) (*model.SearchResponse, error) {
	denied, err := s.keywords.Values(ctx)
	if err != nil {
		return nil, fmt.Errorf("load blocked keywords: %w", err)
	}

	if err := CheckQuery(query, denied); err != nil {
		metrics.BlockedQueriesTotal.Inc()
		if bq, ok := IsBlockedQuery(err); ok {
			s.log.Info().Str("keyword", bq.Keyword).Msg("query blocked")
		}
		return nil, err
	}

	channels, err := s.channels.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("load approved channels: %w", err)
	}

	candidates, err := s.planner.PlanAndSearch(ctx, query, maxResults, channels)
	if err != nil {
		return nil, err
	}

	items := s.visible(candidates, denied, maxResults, false)
	metrics.SearchesTotal.WithLabelValues("search").Inc()

	return &model.SearchResponse{Items: items, TotalResults: len(items), Query: query}, nil
}

// Latest returns the newest visible videos across the approved channels.
// With no approved channels the result is empty.
func (s *VideoService) Latest(ctx context.Context, maxResults int) (*model.SearchResponse, error) {
	channels, err := s.channels.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("load approved channels: %w", err)
	}
	if len(channels) == 0 {
		return &model.SearchResponse{Items: []model.VideoSummary{}}, nil
	}

	denied, err := s.keywords.Values(ctx)
	if err != nil {
		return nil, fmt.Errorf("load blocked keywords: %w", err)
	}

	candidates, err := s.planner.PlanAndSearch(ctx, "", maxResults, channels)
	if err != nil {
		return nil, err
	}

	items := s.visible(candidates, denied, maxResults, true)
	metrics.SearchesTotal.WithLabelValues("latest").Inc()

	return &model.SearchResponse{Items: items, TotalResults: len(items)}, nil
}

func (s *VideoService) visible(candidates []model.VideoSummary, denied []string, maxResults int, sortByRecency bool) []model.VideoSummary {
	allowed := FilterVideos(candidates, denied)
	metrics.FilteredVideosTotal.Add(float64(len(candidates) - len(allowed)))
	return Apply(allowed, nil, maxResults, sortByRecency)
}

// Details returns a video's details and records it in the watch history.
// A history write failure is logged and does not fail the lookup.
func (s *VideoService) Details(ctx context.Context, videoID string) (*model.VideoDetails, error) {
	d, err := s.details.Details(ctx, videoID)
	if err != nil {
		return nil, err
	}

	entry := model.HistoryEntry{
		VideoID:         d.VideoID,
		Title:           d.Title,
		ChannelID:       d.ChannelID,
		DurationSeconds: d.DurationSeconds,
	}
	if err := s.history.Record(ctx, entry); err != nil {
		s.log.Warn().Err(err).Str("video_id", videoID).Msg("record watch history failed")
	}
	return d, nil
}
