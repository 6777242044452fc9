package service

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/limelightseychelles-git/KidsTube-filter/internal/metrics"
	"github.com/limelightseychelles-git/KidsTube-filter/internal/model"
)

// Searcher runs a single text search.
type Searcher interface {
	Search(ctx context.Context, query string, limit int) ([]model.VideoSummary, error)
}

// Planner splits a query across the approved channels and merges the
// per-channel results.
type Planner struct {
	searcher Searcher
	log      zerolog.Logger
}

func NewPlanner(searcher Searcher, log zerolog.Logger) *Planner {
	return &Planner{
		searcher: searcher,
		log:      log.With().Str("component", "fanout").Logger(),
	}
}

// PerChannelLimit is the fair share of maxResults for each of n channels.
func PerChannelLimit(maxResults, n int) int {
	if n <= 0 {
		return maxResults
	}
	return (maxResults + n - 1) / n
}

// PlanAndSearch returns unfiltered candidates for query.
//
// With no channels the query goes to the searcher unchanged, and an empty
// query yields nothing without any call. With channels, one sub-query per
// channel runs concurrently, each keeping only results from that exact
// channel. A failing channel contributes nothing; the merge follows channel
// order. ErrNoKeysAvailable is not channel-specific and is returned.
func (p *Planner) PlanAndSearch(ctx context.Context, query string, maxResults int, channels []model.ApprovedChannel) ([]model.VideoSummary, error) {
	query = strings.TrimSpace(query)

	if len(channels) == 0 {
		if query == "" {
			return []model.VideoSummary{}, nil
		}
		return p.searcher.Search(ctx, query, maxResults)
	}

	limit := PerChannelLimit(maxResults, len(channels))
	perChannel := make([][]model.VideoSummary, len(channels))
	errs := make([]error, len(channels))

	var g errgroup.Group
	for i, ch := range channels {
		g.Go(func() error {
			videos, err := p.searcher.Search(ctx, channelQuery(query, ch.ChannelName), limit)
			if err != nil {
				errs[i] = err
				if errors.Is(err, ErrNoKeysAvailable) {
					return nil
				}
				metrics.FanoutChannelFailures.Inc()
				p.log.Warn().Err(err).Str("channel_id", ch.ChannelID).Msg("channel sub-query failed, skipping")
				return nil
			}
			perChannel[i] = onlyChannel(videos, ch.ChannelID)
			return nil
		})
	}
	_ = g.Wait()

	for _, err := range errs {
		if errors.Is(err, ErrNoKeysAvailable) {
			return nil, ErrNoKeysAvailable
		}
	}

	var merged []model.VideoSummary
	for _, videos := range perChannel {
		merged = append(merged, videos...)
	}
	if merged == nil {
		merged = []model.VideoSummary{}
	}
	return merged, nil
}

func channelQuery(query, channelName string) string {
	if query == "" {
		return channelName
	}
	return query + " " + channelName
}

// onlyChannel drops cross-channel noise from an approximate text search.
func onlyChannel(videos []model.VideoSummary, channelID string) []model.VideoSummary {
	out := make([]model.VideoSummary, 0, len(videos))
	for _, v := range videos {
		if v.ChannelID == channelID {
			out = append(out, v)
		}
	}
	return out
}
