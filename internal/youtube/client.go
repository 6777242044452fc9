// Package youtube is the boundary to the upstream video directory. It turns
// loosely shaped API responses into model records and rejects responses that
// are missing required fields.
package youtube

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	yt "google.golang.org/api/youtube/v3"

	"github.com/limelightseychelles-git/KidsTube-filter/internal/model"
)

// SafeSearchStrict is the only safe-search level the gateway ever requests.
const SafeSearchStrict = "strict"

var (
	// ErrMalformedResponse is returned when the upstream omits a required field.
	ErrMalformedResponse = errors.New("youtube: malformed response")
	// ErrNotFound is returned by Details when no video matches the id.
	ErrNotFound = errors.New("youtube: video not found")
)

// Client issues single, uncached calls against the YouTube Data API. The
// credential is supplied per call so the caller controls key rotation.
type Client struct {
	svc *yt.Service
}

// NewClient builds a client. baseURL overrides the API endpoint and is
// mostly useful for tests; an empty value uses the public endpoint.
func NewClient(ctx context.Context, baseURL string, timeout time.Duration) (*Client, error) {
	opts := []option.ClientOption{
		option.WithHTTPClient(&http.Client{Timeout: timeout}),
	}
	if baseURL != "" {
		opts = append(opts, option.WithEndpoint(baseURL))
	}
	svc, err := yt.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create youtube service: %w", err)
	}
	return &Client{svc: svc}, nil
}

// Search runs a strict safe-search text query for videos.
func (c *Client) Search(ctx context.Context, apiKey, query string, limit int) ([]model.VideoSummary, error) {
	resp, err := c.svc.Search.List([]string{"snippet"}).
		Q(query).
		Type("video").
		SafeSearch(SafeSearchStrict).
		MaxResults(int64(limit)).
		Context(ctx).
		Do(googleapi.QueryParameter("key", apiKey))
	if err != nil {
		return nil, fmt.Errorf("youtube search: %w", err)
	}

	videos := make([]model.VideoSummary, 0, len(resp.Items))
	for i, item := range resp.Items {
		if item.Id == nil || item.Id.VideoId == "" {
			return nil, fmt.Errorf("%w: search item %d has no video id", ErrMalformedResponse, i)
		}
		sn := item.Snippet
		if sn == nil {
			return nil, fmt.Errorf("%w: video %s has no snippet", ErrMalformedResponse, item.Id.VideoId)
		}
		v, err := buildSummary(item.Id.VideoId, sn.ChannelId, sn.Title, sn.Description, sn.ChannelTitle, sn.PublishedAt, sn.Thumbnails)
		if err != nil {
			return nil, err
		}
		videos = append(videos, v)
	}
	return videos, nil
}

// Details looks up a single video including duration and statistics. The
// videos endpoint has no safe-search parameter; age-restricted content is
// reported through AgeRestricted instead.
func (c *Client) Details(ctx context.Context, apiKey, videoID string) (*model.VideoDetails, error) {
	resp, err := c.svc.Videos.List([]string{"snippet", "contentDetails", "statistics"}).
		Id(videoID).
		Context(ctx).
		Do(googleapi.QueryParameter("key", apiKey))
	if err != nil {
		return nil, fmt.Errorf("youtube videos: %w", err)
	}
	if len(resp.Items) == 0 {
		return nil, ErrNotFound
	}

	item := resp.Items[0]
	if item.Id == "" {
		return nil, fmt.Errorf("%w: video has no id", ErrMalformedResponse)
	}
	sn := item.Snippet
	if sn == nil {
		return nil, fmt.Errorf("%w: video %s has no snippet", ErrMalformedResponse, item.Id)
	}
	summary, err := buildSummary(item.Id, sn.ChannelId, sn.Title, sn.Description, sn.ChannelTitle, sn.PublishedAt, sn.Thumbnails)
	if err != nil {
		return nil, err
	}

	d := &model.VideoDetails{VideoSummary: summary}
	if cd := item.ContentDetails; cd != nil {
		d.Duration = cd.Duration
		// An unparseable duration is treated as zero rather than failing the lookup.
		d.DurationSeconds, _ = ParseDuration(cd.Duration)
		if cd.ContentRating != nil && cd.ContentRating.YtRating == "ytAgeRestricted" {
			d.AgeRestricted = true
		}
	}
	if st := item.Statistics; st != nil {
		d.ViewCount = st.ViewCount
		d.LikeCount = st.LikeCount
	}
	return d, nil
}

func buildSummary(videoID, channelID, title, description, channelTitle, publishedAt string, thumbs *yt.ThumbnailDetails) (model.VideoSummary, error) {
	if channelID == "" {
		return model.VideoSummary{}, fmt.Errorf("%w: video %s has no channel id", ErrMalformedResponse, videoID)
	}
	if title == "" {
		return model.VideoSummary{}, fmt.Errorf("%w: video %s has no title", ErrMalformedResponse, videoID)
	}
	published, err := time.Parse(time.RFC3339, publishedAt)
	if err != nil {
		return model.VideoSummary{}, fmt.Errorf("%w: video %s has invalid publishedAt %q", ErrMalformedResponse, videoID, publishedAt)
	}
	return model.VideoSummary{
		VideoID:      videoID,
		Title:        title,
		Description:  description,
		ChannelID:    channelID,
		ChannelName:  channelTitle,
		ThumbnailURL: bestThumbnail(thumbs),
		PublishedAt:  published,
	}, nil
}

func bestThumbnail(t *yt.ThumbnailDetails) string {
	if t == nil {
		return ""
	}
	for _, th := range []*yt.Thumbnail{t.High, t.Medium, t.Default} {
		if th != nil && th.Url != "" {
			return th.Url
		}
	}
	return ""
}
