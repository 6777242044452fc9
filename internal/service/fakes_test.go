package service

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/limelightseychelles-git/KidsTube-filter/internal/model"
	"github.com/limelightseychelles-git/KidsTube-filter/internal/youtube"
)

// fakeUpstream records calls and serves canned results keyed by query.
type fakeUpstream struct {
	mu       sync.Mutex
	results  map[string][]model.VideoSummary
	details  map[string]*model.VideoDetails
	fail     map[string]error
	searches []searchCall
	calls    atomic.Int32
	keys     []string
}

type searchCall struct {
	Query string
	Limit int
}

func newFakeUpstream() *fakeUpstream {
	return &fakeUpstream{
		results: map[string][]model.VideoSummary{},
		details: map[string]*model.VideoDetails{},
		fail:    map[string]error{},
	}
}

func (f *fakeUpstream) Search(ctx context.Context, apiKey, query string, limit int) ([]model.VideoSummary, error) {
	f.calls.Add(1)
	f.mu.Lock()
	defer f.mu.Unlock()
	f.searches = append(f.searches, searchCall{Query: query, Limit: limit})
	f.keys = append(f.keys, apiKey)
	if err := f.fail[query]; err != nil {
		return nil, err
	}
	return f.results[query], nil
}

func (f *fakeUpstream) Details(ctx context.Context, apiKey, videoID string) (*model.VideoDetails, error) {
	f.calls.Add(1)
	f.mu.Lock()
	defer f.mu.Unlock()
	f.keys = append(f.keys, apiKey)
	if err := f.fail[videoID]; err != nil {
		return nil, err
	}
	d, ok := f.details[videoID]
	if !ok {
		return nil, youtube.ErrNotFound
	}
	return d, nil
}

func (f *fakeUpstream) searchCalls() []searchCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]searchCall(nil), f.searches...)
}

// staticKeys always returns the same key.
type staticKeys struct {
	key string
	err error
}

func (k staticKeys) NextKey(ctx context.Context) (string, error) { return k.key, k.err }

// mapCache is an in-memory Cache.
type mapCache struct {
	mu   sync.Mutex
	data map[string][]byte
	gets int
}

func newMapCache() *mapCache { return &mapCache{data: map[string][]byte{}} }

func (c *mapCache) Get(ctx context.Context, key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets++
	v, ok := c.data[key]
	return v, ok
}

func (c *mapCache) Put(ctx context.Context, key string, payload []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = payload
}

type fakeChannels struct {
	channels []model.ApprovedChannel
	err      error
}

func (f fakeChannels) List(ctx context.Context) ([]model.ApprovedChannel, error) {
	return f.channels, f.err
}

type fakeKeywords []string

func (f fakeKeywords) Values(ctx context.Context) ([]string, error) { return f, nil }

type fakeHistory struct {
	mu      sync.Mutex
	entries []model.HistoryEntry
	err     error
}

func (f *fakeHistory) Record(ctx context.Context, e model.HistoryEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.entries = append(f.entries, e)
	return nil
}

func video(id, channelID, title string) model.VideoSummary {
	return model.VideoSummary{VideoID: id, ChannelID: channelID, Title: title}
}

func ids(videos []model.VideoSummary) string {
	parts := make([]string, len(videos))
	for i, v := range videos {
		parts[i] = v.VideoID
	}
	return strings.Join(parts, ",")
}
