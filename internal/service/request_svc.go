package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/limelightseychelles-git/KidsTube-filter/internal/model"
	"github.com/limelightseychelles-git/KidsTube-filter/internal/repository"
)

// enrichConcurrency bounds parallel detail lookups when listing requests.
const enrichConcurrency = 4

var videoIDRe = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)

// RequestStore persists video requests.
type RequestStore interface {
	FindOpen(ctx context.Context, videoID string) (*model.VideoRequest, error)
	Create(ctx context.Context, videoURL, videoID string) (*model.VideoRequest, error)
	FindByID(ctx context.Context, id int64) (*model.VideoRequest, error)
	Review(ctx context.Context, id int64, status model.RequestStatus) (*model.VideoRequest, error)
	List(ctx context.Context, status model.RequestStatus) ([]model.VideoRequest, error)
	Delete(ctx context.Context, id int64) error
}

// DuplicateRequestError rejects a submission for a video that already has a
// pending or approved request. It matches repository.ErrDuplicate.
type DuplicateRequestError struct {
	Status model.RequestStatus
}

func (e *DuplicateRequestError) Error() string {
	if e.Status == model.StatusApproved {
		return "This video has already been approved"
	}
	return "This video has already been requested and is pending approval"
}

func (e *DuplicateRequestError) Unwrap() error {
	return repository.ErrDuplicate
}

// RequestService runs the video request workflow. A request starts pending
// and a parent moves it once to approved or rejected. A video may be
// requested again only after its earlier requests were all rejected.
type RequestService struct {
	store   RequestStore
	details DetailSource
	log     zerolog.Logger
}

func NewRequestService(store RequestStore, details DetailSource, log zerolog.Logger) *RequestService {
	return &RequestService{
		store:   store,
		details: details,
		log:     log.With().Str("component", "requests").Logger(),
	}
}

// Submit records a new pending request for the video referenced by rawURL.
func (s *RequestService) Submit(ctx context.Context, rawURL string) (*model.VideoRequest, error) {
	rawURL = strings.TrimSpace(rawURL)
	videoID, ok := ExtractVideoID(rawURL)
	if !ok {
		return nil, ErrInvalidVideoURL
	}

	open, err := s.store.FindOpen(ctx, videoID)
	switch {
	case err == nil:
		return nil, &DuplicateRequestError{Status: open.Status}
	case !errors.Is(err, pgx.ErrNoRows):
		return nil, fmt.Errorf("check existing requests: %w", err)
	}

	req, err := s.store.Create(ctx, rawURL, videoID)
	if errors.Is(err, repository.ErrDuplicate) {
		// Lost a race with a concurrent submission for the same video.
		return nil, &DuplicateRequestError{Status: model.StatusPending}
	}
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	return req, nil
}

func (s *RequestService) Approve(ctx context.Context, id int64) (*model.VideoRequest, error) {
	return s.review(ctx, id, model.StatusApproved)
}

func (s *RequestService) Reject(ctx context.Context, id int64) (*model.VideoRequest, error) {
	return s.review(ctx, id, model.StatusRejected)
}

// review returns pgx.ErrNoRows for an unknown id and ErrInvalidTransition
// for a request that was already reviewed.
func (s *RequestService) review(ctx context.Context, id int64, status model.RequestStatus) (*model.VideoRequest, error) {
	req, err := s.store.Review(ctx, id, status)
	if err == nil {
		return req, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	if _, ferr := s.store.FindByID(ctx, id); ferr != nil {
		return nil, ferr
	}
	return nil, ErrInvalidTransition
}

func (s *RequestService) Delete(ctx context.Context, id int64) error {
	return s.store.Delete(ctx, id)
}

// List returns requests newest first, optionally filtered by status.
func (s *RequestService) List(ctx context.Context, status model.RequestStatus) ([]model.VideoRequest, error) {
	reqs, err := s.store.List(ctx, status)
	if err != nil {
		return nil, err
	}
	if reqs == nil {
		reqs = []model.VideoRequest{}
	}
	return reqs, nil
}

// ListWithDetails is List with each request enriched with cached video
// details. A failed lookup leaves VideoDetails nil.
func (s *RequestService) ListWithDetails(ctx context.Context, status model.RequestStatus) ([]model.VideoRequestWithDetails, error) {
	reqs, err := s.List(ctx, status)
	if err != nil {
		return nil, err
	}

	out := make([]model.VideoRequestWithDetails, len(reqs))
	var g errgroup.Group
	g.SetLimit(enrichConcurrency)
	for i, r := range reqs {
		out[i].VideoRequest = r
		g.Go(func() error {
			d, err := s.details.Details(ctx, r.VideoID)
			if err != nil {
				s.log.Debug().Err(err).Str("video_id", r.VideoID).Msg("request details unavailable")
				return nil
			}
			out[i].VideoDetails = d
			return nil
		})
	}
	_ = g.Wait()
	return out, nil
}

// ExtractVideoID returns the 11-character video id from a watch, short
// link, embed, shorts or live URL, or from a bare id.
func ExtractVideoID(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if videoIDRe.MatchString(raw) {
		return raw, true
	}

	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", false
	}

	host := strings.ToLower(u.Hostname())
	for _, prefix := range []string{"www.", "m.", "music."} {
		host = strings.TrimPrefix(host, prefix)
	}
	segments := strings.Split(strings.Trim(u.Path, "/"), "/")

	var id string
	switch host {
	case "youtu.be":
		id = segments[0]
	case "youtube.com", "youtube-nocookie.com":
		switch {
		case segments[0] == "watch":
			id = u.Query().Get("v")
		case len(segments) >= 2 && (segments[0] == "embed" || segments[0] == "v" || segments[0] == "shorts" || segments[0] == "live"):
			id = segments[1]
		}
	}

	if !videoIDRe.MatchString(id) {
		return "", false
	}
	return id, true
}
