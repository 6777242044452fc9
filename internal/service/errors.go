package service

import (
	"errors"
	"fmt"
)

var (
	// ErrNoKeysAvailable means neither the key store nor the static fallback
	// yielded a credential. Fatal for the current request.
	ErrNoKeysAvailable = errors.New("no YouTube API keys available")

	ErrVideoNotFound     = errors.New("video not found")
	ErrInvalidVideoURL   = errors.New("invalid YouTube URL or video ID")
	ErrInvalidTransition = errors.New("request is no longer pending")
	ErrInvalidAPIKey     = errors.New("invalid YouTube API key format")

	ErrPINNotSet     = errors.New("PIN has not been set")
	ErrPINAlreadySet = errors.New("PIN already set")
	ErrInvalidPIN    = errors.New("invalid PIN")
	ErrInvalidToken  = errors.New("invalid or expired token")
)

// BlockedQueryError rejects a search whose text contains a denied keyword.
// It is an expected policy outcome, not a failure.
type BlockedQueryError struct {
	Keyword string
}

func (e *BlockedQueryError) Error() string {
	return fmt.Sprintf("query contains blocked keyword %q", e.Keyword)
}

// UpstreamError wraps a failed call to the upstream video directory.
type UpstreamError struct {
	Op  string
	Err error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream %s: %v", e.Op, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// IsBlockedQuery reports whether err is a BlockedQueryError and returns it.
func IsBlockedQuery(err error) (*BlockedQueryError, bool) {
	var bq *BlockedQueryError
	if errors.As(err, &bq) {
		return bq, true
	}
	return nil, false
}
