package model

import "time"

// RequestStatus is the review state of a video request.
type RequestStatus string

const (
	StatusPending  RequestStatus = "pending"
	StatusApproved RequestStatus = "approved"
	StatusRejected RequestStatus = "rejected"
)

// Valid reports whether s is a known status.
func (s RequestStatus) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// VideoRequest is a kid-submitted request to watch a specific video.
type VideoRequest struct {
	ID          int64         `json:"id"`
	VideoURL    string        `json:"videoUrl"`
	VideoID     string        `json:"videoId"`
	Status      RequestStatus `json:"status"`
	RequestedAt time.Time     `json:"requestedAt"`
	ReviewedAt  *time.Time    `json:"reviewedAt"`
}

// VideoRequestWithDetails is a request enriched with upstream details for
// the parent review screen. VideoDetails is nil when the lookup failed.
type VideoRequestWithDetails struct {
	VideoRequest
	VideoDetails *VideoDetails `json:"videoDetails"`
}

// SubmitRequest is the body of POST /api/requests/submit.
type SubmitRequest struct {
	VideoURL string `json:"videoUrl" validate:"required,max=2048"`
}
