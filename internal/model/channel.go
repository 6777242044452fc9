package model

import "time"

// ApprovedChannel is a channel on the parent-curated allow-list.
type ApprovedChannel struct {
	ID          int64     `json:"id"`
	ChannelID   string    `json:"channelId"`
	ChannelName string    `json:"channelName"`
	Thumbnail   string    `json:"thumbnailUrl,omitempty"`
	ApprovedAt  time.Time `json:"approvedAt"`
}

// ChannelCandidate is a channel discovered through an upstream search,
// offered to parents for approval.
type ChannelCandidate struct {
	ChannelID   string `json:"channelId"`
	ChannelName string `json:"channelName"`
	Thumbnail   string `json:"thumbnailUrl"`
}

// AddChannelRequest is the body of POST /api/channels.
type AddChannelRequest struct {
	ChannelID   string `json:"channelId" validate:"required,max=64"`
	ChannelName string `json:"channelName" validate:"required,max=255"`
	Thumbnail   string `json:"thumbnailUrl" validate:"omitempty,url"`
}
