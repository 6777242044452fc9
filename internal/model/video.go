package model

import "time"

// VideoSummary is the unit the filtering pipeline operates on.
type VideoSummary struct {
	VideoID      string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	ChannelID    string    `json:"channelId"`
	ChannelName  string    `json:"channelTitle"`
	ThumbnailURL string    `json:"thumbnailUrl"`
	PublishedAt  time.Time `json:"publishedAt"`
}

// VideoDetails extends a summary with the fields only the detail lookup returns.
type VideoDetails struct {
	VideoSummary
	Duration        string `json:"duration"`
	DurationSeconds int    `json:"durationSeconds"`
	ViewCount       uint64 `json:"viewCount"`
	LikeCount       uint64 `json:"likeCount"`
	AgeRestricted   bool   `json:"ageRestricted"`
}

// SearchResponse is the API response for search and latest listings.
type SearchResponse struct {
	Items        []VideoSummary `json:"items"`
	TotalResults int            `json:"totalResults"`
	Query        string         `json:"query"`
}
