package model

import "time"

// HistoryEntry is one watched video.
type HistoryEntry struct {
	ID              int64     `json:"id"`
	VideoID         string    `json:"videoId"`
	Title           string    `json:"title"`
	ChannelID       string    `json:"channelId"`
	DurationSeconds int       `json:"durationSeconds"`
	WatchedAt       time.Time `json:"watchedAt"`
}

// HistoryPage is a paginated slice of the watch history.
type HistoryPage struct {
	History []HistoryEntry `json:"history"`
	Total   int            `json:"total"`
	Limit   int            `json:"limit"`
	Offset  int            `json:"offset"`
}

// ChannelWatchCount is a channel ranked by number of watched videos.
type ChannelWatchCount struct {
	ChannelID string `json:"channelId"`
	Count     int    `json:"count"`
}

// DailyActivity is the number of videos watched on a calendar day.
type DailyActivity struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// WatchStats summarizes the watch history for the parent dashboard.
type WatchStats struct {
	TotalVideos    int                 `json:"totalVideos"`
	TodayVideos    int                 `json:"todayVideos"`
	WeekVideos     int                 `json:"weekVideos"`
	TotalHours     float64             `json:"totalHours"`
	TodayHours     float64             `json:"todayHours"`
	WeekHours      float64             `json:"weekHours"`
	TopChannels    []ChannelWatchCount `json:"topChannels"`
	RecentActivity []DailyActivity     `json:"recentActivity"`
}
