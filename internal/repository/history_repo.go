package repository

import (
	"context"
	"math"

	"github.com/limelightseychelles-git/KidsTube-filter/internal/model"
)

type HistoryRepo struct {
	db DBTX
}

func NewHistoryRepo(db DBTX) *HistoryRepo {
	return &HistoryRepo{db: db}
}

// Record appends a watched video to the history.
func (r *HistoryRepo) Record(ctx context.Context, e model.HistoryEntry) error {
	query := `
		INSERT INTO video_history (video_id, title, channel_id, duration_seconds)
		VALUES ($1, $2, $3, $4)`

	_, err := r.db.Exec(ctx, query, e.VideoID, e.Title, e.ChannelID, e.DurationSeconds)
	return err
}

// Page returns one page of history, newest first, together with the total count.
func (r *HistoryRepo) Page(ctx context.Context, limit, offset int) (*model.HistoryPage, error) {
	page := &model.HistoryPage{History: []model.HistoryEntry{}, Limit: limit, Offset: offset}

	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM video_history`).Scan(&page.Total); err != nil {
		return nil, err
	}

	query := `
		SELECT id, video_id, title, channel_id, duration_seconds, watched_at
		FROM video_history
		ORDER BY watched_at DESC, id DESC
		LIMIT $1 OFFSET $2`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var e model.HistoryEntry
		if err := rows.Scan(&e.ID, &e.VideoID, &e.Title, &e.ChannelID, &e.DurationSeconds, &e.WatchedAt); err != nil {
			return nil, err
		}
		page.History = append(page.History, e)
	}
	return page, rows.Err()
}

// Stats aggregates counts and watch time for today, the last seven days and
// all time, plus the five most watched channels and per-day activity.
func (r *HistoryRepo) Stats(ctx context.Context) (*model.WatchStats, error) {
	totals := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE watched_at >= date_trunc('day', NOW())),
			COUNT(*) FILTER (WHERE watched_at >= NOW() - INTERVAL '7 days'),
			COALESCE(SUM(duration_seconds), 0),
			COALESCE(SUM(duration_seconds) FILTER (WHERE watched_at >= date_trunc('day', NOW())), 0),
			COALESCE(SUM(duration_seconds) FILTER (WHERE watched_at >= NOW() - INTERVAL '7 days'), 0)
		FROM video_history`

	var stats model.WatchStats
	var totalSecs, todaySecs, weekSecs int64
	err := r.db.QueryRow(ctx, totals).Scan(
		&stats.TotalVideos, &stats.TodayVideos, &stats.WeekVideos,
		&totalSecs, &todaySecs, &weekSecs,
	)
	if err != nil {
		return nil, err
	}
	stats.TotalHours = SecondsToHours(totalSecs)
	stats.TodayHours = SecondsToHours(todaySecs)
	stats.WeekHours = SecondsToHours(weekSecs)

	stats.TopChannels = []model.ChannelWatchCount{}
	rows, err := r.db.Query(ctx, `
		SELECT channel_id, COUNT(*) AS watch_count
		FROM video_history
		WHERE channel_id <> ''
		GROUP BY channel_id
		ORDER BY watch_count DESC, channel_id ASC
		LIMIT 5`)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var c model.ChannelWatchCount
		if err := rows.Scan(&c.ChannelID, &c.Count); err != nil {
			rows.Close()
			return nil, err
		}
		stats.TopChannels = append(stats.TopChannels, c)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	stats.RecentActivity = []model.DailyActivity{}
	rows, err = r.db.Query(ctx, `
		SELECT to_char(date_trunc('day', watched_at), 'YYYY-MM-DD') AS day, COUNT(*)
		FROM video_history
		WHERE watched_at >= NOW() - INTERVAL '7 days'
		GROUP BY day
		ORDER BY day DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var d model.DailyActivity
		if err := rows.Scan(&d.Date, &d.Count); err != nil {
			return nil, err
		}
		stats.RecentActivity = append(stats.RecentActivity, d)
	}
	return &stats, rows.Err()
}

func (r *HistoryRepo) Delete(ctx context.Context, id int64) error {
	return execOne(ctx, r.db, `DELETE FROM video_history WHERE id = $1`, id)
}

// Clear removes the whole history and returns how many rows were deleted.
func (r *HistoryRepo) Clear(ctx context.Context) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM video_history`)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// SecondsToHours converts seconds to hours rounded to one decimal place.
func SecondsToHours(secs int64) float64 {
	return math.Round(float64(secs)/3600*10) / 10
}
