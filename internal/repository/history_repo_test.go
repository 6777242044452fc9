package repository

import (
	"context"
	"regexp"
	"testing"

	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/limelightseychelles-git/KidsTube-filter/internal/model"
)

func TestSecondsToHours(t *testing.T) {
	tests := []struct {
		secs int64
		want float64
	}{
		{0, 0},
		{3600, 1},
		{5400, 1.5},
		{200, 0.1},
		{100, 0},
		{45000, 12.5},
	}
	for _, tt := range tests {
		if got := SecondsToHours(tt.secs); got != tt.want {
			t.Errorf("SecondsToHours(%d) = %v, want %v", tt.secs, got, tt.want)
		}
	}
}

func TestHistoryRepo_Record(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec(`INSERT INTO video_history`).
		WithArgs("dQw4w9WgXcQ", "Morning Yoga", "UC1", 754).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err = NewHistoryRepo(mock).Record(context.Background(), model.HistoryEntry{
		VideoID: "dQw4w9WgXcQ", Title: "Morning Yoga", ChannelID: "UC1", DurationSeconds: 754,
	})
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHistoryRepo_Stats(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(regexp.QuoteMeta(`COUNT(*) FILTER (WHERE watched_at >= date_trunc('day', NOW()))`)).
		WillReturnRows(mock.NewRows([]string{"total", "today", "week", "ts", "tds", "ws"}).
			AddRow(10, 2, 6, int64(7200), int64(900), int64(5400)))
	mock.ExpectQuery(`GROUP BY channel_id`).
		WillReturnRows(mock.NewRows([]string{"channel_id", "watch_count"}).
			AddRow("UC1", 6).AddRow("UC2", 4))
	mock.ExpectQuery(`GROUP BY day`).
		WillReturnRows(mock.NewRows([]string{"day", "count"}).
			AddRow("2024-05-02", 2).AddRow("2024-05-01", 4))

	stats, err := NewHistoryRepo(mock).Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 10, stats.TotalVideos)
	assert.Equal(t, 2.0, stats.TotalHours)
	assert.Equal(t, 0.3, stats.TodayHours)
	assert.Equal(t, 1.5, stats.WeekHours)
	assert.Len(t, stats.TopChannels, 2)
	assert.Equal(t, "2024-05-02", stats.RecentActivity[0].Date)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHistoryRepo_Clear(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec(`DELETE FROM video_history`).
		WillReturnResult(pgxmock.NewResult("DELETE", 12))

	n, err := NewHistoryRepo(mock).Clear(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(12), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}
