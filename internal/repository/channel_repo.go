package repository

import (
	"context"

	"github.com/limelightseychelles-git/KidsTube-filter/internal/model"
)

type ChannelRepo struct {
	db DBTX
}

func NewChannelRepo(db DBTX) *ChannelRepo {
	return &ChannelRepo{db: db}
}

// List returns the allow-list, most recently approved first.
func (r *ChannelRepo) List(ctx context.Context) ([]model.ApprovedChannel, error) {
	query := `
		SELECT id, channel_id, channel_name, thumbnail_url, approved_at
		FROM approved_channels
		ORDER BY approved_at DESC, id DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var channels []model.ApprovedChannel
	for rows.Next() {
		var ch model.ApprovedChannel
		if err := rows.Scan(&ch.ID, &ch.ChannelID, &ch.ChannelName, &ch.Thumbnail, &ch.ApprovedAt); err != nil {
			return nil, err
		}
		channels = append(channels, ch)
	}
	return channels, rows.Err()
}

// Create adds a channel to the allow-list. Returns ErrDuplicate if the
// channel is already approved.
func (r *ChannelRepo) Create(ctx context.Context, req model.AddChannelRequest) (*model.ApprovedChannel, error) {
	query := `
		INSERT INTO approved_channels (channel_id, channel_name, thumbnail_url)
		VALUES ($1, $2, $3)
		RETURNING id, channel_id, channel_name, thumbnail_url, approved_at`

	var ch model.ApprovedChannel
	err := r.db.QueryRow(ctx, query, req.ChannelID, req.ChannelName, req.Thumbnail).Scan(
		&ch.ID, &ch.ChannelID, &ch.ChannelName, &ch.Thumbnail, &ch.ApprovedAt,
	)
	if err != nil {
		return nil, translateErr(err)
	}
	return &ch, nil
}

func (r *ChannelRepo) Delete(ctx context.Context, id int64) error {
	return execOne(ctx, r.db, `DELETE FROM approved_channels WHERE id = $1`, id)
}
