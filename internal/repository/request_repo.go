package repository

import (
	"context"

	"github.com/limelightseychelles-git/KidsTube-filter/internal/model"
)

type RequestRepo struct {
	db DBTX
}

func NewRequestRepo(db DBTX) *RequestRepo {
	return &RequestRepo{db: db}
}

const requestColumns = `id, video_url, video_id, status, requested_at, reviewed_at`

func scanRequest(row interface{ Scan(...any) error }) (*model.VideoRequest, error) {
	var req model.VideoRequest
	var status string
	if err := row.Scan(&req.ID, &req.VideoURL, &req.VideoID, &status, &req.RequestedAt, &req.ReviewedAt); err != nil {
		return nil, err
	}
	req.Status = model.RequestStatus(status)
	return &req, nil
}

// FindOpen returns the most recent pending or approved request for
// videoID, if any. Rejected rows are ignored.
func (r *RequestRepo) FindOpen(ctx context.Context, videoID string) (*model.VideoRequest, error) {
	query := `
		SELECT ` + requestColumns + `
		FROM video_requests
		WHERE video_id = $1 AND status IN ('pending', 'approved')
		ORDER BY requested_at DESC
		LIMIT 1`

	return scanRequest(r.db.QueryRow(ctx, query, videoID))
}

// Create inserts a pending request. The partial unique index on open
// requests turns a concurrent duplicate into ErrDuplicate.
func (r *RequestRepo) Create(ctx context.Context, videoURL, videoID string) (*model.VideoRequest, error) {
	query := `
		INSERT INTO video_requests (video_url, video_id, status)
		VALUES ($1, $2, 'pending')
		RETURNING ` + requestColumns

	req, err := scanRequest(r.db.QueryRow(ctx, query, videoURL, videoID))
	if err != nil {
		return nil, translateErr(err)
	}
	return req, nil
}

func (r *RequestRepo) FindByID(ctx context.Context, id int64) (*model.VideoRequest, error) {
	query := `SELECT ` + requestColumns + ` FROM video_requests WHERE id = $1`
	return scanRequest(r.db.QueryRow(ctx, query, id))
}

// Review moves a pending request to status and stamps reviewed_at. Returns
// pgx.ErrNoRows if the request does not exist or is no longer pending.
func (r *RequestRepo) Review(ctx context.Context, id int64, status model.RequestStatus) (*model.VideoRequest, error) {
	query := `
		UPDATE video_requests
		SET status = $2, reviewed_at = NOW()
		WHERE id = $1 AND status = 'pending'
		RETURNING ` + requestColumns

	return scanRequest(r.db.QueryRow(ctx, query, id, string(status)))
}

// List returns requests newest first, optionally restricted to one status.
func (r *RequestRepo) List(ctx context.Context, status model.RequestStatus) ([]model.VideoRequest, error) {
	query := `SELECT ` + requestColumns + ` FROM video_requests`
	var args []any
	if status != "" {
		query += ` WHERE status = $1`
		args = append(args, string(status))
	}
	query += ` ORDER BY requested_at DESC, id DESC`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []model.VideoRequest
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, *req)
	}
	return requests, rows.Err()
}

func (r *RequestRepo) Delete(ctx context.Context, id int64) error {
	return execOne(ctx, r.db, `DELETE FROM video_requests WHERE id = $1`, id)
}
