package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/limelightseychelles-git/KidsTube-filter/internal/model"
)

type APIKeyRepo struct {
	db DBTX
}

func NewAPIKeyRepo(db DBTX) *APIKeyRepo {
	return &APIKeyRepo{db: db}
}

// ActiveKeyValues returns the secrets of all active keys, oldest first.
func (r *APIKeyRepo) ActiveKeyValues(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx, `SELECT key_value FROM api_keys WHERE is_active = true ORDER BY created_at ASC, id ASC`)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowTo[string])
}

// List returns every key, oldest first.
func (r *APIKeyRepo) List(ctx context.Context) ([]model.APIKey, error) {
	rows, err := r.db.Query(ctx, `SELECT id, key_value, is_active, created_at FROM api_keys ORDER BY created_at ASC, id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var keys []model.APIKey
	for rows.Next() {
		var k model.APIKey
		if err := rows.Scan(&k.ID, &k.KeyValue, &k.IsActive, &k.CreatedAt); err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}

func (r *APIKeyRepo) Create(ctx context.Context, value string) (*model.APIKey, error) {
	query := `
		INSERT INTO api_keys (key_value, is_active)
		VALUES ($1, true)
		RETURNING id, key_value, is_active, created_at`

	var k model.APIKey
	err := r.db.QueryRow(ctx, query, value).Scan(&k.ID, &k.KeyValue, &k.IsActive, &k.CreatedAt)
	if err != nil {
		return nil, translateErr(err)
	}
	return &k, nil
}

// Toggle flips is_active and returns the updated key.
func (r *APIKeyRepo) Toggle(ctx context.Context, id int64) (*model.APIKey, error) {
	query := `
		UPDATE api_keys SET is_active = NOT is_active
		WHERE id = $1
		RETURNING id, key_value, is_active, created_at`

	var k model.APIKey
	err := r.db.QueryRow(ctx, query, id).Scan(&k.ID, &k.KeyValue, &k.IsActive, &k.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &k, nil
}

func (r *APIKeyRepo) Delete(ctx context.Context, id int64) error {
	return execOne(ctx, r.db, `DELETE FROM api_keys WHERE id = $1`, id)
}
