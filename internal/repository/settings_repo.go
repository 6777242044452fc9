package repository

import (
	"context"
)

const pinHashKey = "pin_hash"

// SettingsRepo stores singleton application values in app_config.
type SettingsRepo struct {
	db DBTX
}

func NewSettingsRepo(db DBTX) *SettingsRepo {
	return &SettingsRepo{db: db}
}

// PINHash returns the stored bcrypt hash, or pgx.ErrNoRows if no PIN is set.
func (r *SettingsRepo) PINHash(ctx context.Context) (string, error) {
	var hash string
	err := r.db.QueryRow(ctx, `SELECT value FROM app_config WHERE key = $1`, pinHashKey).Scan(&hash)
	return hash, err
}

// CreatePINHash stores the first PIN. Returns ErrDuplicate if one exists.
func (r *SettingsRepo) CreatePINHash(ctx context.Context, hash string) error {
	_, err := r.db.Exec(ctx, `INSERT INTO app_config (key, value) VALUES ($1, $2)`, pinHashKey, hash)
	return translateErr(err)
}

// UpdatePINHash replaces the stored PIN hash.
func (r *SettingsRepo) UpdatePINHash(ctx context.Context, hash string) error {
	return execOne(ctx, r.db, `UPDATE app_config SET value = $2, updated_at = NOW() WHERE key = $1`, pinHashKey, hash)
}
