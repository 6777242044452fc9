package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/limelightseychelles-git/KidsTube-filter/internal/model"
)

type KeywordRepo struct {
	db DBTX
}

func NewKeywordRepo(db DBTX) *KeywordRepo {
	return &KeywordRepo{db: db}
}

func (r *KeywordRepo) List(ctx context.Context) ([]model.BlockedKeyword, error) {
	rows, err := r.db.Query(ctx, `SELECT id, keyword, created_at FROM blocked_keywords ORDER BY keyword ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var keywords []model.BlockedKeyword
	for rows.Next() {
		var k model.BlockedKeyword
		if err := rows.Scan(&k.ID, &k.Keyword, &k.CreatedAt); err != nil {
			return nil, err
		}
		keywords = append(keywords, k)
	}
	return keywords, rows.Err()
}

// Values returns the normalized deny-list strings.
func (r *KeywordRepo) Values(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx, `SELECT keyword FROM blocked_keywords`)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowTo[string])
}

// Create inserts an already-normalized keyword. Returns ErrDuplicate if it exists.
func (r *KeywordRepo) Create(ctx context.Context, keyword string) (*model.BlockedKeyword, error) {
	query := `
		INSERT INTO blocked_keywords (keyword)
		VALUES ($1)
		RETURNING id, keyword, created_at`

	var k model.BlockedKeyword
	if err := r.db.QueryRow(ctx, query, keyword).Scan(&k.ID, &k.Keyword, &k.CreatedAt); err != nil {
		return nil, translateErr(err)
	}
	return &k, nil
}

// InsertIfAbsent inserts keyword unless it is already present and reports
// whether a row was added.
func (r *KeywordRepo) InsertIfAbsent(ctx context.Context, keyword string) (bool, error) {
	tag, err := r.db.Exec(ctx, `INSERT INTO blocked_keywords (keyword) VALUES ($1) ON CONFLICT (keyword) DO NOTHING`, keyword)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (r *KeywordRepo) Delete(ctx context.Context, id int64) error {
	return execOne(ctx, r.db, `DELETE FROM blocked_keywords WHERE id = $1`, id)
}
