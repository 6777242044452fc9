package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/limelightseychelles-git/KidsTube-filter/internal/model"
)

// ErrEmptyKeyword is returned when a keyword is blank after trimming.
var ErrEmptyKeyword = errors.New("keyword is required")

// KeywordStore persists the blocked-keyword deny-list.
type KeywordStore interface {
	List(ctx context.Context) ([]model.BlockedKeyword, error)
	Create(ctx context.Context, keyword string) (*model.BlockedKeyword, error)
	InsertIfAbsent(ctx context.Context, keyword string) (bool, error)
	Delete(ctx context.Context, id int64) error
}

type KeywordService struct {
	store KeywordStore
}

func NewKeywordService(store KeywordStore) *KeywordService {
	return &KeywordService{store: store}
}

func (s *KeywordService) List(ctx context.Context) ([]model.BlockedKeyword, error) {
	kws, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	if kws == nil {
		kws = []model.BlockedKeyword{}
	}
	return kws, nil
}

// Add normalizes and stores a keyword. Returns repository.ErrDuplicate if it
// is already blocked.
func (s *KeywordService) Add(ctx context.Context, keyword string) (*model.BlockedKeyword, error) {
	kw := NormalizeKeyword(keyword)
	if kw == "" {
		return nil, ErrEmptyKeyword
	}
	return s.store.Create(ctx, kw)
}

// AddBulk stores every new keyword in keywords, skipping blanks, repeats
// within the batch and keywords that are already blocked.
func (s *KeywordService) AddBulk(ctx context.Context, keywords []string) (*model.BulkKeywordResult, error) {
	res := &model.BulkKeywordResult{}
	seen := make(map[string]struct{}, len(keywords))

	for _, raw := range keywords {
		kw := NormalizeKeyword(raw)
		if kw == "" {
			res.Skipped++
			continue
		}
		if _, dup := seen[kw]; dup {
			res.Skipped++
			continue
		}
		seen[kw] = struct{}{}

		added, err := s.store.InsertIfAbsent(ctx, kw)
		if err != nil {
			return nil, fmt.Errorf("insert keyword %q: %w", kw, err)
		}
		if added {
			res.Added++
		} else {
			res.Skipped++
		}
	}

	res.Message = fmt.Sprintf("Added %d keywords, skipped %d", res.Added, res.Skipped)
	return res, nil
}

func (s *KeywordService) Remove(ctx context.Context, id int64) error {
	return s.store.Delete(ctx, id)
}
