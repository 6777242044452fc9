package model

import "time"

// BlockedKeyword is a deny-list entry. Keyword is stored trimmed and lowercased.
type BlockedKeyword struct {
	ID        int64     `json:"id"`
	Keyword   string    `json:"keyword"`
	CreatedAt time.Time `json:"createdAt"`
}

// AddKeywordRequest is the body of POST /api/keywords.
type AddKeywordRequest struct {
	Keyword string `json:"keyword" validate:"required,max=100"`
}

// BulkKeywordRequest is the body of POST /api/keywords/bulk.
type BulkKeywordRequest struct {
	Keywords []string `json:"keywords" validate:"required,min=1,max=500,dive,max=100"`
}

// BulkKeywordResult reports how many keywords were inserted and how many
// were skipped as empty or already present.
type BulkKeywordResult struct {
	Added   int    `json:"added"`
	Skipped int    `json:"skipped"`
	Message string `json:"message"`
}
