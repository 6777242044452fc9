package model

import (
	"strings"
	"time"
)

// APIKey is an upstream credential managed from the settings screen.
type APIKey struct {
	ID        int64     `json:"id"`
	KeyValue  string    `json:"-"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
}

// APIKeyView is the masked representation returned to parents.
type APIKeyView struct {
	ID        int64     `json:"id"`
	Masked    string    `json:"keyValue"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
}

// AddAPIKeyRequest is the body of POST /api/settings/api-keys.
type AddAPIKeyRequest struct {
	KeyValue string `json:"keyValue" validate:"required,min=20,max=128"`
}

// MaskAPIKey hides everything but the last four characters.
func MaskAPIKey(key string) string {
	if len(key) < 8 {
		return "****"
	}
	return strings.Repeat("•", 20) + key[len(key)-4:]
}

// View returns the masked form of k.
func (k APIKey) View() APIKeyView {
	return APIKeyView{
		ID:        k.ID,
		Masked:    MaskAPIKey(k.KeyValue),
		IsActive:  k.IsActive,
		CreatedAt: k.CreatedAt,
	}
}
