package model

// PINRequest is the body of the PIN initialize and verify endpoints.
type PINRequest struct {
	PIN string `json:"pin" validate:"required,min=4,max=6,numeric"`
}

// ChangePINRequest is the body of POST /api/auth/change-pin.
type ChangePINRequest struct {
	CurrentPIN string `json:"currentPin" validate:"required,min=4,max=6,numeric"`
	NewPIN     string `json:"newPin" validate:"required,min=4,max=6,numeric"`
}

// TokenResponse carries a signed parent session token.
type TokenResponse struct {
	Token     string `json:"token"`
	ExpiresIn int64  `json:"expiresIn"`
}
