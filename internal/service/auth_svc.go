package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/limelightseychelles-git/KidsTube-filter/internal/model"
	"github.com/limelightseychelles-git/KidsTube-filter/internal/repository"
)

// PINStore persists the parent PIN hash.
type PINStore interface {
	PINHash(ctx context.Context) (string, error)
	CreatePINHash(ctx context.Context, hash string) error
	UpdatePINHash(ctx context.Context, hash string) error
}

type parentClaims struct {
	Authenticated bool `json:"authenticated"`
	jwt.RegisteredClaims
}

// AuthService guards parent-only operations with a PIN and short-lived
// HS256 session tokens.
type AuthService struct {
	store  PINStore
	secret []byte
	expiry time.Duration
	cost   int
	now    func() time.Time
}

func NewAuthService(store PINStore, secret string, expiry time.Duration, cost int) *AuthService {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &AuthService{
		store:  store,
		secret: []byte(secret),
		expiry: expiry,
		cost:   cost,
		now:    time.Now,
	}
}

// HasPIN reports whether a PIN has been initialized.
func (s *AuthService) HasPIN(ctx context.Context) (bool, error) {
	_, err := s.store.PINHash(ctx)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// InitializePIN sets the first PIN. Fails with ErrPINAlreadySet afterwards.
func (s *AuthService) InitializePIN(ctx context.Context, pin string) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(pin), s.cost)
	if err != nil {
		return fmt.Errorf("hash pin: %w", err)
	}
	err = s.store.CreatePINHash(ctx, string(hashed))
	if errors.Is(err, repository.ErrDuplicate) {
		return ErrPINAlreadySet
	}
	return err
}

// VerifyPIN checks pin and issues a session token.
func (s *AuthService) VerifyPIN(ctx context.Context, pin string) (*model.TokenResponse, error) {
	if err := s.checkPIN(ctx, pin); err != nil {
		return nil, err
	}
	return s.issueToken()
}

// ChangePIN replaces the PIN after verifying the current one.
func (s *AuthService) ChangePIN(ctx context.Context, current, next string) error {
	if err := s.checkPIN(ctx, current); err != nil {
		return err
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(next), s.cost)
	if err != nil {
		return fmt.Errorf("hash pin: %w", err)
	}
	return s.store.UpdatePINHash(ctx, string(hashed))
}

// ValidateToken accepts only unexpired HS256 tokens issued by this service.
func (s *AuthService) ValidateToken(tokenString string) error {
	claims := &parentClaims{}
	tok, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !tok.Valid || !claims.Authenticated {
		return ErrInvalidToken
	}
	return nil
}

func (s *AuthService) checkPIN(ctx context.Context, pin string) error {
	hashed, err := s.store.PINHash(ctx)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrPINNotSet
	}
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(hashed), []byte(pin)) != nil {
		return ErrInvalidPIN
	}
	return nil
}

func (s *AuthService) issueToken() (*model.TokenResponse, error) {
	now := s.now()
	claims := parentClaims{
		Authenticated: true,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "parent",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}
	return &model.TokenResponse{Token: signed, ExpiresIn: int64(s.expiry.Seconds())}, nil
}
