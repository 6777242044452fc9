package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/limelightseychelles-git/KidsTube-filter/internal/model"
)

type memAPIKeyStore struct {
	keys []model.APIKey
}

func (m *memAPIKeyStore) ActiveKeyValues(ctx context.Context) ([]string, error) {
	var out []string
	for _, k := range m.keys {
		if k.IsActive {
			out = append(out, k.KeyValue)
		}
	}
	return out, nil
}

func (m *memAPIKeyStore) List(ctx context.Context) ([]model.APIKey, error) { return m.keys, nil }

func (m *memAPIKeyStore) Create(ctx context.Context, value string) (*model.APIKey, error) {
	k := model.APIKey{ID: int64(len(m.keys) + 1), KeyValue: value, IsActive: true, CreatedAt: time.Now()}
	m.keys = append(m.keys, k)
	return &k, nil
}

func (m *memAPIKeyStore) Toggle(ctx context.Context, id int64) (*model.APIKey, error) {
	for i := range m.keys {
		if m.keys[i].ID == id {
			m.keys[i].IsActive = !m.keys[i].IsActive
			k := m.keys[i]
			return &k, nil
		}
	}
	return nil, errors.New("not found")
}

func (m *memAPIKeyStore) Delete(ctx context.Context, id int64) error { return nil }

func TestAPIKeyService_RejectsMalformedKey(t *testing.T) {
	store := &memAPIKeyStore{}
	svc := NewAPIKeyService(store, NewKeyRotator(store, nil, zerolog.Nop()), zerolog.Nop())

	if _, err := svc.Add(context.Background(), "sk-not-a-google-key-000000"); !errors.Is(err, ErrInvalidAPIKey) {
		t.Errorf("err = %v, want ErrInvalidAPIKey", err)
	}
}

func TestAPIKeyService_MutationsRefreshRotator(t *testing.T) {
	store := &memAPIKeyStore{}
	rot := NewKeyRotator(store, nil, zerolog.Nop())
	svc := NewAPIKeyService(store, rot, zerolog.Nop())
	ctx := context.Background()

	if _, err := rot.NextKey(ctx); !errors.Is(err, ErrNoKeysAvailable) {
		t.Fatalf("err = %v, want ErrNoKeysAvailable", err)
	}

	view, err := svc.Add(ctx, "AIzaSyFirstKeyFirstKey0001")
	if err != nil {
		t.Fatal(err)
	}
	if view.Masked != model.MaskAPIKey("AIzaSyFirstKeyFirstKey0001") {
		t.Errorf("masked = %q", view.Masked)
	}
	if k, err := rot.NextKey(ctx); err != nil || k != "AIzaSyFirstKeyFirstKey0001" {
		t.Fatalf("NextKey = %q, %v", k, err)
	}

	if _, err := svc.Add(ctx, "AIzaSySecondKeySecondKey02"); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Toggle(ctx, 1); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 2; i++ {
		if k, _ := rot.NextKey(ctx); k != "AIzaSySecondKeySecondKey02" {
			t.Errorf("NextKey = %q, want only the remaining active key", k)
		}
	}
}

func TestMaskAPIKey(t *testing.T) {
	if got := model.MaskAPIKey("short"); got != "****" {
		t.Errorf("short key masked as %q", got)
	}
	got := model.MaskAPIKey("AIzaSyABCDEFGH1234")
	if got[len(got)-4:] != "1234" {
		t.Errorf("masked = %q, want last four visible", got)
	}
}
