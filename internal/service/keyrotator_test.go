package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/rs/zerolog"
)

type fakeKeyStore struct {
	mu    sync.Mutex
	keys  []string
	err   error
	calls int
}

func (f *fakeKeyStore) ActiveKeyValues(ctx context.Context) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.keys, f.err
}

func TestKeyRotator_RoundRobin(t *testing.T) {
	store := &fakeKeyStore{keys: []string{"A", "B", "C"}}
	r := NewKeyRotator(store, nil, zerolog.Nop())

	var got []string
	for i := 0; i < 4; i++ {
		k, err := r.NextKey(context.Background())
		if err != nil {
			t.Fatalf("NextKey: %v", err)
		}
		got = append(got, k)
	}

	want := []string{"A", "B", "C", "A"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("keys = %v, want %v", got, want)
		}
	}
	if store.calls != 1 {
		t.Errorf("store loaded %d times, want 1", store.calls)
	}
}

func TestKeyRotator_FallbackWhenStoreEmpty(t *testing.T) {
	r := NewKeyRotator(&fakeKeyStore{}, []string{"F1", "F2"}, zerolog.Nop())

	k1, _ := r.NextKey(context.Background())
	k2, _ := r.NextKey(context.Background())
	if k1 != "F1" || k2 != "F2" {
		t.Errorf("got %q,%q, want F1,F2", k1, k2)
	}
}

func TestKeyRotator_FallbackWhenStoreFails(t *testing.T) {
	r := NewKeyRotator(&fakeKeyStore{err: errors.New("db down")}, []string{"F1"}, zerolog.Nop())

	k, err := r.NextKey(context.Background())
	if err != nil {
		t.Fatalf("NextKey: %v", err)
	}
	if k != "F1" {
		t.Errorf("got %q, want F1", k)
	}
}

func TestKeyRotator_NoKeysAvailable(t *testing.T) {
	store := &fakeKeyStore{}
	r := NewKeyRotator(store, nil, zerolog.Nop())

	_, err := r.NextKey(context.Background())
	if !errors.Is(err, ErrNoKeysAvailable) {
		t.Fatalf("err = %v, want ErrNoKeysAvailable", err)
	}

	// An empty pool is retried on the next call.
	store.keys = []string{"late"}
	k, err := r.NextKey(context.Background())
	if err != nil || k != "late" {
		t.Errorf("got %q, %v; want late, nil", k, err)
	}
}

func TestKeyRotator_Invalidate(t *testing.T) {
	store := &fakeKeyStore{keys: []string{"A", "B"}}
	r := NewKeyRotator(store, nil, zerolog.Nop())

	if k, _ := r.NextKey(context.Background()); k != "A" {
		t.Fatalf("first key = %q, want A", k)
	}

	store.keys = []string{"X", "Y"}
	r.Invalidate()

	if k, _ := r.NextKey(context.Background()); k != "X" {
		t.Errorf("key after invalidate = %q, want X", k)
	}
	if store.calls != 2 {
		t.Errorf("store loaded %d times, want 2", store.calls)
	}
}

func TestKeyRotator_ConcurrentFairness(t *testing.T) {
	r := NewKeyRotator(&fakeKeyStore{keys: []string{"A", "B", "C"}}, nil, zerolog.Nop())

	const n = 300
	var mu sync.Mutex
	counts := map[string]int{}
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			k, err := r.NextKey(context.Background())
			if err != nil {
				t.Error(err)
				return
			}
			mu.Lock()
			counts[k]++
			mu.Unlock()
		}()
	}
	wg.Wait()

	for _, k := range []string{"A", "B", "C"} {
		if counts[k] != n/3 {
			t.Errorf("key %s handed out %d times, want %d", k, counts[k], n/3)
		}
	}
}
