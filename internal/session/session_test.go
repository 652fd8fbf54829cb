package session

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestMemoryStore_CreateAndResolve(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore(time.Hour)

	token, err := store.Create(context.Background(), 42)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if token == "" {
		t.Fatal("expected non-empty token")
	}

	userID, err := store.Resolve(context.Background(), token)
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if userID != 42 {
		t.Fatalf("userID mismatch: got %d want 42", userID)
	}
}

func TestMemoryStore_UnknownToken(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore(time.Hour)

	_, err := store.Resolve(context.Background(), "nope")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryStore_Expiry(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore(time.Minute)
	token, err := store.Create(context.Background(), 7)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	store.now = func() time.Time { return time.Now().Add(2 * time.Minute) }

	if _, err := store.Resolve(context.Background(), token); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for expired session, got %v", err)
	}
}

func TestMemoryStore_DestroyIdempotent(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore(time.Hour)
	token, err := store.Create(context.Background(), 1)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	if err := store.Destroy(context.Background(), token); err != nil {
		t.Fatalf("Destroy error: %v", err)
	}
	if err := store.Destroy(context.Background(), token); err != nil {
		t.Fatalf("second Destroy error: %v", err)
	}
	if _, err := store.Resolve(context.Background(), token); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after destroy, got %v", err)
	}
}

func TestMemoryStore_TokensAreUnique(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore(time.Hour)
	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		token, err := store.Create(context.Background(), int64(i))
		if err != nil {
			t.Fatalf("Create error: %v", err)
		}
		if _, dup := seen[token]; dup {
			t.Fatalf("duplicate token %q", token)
		}
		seen[token] = struct{}{}
	}
}
