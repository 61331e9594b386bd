package keyval

import (
	"context"
	"testing"
	"time"

	"github.com/epfml/codepack/pkg/errors"
	"github.com/epfml/codepack/pkg/store"
)

func TestSetGetRoundTrip(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()

	if err := Set(ctx, st, "alice", "checkpoint", "run-42", 0); err != nil {
		t.Fatalf("Set: %v", err)
	}

	var got string
	if err := Get(ctx, st, "alice", "checkpoint", &got); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != "run-42" {
		t.Errorf("Get = %q, want run-42", got)
	}
}

func TestStructuredValues(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()

	type result struct {
		Epoch int     `json:"epoch"`
		Loss  float64 `json:"loss"`
	}

	want := result{Epoch: 7, Loss: 0.125}
	if err := Set(ctx, st, "alice", "best", want, 0); err != nil {
		t.Fatalf("Set: %v", err)
	}

	var got result
	if err := Get(ctx, st, "alice", "best", &got); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != want {
		t.Errorf("Get = %+v, want %+v", got, want)
	}
}

func TestKeysAreNamespacedByUser(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()

	if err := Set(ctx, st, "alice", "token", "alice-value", 0); err != nil {
		t.Fatalf("Set: %v", err)
	}

	// Bob cannot see Alice's key.
	var v string
	err := Get(ctx, st, "bob", "token", &v)
	if !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("cross-user Get error = %v, want NOT_FOUND", err)
	}

	// The raw backend key carries the namespace.
	if _, err := st.Get(ctx, "alice/token"); err != nil {
		t.Errorf("backend should hold alice/token: %v", err)
	}
}

func TestGetMissingKey(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()

	var v string
	err := Get(ctx, st, "alice", "nothing", &v)
	if !errors.Is(err, errors.ErrCodeNotFound) {
		t.Fatalf("error = %v, want NOT_FOUND", err)
	}
	if msg := errors.UserMessage(err); msg != "key alice/nothing not found" {
		t.Errorf("message = %q", msg)
	}
}

func TestGetString(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()

	if err := Set(ctx, st, "alice", "plain", "hello", 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if s, err := GetString(ctx, st, "alice", "plain"); err != nil || s != "hello" {
		t.Errorf("GetString = %q, %v", s, err)
	}

	if err := Set(ctx, st, "alice", "number", 42, 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if s, err := GetString(ctx, st, "alice", "number"); err != nil || s != "42" {
		t.Errorf("GetString(number) = %q, %v", s, err)
	}

	if _, err := GetString(ctx, st, "alice", "absent"); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("GetString(absent) error = %v, want NOT_FOUND", err)
	}
}

func TestUnset(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()

	if err := Set(ctx, st, "alice", "temp", "value", 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := Unset(ctx, st, "alice", "temp"); err != nil {
		t.Fatalf("Unset: %v", err)
	}

	var v string
	if err := Get(ctx, st, "alice", "temp", &v); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("Get after Unset = %v, want NOT_FOUND", err)
	}

	// Unsetting an absent key is fine.
	if err := Unset(ctx, st, "alice", "temp"); err != nil {
		t.Errorf("Unset of absent key: %v", err)
	}
}

func TestTTLExpiry(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()

	if err := Set(ctx, st, "alice", "ephemeral", "bye", time.Millisecond); err != nil {
		t.Fatalf("Set: %v", err)
	}
	time.Sleep(10 * time.Millisecond)

	var v string
	if err := Get(ctx, st, "alice", "ephemeral", &v); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("expired key error = %v, want NOT_FOUND", err)
	}
}

func TestInvalidKeys(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()

	if err := Set(ctx, st, "alice", "../escape", "v", 0); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("traversal key error = %v, want INVALID_INPUT", err)
	}
	if err := Set(ctx, st, "", "key", "v", 0); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("empty user error = %v, want INVALID_INPUT", err)
	}
	var v string
	if err := Get(ctx, st, "alice", "", &v); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("empty key error = %v, want INVALID_INPUT", err)
	}
}
