package observability

import (
	"context"
	"errors"
	"testing"
	"time"
)

type recordingStoreHooks struct {
	puts, gets, deletes int
	lastKey             string
	lastErr             error
}

func (r *recordingStoreHooks) OnPut(_ context.Context, key string, _ int, _ time.Duration, err error) {
	r.puts++
	r.lastKey = key
	r.lastErr = err
}

func (r *recordingStoreHooks) OnGet(_ context.Context, key string, _ time.Duration, err error) {
	r.gets++
	r.lastKey = key
	r.lastErr = err
}

func (r *recordingStoreHooks) OnDelete(_ context.Context, key string, _ time.Duration, err error) {
	r.deletes++
	r.lastKey = key
	r.lastErr = err
}

func TestDefaultHooksAreNoop(t *testing.T) {
	Reset()

	// Must not panic and must return non-nil implementations.
	if Store() == nil {
		t.Fatal("Store() should never return nil")
	}
	if Bundle() == nil {
		t.Fatal("Bundle() should never return nil")
	}
	Store().OnGet(context.Background(), "k", 0, nil)
	Bundle().OnBuildComplete(context.Background(), "id", 0, 0, nil)
}

func TestSetStoreHooks(t *testing.T) {
	defer Reset()

	rec := &recordingStoreHooks{}
	SetStoreHooks(rec)

	ctx := context.Background()
	Store().OnPut(ctx, "alice/key", 10, time.Millisecond, nil)
	Store().OnGet(ctx, "alice/key", time.Millisecond, errors.New("miss"))
	Store().OnDelete(ctx, "alice/key", time.Millisecond, nil)

	if rec.puts != 1 || rec.gets != 1 || rec.deletes != 1 {
		t.Errorf("hook counts = %d/%d/%d, want 1/1/1", rec.puts, rec.gets, rec.deletes)
	}
	if rec.lastKey != "alice/key" {
		t.Errorf("lastKey = %q", rec.lastKey)
	}
}

func TestSetNilHooksIgnored(t *testing.T) {
	defer Reset()

	SetStoreHooks(nil)
	if Store() == nil {
		t.Error("nil registration should keep the previous hooks")
	}
	SetBundleHooks(nil)
	if Bundle() == nil {
		t.Error("nil registration should keep the previous hooks")
	}
}

func TestReset(t *testing.T) {
	rec := &recordingStoreHooks{}
	SetStoreHooks(rec)
	Reset()

	Store().OnGet(context.Background(), "k", 0, nil)
	if rec.gets != 0 {
		t.Error("Reset should restore the no-op hooks")
	}
}
