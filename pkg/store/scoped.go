package store

import (
	"context"
	"strings"
	"time"
)

// ScopedStore wraps a Store with a key prefix for namespace isolation.
// Codepack scopes every key by user, so different users sharing one
// backend never see each other's objects.
//
// Example usage:
//
//	userStore := store.Scoped(backend, "alice/")
//	userStore.Put(ctx, "token", data, 0) // stored as "alice/token"
type ScopedStore struct {
	inner  Store
	prefix string
}

// Scoped creates a store whose keys are all prefixed with prefix.
// A prefix without a trailing slash gets one appended.
func Scoped(inner Store, prefix string) *ScopedStore {
	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return &ScopedStore{inner: inner, prefix: prefix}
}

// Put stores data under the prefixed key.
func (s *ScopedStore) Put(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return s.inner.Put(ctx, s.prefix+key, data, ttl)
}

// Get retrieves the data stored under the prefixed key.
func (s *ScopedStore) Get(ctx context.Context, key string) ([]byte, error) {
	return s.inner.Get(ctx, s.prefix+key)
}

// Delete removes the prefixed key.
func (s *ScopedStore) Delete(ctx context.Context, key string) error {
	return s.inner.Delete(ctx, s.prefix+key)
}

// Close closes the underlying store.
func (s *ScopedStore) Close() error {
	return s.inner.Close()
}

// Ensure ScopedStore implements Store.
var _ Store = (*ScopedStore)(nil)
