// Package store provides the remote object store collaborator used for
// key-value transfer and package uploads.
//
// This package defines a small byte-oriented Store interface with
// implementations for different backends:
//   - memory: In-memory storage for development/testing
//   - file: File-based storage for single-machine CLI usage
//   - redis: Redis-backed storage with native TTL support
//   - mongo: MongoDB-backed storage using a TTL index
//   - http: Client for a codepack object server (see internal/server)
//
// # Semantics
//
// Keys are opaque strings; callers namespace them (e.g. "{user}/{key}")
// before they reach a Store, or wrap a backend with Scoped. Every backend
// reports a missing key as ErrNotFound — backend-specific not-found
// errors never escape raw. A zero TTL means the object never expires.
//
// # Usage
//
//	st, err := store.Open(ctx, store.ConfigFromEnv())
//	if err != nil {
//	    return err
//	}
//	defer st.Close()
//
//	err = st.Put(ctx, "alice/checkpoint", data, 7*24*time.Hour)
//	data, err = st.Get(ctx, "alice/checkpoint")
//	if errors.Is(err, store.ErrNotFound) {
//	    // key absent or expired
//	}
package store

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a requested key does not exist or has
// expired. All backends translate their native missing-key signal to it.
var ErrNotFound = errors.New("not found")

// Store is the interface for object storage backends.
type Store interface {
	// Put stores data under key. A ttl of zero means no expiry.
	Put(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Get retrieves the data stored under key.
	// Returns ErrNotFound if the key is absent or expired.
	Get(ctx context.Context, key string) ([]byte, error)

	// Delete removes a key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}
