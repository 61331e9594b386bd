// Package keyval stores and retrieves serialized values under string keys
// in a remote object store.
//
// Values are encoded as JSON and stored under keys namespaced as
// "{user}/{key}", so different users sharing one backend never collide.
// A missing key surfaces as a NOT_FOUND error naming the full key, never
// as a raw backend error. An optional TTL bounds how long a value lives.
//
//	err := keyval.Set(ctx, st, "alice", "checkpoint", "run-42", 7*24*time.Hour)
//
//	var v string
//	err = keyval.Get(ctx, st, "alice", "checkpoint", &v)
package keyval

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/epfml/codepack/pkg/errors"
	"github.com/epfml/codepack/pkg/store"
)

// namespacedKey builds the storage key for a user's entry.
func namespacedKey(user, key string) (string, error) {
	if err := errors.ValidateUser(user); err != nil {
		return "", err
	}
	if err := errors.ValidateKey(key); err != nil {
		return "", err
	}
	return fmt.Sprintf("%s/%s", user, key), nil
}

// Set serializes value as JSON and stores it under {user}/{key}.
// A ttl of zero means the value never expires.
func Set(ctx context.Context, st store.Store, user, key string, value any, ttl time.Duration) error {
	full, err := namespacedKey(user, key)
	if err != nil {
		return err
	}

	data, err := json.Marshal(value)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "serialize value for %s", full)
	}

	if err := st.Put(ctx, full, data, ttl); err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "store %s", full)
	}
	return nil
}

// Get retrieves the value stored under {user}/{key} and decodes it into
// out, which must be a pointer. A missing or expired key yields a
// NOT_FOUND error naming the full key.
func Get(ctx context.Context, st store.Store, user, key string, out any) error {
	full, err := namespacedKey(user, key)
	if err != nil {
		return err
	}

	data, err := st.Get(ctx, full)
	if stderrors.Is(err, store.ErrNotFound) {
		return errors.New(errors.ErrCodeNotFound, "key %s not found", full)
	}
	if err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "fetch %s", full)
	}

	if err := json.Unmarshal(data, out); err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "decode value of %s", full)
	}
	return nil
}

// GetString retrieves a string value stored under {user}/{key}.
// Non-string values decode into their JSON text representation.
func GetString(ctx context.Context, st store.Store, user, key string) (string, error) {
	var s string
	if err := Get(ctx, st, user, key, &s); err == nil {
		return s, nil
	} else if errors.Is(err, errors.ErrCodeNotFound) || errors.Is(err, errors.ErrCodeInvalidInput) {
		return "", err
	}

	// Fall back to the raw JSON for values that are not plain strings.
	full, err := namespacedKey(user, key)
	if err != nil {
		return "", err
	}
	data, err := st.Get(ctx, full)
	if stderrors.Is(err, store.ErrNotFound) {
		return "", errors.New(errors.ErrCodeNotFound, "key %s not found", full)
	}
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeStore, err, "fetch %s", full)
	}
	return string(data), nil
}

// Unset removes the value stored under {user}/{key}. Removing an absent
// key is not an error.
func Unset(ctx context.Context, st store.Store, user, key string) error {
	full, err := namespacedKey(user, key)
	if err != nil {
		return err
	}
	if err := st.Delete(ctx, full); err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "delete %s", full)
	}
	return nil
}
