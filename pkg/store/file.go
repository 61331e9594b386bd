package store

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// FileStore implements a directory-backed store for single-machine CLI
// usage. Objects are stored as files with metadata (expiration).
type FileStore struct {
	dir string
}

// NewFileStore creates a file-based store in the given directory.
// The directory will be created if it doesn't exist.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FileStore{dir: dir}, nil
}

// fileEntry wraps stored data with metadata.
type fileEntry struct {
	Key       string    `json:"key"`
	Data      []byte    `json:"data"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Put stores a value on disk.
func (s *FileStore) Put(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	entry := fileEntry{
		Key:  key,
		Data: data,
	}
	if ttl > 0 {
		entry.ExpiresAt = time.Now().Add(ttl)
	}

	entryData, err := json.Marshal(entry)
	if err != nil {
		return err
	}

	path := s.path(key)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, entryData, 0o644)
}

// Get retrieves a value from disk.
func (s *FileStore) Get(ctx context.Context, key string) ([]byte, error) {
	path := s.path(key)

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var entry fileEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		// Invalid entry - treat as missing
		_ = os.Remove(path)
		return nil, ErrNotFound
	}

	// Check expiration
	if !entry.ExpiresAt.IsZero() && time.Now().After(entry.ExpiresAt) {
		_ = os.Remove(path)
		return nil, ErrNotFound
	}

	return entry.Data, nil
}

// Delete removes a value from disk.
func (s *FileStore) Delete(ctx context.Context, key string) error {
	err := os.Remove(s.path(key))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// Close does nothing for the file store.
func (s *FileStore) Close() error {
	return nil
}

// path converts a store key to a file path.
// Uses a hash-based directory structure so that arbitrary keys cannot
// address arbitrary filesystem locations and one directory never holds
// too many files.
func (s *FileStore) path(key string) string {
	hash := hashKey(key)
	subdir := hash[:2]
	filename := hash[2:] + ".json"
	return filepath.Join(s.dir, subdir, filename)
}

// Ensure FileStore implements Store.
var _ Store = (*FileStore)(nil)
