package store

import (
	"crypto/sha256"
	"encoding/hex"
)

// hashKey computes a SHA-256 hash of a store key, used by FileStore to map
// arbitrary keys onto safe filesystem paths.
// Returns the full 64-character hex string.
func hashKey(key string) string {
	hash := sha256.Sum256([]byte(key))
	return hex.EncodeToString(hash[:])
}
