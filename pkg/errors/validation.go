package errors

import (
	"strings"
	"unicode"
)

// ValidateKey validates a store key for safety and correctness.
// It rejects keys that could be used for path traversal or injection attacks
// when a key is mapped onto a filesystem path or URL by a storage backend.
//
// The validation rules are intentionally conservative:
//   - No empty keys
//   - No control characters
//   - No path traversal sequences (.., //)
//   - No null bytes or backslashes
//   - No leading or trailing slash
//   - Maximum length of 512 characters
func ValidateKey(key string) error {
	if key == "" {
		return New(ErrCodeInvalidInput, "key cannot be empty")
	}

	if len(key) > 512 {
		return New(ErrCodeInvalidInput, "key too long (max 512 characters)")
	}

	// Check for control characters and null bytes
	for _, r := range key {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "key contains invalid control characters")
		}
	}

	// Check for path traversal patterns
	dangerousPatterns := []string{
		"..",   // Parent directory
		"//",   // Double slash
		"\x00", // Null byte
		"\\",   // Backslash (Windows path)
	}

	for _, pattern := range dangerousPatterns {
		if strings.Contains(key, pattern) {
			return New(ErrCodeInvalidInput, "key contains invalid sequence: %q", pattern)
		}
	}

	if strings.HasPrefix(key, "/") || strings.HasSuffix(key, "/") {
		return New(ErrCodeInvalidInput, "key cannot start or end with a slash")
	}

	return nil
}

// ValidateUser validates a user identifier used to namespace store keys.
// Users become the first path segment of every key, so the same traversal
// rules apply, plus a slash prohibition.
func ValidateUser(user string) error {
	if user == "" {
		return New(ErrCodeInvalidInput, "user cannot be empty")
	}
	if strings.ContainsAny(user, "/\\") {
		return New(ErrCodeInvalidInput, "user cannot contain slashes")
	}
	return ValidateKey(user)
}
