package bundle

import (
	"crypto/sha1"
	"encoding/hex"
	"io"
	"os"
	"path/filepath"

	"github.com/epfml/codepack/pkg/errors"
)

// HashFiles computes a single SHA-1 digest over the raw contents of the
// given files, fed to the hash in sequence order. Paths are relative to
// root and must come from SelectFiles so that hashing order matches
// archive order.
//
// Only contents are hashed, never paths, so renaming a file without
// changing its bytes or its position in the sequence leaves the digest
// unchanged. Entries that are not regular files (or that vanished since
// selection) are silently skipped. The result is a 40-character lowercase
// hex string, identical across machines, timezones and file timestamps.
func HashFiles(root string, files []string) (string, error) {
	h := sha1.New()
	for _, rel := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))

		info, err := os.Stat(path)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}

		f, err := os.Open(path)
		if err != nil {
			return "", errors.Wrap(errors.ErrCodeIO, err, "open %s", rel)
		}
		_, err = io.Copy(h, f)
		f.Close()
		if err != nil {
			return "", errors.Wrap(errors.ErrCodeIO, err, "read %s", rel)
		}
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
