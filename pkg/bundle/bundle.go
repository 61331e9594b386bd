package bundle

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Package is a finished build: compressed archive bytes plus the derived
// identifier. It is immutable and holds no reference to the original
// directory.
type Package struct {
	ID       string
	Contents []byte
}

// BuildOptions tweak identity derivation. The zero value is ready to use.
type BuildOptions struct {
	// User overrides the environment-derived username in the package ID.
	User string
	// Now overrides the build timestamp used for the date component.
	Now time.Time
}

// Build packages the directory at root using the policy resolved from its
// optional .codepack.toml. It is shorthand for LoadPolicy followed by
// BuildWithPolicy with default options.
func Build(root string) (*Package, error) {
	policy, err := LoadPolicy(root)
	if err != nil {
		return nil, err
	}
	return BuildWithPolicy(root, policy, BuildOptions{})
}

// BuildWithPolicy runs the full packaging pipeline over root: selection,
// hashing and archiving happen sequentially over the same ordered file
// list, so the hash always describes exactly the archive contents. Any
// error aborts the build; no partial package is returned.
func BuildWithPolicy(root string, policy Policy, opts BuildOptions) (*Package, error) {
	files, err := SelectFiles(root, policy)
	if err != nil {
		return nil, err
	}

	hash, err := HashFiles(root, files)
	if err != nil {
		return nil, err
	}

	contents, err := Pack(root, files)
	if err != nil {
		return nil, err
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		abs = root
	}

	user := opts.User
	if user == "" {
		user = Username()
	}
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}

	return &Package{
		ID:       PackageID(user, filepath.Base(abs), now, hash),
		Contents: contents,
	}, nil
}

// PackageID composes the human-readable package identifier:
// {user}_{basename}_{YYYYMMDD}_{last 8 hex chars of hash}. Hashes shorter
// than 8 characters are used whole. The date granularity plus the hash
// suffix make identical content by the same user on the same day collide
// deliberately, giving idempotent naming.
func PackageID(user, basename string, date time.Time, hash string) string {
	suffix := hash
	if len(suffix) > 8 {
		suffix = suffix[len(suffix)-8:]
	}
	return fmt.Sprintf("%s_%s_%s_%s", user, basename, date.Format("20060102"), suffix)
}

// Username returns the identity used in package IDs and store namespaces:
// CODEPACK_USER if set, then USER, then "unknown".
func Username() string {
	if u := os.Getenv("CODEPACK_USER"); u != "" {
		return u
	}
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return "unknown"
}
