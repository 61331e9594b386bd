package bundle

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/epfml/codepack/pkg/errors"
)

// PolicyFileName is the optional per-directory policy file.
const PolicyFileName = ".codepack.toml"

// DefaultMaxFileSize is the size threshold above which a file must be
// explicitly included or excluded (bytes).
const DefaultMaxFileSize int64 = 100_000

// defaultExclude lists VCS metadata, caches, compiled artifacts and OS
// cruft that never belong in a package.
var defaultExclude = []string{
	"__pycache__",
	"._*",
	".AppleDouble",
	".git",
	".gitignore",
	".ipynb_checkpoints",
	".pylintrc",
	".vscode",
	"*.exr",
	"*.pyc",
	"core",
}

// Policy is the resolved ruleset governing file selection.
// Exclude and Include are independently evaluated gitignore-style pattern
// lists; Include acts as an allow-list that bypasses both exclusion and
// the size limit.
type Policy struct {
	Exclude     []string
	Include     []string
	MaxFileSize int64
}

// DefaultPolicy returns the built-in policy. The returned slices are
// copies; callers may modify them freely.
func DefaultPolicy() Policy {
	exclude := make([]string, len(defaultExclude))
	copy(exclude, defaultExclude)
	return Policy{
		Exclude:     exclude,
		Include:     []string{},
		MaxFileSize: DefaultMaxFileSize,
	}
}

// policyFile mirrors the TOML document. Pointer fields distinguish
// "absent" from "present but empty" so that merging is per-key.
type policyFile struct {
	Exclude     *[]string `toml:"exclude"`
	Include     *[]string `toml:"include"`
	MaxFileSize *int64    `toml:"max_file_size"`
}

// LoadPolicy resolves the effective policy for root: built-in defaults
// merged with the optional .codepack.toml in root. A key present in the
// file replaces the default value for that key wholesale; keys left out
// keep their defaults. A missing file is not an error. A file that cannot
// be parsed yields a CONFIG_INVALID error.
func LoadPolicy(root string) (Policy, error) {
	policy := DefaultPolicy()

	path := filepath.Join(root, PolicyFileName)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return policy, nil
	}
	if err != nil {
		return Policy{}, errors.Wrap(errors.ErrCodeIO, err, "read %s", path)
	}

	var file policyFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return Policy{}, errors.Wrap(errors.ErrCodeConfigInvalid, err, "parse %s", path)
	}

	if file.Exclude != nil {
		policy.Exclude = *file.Exclude
	}
	if file.Include != nil {
		policy.Include = *file.Include
	}
	if file.MaxFileSize != nil {
		if *file.MaxFileSize < 0 {
			return Policy{}, errors.New(errors.ErrCodeConfigInvalid, "max_file_size cannot be negative in %s", path)
		}
		policy.MaxFileSize = *file.MaxFileSize
	}

	return policy, nil
}
