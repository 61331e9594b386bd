package bundle

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/epfml/codepack/pkg/errors"
)

func writePolicy(t *testing.T, dir, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, PolicyFileName), []byte(content), 0o644); err != nil {
		t.Fatalf("write policy: %v", err)
	}
}

func TestLoadPolicyMissingFile(t *testing.T) {
	dir := t.TempDir()

	policy, err := LoadPolicy(dir)
	if err != nil {
		t.Fatalf("LoadPolicy: %v", err)
	}

	want := DefaultPolicy()
	if !reflect.DeepEqual(policy, want) {
		t.Errorf("policy = %+v, want defaults %+v", policy, want)
	}
}

func TestLoadPolicyPartialOverride(t *testing.T) {
	dir := t.TempDir()
	writePolicy(t, dir, "max_file_size = 5000\n")

	policy, err := LoadPolicy(dir)
	if err != nil {
		t.Fatalf("LoadPolicy: %v", err)
	}

	if policy.MaxFileSize != 5000 {
		t.Errorf("MaxFileSize = %d, want 5000", policy.MaxFileSize)
	}
	// Per-key merge: absent keys keep their defaults.
	if !reflect.DeepEqual(policy.Exclude, DefaultPolicy().Exclude) {
		t.Errorf("Exclude = %v, want defaults", policy.Exclude)
	}
	if len(policy.Include) != 0 {
		t.Errorf("Include = %v, want empty", policy.Include)
	}
}

func TestLoadPolicyReplacesListsWholesale(t *testing.T) {
	dir := t.TempDir()
	writePolicy(t, dir, "exclude = [\"*.tmp\"]\ninclude = [\"big.bin\"]\n")

	policy, err := LoadPolicy(dir)
	if err != nil {
		t.Fatalf("LoadPolicy: %v", err)
	}

	if !reflect.DeepEqual(policy.Exclude, []string{"*.tmp"}) {
		t.Errorf("Exclude = %v, want full replacement", policy.Exclude)
	}
	if !reflect.DeepEqual(policy.Include, []string{"big.bin"}) {
		t.Errorf("Include = %v, want full replacement", policy.Include)
	}
	if policy.MaxFileSize != DefaultMaxFileSize {
		t.Errorf("MaxFileSize = %d, want default", policy.MaxFileSize)
	}
}

func TestLoadPolicyEmptyListsAreRespected(t *testing.T) {
	dir := t.TempDir()
	writePolicy(t, dir, "exclude = []\n")

	policy, err := LoadPolicy(dir)
	if err != nil {
		t.Fatalf("LoadPolicy: %v", err)
	}
	if len(policy.Exclude) != 0 {
		t.Errorf("an explicit empty exclude list should clear the defaults, got %v", policy.Exclude)
	}
}

func TestLoadPolicyMalformed(t *testing.T) {
	dir := t.TempDir()
	writePolicy(t, dir, "exclude = [unclosed\n")

	_, err := LoadPolicy(dir)
	if !errors.Is(err, errors.ErrCodeConfigInvalid) {
		t.Errorf("error = %v, want CONFIG_INVALID", err)
	}
}

func TestLoadPolicyNegativeSize(t *testing.T) {
	dir := t.TempDir()
	writePolicy(t, dir, "max_file_size = -1\n")

	_, err := LoadPolicy(dir)
	if !errors.Is(err, errors.ErrCodeConfigInvalid) {
		t.Errorf("error = %v, want CONFIG_INVALID", err)
	}
}

func TestDefaultPolicyIsACopy(t *testing.T) {
	p := DefaultPolicy()
	p.Exclude[0] = "mutated"

	if DefaultPolicy().Exclude[0] == "mutated" {
		t.Error("DefaultPolicy must not expose shared backing arrays")
	}
}
