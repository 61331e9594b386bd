package bundle

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestPackageID(t *testing.T) {
	date := time.Date(2024, 3, 5, 12, 0, 0, 0, time.UTC)

	id := PackageID("alice", "proj", date, "0f00ba4deadbeef12")
	if id != "alice_proj_20240305_adbeef12" {
		t.Errorf("id = %q, want alice_proj_20240305_adbeef12", id)
	}
}

func TestPackageIDShortHash(t *testing.T) {
	date := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)

	if id := PackageID("bob", "x", date, "abc"); id != "bob_x_20240305_abc" {
		t.Errorf("id = %q, want hashes shorter than 8 chars used whole", id)
	}
}

func TestUsernamePrecedence(t *testing.T) {
	t.Setenv("CODEPACK_USER", "carol")
	t.Setenv("USER", "dave")
	if u := Username(); u != "carol" {
		t.Errorf("Username() = %q, want CODEPACK_USER first", u)
	}

	t.Setenv("CODEPACK_USER", "")
	if u := Username(); u != "dave" {
		t.Errorf("Username() = %q, want USER fallback", u)
	}

	t.Setenv("USER", "")
	if u := Username(); u != "unknown" {
		t.Errorf("Username() = %q, want unknown fallback", u)
	}
}

func TestBuildEndToEnd(t *testing.T) {
	root := filepath.Join(t.TempDir(), "myproj")
	if err := os.MkdirAll(root, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	writeTree(t, root, map[string]string{
		"main.py":      "print('hi')",
		"lib/util.py":  "pass",
		"lib/util.pyc": "compiled",
	})

	now := time.Date(2024, 3, 5, 16, 30, 0, 0, time.UTC)
	policy, err := LoadPolicy(root)
	if err != nil {
		t.Fatalf("LoadPolicy: %v", err)
	}
	pkg, err := BuildWithPolicy(root, policy, BuildOptions{User: "alice", Now: now})
	if err != nil {
		t.Fatalf("BuildWithPolicy: %v", err)
	}

	if !strings.HasPrefix(pkg.ID, "alice_myproj_20240305_") {
		t.Errorf("ID = %q, want alice_myproj_20240305_ prefix", pkg.ID)
	}
	suffix := strings.TrimPrefix(pkg.ID, "alice_myproj_20240305_")
	if len(suffix) != 8 {
		t.Errorf("hash suffix = %q, want 8 hex chars", suffix)
	}

	dest := t.TempDir()
	if err := Unpack(pkg.Contents, dest); err != nil {
		t.Fatalf("Unpack: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dest, "main.py")); err != nil {
		t.Errorf("main.py missing after round trip: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dest, "lib", "util.pyc")); !os.IsNotExist(err) {
		t.Error("excluded file leaked into the package")
	}
}

func TestBuildIdempotentID(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"f.txt": "stable"})

	now := time.Date(2024, 3, 5, 9, 0, 0, 0, time.UTC)
	opts := BuildOptions{User: "alice", Now: now}

	first, err := BuildWithPolicy(root, DefaultPolicy(), opts)
	if err != nil {
		t.Fatalf("first build: %v", err)
	}
	second, err := BuildWithPolicy(root, DefaultPolicy(), opts)
	if err != nil {
		t.Fatalf("second build: %v", err)
	}

	if first.ID != second.ID {
		t.Errorf("same content, user and day must yield the same ID: %q vs %q", first.ID, second.ID)
	}
}

func TestBuildAbortsWholesale(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"huge.bin": strings.Repeat("x", 100)})

	policy := DefaultPolicy()
	policy.MaxFileSize = 10

	pkg, err := BuildWithPolicy(root, policy, BuildOptions{})
	if err == nil {
		t.Fatal("expected build failure")
	}
	if pkg != nil {
		t.Error("no partial package may be returned on failure")
	}
}

func TestBuildSelectsPolicyFileItself(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"f.txt": "data"})
	writePolicy(t, root, "max_file_size = 100000\n")

	pkg, err := Build(root)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	dest := t.TempDir()
	if err := Unpack(pkg.Contents, dest); err != nil {
		t.Fatalf("Unpack: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dest, PolicyFileName)); err != nil {
		t.Errorf("the policy file travels with the package: %v", err)
	}
}
