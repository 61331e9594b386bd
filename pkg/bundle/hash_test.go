package bundle

import (
	"os"
	"path/filepath"
	"testing"
)

func TestHashFilesDeterministic(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"a.txt": "alpha",
		"b.txt": "beta",
	})

	first, err := HashFiles(root, []string{"a.txt", "b.txt"})
	if err != nil {
		t.Fatalf("HashFiles: %v", err)
	}
	second, err := HashFiles(root, []string{"a.txt", "b.txt"})
	if err != nil {
		t.Fatalf("HashFiles: %v", err)
	}

	if first != second {
		t.Errorf("hash not deterministic: %s vs %s", first, second)
	}
	if len(first) != 40 {
		t.Errorf("hash length = %d, want 40 hex chars", len(first))
	}
}

func TestHashFilesIgnoresPaths(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"original.txt": "same bytes",
	})

	before, err := HashFiles(root, []string{"original.txt"})
	if err != nil {
		t.Fatalf("HashFiles: %v", err)
	}

	if err := os.Rename(filepath.Join(root, "original.txt"), filepath.Join(root, "renamed.txt")); err != nil {
		t.Fatalf("rename: %v", err)
	}

	after, err := HashFiles(root, []string{"renamed.txt"})
	if err != nil {
		t.Fatalf("HashFiles: %v", err)
	}

	if before != after {
		t.Error("renaming a file without changing bytes must not change the hash")
	}
}

func TestHashFilesContentSensitive(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"f.txt": "content-A"})

	before, err := HashFiles(root, []string{"f.txt"})
	if err != nil {
		t.Fatalf("HashFiles: %v", err)
	}

	writeTree(t, root, map[string]string{"f.txt": "content-B"})
	after, err := HashFiles(root, []string{"f.txt"})
	if err != nil {
		t.Fatalf("HashFiles: %v", err)
	}

	if before == after {
		t.Error("changing one byte of one file must change the hash")
	}
}

func TestHashFilesOrderSensitive(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"a.txt": "alpha",
		"b.txt": "beta",
	})

	forward, err := HashFiles(root, []string{"a.txt", "b.txt"})
	if err != nil {
		t.Fatalf("HashFiles: %v", err)
	}
	reverse, err := HashFiles(root, []string{"b.txt", "a.txt"})
	if err != nil {
		t.Fatalf("HashFiles: %v", err)
	}

	if forward == reverse {
		t.Error("the hash must depend on sequence order")
	}
}

func TestHashFilesSkipsNonRegular(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"real.txt": "data"})

	baseline, err := HashFiles(root, []string{"real.txt"})
	if err != nil {
		t.Fatalf("HashFiles: %v", err)
	}

	// Vanished entries and directories are skipped, not errors.
	withGhosts, err := HashFiles(root, []string{"missing.txt", "real.txt", "."})
	if err != nil {
		t.Fatalf("HashFiles with ghosts: %v", err)
	}

	if baseline != withGhosts {
		t.Error("non-regular entries must be silently skipped")
	}
}
