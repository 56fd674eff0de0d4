package output

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "assets", "nested", "contributions.svg")

	if err := WriteFile(p, []byte("<svg/>")); err != nil {
		t.Fatalf("WriteFile returned error: %v", err)
	}
	if err := WriteFile(p, []byte("<svg></svg>")); err != nil {
		t.Fatalf("WriteFile returned error on overwrite: %v", err)
	}

	b, err := os.ReadFile(p)
	if err != nil {
		t.Fatalf("failed to read output: %v", err)
	}
	if string(b) != "<svg></svg>" {
		t.Fatalf("unexpected content %q", b)
	}

	entries, err := os.ReadDir(filepath.Dir(p))
	if err != nil {
		t.Fatalf("failed to list directory: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected only the output file, found %d entries", len(entries))
	}

	info, err := os.Stat(p)
	if err != nil {
		t.Fatalf("failed to stat output: %v", err)
	}
	if info.Mode().Perm() != 0644 {
		t.Fatalf("unexpected permissions %v", info.Mode().Perm())
	}
}

func TestWriteFileParentIsFile(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "assets")
	if err := os.WriteFile(blocker, []byte("x"), 0600); err != nil {
		t.Fatalf("failed to create blocker: %v", err)
	}

	err := WriteFile(filepath.Join(blocker, "contributions.svg"), []byte("<svg/>"))
	if !errors.Is(err, ErrWrite) {
		t.Fatalf("expected ErrWrite, got %v", err)
	}
}

func TestWriteFileTargetIsDirectory(t *testing.T) {
	p := filepath.Join(t.TempDir(), "contributions.svg")
	if err := os.Mkdir(p, 0755); err != nil {
		t.Fatalf("failed to create directory: %v", err)
	}

	if err := WriteFile(p, []byte("<svg/>")); !errors.Is(err, ErrWrite) {
		t.Fatalf("expected ErrWrite, got %v", err)
	}

	entries, err := os.ReadDir(filepath.Dir(p))
	if err != nil {
		t.Fatalf("failed to list directory: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("a failed write left %d entries behind", len(entries))
	}
}
