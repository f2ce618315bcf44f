// Package testutil provides helpers for building in-memory filesystem
// fixtures in tests.
package testutil

import (
	"testing"
	"time"

	"github.com/spf13/afero"
)

// NewFs returns an empty in-memory filesystem.
func NewFs() afero.Fs {
	return afero.NewMemMapFs()
}

// MustMkdirAll creates a directory tree, failing the test on error.
func MustMkdirAll(t *testing.T, fs afero.Fs, path string) {
	t.Helper()
	if err := fs.MkdirAll(path, 0755); err != nil {
		t.Fatalf("MkdirAll(%q): %v", path, err)
	}
}

// MustWriteFile creates a file with the given content, creating parent
// directories as needed, failing the test on error.
func MustWriteFile(t *testing.T, fs afero.Fs, path, content string) {
	t.Helper()
	if err := afero.WriteFile(fs, path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile(%q): %v", path, err)
	}
}

// MustWriteFileSized creates a file of the given size filled with zero
// bytes, failing the test on error.
func MustWriteFileSized(t *testing.T, fs afero.Fs, path string, size int64) {
	t.Helper()
	if err := afero.WriteFile(fs, path, make([]byte, size), 0644); err != nil {
		t.Fatalf("WriteFile(%q): %v", path, err)
	}
}

// MustChtimes sets a file's modification time, failing the test on error.
func MustChtimes(t *testing.T, fs afero.Fs, path string, mtime time.Time) {
	t.Helper()
	if err := fs.Chtimes(path, mtime, mtime); err != nil {
		t.Fatalf("Chtimes(%q): %v", path, err)
	}
}
