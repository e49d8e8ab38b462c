package harness

import (
	"os"
	"path/filepath"
	"testing"
)

type fileOptions struct {
	name     string
	contents string
	dir      string
}

// FileOption configures TempFile.
type FileOption func(*fileOptions)

// Named sets the file name. Defaults to "vimrc".
func Named(name string) FileOption {
	return func(o *fileOptions) { o.name = name }
}

// Contents sets the file contents. Defaults to empty.
func Contents(s string) FileOption {
	return func(o *fileOptions) { o.contents = s }
}

// InDir writes the file into dir instead of the test's temp dir.
func InDir(dir string) FileOption {
	return func(o *fileOptions) { o.dir = dir }
}

// TempFile writes a file for the duration of the test and returns its
// absolute path. Files in the test's temp dir are removed with it.
func TempFile(t testing.TB, opts ...FileOption) string {
	t.Helper()

	o := fileOptions{name: "vimrc"}
	for _, opt := range opts {
		opt(&o)
	}
	if o.dir == "" {
		o.dir = t.TempDir()
	}

	path, err := filepath.Abs(filepath.Join(o.dir, o.name))
	if err != nil {
		t.Fatalf("harness: temp file: %v", err)
	}
	if err := os.WriteFile(path, []byte(o.contents), 0o644); err != nil {
		t.Fatalf("harness: temp file: %v", err)
	}
	return path
}

// Symlink links link to target unless link already exists, and removes
// link when the test ends. A link that is already gone at cleanup is
// reported as a test error.
func Symlink(t testing.TB, target, link string) string {
	t.Helper()

	if _, err := os.Lstat(link); os.IsNotExist(err) {
		if err := os.Symlink(target, link); err != nil {
			t.Fatalf("harness: symlink: %v", err)
		}
	}
	t.Cleanup(func() {
		if err := os.Remove(link); err != nil {
			t.Errorf("harness: remove %s: %v", link, err)
		}
	})
	return link
}
