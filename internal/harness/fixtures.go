// Package harness holds the test-side collaborators of the vim driver:
// fixture lookup, scratch files, executable links and a managed server.
package harness

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/bmatcuk/doublestar/v4"
)

// FixturesDir is where fixtures live relative to the calling test file.
const FixturesDir = "testdata/fixtures"

// Fixtures resolves fixture names to absolute paths under one directory.
type Fixtures struct {
	Dir string
}

// NewFixtures roots fixture lookup at dir.
func NewFixtures(dir string) (Fixtures, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return Fixtures{}, fmt.Errorf("fixtures dir %s: %w", dir, err)
	}
	return Fixtures{Dir: abs}, nil
}

// CallerFixtures roots fixture lookup at testdata/fixtures next to the
// source file of the caller, independent of the working directory.
func CallerFixtures() Fixtures {
	_, file, _, ok := runtime.Caller(1)
	if !ok {
		f, _ := NewFixtures(FixturesDir)
		return f
	}
	return Fixtures{Dir: filepath.Join(filepath.Dir(file), FixturesDir)}
}

// Path returns the absolute path of fixture name.
func (f Fixtures) Path(name string) string {
	return filepath.Join(f.Dir, name)
}

// Glob returns the absolute paths of fixtures matching pattern, which may
// use ** to descend into subdirectories.
func (f Fixtures) Glob(pattern string) ([]string, error) {
	matches, err := doublestar.Glob(os.DirFS(f.Dir), pattern)
	if err != nil {
		return nil, fmt.Errorf("glob %q in %s: %w", pattern, f.Dir, err)
	}
	for i, m := range matches {
		matches[i] = filepath.Join(f.Dir, filepath.FromSlash(m))
	}
	return matches, nil
}
