// Package iotesting provides shared test utilities for tests that touch
// the file system. This is an internal package for test infrastructure only.
package iotesting

import (
	"os"
	"path/filepath"
	"testing"
)

// CatalogText is a small habitat catalog with one synonym, two habitat
// groups and two matrix species.
//
// Group1 has the maximum frequency 12, Group2 has 8.
const CatalogText = `SECTION 1: Species aggregation (synonyms)
Fagus sylvatica - 2
   Fagus sylvatica 12
   Fagus silvatica 4
SECTION 2: Groups
SECTION 4: Similarity of groups
Group1 name: LES05.1a - Bukové lesy
Group2 name: TRB01a Suché travinno-bylinné porasty
Fagus sylvatica
  Group1: 10
  Total: 10
Carex humilis
  Group1: 2
  Group2: 8
  Total: 10
SECTION 3: End
`

// SetupTempHome creates a temporary home directory for a test and points
// the HOME environment variable to it. The directory is removed and HOME
// is restored when the test finishes.
//
// This prevents tests from touching config, cache and log files in the
// real ~/.config/biotope, ~/.cache/biotope and ~/.local/share/biotope.
//
// Usage:
//
//	func TestSomething(t *testing.T) {
//	    home := iotesting.SetupTempHome(t)
//	    catPath := iotesting.WriteFile(t, home, "catalog.txt", iotesting.CatalogText)
//	    // ...
//	}
func SetupTempHome(t *testing.T) string {
	t.Helper()

	home := t.TempDir()
	t.Setenv("HOME", home)
	return home
}

// WriteFile writes content to a file in the given directory and returns
// the path of the file.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	err := os.WriteFile(path, []byte(content), 0644)
	if err != nil {
		t.Fatalf("Failed to write %s: %v", path, err)
	}
	return path
}
