// Package testutil holds helpers shared by package tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// WriteTemp writes data to name inside a per-test temporary directory and
// returns the full path. The directory is removed when the test ends.
//
// Example:
//
//	path := testutil.WriteTemp(t, "map.dat", dfbuild.MustBytes(t, f))
//	df, err := datafile.Open(path, types.OpenOptions{})
func WriteTemp(t testing.TB, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}
