package testsupport

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"
)

// LoadFixture reads path, failing the test when it cannot.
func LoadFixture(t testing.TB, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("load fixture %s: %v", path, err)
	}
	return data
}

// FixtureFS copies every regular file below dir into a MapFS keyed by its
// slash separated path relative to dir.
func FixtureFS(t testing.TB, dir string) fstest.MapFS {
	t.Helper()
	out := fstest.MapFS{}
	err := filepath.WalkDir(dir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil || entry.IsDir() {
			return err
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		out[filepath.ToSlash(rel)] = &fstest.MapFile{Data: LoadFixture(t, path)}
		return nil
	})
	if err != nil {
		t.Fatalf("load fixtures from %s: %v", dir, err)
	}
	return out
}
