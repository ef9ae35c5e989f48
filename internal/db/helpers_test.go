package db

import (
	"io/fs"
	"os"
	"testing"
)

func osDir(t *testing.T, path string) fs.FS {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Skipf("migrations dir not available: %v", err)
	}
	return os.DirFS(path)
}
