package db

import (
	"slices"
	"testing"
	"testing/fstest"
)

func TestPendingCandidatesOrder(t *testing.T) {
	migrations := fstest.MapFS{
		"0002_second.sql":  {Data: []byte("SELECT 2")},
		"0001_first.sql":   {Data: []byte("SELECT 1")},
		"README.md":        {Data: []byte("notes")},
		"old/0000_old.sql": {Data: []byte("SELECT 0")},
	}
	files, err := PendingCandidates(migrations)
	if err != nil {
		t.Fatalf("pending candidates: %v", err)
	}
	want := []string{"0001_first.sql", "0002_second.sql"}
	if !slices.Equal(files, want) {
		t.Fatalf("expected %v, got %v", want, files)
	}
}

func TestRepositoryMigrationsParse(t *testing.T) {
	files, err := PendingCandidates(osDir(t, "../../migrations"))
	if err != nil {
		t.Fatalf("pending candidates: %v", err)
	}
	if !slices.Contains(files, "0001_employees.sql") {
		t.Fatalf("expected employees migration, got %v", files)
	}
}
