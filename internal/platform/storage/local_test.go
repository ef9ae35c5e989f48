package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSecureName(t *testing.T) {
	assert.Equal(t, "EMP0007", SecureName("EMP0007"))
	assert.Equal(t, "passwd", SecureName("../../etc/passwd"))
	assert.Equal(t, "Salary_Slip_january.pdf", SecureName("Salary_Slip_january.pdf"))
	assert.Equal(t, "Salary_Slip_sept_2024.pdf", SecureName("Salary_Slip_sept 2024.pdf"))
	assert.Equal(t, "", SecureName(".."))
}

func TestSaveListOpen(t *testing.T) {
	ctx := context.Background()
	base := t.TempDir()
	s, err := NewLocalStorage(base)
	require.NoError(t, err)

	rel, err := s.Save(ctx, "EMP0007", "offer_letter_20240101_101010.pdf", []byte("%PDF"))
	require.NoError(t, err)
	assert.Equal(t, "employee_documents/EMP0007/offer_letter_20240101_101010.pdf", rel)

	_, err = s.Save(ctx, "EMP0007", "Salary_Slip_january.pdf", []byte("%PDF"))
	require.NoError(t, err)
	_, err = s.Save(ctx, "../../escape", "x.pdf", []byte("x"))
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(base, "employee_documents", "escape", "x.pdf"))
	assert.NoError(t, err, "traversal collapses into a single directory")

	listing, err := s.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Salary_Slip_january.pdf", "offer_letter_20240101_101010.pdf"}, listing["EMP0007"])
	assert.Equal(t, []string{"x.pdf"}, listing["escape"])

	rc, err := s.Open(ctx, "EMP0007", "Salary_Slip_january.pdf")
	require.NoError(t, err)
	body, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	assert.Equal(t, "%PDF", string(body))

	_, err = s.Open(ctx, "EMP0007", "missing.pdf")
	assert.ErrorIs(t, err, ErrFileNotFound)
	_, err = s.Open(ctx, "EMP0007", "../secret.pdf")
	assert.ErrorIs(t, err, ErrInvalidPath)
}

func TestSaveRejectsEmptyName(t *testing.T) {
	s, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	_, err = s.Save(context.Background(), "EMP0001", "..", []byte("x"))
	assert.ErrorIs(t, err, ErrInvalidPath)
}

func TestPruneRemovesOldFiles(t *testing.T) {
	ctx := context.Background()
	base := t.TempDir()
	s, err := NewLocalStorage(base)
	require.NoError(t, err)

	oldPath, err := s.Save(ctx, "EMP0001", "old.pdf", []byte("x"))
	require.NoError(t, err)
	_, err = s.Save(ctx, "EMP0002", "new.pdf", []byte("x"))
	require.NoError(t, err)

	past := time.Now().Add(-48 * time.Hour)
	require.NoError(t, os.Chtimes(filepath.Join(base, filepath.FromSlash(oldPath)), past, past))

	deleted, err := s.Prune(ctx, time.Now().Add(-24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 1, deleted)

	listing, err := s.List(ctx)
	require.NoError(t, err)
	_, ok := listing["EMP0001"]
	assert.False(t, ok, "empty employee directory is removed")
	assert.Equal(t, []string{"new.pdf"}, listing["EMP0002"])
}
