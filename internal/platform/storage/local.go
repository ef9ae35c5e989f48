package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"
)

const employeeDocumentsDir = "employee_documents"

var (
	ErrInvalidPath  = errors.New("invalid file path")
	ErrFileNotFound = errors.New("file not found")

	unsafeNameRe = regexp.MustCompile(`[^A-Za-z0-9_.-]+`)
)

// LocalStorage writes generated documents under
// <base>/employee_documents/<employeeID>/.
type LocalStorage struct {
	basePath string
}

func NewLocalStorage(basePath string) (*LocalStorage, error) {
	abs, err := filepath.Abs(basePath)
	if err != nil {
		return nil, fmt.Errorf("resolve storage path: %w", err)
	}
	if err := os.MkdirAll(filepath.Join(abs, employeeDocumentsDir), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &LocalStorage{basePath: abs}, nil
}

// SecureName reduces a name to a safe single path component.
func SecureName(name string) string {
	name = strings.TrimSpace(filepath.Base(filepath.ToSlash(name)))
	name = strings.ReplaceAll(name, " ", "_")
	name = unsafeNameRe.ReplaceAllString(name, "")
	name = strings.Trim(name, "._")
	return name
}

func (s *LocalStorage) employeeDir(employeeID string) (string, error) {
	safe := SecureName(employeeID)
	if safe == "" {
		safe = "unknown"
	}
	dir := filepath.Join(s.basePath, employeeDocumentsDir, safe)
	if !strings.HasPrefix(dir, s.basePath+string(os.PathSeparator)) {
		return "", fmt.Errorf("%w: %s", ErrInvalidPath, employeeID)
	}
	return dir, nil
}

// Save writes data and returns the path relative to the storage root.
func (s *LocalStorage) Save(ctx context.Context, employeeID, name string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	dir, err := s.employeeDir(employeeID)
	if err != nil {
		return "", err
	}
	fileName := SecureName(name)
	if fileName == "" {
		return "", fmt.Errorf("%w: %q", ErrInvalidPath, name)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}
	full := filepath.Join(dir, fileName)
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}
	rel, err := filepath.Rel(s.basePath, full)
	if err != nil {
		return "", err
	}
	return filepath.ToSlash(rel), nil
}

// List maps each employee directory to its file names, both sorted.
func (s *LocalStorage) List(ctx context.Context) (map[string][]string, error) {
	root := filepath.Join(s.basePath, employeeDocumentsDir)
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, err
	}
	out := make(map[string][]string, len(entries))
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !entry.IsDir() {
			continue
		}
		files, err := os.ReadDir(filepath.Join(root, entry.Name()))
		if err != nil {
			return nil, err
		}
		names := make([]string, 0, len(files))
		for _, f := range files {
			if !f.IsDir() {
				names = append(names, f.Name())
			}
		}
		sort.Strings(names)
		out[entry.Name()] = names
	}
	return out, nil
}

// Open returns a stored file for download.
func (s *LocalStorage) Open(ctx context.Context, employeeID, name string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	dir, err := s.employeeDir(employeeID)
	if err != nil {
		return nil, err
	}
	fileName := SecureName(name)
	if fileName == "" || fileName != name {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPath, name)
	}
	f, err := os.Open(filepath.Join(dir, fileName))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, name)
		}
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	return f, nil
}

// Prune deletes generated files last modified before cutoff and removes
// employee directories left empty.
func (s *LocalStorage) Prune(ctx context.Context, cutoff time.Time) (int, error) {
	root := filepath.Join(s.basePath, employeeDocumentsDir)
	dirs, err := os.ReadDir(root)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, err
	}
	deleted := 0
	for _, dir := range dirs {
		if !dir.IsDir() {
			continue
		}
		dirPath := filepath.Join(root, dir.Name())
		files, err := os.ReadDir(dirPath)
		if err != nil {
			return deleted, err
		}
		remaining := len(files)
		for _, f := range files {
			if err := ctx.Err(); err != nil {
				return deleted, err
			}
			info, err := f.Info()
			if err != nil || f.IsDir() || !info.ModTime().Before(cutoff) {
				continue
			}
			if err := os.Remove(filepath.Join(dirPath, f.Name())); err != nil {
				return deleted, fmt.Errorf("failed to remove file: %w", err)
			}
			deleted++
			remaining--
		}
		if remaining == 0 {
			_ = os.Remove(dirPath)
		}
	}
	return deleted, nil
}
