package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// LocalStore serves uploads from a directory on disk.
type LocalStore struct {
	root string
}

func NewLocalStore(root string) (*LocalStore, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve uploads root: %w", err)
	}
	return &LocalStore{root: abs}, nil
}

// Resolve joins relPath to the root. Paths that would escape the root
// resolve to ErrObjectMissing.
func (s *LocalStore) Resolve(relPath string) (string, error) {
	full := filepath.Join(s.root, filepath.FromSlash(relPath))
	rel, err := filepath.Rel(s.root, full)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return full, fmt.Errorf("%w: %s escapes uploads root", ErrObjectMissing, relPath)
	}
	return full, nil
}

func (s *LocalStore) Location(relPath string) string {
	full, _ := s.Resolve(relPath)
	return full
}

func (s *LocalStore) Open(_ context.Context, relPath string) (*Object, error) {
	full, err := s.Resolve(relPath)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(full)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrObjectMissing, full)
		}
		return nil, fmt.Errorf("open %s: %w", full, err)
	}

	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("stat %s: %w", full, err)
	}
	if info.IsDir() {
		_ = f.Close()
		return nil, fmt.Errorf("%w: %s is a directory", ErrObjectMissing, full)
	}

	return &Object{Body: f, Size: info.Size(), Location: full}, nil
}

func (s *LocalStore) Exists(_ context.Context, relPath string) (bool, error) {
	full, err := s.Resolve(relPath)
	if err != nil {
		return false, nil
	}
	info, err := os.Stat(full)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("stat %s: %w", full, err)
	}
	return !info.IsDir(), nil
}
