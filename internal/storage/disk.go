package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Store persists uploaded binaries.
type Store interface {
	// Save writes src under the given stored name and returns the resulting path.
	Save(src io.Reader, filename string) (string, error)
	// Remove deletes a previously saved binary.
	Remove(path string) error
}

// DiskStore keeps binaries in a flat directory on local disk. The same
// directory is served statically under /uploads.
type DiskStore struct {
	dir string
}

// NewDiskStore builds a disk-backed store rooted at dir.
func NewDiskStore(dir string) *DiskStore {
	return &DiskStore{dir: dir}
}

func (s *DiskStore) Save(src io.Reader, filename string) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	path := filepath.Join(s.dir, filename)
	dst, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("write file: %w", err)
	}
	return path, nil
}

func (s *DiskStore) Remove(path string) error {
	return os.Remove(path)
}
