// Package filestore persists attachment files on the local filesystem.
// Stored names are generated server-side; the client file name only survives
// in the attachment metadata row.
package filestore

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Store writes and removes attachment files under a single base directory.
type Store struct {
	baseDir string
}

// New creates a file store rooted at baseDir, creating it if needed.
func New(baseDir string) (*Store, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir %s: %w", baseDir, err)
	}
	return &Store{baseDir: baseDir}, nil
}

// Save streams src into a new file named <uuid><ext> and returns the path
// relative to the base directory. The extension is taken from originalName.
func (s *Store) Save(src io.Reader, originalName string) (string, int64, error) {
	name := uuid.New().String() + filepath.Ext(originalName)
	fullPath := filepath.Join(s.baseDir, name)

	dst, err := os.OpenFile(fullPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", 0, fmt.Errorf("create file %s: %w", name, err)
	}

	written, err := io.Copy(dst, src)
	if cerr := dst.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(fullPath)
		return "", 0, fmt.Errorf("write file %s: %w", name, err)
	}

	return name, written, nil
}

// Open returns a reader for a stored file.
func (s *Store) Open(path string) (io.ReadCloser, error) {
	f, err := os.Open(filepath.Join(s.baseDir, filepath.Clean(path)))
	if err != nil {
		return nil, fmt.Errorf("open file %s: %w", path, err)
	}
	return f, nil
}

// Remove deletes a stored file. A missing file is not an error: the metadata
// row is the source of truth and the physical file may already be gone.
func (s *Store) Remove(path string) error {
	err := os.Remove(filepath.Join(s.baseDir, filepath.Clean(path)))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove file %s: %w", path, err)
	}
	return nil
}
