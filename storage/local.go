package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// LocalStorage keeps page images on the local filesystem, sharded into
// subdirectories by ID prefix. It is the development default; production
// deployments use S3.
type LocalStorage struct {
	basePath string
}

// NewLocalStorage creates a local page store rooted at basePath
func NewLocalStorage(basePath string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create page storage directory: %w", err)
	}
	return &LocalStorage{basePath: basePath}, nil
}

// Upload stores a page image. The image is written to a temp file first and
// renamed into place, so a crashed upload never leaves a half-written page
// that the analysis pipeline could pick up.
func (s *LocalStorage) Upload(ctx context.Context, pageID uuid.UUID, filename string, data io.Reader) (string, error) {
	storagePath := generateStoragePath(pageID, filename)
	fullPath := filepath.Join(s.basePath, storagePath)

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return "", fmt.Errorf("failed to create page directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(fullPath), ".upload-*")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}

	if _, err := io.Copy(tmp, data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to write page image: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to finalize page image: %w", err)
	}
	if err := os.Rename(tmp.Name(), fullPath); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to move page image into place: %w", err)
	}

	return storagePath, nil
}

// Download opens a stored page image by storage path
func (s *LocalStorage) Download(ctx context.Context, storagePath string) (io.ReadCloser, error) {
	file, err := os.Open(filepath.Join(s.basePath, storagePath))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("page image not found: %s", storagePath)
		}
		return nil, fmt.Errorf("failed to open page image: %w", err)
	}
	return file, nil
}

// Delete removes a stored page image. Deleting a missing page is a no-op.
func (s *LocalStorage) Delete(ctx context.Context, storagePath string) error {
	err := os.Remove(filepath.Join(s.basePath, storagePath))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete page image: %w", err)
	}
	return nil
}
