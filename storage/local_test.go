package storage

import (
	"bytes"
	"context"
	"io"
	"io/fs"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestLocalStorageRoundTrip(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir())
	if err != nil {
		t.Fatalf("NewLocalStorage: %v", err)
	}

	ctx := context.Background()
	pageID := uuid.New()
	content := []byte("fake jpeg bytes")

	path, err := store.Upload(ctx, pageID, "page 1.jpg", bytes.NewReader(content))
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if strings.Contains(path, " ") {
		t.Errorf("storage path should have spaces sanitized: %q", path)
	}
	if !strings.HasPrefix(path, pageID.String()[:2]+"/") {
		t.Errorf("storage path should shard by ID prefix: %q", path)
	}

	rc, err := store.Download(ctx, path)
	if err != nil {
		t.Fatalf("Download: %v", err)
	}
	got, err := io.ReadAll(rc)
	rc.Close()
	if err != nil {
		t.Fatalf("read downloaded file: %v", err)
	}
	if !bytes.Equal(got, content) {
		t.Errorf("downloaded %q, want %q", got, content)
	}

	if err := store.Delete(ctx, path); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := store.Download(ctx, path); err == nil {
		t.Error("Download after Delete should fail")
	}

	// Deleting a missing file is not an error.
	if err := store.Delete(ctx, path); err != nil {
		t.Errorf("second Delete should be a no-op, got %v", err)
	}
}

func TestLocalStorageUploadLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStorage(dir)
	if err != nil {
		t.Fatalf("NewLocalStorage: %v", err)
	}

	path, err := store.Upload(context.Background(), uuid.New(), "page.png", bytes.NewReader([]byte("png bytes")))
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}

	var extra []string
	err = filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		if rel, _ := filepath.Rel(dir, p); rel != filepath.FromSlash(path) {
			extra = append(extra, rel)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("walk: %v", err)
	}
	if len(extra) != 0 {
		t.Errorf("upload left stray files: %v", extra)
	}
}
