package filestore

import (
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// DiskStore implements ImageStore on the local filesystem.
type DiskStore struct {
	dir    string
	logger *slog.Logger
}

// Ensure DiskStore implements ImageStore interface
var _ ImageStore = (*DiskStore)(nil)

// NewDiskStore creates a DiskStore rooted at dir, creating the directory if
// needed. If logger is nil, a default logger will be used.
func NewDiskStore(dir string, logger *slog.Logger) (*DiskStore, error) {
	if dir == "" {
		return nil, fmt.Errorf("upload directory cannot be empty")
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory %s: %w", dir, err)
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &DiskStore{
		dir:    dir,
		logger: logger.With(slog.String("component", "file_store")),
	}, nil
}

// Dir returns the directory the store writes into.
func (s *DiskStore) Dir() string {
	return s.dir
}

// Save implements ImageStore.Save. Files are named with a timestamp plus a
// random suffix so concurrent uploads never collide.
func (s *DiskStore) Save(originalName, contentType string, r io.Reader) (string, error) {
	ext, ok := acceptedImageTypes[contentType]
	if !ok {
		s.logger.Debug("rejected upload with unsupported content type",
			slog.String("content_type", contentType),
			slog.String("original_name", originalName))
		return "", ErrUnsupportedType
	}

	// Prefer the original extension when it matches an accepted format.
	if origExt := strings.ToLower(filepath.Ext(originalName)); origExt == ".png" ||
		origExt == ".jpg" || origExt == ".jpeg" {
		ext = origExt
	}

	name := fmt.Sprintf("%d%d%s", time.Now().UnixMilli(), rand.Intn(1_000_000_000), ext)
	path := filepath.Join(s.dir, name)

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("failed to create image file: %w", err)
	}

	if _, err := io.Copy(f, r); err != nil {
		// Do not leave a truncated file behind.
		_ = f.Close()
		_ = os.Remove(path)
		return "", fmt.Errorf("failed to write image file: %w", err)
	}

	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("failed to close image file: %w", err)
	}

	s.logger.Debug("stored uploaded image",
		slog.String("path", path),
		slog.String("content_type", contentType))

	return path, nil
}

// Remove implements ImageStore.Remove.
func (s *DiskStore) Remove(path string) error {
	if path == "" {
		return ErrNotFound
	}

	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return fmt.Errorf("failed to remove image file: %w", err)
	}

	s.logger.Debug("removed stored image", slog.String("path", path))
	return nil
}
