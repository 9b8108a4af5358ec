package storage

import (
	"fmt"
	"io"
	"path/filepath"
	"time"

	"brand-portal/internal/config"

	"github.com/google/uuid"
)

// Storage abstracts where uploaded file payloads live. The rest of the
// system treats payloads as opaque blobs referenced by the returned key.
type Storage interface {
	Save(reader io.Reader, originalName string) (string, error)
	Open(key string) (io.ReadCloser, error)
	Delete(key string) error
	PublicURL(key string) string
}

// New creates a storage provider from configuration.
func New(cfg *config.Config) (Storage, error) {
	switch cfg.Storage.Provider {
	case "local":
		return NewLocalStorage(cfg.Storage.Path)
	case "s3":
		return NewS3Storage(cfg.Storage.S3)
	default:
		return nil, fmt.Errorf("unsupported storage provider: %s", cfg.Storage.Provider)
	}
}

// fileKey builds a stored filename from a timestamp and a random suffix,
// keeping the original extension.
func fileKey(originalName string) string {
	suffix := uuid.NewString()[:8]
	return fmt.Sprintf("%d-%s%s", time.Now().UnixNano(), suffix, filepath.Ext(originalName))
}
