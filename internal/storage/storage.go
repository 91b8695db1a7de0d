package storage

import (
	"context"
	"fmt"
	"io"

	"blogapp_backend/internal/config"
)

// Storage persists uploaded files. Paths are slash-separated keys
// relative to the storage root.
type Storage interface {
	Save(ctx context.Context, path string, reader io.Reader, contentType string) error
	Get(ctx context.Context, path string) (io.ReadCloser, error)
	Delete(ctx context.Context, path string) error
	Exists(ctx context.Context, path string) (bool, error)
	// GetURL returns the public URL a browser can fetch the file from.
	GetURL(ctx context.Context, path string) (string, error)
}

// New builds the backend the config selects.
func New(cfg *config.Config) (Storage, error) {
	switch cfg.Storage.Type {
	case "s3":
		return NewS3Storage(cfg)
	case "local", "":
		return NewLocalStorage(cfg.Storage.BasePath, cfg.Storage.BaseURL), nil
	default:
		return nil, fmt.Errorf("unknown storage type %q", cfg.Storage.Type)
	}
}
