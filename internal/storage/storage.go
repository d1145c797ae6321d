// Package storage holds uploaded thumbnail bytes behind a small interface
// so the demo can run self-contained while a real deployment can point at
// MinIO.
package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/assetdeck/backend/internal/config"
)

type Store interface {
	Upload(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) error
	Download(ctx context.Context, objectName string) (io.ReadCloser, error)
	Delete(ctx context.Context, objectName string) error
}

// New builds the store selected by configuration.
func New(cfg config.StorageConfig, minioCfg config.MinIOConfig) (Store, error) {
	switch cfg.Driver {
	case "", "memory":
		return NewMemoryStore(), nil
	case "minio":
		client, err := NewMinIOClient(minioCfg)
		if err != nil {
			return nil, err
		}
		if err := client.EnsureBucket(context.Background()); err != nil {
			return nil, err
		}
		return client, nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}
