package di

import (
	"context"
	"log/slog"

	"vidtube_backend/internal/platform/config"
	"vidtube_backend/internal/platform/storage"
	"vidtube_backend/internal/shared/media"
)

// MediaStore uploads and deletes media objects.
type MediaStore interface {
	Upload(ctx context.Context, folder string, f *media.File) (string, error)
	Delete(ctx context.Context, url string) error
}

// NewMediaStore returns a MinIO-backed store when storage is configured.
// Otherwise uploads fail with storage.ErrDisabled.
func NewMediaStore(ctx context.Context, cfg config.StorageConfig) (MediaStore, error) {
	if !cfg.Enabled() {
		slog.Warn("object storage not configured; uploads are disabled")
		return storage.Disabled{}, nil
	}
	s, err := storage.New(cfg)
	if err != nil {
		return nil, err
	}
	if err := s.EnsureBucket(ctx); err != nil {
		return nil, err
	}
	return s, nil
}
