// Package storage uploads media files to S3-compatible object storage.
package storage

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"vidtube_backend/internal/platform/config"
	"vidtube_backend/internal/shared/apperror"
	"vidtube_backend/internal/shared/ident"
	"vidtube_backend/internal/shared/media"
)

// ErrDisabled is returned by uploads when no object storage is configured.
var ErrDisabled = apperror.New(apperror.KindInternal, "object storage is not configured")

// MinioStore stores objects in one bucket and serves them from PublicURL.
type MinioStore struct {
	client    *minio.Client
	bucket    string
	publicURL string
}

// New connects to the configured endpoint. It does not touch the network.
func New(cfg config.StorageConfig) (*MinioStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:        credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure:       cfg.UseSSL,
		Region:       "us-east-1",
		BucketLookup: minio.BucketLookupPath,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}
	public := cfg.PublicURL
	if public == "" {
		scheme := "http"
		if cfg.UseSSL {
			scheme = "https"
		}
		public = scheme + "://" + cfg.Endpoint
	}
	return &MinioStore{client: client, bucket: cfg.Bucket, publicURL: strings.TrimRight(public, "/")}, nil
}

// EnsureBucket creates the bucket with a public-read policy when it is missing.
func (s *MinioStore) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket: %w", err)
	}
	if exists {
		return nil
	}
	if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("failed to create bucket: %w", err)
	}
	policy := `{
	"Version": "2012-10-17",
	"Statement": [{
		"Effect": "Allow",
		"Principal": "*",
		"Action": "s3:GetObject",
		"Resource": "arn:aws:s3:::` + s.bucket + `/*"
	}]
}`
	if err := s.client.SetBucketPolicy(ctx, s.bucket, policy); err != nil {
		return fmt.Errorf("failed to set bucket policy: %w", err)
	}
	slog.Info("created public bucket", "bucket", s.bucket)
	return nil
}

// Upload stores f under folder with a generated name and returns its public URL.
func (s *MinioStore) Upload(ctx context.Context, folder string, f *media.File) (string, error) {
	key := ObjectKey(folder, ident.New().String()+f.Ext())
	_, err := s.client.PutObject(ctx, s.bucket, key, f.Body, f.Size, minio.PutObjectOptions{ContentType: f.ContentType})
	if err != nil {
		return "", apperror.Wrap(apperror.KindInternal, "failed to upload file", err)
	}
	return s.URL(key), nil
}

// Delete removes the object behind url. URLs outside this bucket are ignored.
func (s *MinioStore) Delete(ctx context.Context, url string) error {
	key, ok := s.KeyOf(url)
	if !ok {
		slog.Debug("skipping delete of foreign url", "url", url)
		return nil
	}
	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return apperror.Wrap(apperror.KindInternal, "failed to delete file", err)
	}
	return nil
}

// URL returns the public URL of key.
func (s *MinioStore) URL(key string) string {
	return s.publicURL + "/" + s.bucket + "/" + key
}

// KeyOf is the inverse of URL.
func (s *MinioStore) KeyOf(url string) (string, bool) {
	prefix := s.publicURL + "/" + s.bucket + "/"
	if !strings.HasPrefix(url, prefix) || len(url) == len(prefix) {
		return "", false
	}
	return strings.TrimPrefix(url, prefix), true
}

// ObjectKey joins a folder and a file name.
func ObjectKey(folder, name string) string {
	folder = strings.Trim(folder, "/")
	if folder == "" {
		return name
	}
	return folder + "/" + name
}

// Disabled is used when no storage is configured. Uploads fail and deletes
// are no-ops.
type Disabled struct{}

func (Disabled) Upload(context.Context, string, *media.File) (string, error) {
	return "", ErrDisabled
}

func (Disabled) Delete(context.Context, string) error {
	return nil
}
