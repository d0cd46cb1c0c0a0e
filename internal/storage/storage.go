// Package storage selects the blob backend configured for the server.
package storage

import (
	"context"
	"fmt"

	"github.com/dtroode/defo-server/internal/config"
	"github.com/dtroode/defo-server/internal/model"
	"github.com/dtroode/defo-server/internal/storage/local"
	"github.com/dtroode/defo-server/internal/storage/minio"
	"github.com/dtroode/defo-server/internal/storage/s3"
)

const (
	BackendLocal = "local"
	BackendMinio = "minio"
	BackendS3    = "s3"
)

// New returns the backend named by cfg.Storage.Backend.
func New(ctx context.Context, cfg *config.Config) (model.Storage, error) {
	var (
		s   model.Storage
		err error
	)

	switch cfg.Storage.Backend {
	case BackendLocal:
		s, err = local.New(cfg.Storage.Dir)
	case BackendMinio:
		s, err = minio.New(ctx, minio.Options{
			Endpoint:  cfg.Minio.Endpoint,
			AccessKey: cfg.Minio.AccessKey,
			SecretKey: cfg.Minio.SecretKey,
			Bucket:    cfg.Minio.Bucket,
			UseSSL:    cfg.Minio.UseSSL,
		})
	case BackendS3:
		s, err = s3.New(ctx, s3.Options{
			Region:    cfg.S3.Region,
			Bucket:    cfg.S3.Bucket,
			AccessKey: cfg.S3.AccessKey,
			SecretKey: cfg.S3.SecretKey,
			Endpoint:  cfg.S3.Endpoint,
		})
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to initialize %s storage: %w", cfg.Storage.Backend, err)
	}

	return s, nil
}
