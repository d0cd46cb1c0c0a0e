package model

import (
	"context"
	"io"
)

// Storage persists opaque blobs under keys of the form "<project>/<file>".
// Download returns ErrBlobNotFound for unknown keys.
type Storage interface {
	Upload(ctx context.Context, key string, reader io.Reader) error
	Download(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}
