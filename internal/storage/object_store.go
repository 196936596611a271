package storage

import (
	"context"
	"io"
)

// ObjectStore is the blob storage surface the pipeline needs: idempotent
// container creation, blob upload/download, and an existence probe for the
// benchmark pointer.
type ObjectStore interface {
	EnsureBucket(ctx context.Context, bucket string) error

	PutObject(ctx context.Context, bucket, key string, data io.Reader) error

	GetObject(ctx context.Context, bucket, key string) (io.ReadCloser, error)

	ObjectExists(ctx context.Context, bucket, key string) (bool, error)
}
