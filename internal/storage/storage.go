package storage

import (
	"context"
	"io"
)

// UploadOptions conveys upload destination metadata.
type UploadOptions struct {
	Bucket      string
	Key         string
	ContentType string
}

// Service mirrors avatar images to remote object storage. The database row
// stays canonical; the mirror exists for CDN-style serving.
type Service interface {
	PutObject(ctx context.Context, body io.Reader, opts UploadOptions) (string, error)
	DeleteObject(ctx context.Context, bucket, key string) error
}
