// Package storage reads and writes step objects in bucket/key addressed stores.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/kacper-wojtaszczyk/jackfruit/steps-go/internal/config"
)

// ContentType is set on every object a step writes.
const ContentType = "text/plain; charset=utf-8"

// ErrObjectNotFound matches errors for keys that do not exist.
var ErrObjectNotFound = errors.New("object not found")

// ObjectStorage is the store every step talks to.
type ObjectStorage interface {
	Get(ctx context.Context, bucket, key string) (io.ReadCloser, error)
	Put(ctx context.Context, bucket, key string, body io.Reader, size int64) error
}

// Error describes a failed storage operation.
type Error struct {
	Op     string
	Bucket string
	Key    string
	Err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("storage %s %s/%s: %v", e.Op, e.Bucket, e.Key, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(op, bucket, key string, err error) *Error {
	return &Error{Op: op, Bucket: bucket, Key: key, Err: err}
}

func notFound(op, bucket, key string, err error) *Error {
	return newError(op, bucket, key, fmt.Errorf("%w: %w", ErrObjectNotFound, err))
}

// NewObjectStorage creates the backend selected in cfg.
func NewObjectStorage(ctx context.Context, cfg *config.Config) (ObjectStorage, error) {
	switch cfg.Backend {
	case config.BackendS3:
		return NewS3Client(ctx, S3Config{
			Region:         cfg.AWSRegion,
			Endpoint:       cfg.S3Endpoint,
			ForcePathStyle: cfg.S3ForcePathStyle,
		})
	case config.BackendMinIO:
		return NewMinIOClient(MinIOConfig{
			Endpoint:  cfg.MinIOEndpoint,
			AccessKey: cfg.MinIOAccessKey,
			SecretKey: cfg.MinIOSecretKey,
			UseSSL:    cfg.MinIOUseSSL,
		})
	case config.BackendMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}
