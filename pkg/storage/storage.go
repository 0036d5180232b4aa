// Package storage abstracts the object store holding uploaded
// documents and audio recordings.
package storage

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/prestaforge/content-engine/pkg/logger"
	"github.com/prestaforge/content-engine/pkg/storage/minio"
	"github.com/prestaforge/content-engine/pkg/storage/s3"
)

type Backend string

const (
	BackendS3    Backend = "s3"
	BackendMinio Backend = "minio"
)

// Storage is the object-store interface used by the upload handlers
// and the extraction workers.
type Storage interface {
	// Store writes the content under key and returns the stored key.
	Store(ctx context.Context, reader io.Reader, key string) (string, error)
	// Get opens the object stored under key for reading.
	Get(ctx context.Context, key string) (io.ReadCloser, error)
	// Delete removes the object stored under key.
	Delete(ctx context.Context, key string) error
	// CleanupBefore removes objects last modified before threshold.
	CleanupBefore(ctx context.Context, threshold time.Time) error
}

// New returns the storage implementation selected by backend.
func New(backend Backend, log logger.Logger) (Storage, error) {
	switch backend {
	case BackendS3:
		return s3.GetClient(log)
	case BackendMinio:
		return minio.GetClient(log)
	default:
		return nil, fmt.Errorf("unsupported storage backend: %s", backend)
	}
}
