package storage

import (
	"context"
	"io"
	"time"
)

// FileStorage abstracts where uploaded files live. The local implementation
// writes under the configured upload directory; a bucket-backed one would
// satisfy the same interface.
type FileStorage interface {
	// Upload stores a file and returns its storage path.
	Upload(ctx context.Context, file io.Reader, path string, contentType string) (string, error)

	// Delete removes a stored file.
	Delete(ctx context.Context, path string) error

	// GetURL resolves a storage path to a URL clients can fetch. A zero
	// expiry means a non-expiring public URL.
	GetURL(ctx context.Context, path string, expiry time.Duration) (string, error)
}
