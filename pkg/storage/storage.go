package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned when no blob exists for the given path.
var ErrNotFound = errors.New("blob not found")

// BlobStore abstracts the file storage backing uploaded documents.
// Paths are opaque locators produced by Save.
type BlobStore interface {
	Save(ctx context.Context, path string, data []byte) error
	Download(ctx context.Context, path string) ([]byte, error)
	Delete(ctx context.Context, path string) error
}
