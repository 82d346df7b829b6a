// Package ports defines interfaces for external service communication.
package ports

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when no object exists at the given key.
var ErrNotFound = errors.New("object not found")

// BlobStore defines the interface for key-addressed object storage.
// Keys follow the <prefix>/<YYYY-MM-DD>/<id>.json convention; the store
// itself treats them as opaque. Put is atomic per key: the object is either
// fully visible with the given bytes or not visible at all.
type BlobStore interface {
	// Put writes the full object at key, replacing any previous version.
	Put(ctx context.Context, bucket, key string, data []byte) error

	// Get returns the object bytes at key, or ErrNotFound.
	Get(ctx context.Context, bucket, key string) ([]byte, error)

	// List returns all keys under the given prefix.
	List(ctx context.Context, bucket, prefix string) ([]string, error)

	// Delete removes the object at key. Deleting is irreversible.
	Delete(ctx context.Context, bucket, key string) error
}
