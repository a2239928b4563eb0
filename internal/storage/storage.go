// Package storage abstracts attachment byte storage. The core records only
// stored names and sizes; the bytes live behind this interface.
package storage

import (
	"context"
	"io"
)

type BlobStore interface {
	// Store writes the blob and returns the name it was stored under.
	Store(ctx context.Context, r io.Reader, suggestedName string) (string, error)
	// Open returns a reader for a stored blob.
	Open(ctx context.Context, storedName string) (io.ReadCloser, error)
	// Delete removes a stored blob. Deleting a missing blob is not an error.
	Delete(ctx context.Context, storedName string) error
	// Size returns the stored size in bytes.
	Size(ctx context.Context, storedName string) (int64, error)
}
