package storage

import (
	"context"
	"io"
)

// BlobStore persists uploaded binary objects (contact avatars) and hands back
// an opaque path token that the owning record stores.
type BlobStore interface {
	Store(ctx context.Context, filename string, r io.Reader) (string, error)
	Open(ctx context.Context, path string) (io.ReadCloser, error)
	Delete(ctx context.Context, path string) error
}
