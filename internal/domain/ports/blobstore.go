// Package ports defines interfaces for external service communication.
package ports

import "context"

// BlobStore persists the story bible as one opaque JSON blob under a fixed
// key. Load returns ErrNotFound when nothing has been stored yet.
type BlobStore interface {
	// Load returns the stored document blob.
	Load(ctx context.Context) ([]byte, error)

	// Save overwrites the stored document blob.
	Save(ctx context.Context, data []byte) error

	// Reset removes the stored document.
	Reset(ctx context.Context) error

	// Close releases the underlying resources.
	Close() error
}
