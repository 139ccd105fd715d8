// Package mocks provides mock implementations for testing.
package mocks

import (
	"context"

	"github.com/canaworld/cana/internal/domain/ports"
)

// BlobStore is an in-memory implementation of ports.BlobStore.
type BlobStore struct {
	Data []byte

	LoadErr  error
	SaveErr  error
	ResetErr error

	Saves  int
	Resets int
}

// Load returns the stored blob or ErrNotFound when empty.
func (m *BlobStore) Load(_ context.Context) ([]byte, error) {
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	if m.Data == nil {
		return nil, ports.ErrNotFound
	}
	return m.Data, nil
}

// Save stores the blob and counts the write.
func (m *BlobStore) Save(_ context.Context, data []byte) error {
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.Data = append([]byte(nil), data...)
	m.Saves++
	return nil
}

// Reset clears the stored blob.
func (m *BlobStore) Reset(_ context.Context) error {
	if m.ResetErr != nil {
		return m.ResetErr
	}
	m.Data = nil
	m.Resets++
	return nil
}

// Close is a no-op.
func (m *BlobStore) Close() error { return nil }
