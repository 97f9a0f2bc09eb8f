package storage

import (
	"context"
)

// StateKey is the fixed key the application state blob is stored under
const StateKey = "hockey-pm-tracker-v4"

// Storage persists the single application state blob.
// Backends store opaque bytes; encoding lives in this package.
type Storage interface {
	// Load returns the stored blob, or nil with no error when nothing is stored yet
	Load(ctx context.Context) ([]byte, error)

	// Save replaces the stored blob
	Save(ctx context.Context, data []byte) error

	// Ping checks that the backend is reachable
	Ping(ctx context.Context) error

	// Close releases any underlying connection
	Close() error
}
