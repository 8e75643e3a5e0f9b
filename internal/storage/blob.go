// Package storage provides the key-value blob store the state container is
// persisted to. The core treats it as an external collaborator: one named
// blob, saved wholesale on every write.
package storage

import (
	"context"
	"errors"
)

// StateKey is the name of the single blob holding the application state.
const StateKey = "liftlog"

// ErrNotFound is returned by Load when the blob does not exist yet.
var ErrNotFound = errors.New("blob not found")

// BlobStore stores named opaque blobs.
type BlobStore interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, data []byte) error
	Close() error
}
