// Package store persists the task list in a single durable key-value slot.
package store

import (
	"context"
	"errors"
	"fmt"
)

// ErrNoValue is returned by Slot.Get when nothing is stored under the key.
var ErrNoValue = errors.New("no value stored")

// Backend names accepted by Open.
const (
	BackendSQLite = "sqlite"
	BackendFile   = "file"
	BackendMemory = "memory"
)

// Slot is a durable key-value location. Values are opaque bytes.
type Slot interface {
	// Get returns the value stored under key, or ErrNoValue.
	Get(ctx context.Context, key string) ([]byte, error)

	// Put replaces the value stored under key.
	Put(ctx context.Context, key string, value []byte) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases the slot.
	Close() error
}

// Open opens a slot for the named backend.
// path is the database file for sqlite and the directory for file; memory ignores it.
func Open(backend, path string) (Slot, error) {
	switch backend {
	case BackendSQLite, "":
		return OpenSQLite(path)
	case BackendFile:
		return NewFileSlot(path), nil
	case BackendMemory:
		return NewMemorySlot(), nil
	default:
		return nil, fmt.Errorf("unknown store backend: %s", backend)
	}
}
