package service

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound matches any *NotFoundError.
	ErrNotFound = errors.New("task not found")

	// ErrOutOfRange matches any *PositionError.
	ErrOutOfRange = errors.New("task position out of range")

	// ErrPersistence matches any *PersistenceError.
	ErrPersistence = errors.New("task list not persisted")

	// ErrClosed is returned by operations on a closed task list.
	ErrClosed = errors.New("task list closed")
)

// NotFoundError reports an ID that is not in the list, usually a stale reference.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("task not found: %s", e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// PositionError reports a 0-based position outside a view of Len tasks.
type PositionError struct {
	Position int
	Len      int
}

func (e *PositionError) Error() string {
	return fmt.Sprintf("task position out of range: %d (view has %d tasks)", e.Position, e.Len)
}

func (e *PositionError) Is(target error) bool {
	return target == ErrOutOfRange
}

// PersistenceError reports a failed encode, decode, or write of the task list.
// The in-memory list is still correct when one is returned from a mutation.
type PersistenceError struct {
	Op  string // "encode", "decode", "write", "read"
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s task list: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

func (e *PersistenceError) Is(target error) bool {
	return target == ErrPersistence
}
