package store

import (
	"context"
	"errors"
	"log/slog"

	"todo/internal/logging"
	"todo/internal/service"
)

// DefaultKey is the slot key holding the task list.
const DefaultKey = "tasks"

// TaskStore saves and loads the whole task list under one slot key.
type TaskStore struct {
	slot   Slot
	key    string
	logger *slog.Logger
}

// NewTaskStore returns a TaskStore over slot. An empty key uses DefaultKey and
// a nil logger discards.
func NewTaskStore(slot Slot, key string, logger *slog.Logger) *TaskStore {
	if key == "" {
		key = DefaultKey
	}
	if logger == nil {
		logger = logging.Discard()
	}
	return &TaskStore{slot: slot, key: key, logger: logger}
}

// Save replaces the stored list with tasks.
// Failures come back as *service.PersistenceError; callers choose whether to surface them.
func (s *TaskStore) Save(ctx context.Context, tasks []service.Task) error {
	data, err := Encode(tasks)
	if err != nil {
		return &service.PersistenceError{Op: "encode", Err: err}
	}
	if err := s.slot.Put(ctx, s.key, data); err != nil {
		return &service.PersistenceError{Op: "write", Err: err}
	}
	s.logger.Debug("task list saved", "key", s.key, "tasks", len(tasks))
	return nil
}

// Load returns the stored list. A missing, unreadable, or corrupt slot yields an
// empty list; Load never fails.
func (s *TaskStore) Load(ctx context.Context) []service.Task {
	data, err := s.slot.Get(ctx, s.key)
	if errors.Is(err, ErrNoValue) {
		s.logger.Debug("no stored task list", "key", s.key)
		return []service.Task{}
	}
	if err != nil {
		s.logger.Warn("failed to read task list, starting empty", "key", s.key, "error", err)
		return []service.Task{}
	}

	tasks, err := Decode(data)
	if err != nil {
		s.logger.Warn("discarding undecodable task list", "key", s.key, "error", err)
		return []service.Task{}
	}
	s.logger.Debug("task list loaded", "key", s.key, "tasks", len(tasks))
	return tasks
}

// Exists reports whether the slot has ever been written.
// A slot that cannot be read counts as written.
func (s *TaskStore) Exists(ctx context.Context) bool {
	_, err := s.slot.Get(ctx, s.key)
	return !errors.Is(err, ErrNoValue)
}

// Close closes the underlying slot.
func (s *TaskStore) Close() error {
	return s.slot.Close()
}
