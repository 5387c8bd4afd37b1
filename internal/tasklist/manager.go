// Package tasklist owns the in-memory task collection and mirrors every
// mutation to a TaskStore.
package tasklist

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"todo/internal/logging"
	"todo/internal/service"
)

// Store is the persistence the manager needs.
type Store interface {
	Load(ctx context.Context) []service.Task
	Save(ctx context.Context, tasks []service.Task) error
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the logger used for absorbed save failures.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithStrict makes mutations return save failures instead of logging them.
func WithStrict(strict bool) Option {
	return func(m *Manager) { m.strict = strict }
}

// Manager serializes all access to the collection through one goroutine.
type Manager struct {
	store  Store
	logger *slog.Logger
	strict bool

	// owned by loop
	tasks []service.Task

	ops       chan func()
	quit      chan struct{}
	done      chan struct{}
	closeOnce sync.Once
}

var _ service.Service = (*Manager)(nil)

// New loads the stored collection and starts the owner goroutine.
func New(ctx context.Context, store Store, opts ...Option) *Manager {
	m := &Manager{
		store:  store,
		logger: logging.FromContext(ctx),
		ops:    make(chan func()),
		quit:   make(chan struct{}),
		done:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(m)
	}

	m.tasks = store.Load(ctx)
	m.logger.Debug("task list ready", "tasks", len(m.tasks))

	go m.loop()
	return m
}

func (m *Manager) loop() {
	defer close(m.done)
	for {
		select {
		case fn := <-m.ops:
			fn()
		case <-m.quit:
			return
		}
	}
}

// do runs fn on the owner goroutine and waits for it to finish.
// Once the owner has accepted fn, the result is always awaited, so a
// committed mutation is never reported as canceled.
func (m *Manager) do(ctx context.Context, fn func()) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	finished := make(chan struct{})
	select {
	case m.ops <- func() { fn(); close(finished) }:
	case <-m.done:
		return service.ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}

	<-finished
	return nil
}

// persist saves the collection. Must run on the owner goroutine.
func (m *Manager) persist(ctx context.Context) error {
	err := m.store.Save(context.WithoutCancel(ctx), m.tasks)
	if err == nil {
		return nil
	}
	if m.strict {
		return err
	}
	m.logger.Warn("failed to save task list", "error", err)
	return nil
}

// Create appends a new incomplete task with a fresh id.
func (m *Manager) Create(ctx context.Context, title string) (service.Task, error) {
	var (
		task    service.Task
		saveErr error
	)
	err := m.do(ctx, func() {
		task = service.Task{ID: uuid.NewString(), Title: title}
		m.tasks = append(m.tasks, task)
		saveErr = m.persist(ctx)
	})
	if err != nil {
		return service.Task{}, err
	}
	return task, saveErr
}

// Update applies mutate to the task with id. The id itself cannot change.
func (m *Manager) Update(ctx context.Context, id string, mutate service.Mutator) (service.Task, error) {
	var (
		task    service.Task
		found   bool
		saveErr error
	)
	err := m.do(ctx, func() {
		i := m.indexOf(id)
		if i < 0 {
			return
		}
		found = true
		updated := m.tasks[i]
		if mutate != nil {
			mutate(&updated)
		}
		updated.ID = id
		m.tasks[i] = updated
		task = updated
		saveErr = m.persist(ctx)
	})
	if err != nil {
		return service.Task{}, err
	}
	if !found {
		return service.Task{}, &service.NotFoundError{ID: id}
	}
	return task, saveErr
}

// DeleteAt removes the tasks at positions of the view Query(filter).
// Positions are 0-based; any out-of-range position rejects the whole call.
func (m *Manager) DeleteAt(ctx context.Context, filter string, positions []int) ([]service.Task, error) {
	var (
		removed []service.Task
		badPos  *service.PositionError
		saveErr error
	)
	err := m.do(ctx, func() {
		view := m.viewIndexes(filter)

		targets := make(map[int]bool, len(positions))
		for _, p := range positions {
			if p < 0 || p >= len(view) {
				badPos = &service.PositionError{Position: p, Len: len(view)}
				return
			}
			targets[view[p]] = true
		}
		if len(targets) == 0 {
			removed = []service.Task{}
			return
		}

		removed = make([]service.Task, 0, len(targets))
		kept := make([]service.Task, 0, len(m.tasks)-len(targets))
		for i, t := range m.tasks {
			if targets[i] {
				removed = append(removed, t)
				continue
			}
			kept = append(kept, t)
		}
		m.tasks = kept
		saveErr = m.persist(ctx)
	})
	if err != nil {
		return nil, err
	}
	if badPos != nil {
		return nil, badPos
	}
	return removed, saveErr
}

// Query returns a copy of the tasks whose title contains filter, ignoring case.
func (m *Manager) Query(ctx context.Context, filter string) ([]service.Task, error) {
	var result []service.Task
	err := m.do(ctx, func() {
		result = service.Filter(m.tasks, filter)
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Close stops the owner goroutine. Later calls fail with service.ErrClosed.
func (m *Manager) Close() error {
	m.closeOnce.Do(func() { close(m.quit) })
	<-m.done
	return nil
}

func (m *Manager) indexOf(id string) int {
	for i, t := range m.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// viewIndexes maps view positions to collection indexes.
func (m *Manager) viewIndexes(filter string) []int {
	view := make([]int, 0, len(m.tasks))
	for i, t := range m.tasks {
		if service.Matches(t.Title, filter) {
			view = append(view, i)
		}
	}
	return view
}
