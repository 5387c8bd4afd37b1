// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"fmt"
	"sync"

	"todo/internal/service"
)

// FakeService is an in-memory implementation of service.Service for testing.
// IDs are sequential ("task1", "task2", ...).
type FakeService struct {
	mu     sync.RWMutex
	tasks  []service.Task
	nextID int
	Closed bool

	// Error injection for testing
	CreateErr   error
	UpdateErr   error
	DeleteAtErr error
	QueryErr    error
	CloseErr    error
	SeedErr     error

	// SeedTitle is the title SeedQuote adds.
	SeedTitle string
}

var (
	_ service.Service     = (*FakeService)(nil)
	_ service.QuoteSeeder = (*FakeService)(nil)
)

// NewFakeService creates an empty FakeService.
func NewFakeService() *FakeService {
	return &FakeService{SeedTitle: "Carpe diem"}
}

// AddTask adds a task directly, bypassing error injection.
func (f *FakeService) AddTask(title string, completed bool) service.Task {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.appendLocked(title, completed)
}

// Tasks returns a copy of every task.
func (f *FakeService) Tasks() []service.Task {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return append([]service.Task(nil), f.tasks...)
}

func (f *FakeService) appendLocked(title string, completed bool) service.Task {
	f.nextID++
	task := service.Task{ID: fmt.Sprintf("task%d", f.nextID), Title: title, IsCompleted: completed}
	f.tasks = append(f.tasks, task)
	return task
}

// Create implements service.Service.
func (f *FakeService) Create(ctx context.Context, title string) (service.Task, error) {
	if f.CreateErr != nil {
		return service.Task{}, f.CreateErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.appendLocked(title, false), nil
}

// Update implements service.Service.
func (f *FakeService) Update(ctx context.Context, id string, mutate service.Mutator) (service.Task, error) {
	if f.UpdateErr != nil {
		return service.Task{}, f.UpdateErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	for i := range f.tasks {
		if f.tasks[i].ID != id {
			continue
		}
		updated := f.tasks[i]
		if mutate != nil {
			mutate(&updated)
		}
		updated.ID = id
		f.tasks[i] = updated
		return updated, nil
	}
	return service.Task{}, &service.NotFoundError{ID: id}
}

// DeleteAt implements service.Service.
func (f *FakeService) DeleteAt(ctx context.Context, filter string, positions []int) ([]service.Task, error) {
	if f.DeleteAtErr != nil {
		return nil, f.DeleteAtErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	view := service.Filter(f.tasks, filter)
	ids := make(map[string]bool, len(positions))
	for _, p := range positions {
		if p < 0 || p >= len(view) {
			return nil, &service.PositionError{Position: p, Len: len(view)}
		}
		ids[view[p].ID] = true
	}

	removed := []service.Task{}
	kept := f.tasks[:0:0]
	for _, t := range f.tasks {
		if ids[t.ID] {
			removed = append(removed, t)
			continue
		}
		kept = append(kept, t)
	}
	f.tasks = kept
	return removed, nil
}

// Query implements service.Service.
func (f *FakeService) Query(ctx context.Context, filter string) ([]service.Task, error) {
	if f.QueryErr != nil {
		return nil, f.QueryErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	return service.Filter(f.tasks, filter), nil
}

// SeedQuote implements service.QuoteSeeder.
func (f *FakeService) SeedQuote(ctx context.Context) (service.Task, error) {
	if f.SeedErr != nil {
		return service.Task{}, f.SeedErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.appendLocked(f.SeedTitle, false), nil
}

// Close implements service.Service.
func (f *FakeService) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Closed = true
	return f.CloseErr
}
