package service

import "context"

// Service is the task list contract.
// The CLI commands and the HTTP API only ever mutate tasks through it.
type Service interface {
	// Create appends a new, not completed task with a fresh ID and persists the list.
	// Title validation is the caller's job.
	Create(ctx context.Context, title string) (Task, error)

	// Update applies mutate to the task with the given ID and persists the list.
	// Returns a *NotFoundError if no such task exists.
	Update(ctx context.Context, id string, mutate Mutator) (Task, error)

	// DeleteAt removes the tasks at the given 0-based positions of the view
	// Query(filter) would return, and persists the list.
	// Returns a *PositionError and deletes nothing if any position is out of range.
	DeleteAt(ctx context.Context, filter string, positions []int) ([]Task, error)

	// Query returns the tasks whose title contains filter, case-insensitively,
	// in list order. An empty filter returns every task.
	Query(ctx context.Context, filter string) ([]Task, error)

	// Close releases the backend.
	Close() error
}

// QuoteSeeder is implemented by backends that can add a task from the quote service.
type QuoteSeeder interface {
	SeedQuote(ctx context.Context) (Task, error)
}
