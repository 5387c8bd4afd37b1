package quote

import (
	"context"
	"fmt"

	"todo/internal/logging"
	"todo/internal/service"
)

// Fetcher retrieves quotes.
type Fetcher interface {
	FetchQuotes(ctx context.Context) ([]Quote, error)
}

// Creator adds a task to the list.
type Creator interface {
	Create(ctx context.Context, title string) (service.Task, error)
}

// Result is the outcome of one seeding attempt.
type Result struct {
	Task service.Task
	Err  error
}

// Seeder turns the first fetched quote into a task.
type Seeder struct {
	fetcher Fetcher
	creator Creator
}

// NewSeeder returns a Seeder.
func NewSeeder(fetcher Fetcher, creator Creator) *Seeder {
	return &Seeder{fetcher: fetcher, creator: creator}
}

// Run fetches once and creates a task from the first quote.
func (s *Seeder) Run(ctx context.Context) (service.Task, error) {
	quotes, err := s.fetcher.FetchQuotes(ctx)
	if err != nil {
		return service.Task{}, err
	}
	if len(quotes) == 0 {
		return service.Task{}, ErrNoQuotes
	}

	task, err := s.creator.Create(ctx, quotes[0].Quote)
	if err != nil {
		return service.Task{}, fmt.Errorf("create seeded task: %w", err)
	}
	return task, nil
}

// Start runs the seeder in the background. The returned channel receives
// exactly one Result and is then closed. Failures are logged and never
// reach the caller any other way.
func (s *Seeder) Start(ctx context.Context) <-chan Result {
	results := make(chan Result, 1)
	logger := logging.FromContext(ctx)

	go func() {
		defer close(results)

		task, err := s.Run(ctx)
		if err != nil {
			logger.Warn("quote seeding failed", "error", err)
		} else {
			logger.Debug("seeded task from quote", "id", task.ID, "title", task.Title)
		}
		results <- Result{Task: task, Err: err}
	}()

	return results
}
