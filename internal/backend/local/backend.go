// Package local implements service.Service on top of a local task store.
package local

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"todo/internal/config"
	"todo/internal/logging"
	"todo/internal/quote"
	"todo/internal/service"
	"todo/internal/store"
	"todo/internal/tasklist"
)

// ErrNoAPIKey is returned by SeedQuote when no quote service key is configured.
var ErrNoAPIKey = errors.New("quote API key not configured (run 'todo login')")

// Backend wires the store, the task list manager and the quote seeder.
type Backend struct {
	cfg     *config.Config
	store   *store.TaskStore
	manager *tasklist.Manager
	seeder  *quote.Seeder

	// startup seed; nil when none was started
	pending <-chan quote.Result
}

var (
	_ service.Service     = (*Backend)(nil)
	_ service.QuoteSeeder = (*Backend)(nil)
)

// Open loads the task list and starts the startup quote seed per cfg.Quote.Seed.
func Open(ctx context.Context, cfg *config.Config) (*Backend, error) {
	logger := logging.FromContext(ctx)

	slot, err := store.Open(cfg.Store.Backend, cfg.StorePath())
	if err != nil {
		return nil, fmt.Errorf("open task store: %w", err)
	}
	ts := store.NewTaskStore(slot, cfg.Store.Key, logger)
	firstLaunch := !ts.Exists(ctx)

	manager := tasklist.New(ctx, ts,
		tasklist.WithLogger(logger),
		tasklist.WithStrict(cfg.Store.Strict),
	)

	b := &Backend{
		cfg:     cfg,
		store:   ts,
		manager: manager,
		seeder:  quote.NewSeeder(quote.NewClient(cfg.QuoteClientConfig()), manager),
	}

	if b.shouldSeed(firstLaunch, logger) {
		logger.Debug("starting quote seed", "policy", cfg.Quote.Seed)
		b.pending = b.seeder.Start(ctx)
	}
	return b, nil
}

func (b *Backend) shouldSeed(firstLaunch bool, logger *slog.Logger) bool {
	switch b.cfg.Quote.Seed {
	case config.SeedNever:
		return false
	case config.SeedFirstLaunch:
		if !firstLaunch {
			return false
		}
	}
	if !b.cfg.HasQuoteKey() {
		logger.Debug("no quote API key, skipping seed")
		return false
	}
	return true
}

// Create implements service.Service.
func (b *Backend) Create(ctx context.Context, title string) (service.Task, error) {
	return b.manager.Create(ctx, title)
}

// Update implements service.Service.
func (b *Backend) Update(ctx context.Context, id string, mutate service.Mutator) (service.Task, error) {
	return b.manager.Update(ctx, id, mutate)
}

// DeleteAt implements service.Service.
func (b *Backend) DeleteAt(ctx context.Context, filter string, positions []int) ([]service.Task, error) {
	return b.manager.DeleteAt(ctx, filter, positions)
}

// Query implements service.Service.
func (b *Backend) Query(ctx context.Context, filter string) ([]service.Task, error) {
	return b.manager.Query(ctx, filter)
}

// SeedQuote fetches a quote now and adds it as a task.
func (b *Backend) SeedQuote(ctx context.Context) (service.Task, error) {
	if !b.cfg.HasQuoteKey() {
		return service.Task{}, ErrNoAPIKey
	}
	return b.seeder.Run(ctx)
}

// Close waits for a pending startup seed, bounded by the quote timeout,
// then closes the manager and the store.
func (b *Backend) Close() error {
	if b.pending != nil {
		timer := time.NewTimer(b.cfg.Quote.Timeout.Duration() + time.Second)
		select {
		case <-b.pending:
		case <-timer.C:
		}
		timer.Stop()
	}

	b.manager.Close()
	if err := b.store.Close(); err != nil {
		return fmt.Errorf("close task store: %w", err)
	}
	return nil
}
