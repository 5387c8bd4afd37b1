package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"todo/internal/config"
	"todo/internal/exitcode"
	"todo/internal/output"
	"todo/internal/service"
)

func init() {
	Register(&SeedCmd{})
}

// SeedCmd adds a task from the quote service now.
type SeedCmd struct{}

func (c *SeedCmd) Name() string       { return "seed" }
func (c *SeedCmd) Aliases() []string  { return []string{"quote"} }
func (c *SeedCmd) Synopsis() string   { return "Add a famous quote as a task" }
func (c *SeedCmd) Usage() string      { return "todo seed" }
func (c *SeedCmd) NeedsService() bool { return true }

func (c *SeedCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *SeedCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	seeder, ok := svc.(service.QuoteSeeder)
	if !ok {
		fmt.Fprintln(errOut, "error: quote seeding not supported by this store")
		return exitcode.StoreError
	}

	task, err := seeder.SeedQuote(ctx)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.StoreError
	}

	if !cfg.Quiet {
		all, err := svc.Query(ctx, "")
		if err != nil {
			return reportError(errOut, err)
		}
		output.NewPrinter(out).Task(positionOf(all, task.ID)+1, task)
	}
	return exitcode.Success
}

// positionOf returns the index of id in tasks, or len(tasks)-1 if absent.
func positionOf(tasks []service.Task, id string) int {
	for i, t := range tasks {
		if t.ID == id {
			return i
		}
	}
	return len(tasks) - 1
}
