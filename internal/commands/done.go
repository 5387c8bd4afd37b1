package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"todo/internal/config"
	"todo/internal/exitcode"
	"todo/internal/service"
)

func init() {
	Register(&DoneCmd{})
	Register(&ReopenCmd{})
	Register(&ToggleCmd{})
}

// DoneCmd implements the done command.
type DoneCmd struct {
	search string
}

func (c *DoneCmd) Name() string       { return "done" }
func (c *DoneCmd) Aliases() []string  { return []string{"complete"} }
func (c *DoneCmd) Synopsis() string   { return "Mark tasks completed" }
func (c *DoneCmd) Usage() string      { return "todo done [--search <text>] <n...>" }
func (c *DoneCmd) NeedsService() bool { return true }

func (c *DoneCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.search, "search", "", "")
	fs.StringVar(&c.search, "s", "", "")
}

func (c *DoneCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	return runUpdate(ctx, cfg, svc, c.search, args, service.SetCompleted(true), out, errOut)
}

// ReopenCmd marks tasks not completed.
type ReopenCmd struct {
	search string
}

func (c *ReopenCmd) Name() string       { return "reopen" }
func (c *ReopenCmd) Aliases() []string  { return []string{"undone"} }
func (c *ReopenCmd) Synopsis() string   { return "Mark tasks not completed" }
func (c *ReopenCmd) Usage() string      { return "todo reopen [--search <text>] <n...>" }
func (c *ReopenCmd) NeedsService() bool { return true }

func (c *ReopenCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.search, "search", "", "")
	fs.StringVar(&c.search, "s", "", "")
}

func (c *ReopenCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	return runUpdate(ctx, cfg, svc, c.search, args, service.SetCompleted(false), out, errOut)
}

// ToggleCmd flips the completion of tasks.
type ToggleCmd struct {
	search string
}

func (c *ToggleCmd) Name() string       { return "toggle" }
func (c *ToggleCmd) Aliases() []string  { return nil }
func (c *ToggleCmd) Synopsis() string   { return "Flip task completion" }
func (c *ToggleCmd) Usage() string      { return "todo toggle [--search <text>] <n...>" }
func (c *ToggleCmd) NeedsService() bool { return true }

func (c *ToggleCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.search, "search", "", "")
	fs.StringVar(&c.search, "s", "", "")
}

func (c *ToggleCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	return runUpdate(ctx, cfg, svc, c.search, args, service.ToggleCompleted, out, errOut)
}

// runUpdate applies mutate to every referenced task of the view Query(search).
// All numbers are resolved before the first update, so earlier updates cannot
// shift later references.
func runUpdate(ctx context.Context, cfg *config.Config, svc service.Service, search string, args []string, mutate service.Mutator, out, errOut io.Writer) int {
	nums, err := ParseTaskRefs(args)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	tasks, err := findTasksByNumber(ctx, svc, search, nums)
	if err != nil {
		return reportError(errOut, err)
	}

	for _, task := range tasks {
		if _, err := svc.Update(ctx, task.ID, mutate); err != nil {
			return reportError(errOut, err)
		}
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
