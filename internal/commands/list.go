package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"todo/internal/config"
	"todo/internal/exitcode"
	"todo/internal/output"
	"todo/internal/service"
)

func init() {
	Register(&ListCmd{})
	Register(&SearchCmd{})
}

// ListCmd implements the list command.
// Handles both `todo` (no args) and `todo list --search <text>`.
type ListCmd struct {
	search string
}

func (c *ListCmd) Name() string       { return "list" }
func (c *ListCmd) Aliases() []string  { return []string{"ls"} }
func (c *ListCmd) Synopsis() string   { return "List tasks" }
func (c *ListCmd) Usage() string      { return "todo list [--search <text>]" }
func (c *ListCmd) NeedsService() bool { return true }

func (c *ListCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.search, "search", "", "")
	fs.StringVar(&c.search, "s", "", "")
}

func (c *ListCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}
	return printTasks(ctx, cfg, svc, c.search, out, errOut)
}

// SearchCmd lists the tasks matching its arguments.
type SearchCmd struct{}

func (c *SearchCmd) Name() string       { return "search" }
func (c *SearchCmd) Aliases() []string  { return []string{"find"} }
func (c *SearchCmd) Synopsis() string   { return "List tasks whose title contains text" }
func (c *SearchCmd) Usage() string      { return "todo search <text...>" }
func (c *SearchCmd) NeedsService() bool { return true }

func (c *SearchCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *SearchCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	filter := strings.Join(args, " ")
	if strings.TrimSpace(filter) == "" {
		fmt.Fprintln(errOut, "error: search text required")
		return exitcode.UserError
	}
	return printTasks(ctx, cfg, svc, filter, out, errOut)
}

// printTasks prints the view Query(filter), numbered from 1.
func printTasks(ctx context.Context, cfg *config.Config, svc service.Service, filter string, out, errOut io.Writer) int {
	tasks, err := svc.Query(ctx, filter)
	if err != nil {
		return reportError(errOut, err)
	}

	if len(tasks) == 0 {
		if !cfg.Quiet {
			fmt.Fprintln(out, "no tasks found")
		}
		return exitcode.Success
	}

	output.NewPrinter(out).Tasks(tasks)
	return exitcode.Success
}
