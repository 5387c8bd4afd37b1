// Package commands implements the todo subcommands. Each command registers
// itself with DefaultRegistry from an init function.
package commands

import (
	"context"
	"flag"
	"io"

	"todo/internal/config"
	"todo/internal/service"
)

// Command is one todo subcommand.
type Command interface {
	// Name is the word typed after "todo".
	Name() string

	// Aliases are extra words that run the same command, e.g. "ls" for list.
	Aliases() []string

	// Synopsis is the one-line summary shown by "todo help".
	Synopsis() string

	// Usage is the argument pattern shown by "todo help".
	Usage() string

	// NeedsService reports whether Run gets an open task list.
	// help, version, login and logout run without one.
	NeedsService() bool

	// RegisterFlags adds the command's own flags next to --config, --quiet and --debug.
	RegisterFlags(fs *flag.FlagSet)

	// Run executes the command against the task list and returns an exitcode value.
	// svc is nil when NeedsService is false; args are the positionals left after
	// flag parsing. Task numbers in args are 1-based positions of the displayed view.
	Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int
}
