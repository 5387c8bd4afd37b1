package commands

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"todo/internal/config"
	"todo/internal/exitcode"
	"todo/internal/logging"
	"todo/internal/service"
)

func init() {
	Register(&LoginCmd{})
}

// LoginCmd stores the quote service credentials in the config directory.
type LoginCmd struct {
	key    string
	host   string
	reader io.Reader // replaces stdin when set
}

// SetInput makes the command read the key from r instead of stdin (for testing).
func (c *LoginCmd) SetInput(r io.Reader) {
	c.reader = r
}

func (c *LoginCmd) Name() string       { return "login" }
func (c *LoginCmd) Aliases() []string  { return nil }
func (c *LoginCmd) Synopsis() string   { return "Store the quote service API key" }
func (c *LoginCmd) Usage() string      { return "todo login [--key <key>] [--host <host>]" }
func (c *LoginCmd) NeedsService() bool { return false }

func (c *LoginCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.key, "key", "", "")
	fs.StringVar(&c.host, "host", "", "")
}

func (c *LoginCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	key := strings.TrimSpace(c.key)
	if key == "" {
		var err error
		key, err = c.readKey(errOut)
		if err != nil {
			fmt.Fprintf(errOut, "error: failed to read API key: %v\n", err)
			return exitcode.UserError
		}
	}
	if key == "" {
		fmt.Fprintln(errOut, "error: API key required")
		return exitcode.UserError
	}

	logging.FromContext(ctx).Debug("saving quote credentials", "path", cfg.EnvPath(), "replacing", cfg.HasStoredCredentials())
	if err := cfg.SaveCredentials(key, strings.TrimSpace(c.host)); err != nil {
		fmt.Fprintf(errOut, "error: failed to save credentials: %v\n", err)
		return exitcode.ConfigError
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}

// readKey prompts without echo on a terminal and reads one line otherwise.
func (c *LoginCmd) readKey(errOut io.Writer) (string, error) {
	if c.reader != nil {
		return readLine(c.reader)
	}

	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return readLine(os.Stdin)
	}

	fmt.Fprint(errOut, "Quote API key: ")
	secret, err := term.ReadPassword(fd)
	fmt.Fprintln(errOut)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(secret)), nil
}

func readLine(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
