package commands_test

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"io"
	"strings"
	"testing"

	"todo/internal/commands"
	"todo/internal/config"
	"todo/internal/exitcode"
	"todo/internal/service"
	"todo/internal/testutil"
)

func testConfig(t *testing.T, quiet bool) *config.Config {
	t.Helper()
	cfg, err := config.New(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	cfg.Quiet = quiet
	return cfg
}

// registerFlags parses args into the command's flags.
func registerFlags(t *testing.T, cmd commands.Command, args ...string) {
	t.Helper()
	fs := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	cmd.RegisterFlags(fs)
	if err := fs.Parse(args); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
}

func runWithConfig(t *testing.T, cmd commands.Command, cfg *config.Config, svc service.Service, args []string) (stdout, stderr string, code int) {
	t.Helper()
	var outBuf, errBuf bytes.Buffer
	code = cmd.Run(context.Background(), cfg, svc, args, &outBuf, &errBuf)
	return outBuf.String(), errBuf.String(), code
}

// runCommand is a helper to run a command with FakeService.
func runCommand(t *testing.T, cmd commands.Command, svc *testutil.FakeService, args []string, quiet bool) (stdout, stderr string, code int) {
	t.Helper()
	var s service.Service
	if svc != nil {
		s = svc
	}
	return runWithConfig(t, cmd, testConfig(t, quiet), s, args)
}

func titlesOf(tasks []service.Task) string {
	parts := make([]string, len(tasks))
	for i, task := range tasks {
		parts[i] = task.Title
		if task.IsCompleted {
			parts[i] += "*"
		}
	}
	return strings.Join(parts, ",")
}

// Tests for version command
func TestVersionCommand(t *testing.T) {
	stdout, stderr, code := runCommand(t, &commands.VersionCmd{}, nil, nil, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if stdout != "todo 0.1.0\n" {
		t.Errorf("expected version output, got %q", stdout)
	}
}

// Tests for help command
func TestHelpCommand(t *testing.T) {
	stdout, stderr, code := runCommand(t, &commands.HelpCmd{}, nil, nil, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	for _, want := range []string{"Usage:", "todo add <title...>", "todo rm [--search <text>] <n...>", "alias: create"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("help output should contain %q", want)
		}
	}
}

// Tests for list command
func TestListCommand_WithTasks(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("Buy milk", false)
	svc.AddTask("Call mom", true)

	stdout, stderr, code := runCommand(t, &commands.ListCmd{}, svc, nil, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	testutil.GoldenString(t, "list_with_tasks", stdout)
}

func TestListCommand_Search(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("Buy milk", false)
	svc.AddTask("Walk dog", false)
	svc.AddTask("Milk shake", false)

	cmd := &commands.ListCmd{}
	registerFlags(t, cmd, "--search", "MILK")
	stdout, _, code := runCommand(t, cmd, svc, nil, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	expected := "   1  [ ] Buy milk\n   2  [ ] Milk shake\n"
	if stdout != expected {
		t.Errorf("expected %q, got %q", expected, stdout)
	}
}

func TestListCommand_Empty(t *testing.T) {
	svc := testutil.NewFakeService()

	stdout, _, code := runCommand(t, &commands.ListCmd{}, svc, nil, false)
	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "no tasks found\n" {
		t.Errorf("expected 'no tasks found\\n', got %q", stdout)
	}

	stdout, _, _ = runCommand(t, &commands.ListCmd{}, svc, nil, true)
	if stdout != "" {
		t.Errorf("expected no output in quiet mode, got %q", stdout)
	}
}

func TestListCommand_UnexpectedArgument(t *testing.T) {
	_, stderr, code := runCommand(t, &commands.ListCmd{}, testutil.NewFakeService(), []string{"groceries"}, false)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stderr != "error: unexpected argument: groceries\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

func TestListCommand_StoreError(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.QueryErr = errors.New("disk gone")

	_, stderr, code := runCommand(t, &commands.ListCmd{}, svc, nil, false)

	if code != exitcode.StoreError {
		t.Errorf("expected exit code %d, got %d", exitcode.StoreError, code)
	}
	if stderr != "error: store error: disk gone\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

func TestSearchCommand(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("Buy milk", false)
	svc.AddTask("Buy bread", false)

	stdout, _, code := runCommand(t, &commands.SearchCmd{}, svc, []string{"buy", "b"}, false)
	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "   1  [ ] Buy bread\n" {
		t.Errorf("unexpected output %q", stdout)
	}

	_, stderr, code := runCommand(t, &commands.SearchCmd{}, svc, nil, false)
	if code != exitcode.UserError || stderr != "error: search text required\n" {
		t.Errorf("expected search text error, got %d %q", code, stderr)
	}
}

// Tests for add command
func TestAddCommand_Success(t *testing.T) {
	svc := testutil.NewFakeService()

	stdout, stderr, code := runCommand(t, &commands.AddCmd{}, svc, []string{"Buy", "milk"}, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if stdout != "ok\n" {
		t.Errorf("expected 'ok\\n', got %q", stdout)
	}
	if got := titlesOf(svc.Tasks()); got != "Buy milk" {
		t.Errorf("expected [Buy milk], got %q", got)
	}
}

func TestAddCommand_Quiet(t *testing.T) {
	svc := testutil.NewFakeService()

	stdout, _, code := runCommand(t, &commands.AddCmd{}, svc, []string{"Buy milk"}, true)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "" {
		t.Errorf("expected no stdout in quiet mode, got %q", stdout)
	}
}

func TestAddCommand_NoTitle(t *testing.T) {
	svc := testutil.NewFakeService()

	for _, args := range [][]string{nil, {"  "}} {
		_, stderr, code := runCommand(t, &commands.AddCmd{}, svc, args, false)
		if code != exitcode.UserError {
			t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
		}
		if stderr != "error: title required\n" {
			t.Errorf("expected 'error: title required\\n', got %q", stderr)
		}
	}
	if len(svc.Tasks()) != 0 {
		t.Error("no task should be created")
	}
}

func TestAddCommand_StrictSaveFailure(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.CreateErr = &service.PersistenceError{Op: "write", Err: errors.New("disk full")}

	_, stderr, code := runCommand(t, &commands.AddCmd{}, svc, []string{"x"}, false)

	if code != exitcode.StoreError {
		t.Errorf("expected exit code %d, got %d", exitcode.StoreError, code)
	}
	if stderr != "error: store error: write task list: disk full\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

// Tests for edit command
func TestEditCommand(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("Buy milk", false)
	svc.AddTask("Walk dog", false)

	stdout, stderr, code := runCommand(t, &commands.EditCmd{}, svc, []string{"2", "Walk", "the", "dog"}, false)

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d (%q)", exitcode.Success, code, stderr)
	}
	if stdout != "ok\n" {
		t.Errorf("expected 'ok\\n', got %q", stdout)
	}
	if got := titlesOf(svc.Tasks()); got != "Buy milk,Walk the dog" {
		t.Errorf("unexpected tasks %q", got)
	}
}

func TestEditCommand_Errors(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("Buy milk", false)

	tests := []struct {
		name   string
		args   []string
		stderr string
	}{
		{"no ref", nil, "error: task reference required\n"},
		{"no title", []string{"1"}, "error: title required\n"},
		{"bad ref", []string{"x", "title"}, "error: invalid task reference: x\n"},
		{"out of range", []string{"2", "title"}, "error: task number out of range: 2\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, stderr, code := runCommand(t, &commands.EditCmd{}, svc, tt.args, false)
			if code != exitcode.UserError {
				t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
			}
			if stderr != tt.stderr {
				t.Errorf("expected %q, got %q", tt.stderr, stderr)
			}
		})
	}
}

// Tests for done, reopen and toggle commands
func TestDoneCommand_Success(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("Buy milk", false)
	svc.AddTask("Buy eggs", false)
	svc.AddTask("Buy bread", false)

	stdout, stderr, code := runCommand(t, &commands.DoneCmd{}, svc, []string{"1,3"}, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if stdout != "ok\n" {
		t.Errorf("expected 'ok\\n', got %q", stdout)
	}
	if got := titlesOf(svc.Tasks()); got != "Buy milk*,Buy eggs,Buy bread*" {
		t.Errorf("unexpected tasks %q", got)
	}
}

func TestDoneCommand_SearchView(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("Buy milk", false)
	svc.AddTask("Walk dog", false)
	svc.AddTask("Milk shake", false)

	registered := &commands.DoneCmd{}
	registerFlags(t, registered, "--search", "milk")
	_, _, code := runCommand(t, registered, svc, []string{"2"}, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if got := titlesOf(svc.Tasks()); got != "Buy milk,Walk dog,Milk shake*" {
		t.Errorf("unexpected tasks %q", got)
	}
}

func TestDoneCommand_NoRef(t *testing.T) {
	svc := testutil.NewFakeService()

	_, stderr, code := runCommand(t, &commands.DoneCmd{}, svc, nil, false)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stderr != "error: task reference required\n" {
		t.Errorf("expected 'error: task reference required\\n', got %q", stderr)
	}
}

func TestDoneCommand_OutOfRangeChangesNothing(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("Buy milk", false)

	_, stderr, code := runCommand(t, &commands.DoneCmd{}, svc, []string{"1", "5"}, false)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stderr != "error: task number out of range: 5\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
	if got := titlesOf(svc.Tasks()); got != "Buy milk" {
		t.Errorf("expected no change, got %q", got)
	}
}

func TestDoneCommand_StaleTask(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("Buy milk", false)
	svc.UpdateErr = &service.NotFoundError{ID: "task1"}

	_, stderr, code := runCommand(t, &commands.DoneCmd{}, svc, []string{"1"}, false)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if !strings.Contains(stderr, "task no longer exists") {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

func TestReopenAndToggleCommands(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("a", true)
	svc.AddTask("b", false)

	if _, _, code := runCommand(t, &commands.ReopenCmd{}, svc, []string{"1"}, true); code != exitcode.Success {
		t.Fatalf("reopen: exit code %d", code)
	}
	if got := titlesOf(svc.Tasks()); got != "a,b" {
		t.Errorf("after reopen: %q", got)
	}

	if _, _, code := runCommand(t, &commands.ToggleCmd{}, svc, []string{"1-2"}, true); code != exitcode.Success {
		t.Fatalf("toggle: exit code %d", code)
	}
	if got := titlesOf(svc.Tasks()); got != "a*,b*" {
		t.Errorf("after toggle: %q", got)
	}
}

// Tests for rm command
func TestRmCommand_Success(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("Buy milk", false)
	svc.AddTask("Buy eggs", false)
	svc.AddTask("Buy bread", false)

	stdout, stderr, code := runCommand(t, &commands.RmCmd{}, svc, []string{"1", "3"}, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	expected := "removed: Buy milk\nremoved: Buy bread\nok\n"
	if stdout != expected {
		t.Errorf("expected %q, got %q", expected, stdout)
	}
	if got := titlesOf(svc.Tasks()); got != "Buy eggs" {
		t.Errorf("unexpected tasks %q", got)
	}
}

func TestRmCommand_SearchView(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("Buy milk", false)
	svc.AddTask("Walk dog", false)
	svc.AddTask("Milk shake", false)

	cmd := &commands.RmCmd{}
	registerFlags(t, cmd, "-s", "milk")
	_, _, code := runCommand(t, cmd, svc, []string{"2"}, true)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if got := titlesOf(svc.Tasks()); got != "Buy milk,Walk dog" {
		t.Errorf("unexpected tasks %q", got)
	}
}

func TestRmCommand_OutOfRange(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("Buy milk", false)

	_, stderr, code := runCommand(t, &commands.RmCmd{}, svc, []string{"1,4"}, false)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stderr != "error: task number out of range: 4\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
	if len(svc.Tasks()) != 1 {
		t.Error("nothing should be deleted")
	}
}

func TestRmCommand_NoRef(t *testing.T) {
	_, stderr, code := runCommand(t, &commands.RmCmd{}, testutil.NewFakeService(), nil, false)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stderr != "error: task reference required\n" {
		t.Errorf("expected 'error: task reference required\\n', got %q", stderr)
	}
}

// Tests for seed command
func TestSeedCommand(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("Buy milk", false)

	stdout, stderr, code := runCommand(t, &commands.SeedCmd{}, svc, nil, false)

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d (%q)", exitcode.Success, code, stderr)
	}
	if stdout != "   2  [ ] Carpe diem\n" {
		t.Errorf("unexpected output %q", stdout)
	}
}

func TestSeedCommand_Failure(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.SeedErr = errors.New("quote service status: 503")

	_, stderr, code := runCommand(t, &commands.SeedCmd{}, svc, nil, false)

	if code != exitcode.StoreError {
		t.Errorf("expected exit code %d, got %d", exitcode.StoreError, code)
	}
	if stderr != "error: quote service status: 503\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
	if len(svc.Tasks()) != 0 {
		t.Error("no task should be added")
	}
}

// plainService hides the QuoteSeeder implementation of FakeService.
type plainService struct{ service.Service }

func TestSeedCommand_Unsupported(t *testing.T) {
	var outBuf, errBuf bytes.Buffer
	code := (&commands.SeedCmd{}).Run(context.Background(), testConfig(t, false),
		plainService{testutil.NewFakeService()}, nil, &outBuf, &errBuf)

	if code != exitcode.StoreError {
		t.Errorf("expected exit code %d, got %d", exitcode.StoreError, code)
	}
}

func TestRegistry_DuplicateName(t *testing.T) {
	r := commands.NewRegistry()
	if err := r.Register(&commands.AddCmd{}); err != nil {
		t.Fatal(err)
	}
	if err := r.Register(&commands.AddCmd{}); err == nil {
		t.Error("expected duplicate registration error")
	}

	if cmd, ok := r.Find("create"); !ok || cmd.Name() != "add" {
		t.Error("expected create to resolve to add")
	}
}

// renamedAdd claims the "create" alias under a different name.
type renamedAdd struct{ commands.AddCmd }

func (c *renamedAdd) Name() string { return "new" }

func TestRegistry_AliasClash(t *testing.T) {
	r := commands.NewRegistry()
	if err := r.Register(&commands.AddCmd{}); err != nil {
		t.Fatal(err)
	}

	err := r.Register(&renamedAdd{})
	if err == nil || err.Error() != "command alias already registered: create" {
		t.Errorf("expected alias clash error, got %v", err)
	}
	if _, ok := r.Find("new"); ok {
		t.Error("a rejected command must not be registered under any word")
	}
}

func TestRegistry_AllSortedOnce(t *testing.T) {
	r := commands.NewRegistry()
	for _, c := range []commands.Command{&commands.RmCmd{}, &commands.AddCmd{}, &commands.ListCmd{}} {
		if err := r.Register(c); err != nil {
			t.Fatal(err)
		}
	}

	var names []string
	for _, c := range r.All() {
		names = append(names, c.Name())
	}
	if got := strings.Join(names, ","); got != "add,list,rm" {
		t.Errorf("expected %q, got %q", "add,list,rm", got)
	}
}
