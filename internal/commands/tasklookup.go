package commands

import (
	"context"
	"errors"
	"fmt"
	"io"

	"todo/internal/exitcode"
	"todo/internal/service"
)

// errNumberOutOfRange reports a 1-based task number outside the displayed view.
type errNumberOutOfRange struct {
	num int
}

func (e *errNumberOutOfRange) Error() string {
	return fmt.Sprintf("task number out of range: %d", e.num)
}

// findTasksByNumber returns the tasks at the given 1-based numbers of the
// view Query(filter). Any number outside the view fails the whole lookup.
func findTasksByNumber(ctx context.Context, svc service.Service, filter string, nums []int) ([]service.Task, error) {
	view, err := svc.Query(ctx, filter)
	if err != nil {
		return nil, err
	}

	tasks := make([]service.Task, 0, len(nums))
	for _, n := range nums {
		if n < 1 || n > len(view) {
			return nil, &errNumberOutOfRange{num: n}
		}
		tasks = append(tasks, view[n-1])
	}
	return tasks, nil
}

// reportError prints err in the CLI's wording and returns the matching exit code.
func reportError(errOut io.Writer, err error) int {
	var rangeErr *errNumberOutOfRange
	var posErr *service.PositionError
	var nfErr *service.NotFoundError

	switch {
	case errors.As(err, &rangeErr):
		fmt.Fprintf(errOut, "error: %v\n", rangeErr)
		return exitcode.UserError
	case errors.As(err, &posErr):
		fmt.Fprintf(errOut, "error: task number out of range: %d\n", posErr.Position+1)
		return exitcode.UserError
	case errors.As(err, &nfErr):
		fmt.Fprintln(errOut, "error: task no longer exists (list changed, run 'todo list')")
		return exitcode.UserError
	default:
		fmt.Fprintf(errOut, "error: store error: %v\n", err)
		return exitcode.StoreError
	}
}
