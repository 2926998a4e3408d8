package cli

import (
	"errors"
	"fmt"

	"github.com/leapstack-labs/jd-sql-spec-runner/internal/runerr"
)

// ExitError carries a non-zero exit status out of a command.
// A nil Err means the status is the result itself (a diff was found) and
// nothing is printed.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("exit status %d", e.Code)
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// ExitCode maps a command error to the process exit status.
func ExitCode(err error) int {
	if err == nil {
		return runerr.ExitNoDiff
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return runerr.ExitRunnerError
}

// isSilent reports whether err is a bare status that should not be printed.
func isSilent(err error) bool {
	var exitErr *ExitError
	return errors.As(err, &exitErr) && exitErr.Err == nil
}
