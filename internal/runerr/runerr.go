// Package runerr defines the fatal error kinds of a runner invocation and the
// process exit codes that separate "the tool failed" from "the documents differ".
package runerr

import (
	"errors"
	"fmt"
)

// Exit codes for a runner invocation.
const (
	ExitNoDiff      = 0 // Query ran, no difference reported
	ExitDiff        = 1 // Query ran, a difference was reported
	ExitRunnerError = 2 // Configuration, input, connection or query failure
)

// Kind classifies a fatal runner error.
type Kind int

// Error kinds. Every kind is fatal and maps to ExitRunnerError.
const (
	Unknown Kind = iota
	UsageError
	ConfigNotFound
	ConfigParseError
	UnsupportedEngine
	InputIOError
	InputParseError
	ConnectionError
	StatementPrepareError
	QueryExecutionError
	UnsupportedResultType
)

var kindNames = map[Kind]string{
	Unknown:               "unknown",
	UsageError:            "usage error",
	ConfigNotFound:        "config not found",
	ConfigParseError:      "config parse error",
	UnsupportedEngine:     "unsupported engine",
	InputIOError:          "input io error",
	InputParseError:       "input parse error",
	ConnectionError:       "connection error",
	StatementPrepareError: "statement prepare error",
	QueryExecutionError:   "query execution error",
	UnsupportedResultType: "unsupported result type",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Error is a fatal runner error carrying its Kind.
type Error struct {
	Kind Kind   // What failed
	Msg  string // Human-readable message
	Err  error  // Underlying error (optional)
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error of the same Kind.
// This lets callers write errors.Is(err, runerr.New(runerr.ConfigNotFound, "")).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// New creates an Error of the given kind.
func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

// Newf creates an Error of the given kind with a formatted message.
func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Wrap attaches a kind and message to err. A nil err yields nil.
func Wrap(kind Kind, msg string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Msg: msg, Err: err}
}

// KindOf returns the Kind of the outermost *Error in err's chain,
// or Unknown if there is none.
func KindOf(err error) Kind {
	var re *Error
	if errors.As(err, &re) {
		return re.Kind
	}
	return Unknown
}

// ExitCode returns the process exit code for a run that ended with err.
// A nil err means the caller decides between ExitNoDiff and ExitDiff.
func ExitCode(err error) int {
	if err == nil {
		return ExitNoDiff
	}
	return ExitRunnerError
}
