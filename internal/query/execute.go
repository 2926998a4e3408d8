package query

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/leapstack-labs/jd-sql-spec-runner/internal/document"
	"github.com/leapstack-labs/jd-sql-spec-runner/internal/runerr"
	"github.com/leapstack-labs/jd-sql-spec-runner/pkg/adapter"
)

// Request is a single diff query invocation.
type Request struct {
	Target adapter.Config    // Connection target
	SQL    string            // Query text with two positional parameters
	A      document.Document // Bound to parameter 1
	B      document.Document // Bound to parameter 2
}

// Executor runs a Request against one adapter.
type Executor struct {
	Adapter adapter.Adapter
	Logger  *slog.Logger
}

// NewExecutor creates an Executor. If logger is nil, a discard logger is used.
func NewExecutor(adp adapter.Adapter, logger *slog.Logger) *Executor {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Executor{Adapter: adp, Logger: logger}
}

// Execute connects, prepares the query on a single connection, binds A and B
// and classifies the first row of the result. Every resource acquired here is
// released before returning.
func (e *Executor) Execute(ctx context.Context, req Request) (Outcome, error) {
	engine := e.Adapter.DialectName()

	if err := e.Adapter.Connect(ctx, req.Target); err != nil {
		return Outcome{}, runerr.Wrap(runerr.ConnectionError, fmt.Sprintf("failed to connect to %s", engine), err)
	}
	defer func() { _ = e.Adapter.Close() }()

	conn, err := e.Adapter.Conn(ctx)
	if err != nil {
		return Outcome{}, runerr.Wrap(runerr.ConnectionError, fmt.Sprintf("failed to connect to %s", engine), err)
	}
	defer func() { _ = conn.Close() }()

	if si, ok := e.Adapter.(adapter.SessionInitializer); ok {
		if err := si.InitSession(ctx, conn); err != nil {
			return Outcome{}, runerr.Wrap(runerr.ConnectionError, fmt.Sprintf("failed to initialize %s session", engine), err)
		}
	}

	stmt, err := conn.PrepareContext(ctx, req.SQL)
	if err != nil {
		return Outcome{}, runerr.Wrap(runerr.StatementPrepareError, "prepare SQL failed", err)
	}
	defer func() { _ = stmt.Close() }()

	e.Logger.Debug("executing diff query",
		slog.String("engine", engine),
		slog.Bool("a_void", req.A.IsVoid()),
		slog.Bool("b_void", req.B.IsVoid()),
	)

	//nolint:rowserrcheck // rows.Err() is checked by FirstCell
	rows, err := stmt.QueryContext(ctx, req.A.BindValue(), req.B.BindValue())
	if err != nil {
		return Outcome{}, runerr.Wrap(runerr.QueryExecutionError, "SQL execution failed", err)
	}
	defer func() { _ = rows.Close() }()

	out, err := Classify(rows, e.Logger)
	if err != nil {
		return Outcome{}, err
	}

	e.Logger.Debug("classified query result", slog.String("outcome", out.Kind.String()))
	return out, nil
}
