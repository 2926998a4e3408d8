// Package sqlite provides a SQLite database adapter backed by the pure-Go
// modernc.org/sqlite driver. SQLite ships the JSON1 functions, so a diff query
// can be written against json_* without a server.
//
// This file registers the adapter with the adapter registry on import.
package sqlite

import (
	"context"
	"io"
	"log/slog"

	"github.com/leapstack-labs/jd-sql-spec-runner/pkg/adapter"

	_ "modernc.org/sqlite" // sqlite driver
)

// Adapter implements the adapter.Adapter interface for SQLite.
type Adapter struct {
	adapter.BaseSQLAdapter
}

// New creates a new SQLite adapter instance.
// If logger is nil, a discard logger is used.
func New(logger *slog.Logger) *Adapter {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Adapter{
		BaseSQLAdapter: adapter.BaseSQLAdapter{Logger: logger},
	}
}

// DialectName returns the engine name for this adapter.
func (a *Adapter) DialectName() string {
	return "sqlite"
}

// Connect opens the SQLite database. An empty target opens an in-memory database.
func (a *Adapter) Connect(ctx context.Context, cfg adapter.Config) error {
	dsn := cfg.DSN
	if dsn == "" {
		dsn = cfg.Path
	}
	if dsn == "" {
		dsn = ":memory:"
	}

	a.Logger.Debug("opening sqlite database", slog.String("path", dsn))

	return a.Open(ctx, "sqlite", dsn, cfg)
}

func init() {
	adapter.Register("sqlite", func(logger *slog.Logger) adapter.Adapter { return New(logger) })
	adapter.RegisterAlias("sqlite3", "sqlite")
}

// Ensure Adapter implements adapter.Adapter interface
var _ adapter.Adapter = (*Adapter)(nil)
