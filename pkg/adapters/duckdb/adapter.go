// Package duckdb provides a DuckDB database adapter.
package duckdb

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"sort"
	"strings"

	"github.com/leapstack-labs/jd-sql-spec-runner/pkg/adapter"

	_ "github.com/marcboeker/go-duckdb" // duckdb driver
)

var settingName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Adapter implements the adapter.Adapter interface for DuckDB.
type Adapter struct {
	adapter.BaseSQLAdapter
	params *Params
}

// New creates a new DuckDB adapter instance.
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
	return "duckdb"
}

// Connect establishes a connection to DuckDB.
// An empty target opens an in-memory database.
func (a *Adapter) Connect(ctx context.Context, cfg adapter.Config) error {
	params, err := ParseParams(cfg.Params)
	if err != nil {
		return err
	}
	a.params = params

	path := databasePath(cfg)
	a.Logger.Debug("connecting to duckdb", slog.String("path", path))

	return a.Open(ctx, "duckdb", path, cfg)
}

// databasePath picks the database file from the DSN, Path or Database
// fields, in that order.
func databasePath(cfg adapter.Config) string {
	for _, p := range []string{cfg.DSN, cfg.Path, cfg.Database} {
		if p != "" {
			return p
		}
	}
	return ":memory:"
}

// InitSession loads extensions and applies settings on the query connection.
func (a *Adapter) InitSession(ctx context.Context, conn *sql.Conn) error {
	if a.params == nil {
		return nil
	}

	for _, ext := range a.params.Extensions {
		if _, err := conn.ExecContext(ctx, "LOAD "+quoteLiteral(ext)); err != nil {
			return fmt.Errorf("failed to load extension %s: %w", ext, err)
		}
	}

	keys := make([]string, 0, len(a.params.Settings))
	for k := range a.params.Settings {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		if !settingName.MatchString(k) {
			return fmt.Errorf("invalid setting name %q", k)
		}
		stmt := fmt.Sprintf("SET %s = %s", k, quoteLiteral(a.params.Settings[k]))
		if _, err := conn.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply setting %s: %w", k, err)
		}
	}
	return nil
}

func quoteLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// Ensure Adapter implements the adapter interfaces
var (
	_ adapter.Adapter            = (*Adapter)(nil)
	_ adapter.SessionInitializer = (*Adapter)(nil)
)
