// Package adapter provides the database adapter contract used to run a diff
// query, and the registry that maps engine identifiers to adapters.
//
// Concrete adapter implementations are in pkg/adapters/ subdirectories and
// register themselves in their init() functions.
package adapter

import (
	"context"
	"database/sql"
)

// Config holds configuration for connecting to a database.
type Config struct {
	// Type is the canonical engine name (e.g., "postgres", "duckdb").
	Type string

	// DSN is the connection target as written by the user. When set it takes
	// precedence over the discrete fields below.
	DSN string

	// Path is the file path for file-based databases (DuckDB, SQLite).
	// Use ":memory:" for in-memory databases.
	Path string

	Host     string
	Port     int
	Database string
	Username string
	Password string

	// Options contains additional driver-specific options (e.g., sslmode).
	Options map[string]string

	// Params holds adapter-specific configuration, decoded by the adapter.
	Params map[string]any
}

// Adapter defines the interface that all database adapters must implement.
type Adapter interface {
	// Connect opens and verifies a connection to the database.
	Connect(ctx context.Context, cfg Config) error

	// Conn acquires the single connection used to prepare and run the diff query.
	// The caller must close it.
	Conn(ctx context.Context) (*sql.Conn, error)

	// Close closes the database and releases resources.
	Close() error

	// DialectName returns the engine name for this adapter (e.g., "postgres").
	DialectName() string
}

// SessionInitializer is implemented by adapters that configure the acquired
// connection before the diff query is prepared.
type SessionInitializer interface {
	InitSession(ctx context.Context, conn *sql.Conn) error
}
