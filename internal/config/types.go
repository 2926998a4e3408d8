// Package config resolves the runner configuration: which engine to connect
// to, how to reach it, and the diff query to run.
//
// Values are layered with koanf. Precedence, highest first: runner flags,
// JDSQL_ environment variables, the config file, built-in defaults.
package config

import (
	"time"

	"github.com/leapstack-labs/jd-sql-spec-runner/pkg/adapter"
)

// Config is the resolved runner configuration.
type Config struct {
	// Engine is the canonical adapter name (postgres, duckdb, sqlite).
	Engine string `koanf:"engine"`

	// DSN is the connection string handed to the driver.
	// When empty, the connection is built from Target.
	DSN string `koanf:"dsn"`

	// SQL is the diff query. Parameter 1 is document A, parameter 2 is document B.
	SQL string `koanf:"sql"`

	// SQLFile is an alternative to SQL, resolved relative to the config file.
	SQLFile string `koanf:"sql_file"`

	// Target holds discrete connection settings used when DSN is empty.
	Target TargetConfig `koanf:"target"`

	// Params are adapter-specific settings (e.g. duckdb extensions).
	Params map[string]any `koanf:"params"`

	// Timeout bounds the whole query execution. Zero means no limit.
	Timeout time.Duration `koanf:"timeout"`

	Verbose   bool   `koanf:"verbose"`
	LogFormat string `koanf:"log_format"`

	// Source is the config file the values were read from.
	Source string `koanf:"-"`
}

// TargetConfig describes a database target field by field.
type TargetConfig struct {
	Host     string            `koanf:"host"`
	Port     int               `koanf:"port"`
	Database string            `koanf:"database"`
	Path     string            `koanf:"path"`
	User     string            `koanf:"user"`
	Password string            `koanf:"password"`
	Options  map[string]string `koanf:"options"`
}

// IsZero reports whether no target field is set.
func (t TargetConfig) IsZero() bool {
	return t.Host == "" && t.Port == 0 && t.Database == "" && t.Path == "" &&
		t.User == "" && t.Password == "" && len(t.Options) == 0
}

// AdapterConfig converts the resolved configuration into the adapter's connection config.
func (c *Config) AdapterConfig() adapter.Config {
	return adapter.Config{
		Type:     c.Engine,
		DSN:      c.DSN,
		Path:     c.Target.Path,
		Host:     c.Target.Host,
		Port:     c.Target.Port,
		Database: c.Target.Database,
		Username: c.Target.User,
		Password: c.Target.Password,
		Options:  c.Target.Options,
		Params:   c.Params,
	}
}
