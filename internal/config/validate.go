package config

import (
	"slices"
	"strings"

	"github.com/leapstack-labs/jd-sql-spec-runner/internal/runerr"
	"github.com/leapstack-labs/jd-sql-spec-runner/pkg/adapter"
)

// Validate checks a resolved configuration. The engine must be registered
// and a query must be present; no connection is attempted.
func Validate(c *Config) error {
	if c.Engine == "" {
		return runerr.New(runerr.ConfigParseError, "engine is required")
	}
	if !adapter.IsRegistered(c.Engine) {
		unknown := &adapter.UnknownAdapterError{Type: c.Engine, Available: adapter.ListAdapters()}
		return runerr.New(runerr.UnsupportedEngine, unknown.Error())
	}

	if strings.TrimSpace(c.SQL) == "" {
		return runerr.New(runerr.ConfigParseError, "sql is required")
	}

	if c.DSN == "" && c.Target.IsZero() && !inMemoryEngines[c.Engine] {
		return runerr.Newf(runerr.ConfigParseError, "dsn or target is required for engine %s", c.Engine)
	}

	if c.Timeout < 0 {
		return runerr.Newf(runerr.ConfigParseError, "timeout must not be negative, got %s", c.Timeout)
	}

	if !slices.Contains(LogFormats, c.LogFormat) {
		return runerr.Newf(runerr.ConfigParseError, "invalid log_format %q (must be one of: %s)",
			c.LogFormat, strings.Join(LogFormats, ", "))
	}

	return nil
}
