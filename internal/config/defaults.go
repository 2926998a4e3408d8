package config

const DefaultLogFormat = "auto"

// EnvPrefix is the prefix of environment variables read by the loader.
const EnvPrefix = "JDSQL_"

// ConfigFileNames are probed in order during discovery.
var ConfigFileNames = []string{"jd-sql-spec.yaml", "jd-sql-spec.yml", "jd-sql-spec.toml"}

// Log formats accepted by --log-format.
var LogFormats = []string{"auto", "text", "json"}

// inMemoryEngines open an in-memory database when no target is configured.
var inMemoryEngines = map[string]bool{
	"duckdb": true,
	"sqlite": true,
}

func defaults() map[string]any {
	return map[string]any{
		"verbose":    false,
		"log_format": DefaultLogFormat,
	}
}
