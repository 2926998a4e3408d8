package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/leapstack-labs/jd-sql-spec-runner/internal/runerr"
	"github.com/leapstack-labs/jd-sql-spec-runner/pkg/adapter"
	"github.com/spf13/pflag"
)

// Options controls where Load looks for configuration.
type Options struct {
	// ConfigFile is an explicit config path (-c/--config). It must exist.
	ConfigFile string

	// SearchDirs are probed in order for ConfigFileNames when ConfigFile is
	// empty. Nil means DefaultSearchDirs().
	SearchDirs []string

	// Flags holds runner flags. Only flags that were set override other layers.
	Flags *pflag.FlagSet
}

// flagKeys maps runner flag names to config keys. Flags not listed here are
// not configuration (config, help, version).
var flagKeys = map[string]string{
	"engine":     "engine",
	"dsn":        "dsn",
	"sql":        "sql",
	"sql-file":   "sql_file",
	"timeout":    "timeout",
	"verbose":    "verbose",
	"log-format": "log_format",
}

// DefaultSearchDirs returns the working directory followed by the directory
// of the running executable.
func DefaultSearchDirs() []string {
	var dirs []string
	if cwd, err := os.Getwd(); err == nil {
		dirs = append(dirs, cwd)
	}
	if exe, err := os.Executable(); err == nil {
		if resolved, err := filepath.EvalSymlinks(exe); err == nil {
			exe = resolved
		}
		dir := filepath.Dir(exe)
		if len(dirs) == 0 || dirs[0] != dir {
			dirs = append(dirs, dir)
		}
	}
	return dirs
}

// FindConfigFile returns the config file to load. An explicit path wins and
// must exist. Otherwise each dir is searched for ConfigFileNames in order.
func FindConfigFile(explicit string, dirs []string) (string, error) {
	if explicit != "" {
		info, err := os.Stat(explicit)
		if err != nil {
			return "", runerr.Wrap(runerr.ConfigNotFound, fmt.Sprintf("failed to read config file: %s", explicit), err)
		}
		if info.IsDir() {
			return "", runerr.Newf(runerr.ConfigNotFound, "failed to read config file: %s is a directory", explicit)
		}
		return explicit, nil
	}

	for _, dir := range dirs {
		for _, name := range ConfigFileNames {
			candidate := filepath.Join(dir, name)
			if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
				return candidate, nil
			}
		}
	}

	return "", runerr.Newf(runerr.ConfigNotFound,
		"config file not found: looked for %s in %s",
		strings.Join(ConfigFileNames, ", "), strings.Join(dirs, ", "))
}

// parserFor picks the koanf parser by file extension. YAML is the default.
func parserFor(path string) koanf.Parser {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return toml.Parser()
	}
	return yaml.Parser()
}

// envKey maps JDSQL_TARGET_HOST to target.host and JDSQL_SQL_FILE to sql_file.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	if rest, ok := strings.CutPrefix(key, "target_"); ok {
		return "target." + rest
	}
	return key
}

// Load resolves configuration from defaults, the config file, environment
// variables and flags, then validates it.
// Precedence (highest to lowest): flags > env vars > config file > defaults
func Load(opts Options) (*Config, error) {
	k := koanf.New(".")

	// 1. Defaults
	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Config file
	dirs := opts.SearchDirs
	if dirs == nil {
		dirs = DefaultSearchDirs()
	}
	path, findErr := FindConfigFile(opts.ConfigFile, dirs)
	if findErr != nil && opts.ConfigFile != "" {
		return nil, findErr
	}
	if path != "" {
		if err := k.Load(file.Provider(path), parserFor(path)); err != nil {
			return nil, runerr.Wrap(runerr.ConfigParseError, fmt.Sprintf("failed to parse config file: %s", path), err)
		}
	}

	// 3. Environment variables (JDSQL_ prefix)
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Flags (highest priority)
	var flagSQLFile string
	if opts.Flags != nil {
		if opts.Flags.Changed("sql-file") {
			if v, _ := opts.Flags.GetString("sql-file"); v != "" {
				flagSQLFile, _ = filepath.Abs(v)
			}
		}
		if err := k.Load(posflag.ProviderWithFlag(opts.Flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			key, ok := flagKeys[f.Name]
			if !ok || !f.Changed {
				return "", nil
			}
			return key, posflag.FlagVal(opts.Flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, runerr.Wrap(runerr.ConfigParseError, "unable to decode config", err)
	}
	cfg.Source = path

	// Without a file, flags and env must carry the essentials.
	if path == "" && (cfg.Engine == "" || (cfg.SQL == "" && cfg.SQLFile == "")) {
		return nil, findErr
	}

	cfg.Engine = adapter.Canonical(cfg.Engine)
	cfg.LogFormat = strings.ToLower(cfg.LogFormat)
	expandConfigEnvVars(&cfg)

	if flagSQLFile != "" {
		cfg.SQLFile = flagSQLFile
	} else if cfg.SQLFile != "" && path != "" {
		cfg.SQLFile = resolvePathRelativeTo(cfg.SQLFile, filepath.Dir(path))
	}
	if err := resolveSQL(&cfg); err != nil {
		return nil, err
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// resolveSQL reads sql_file into SQL.
func resolveSQL(cfg *Config) error {
	if cfg.SQLFile == "" {
		return nil
	}
	if strings.TrimSpace(cfg.SQL) != "" {
		return runerr.New(runerr.ConfigParseError, "sql and sql_file are mutually exclusive")
	}
	data, err := os.ReadFile(cfg.SQLFile)
	if err != nil {
		return runerr.Wrap(runerr.ConfigParseError, fmt.Sprintf("failed to read sql_file: %s", cfg.SQLFile), err)
	}
	cfg.SQL = string(data)
	return nil
}

// resolvePathRelativeTo resolves a path relative to baseDir if it's not absolute.
func resolvePathRelativeTo(path, baseDir string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(baseDir, path)
}

var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// expandEnvVars expands ${VAR} patterns from the environment. Unset
// variables are left as written.
func expandEnvVars(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		name := match[2 : len(match)-1]
		if val, ok := os.LookupEnv(name); ok {
			return val
		}
		return match
	})
}

// expandConfigEnvVars expands environment variables in connection fields.
func expandConfigEnvVars(c *Config) {
	c.DSN = expandEnvVars(c.DSN)
	c.Target.Host = expandEnvVars(c.Target.Host)
	c.Target.Database = expandEnvVars(c.Target.Database)
	c.Target.Path = expandEnvVars(c.Target.Path)
	c.Target.User = expandEnvVars(c.Target.User)
	c.Target.Password = expandEnvVars(c.Target.Password)
}
