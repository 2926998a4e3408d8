package cli

import (
	"strings"

	"github.com/leapstack-labs/jd-sql-spec-runner/internal/config"
	"github.com/leapstack-labs/jd-sql-spec-runner/internal/runerr"
	"github.com/spf13/pflag"
)

// registerFlags defines the runner's own flags. Everything else on the
// command line belongs to jd and is ignored.
func registerFlags(fs *pflag.FlagSet) {
	fs.StringP("config", "c", "", "config file (default: jd-sql-spec.yaml next to the working dir or executable)")
	fs.String("engine", "", "SQL engine (postgres|duckdb|sqlite)")
	fs.String("dsn", "", "connection string for the engine")
	fs.String("sql", "", "diff query; $1/? is document A, $2/? is document B")
	fs.String("sql-file", "", "read the diff query from a file")
	fs.Duration("timeout", 0, "abort the query after this duration (0 means no limit)")
	fs.Bool("verbose", false, "debug logging on stderr")
	fs.String("log-format", config.DefaultLogFormat, "log format (auto|text|json)")
	fs.BoolP("help", "h", false, "help for jd-sql-spec-runner")
	fs.Bool("version", false, "print the version and exit")
}

// splitArgs separates runner flags from the rest of the command line.
// Runner flags are matched by exact name anywhere in args; a value flag
// given without "=" takes the following argument as its value. Arguments
// after "--" are never treated as runner flags.
func splitArgs(fs *pflag.FlagSet, args []string) (runner, rest []string) {
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			rest = append(rest, args[i+1:]...)
			break
		}

		f := lookupFlag(fs, arg)
		if f == nil {
			rest = append(rest, arg)
			continue
		}

		runner = append(runner, arg)
		if f.Value.Type() != "bool" && !strings.Contains(arg, "=") && i+1 < len(args) {
			i++
			runner = append(runner, args[i])
		}
	}
	return runner, rest
}

// lookupFlag resolves "--name", "--name=value", "-x" and "-x=value" forms.
// Single-dash words such as jd's -color or -set are not runner flags.
func lookupFlag(fs *pflag.FlagSet, arg string) *pflag.Flag {
	switch {
	case strings.HasPrefix(arg, "--") && len(arg) > 2:
		name, _, _ := strings.Cut(arg[2:], "=")
		return fs.Lookup(name)
	case strings.HasPrefix(arg, "-") && len(arg) > 1:
		name, _, _ := strings.Cut(arg[1:], "=")
		if len(name) != 1 {
			return nil
		}
		return fs.ShorthandLookup(name)
	default:
		return nil
	}
}

// inputFiles returns the last two positional arguments as the A and B paths
// and whatever precedes them.
func inputFiles(rest []string) (a, b string, ignored []string, err error) {
	switch len(rest) {
	case 0:
		return "", "", nil, runerr.New(runerr.UsageError, "missing first input file argument")
	case 1:
		return "", "", nil, runerr.New(runerr.UsageError, "missing second input file argument")
	}
	n := len(rest)
	return rest[n-2], rest[n-1], rest[:n-2], nil
}
