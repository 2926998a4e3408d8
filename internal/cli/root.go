// Package cli provides the command-line interface of jd-sql-spec-runner.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	// Engines available to the runner.
	_ "github.com/leapstack-labs/jd-sql-spec-runner/pkg/adapters/duckdb"
	_ "github.com/leapstack-labs/jd-sql-spec-runner/pkg/adapters/postgres"
	_ "github.com/leapstack-labs/jd-sql-spec-runner/pkg/adapters/sqlite"
)

// Version information (set at build time).
var (
	Version   = "0.1.0"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// NewRootCmd creates and returns the root command.
//
// Flag parsing is done by the command itself: the jd test harness passes
// its own flags (-set, -color, -f=patch ...) which must be tolerated, so only
// the runner's flags are picked out of the argument list.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "jd-sql-spec-runner [-c FILE] [flags] [jd flags...] A B",
		Short: "Run the jd spec suite against a SQL implementation of jd",
		Long: `jd-sql-spec-runner is a drop-in replacement for the jd binary used by the
jd spec test harness. It reads two JSON documents, binds them as parameters to
a configured diff query, and reports the result the way jd does:

  exit 0  no difference
  exit 1  difference found (the diff is written to stdout)
  exit 2  runner, configuration or connection error

Empty input files are passed to the query as NULL.`,
		Version:            Version,
		DisableFlagParsing: true,
		SilenceUsage:       true,
		SilenceErrors:      true,
		RunE:               runRoot,
	}

	registerFlags(rootCmd.Flags())

	return rootCmd
}

// Run executes the runner with args and returns the process exit status.
// Only the diff payload is written to stdout.
func Run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if args == nil {
		// cobra falls back to os.Args for nil.
		args = []string{}
	}
	rootCmd := NewRootCmd()
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	err := rootCmd.ExecuteContext(ctx)
	if err != nil && !isSilent(err) {
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
	}
	return ExitCode(err)
}

// Execute runs the root command against the process arguments.
func Execute() int {
	return Run(context.Background(), os.Args[1:], os.Stdout, os.Stderr)
}
