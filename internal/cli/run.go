package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/leapstack-labs/jd-sql-spec-runner/internal/config"
	"github.com/leapstack-labs/jd-sql-spec-runner/internal/document"
	"github.com/leapstack-labs/jd-sql-spec-runner/internal/query"
	"github.com/leapstack-labs/jd-sql-spec-runner/internal/runerr"
	"github.com/leapstack-labs/jd-sql-spec-runner/internal/signal"
	"github.com/leapstack-labs/jd-sql-spec-runner/pkg/adapter"
	"github.com/spf13/cobra"
)

// runRoot is the whole runner pipeline: arguments, config, documents,
// query, and the mapped exit status.
func runRoot(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()
	runnerArgs, rest := splitArgs(flags, args)
	if err := flags.Parse(runnerArgs); err != nil {
		return runerr.Wrap(runerr.UsageError, "invalid arguments", err)
	}

	if help, _ := flags.GetBool("help"); help {
		return cmd.Help()
	}
	if version, _ := flags.GetBool("version"); version {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s (commit %s, built %s)\n", cmd.Name(), Version, GitCommit, BuildDate)
		return nil
	}

	pathA, pathB, ignored, err := inputFiles(rest)
	if err != nil {
		return err
	}

	configFile, _ := flags.GetString("config")
	cfg, err := config.Load(config.Options{ConfigFile: configFile, Flags: flags})
	if err != nil {
		return err
	}

	logger := newLogger(cmd.ErrOrStderr(), cfg.LogFormat, cfg.Verbose)
	logger.Debug("resolved configuration",
		slog.String("config_file", cfg.Source),
		slog.String("engine", cfg.Engine),
	)
	if len(ignored) > 0 {
		logger.Debug("ignoring jd arguments", slog.Any("args", ignored))
	}

	docA, docB, err := document.LoadPair(pathA, pathB)
	if err != nil {
		return err
	}
	logger.Debug("loaded documents",
		slog.String("a", pathA), slog.Bool("a_void", docA.IsVoid()),
		slog.String("b", pathB), slog.Bool("b_void", docB.IsVoid()),
	)

	adp, err := adapter.NewAdapter(cfg.AdapterConfig(), logger)
	if err != nil {
		return runerr.Wrap(runerr.UnsupportedEngine, "invalid engine", err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	out, err := query.NewExecutor(adp, logger).Execute(ctx, query.Request{
		Target: cfg.AdapterConfig(),
		SQL:    cfg.SQL,
		A:      docA,
		B:      docB,
	})
	if err != nil {
		return err
	}

	res, err := signal.Map(out)
	if err != nil {
		return err
	}
	if len(res.Stdout) > 0 {
		if _, err := cmd.OutOrStdout().Write(res.Stdout); err != nil {
			return fmt.Errorf("failed to write diff: %w", err)
		}
	}

	logger.Debug("run complete", slog.String("outcome", out.Kind.String()), slog.Int("exit_code", res.ExitCode))
	if res.ExitCode != runerr.ExitNoDiff {
		return &ExitError{Code: res.ExitCode}
	}
	return nil
}
