package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/MakeNowJust/heredoc"
	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
	"github.com/yumosx/lazy/internal/config"
	"github.com/yumosx/lazy/internal/log"
	"github.com/yumosx/lazy/internal/version"
)

func init() {
	rootCmd.PersistentFlags().StringP("cwd", "c", "", "Current working directory")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "Debug")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Print progress to stderr")

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(listCmd)
}

var rootCmd = &cobra.Command{
	Use:   "lazyctl",
	Short: "Probe the thread-safety contract of lazy values",
	Long: heredoc.Doc(`
		lazyctl exercises csync.Lazy under contention and reports whether every
		property of the holder holds: single invocation, idempotence,
		non-forcing introspection, retry after failure and forcing equality.
	`),
	Example: heredoc.Doc(`
		# Run every scenario with the configured contention
		lazyctl check

		# Run two scenarios with 512 racing goroutines
		lazyctl check single-invocation lazy-map --goroutines 512

		# Emit a JSON report
		lazyctl check --format json

		# List the available scenarios
		lazyctl list
	`),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

func Execute(ctx context.Context) {
	if err := fang.Execute(
		ctx,
		rootCmd,
		fang.WithVersion(version.Version),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		os.Exit(1)
	}
}

// setup loads the configuration, starts file logging and returns the logger
// used for progress output.
func setup(cmd *cobra.Command) (*config.Config, *slog.Logger, error) {
	debug, _ := cmd.Flags().GetBool("debug")
	verbose, _ := cmd.Flags().GetBool("verbose")

	cwd, err := ResolveCwd(cmd)
	if err != nil {
		return nil, nil, err
	}

	cfg, err := config.Init(cwd, debug)
	if err != nil {
		return nil, nil, err
	}

	if !cfg.Options.DisableLogFile {
		log.Setup(cfg.LogFile(), cfg.Options.Debug)
	}
	return cfg, progressLogger(cmd.ErrOrStderr(), verbose, cfg.Options.Debug), nil
}

// progressLogger picks where scenario progress goes: the terminal when verbose,
// otherwise the log file if one is set up, otherwise nowhere.
func progressLogger(w io.Writer, verbose, debug bool) *slog.Logger {
	switch {
	case verbose:
		return log.Console(w, debug)
	case log.Initialized():
		return slog.Default()
	default:
		return log.Discard()
	}
}

// ResolveCwd changes into --cwd when it is set and returns the absolute
// working directory.
func ResolveCwd(cmd *cobra.Command) (string, error) {
	cwd, _ := cmd.Flags().GetString("cwd")
	if cwd != "" {
		err := os.Chdir(cwd)
		if err != nil {
			return "", fmt.Errorf("failed to change directory: %v", err)
		}
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get current working directory: %v", err)
	}
	return cwd, nil
}
