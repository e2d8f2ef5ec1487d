package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/MakeNowJust/heredoc"
	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"
	"github.com/yumosx/lazy/internal/format"
	"github.com/yumosx/lazy/internal/probe"
)

// ErrScenariosFailed is returned when the probe ran but at least one
// scenario did not hold.
var ErrScenariosFailed = errors.New("some scenarios failed")

var checkCmd = &cobra.Command{
	Use:   "check [scenario...]",
	Short: "Run the probe scenarios",
	Long: heredoc.Doc(`
		Run the named scenarios, or those from the config file, or all of them,
		and print a report. The command fails if any scenario fails.
	`),
	Example: heredoc.Doc(`
		# Run everything
		lazyctl check

		# Only the contention scenarios, harder
		lazyctl check single-invocation lazy-map -g 1024 -n 200
	`),
	ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return probe.Names(), cobra.ShellCompDirectiveNoFileComp
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := setup(cmd)
		if err != nil {
			return err
		}

		opts := probe.Options{
			Goroutines: cfg.Options.Goroutines,
			Iterations: cfg.Options.Iterations,
			Logger:     logger,
		}
		if cmd.Flags().Changed("goroutines") {
			opts.Goroutines, _ = cmd.Flags().GetInt("goroutines")
		}
		if cmd.Flags().Changed("iterations") {
			opts.Iterations, _ = cmd.Flags().GetInt("iterations")
		}
		outputFormat := cfg.Options.Format
		if cmd.Flags().Changed("format") {
			f, _ := cmd.Flags().GetString("format")
			if outputFormat, err = format.Parse(f); err != nil {
				return err
			}
		}

		names := args
		if len(names) == 0 {
			names = cfg.Options.Scenarios
		}

		report, err := probe.Run(cmd.Context(), opts, names...)
		if err != nil {
			return err
		}

		if err := writeReport(cmd.OutOrStdout(), report, outputFormat); err != nil {
			return err
		}
		if report.Failed() > 0 {
			return fmt.Errorf("%w: %d of %d", ErrScenariosFailed, report.Failed(), len(report.Results))
		}
		return nil
	},
}

func init() {
	checkCmd.Flags().IntP("goroutines", "g", 0, "Goroutines racing on each holder (overrides config)")
	checkCmd.Flags().IntP("iterations", "n", 0, "Rounds for repeated scenarios (overrides config)")
	checkCmd.Flags().StringP("format", "f", "", format.HelpText()+" (overrides config)")
}

func writeReport(w io.Writer, report *probe.Report, f format.OutputFormat) error {
	switch f {
	case format.JSON:
		return report.WriteJSON(w)
	case format.Text, "":
		return report.WriteText(w, isTerminal(w))
	default:
		return fmt.Errorf("invalid format: %q", f)
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(f.Fd())
}
