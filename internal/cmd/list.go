package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/yumosx/lazy/internal/probe"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the probe scenarios",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		width := 0
		for _, name := range probe.Names() {
			width = max(width, len(name))
		}
		for _, s := range probe.Scenarios() {
			fmt.Fprintf(cmd.OutOrStdout(), "%-*s  %s\n", width, s.Name, s.Description)
		}
		return nil
	},
}
