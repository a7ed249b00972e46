package cmd

import (
	"github.com/spf13/cobra"

	"github.com/lowvisionlabs/axmux/internal/output"
)

var backendsCmd = &cobra.Command{
	Use:   "backends",
	Short: "List accessibility backends and their status",
	Long:  "List every registered backend with its availability, enabled and active flags, plus the currently preferred backend.",
	RunE:  runBackends,
}

func init() {
	rootCmd.AddCommand(backendsCmd)
}

func runBackends(cmd *cobra.Command, args []string) error {
	engine, err := newEngine()
	if err != nil {
		return err
	}
	defer engine.Close()

	return output.Print(output.BackendsResult{
		Preferred: engine.PreferredAPI(),
		Backends:  engine.EnumerateBackends(),
	})
}
