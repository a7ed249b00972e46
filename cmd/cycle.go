package cmd

import (
	"github.com/spf13/cobra"

	"github.com/lowvisionlabs/axmux/internal/output"
)

var cycleCmd = &cobra.Command{
	Use:   "cycle",
	Short: "Advance the preferred backend",
	Long:  "Advance the preferred backend through the fixed order (uia, msaa, ia2, jab), skipping backends whose technology is absent.",
	RunE:  runCycle,
}

func init() {
	rootCmd.AddCommand(cycleCmd)
}

func runCycle(cmd *cobra.Command, args []string) error {
	engine, err := newEngine()
	if err != nil {
		return err
	}
	defer engine.Close()

	preferred, err := engine.CyclePreferredAPI()
	if err != nil {
		return err
	}
	return output.Print(output.CycleResult{Preferred: preferred})
}
