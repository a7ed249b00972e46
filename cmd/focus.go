package cmd

import (
	"github.com/spf13/cobra"

	"github.com/lowvisionlabs/axmux/internal/output"
)

var focusCmd = &cobra.Command{
	Use:   "focus",
	Short: "Read the element with keyboard focus",
	Long:  "Query the enabled backends, preferred first, for the element that currently has keyboard focus.",
	RunE:  runFocus,
}

func init() {
	rootCmd.AddCommand(focusCmd)
}

func runFocus(cmd *cobra.Command, args []string) error {
	engine, err := newEngine()
	if err != nil {
		return err
	}
	defer engine.Close()

	return output.Print(nodeResult(engine.FocusedObject()))
}
