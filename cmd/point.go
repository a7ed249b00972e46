package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/lowvisionlabs/axmux/internal/output"
)

var pointCmd = &cobra.Command{
	Use:   "point X Y",
	Short: "Read the element at a screen coordinate",
	Args:  cobra.ExactArgs(2),
	RunE:  runPoint,
}

func init() {
	rootCmd.AddCommand(pointCmd)
}

func runPoint(cmd *cobra.Command, args []string) error {
	x, err := strconv.ParseInt(args[0], 10, 32)
	if err != nil {
		return fmt.Errorf("invalid x coordinate %q", args[0])
	}
	y, err := strconv.ParseInt(args[1], 10, 32)
	if err != nil {
		return fmt.Errorf("invalid y coordinate %q", args[1])
	}

	engine, err := newEngine()
	if err != nil {
		return err
	}
	defer engine.Close()

	return output.Print(nodeResult(engine.ObjectFromPoint(int32(x), int32(y))))
}
