package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/lowvisionlabs/axmux/internal/model"
	"github.com/lowvisionlabs/axmux/internal/output"
)

var objectCmd = &cobra.Command{
	Use:   "object",
	Short: "Read the element behind a native reference",
	Long:  "Resolve a window handle (plus optional object and child ids) to a canonical element via the first backend that supports the reference.",
	RunE:  runObject,
}

func init() {
	rootCmd.AddCommand(objectCmd)
	objectCmd.Flags().String("window", "", "Window handle, decimal or 0x-prefixed hex (required)")
	objectCmd.Flags().Int32("object-id", 0, "Object id within the window")
	objectCmd.Flags().Int32("child", 0, "Child id within the object")
	objectCmd.MarkFlagRequired("window")
}

func runObject(cmd *cobra.Command, args []string) error {
	raw, _ := cmd.Flags().GetString("window")
	hwnd, err := strconv.ParseUint(raw, 0, 64)
	if err != nil {
		return fmt.Errorf("invalid window handle %q", raw)
	}
	objectID, _ := cmd.Flags().GetInt32("object-id")
	childID, _ := cmd.Flags().GetInt32("child")

	engine, err := newEngine()
	if err != nil {
		return err
	}
	defer engine.Close()

	ref := model.NativeRef{Window: uintptr(hwnd), ObjectID: objectID, ChildID: childID}
	return output.Print(nodeResult(engine.AccessibleObject(ref)))
}
