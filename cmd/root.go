package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lowvisionlabs/axmux/internal/config"
	"github.com/lowvisionlabs/axmux/internal/logging"
	"github.com/lowvisionlabs/axmux/internal/output"
	"github.com/lowvisionlabs/axmux/internal/version"
)

var (
	cfg *config.Config
	log *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "axmux",
	Short: "Query desktop UI elements across accessibility backends",
	Long:  "A CLI that multiplexes the native accessibility APIs (UIA, MSAA, IAccessible2, Java Access Bridge) behind one canonical object model.",
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if log != nil {
			log.Sync()
		}
		os.Exit(1)
	}
	if log != nil {
		log.Sync()
	}
}

func init() {
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", version.Version, version.Commit, version.BuildDate)
	rootCmd.PersistentFlags().String("format", "yaml", "Output format: yaml, json")
	rootCmd.PersistentFlags().Bool("pretty", false, "Pretty-print JSON output (no-op for YAML)")
	rootCmd.PersistentFlags().String("config", "", "Path to a TOML config file")
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		// Use the root persistent flags directly to avoid conflicts with
		// subcommand local flags.
		format, _ := rootCmd.PersistentFlags().GetString("format")
		switch format {
		case "yaml":
			output.OutputFormat = output.FormatYAML
		case "json":
			output.OutputFormat = output.FormatJSON
		default:
			return fmt.Errorf("unsupported format: %s (use yaml or json)", format)
		}
		pretty, _ := rootCmd.PersistentFlags().GetBool("pretty")
		output.PrettyOutput = pretty

		path, _ := rootCmd.PersistentFlags().GetString("config")
		loaded, err := config.Load(path)
		if err != nil {
			return err
		}
		cfg = loaded

		logger, err := logging.New(cfg.Logging.Level, cfg.Logging.Format)
		if err != nil {
			return err
		}
		log = logger
		return nil
	}
}
