package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/danielealbano/android-remote-control-mcp/internal/output"
	"github.com/danielealbano/android-remote-control-mcp/internal/platform"
	_ "github.com/danielealbano/android-remote-control-mcp/internal/platform/adb"
	"github.com/danielealbano/android-remote-control-mcp/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "android-remote-control-mcp",
	Short: "Observe and drive the UI of an Android device",
	Long:  "A CLI and MCP server that lets AI agents snapshot, search, and act on the UI of an attached Android device.",
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", version.Version, version.Commit, version.BuildDate)
	rootCmd.PersistentFlags().String("format", "yaml", "Output format for structured results: yaml or json")
	rootCmd.PersistentFlags().String("adb", "", "Path to the adb binary (default: adb from PATH)")
	rootCmd.PersistentFlags().String("serial", "", "Device serial (default: the only attached device)")
	rootCmd.PersistentFlags().Bool("verbose", false, "Log adb traffic to stderr")
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		format, _ := rootCmd.PersistentFlags().GetString("format")
		switch format {
		case "yaml":
			output.OutputFormat = output.FormatYAML
		case "json":
			output.OutputFormat = output.FormatJSON
		default:
			return fmt.Errorf("unsupported format: %s (use yaml or json)", format)
		}
		if prettyFlag := cmd.Flags().Lookup("pretty"); prettyFlag != nil {
			if pretty, err := cmd.Flags().GetBool("pretty"); err == nil && pretty {
				output.PrettyOutput = true
			}
		}
		return nil
	}
}

// newLogger builds the command-scoped logger: silent by default, development
// output on stderr with --verbose.
func newLogger() *zap.Logger {
	verbose, _ := rootCmd.PersistentFlags().GetBool("verbose")
	if !verbose {
		return zap.NewNop()
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.OutputPaths = []string{"stderr"}
	log, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return log
}

// newProvider builds the device provider from the persistent flags.
func newProvider() (*platform.Provider, error) {
	adbPath, _ := rootCmd.PersistentFlags().GetString("adb")
	serial, _ := rootCmd.PersistentFlags().GetString("serial")
	return platform.NewProvider(platform.Options{
		ADBPath: adbPath,
		Serial:  serial,
		Logger:  newLogger(),
	})
}
