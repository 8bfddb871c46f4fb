package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danielealbano/android-remote-control-mcp/internal/format"
	"github.com/danielealbano/android-remote-control-mcp/internal/platform"
	"github.com/danielealbano/android-remote-control-mcp/internal/tree"
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Snapshot the device UI as compact tab-separated text",
	Long: `Parse every live window into a fresh snapshot and print it in the compact
client format: fixed notes, display metrics, then per window a header and one
row per node that carries text, a content description, a resource id, or an
interactive capability.

Node ids in the output are derived from tree position and stay stable across
re-reads of unchanged structure, so they can be fed to click, set-text, and
scroll afterwards.`,
	RunE: runSnapshot,
}

func init() {
	rootCmd.AddCommand(snapshotCmd)
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	provider, err := newProvider()
	if err != nil {
		return err
	}
	snap, err := tree.SnapshotAll(provider)
	if err != nil {
		return err
	}
	metrics := readMetrics(provider)
	fmt.Print(format.Format(snap, metrics))
	return nil
}

// readMetrics fetches display metrics best-effort; the snapshot is still
// useful when the metrics source is unavailable.
func readMetrics(provider *platform.Provider) platform.Metrics {
	if provider.Metrics == nil {
		return platform.Metrics{}
	}
	metrics, err := provider.Metrics.DisplayMetrics()
	if err != nil {
		return platform.Metrics{}
	}
	return metrics
}
