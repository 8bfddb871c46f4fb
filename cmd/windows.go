package cmd

import (
	"github.com/spf13/cobra"

	"github.com/danielealbano/android-remote-control-mcp/internal/model"
	"github.com/danielealbano/android-remote-control-mcp/internal/output"
	"github.com/danielealbano/android-remote-control-mcp/internal/tree"
)

// WindowEntry is one row of the windows listing.
type WindowEntry struct {
	WindowID int              `yaml:"window_id"          json:"window_id"`
	Kind     model.WindowKind `yaml:"kind"               json:"kind"`
	Package  string           `yaml:"package,omitempty"  json:"package,omitempty"`
	Title    string           `yaml:"title,omitempty"    json:"title,omitempty"`
	Activity string           `yaml:"activity,omitempty" json:"activity,omitempty"`
	Layer    int              `yaml:"layer"              json:"layer"`
	Focused  bool             `yaml:"focused,omitempty"  json:"focused,omitempty"`
	Nodes    int              `yaml:"nodes"              json:"nodes"`
}

// WindowsResult is the top-level output of the windows command.
type WindowsResult struct {
	Degraded bool          `yaml:"degraded,omitempty" json:"degraded,omitempty"`
	Windows  []WindowEntry `yaml:"windows"            json:"windows"`
}

var windowsCmd = &cobra.Command{
	Use:   "windows",
	Short: "List the live windows with their metadata",
	RunE:  runWindows,
}

func init() {
	rootCmd.AddCommand(windowsCmd)
	windowsCmd.Flags().Bool("pretty", false, "Pretty-print JSON output")
}

func runWindows(cmd *cobra.Command, args []string) error {
	provider, err := newProvider()
	if err != nil {
		return err
	}
	snap, err := tree.SnapshotAll(provider)
	if err != nil {
		return err
	}
	return output.Print(windowsResult(snap))
}

func windowsResult(snap *model.Snapshot) WindowsResult {
	result := WindowsResult{Degraded: snap.Degraded}
	for i := range snap.Windows {
		w := &snap.Windows[i]
		result.Windows = append(result.Windows, WindowEntry{
			WindowID: w.WindowID,
			Kind:     w.Kind,
			Package:  w.Package,
			Title:    w.Title,
			Activity: w.Activity,
			Layer:    w.Layer,
			Focused:  w.Focused,
			Nodes:    w.NodeCount(),
		})
	}
	return result
}
