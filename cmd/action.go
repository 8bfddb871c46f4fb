package cmd

import (
	"github.com/spf13/cobra"

	"github.com/danielealbano/android-remote-control-mcp/internal/output"
	"github.com/danielealbano/android-remote-control-mcp/internal/platform"
	"github.com/danielealbano/android-remote-control-mcp/internal/resolve"
)

// ActionResult is the output of the node action commands.
type ActionResult struct {
	OK     bool   `yaml:"ok"              json:"ok"`
	Action string `yaml:"action"          json:"action"`
	NodeID string `yaml:"node_id"         json:"node_id"`
	Error  string `yaml:"error,omitempty" json:"error,omitempty"`
}

// runNodeAction snapshots, resolves the node, performs the action, and prints
// the outcome. Resolution failures are reported in the result rather than as
// command errors; only provider construction fails the command itself.
func runNodeAction(nodeID string, action platform.Action, args platform.PerformArgs) error {
	provider, err := newProvider()
	if err != nil {
		return err
	}
	result := ActionResult{OK: true, Action: string(action), NodeID: nodeID}
	if err := resolve.Do(provider, nodeID, action, args); err != nil {
		result.OK = false
		result.Error = err.Error()
	}
	return output.Print(result)
}

var clickCmd = &cobra.Command{
	Use:   "click",
	Short: "Click a node by id",
	RunE: func(cmd *cobra.Command, args []string) error {
		id, _ := cmd.Flags().GetString("id")
		long, _ := cmd.Flags().GetBool("long")
		action := platform.ActionClick
		if long {
			action = platform.ActionLongClick
		}
		return runNodeAction(id, action, platform.PerformArgs{})
	},
}

var setTextCmd = &cobra.Command{
	Use:   "set-text",
	Short: "Set the text of an editable node by id",
	RunE: func(cmd *cobra.Command, args []string) error {
		id, _ := cmd.Flags().GetString("id")
		text, _ := cmd.Flags().GetString("text")
		return runNodeAction(id, platform.ActionSetText, platform.PerformArgs{Text: text})
	},
}

var scrollCmd = &cobra.Command{
	Use:   "scroll",
	Short: "Scroll a scrollable node by id",
	RunE: func(cmd *cobra.Command, args []string) error {
		id, _ := cmd.Flags().GetString("id")
		dirStr, _ := cmd.Flags().GetString("direction")
		dir, err := platform.ParseScrollDirection(dirStr)
		if err != nil {
			return err
		}
		return runNodeAction(id, platform.ActionScroll, platform.PerformArgs{Direction: dir})
	},
}

func init() {
	rootCmd.AddCommand(clickCmd)
	clickCmd.Flags().String("id", "", "Node id from a previous snapshot (required)")
	clickCmd.Flags().Bool("long", false, "Long-click instead of click")
	clickCmd.MarkFlagRequired("id")

	rootCmd.AddCommand(setTextCmd)
	setTextCmd.Flags().String("id", "", "Node id from a previous snapshot (required)")
	setTextCmd.Flags().String("text", "", "Text to set")
	setTextCmd.MarkFlagRequired("id")

	rootCmd.AddCommand(scrollCmd)
	scrollCmd.Flags().String("id", "", "Node id from a previous snapshot (required)")
	scrollCmd.Flags().String("direction", "down", "Scroll direction: up, down, left, or right")
	scrollCmd.MarkFlagRequired("id")
}
