package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danielealbano/android-remote-control-mcp/internal/model"
	"github.com/danielealbano/android-remote-control-mcp/internal/output"
	"github.com/danielealbano/android-remote-control-mcp/internal/tree"
)

// FindResult is the top-level output of the find command.
type FindResult struct {
	Field    string                    `yaml:"field"              json:"field"`
	Value    string                    `yaml:"value"              json:"value"`
	Exact    bool                      `yaml:"exact,omitempty"    json:"exact,omitempty"`
	Degraded bool                      `yaml:"degraded,omitempty" json:"degraded,omitempty"`
	Count    int                       `yaml:"count"              json:"count"`
	Matches  []model.ElementProjection `yaml:"matches"            json:"matches"`
}

var findCmd = &cobra.Command{
	Use:   "find",
	Short: "Search the UI for elements by field value",
	Long: `Search every window's tree for nodes whose field matches the given value.
Fields: text, content-desc, resource-id, class. The default match is
case-insensitive substring containment; --exact requires byte equality.`,
	RunE: runFind,
}

func init() {
	rootCmd.AddCommand(findCmd)
	findCmd.Flags().String("field", "text", "Field to match: text, content-desc, resource-id, or class")
	findCmd.Flags().String("value", "", "Value to search for (required)")
	findCmd.Flags().Bool("exact", false, "Require byte equality instead of substring containment")
	findCmd.Flags().Bool("pretty", false, "Pretty-print JSON output")
	findCmd.MarkFlagRequired("value")
}

func runFind(cmd *cobra.Command, args []string) error {
	fieldName, _ := cmd.Flags().GetString("field")
	value, _ := cmd.Flags().GetString("value")
	exact, _ := cmd.Flags().GetBool("exact")

	field, ok := model.ParseField(fieldName)
	if !ok {
		return fmt.Errorf("unknown field %q (use text, content-desc, resource-id, or class)", fieldName)
	}

	provider, err := newProvider()
	if err != nil {
		return err
	}
	snap, err := tree.SnapshotAll(provider)
	if err != nil {
		return err
	}

	matches := model.Find(snap.Windows, field, value, exact)
	return output.Print(FindResult{
		Field:    fieldName,
		Value:    value,
		Exact:    exact,
		Degraded: snap.Degraded,
		Count:    len(matches),
		Matches:  matches,
	})
}
