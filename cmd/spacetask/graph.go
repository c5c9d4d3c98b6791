package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/spacetask"
	"github.com/aretw0/spacetask/internal/presentation/graph"
)

var graphCmd = &cobra.Command{
	Use:   "graph <diagram>",
	Short: "Export the diagram as a Mermaid flowchart",
	Long: `Outputs a Mermaid diagram (graph TD) of the tasks grouped by participant, with the
spatial role of each task. Tasks with audit warnings are highlighted.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		selected, _ := cmd.Flags().GetString("select")

		return withEditor(cmd, args[0], false, func(_ context.Context, ed *spacetask.Editor) error {
			overlay := &graph.GraphOverlay{Selected: selected}
			for _, w := range ed.Audit() {
				overlay.WarnedNodes = append(overlay.WarnedNodes, w.NodeID)
			}
			fmt.Fprint(cmd.OutOrStdout(), graph.GenerateMermaid(ed.Diagram(), overlay))
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
	graphCmd.Flags().String("select", "", "Task to highlight as selected")
}
