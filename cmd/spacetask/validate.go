package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/spacetask"
	"github.com/aretw0/spacetask/internal/presentation/tui"
)

var validateCmd = &cobra.Command{
	Use:   "validate <diagram>",
	Short: "Audit every spatial task of a diagram",
	Long: `Runs the upstream binding, downstream unbinding, destination and assignment checks
on every task of the diagram and prints the warnings. Warnings are advisory; use
--strict to exit with an error when any is found.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		strict, _ := cmd.Flags().GetBool("strict")

		var warnings int
		err := withEditor(cmd, args[0], false, func(_ context.Context, ed *spacetask.Editor) error {
			found := ed.Audit()
			warnings = len(found)
			return tui.Write(cmd.OutOrStdout(), tui.WarningsMarkdown("Audit of "+args[0], found))
		})
		if err != nil {
			return err
		}
		if strict && warnings > 0 {
			return fmt.Errorf("%d warning(s) found", warnings)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().Bool("strict", false, "Fail when any warning is reported")
}
