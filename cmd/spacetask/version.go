package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/spacetask"
	"github.com/aretw0/spacetask/internal/presentation/tui"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of spacetask",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		if tui.IsTerminal(out) {
			tui.PrintBanner(out, spacetask.Version)
			return
		}
		fmt.Fprintf(out, "spacetask version %s\n", strings.TrimSpace(spacetask.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
