package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/spacetask"
	"github.com/aretw0/spacetask/internal/presentation/tui"
	"github.com/aretw0/spacetask/pkg/domain"
)

var roleCmd = &cobra.Command{
	Use:   "role",
	Short: "Read, change or pre-check the spatial role of a task",
}

var roleGetCmd = &cobra.Command{
	Use:   "get <diagram> <task>",
	Short: "Print the current role of a task",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEditor(cmd, args[0], false, func(_ context.Context, ed *spacetask.Editor) error {
			role, err := ed.Role(args[1])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), role)
			return nil
		})
	},
}

var roleSetCmd = &cobra.Command{
	Use:   "set <diagram> <task> <role>",
	Short: "Assign movement, binding or unbinding to a task",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		role, err := domain.ParseRole(args[2])
		if err != nil {
			return err
		}
		return withEditor(cmd, args[0], true, func(ctx context.Context, ed *spacetask.Editor) error {
			change, err := ed.SetRole(ctx, args[1], role)
			if err != nil {
				return err
			}
			printChange(cmd, change)
			return nil
		})
	},
}

var roleClearCmd = &cobra.Command{
	Use:   "clear <diagram> <task>",
	Short: "Remove the role of a task",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEditor(cmd, args[0], true, func(ctx context.Context, ed *spacetask.Editor) error {
			change, err := ed.ClearRole(ctx, args[1])
			if err != nil {
				return err
			}
			printChange(cmd, change)
			return nil
		})
	},
}

var roleCheckCmd = &cobra.Command{
	Use:   "check <diagram> <task> <role>",
	Short: "Report the warnings a role would raise without applying it",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		role, err := domain.ParseRole(args[2])
		if err != nil {
			return err
		}
		return withEditor(cmd, args[0], false, func(_ context.Context, ed *spacetask.Editor) error {
			res, err := ed.QuickCheck(args[1], role)
			if err != nil {
				return err
			}
			if !res.HasWarnings {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: no warnings for %s\n", args[1], role)
				return nil
			}
			for _, w := range res.Warnings {
				tui.PrintWarning(cmd.OutOrStdout(), w)
			}
			return nil
		})
	},
}

func printChange(cmd *cobra.Command, change domain.RoleChange) {
	out := cmd.OutOrStdout()
	tui.PrintChange(out, change)
	for _, w := range change.Warnings {
		tui.PrintWarning(out, w)
	}
}

func init() {
	roleCmd.AddCommand(roleGetCmd, roleSetCmd, roleClearCmd, roleCheckCmd)
	rootCmd.AddCommand(roleCmd)
}
