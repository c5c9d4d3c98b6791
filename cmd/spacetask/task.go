package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/spacetask"
)

var destinationCmd = &cobra.Command{
	Use:   "destination <diagram> <task> [value]",
	Short: "Print or set the destination of a movement task",
	Args:  cobra.RangeArgs(2, 3),
	RunE: func(cmd *cobra.Command, args []string) error {
		save := len(args) == 3
		return withEditor(cmd, args[0], save, func(_ context.Context, ed *spacetask.Editor) error {
			var (
				value string
				err   error
			)
			if save {
				value, err = ed.SetDestination(args[1], args[2])
			} else {
				value, err = ed.Destination(args[1])
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), value)
			return nil
		})
	},
}

var bindingCmd = &cobra.Command{
	Use:   "binding <diagram> <task> [participant]",
	Short: "Print or set the participant a binding task attaches to",
	Long: `Without a participant, prints the current binding and the participants that can be
chosen. With one, links the task to that participant.`,
	Args: cobra.RangeArgs(2, 3),
	RunE: func(cmd *cobra.Command, args []string) error {
		save := len(args) == 3
		return withEditor(cmd, args[0], save, func(_ context.Context, ed *spacetask.Editor) error {
			out := cmd.OutOrStdout()
			if save {
				return ed.SetBinding(args[1], args[2])
			}

			current, err := ed.Binding(args[1])
			if err != nil {
				return err
			}
			if current == "" {
				current = "(none)"
			}
			fmt.Fprintf(out, "binding: %s\n", current)

			participants, err := ed.Participants(args[1])
			if err != nil {
				return err
			}
			for _, p := range participants {
				if p.Name != "" && p.Name != p.ID {
					fmt.Fprintf(out, "  %s (%s)\n", p.ID, p.Name)
				} else {
					fmt.Fprintf(out, "  %s\n", p.ID)
				}
			}
			return nil
		})
	},
}

var bindingsCmd = &cobra.Command{
	Use:   "bindings <diagram>",
	Short: "List the participant pairs recorded on message flows",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEditor(cmd, args[0], false, func(_ context.Context, ed *spacetask.Editor) error {
			for _, b := range ed.Bindings() {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %s <-> %s\n", b.FlowID, b.Participant1, b.Participant2)
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(destinationCmd, bindingCmd, bindingsCmd)
}
