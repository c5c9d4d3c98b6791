package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/aretw0/spacetask"
	"github.com/aretw0/spacetask/internal/presentation/tui"
	"github.com/aretw0/spacetask/pkg/domain"
)

var assignCmd = &cobra.Command{
	Use:   "assign",
	Short: "Edit the conditional assignments of a task",
	Long: `Assignments are condition/value pairs such as
  "Room.freeSeats > 0" -> "Task.destination = Room"
stored on the task. Indexes start at zero.`,
}

var assignListCmd = &cobra.Command{
	Use:   "list <diagram> <task>",
	Short: "List the assignments of a task",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEditor(cmd, args[0], false, func(_ context.Context, ed *spacetask.Editor) error {
			list, err := ed.Assignments(args[1])
			if err != nil {
				return err
			}
			count, err := ed.AssignmentCount(args[1])
			if err != nil {
				return err
			}
			return tui.Write(cmd.OutOrStdout(), tui.AssignmentsMarkdown(args[1], list, count))
		})
	},
}

var assignAddCmd = &cobra.Command{
	Use:   "add <diagram> <task> <condition> <value>",
	Short: "Append an assignment",
	Args:  cobra.ExactArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEditor(cmd, args[0], true, func(_ context.Context, ed *spacetask.Editor) error {
			reportValidation(cmd, ed, args[2], args[3])
			return ed.AddAssignment(args[1], args[2], args[3])
		})
	},
}

var assignUpdateCmd = &cobra.Command{
	Use:   "update <diagram> <task> <index> <condition> <value>",
	Short: "Replace the assignment at index",
	Args:  cobra.ExactArgs(5),
	RunE: func(cmd *cobra.Command, args []string) error {
		index, err := strconv.Atoi(args[2])
		if err != nil {
			return fmt.Errorf("invalid index %q", args[2])
		}
		return withEditor(cmd, args[0], true, func(_ context.Context, ed *spacetask.Editor) error {
			reportValidation(cmd, ed, args[3], args[4])
			ok, err := ed.UpdateAssignment(args[1], index, args[3], args[4])
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("task %s has no assignment %d", args[1], index)
			}
			return nil
		})
	},
}

var assignRemoveCmd = &cobra.Command{
	Use:   "remove <diagram> <task> <index>",
	Short: "Remove the assignment at index",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		index, err := strconv.Atoi(args[2])
		if err != nil {
			return fmt.Errorf("invalid index %q", args[2])
		}
		return withEditor(cmd, args[0], true, func(_ context.Context, ed *spacetask.Editor) error {
			ok, err := ed.RemoveAssignment(args[1], index)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("task %s has no assignment %d", args[1], index)
			}
			return nil
		})
	},
}

var assignClearCmd = &cobra.Command{
	Use:   "clear <diagram> <task>",
	Short: "Remove every assignment of a task",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEditor(cmd, args[0], true, func(_ context.Context, ed *spacetask.Editor) error {
			return ed.ClearAssignments(args[1])
		})
	},
}

var assignValidateCmd = &cobra.Command{
	Use:   "validate <condition> <value>",
	Short: "Check the syntax of a pair and the places it names",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(cmd)
		if err != nil {
			return err
		}
		ed := app.Engine.Editor(&domain.Diagram{})
		if !reportValidation(cmd, ed, args[0], args[1]) {
			return fmt.Errorf("invalid assignment")
		}
		fmt.Fprintln(cmd.OutOrStdout(), "valid")
		return nil
	},
}

// reportValidation prints the problems of a pair as warnings. Invalid pairs are still stored.
func reportValidation(cmd *cobra.Command, ed *spacetask.Editor, condition, value string) bool {
	v := ed.ValidateAssignment(condition, value)
	for _, msg := range v.Errors {
		tui.PrintWarning(cmd.ErrOrStderr(), domain.Warning{Rule: domain.RuleInvalidAssignment, Message: msg})
	}
	return v.Valid
}

func init() {
	assignCmd.AddCommand(assignListCmd, assignAddCmd, assignUpdateCmd, assignRemoveCmd, assignClearCmd, assignValidateCmd)
	rootCmd.AddCommand(assignCmd)
}
