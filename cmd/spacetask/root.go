package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/spacetask"
	"github.com/aretw0/spacetask/internal/cli"
	"github.com/aretw0/spacetask/internal/config"
	"github.com/aretw0/spacetask/internal/logging"
)

var rootCmd = &cobra.Command{
	Use:   "spacetask",
	Short: "Spacetask assigns spatial roles to process diagram tasks",
	Long: `Spacetask marks the tasks of a process diagram as movement, binding or unbinding
steps, checks them against the surrounding flow and a catalog of physical places,
and edits their conditional assignments.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// The context is cancelled on SIGINT or SIGTERM.
func Execute() {
	ctx := cli.NewSignalContext(context.Background())
	defer ctx.Stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Settings file (defaults to spacetask.yaml in the working directory)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn or error")
	rootCmd.PersistentFlags().String("env", "", "Environment file with places and edges")
}

// settings reads the settings file and applies the persistent flag overrides.
func settings(cmd *cobra.Command) (config.Settings, error) {
	path, _ := cmd.Flags().GetString("config")
	s, err := config.Load(path)
	if err != nil {
		return s, err
	}
	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		s.LogLevel = level
	}
	if env, _ := cmd.Flags().GetString("env"); env != "" {
		s.Environment = env
	}
	return s, nil
}

// newApp builds the engine for a command. Logs go to stderr so stdout stays clean for output.
func newApp(cmd *cobra.Command) (*cli.App, error) {
	s, err := settings(cmd)
	if err != nil {
		return nil, err
	}
	logger := logging.NewWithWriter(cmd.ErrOrStderr(), logging.ParseLevel(s.LogLevel))
	return cli.NewApp(cmd.Context(), s, logger)
}

// withEditor opens the diagram at path, runs fn and, when save is set, writes the diagram back.
func withEditor(cmd *cobra.Command, path string, save bool, fn func(context.Context, *spacetask.Editor) error) error {
	app, err := newApp(cmd)
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	d, err := cli.OpenDiagram(ctx, path)
	if err != nil {
		return err
	}
	if err := fn(ctx, app.Engine.Editor(d)); err != nil {
		return err
	}
	if !save {
		return nil
	}
	return cli.SaveDiagram(path, d)
}
