package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/spacetask/internal/cli"
	"github.com/aretw0/spacetask/pkg/adapters/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Exposes role, destination and assignment tools to MCP clients.

Supported Transports:
- stdio (default): Uses Standard Input/Output. Ideal for local process integration.
- sse: Uses Server-Sent Events over HTTP. Ideal for remote agents or debuggers.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		transport, _ := cmd.Flags().GetString("transport")
		port, _ := cmd.Flags().GetInt("port")

		// Stdout carries JSON-RPC; newApp logs to stderr.
		app, err := newApp(cmd)
		if err != nil {
			return err
		}
		ws, closeStore, err := cli.OpenWorkspace(app.Settings.Store, app.Logger)
		if err != nil {
			return err
		}
		defer closeStore()

		srv := mcp.NewServer(app.Engine, ws, mcp.WithLogger(app.Logger))

		switch transport {
		case "stdio":
			app.Logger.Info("Starting MCP server (stdio)")
			return srv.ServeStdio()
		case "sse":
			ctx := cmd.Context()
			err := srv.ServeSSE(ctx, port)
			if sig := cli.ReceivedSignal(ctx); sig != nil {
				app.Logger.Info("MCP server stopped", "signal", sig)
			}
			return err
		default:
			return fmt.Errorf("unknown transport %q (use stdio or sse)", transport)
		}
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
	mcpCmd.Flags().StringP("transport", "t", "stdio", "Transport: stdio or sse")
	mcpCmd.Flags().IntP("port", "p", 8080, "Port for the sse transport")
}
