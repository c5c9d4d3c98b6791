package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/aretw0/spacetask/internal/cli"
	httpAdapter "github.com/aretw0/spacetask/pkg/adapters/http"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Serves the environment catalog and the stored diagrams as a JSON API. Diagrams are
kept in the store selected by the settings file (memory, file or redis).`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(cmd)
		if err != nil {
			return err
		}
		port := app.Settings.Server.Port
		if cmd.Flags().Changed("port") {
			port, _ = cmd.Flags().GetInt("port")
		}

		ws, closeStore, err := cli.OpenWorkspace(app.Settings.Store, app.Logger)
		if err != nil {
			return err
		}
		defer closeStore()

		opts := []httpAdapter.Option{httpAdapter.WithLogger(app.Logger)}
		if metrics, _ := cmd.Flags().GetBool("metrics"); metrics || app.Settings.Metrics {
			opts = append(opts, httpAdapter.WithMetrics(app.Metrics))
		}

		srv := &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           httpAdapter.NewHandler(app.Engine, ws, opts...),
			ReadHeaderTimeout: 10 * time.Second,
		}

		serverErrors := make(chan error, 1)
		go func() {
			app.Logger.Info("HTTP server listening", "address", srv.Addr, "store", app.Settings.Store.Kind)
			serverErrors <- srv.ListenAndServe()
		}()

		ctx := cmd.Context()
		select {
		case err := <-serverErrors:
			return fmt.Errorf("server error: %w", err)
		case <-ctx.Done():
			app.Logger.Info("Shutting down HTTP server", "signal", cli.ReceivedSignal(ctx))
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				_ = srv.Close()
				return fmt.Errorf("graceful shutdown did not complete: %w", err)
			}
			return nil
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntP("port", "p", 8080, "Port to listen on (overrides the settings file)")
	serveCmd.Flags().Bool("metrics", false, "Expose prometheus metrics on /metrics")
}
