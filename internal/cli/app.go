// Package cli wires settings, logging, metrics, the engine and the diagram store for
// the spacetask commands.
package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aretw0/spacetask"
	"github.com/aretw0/spacetask/internal/config"
	"github.com/aretw0/spacetask/internal/logging"
	"github.com/aretw0/spacetask/pkg/observability"
)

// App holds the components shared by every command.
type App struct {
	Settings config.Settings
	Logger   *slog.Logger
	Metrics  *observability.Metrics
	Engine   *spacetask.Engine
}

// NewApp builds the engine from settings. The configured environment, if any, is loaded;
// a rejected environment is an error.
func NewApp(ctx context.Context, settings config.Settings, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = logging.New(logging.ParseLevel(settings.LogLevel))
	}

	app := &App{
		Settings: settings,
		Logger:   logger,
		Metrics:  observability.NewMetrics(),
	}
	app.Engine = spacetask.New(
		spacetask.WithLogger(logger),
		spacetask.WithHooks(observability.Combine(app.Metrics.Hooks(), observability.LogHooks(logger))),
		spacetask.WithPlaceSchema(settings.PlaceAttributes),
		spacetask.WithDefaultDestination(settings.DefaultDestination),
	)

	if settings.Environment != "" {
		if err := app.LoadEnvironment(ctx, settings.Environment); err != nil {
			return nil, err
		}
	}
	return app, nil
}

// LoadEnvironment loads the environment file at path.
func (a *App) LoadEnvironment(ctx context.Context, path string) error {
	res := a.Engine.LoadEnvironmentFile(ctx, path)
	if !res.Success {
		if res.Err != nil {
			return fmt.Errorf("environment %s rejected: %w", path, res.Err)
		}
		return fmt.Errorf("environment %s rejected: %s", path, res.Error)
	}
	return nil
}
