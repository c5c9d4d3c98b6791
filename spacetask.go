package spacetask

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/aretw0/spacetask/internal/logging"
	"github.com/aretw0/spacetask/pkg/domain"
	"github.com/aretw0/spacetask/pkg/environment"
	"github.com/aretw0/spacetask/pkg/events"
	"github.com/aretw0/spacetask/pkg/schema"
)

// MsgReadFailed is the load error reported when the environment file cannot be read.
const MsgReadFailed = "Failed to read file"

// Engine is the high-level entry point of the library.
// It holds the environment catalog shared by every Editor it creates.
type Engine struct {
	catalog            *environment.Catalog
	bus                *events.Bus
	hooks              domain.Hooks
	placeSchema        schema.Schema
	defaultDestination string
	logger             *slog.Logger
	now                func() time.Time
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithHooks registers observability hooks.
func WithHooks(hooks domain.Hooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithPlaceSchema types the attributes of environment places. Loads that violate it are rejected.
func WithPlaceSchema(s schema.Schema) Option {
	return func(e *Engine) {
		e.placeSchema = s
	}
}

// WithDefaultDestination sets the placeholder written for new movement tasks.
func WithDefaultDestination(value string) Option {
	return func(e *Engine) {
		e.defaultDestination = value
	}
}

// WithBus publishes environment notifications on bus instead of a private one.
func WithBus(bus *events.Bus) Option {
	return func(e *Engine) {
		e.bus = bus
	}
}

// WithClock overrides the time source of events and load timestamps.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// New initializes an Engine with an empty environment.
func New(opts ...Option) *Engine {
	eng := &Engine{
		defaultDestination: domain.DefaultDestination,
		logger:             logging.NewNop(),
		now:                time.Now,
	}
	for _, opt := range opts {
		opt(eng)
	}
	if eng.bus == nil {
		eng.bus = events.NewBus()
	}

	eng.catalog = environment.NewCatalog(
		environment.WithSchema(eng.placeSchema),
		environment.WithLogger(eng.logger),
		environment.WithClock(eng.now),
	)
	return eng
}

// Catalog returns the environment catalog.
func (e *Engine) Catalog() *environment.Catalog {
	return e.catalog
}

// Bus returns the notification bus.
func (e *Engine) Bus() *events.Bus {
	return e.bus
}

// LoadEnvironment validates raw and, when it is well formed, replaces the catalog.
// The outcome is published after the catalog has been updated.
func (e *Engine) LoadEnvironment(ctx context.Context, raw []byte, meta environment.Meta) environment.LoadResult {
	res := e.catalog.Load(raw, meta)
	e.publishLoad(ctx, res, meta)
	return res
}

// LoadEnvironmentFile reads path and loads it. An unreadable file is a rejected load.
func (e *Engine) LoadEnvironmentFile(ctx context.Context, path string) environment.LoadResult {
	meta := environment.Meta{FileName: filepath.Base(path), Source: environment.SourceFile}

	raw, err := os.ReadFile(path)
	if err != nil {
		e.logger.Warn("environment file unreadable", "file", path, "err", err)
		res := environment.LoadResult{
			Success: false,
			Error:   MsgReadFailed,
			Err:     fmt.Errorf("%s %s: %w", MsgReadFailed, path, err),
		}
		e.publishLoad(ctx, res, meta)
		return res
	}
	return e.LoadEnvironment(ctx, raw, meta)
}

// ClearEnvironment removes the catalog and publishes environment.cleared.
// It reports whether a catalog was installed.
func (e *Engine) ClearEnvironment(ctx context.Context) bool {
	had := e.catalog.Clear()
	e.bus.Publish(ctx, events.TopicEnvironmentCleared, nil)
	if e.hooks.OnEnvironment != nil {
		e.hooks.OnEnvironment(ctx, &domain.EnvironmentEvent{
			EventBase: e.base(domain.EventEnvironment, ""),
			Outcome:   domain.OutcomeCleared,
		})
	}
	return had
}

func (e *Engine) publishLoad(ctx context.Context, res environment.LoadResult, meta environment.Meta) {
	if res.Success {
		e.bus.Publish(ctx, events.TopicEnvironmentReady, res.Config)
	}
	e.bus.Publish(ctx, events.TopicEnvironmentLoaded, res)

	if e.hooks.OnEnvironment == nil {
		return
	}
	evt := &domain.EnvironmentEvent{
		EventBase: e.base(domain.EventEnvironment, ""),
		Outcome:   domain.OutcomeRejected,
		FileName:  meta.FileName,
		Error:     res.Error,
	}
	if res.Success {
		evt.Outcome = domain.OutcomeReady
		evt.Places = len(res.Config.Data.Places)
	}
	e.hooks.OnEnvironment(ctx, evt)
}

func (e *Engine) base(t domain.EventType, diagramID string) domain.EventBase {
	return domain.EventBase{
		Timestamp: e.now().UTC(),
		Type:      t,
		DiagramID: diagramID,
	}
}
