package environment

import (
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/spacetask/internal/logging"
	"github.com/aretw0/spacetask/pkg/schema"
)

// Sources recorded in Config.Source.
const (
	SourceManual = "manual"
	SourceFile   = "file"
	SourceHTTP   = "http"
)

// Catalog is the currently installed environment.
// It is safe for concurrent use; readers never observe a partially installed catalog.
type Catalog struct {
	mu     sync.RWMutex
	config *Config

	schema schema.Schema
	logger *slog.Logger
	now    func() time.Time
}

// Option configures the Catalog.
type Option func(*Catalog)

// WithSchema types the attributes of every place. Loads that violate it are rejected.
func WithSchema(s schema.Schema) Option {
	return func(c *Catalog) {
		c.schema = s
	}
}

// WithLogger configures a logger for the Catalog.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Catalog) {
		c.logger = logger
	}
}

// WithClock overrides the time source used for Config.LoadedAt.
func WithClock(now func() time.Time) Option {
	return func(c *Catalog) {
		c.now = now
	}
}

// NewCatalog creates an empty catalog.
func NewCatalog(opts ...Option) *Catalog {
	c := &Catalog{
		logger: logging.NewNop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Load parses raw and installs it. A rejected load leaves the current catalog untouched.
func (c *Catalog) Load(raw []byte, meta Meta) LoadResult {
	data, err := Parse(raw)
	if err != nil {
		return c.reject(meta, err)
	}
	return c.Install(data, meta)
}

// LoadMap installs an already unmarshalled environment object.
func (c *Catalog) LoadMap(m map[string]any, meta Meta) LoadResult {
	data, err := Decode(m)
	if err != nil {
		return c.reject(meta, err)
	}
	return c.Install(data, meta)
}

// Install replaces the catalog with data after checking it against the place schema.
func (c *Catalog) Install(data Data, meta Meta) LoadResult {
	if err := CheckAttributes(data, c.schema); err != nil {
		return c.reject(meta, err)
	}
	if meta.Source == "" {
		meta.Source = SourceManual
	}

	cfg := &Config{
		Data:     data.normalized(),
		FileName: meta.FileName,
		LoadedAt: c.now().UTC(),
		Source:   meta.Source,
	}

	c.mu.Lock()
	c.config = cfg
	c.mu.Unlock()

	if len(data.Dropped) > 0 {
		c.logger.Warn("environment entries ignored", "file", meta.FileName, "count", len(data.Dropped), "entries", data.Dropped)
	}
	c.logger.Info("environment loaded", "file", meta.FileName, "source", meta.Source, "places", len(cfg.Data.Places))
	return LoadResult{Success: true, Config: cfg}
}

func (c *Catalog) reject(meta Meta, err error) LoadResult {
	c.logger.Warn("environment rejected", "file", meta.FileName, "error", err)
	return LoadResult{Success: false, Error: err.Error(), Err: err}
}

// Clear removes the catalog. It reports whether one was installed.
func (c *Catalog) Clear() bool {
	c.mu.Lock()
	had := c.config != nil
	c.config = nil
	c.mu.Unlock()

	if had {
		c.logger.Info("environment cleared")
	}
	return had
}

// HasData reports whether a catalog is installed.
func (c *Catalog) HasData() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.config != nil
}

// Config returns the installed configuration, or nil.
// The returned value must be treated as read-only.
func (c *Catalog) Config() *Config {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.config
}

// data returns the installed data, or the zero value.
func (c *Catalog) data() Data {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.config == nil {
		return Data{}
	}
	return c.config.Data
}
