package cli

import (
	"fmt"
	"log/slog"

	"github.com/aretw0/spacetask/internal/config"
	"github.com/aretw0/spacetask/pkg/adapters/file"
	"github.com/aretw0/spacetask/pkg/adapters/memory"
	"github.com/aretw0/spacetask/pkg/adapters/redis"
	"github.com/aretw0/spacetask/pkg/ports"
	"github.com/aretw0/spacetask/pkg/workspace"
)

// OpenWorkspace builds the diagram store selected by cfg and wraps it in a workspace.
// Redis stores also get a distributed locker. The returned close func releases connections.
func OpenWorkspace(cfg config.Store, logger *slog.Logger) (*workspace.Manager, func() error, error) {
	var (
		store  ports.DiagramStore
		opts   = []workspace.Option{workspace.WithLogger(logger)}
		closer = func() error { return nil }
	)

	switch cfg.Kind {
	case config.StoreMemory, "":
		store = memory.NewStore()
	case config.StoreFile:
		store = file.New(cfg.Dir)
	case config.StoreRedis:
		rs := redis.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB,
			redis.WithPrefix(cfg.Redis.Prefix),
			redis.WithTTL(cfg.Redis.TTL),
		)
		store = rs
		opts = append(opts, workspace.WithLocker(redis.NewLocker(rs.Client(), rs.Prefix())))
		closer = rs.Close
	default:
		return nil, nil, fmt.Errorf("unknown store kind %q", cfg.Kind)
	}

	logger.Debug("diagram store ready", "kind", cfg.Kind)
	return workspace.NewManager(store, opts...), closer, nil
}
