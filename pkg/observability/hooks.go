package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/spacetask/pkg/domain"
)

// LogHooks returns hooks that log every event.
func LogHooks(logger *slog.Logger) domain.Hooks {
	return domain.Hooks{
		OnRoleChange: func(ctx context.Context, e *domain.RoleEvent) {
			logger.InfoContext(ctx, "role_change",
				"diagram_id", e.DiagramID,
				"node_id", e.Change.NodeID,
				"from", e.Change.From.String(),
				"to", e.Change.To.String(),
			)
		},
		OnWarning: func(ctx context.Context, e *domain.WarningEvent) {
			logger.WarnContext(ctx, "validation_warning",
				"diagram_id", e.DiagramID,
				"node_id", e.Warning.NodeID,
				"rule", e.Warning.Rule,
			)
		},
		OnEnvironment: func(ctx context.Context, e *domain.EnvironmentEvent) {
			logger.InfoContext(ctx, "environment",
				"outcome", e.Outcome,
				"file", e.FileName,
				"places", e.Places,
			)
		},
	}
}

// Combine returns hooks that call each set in order. Nil callbacks are skipped.
func Combine(sets ...domain.Hooks) domain.Hooks {
	return domain.Hooks{
		OnRoleChange: func(ctx context.Context, e *domain.RoleEvent) {
			for _, h := range sets {
				if h.OnRoleChange != nil {
					h.OnRoleChange(ctx, e)
				}
			}
		},
		OnWarning: func(ctx context.Context, e *domain.WarningEvent) {
			for _, h := range sets {
				if h.OnWarning != nil {
					h.OnWarning(ctx, e)
				}
			}
		},
		OnEnvironment: func(ctx context.Context, e *domain.EnvironmentEvent) {
			for _, h := range sets {
				if h.OnEnvironment != nil {
					h.OnEnvironment(ctx, e)
				}
			}
		},
	}
}
