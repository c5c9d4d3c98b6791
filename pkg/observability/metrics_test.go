package observability_test

import (
	"bytes"
	"context"
	"log/slog"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/spacetask/pkg/domain"
	"github.com/aretw0/spacetask/pkg/observability"
)

func TestMetrics_Hooks(t *testing.T) {
	ctx := context.Background()
	m := observability.NewMetrics()
	hooks := m.Hooks()

	hooks.OnRoleChange(ctx, &domain.RoleEvent{Change: domain.RoleChange{From: domain.RoleNone, To: domain.RoleMovement}})
	hooks.OnRoleChange(ctx, &domain.RoleEvent{Change: domain.RoleChange{From: domain.RoleNone, To: domain.RoleMovement}})
	hooks.OnWarning(ctx, &domain.WarningEvent{Warning: domain.Warning{Rule: domain.RuleUpstreamBinding}})
	hooks.OnEnvironment(ctx, &domain.EnvironmentEvent{Outcome: domain.OutcomeRejected})

	assert.Equal(t, 2.0, testutil.ToFloat64(m.RoleChanges.WithLabelValues("unassigned", "movement")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Warnings.WithLabelValues(domain.RuleUpstreamBinding)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.EnvironmentLoads.WithLabelValues(domain.OutcomeRejected)))

	t.Run("Handler exposes the counters", func(t *testing.T) {
		rec := httptest.NewRecorder()
		m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
		assert.Equal(t, 200, rec.Code)
		assert.Contains(t, rec.Body.String(), "spacetask_role_changes_total")
	})
}

func TestNewMetricsWith(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := observability.NewMetricsWith(reg, reg)
	require.NoError(t, err)

	_, err = observability.NewMetricsWith(reg, reg)
	assert.Error(t, err, "registering twice must fail")
}

func TestCombine(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	calls := 0

	hooks := observability.Combine(
		observability.LogHooks(logger),
		domain.Hooks{OnWarning: func(context.Context, *domain.WarningEvent) { calls++ }},
	)

	ctx := context.Background()
	hooks.OnWarning(ctx, &domain.WarningEvent{Warning: domain.Warning{Rule: domain.RuleDownstreamUnbinding, NodeID: "A"}})
	hooks.OnRoleChange(ctx, &domain.RoleEvent{Change: domain.RoleChange{NodeID: "A", To: domain.RoleBinding}})

	assert.Equal(t, 1, calls)
	assert.Contains(t, buf.String(), "rule=downstream-unbinding")
	assert.Contains(t, buf.String(), "to=binding")
}
