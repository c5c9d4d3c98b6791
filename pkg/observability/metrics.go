package observability

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aretw0/spacetask/pkg/domain"
)

// Metrics holds the prometheus collectors of an editor process.
type Metrics struct {
	RoleChanges      *prometheus.CounterVec
	Warnings         *prometheus.CounterVec
	EnvironmentLoads *prometheus.CounterVec

	gatherer prometheus.Gatherer
}

// NewMetrics creates the collectors and registers them on a fresh registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	m := newMetrics()
	reg.MustRegister(m.RoleChanges, m.Warnings, m.EnvironmentLoads)
	m.gatherer = reg
	return m
}

// NewMetricsWith registers the collectors on reg, e.g. prometheus.DefaultRegisterer.
func NewMetricsWith(reg prometheus.Registerer, gatherer prometheus.Gatherer) (*Metrics, error) {
	m := newMetrics()
	for _, c := range []prometheus.Collector{m.RoleChanges, m.Warnings, m.EnvironmentLoads} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	m.gatherer = gatherer
	return m, nil
}

func newMetrics() *Metrics {
	return &Metrics{
		RoleChanges: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "spacetask_role_changes_total",
				Help: "Committed role changes by previous and new role",
			},
			[]string{"from", "to"},
		),
		Warnings: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "spacetask_warnings_total",
				Help: "Advisory validation warnings by rule",
			},
			[]string{"rule"},
		),
		EnvironmentLoads: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "spacetask_environment_loads_total",
				Help: "Environment catalog loads, rejections and clears",
			},
			[]string{"outcome"},
		),
	}
}

// Hooks returns hooks that record every event in the collectors.
func (m *Metrics) Hooks() domain.Hooks {
	return domain.Hooks{
		OnRoleChange: func(_ context.Context, e *domain.RoleEvent) {
			m.RoleChanges.WithLabelValues(e.Change.From.String(), e.Change.To.String()).Inc()
		},
		OnWarning: func(_ context.Context, e *domain.WarningEvent) {
			m.Warnings.WithLabelValues(e.Warning.Rule).Inc()
		},
		OnEnvironment: func(_ context.Context, e *domain.EnvironmentEvent) {
			m.EnvironmentLoads.WithLabelValues(e.Outcome).Inc()
		},
	}
}

// Handler serves the collectors in the prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m.gatherer == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
