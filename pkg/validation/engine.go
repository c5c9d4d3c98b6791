package validation

import (
	"github.com/aretw0/spacetask/pkg/domain"
	"github.com/aretw0/spacetask/pkg/ports"
	"github.com/aretw0/spacetask/pkg/roles"
)

// Engine evaluates the rule set against a graph snapshot.
// It holds no state besides the graph and the rules.
type Engine struct {
	graph ports.Graph
	rules []Rule
}

// Option configures the Engine.
type Option func(*Engine)

// WithRules replaces the default rule set. Warnings follow the order of rules.
func WithRules(rules ...Rule) Option {
	return func(e *Engine) {
		e.rules = rules
	}
}

// New creates an engine over g.
func New(g ports.Graph, opts ...Option) *Engine {
	e := &Engine{
		graph: g,
		rules: DefaultRules(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// QuickCheck runs every rule that applies to changing node to candidate.
// Re-entering the current role yields no warnings.
func (e *Engine) QuickCheck(node *domain.Node, candidate domain.Role) domain.CheckResult {
	if node == nil {
		return domain.NewCheckResult(nil)
	}
	from := roles.Of(node)
	to := domain.NormalizeRole(string(candidate))
	if from == to {
		return domain.NewCheckResult(nil)
	}

	var warnings []domain.Warning
	for _, rule := range e.rules {
		if !rule.Applies(from, to) {
			continue
		}
		if w, ok := rule.Evaluate(e.graph, node); ok {
			warnings = append(warnings, w)
		}
	}
	return domain.NewCheckResult(warnings)
}

// FullCheck returns the top warning for the change, if any.
func (e *Engine) FullCheck(node *domain.Node, candidate domain.Role) (domain.Warning, bool) {
	return e.QuickCheck(node, candidate).Top()
}

// Audit re-checks nodes that already hold a role, as if each role had just been assigned.
// Only rules that apply to entering a role from unassigned are evaluated.
func (e *Engine) Audit(nodes []*domain.Node) []domain.Warning {
	var warnings []domain.Warning
	for _, node := range nodes {
		if node == nil {
			continue
		}
		role := roles.Of(node)
		if role == domain.RoleNone {
			continue
		}
		for _, rule := range e.rules {
			if !rule.Applies(domain.RoleNone, role) {
				continue
			}
			if w, ok := rule.Evaluate(e.graph, node); ok {
				warnings = append(warnings, w)
			}
		}
	}
	return warnings
}
