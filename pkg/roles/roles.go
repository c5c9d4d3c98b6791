// Package roles owns the role state machine of a task node.
//
// A node is unassigned, movement, binding or unbinding. The role is derived from the
// Type attribute; role-specific attributes are provisioned on entry and kept when the
// node leaves the role, so switching back restores the previous data.
package roles

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/aretw0/spacetask/internal/logging"
	"github.com/aretw0/spacetask/pkg/attributes"
	"github.com/aretw0/spacetask/pkg/domain"
)

// Of returns the normalized role of node.
func Of(node *domain.Node) domain.Role {
	return domain.NormalizeRole(attributes.Value(node, domain.KindType))
}

// Checker runs the advisory pre-check before a role is committed.
type Checker interface {
	QuickCheck(node *domain.Node, candidate domain.Role) domain.CheckResult
}

// Manager assigns and clears roles.
type Manager struct {
	checker            Checker
	defaultDestination string
	logger             *slog.Logger
}

// Option configures the Manager.
type Option func(*Manager)

// WithChecker runs checker before every role change. Its warnings are reported, never enforced.
func WithChecker(checker Checker) Option {
	return func(m *Manager) {
		m.checker = checker
	}
}

// WithDefaultDestination sets the placeholder written for new movement nodes.
func WithDefaultDestination(value string) Option {
	return func(m *Manager) {
		if value != "" {
			m.defaultDestination = value
		}
	}
}

// WithLogger configures a logger for the Manager.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// NewManager creates a role manager.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		defaultDestination: domain.DefaultDestination,
		logger:             logging.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Get returns the node's current role.
func (m *Manager) Get(node *domain.Node) domain.Role {
	return Of(node)
}

// Set assigns role to node.
//
// Re-entering the current role leaves Type untouched. Any other role is committed
// regardless of the pre-check outcome; the warnings are returned in the change.
// Setting RoleNone is the same as Clear.
func (m *Manager) Set(node *domain.Node, role domain.Role) (domain.RoleChange, error) {
	role = domain.NormalizeRole(string(role))
	if role == domain.RoleNone {
		return m.Clear(node), nil
	}
	if !role.Valid() {
		return domain.RoleChange{}, fmt.Errorf("%w: %q", domain.ErrUnknownRole, role)
	}

	from := Of(node)
	change := domain.RoleChange{NodeID: node.ID, From: from, To: role}

	if from != role {
		change.Warnings = m.precheck(node, from, role)
		attributes.Set(node, domain.KindType, string(role))
		change.Changed = true
	}

	change.Provisioned = m.provision(node, role)

	if change.Changed {
		m.logger.Debug("role committed", "node_id", node.ID, "from", from.String(), "to", role.String())
	}
	return change, nil
}

// Clear removes the Type attribute. Role-specific attributes stay on the node.
// Leaving a role is pre-checked like any other change.
func (m *Manager) Clear(node *domain.Node) domain.RoleChange {
	from := Of(node)
	change := domain.RoleChange{
		NodeID: node.ID,
		From:   from,
		To:     domain.RoleNone,
	}
	if from != domain.RoleNone {
		change.Warnings = m.precheck(node, from, domain.RoleNone)
	}
	change.Changed = attributes.Remove(node, attributes.OfKind(domain.KindType)) > 0
	if change.Changed {
		m.logger.Debug("role cleared", "node_id", node.ID, "from", from.String())
	}
	return change
}

// precheck asks the checker, if any, about moving node from one role to another and logs each warning.
func (m *Manager) precheck(node *domain.Node, from, to domain.Role) []domain.Warning {
	if m.checker == nil {
		return nil
	}
	res := m.checker.QuickCheck(node, to)
	for _, w := range res.Warnings {
		m.logger.Warn("role change warning",
			"node_id", node.ID,
			"from", from.String(),
			"to", to.String(),
			"rule", w.Rule)
	}
	return res.Warnings
}

// provision creates the attributes the role requires. Existing values are never overwritten.
func (m *Manager) provision(node *domain.Node, role domain.Role) []domain.Kind {
	switch role {
	case domain.RoleMovement:
		if !attributes.Has(node, domain.KindDestination) {
			attributes.Set(node, domain.KindDestination, m.defaultDestination)
			return []domain.Kind{domain.KindDestination}
		}
	}
	return nil
}

// Destination returns the movement destination stored on node.
func (m *Manager) Destination(node *domain.Node) string {
	return attributes.Value(node, domain.KindDestination)
}

// SetDestination stores the movement destination. A blank value writes the placeholder.
func (m *Manager) SetDestination(node *domain.Node, value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		value = m.defaultDestination
	}
	attributes.Set(node, domain.KindDestination, value)
	return value
}

// IsPlaceholder reports whether value is the unset destination placeholder.
func (m *Manager) IsPlaceholder(value string) bool {
	return value == "" || value == m.defaultDestination
}

// Binding returns the participant bound by node.
func (m *Manager) Binding(node *domain.Node) string {
	return attributes.Value(node, domain.KindBinding)
}

// SetBinding stores the bound participant reference.
func (m *Manager) SetBinding(node *domain.Node, participantID string) {
	attributes.Set(node, domain.KindBinding, participantID)
}
