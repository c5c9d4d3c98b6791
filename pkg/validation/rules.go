package validation

import (
	"fmt"
	"strings"

	"github.com/aretw0/spacetask/pkg/domain"
	"github.com/aretw0/spacetask/pkg/ports"
	"github.com/aretw0/spacetask/pkg/roles"
)

// Rule is a pure check over the graph for one kind of role transition.
type Rule interface {
	// Name is reported in Warning.Rule.
	Name() string

	// Applies reports whether the rule is relevant for a change from -> to.
	Applies(from, to domain.Role) bool

	// Evaluate inspects the graph around node and returns a warning when the rule is violated.
	Evaluate(g ports.Graph, node *domain.Node) (domain.Warning, bool)
}

// DefaultRules returns the built-in rules in reporting order.
func DefaultRules() []Rule {
	return []Rule{upstreamBinding{}, downstreamUnbinding{}}
}

// upstreamBinding: an unbinding task needs a binding task somewhere before it.
type upstreamBinding struct{}

func (upstreamBinding) Name() string { return domain.RuleUpstreamBinding }

func (upstreamBinding) Applies(from, to domain.Role) bool {
	return to == domain.RoleUnbinding && from != domain.RoleUnbinding
}

func (r upstreamBinding) Evaluate(g ports.Graph, node *domain.Node) (domain.Warning, bool) {
	found := walk(node, g.Incoming, func(n *domain.Node) bool {
		return roles.Of(n) == domain.RoleBinding
	}, true)
	if len(found) > 0 {
		return domain.Warning{}, false
	}
	return domain.Warning{
		Rule:    r.Name(),
		NodeID:  node.ID,
		Message: fmt.Sprintf("Unbinding task %q has no binding task upstream", label(node)),
	}, true
}

// downstreamUnbinding: leaving binding orphans the unbinding tasks that follow it.
type downstreamUnbinding struct{}

func (downstreamUnbinding) Name() string { return domain.RuleDownstreamUnbinding }

func (downstreamUnbinding) Applies(from, to domain.Role) bool {
	return from == domain.RoleBinding && to != domain.RoleBinding
}

func (r downstreamUnbinding) Evaluate(g ports.Graph, node *domain.Node) (domain.Warning, bool) {
	found := walk(node, g.Outgoing, func(n *domain.Node) bool {
		return roles.Of(n) == domain.RoleUnbinding
	}, false)
	if len(found) == 0 {
		return domain.Warning{}, false
	}
	return domain.Warning{
		Rule:    r.Name(),
		NodeID:  node.ID,
		Message: fmt.Sprintf("Unbinding tasks downstream depend on binding task %q: %s", label(node), strings.Join(found, ", ")),
		Related: found,
	}, true
}

// walk visits the nodes reachable from start through next, breadth-first.
// It returns the IDs of the nodes accepted by match, in visit order.
// The start node itself is never tested. With stopAtFirst the walk ends on the first match.
func walk(start *domain.Node, next func(string) []*domain.Node, match func(*domain.Node) bool, stopAtFirst bool) []string {
	visited := map[string]bool{start.ID: true}
	queue := []*domain.Node{start}
	var found []string

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for _, n := range next(current.ID) {
			if n == nil || visited[n.ID] {
				continue
			}
			visited[n.ID] = true

			if match(n) {
				found = append(found, n.ID)
				if stopAtFirst {
					return found
				}
			}
			queue = append(queue, n)
		}
	}
	return found
}

func label(node *domain.Node) string {
	if node.Name != "" {
		return node.Name
	}
	return node.ID
}
