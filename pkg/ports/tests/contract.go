package tests

import (
	"sort"
	"testing"

	"github.com/aretw0/spacetask/pkg/domain"
	"github.com/aretw0/spacetask/pkg/ports"
)

// GraphContractTest is a reusable test suite that verifies if an adapter complies with ports.Graph.
// edges maps a node ID to the IDs of its successors.
func GraphContractTest(t *testing.T, graph ports.Graph, edges map[string][]string) {
	t.Helper()

	incoming := make(map[string][]string)
	for from, tos := range edges {
		for _, to := range tos {
			incoming[to] = append(incoming[to], from)
		}
	}

	t.Run("Outgoing", func(t *testing.T) {
		for from, want := range edges {
			got := ids(graph.Outgoing(from))
			if !sameSet(got, want) {
				t.Errorf("outgoing(%s) = %v, want %v", from, got, want)
			}
		}
	})

	t.Run("Incoming", func(t *testing.T) {
		for to, want := range incoming {
			got := ids(graph.Incoming(to))
			if !sameSet(got, want) {
				t.Errorf("incoming(%s) = %v, want %v", to, got, want)
			}
		}
	})

	t.Run("Unknown node", func(t *testing.T) {
		if n := graph.Outgoing("non-existent-node"); len(n) != 0 {
			t.Errorf("expected no successors for unknown node, got %v", ids(n))
		}
		if n := graph.Incoming("non-existent-node"); len(n) != 0 {
			t.Errorf("expected no predecessors for unknown node, got %v", ids(n))
		}
	})
}

func ids(nodes []*domain.Node) []string {
	out := make([]string, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.ID)
	}
	return out
}

func sameSet(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	a = append([]string(nil), a...)
	b = append([]string(nil), b...)
	sort.Strings(a)
	sort.Strings(b)
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
