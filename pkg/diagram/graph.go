// Package diagram reads and writes process diagrams and exposes their flow graph.
package diagram

import "github.com/aretw0/spacetask/pkg/domain"

// Graph is an adjacency snapshot of a diagram's sequence flows.
//
// The structure is captured when the Graph is built; node attributes are read live,
// so role lookups see writes made after construction. Message flows are not edges.
type Graph struct {
	nodes map[string]*domain.Node
	out   map[string][]string
	in    map[string][]string
}

// NewGraph indexes the sequence flows of d. Flows whose endpoints are not nodes of d are skipped.
func NewGraph(d *domain.Diagram) *Graph {
	g := &Graph{
		nodes: make(map[string]*domain.Node),
		out:   make(map[string][]string),
		in:    make(map[string][]string),
	}
	if d == nil {
		return g
	}
	for _, n := range d.Nodes {
		if n != nil {
			g.nodes[n.ID] = n
		}
	}
	for _, f := range d.Flows {
		if !f.IsSequence() {
			continue
		}
		if g.nodes[f.Source] == nil || g.nodes[f.Target] == nil {
			continue
		}
		g.out[f.Source] = append(g.out[f.Source], f.Target)
		g.in[f.Target] = append(g.in[f.Target], f.Source)
	}
	return g
}

// Node returns the node with the given ID.
func (g *Graph) Node(id string) (*domain.Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// Incoming returns the sources of the sequence flows entering nodeID.
func (g *Graph) Incoming(nodeID string) []*domain.Node {
	return g.resolve(g.in[nodeID])
}

// Outgoing returns the targets of the sequence flows leaving nodeID.
func (g *Graph) Outgoing(nodeID string) []*domain.Node {
	return g.resolve(g.out[nodeID])
}

func (g *Graph) resolve(ids []string) []*domain.Node {
	out := make([]*domain.Node, 0, len(ids))
	for _, id := range ids {
		out = append(out, g.nodes[id])
	}
	return out
}
