package memory

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aretw0/spacetask/pkg/diagram"
	"github.com/aretw0/spacetask/pkg/domain"
)

// Loader implements ports.DiagramLoader over a diagram held in memory.
type Loader struct {
	diagram *domain.Diagram
}

// NewLoader serves copies of d.
func NewLoader(d *domain.Diagram) *Loader {
	return &Loader{diagram: d.Clone()}
}

// NewFromJSON decodes a diagram from raw JSON. This keeps test fixtures short.
func NewFromJSON(raw string) (*Loader, error) {
	var d domain.Diagram
	if err := json.Unmarshal([]byte(raw), &d); err != nil {
		return nil, fmt.Errorf("failed to decode diagram: %w", err)
	}
	if err := diagram.Check(&d); err != nil {
		return nil, err
	}
	return &Loader{diagram: &d}, nil
}

// NewFromNodes builds a diagram with the given nodes and sequence flows between
// consecutive pairs of ids in edges.
func NewFromNodes(nodes []*domain.Node, edges ...[2]string) *Loader {
	d := &domain.Diagram{ID: "memory", Nodes: nodes}
	for i, e := range edges {
		d.Flows = append(d.Flows, domain.Flow{ID: fmt.Sprintf("flow_%d", i), Source: e[0], Target: e[1]})
	}
	return &Loader{diagram: d}
}

// Load returns a fresh copy of the diagram on every call.
func (l *Loader) Load(ctx context.Context) (*domain.Diagram, error) {
	return l.diagram.Clone(), nil
}
