package ports

import "github.com/aretw0/spacetask/pkg/domain"

// Graph is the read-only view of the process graph consumed by the validation rules.
// Implementations must not mutate the diagram while a traversal is running.
type Graph interface {
	// Incoming returns the nodes with a flow into nodeID.
	Incoming(nodeID string) []*domain.Node

	// Outgoing returns the nodes reached by a flow out of nodeID.
	Outgoing(nodeID string) []*domain.Node
}
