package ports

import (
	"context"

	"github.com/aretw0/spacetask/pkg/domain"
)

// DiagramStore defines the interface for persisting diagrams between edits.
type DiagramStore interface {
	// Save persists the diagram under the given ID.
	Save(ctx context.Context, id string, diagram *domain.Diagram) error

	// Load retrieves the diagram for a given ID.
	// Returns domain.ErrDiagramNotFound if the diagram does not exist.
	Load(ctx context.Context, id string) (*domain.Diagram, error)

	// Delete removes the diagram for a given ID.
	Delete(ctx context.Context, id string) error

	// List returns the IDs of the stored diagrams.
	List(ctx context.Context) ([]string, error)
}
