package ports

import (
	"context"

	"github.com/aretw0/spacetask/pkg/domain"
)

// DiagramLoader builds a diagram from an external source.
// This allows the document source (file, directory, memory) to be decoupled.
type DiagramLoader interface {
	Load(ctx context.Context) (*domain.Diagram, error)
}
