package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/aretw0/spacetask/pkg/adapters/loam"
	"github.com/aretw0/spacetask/pkg/diagram"
	"github.com/aretw0/spacetask/pkg/domain"
)

// OpenDiagram reads a diagram file (JSON or YAML) or a directory of task files.
func OpenDiagram(ctx context.Context, path string) (*domain.Diagram, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open diagram: %w", err)
	}

	var d *domain.Diagram
	if info.IsDir() {
		loader, err := loam.Open(path)
		if err != nil {
			return nil, err
		}
		d, err = loader.Load(ctx)
		if err != nil {
			return nil, err
		}
	} else {
		d, err = diagram.DecodeFile(path)
		if err != nil {
			return nil, err
		}
	}

	if err := diagram.Check(d); err != nil {
		return nil, fmt.Errorf("invalid diagram %s: %w", path, err)
	}
	return d, nil
}

// SaveDiagram writes d back to path. Directories are read-only.
func SaveDiagram(path string, d *domain.Diagram) error {
	info, err := os.Stat(path)
	if err == nil && info.IsDir() {
		return fmt.Errorf("%s is a directory of task files and cannot be written", path)
	}
	return diagram.WriteFile(path, d)
}
