package diagram

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/spacetask/pkg/domain"
)

// Format selects the wire encoding of a diagram.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFor picks a format from a file extension. Anything but .json is YAML.
func FormatFor(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatYAML
}

// Decode reads a diagram and checks its structure.
func Decode(r io.Reader, format Format) (*domain.Diagram, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read diagram: %w", err)
	}

	var d domain.Diagram
	switch format {
	case FormatJSON:
		err = json.Unmarshal(raw, &d)
	default:
		err = yaml.Unmarshal(raw, &d)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse diagram: %w", err)
	}
	if err := Check(&d); err != nil {
		return nil, err
	}
	return &d, nil
}

// DecodeFile reads a diagram file. A diagram without an id takes the file's base name.
func DecodeFile(path string) (*domain.Diagram, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read diagram file: %w", err)
	}
	d, err := Decode(bytes.NewReader(raw), FormatFor(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if d.ID == "" {
		d.ID = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return d, nil
}

// Encode writes d in the given format.
func Encode(w io.Writer, d *domain.Diagram, format Format) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(d)
	default:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(d); err != nil {
			return err
		}
		return enc.Close()
	}
}

// WriteFile encodes d to path, choosing the format from the extension.
func WriteFile(path string, d *domain.Diagram) error {
	var buf bytes.Buffer
	if err := Encode(&buf, d, FormatFor(path)); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0644)
}

// EnsureID assigns a random id to a diagram that has none and returns the id.
func EnsureID(d *domain.Diagram) string {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	return d.ID
}

// Check verifies that node ids are present and unique and that every flow names a source and target.
func Check(d *domain.Diagram) error {
	var errs []error
	seen := make(map[string]bool, len(d.Nodes))
	for i, n := range d.Nodes {
		switch {
		case n == nil:
			errs = append(errs, fmt.Errorf("node %d is empty", i))
		case n.ID == "":
			errs = append(errs, fmt.Errorf("node %d has no id", i))
		case seen[n.ID]:
			errs = append(errs, fmt.Errorf("duplicate node id %q", n.ID))
		default:
			seen[n.ID] = true
		}
	}
	for i, f := range d.Flows {
		if f.Source == "" || f.Target == "" {
			errs = append(errs, fmt.Errorf("flow %d (%s) needs a source and a target", i, f.ID))
		}
	}
	return errors.Join(errs...)
}
