package loam

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aretw0/loam"

	"github.com/aretw0/spacetask/pkg/attributes"
	"github.com/aretw0/spacetask/pkg/domain"
)

// Loader adapts the Loam library to the DiagramLoader interface.
// Every document of the repository is one task (or one participant).
type Loader struct {
	Repo *loam.TypedRepository[TaskMetadata]
	Name string
}

// New creates a new Loam adapter.
func New(repo *loam.TypedRepository[TaskMetadata], name string) *Loader {
	return &Loader{
		Repo: repo,
		Name: name,
	}
}

// Open initializes a read-only Loam repository over dir.
// Strict mode keeps numeric types consistent across JSON and Markdown/YAML documents.
func Open(dir string) (*Loader, error) {
	absPath, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("invalid path: %w", err)
	}

	repo, err := loam.Init(absPath,
		loam.WithStrict(true),
		loam.WithReadOnly(true),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize loam: %w", err)
	}

	return New(loam.NewTypedRepository[TaskMetadata](repo), filepath.Base(absPath)), nil
}

// Load implements ports.DiagramLoader.
func (l *Loader) Load(ctx context.Context) (*domain.Diagram, error) {
	docs, err := l.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loam list failed: %w", err)
	}

	d := &domain.Diagram{ID: l.Name, Name: l.Name}
	seen := make(map[string]string)
	pools := make(map[string]bool)
	var tasks []TaskMetadata

	for _, doc := range docs {
		meta := doc.Data
		rawID := meta.ID
		if rawID == "" {
			rawID = doc.ID
		}
		meta.ID = trimExtension(rawID)

		if existingPath, ok := seen[meta.ID]; ok {
			return nil, fmt.Errorf("collision detected: ID '%s' is defined in both '%s' and '%s'", meta.ID, existingPath, doc.ID)
		}
		seen[meta.ID] = doc.ID

		switch strings.ToLower(meta.Kind) {
		case KindParticipant:
			d.Participants = append(d.Participants, domain.Participant{ID: meta.ID, Name: meta.Name})
			pools[meta.ID] = true
		case "", KindTask:
			tasks = append(tasks, meta)
		default:
			return nil, fmt.Errorf("document %s: unknown kind %q", doc.ID, meta.Kind)
		}
	}

	sort.Slice(tasks, func(i, j int) bool { return tasks[i].ID < tasks[j].ID })
	for _, meta := range tasks {
		d.Nodes = append(d.Nodes, buildNode(meta))
		d.Flows = append(d.Flows, buildFlows(meta)...)

		if meta.Participant != "" && !pools[meta.Participant] {
			d.Participants = append(d.Participants, domain.Participant{ID: meta.Participant})
			pools[meta.Participant] = true
		}
	}
	sort.Slice(d.Participants, func(i, j int) bool { return d.Participants[i].ID < d.Participants[j].ID })

	return d, nil
}

func buildNode(meta TaskMetadata) *domain.Node {
	node := &domain.Node{
		ID:          meta.ID,
		Name:        meta.Name,
		Participant: meta.Participant,
	}
	for _, attr := range meta.Attributes {
		attributes.Set(node, attr.Kind, attr.Value)
	}
	if meta.Type != "" {
		attributes.Set(node, domain.KindType, string(domain.NormalizeRole(meta.Type)))
	}
	if meta.Destination != "" {
		attributes.Set(node, domain.KindDestination, meta.Destination)
	}
	if meta.Binding != "" {
		attributes.Set(node, domain.KindBinding, meta.Binding)
	}
	return node
}

func buildFlows(meta TaskMetadata) []domain.Flow {
	flows := make([]domain.Flow, 0, len(meta.Next)+len(meta.Messages))
	for _, to := range meta.Next {
		to = trimExtension(to)
		flows = append(flows, domain.Flow{
			ID:     meta.ID + "->" + to,
			Kind:   domain.FlowSequence,
			Source: meta.ID,
			Target: to,
		})
	}
	for _, m := range meta.Messages {
		to := trimExtension(m.To)
		f := domain.Flow{
			ID:     m.ID,
			Kind:   domain.FlowMessage,
			Source: meta.ID,
			Target: to,
		}
		if f.ID == "" {
			f.ID = meta.ID + "~>" + to
		}
		if m.Participant1 != "" || m.Participant2 != "" {
			f.Extensions = &domain.Extensions{Values: []domain.Attribute{
				{Kind: domain.KindParticipant1, Value: m.Participant1},
				{Kind: domain.KindParticipant2, Value: m.Participant2},
			}}
		}
		flows = append(flows, f)
	}
	return flows
}

func trimExtension(id string) string {
	ext := filepath.Ext(id)
	if ext != "" {
		return filepath.ToSlash(strings.TrimSuffix(id, ext))
	}
	return filepath.ToSlash(id)
}
