package graph_test

import (
	"strings"
	"testing"

	"github.com/aretw0/spacetask/internal/presentation/graph"
	"github.com/aretw0/spacetask/pkg/domain"
)

func typed(id, role string, extra ...domain.Attribute) *domain.Node {
	values := append([]domain.Attribute{{Kind: domain.KindType, Value: role}}, extra...)
	return &domain.Node{ID: id, Extensions: &domain.Extensions{Values: values}}
}

func TestGenerateMermaid(t *testing.T) {
	tests := []struct {
		name     string
		diagram  *domain.Diagram
		overlay  *graph.GraphOverlay
		contains []string
		excludes []string
	}{
		{
			name: "Role Shapes",
			diagram: &domain.Diagram{Nodes: []*domain.Node{
				typed("go", "movement", domain.Attribute{Kind: domain.KindDestination, Value: "Lab A"}),
				typed("grab", "bind"),
				typed("release", "unbinding"),
				{ID: "plain", Name: "Plain \"task\""},
			}},
			contains: []string{
				"go([\"go <br/> → Lab A\"])",
				"grab[[\"grab\"]]",
				"release{{\"release\"}}",
				"plain[\"Plain 'task'\"]",
			},
		},
		{
			name: "ID Sanitization",
			diagram: &domain.Diagram{Nodes: []*domain.Node{
				{ID: "path/to/file.md"},
				{ID: "hyphen-ated"},
			}},
			contains: []string{
				"path_to_file_md[\"path/to/file.md\"]",
				"hyphen_ated[\"hyphen-ated\"]",
			},
		},
		{
			name: "Participants and Flows",
			diagram: &domain.Diagram{
				Participants: []domain.Participant{{ID: "robot", Name: "Robot"}, {ID: "empty"}},
				Nodes: []*domain.Node{
					{ID: "a", Participant: "robot"},
					{ID: "b", Participant: "robot"},
					{ID: "c", Participant: "undeclared"},
				},
				Flows: []domain.Flow{
					{ID: "f1", Source: "a", Target: "b"},
					{ID: "m1", Kind: domain.FlowMessage, Source: "b", Target: "c"},
				},
			},
			contains: []string{
				"subgraph robot[\"Robot\"]",
				"        a[\"a\"]",
				"    c[\"c\"]",
				"a --> b",
				"b -.-> c",
			},
			excludes: []string{
				"subgraph empty",
			},
		},
		{
			name:    "Overlay",
			diagram: &domain.Diagram{Nodes: []*domain.Node{{ID: "x-1"}, {ID: "y"}}},
			overlay: &graph.GraphOverlay{WarnedNodes: []string{"x-1", "x-1"}, Selected: "y"},
			contains: []string{
				"classDef warned",
				"class x_1 warned;",
				"class y selected;",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := graph.GenerateMermaid(tt.diagram, tt.overlay)
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("expected output to contain %q\n--- got ---\n%s", want, got)
				}
			}
			for _, unwanted := range tt.excludes {
				if strings.Contains(got, unwanted) {
					t.Errorf("expected output not to contain %q", unwanted)
				}
			}
			if strings.Count(got, "class x_1 warned;") > 1 {
				t.Errorf("warned nodes must be deduplicated")
			}
		})
	}
}
