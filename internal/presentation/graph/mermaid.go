package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/spacetask/pkg/attributes"
	"github.com/aretw0/spacetask/pkg/domain"
	"github.com/aretw0/spacetask/pkg/roles"
)

// GraphOverlay marks nodes to highlight on the rendered graph.
type GraphOverlay struct {
	WarnedNodes []string
	Selected    string
}

// GenerateMermaid renders a diagram as a Mermaid flowchart.
// Nodes are grouped in one subgraph per participant and shaped by role:
// - Movement: ([Stadium]) with its destination
// - Binding: [[Subroutine]]
// - Unbinding: {{Hexagon}}
// - Unassigned: [Rectangle]
// Sequence flows are solid arrows; message flows are dotted.
func GenerateMermaid(d *domain.Diagram, overlay *GraphOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	grouped := make(map[string][]*domain.Node)
	var loose []*domain.Node
	for _, n := range d.Nodes {
		if n == nil {
			continue
		}
		if n.Participant == "" {
			loose = append(loose, n)
			continue
		}
		grouped[n.Participant] = append(grouped[n.Participant], n)
	}

	for _, p := range d.Participants {
		nodes := grouped[p.ID]
		if len(nodes) == 0 {
			continue
		}
		fmt.Fprintf(&sb, "    subgraph %s[\"%s\"]\n", sanitizeMermaidID(p.ID), escape(p.DisplayName()))
		for _, n := range nodes {
			writeNode(&sb, n, "        ")
		}
		sb.WriteString("    end\n")
		delete(grouped, p.ID)
	}
	// Nodes whose participant is not declared are drawn at the top level.
	for _, n := range d.Nodes {
		if n != nil && grouped[n.Participant] != nil {
			loose = append(loose, n)
		}
	}
	for _, n := range loose {
		writeNode(&sb, n, "    ")
	}

	for _, f := range d.Flows {
		arrow := "-->"
		if !f.IsSequence() {
			arrow = "-.->"
		}
		fmt.Fprintf(&sb, "    %s %s %s\n", sanitizeMermaidID(f.Source), arrow, sanitizeMermaidID(f.Target))
	}

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		sb.WriteString("    classDef warned fill:#fff3e0,stroke:#e65100,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef selected fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		seen := make(map[string]bool)
		for _, id := range overlay.WarnedNodes {
			safeID := sanitizeMermaidID(id)
			if safeID != "" && !seen[safeID] {
				seen[safeID] = true
				fmt.Fprintf(&sb, "    class %s warned;\n", safeID)
			}
		}
		if overlay.Selected != "" {
			fmt.Fprintf(&sb, "    class %s selected;\n", sanitizeMermaidID(overlay.Selected))
		}
	}

	return sb.String()
}

func writeNode(sb *strings.Builder, n *domain.Node, indent string) {
	opener, closer := "[", "]"
	label := n.Name
	if label == "" {
		label = n.ID
	}

	switch roles.Of(n) {
	case domain.RoleMovement:
		opener, closer = "([", "])"
		if dest := attributes.Value(n, domain.KindDestination); dest != "" {
			label += " <br/> → " + dest
		}
	case domain.RoleBinding:
		opener, closer = "[[", "]]"
	case domain.RoleUnbinding:
		opener, closer = "{{", "}}"
	}

	fmt.Fprintf(sb, "%s%s%s\"%s\"%s\n", indent, sanitizeMermaidID(n.ID), opener, escape(label), closer)
}

func escape(s string) string {
	return strings.ReplaceAll(s, "\"", "'")
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	s = strings.ReplaceAll(s, " ", "_")
	return s
}
