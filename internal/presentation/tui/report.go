package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"

	"github.com/aretw0/spacetask/pkg/assignment"
	"github.com/aretw0/spacetask/pkg/domain"
	"github.com/aretw0/spacetask/pkg/environment"
)

// SummaryMarkdown describes the loaded environment.
func SummaryMarkdown(s environment.Summary) string {
	if !s.Loaded {
		return "# Environment\n\nNo environment loaded.\n"
	}

	var sb strings.Builder
	sb.WriteString("# Environment\n\n")
	if s.FileName != "" {
		fmt.Fprintf(&sb, "Loaded from `%s` (%s) at %s.\n\n", s.FileName, s.Source, s.LoadedAt.Format("2006-01-02 15:04:05 MST"))
	}
	sb.WriteString("| Places | Edges | Logical places | Views |\n")
	sb.WriteString("|---|---|---|---|\n")
	fmt.Fprintf(&sb, "| %d | %d | %d | %d |\n\n", s.Places, s.Edges, s.LogicalPlaces, s.Views)
	writeList(&sb, "Zones", s.Zones)
	writeList(&sb, "Purposes", s.Purposes)
	return sb.String()
}

func writeList(sb *strings.Builder, title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(sb, "## %s\n\n", title)
	for _, item := range items {
		fmt.Fprintf(sb, "- %s\n", item)
	}
	sb.WriteString("\n")
}

// WarningsMarkdown lists warnings under title.
func WarningsMarkdown(title string, warnings []domain.Warning) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", title)
	if len(warnings) == 0 {
		sb.WriteString("No warnings.\n")
		return sb.String()
	}
	for _, w := range warnings {
		fmt.Fprintf(&sb, "- **%s** `%s`: %s\n", w.NodeID, w.Rule, w.Message)
	}
	return sb.String()
}

// AssignmentsMarkdown lists the assignments of a node, numbered from zero.
// count is the number of pairs with a non-empty side.
func AssignmentsMarkdown(nodeID string, list []domain.Assignment, count int) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# Assignments of %s\n\n", nodeID)
	if len(list) == 0 {
		sb.WriteString("No assignments.\n")
		return sb.String()
	}
	fmt.Fprintf(&sb, "%d of %d set.\n\n", count, len(list))
	for i, a := range list {
		fmt.Fprintf(&sb, "%d. %s\n", i, assignment.Format(a))
	}
	return sb.String()
}

// PrintWarning writes a coloured one-line warning.
func PrintWarning(w io.Writer, warning domain.Warning) {
	out := termenv.NewOutput(w)
	label := out.String("warning").Foreground(out.Color("#f59e0b")).Bold()
	fmt.Fprintf(w, "%s [%s] %s\n", label, warning.Rule, warning.Message)
}

// PrintChange writes a one-line role change report.
func PrintChange(w io.Writer, change domain.RoleChange) {
	if !change.Changed {
		fmt.Fprintf(w, "%s: role unchanged (%s)\n", change.NodeID, change.To)
		return
	}
	out := termenv.NewOutput(w)
	to := out.String(change.To.String()).Foreground(out.Color("#34d399"))
	fmt.Fprintf(w, "%s: %s -> %s\n", change.NodeID, change.From, to)
	for _, kind := range change.Provisioned {
		fmt.Fprintf(w, "  provisioned %s\n", kind)
	}
}
