package spacetask

import (
	"fmt"

	"github.com/aretw0/spacetask/pkg/assignment"
	"github.com/aretw0/spacetask/pkg/domain"
	"github.com/aretw0/spacetask/pkg/roles"
)

// Audit reviews every node of the diagram, in node order:
//   - the sequencing rules for the role the node already holds;
//   - movement destinations that match no place or logical place of the loaded environment;
//   - assignments that do not parse or reference unknown places.
//
// The diagram is not modified and no hooks fire.
func (ed *Editor) Audit() []domain.Warning {
	warnings := []domain.Warning{}
	catalog := ed.engine.catalog

	for _, n := range ed.diagram.Nodes {
		if n == nil {
			continue
		}
		warnings = append(warnings, ed.validator.Audit([]*domain.Node{n})...)

		if roles.Of(n) == domain.RoleMovement && catalog.HasData() {
			dest := ed.roles.Destination(n)
			if !ed.roles.IsPlaceholder(dest) && !catalog.IsValidDestination(dest) {
				if _, logical := catalog.ResolveLogical(dest); !logical {
					warnings = append(warnings, domain.Warning{
						Rule:    domain.RuleUnknownDestination,
						NodeID:  n.ID,
						Message: fmt.Sprintf("Destination %q of task %q is not a known place", dest, label(n)),
					})
				}
			}
		}

		for i, a := range assignment.List(n) {
			res := assignment.Validate(a.Condition, a.Value, catalog)
			for _, msg := range res.Errors {
				warnings = append(warnings, domain.Warning{
					Rule:    domain.RuleInvalidAssignment,
					NodeID:  n.ID,
					Message: fmt.Sprintf("Assignment %d of task %q: %s", i+1, label(n), msg),
				})
			}
		}
	}
	return warnings
}

func label(n *domain.Node) string {
	if n.Name != "" {
		return n.Name
	}
	return n.ID
}
