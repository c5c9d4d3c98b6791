package spacetask

import (
	"context"
	"fmt"

	"github.com/aretw0/spacetask/pkg/assignment"
	"github.com/aretw0/spacetask/pkg/diagram"
	"github.com/aretw0/spacetask/pkg/domain"
	"github.com/aretw0/spacetask/pkg/roles"
	"github.com/aretw0/spacetask/pkg/validation"
)

// Editor performs node operations on one diagram.
//
// The flow structure is captured when the Editor is created; create a new Editor after
// adding or removing flows. An Editor is not safe for concurrent use; callers that
// share a diagram serialize access (see package workspace).
type Editor struct {
	engine    *Engine
	diagram   *domain.Diagram
	validator *validation.Engine
	roles     *roles.Manager
}

// Editor returns an Editor for d.
func (e *Engine) Editor(d *domain.Diagram) *Editor {
	validator := validation.New(diagram.NewGraph(d))
	return &Editor{
		engine:    e,
		diagram:   d,
		validator: validator,
		roles: roles.NewManager(
			roles.WithChecker(validator),
			roles.WithDefaultDestination(e.defaultDestination),
			roles.WithLogger(e.logger.With("diagram_id", d.ID)),
		),
	}
}

// Diagram returns the edited diagram.
func (ed *Editor) Diagram() *domain.Diagram {
	return ed.diagram
}

func (ed *Editor) node(id string) (*domain.Node, error) {
	n, ok := ed.diagram.Node(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrNodeNotFound, id)
	}
	return n, nil
}

// Role returns the role of the node.
func (ed *Editor) Role(nodeID string) (domain.Role, error) {
	n, err := ed.node(nodeID)
	if err != nil {
		return domain.RoleNone, err
	}
	return ed.roles.Get(n), nil
}

// SetRole assigns role to the node. Warnings of the pre-check are returned in the
// change and reported to the hooks; the role is committed either way.
func (ed *Editor) SetRole(ctx context.Context, nodeID string, role domain.Role) (domain.RoleChange, error) {
	n, err := ed.node(nodeID)
	if err != nil {
		return domain.RoleChange{}, err
	}
	change, err := ed.roles.Set(n, role)
	if err != nil {
		return domain.RoleChange{}, err
	}
	ed.report(ctx, change)
	return change, nil
}

// ClearRole removes the role of the node and keeps its role data.
func (ed *Editor) ClearRole(ctx context.Context, nodeID string) (domain.RoleChange, error) {
	n, err := ed.node(nodeID)
	if err != nil {
		return domain.RoleChange{}, err
	}
	change := ed.roles.Clear(n)
	ed.report(ctx, change)
	return change, nil
}

func (ed *Editor) report(ctx context.Context, change domain.RoleChange) {
	hooks := ed.engine.hooks
	if hooks.OnWarning != nil {
		for _, w := range change.Warnings {
			hooks.OnWarning(ctx, &domain.WarningEvent{
				EventBase: ed.engine.base(domain.EventWarning, ed.diagram.ID),
				Warning:   w,
			})
		}
	}
	if change.Changed && hooks.OnRoleChange != nil {
		hooks.OnRoleChange(ctx, &domain.RoleEvent{
			EventBase: ed.engine.base(domain.EventRoleChange, ed.diagram.ID),
			Change:    change,
		})
	}
}

// QuickCheck returns every warning changing the node to role would produce.
func (ed *Editor) QuickCheck(nodeID string, role domain.Role) (domain.CheckResult, error) {
	n, err := ed.node(nodeID)
	if err != nil {
		return domain.CheckResult{}, err
	}
	return ed.validator.QuickCheck(n, role), nil
}

// FullCheck returns the top warning changing the node to role would produce.
func (ed *Editor) FullCheck(nodeID string, role domain.Role) (domain.Warning, bool, error) {
	n, err := ed.node(nodeID)
	if err != nil {
		return domain.Warning{}, false, err
	}
	w, ok := ed.validator.FullCheck(n, role)
	return w, ok, nil
}

// Destination returns the movement destination of the node.
func (ed *Editor) Destination(nodeID string) (string, error) {
	n, err := ed.node(nodeID)
	if err != nil {
		return "", err
	}
	return ed.roles.Destination(n), nil
}

// SetDestination stores the destination and returns the value written.
func (ed *Editor) SetDestination(nodeID, value string) (string, error) {
	n, err := ed.node(nodeID)
	if err != nil {
		return "", err
	}
	return ed.roles.SetDestination(n, value), nil
}

// Binding returns the participant bound by the node.
func (ed *Editor) Binding(nodeID string) (string, error) {
	n, err := ed.node(nodeID)
	if err != nil {
		return "", err
	}
	return ed.roles.Binding(n), nil
}

// SetBinding stores the bound participant.
func (ed *Editor) SetBinding(nodeID, participantID string) error {
	n, err := ed.node(nodeID)
	if err != nil {
		return err
	}
	ed.roles.SetBinding(n, participantID)
	return nil
}

// Participants lists the participants the node may bind.
func (ed *Editor) Participants(nodeID string) ([]domain.Participant, error) {
	if _, err := ed.node(nodeID); err != nil {
		return nil, err
	}
	return diagram.AvailableParticipants(ed.diagram, nodeID), nil
}

// Bindings lists the participant pairs recorded on the diagram's message flows.
func (ed *Editor) Bindings() []diagram.BindingDetails {
	out := diagram.Bindings(ed.diagram)
	if out == nil {
		out = []diagram.BindingDetails{}
	}
	return out
}

// AssignmentCount returns how many of the node's pairs have a non-empty side.
func (ed *Editor) AssignmentCount(nodeID string) (int, error) {
	n, err := ed.node(nodeID)
	if err != nil {
		return 0, err
	}
	return assignment.Count(n), nil
}

// Assignments lists the node's assignments.
func (ed *Editor) Assignments(nodeID string) ([]domain.Assignment, error) {
	n, err := ed.node(nodeID)
	if err != nil {
		return nil, err
	}
	return assignment.List(n), nil
}

// AddAssignment appends a pair. Pairs are stored even when they do not parse.
func (ed *Editor) AddAssignment(nodeID, condition, value string) error {
	n, err := ed.node(nodeID)
	if err != nil {
		return err
	}
	assignment.Add(n, condition, value)
	return nil
}

// UpdateAssignment replaces the pair at index. It reports false when index is out of range.
func (ed *Editor) UpdateAssignment(nodeID string, index int, condition, value string) (bool, error) {
	n, err := ed.node(nodeID)
	if err != nil {
		return false, err
	}
	return assignment.Update(n, index, condition, value), nil
}

// RemoveAssignment deletes the pair at index. It reports false when index is out of range.
func (ed *Editor) RemoveAssignment(nodeID string, index int) (bool, error) {
	n, err := ed.node(nodeID)
	if err != nil {
		return false, err
	}
	return assignment.RemoveAt(n, index), nil
}

// ClearAssignments removes every pair of the node.
func (ed *Editor) ClearAssignments(nodeID string) error {
	n, err := ed.node(nodeID)
	if err != nil {
		return err
	}
	assignment.Clear(n)
	return nil
}

// ValidateAssignment checks a pair against the grammar and the loaded environment.
func (ed *Editor) ValidateAssignment(condition, value string) assignment.Validation {
	return assignment.Validate(condition, value, ed.engine.catalog)
}
