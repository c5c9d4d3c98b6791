package domain

import (
	"fmt"
	"strings"
)

// Role is the semantic tag of a task node.
type Role string

const (
	// RoleNone means the node has no Type attribute.
	RoleNone      Role = ""
	RoleMovement  Role = "movement"
	RoleBinding   Role = "binding"
	RoleUnbinding Role = "unbinding"
)

// DefaultDestination is the placeholder written when a movement node has no destination yet.
const DefaultDestination = "${destination}"

// Roles lists the assignable roles in menu order.
var Roles = []Role{RoleMovement, RoleBinding, RoleUnbinding}

// NormalizeRole converts a raw Type value into a Role.
// Matching is case-insensitive; "bind" and "unbind" are accepted as short forms.
// Unrecognized values are returned lower-cased so callers can still display them.
func NormalizeRole(raw string) Role {
	v := strings.ToLower(strings.TrimSpace(raw))
	switch v {
	case "":
		return RoleNone
	case "bind", "binding":
		return RoleBinding
	case "unbind", "unbinding":
		return RoleUnbinding
	default:
		return Role(v)
	}
}

// ParseRole normalizes raw and rejects anything that is not an assignable role.
func ParseRole(raw string) (Role, error) {
	r := NormalizeRole(raw)
	if !r.Valid() {
		return RoleNone, fmt.Errorf("%w: %q", ErrUnknownRole, raw)
	}
	return r, nil
}

// Valid reports whether r is one of movement, binding or unbinding.
func (r Role) Valid() bool {
	switch r {
	case RoleMovement, RoleBinding, RoleUnbinding:
		return true
	}
	return false
}

// Label is the default task name for a role.
func (r Role) Label() string {
	switch r {
	case RoleMovement:
		return "Move to destination"
	case RoleBinding:
		return "Bind"
	case RoleUnbinding:
		return "Unbind"
	case RoleNone:
		return "No type set"
	}
	return string(r)
}

func (r Role) String() string {
	if r == RoleNone {
		return "unassigned"
	}
	return string(r)
}

// RoleChange describes the outcome of a role assignment.
type RoleChange struct {
	NodeID  string `json:"node_id"`
	From    Role   `json:"from"`
	To      Role   `json:"to"`
	Changed bool   `json:"changed"`

	// Provisioned lists attributes created to satisfy the new role.
	Provisioned []Kind `json:"provisioned,omitempty"`

	// Warnings are the advisory results of the pre-check. They never block the change.
	Warnings []Warning `json:"warnings,omitempty"`
}
