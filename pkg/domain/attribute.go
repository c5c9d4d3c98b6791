package domain

import "strings"

// Kind identifies an extension attribute.
type Kind string

// Recognized attribute kinds.
const (
	KindType            Kind = "Type"
	KindDestination     Kind = "Destination"
	KindBinding         Kind = "Binding"
	KindAssignment      Kind = "Assignment"
	KindAssignmentValue Kind = "AssignmentValue"
	KindParticipant1    Kind = "Participant1"
	KindParticipant2    Kind = "Participant2"
)

// KindNamespace is the optional prefix hosts put in front of attribute kinds
// (e.g. "space:Destination").
const KindNamespace = "space:"

var knownKinds = []Kind{
	KindType,
	KindDestination,
	KindBinding,
	KindAssignment,
	KindAssignmentValue,
	KindParticipant1,
	KindParticipant2,
}

// CanonicalKind maps a raw kind string to its recognized form.
// The namespace prefix is dropped and recognized kinds match case-insensitively.
// Unknown kinds are returned verbatim.
func CanonicalKind(raw string) Kind {
	name := raw
	if len(name) >= len(KindNamespace) && strings.EqualFold(name[:len(KindNamespace)], KindNamespace) {
		name = name[len(KindNamespace):]
	}
	for _, k := range knownKinds {
		if strings.EqualFold(name, string(k)) {
			return k
		}
	}
	return Kind(raw)
}

// Known reports whether k is one of the recognized kinds.
func (k Kind) Known() bool {
	c := CanonicalKind(string(k))
	for _, known := range knownKinds {
		if c == known {
			return true
		}
	}
	return false
}

// Is reports whether k and other name the same attribute.
func (k Kind) Is(other Kind) bool {
	return CanonicalKind(string(k)) == CanonicalKind(string(other))
}

// Attribute is a single typed key/value pair attached to a node or flow.
type Attribute struct {
	Kind  Kind   `json:"kind" yaml:"kind" mapstructure:"kind"`
	Value string `json:"value" yaml:"value" mapstructure:"value"`
}

// Extensions is the container holding a node's attributes in insertion order.
type Extensions struct {
	Values []Attribute `json:"values" yaml:"values" mapstructure:"values"`
}
