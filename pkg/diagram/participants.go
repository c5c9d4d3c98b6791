package diagram

import (
	"github.com/aretw0/spacetask/pkg/attributes"
	"github.com/aretw0/spacetask/pkg/domain"
)

// BindingDetails are the endpoints of a message flow as recorded in its attributes.
type BindingDetails struct {
	FlowID       string `json:"flow_id"`
	Participant1 string `json:"participant1,omitempty"`
	Participant2 string `json:"participant2,omitempty"`
}

// Empty reports whether neither endpoint is recorded.
func (b BindingDetails) Empty() bool {
	return b.Participant1 == "" && b.Participant2 == ""
}

// ReadBinding returns the Participant1/Participant2 attributes of f.
func ReadBinding(f domain.Flow) BindingDetails {
	holder := &domain.Node{Extensions: f.Extensions}
	return BindingDetails{
		FlowID:       f.ID,
		Participant1: attributes.Value(holder, domain.KindParticipant1),
		Participant2: attributes.Value(holder, domain.KindParticipant2),
	}
}

// Bindings lists the binding details of every message flow that records any.
func Bindings(d *domain.Diagram) []BindingDetails {
	var out []BindingDetails
	for _, f := range d.Flows {
		if f.IsSequence() {
			continue
		}
		if b := ReadBinding(f); !b.Empty() {
			out = append(out, b)
		}
	}
	return out
}

// AvailableParticipants returns the participants a node may bind to: every pool
// except the one containing the node.
func AvailableParticipants(d *domain.Diagram, nodeID string) []domain.Participant {
	own := ""
	if n, ok := d.Node(nodeID); ok {
		own = n.Participant
	}
	out := []domain.Participant{}
	for _, p := range d.Participants {
		if p.ID != own || own == "" {
			out = append(out, p)
		}
	}
	return out
}
