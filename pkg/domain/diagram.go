package domain

// FlowKind distinguishes control-flow edges from cross-pool message edges.
type FlowKind string

const (
	FlowSequence FlowKind = "sequence"
	FlowMessage  FlowKind = "message"
)

// Flow is a directed edge of the host document.
type Flow struct {
	ID     string   `json:"id" yaml:"id"`
	Kind   FlowKind `json:"kind,omitempty" yaml:"kind,omitempty"` // empty means sequence
	Source string   `json:"source" yaml:"source"`
	Target string   `json:"target" yaml:"target"`

	Extensions *Extensions `json:"extensions,omitempty" yaml:"extensions,omitempty"`
}

// IsSequence reports whether the flow belongs to the process graph.
func (f Flow) IsSequence() bool {
	return f.Kind == "" || f.Kind == FlowSequence
}

// Participant is a pool of the collaboration diagram.
type Participant struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name,omitempty" yaml:"name,omitempty"`
}

// DisplayName falls back to the ID when the participant is unnamed.
func (p Participant) DisplayName() string {
	if p.Name == "" {
		return p.ID
	}
	return p.Name
}

// Diagram is the host document: participants, task nodes and the flows between them.
// The core packages only read its structure; attribute writes go through pkg/attributes.
type Diagram struct {
	ID           string        `json:"id" yaml:"id"`
	Name         string        `json:"name,omitempty" yaml:"name,omitempty"`
	Participants []Participant `json:"participants,omitempty" yaml:"participants,omitempty"`
	Nodes        []*Node       `json:"nodes" yaml:"nodes"`
	Flows        []Flow        `json:"flows,omitempty" yaml:"flows,omitempty"`
}

// Node looks up a node by ID.
func (d *Diagram) Node(id string) (*Node, bool) {
	for _, n := range d.Nodes {
		if n != nil && n.ID == id {
			return n, true
		}
	}
	return nil, false
}

// Flow looks up a flow by ID.
func (d *Diagram) Flow(id string) (Flow, bool) {
	for _, f := range d.Flows {
		if f.ID == id {
			return f, true
		}
	}
	return Flow{}, false
}

// Clone returns a deep copy of the diagram.
func (d *Diagram) Clone() *Diagram {
	if d == nil {
		return nil
	}
	c := *d
	c.Participants = append([]Participant(nil), d.Participants...)
	c.Nodes = make([]*Node, len(d.Nodes))
	for i, n := range d.Nodes {
		c.Nodes[i] = n.Clone()
	}
	c.Flows = make([]Flow, len(d.Flows))
	for i, f := range d.Flows {
		c.Flows[i] = f
		if f.Extensions != nil {
			values := make([]Attribute, len(f.Extensions.Values))
			copy(values, f.Extensions.Values)
			c.Flows[i].Extensions = &Extensions{Values: values}
		}
	}
	return &c
}
