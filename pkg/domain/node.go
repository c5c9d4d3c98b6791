package domain

// Node represents a task in the process graph.
//
// Extensions is nil until the first attribute is written; readers treat a nil
// container as "no attributes".
type Node struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name,omitempty" yaml:"name,omitempty"`

	// Participant is the ID of the pool whose process contains this node.
	Participant string `json:"participant,omitempty" yaml:"participant,omitempty"`

	Extensions *Extensions `json:"extensions,omitempty" yaml:"extensions,omitempty"`
}

// Clone returns a deep copy of the node.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	c := *n
	if n.Extensions != nil {
		values := make([]Attribute, len(n.Extensions.Values))
		copy(values, n.Extensions.Values)
		c.Extensions = &Extensions{Values: values}
	}
	return &c
}
