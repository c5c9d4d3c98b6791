package loam

import "github.com/aretw0/spacetask/pkg/domain"

// Document kinds.
const (
	KindTask        = "task"
	KindParticipant = "participant"
)

// TaskMetadata is the frontmatter of one task file.
// It uses "mapstructure" tags to match standard Frontmatter/YAML keys.
type TaskMetadata struct {
	ID   string `json:"id" mapstructure:"id"`
	Kind string `json:"kind" mapstructure:"kind"` // task (default) or participant
	Name string `json:"name" mapstructure:"name"`

	// Participant is the pool containing the task.
	Participant string `json:"participant" mapstructure:"participant"`

	// Role shortcuts, written as Type/Destination/Binding attributes.
	Type        string `json:"type" mapstructure:"type"`
	Destination string `json:"destination" mapstructure:"destination"`
	Binding     string `json:"binding" mapstructure:"binding"`

	// Next lists the targets of outgoing sequence flows.
	Next     []string      `json:"next" mapstructure:"next"`
	Messages []MessageFlow `json:"messages" mapstructure:"messages"`

	// Attributes are extra extension attributes, kept verbatim.
	Attributes []domain.Attribute `json:"attributes" mapstructure:"attributes"`
}

// MessageFlow is an outgoing message flow carrying binding details.
type MessageFlow struct {
	ID           string `json:"id" mapstructure:"id"`
	To           string `json:"to" mapstructure:"to"`
	Participant1 string `json:"participant1" mapstructure:"participant1"`
	Participant2 string `json:"participant2" mapstructure:"participant2"`
}
