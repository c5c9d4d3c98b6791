package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventRoleChange  EventType = "role_change"
	EventWarning     EventType = "warning"
	EventEnvironment EventType = "environment"
)

// Environment outcomes carried by EnvironmentEvent.
const (
	OutcomeReady    = "ready"
	OutcomeRejected = "rejected"
	OutcomeCleared  = "cleared"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	DiagramID string    `json:"diagram_id,omitempty"`
}

// RoleEvent is emitted after a role change has been committed.
type RoleEvent struct {
	EventBase
	Change RoleChange `json:"change"`
}

// WarningEvent is emitted for every advisory warning produced while changing a role.
type WarningEvent struct {
	EventBase
	Warning Warning `json:"warning"`
}

// EnvironmentEvent is emitted when the environment catalog is installed, rejected or cleared.
type EnvironmentEvent struct {
	EventBase
	Outcome  string `json:"outcome"`
	FileName string `json:"file_name,omitempty"`
	Places   int    `json:"places"`
	Error    string `json:"error,omitempty"`
}

// Hooks defines callbacks for editor observability.
type Hooks struct {
	OnRoleChange  func(context.Context, *RoleEvent)
	OnWarning     func(context.Context, *WarningEvent)
	OnEnvironment func(context.Context, *EnvironmentEvent)
}
