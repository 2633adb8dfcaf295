package domain

import "time"

// WorkflowEvent records one successful mutation of a property, listing or document.
type WorkflowEvent struct {
	Entity     EntityKind
	EntityID   string
	Event      Event
	From       string
	To         string
	ActorID    string
	Comments   string
	OccurredAt time.Time
}

// AuditEntry is a persisted WorkflowEvent.
type AuditEntry struct {
	ID string
	WorkflowEvent
}

// AuditFilter holds optional criteria for reading the audit trail.
type AuditFilter struct {
	Entity   EntityKind
	EntityID string
	ActorID  string
	Limit    int
	Offset   int
}
