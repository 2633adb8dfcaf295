package domain

import (
	"context"
	"time"
)

// PropertyRepository defines the persistence contract for properties.
// Reads never return soft-deleted records.
type PropertyRepository interface {
	Create(ctx context.Context, p Property) error
	GetByID(ctx context.Context, id string) (Property, error)
	List(ctx context.Context, filter PropertyFilter) ([]Property, error)
	// Update writes p if the stored version still equals p.Version and bumps it.
	Update(ctx context.Context, p Property) error
	SoftDelete(ctx context.Context, id string, version int64, at time.Time) error
	CountByStatus(ctx context.Context, statuses ...PropertyStatus) (int, error)
}

// ListingRepository defines the persistence contract for listings.
type ListingRepository interface {
	// Create inserts l only if its property is approved and has no live listing.
	Create(ctx context.Context, l Listing) error
	GetByID(ctx context.Context, id string) (Listing, error)
	GetByPropertyID(ctx context.Context, propertyID string) (Listing, error)
	List(ctx context.Context, filter ListingFilter) ([]Listing, error)
	Update(ctx context.Context, l Listing) error
	SoftDelete(ctx context.Context, id string, version int64, at time.Time) error
	CountByStatus(ctx context.Context, statuses ...ListingStatus) (int, error)
}

// DocumentRepository stores document metadata.
type DocumentRepository interface {
	Create(ctx context.Context, d Document) error
	GetByID(ctx context.Context, id string) (Document, error)
	ListByTarget(ctx context.Context, target AttachableRef) ([]Document, error)
}

// AuditLog stores the audit trail.
type AuditLog interface {
	Record(ctx context.Context, entry AuditEntry) error
	List(ctx context.Context, filter AuditFilter) ([]AuditEntry, error)
}

// EventPublisher defines the contract for emitting workflow events.
type EventPublisher interface {
	Publish(ctx context.Context, event WorkflowEvent) error
}

// StatusMachine validates status transitions for one entity kind.
type StatusMachine[S ~string] interface {
	// Apply returns the status reached by firing event from current, or a
	// TransitionError. Guard transitions return current unchanged.
	Apply(ctx context.Context, current S, event Event) (S, error)
	// Available lists the events that may be fired from current.
	Available(current S) []Event
}
