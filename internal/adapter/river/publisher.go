package river

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/riverqueue/river"

	"github.com/neomorfeo/homebase/internal/domain"
)

// Compile-time check: Publisher implements domain.EventPublisher.
var _ domain.EventPublisher = (*Publisher)(nil)

// AuditJobArgs carries a workflow event to the audit worker.
// River serializes this as JSON into its job queue table. The entry id is
// fixed at enqueue time so a retried job records the same audit row.
type AuditJobArgs struct {
	EntryID    string    `json:"entry_id"`
	Entity     string    `json:"entity"`
	EntityID   string    `json:"entity_id"`
	Event      string    `json:"event"`
	From       string    `json:"from,omitempty"`
	To         string    `json:"to,omitempty"`
	ActorID    string    `json:"actor_id"`
	Comments   string    `json:"comments,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Kind returns the unique job type identifier used by River's job routing.
func (AuditJobArgs) Kind() string { return "audit.record" }

// Entry converts the job args back into an audit entry.
func (a AuditJobArgs) Entry() domain.AuditEntry {
	return domain.AuditEntry{
		ID: a.EntryID,
		WorkflowEvent: domain.WorkflowEvent{
			Entity:     domain.EntityKind(a.Entity),
			EntityID:   a.EntityID,
			Event:      domain.Event(a.Event),
			From:       a.From,
			To:         a.To,
			ActorID:    a.ActorID,
			Comments:   a.Comments,
			OccurredAt: a.OccurredAt,
		},
	}
}

// Client is the River client type parameterized for SQLite (*sql.Tx).
type Client = river.Client[*sql.Tx]

// Publisher implements domain.EventPublisher by enqueuing River jobs.
type Publisher struct {
	client *Client
}

// NewPublisher creates a publisher backed by the given River client.
func NewPublisher(client *Client) *Publisher {
	return &Publisher{client: client}
}

// Publish enqueues a workflow event as an audit job in River.
func (p *Publisher) Publish(ctx context.Context, ev domain.WorkflowEvent) error {
	_, err := p.client.Insert(ctx, AuditJobArgs{
		EntryID:    uuid.NewString(),
		Entity:     string(ev.Entity),
		EntityID:   ev.EntityID,
		Event:      string(ev.Event),
		From:       ev.From,
		To:         ev.To,
		ActorID:    ev.ActorID,
		Comments:   ev.Comments,
		OccurredAt: ev.OccurredAt,
	}, nil)
	if err != nil {
		return fmt.Errorf("enqueuing audit job: %w", err)
	}
	return nil
}
