package river

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/riverqueue/river"

	"github.com/neomorfeo/homebase/internal/domain"
)

// AuditWorker appends workflow events to the audit log.
type AuditWorker struct {
	river.WorkerDefaults[AuditJobArgs]
	log domain.AuditLog
}

// NewAuditWorker creates a worker that records into log.
func NewAuditWorker(log domain.AuditLog) *AuditWorker {
	return &AuditWorker{log: log}
}

// Work processes a single audit job.
func (w *AuditWorker) Work(ctx context.Context, job *river.Job[AuditJobArgs]) error {
	slog.InfoContext(ctx, "recording workflow event",
		"entity", job.Args.Entity,
		"entity_id", job.Args.EntityID,
		"event", job.Args.Event,
		"from", job.Args.From,
		"to", job.Args.To,
		"actor_id", job.Args.ActorID,
		"job_id", job.ID,
		"attempt", job.Attempt,
	)

	if err := w.log.Record(ctx, job.Args.Entry()); err != nil {
		return fmt.Errorf("recording audit entry %s: %w", job.Args.EntryID, err)
	}
	return nil
}
