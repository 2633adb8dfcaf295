package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/neomorfeo/homebase/internal/domain"
)

// Compile-time check: AuditRepository implements domain.AuditLog.
var _ domain.AuditLog = (*AuditRepository)(nil)

// AuditRepository appends workflow events to the audit_entries table.
type AuditRepository struct {
	db *sql.DB
}

// Record inserts e. Recording the same entry twice is a no-op so job retries
// do not duplicate the trail.
func (r *AuditRepository) Record(ctx context.Context, e domain.AuditEntry) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO audit_entries (id, entity_kind, entity_id, event, from_status, to_status, actor_id, comments, occurred_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (id) DO NOTHING`,
		e.ID, string(e.Entity), e.EntityID, string(e.Event), e.From, e.To, e.ActorID, e.Comments,
		formatTime(e.OccurredAt),
	)
	if err != nil {
		return fmt.Errorf("inserting audit entry: %w", err)
	}
	return nil
}

// List returns entries matching filter, newest first.
func (r *AuditRepository) List(ctx context.Context, filter domain.AuditFilter) ([]domain.AuditEntry, error) {
	query := `SELECT id, entity_kind, entity_id, event, from_status, to_status, actor_id, comments, occurred_at
		FROM audit_entries WHERE 1 = 1`
	var args []any

	if filter.Entity != "" {
		query += ` AND entity_kind = ?`
		args = append(args, string(filter.Entity))
	}
	if filter.EntityID != "" {
		query += ` AND entity_id = ?`
		args = append(args, filter.EntityID)
	}
	if filter.ActorID != "" {
		query += ` AND actor_id = ?`
		args = append(args, filter.ActorID)
	}

	query += ` ORDER BY occurred_at DESC, rowid DESC`

	if filter.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, filter.Limit)
	}
	if filter.Offset > 0 {
		if filter.Limit <= 0 {
			query += ` LIMIT -1`
		}
		query += ` OFFSET ?`
		args = append(args, filter.Offset)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing audit entries: %w", err)
	}
	defer rows.Close()

	entries := make([]domain.AuditEntry, 0)
	for rows.Next() {
		var (
			e                 domain.AuditEntry
			kind, event, when string
		)
		if err := rows.Scan(&e.ID, &kind, &e.EntityID, &event, &e.From, &e.To, &e.ActorID, &e.Comments, &when); err != nil {
			return nil, fmt.Errorf("scanning audit entry: %w", err)
		}
		e.Entity = domain.EntityKind(kind)
		e.Event = domain.Event(event)
		e.OccurredAt = parseTime(when)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
