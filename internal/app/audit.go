package app

import (
	"context"

	"github.com/neomorfeo/homebase/internal/domain"
)

// AuditTrail exposes the recorded workflow events.
type AuditTrail struct {
	log domain.AuditLog
}

// NewAuditTrail creates a reader over log.
func NewAuditTrail(log domain.AuditLog) *AuditTrail {
	return &AuditTrail{log: log}
}

// List returns audit entries matching filter, newest first. HO and admins only.
func (a *AuditTrail) List(ctx context.Context, actor domain.Actor, filter domain.AuditFilter) ([]domain.AuditEntry, error) {
	if err := domain.RequireAnyRole(actor, domain.ActionViewAudit, domain.RoleHousingOffice, domain.RoleAdmin); err != nil {
		return nil, err
	}
	filter.Limit, filter.Offset = page(filter.Limit, filter.Offset)
	return a.log.List(ctx, filter)
}
