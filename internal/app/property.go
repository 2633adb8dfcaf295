package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/neomorfeo/homebase/internal/domain"
)

// PropertyUpdate carries the writable fields of a property. Landlords send
// Attributes, the Housing Office sends Comments.
type PropertyUpdate struct {
	Attributes *domain.PropertyAttributes
	Comments   *string
}

// CreateProperty persists a new draft property owned by the actor.
func (w *Workflow) CreateProperty(ctx context.Context, actor domain.Actor, attrs domain.PropertyAttributes) (domain.Property, error) {
	if err := domain.RequireRole(actor, domain.RoleLandlord, domain.ActionCreateProperty); err != nil {
		return domain.Property{}, err
	}

	now := w.clock.Now()
	if err := attrs.Validate(now); err != nil {
		return domain.Property{}, err
	}

	p := domain.NewProperty(generateID(), actor.ID, attrs, now)
	if err := w.properties.Create(ctx, p); err != nil {
		return domain.Property{}, fmt.Errorf("creating property: %w", err)
	}

	w.emit(ctx, propertyEvent(p, domain.EventCreate, "", actor, now))
	return p, nil
}

// GetProperty returns a property the actor may see. Landlords only see their own.
func (w *Workflow) GetProperty(ctx context.Context, actor domain.Actor, id string) (domain.Property, error) {
	p, err := w.properties.GetByID(ctx, id)
	if err != nil {
		return domain.Property{}, err
	}
	if err := canViewProperty(actor, p); err != nil {
		return domain.Property{}, err
	}
	return p, nil
}

// ListProperties returns properties matching the filter. Landlords are
// restricted to their own properties.
func (w *Workflow) ListProperties(ctx context.Context, actor domain.Actor, filter domain.PropertyFilter) ([]domain.Property, error) {
	if actor.IsLandlord() && !seesEverything(actor) {
		filter.LandlordID = actor.ID
	}
	filter.Limit, filter.Offset = page(filter.Limit, filter.Offset)
	return w.properties.List(ctx, filter)
}

// UpdateProperty routes an update to the owner or review operation based on
// the actor's role.
func (w *Workflow) UpdateProperty(ctx context.Context, actor domain.Actor, id string, update PropertyUpdate) (domain.Property, error) {
	if actor.IsHousingOffice() {
		if update.Comments == nil {
			return domain.Property{}, domain.NewValidationError("comments", "is required")
		}
		return w.UpdatePropertyReviewFields(ctx, actor, id, *update.Comments)
	}
	if update.Attributes == nil {
		return domain.Property{}, domain.NewValidationError("attributes", "is required")
	}
	return w.UpdatePropertyOwnerFields(ctx, actor, id, *update.Attributes)
}

// UpdatePropertyOwnerFields replaces the attributes of a property. It is
// not gated by status.
func (w *Workflow) UpdatePropertyOwnerFields(ctx context.Context, actor domain.Actor, id string, attrs domain.PropertyAttributes) (domain.Property, error) {
	p, err := w.properties.GetByID(ctx, id)
	if err != nil {
		return domain.Property{}, err
	}
	if err := domain.RequireOwner(actor, p, domain.ActionUpdateProperty); err != nil {
		return domain.Property{}, err
	}

	now := w.clock.Now()
	if err := attrs.Validate(now); err != nil {
		return domain.Property{}, err
	}

	p.Attributes = attrs
	p.UpdatedAt = now
	if err := w.saveProperty(ctx, &p); err != nil {
		return domain.Property{}, err
	}

	w.emit(ctx, propertyEvent(p, domain.EventEdit, p.Status, actor, now))
	return p, nil
}

// UpdatePropertyReviewFields rewrites the HO comments without touching the
// status or the review stamps.
func (w *Workflow) UpdatePropertyReviewFields(ctx context.Context, actor domain.Actor, id, comments string) (domain.Property, error) {
	if err := domain.RequireRole(actor, domain.RoleHousingOffice, domain.ActionCommentProperty); err != nil {
		return domain.Property{}, err
	}
	if err := domain.ValidateComments(comments); err != nil {
		return domain.Property{}, err
	}

	p, err := w.properties.GetByID(ctx, id)
	if err != nil {
		return domain.Property{}, err
	}

	now := w.clock.Now()
	p.Review.Comments = comments
	p.UpdatedAt = now
	if err := w.saveProperty(ctx, &p); err != nil {
		return domain.Property{}, err
	}

	ev := propertyEvent(p, domain.EventComment, p.Status, actor, now)
	ev.Comments = comments
	w.emit(ctx, ev)
	return p, nil
}

// SubmitProperty sends a draft or rejected property to the HO review queue.
func (w *Workflow) SubmitProperty(ctx context.Context, actor domain.Actor, id string) (domain.Property, error) {
	p, err := w.properties.GetByID(ctx, id)
	if err != nil {
		return domain.Property{}, err
	}
	if err := domain.RequireOwner(actor, p, domain.ActionSubmitProperty); err != nil {
		return domain.Property{}, err
	}

	from := p.Status
	to, err := w.propertyFS.Apply(ctx, p.Status, domain.EventSubmit)
	if err != nil {
		return domain.Property{}, err
	}

	now := w.clock.Now()
	p.Resubmit(to, now)
	if err := w.saveProperty(ctx, &p); err != nil {
		return domain.Property{}, err
	}

	w.emit(ctx, propertyEvent(p, domain.EventSubmit, from, actor, now))
	return p, nil
}

// ApproveProperty records an HO approval. Empty comments clear previous ones.
func (w *Workflow) ApproveProperty(ctx context.Context, actor domain.Actor, id, comments string) (domain.Property, error) {
	if err := domain.RequireRole(actor, domain.RoleHousingOffice, domain.ActionApproveProperty); err != nil {
		return domain.Property{}, err
	}
	if err := domain.ValidateComments(comments); err != nil {
		return domain.Property{}, err
	}
	return w.reviewProperty(ctx, actor, id, domain.EventApprove, comments)
}

// RejectProperty records an HO rejection. Comments are mandatory.
func (w *Workflow) RejectProperty(ctx context.Context, actor domain.Actor, id, comments string) (domain.Property, error) {
	if err := domain.RequireRole(actor, domain.RoleHousingOffice, domain.ActionRejectProperty); err != nil {
		return domain.Property{}, err
	}
	if err := domain.ValidateRequiredComments(comments); err != nil {
		return domain.Property{}, err
	}
	return w.reviewProperty(ctx, actor, id, domain.EventReject, comments)
}

func (w *Workflow) reviewProperty(ctx context.Context, actor domain.Actor, id string, event domain.Event, comments string) (domain.Property, error) {
	p, err := w.properties.GetByID(ctx, id)
	if err != nil {
		return domain.Property{}, err
	}

	from := p.Status
	to, err := w.propertyFS.Apply(ctx, p.Status, event)
	if err != nil {
		return domain.Property{}, err
	}

	now := w.clock.Now()
	p.StampReview(to, actor.ID, comments, now)
	if err := w.saveProperty(ctx, &p); err != nil {
		return domain.Property{}, err
	}

	ev := propertyEvent(p, event, from, actor, now)
	ev.Comments = comments
	w.emit(ctx, ev)
	return p, nil
}

// DeleteProperty soft-deletes a draft property, or a legacy record without
// a status.
func (w *Workflow) DeleteProperty(ctx context.Context, actor domain.Actor, id string) error {
	p, err := w.properties.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := domain.RequireOwner(actor, p, domain.ActionDeleteProperty); err != nil {
		return err
	}
	if _, err := w.propertyFS.Apply(ctx, p.Status, domain.EventDelete); err != nil {
		return err
	}

	now := w.clock.Now()
	if err := w.properties.SoftDelete(ctx, p.ID, p.Version, now); err != nil {
		return fmt.Errorf("deleting property %s: %w", p.ID, err)
	}

	w.emit(ctx, propertyEvent(p, domain.EventDelete, p.Status, actor, now))
	return nil
}

// PropertyActions lists the events the actor may fire on the property in its
// current status.
func (w *Workflow) PropertyActions(ctx context.Context, actor domain.Actor, id string) ([]domain.Event, error) {
	p, err := w.GetProperty(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	out := make([]domain.Event, 0)
	for _, ev := range w.propertyFS.Available(p.Status) {
		if !domain.MayFire(actor, p, ev) {
			continue
		}
		if ev == domain.EventOpenListing {
			_, err := w.listings.GetByPropertyID(ctx, p.ID)
			if err == nil {
				continue
			}
			if !errors.Is(err, domain.ErrListingNotFound) {
				return nil, fmt.Errorf("looking up listing of property %s: %w", p.ID, err)
			}
		}
		out = append(out, ev)
	}
	return out, nil
}

// PropertyOwner resolves the property a document attached to it belongs to.
func (w *Workflow) PropertyOwner(ctx context.Context, id string) (domain.Property, error) {
	return w.properties.GetByID(ctx, id)
}

// saveProperty writes p conditionally on its version and bumps the version
// on success.
func (w *Workflow) saveProperty(ctx context.Context, p *domain.Property) error {
	if err := w.properties.Update(ctx, *p); err != nil {
		return fmt.Errorf("updating property %s: %w", p.ID, err)
	}
	p.Version++
	return nil
}

func canViewProperty(actor domain.Actor, p domain.Property) error {
	if seesEverything(actor) || !actor.IsLandlord() || domain.IsOwner(actor, p) {
		return nil
	}
	return &domain.ForbiddenError{
		Action:  domain.ActionViewProperty,
		ActorID: actor.ID,
		Reason:  "property belongs to another landlord",
	}
}

func propertyEvent(p domain.Property, event domain.Event, from domain.PropertyStatus, actor domain.Actor, now time.Time) domain.WorkflowEvent {
	return domain.WorkflowEvent{
		Entity:     domain.EntityProperty,
		EntityID:   p.ID,
		Event:      event,
		From:       string(from),
		To:         string(p.Status),
		ActorID:    actor.ID,
		OccurredAt: now,
	}
}
