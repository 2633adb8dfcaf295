package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/neomorfeo/homebase/internal/domain"
)

// CreateListing opens a draft listing for an approved property owned by the
// actor. A property holds at most one live listing.
func (w *Workflow) CreateListing(ctx context.Context, actor domain.Actor, propertyID string, terms domain.Terms) (domain.ListingView, error) {
	p, err := w.properties.GetByID(ctx, propertyID)
	if err != nil {
		return domain.ListingView{}, err
	}
	if err := domain.RequireLandlordOwner(actor, p, domain.ActionCreateListing); err != nil {
		return domain.ListingView{}, err
	}

	terms = terms.WithDefaults()
	if err := terms.Validate(); err != nil {
		return domain.ListingView{}, err
	}

	if _, err := w.propertyFS.Apply(ctx, p.Status, domain.EventOpenListing); err != nil {
		return domain.ListingView{}, err
	}

	existing, err := w.listings.GetByPropertyID(ctx, p.ID)
	switch {
	case err == nil:
		return domain.ListingView{}, &domain.ConflictError{
			Entity: domain.EntityListing,
			Key:    p.ID,
			Reason: fmt.Sprintf("property already has listing %s", existing.ID),
		}
	case !errors.Is(err, domain.ErrListingNotFound):
		return domain.ListingView{}, fmt.Errorf("looking up listing of property %s: %w", p.ID, err)
	}

	now := w.clock.Now()
	l := domain.NewListing(generateID(), p.ID, terms, now)
	// The store re-checks the property status and uniqueness in the same
	// statement, so a concurrent change surfaces as a typed error here.
	if err := w.listings.Create(ctx, l); err != nil {
		var trErr *domain.TransitionError
		var cErr *domain.ConflictError
		if errors.As(err, &trErr) || errors.As(err, &cErr) {
			return domain.ListingView{}, err
		}
		return domain.ListingView{}, fmt.Errorf("creating listing: %w", err)
	}

	w.emit(ctx, listingEvent(l, domain.EventCreate, "", actor, now))
	return domain.ListingView{Listing: l, Property: p}, nil
}

// GetListing returns a listing with its property. Non-owner landlords are
// forbidden; tenants only see published listings.
func (w *Workflow) GetListing(ctx context.Context, actor domain.Actor, id string) (domain.ListingView, error) {
	view, err := w.loadListing(ctx, id)
	if err != nil {
		return domain.ListingView{}, err
	}
	if err := canViewListing(actor, view); err != nil {
		return domain.ListingView{}, err
	}
	return view, nil
}

// ListListings returns listings visible to the actor: landlords their own,
// the Housing Office and admins all, everyone else published ones.
func (w *Workflow) ListListings(ctx context.Context, actor domain.Actor, filter domain.ListingFilter) ([]domain.Listing, error) {
	switch {
	case seesEverything(actor):
	case actor.IsLandlord():
		filter.LandlordID = actor.ID
	default:
		published := domain.ListingPublished
		filter.Status = &published
	}
	filter.Limit, filter.Offset = page(filter.Limit, filter.Offset)
	return w.listings.List(ctx, filter)
}

// UpdateListing applies a terms patch while the listing is draft or rejected.
func (w *Workflow) UpdateListing(ctx context.Context, actor domain.Actor, id string, patch domain.TermsPatch) (domain.ListingView, error) {
	view, err := w.loadListing(ctx, id)
	if err != nil {
		return domain.ListingView{}, err
	}
	if err := domain.RequireOwner(actor, view.Property, domain.ActionUpdateListing); err != nil {
		return domain.ListingView{}, err
	}

	terms := patch.Apply(view.Listing.Terms)
	if err := terms.Validate(); err != nil {
		return domain.ListingView{}, err
	}

	l := view.Listing
	if _, err := w.listingFS.Apply(ctx, l.Status, domain.EventEdit); err != nil {
		return domain.ListingView{}, err
	}

	now := w.clock.Now()
	l.Terms = terms
	l.UpdatedAt = now
	return w.commitListing(ctx, view.Property, l, domain.EventEdit, l.Status, actor, now)
}

// SubmitListing sends a draft or rejected listing to HO review.
func (w *Workflow) SubmitListing(ctx context.Context, actor domain.Actor, id string) (domain.ListingView, error) {
	return w.ownerTransition(ctx, actor, id, domain.ActionSubmitListing, domain.EventSubmit, func(l *domain.Listing, now time.Time) {
		l.SubmittedAt = &now
	})
}

// PublishListing makes an approved listing visible to tenants. The parent
// property must still be approved.
func (w *Workflow) PublishListing(ctx context.Context, actor domain.Actor, id string) (domain.ListingView, error) {
	view, err := w.loadListing(ctx, id)
	if err != nil {
		return domain.ListingView{}, err
	}
	if err := domain.RequireOwner(actor, view.Property, domain.ActionPublishListing); err != nil {
		return domain.ListingView{}, err
	}

	l := view.Listing
	from := l.Status
	to, err := w.listingFS.Apply(ctx, l.Status, domain.EventPublish)
	if err != nil {
		return domain.ListingView{}, err
	}
	if _, err := w.propertyFS.Apply(ctx, view.Property.Status, domain.EventOpenListing); err != nil {
		return domain.ListingView{}, err
	}

	now := w.clock.Now()
	l.Status = to
	l.PublishedAt = &now
	l.UpdatedAt = now
	return w.commitListing(ctx, view.Property, l, domain.EventPublish, from, actor, now)
}

// UnpublishListing withdraws a published listing. There is no way back to
// published from here.
func (w *Workflow) UnpublishListing(ctx context.Context, actor domain.Actor, id string) (domain.ListingView, error) {
	return w.ownerTransition(ctx, actor, id, domain.ActionUnpublishListing, domain.EventUnpublish, nil)
}

// StartListingReview claims a submitted listing for review.
func (w *Workflow) StartListingReview(ctx context.Context, actor domain.Actor, id string) (domain.ListingView, error) {
	if err := domain.RequireRole(actor, domain.RoleHousingOffice, domain.ActionStartListingReview); err != nil {
		return domain.ListingView{}, err
	}
	return w.reviewTransition(ctx, actor, id, domain.EventStartReview, func(l *domain.Listing, now time.Time) {
		l.ReviewerID = actor.ID
		l.ReviewedAt = &now
	})
}

// ApproveListing records an HO approval of a submitted or in-review listing.
func (w *Workflow) ApproveListing(ctx context.Context, actor domain.Actor, id, comments string) (domain.ListingView, error) {
	if err := domain.RequireRole(actor, domain.RoleHousingOffice, domain.ActionApproveListing); err != nil {
		return domain.ListingView{}, err
	}
	if err := domain.ValidateComments(comments); err != nil {
		return domain.ListingView{}, err
	}
	return w.reviewTransition(ctx, actor, id, domain.EventApprove, func(l *domain.Listing, now time.Time) {
		l.ReviewerID = actor.ID
		l.Comments = comments
		l.ApprovedAt = &now
		if l.ReviewedAt == nil {
			l.ReviewedAt = &now
		}
	})
}

// RejectListing records an HO rejection. Comments are mandatory.
func (w *Workflow) RejectListing(ctx context.Context, actor domain.Actor, id, comments string) (domain.ListingView, error) {
	if err := domain.RequireRole(actor, domain.RoleHousingOffice, domain.ActionRejectListing); err != nil {
		return domain.ListingView{}, err
	}
	if err := domain.ValidateRequiredComments(comments); err != nil {
		return domain.ListingView{}, err
	}
	return w.reviewTransition(ctx, actor, id, domain.EventReject, func(l *domain.Listing, now time.Time) {
		l.ReviewerID = actor.ID
		l.Comments = comments
		l.ReviewedAt = &now
	})
}

// DeleteListing soft-deletes a draft listing.
func (w *Workflow) DeleteListing(ctx context.Context, actor domain.Actor, id string) error {
	view, err := w.loadListing(ctx, id)
	if err != nil {
		return err
	}
	if err := domain.RequireOwner(actor, view.Property, domain.ActionDeleteListing); err != nil {
		return err
	}

	l := view.Listing
	if _, err := w.listingFS.Apply(ctx, l.Status, domain.EventDelete); err != nil {
		return err
	}

	now := w.clock.Now()
	if err := w.listings.SoftDelete(ctx, l.ID, l.Version, now); err != nil {
		return fmt.Errorf("deleting listing %s: %w", l.ID, err)
	}

	w.emit(ctx, listingEvent(l, domain.EventDelete, l.Status, actor, now))
	return nil
}

// ListingActions lists the events the actor may fire on the listing in its
// current status.
func (w *Workflow) ListingActions(ctx context.Context, actor domain.Actor, id string) ([]domain.Event, error) {
	view, err := w.GetListing(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	out := make([]domain.Event, 0)
	for _, ev := range w.listingFS.Available(view.Listing.Status) {
		if !domain.MayFire(actor, view.Property, ev) {
			continue
		}
		if ev == domain.EventPublish && view.Property.Status != domain.PropertyApproved {
			continue
		}
		out = append(out, ev)
	}
	return out, nil
}

// ListingOwner resolves the property a listing belongs to.
func (w *Workflow) ListingOwner(ctx context.Context, id string) (domain.Property, error) {
	view, err := w.loadListing(ctx, id)
	if err != nil {
		return domain.Property{}, err
	}
	return view.Property, nil
}

type listingMutation func(l *domain.Listing, now time.Time)

// ownerTransition fires an owner event on a listing and applies stamp.
func (w *Workflow) ownerTransition(ctx context.Context, actor domain.Actor, id string, action domain.Action, event domain.Event, stamp listingMutation) (domain.ListingView, error) {
	view, err := w.loadListing(ctx, id)
	if err != nil {
		return domain.ListingView{}, err
	}
	if err := domain.RequireOwner(actor, view.Property, action); err != nil {
		return domain.ListingView{}, err
	}
	return w.fireListing(ctx, view, actor, event, stamp)
}

// reviewTransition fires an HO event on a listing. The role check is done by
// the caller.
func (w *Workflow) reviewTransition(ctx context.Context, actor domain.Actor, id string, event domain.Event, stamp listingMutation) (domain.ListingView, error) {
	view, err := w.loadListing(ctx, id)
	if err != nil {
		return domain.ListingView{}, err
	}
	return w.fireListing(ctx, view, actor, event, stamp)
}

func (w *Workflow) fireListing(ctx context.Context, view domain.ListingView, actor domain.Actor, event domain.Event, stamp listingMutation) (domain.ListingView, error) {
	l := view.Listing
	from := l.Status
	to, err := w.listingFS.Apply(ctx, l.Status, event)
	if err != nil {
		return domain.ListingView{}, err
	}

	now := w.clock.Now()
	l.Status = to
	l.UpdatedAt = now
	if stamp != nil {
		stamp(&l, now)
	}

	return w.commitListing(ctx, view.Property, l, event, from, actor, now)
}

// commitListing writes l conditionally on its version and emits the event.
func (w *Workflow) commitListing(ctx context.Context, p domain.Property, l domain.Listing, event domain.Event, from domain.ListingStatus, actor domain.Actor, now time.Time) (domain.ListingView, error) {
	if err := w.listings.Update(ctx, l); err != nil {
		return domain.ListingView{}, fmt.Errorf("updating listing %s: %w", l.ID, err)
	}
	l.Version++

	ev := listingEvent(l, event, from, actor, now)
	if event == domain.EventApprove || event == domain.EventReject {
		ev.Comments = l.Comments
	}
	w.emit(ctx, ev)
	return domain.ListingView{Listing: l, Property: p}, nil
}

func (w *Workflow) loadListing(ctx context.Context, id string) (domain.ListingView, error) {
	l, err := w.listings.GetByID(ctx, id)
	if err != nil {
		return domain.ListingView{}, err
	}
	p, err := w.properties.GetByID(ctx, l.PropertyID)
	if err != nil {
		return domain.ListingView{}, fmt.Errorf("loading property of listing %s: %w", l.ID, err)
	}
	return domain.ListingView{Listing: l, Property: p}, nil
}

func canViewListing(actor domain.Actor, view domain.ListingView) error {
	switch {
	case seesEverything(actor), domain.IsOwner(actor, view.Property):
		return nil
	case actor.IsLandlord() && !actor.IsTenant():
		return &domain.ForbiddenError{
			Action:  domain.ActionViewListing,
			ActorID: actor.ID,
			Reason:  "listing belongs to another landlord",
		}
	case view.Listing.Status == domain.ListingPublished:
		return nil
	default:
		return domain.ErrListingNotFound
	}
}

func listingEvent(l domain.Listing, event domain.Event, from domain.ListingStatus, actor domain.Actor, now time.Time) domain.WorkflowEvent {
	return domain.WorkflowEvent{
		Entity:     domain.EntityListing,
		EntityID:   l.ID,
		Event:      event,
		From:       string(from),
		To:         string(l.Status),
		ActorID:    actor.ID,
		OccurredAt: now,
	}
}
