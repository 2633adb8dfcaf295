package app

import (
	"context"
	"log/slog"

	"github.com/neomorfeo/homebase/internal/domain"
)

// Page size bounds applied to every list query.
const (
	DefaultPageSize = 50
	MaxPageSize     = 100
)

// Deps are the adapters a Workflow is wired with.
type Deps struct {
	Properties      domain.PropertyRepository
	Listings        domain.ListingRepository
	Publisher       domain.EventPublisher
	PropertyMachine domain.StatusMachine[domain.PropertyStatus]
	ListingMachine  domain.StatusMachine[domain.ListingStatus]
	Clock           domain.Clock
	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// Workflow orchestrates the property review and listing publication
// lifecycles: it loads the entity, runs the authorization guard, validates
// the payload, asks the state machine, persists and emits a workflow event.
type Workflow struct {
	properties domain.PropertyRepository
	listings   domain.ListingRepository
	publisher  domain.EventPublisher
	propertyFS domain.StatusMachine[domain.PropertyStatus]
	listingFS  domain.StatusMachine[domain.ListingStatus]
	clock      domain.Clock
	logger     *slog.Logger
}

// NewWorkflow creates a workflow with the given adapters.
func NewWorkflow(d Deps) *Workflow {
	clock := d.Clock
	if clock == nil {
		clock = domain.SystemClock{}
	}
	logger := d.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Workflow{
		properties: d.Properties,
		listings:   d.Listings,
		publisher:  d.Publisher,
		propertyFS: d.PropertyMachine,
		listingFS:  d.ListingMachine,
		clock:      clock,
		logger:     logger,
	}
}

// emit publishes a workflow event. The mutation is already durable at this
// point, so a publish failure is logged and does not fail the request.
func (w *Workflow) emit(ctx context.Context, ev domain.WorkflowEvent) {
	if err := w.publisher.Publish(ctx, ev); err != nil {
		w.logger.WarnContext(ctx, "publishing workflow event",
			slog.String("entity", string(ev.Entity)),
			slog.String("entity_id", ev.EntityID),
			slog.String("event", string(ev.Event)),
			slog.Any("error", err),
		)
	}
}

// seesEverything reports whether the actor may read records of any owner.
func seesEverything(a domain.Actor) bool {
	return a.IsHousingOffice() || a.IsAdmin()
}

func page(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
