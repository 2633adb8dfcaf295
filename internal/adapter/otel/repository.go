package otel

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/neomorfeo/homebase/internal/domain"
)

const tracerName = "github.com/neomorfeo/homebase/internal/adapter/otel"

// recordError marks the span as failed when err is non-nil.
func recordError(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
}

// TracingPropertyRepository wraps a domain.PropertyRepository with OpenTelemetry tracing.
// Each method creates a span with semantic attributes and records errors.
type TracingPropertyRepository struct {
	next   domain.PropertyRepository
	tracer trace.Tracer
}

// Compile-time check: TracingPropertyRepository implements domain.PropertyRepository.
var _ domain.PropertyRepository = (*TracingPropertyRepository)(nil)

// NewTracingPropertyRepository creates a tracing decorator around the given repository.
func NewTracingPropertyRepository(next domain.PropertyRepository) *TracingPropertyRepository {
	return &TracingPropertyRepository{
		next:   next,
		tracer: otel.Tracer(tracerName),
	}
}

func (r *TracingPropertyRepository) Create(ctx context.Context, p domain.Property) error {
	ctx, span := r.tracer.Start(ctx, "PropertyRepository.Create",
		trace.WithAttributes(
			attribute.String("property.id", p.ID),
			attribute.String("property.landlord_id", p.LandlordID),
		),
	)
	defer span.End()

	err := r.next.Create(ctx, p)
	recordError(span, err)
	return err
}

func (r *TracingPropertyRepository) GetByID(ctx context.Context, id string) (domain.Property, error) {
	ctx, span := r.tracer.Start(ctx, "PropertyRepository.GetByID",
		trace.WithAttributes(attribute.String("property.id", id)),
	)
	defer span.End()

	p, err := r.next.GetByID(ctx, id)
	recordError(span, err)
	if err == nil {
		span.SetAttributes(attribute.String("property.status", string(p.Status)))
	}
	return p, err
}

func (r *TracingPropertyRepository) List(ctx context.Context, filter domain.PropertyFilter) ([]domain.Property, error) {
	ctx, span := r.tracer.Start(ctx, "PropertyRepository.List",
		trace.WithAttributes(
			attribute.Int("filter.limit", filter.Limit),
			attribute.Int("filter.offset", filter.Offset),
		),
	)
	defer span.End()

	if filter.Status != nil {
		span.SetAttributes(attribute.String("filter.status", string(*filter.Status)))
	}
	if filter.LandlordID != "" {
		span.SetAttributes(attribute.String("filter.landlord_id", filter.LandlordID))
	}

	properties, err := r.next.List(ctx, filter)
	recordError(span, err)
	if err == nil {
		span.SetAttributes(attribute.Int("result.count", len(properties)))
	}
	return properties, err
}

func (r *TracingPropertyRepository) Update(ctx context.Context, p domain.Property) error {
	ctx, span := r.tracer.Start(ctx, "PropertyRepository.Update",
		trace.WithAttributes(
			attribute.String("property.id", p.ID),
			attribute.String("property.status", string(p.Status)),
			attribute.Int64("property.version", p.Version),
		),
	)
	defer span.End()

	err := r.next.Update(ctx, p)
	recordError(span, err)
	return err
}

func (r *TracingPropertyRepository) SoftDelete(ctx context.Context, id string, version int64, at time.Time) error {
	ctx, span := r.tracer.Start(ctx, "PropertyRepository.SoftDelete",
		trace.WithAttributes(
			attribute.String("property.id", id),
			attribute.Int64("property.version", version),
		),
	)
	defer span.End()

	err := r.next.SoftDelete(ctx, id, version, at)
	recordError(span, err)
	return err
}

func (r *TracingPropertyRepository) CountByStatus(ctx context.Context, statuses ...domain.PropertyStatus) (int, error) {
	names := make([]string, len(statuses))
	for i, s := range statuses {
		names[i] = string(s)
	}
	ctx, span := r.tracer.Start(ctx, "PropertyRepository.CountByStatus",
		trace.WithAttributes(attribute.StringSlice("filter.statuses", names)),
	)
	defer span.End()

	n, err := r.next.CountByStatus(ctx, statuses...)
	recordError(span, err)
	if err == nil {
		span.SetAttributes(attribute.Int("result.count", n))
	}
	return n, err
}

// TracingListingRepository wraps a domain.ListingRepository with OpenTelemetry tracing.
type TracingListingRepository struct {
	next   domain.ListingRepository
	tracer trace.Tracer
}

// Compile-time check: TracingListingRepository implements domain.ListingRepository.
var _ domain.ListingRepository = (*TracingListingRepository)(nil)

// NewTracingListingRepository creates a tracing decorator around the given repository.
func NewTracingListingRepository(next domain.ListingRepository) *TracingListingRepository {
	return &TracingListingRepository{
		next:   next,
		tracer: otel.Tracer(tracerName),
	}
}

func (r *TracingListingRepository) Create(ctx context.Context, l domain.Listing) error {
	ctx, span := r.tracer.Start(ctx, "ListingRepository.Create",
		trace.WithAttributes(
			attribute.String("listing.id", l.ID),
			attribute.String("listing.property_id", l.PropertyID),
		),
	)
	defer span.End()

	err := r.next.Create(ctx, l)
	recordError(span, err)
	return err
}

func (r *TracingListingRepository) GetByID(ctx context.Context, id string) (domain.Listing, error) {
	ctx, span := r.tracer.Start(ctx, "ListingRepository.GetByID",
		trace.WithAttributes(attribute.String("listing.id", id)),
	)
	defer span.End()

	l, err := r.next.GetByID(ctx, id)
	recordError(span, err)
	return l, err
}

func (r *TracingListingRepository) GetByPropertyID(ctx context.Context, propertyID string) (domain.Listing, error) {
	ctx, span := r.tracer.Start(ctx, "ListingRepository.GetByPropertyID",
		trace.WithAttributes(attribute.String("listing.property_id", propertyID)),
	)
	defer span.End()

	l, err := r.next.GetByPropertyID(ctx, propertyID)
	// A missing listing is the expected answer before creation.
	if err != nil && !errors.Is(err, domain.ErrListingNotFound) {
		recordError(span, err)
	}
	return l, err
}

func (r *TracingListingRepository) List(ctx context.Context, filter domain.ListingFilter) ([]domain.Listing, error) {
	ctx, span := r.tracer.Start(ctx, "ListingRepository.List",
		trace.WithAttributes(
			attribute.Int("filter.limit", filter.Limit),
			attribute.Int("filter.offset", filter.Offset),
		),
	)
	defer span.End()

	if filter.Status != nil {
		span.SetAttributes(attribute.String("filter.status", string(*filter.Status)))
	}

	listings, err := r.next.List(ctx, filter)
	recordError(span, err)
	if err == nil {
		span.SetAttributes(attribute.Int("result.count", len(listings)))
	}
	return listings, err
}

func (r *TracingListingRepository) Update(ctx context.Context, l domain.Listing) error {
	ctx, span := r.tracer.Start(ctx, "ListingRepository.Update",
		trace.WithAttributes(
			attribute.String("listing.id", l.ID),
			attribute.String("listing.status", string(l.Status)),
			attribute.Int64("listing.version", l.Version),
		),
	)
	defer span.End()

	err := r.next.Update(ctx, l)
	recordError(span, err)
	return err
}

func (r *TracingListingRepository) SoftDelete(ctx context.Context, id string, version int64, at time.Time) error {
	ctx, span := r.tracer.Start(ctx, "ListingRepository.SoftDelete",
		trace.WithAttributes(
			attribute.String("listing.id", id),
			attribute.Int64("listing.version", version),
		),
	)
	defer span.End()

	err := r.next.SoftDelete(ctx, id, version, at)
	recordError(span, err)
	return err
}

func (r *TracingListingRepository) CountByStatus(ctx context.Context, statuses ...domain.ListingStatus) (int, error) {
	names := make([]string, len(statuses))
	for i, s := range statuses {
		names[i] = string(s)
	}
	ctx, span := r.tracer.Start(ctx, "ListingRepository.CountByStatus",
		trace.WithAttributes(attribute.StringSlice("filter.statuses", names)),
	)
	defer span.End()

	n, err := r.next.CountByStatus(ctx, statuses...)
	recordError(span, err)
	if err == nil {
		span.SetAttributes(attribute.Int("result.count", n))
	}
	return n, err
}
