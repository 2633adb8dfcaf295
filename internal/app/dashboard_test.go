package app_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/neomorfeo/homebase/internal/app"
	"github.com/neomorfeo/homebase/internal/domain"
)

func TestDashboard_Stats(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	pending := f.createProperty(t, landlordA)
	if _, err := f.wf.SubmitProperty(ctx, landlordA, pending.ID); err != nil {
		t.Fatal(err)
	}
	view := f.approvedListing(t, landlordA)
	if _, err := f.wf.PublishListing(ctx, landlordA, view.Listing.ID); err != nil {
		t.Fatal(err)
	}
	review := f.createListing(t, landlordB)
	if _, err := f.wf.SubmitListing(ctx, landlordB, review.Listing.ID); err != nil {
		t.Fatal(err)
	}

	d := app.NewDashboard(f.propertyRepo(), f.listingRepo(), time.Minute)
	stats, err := d.Stats(ctx, hoStaff)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := app.DashboardStats{
		PendingProperties:      1,
		ActiveProperties:       3,
		ListingsAwaitingReview: 1,
		PublishedListings:      1,
	}
	if stats != want {
		t.Errorf("stats = %+v, want %+v", stats, want)
	}
}

func TestDashboard_CachesCounts(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	d := app.NewDashboard(f.propertyRepo(), f.listingRepo(), time.Hour)

	first, err := d.Stats(ctx, hoStaff)
	if err != nil {
		t.Fatal(err)
	}

	p := f.createProperty(t, landlordA)
	if _, err := f.wf.SubmitProperty(ctx, landlordA, p.ID); err != nil {
		t.Fatal(err)
	}

	cached, _ := d.Stats(ctx, hoStaff)
	if cached != first {
		t.Errorf("cached stats changed: %+v -> %+v", first, cached)
	}

	d.Invalidate()
	fresh, _ := d.Stats(ctx, hoStaff)
	if fresh.PendingProperties != 1 {
		t.Errorf("PendingProperties = %d after invalidate, want 1", fresh.PendingProperties)
	}
}

func TestDashboard_RequiresHousingOffice(t *testing.T) {
	f := newFixture()
	d := app.NewDashboard(f.propertyRepo(), f.listingRepo(), time.Minute)

	_, err := d.Stats(context.Background(), landlordA)
	var fErr *domain.ForbiddenError
	if !errors.As(err, &fErr) {
		t.Fatalf("expected ForbiddenError, got %v", err)
	}
}

type memoryAuditLog struct {
	entries []domain.AuditEntry
	filter  domain.AuditFilter
}

func (m *memoryAuditLog) Record(_ context.Context, e domain.AuditEntry) error {
	m.entries = append(m.entries, e)
	return nil
}

func (m *memoryAuditLog) List(_ context.Context, f domain.AuditFilter) ([]domain.AuditEntry, error) {
	m.filter = f
	return m.entries, nil
}

func TestAuditTrail_List(t *testing.T) {
	log := &memoryAuditLog{entries: []domain.AuditEntry{{ID: "a-1"}}}
	trail := app.NewAuditTrail(log)

	got, err := trail.List(context.Background(), admin, domain.AuditFilter{Limit: 1000})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("entries = %d, want 1", len(got))
	}
	if log.filter.Limit != app.MaxPageSize {
		t.Errorf("Limit = %d, want clamped to %d", log.filter.Limit, app.MaxPageSize)
	}

	_, err = trail.List(context.Background(), landlordA, domain.AuditFilter{})
	var fErr *domain.ForbiddenError
	if !errors.As(err, &fErr) {
		t.Errorf("expected ForbiddenError, got %v", err)
	}
}
