package app_test

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	"github.com/neomorfeo/homebase/internal/adapter/fsm"
	"github.com/neomorfeo/homebase/internal/app"
	"github.com/neomorfeo/homebase/internal/domain"
)

// --- Mocks ---

// mockStore keeps properties and listings together so the listing repo can
// check the parent property the way the SQL store does.
type mockStore struct {
	mu         sync.Mutex
	properties map[string]domain.Property
	listings   map[string]domain.Listing
	documents  map[string]domain.Document
	writes     int
}

func newMockStore() *mockStore {
	return &mockStore{
		properties: make(map[string]domain.Property),
		listings:   make(map[string]domain.Listing),
		documents:  make(map[string]domain.Document),
	}
}

type mockPropertyRepo struct{ s *mockStore }

func (m mockPropertyRepo) Create(_ context.Context, p domain.Property) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	m.s.properties[p.ID] = p
	m.s.writes++
	return nil
}

func (m mockPropertyRepo) GetByID(_ context.Context, id string) (domain.Property, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	p, ok := m.s.properties[id]
	if !ok || p.Deleted() {
		return domain.Property{}, domain.ErrPropertyNotFound
	}
	return p, nil
}

func (m mockPropertyRepo) List(_ context.Context, f domain.PropertyFilter) ([]domain.Property, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	out := make([]domain.Property, 0)
	for _, p := range m.s.properties {
		if p.Deleted() {
			continue
		}
		if f.LandlordID != "" && p.LandlordID != f.LandlordID {
			continue
		}
		if f.Status != nil && p.Status != *f.Status {
			continue
		}
		if f.City != "" && p.Attributes.City != f.City {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (m mockPropertyRepo) Update(_ context.Context, p domain.Property) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	stored, ok := m.s.properties[p.ID]
	if !ok || stored.Deleted() {
		return domain.ErrPropertyNotFound
	}
	if stored.Version != p.Version {
		return domain.ErrVersionConflict
	}
	p.Version++
	m.s.properties[p.ID] = p
	m.s.writes++
	return nil
}

func (m mockPropertyRepo) SoftDelete(_ context.Context, id string, version int64, at time.Time) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	stored, ok := m.s.properties[id]
	if !ok || stored.Deleted() {
		return domain.ErrPropertyNotFound
	}
	if stored.Version != version {
		return domain.ErrVersionConflict
	}
	stored.DeletedAt = &at
	stored.Version++
	m.s.properties[id] = stored
	m.s.writes++
	return nil
}

func (m mockPropertyRepo) CountByStatus(_ context.Context, statuses ...domain.PropertyStatus) (int, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	n := 0
	for _, p := range m.s.properties {
		if !p.Deleted() && slices.Contains(statuses, p.Status) {
			n++
		}
	}
	return n, nil
}

type mockListingRepo struct{ s *mockStore }

func (m mockListingRepo) Create(_ context.Context, l domain.Listing) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	p, ok := m.s.properties[l.PropertyID]
	if !ok || p.Deleted() {
		return domain.ErrPropertyNotFound
	}
	if p.Status != domain.PropertyApproved {
		return &domain.TransitionError{Entity: domain.EntityProperty, Event: domain.EventOpenListing, Current: string(p.Status)}
	}
	for _, other := range m.s.listings {
		if other.PropertyID == l.PropertyID && !other.Deleted() {
			return &domain.ConflictError{Entity: domain.EntityListing, Key: l.PropertyID, Reason: "property already has a listing"}
		}
	}
	m.s.listings[l.ID] = l
	m.s.writes++
	return nil
}

func (m mockListingRepo) GetByID(_ context.Context, id string) (domain.Listing, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	l, ok := m.s.listings[id]
	if !ok || l.Deleted() {
		return domain.Listing{}, domain.ErrListingNotFound
	}
	return l, nil
}

func (m mockListingRepo) GetByPropertyID(_ context.Context, propertyID string) (domain.Listing, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	for _, l := range m.s.listings {
		if l.PropertyID == propertyID && !l.Deleted() {
			return l, nil
		}
	}
	return domain.Listing{}, domain.ErrListingNotFound
}

func (m mockListingRepo) List(_ context.Context, f domain.ListingFilter) ([]domain.Listing, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	out := make([]domain.Listing, 0)
	for _, l := range m.s.listings {
		if l.Deleted() {
			continue
		}
		if f.Status != nil && l.Status != *f.Status {
			continue
		}
		if f.PropertyID != "" && l.PropertyID != f.PropertyID {
			continue
		}
		if f.LandlordID != "" && m.s.properties[l.PropertyID].LandlordID != f.LandlordID {
			continue
		}
		out = append(out, l)
	}
	return out, nil
}

func (m mockListingRepo) Update(_ context.Context, l domain.Listing) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	stored, ok := m.s.listings[l.ID]
	if !ok || stored.Deleted() {
		return domain.ErrListingNotFound
	}
	if stored.Version != l.Version {
		return domain.ErrVersionConflict
	}
	l.Version++
	m.s.listings[l.ID] = l
	m.s.writes++
	return nil
}

func (m mockListingRepo) SoftDelete(_ context.Context, id string, version int64, at time.Time) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	stored, ok := m.s.listings[id]
	if !ok || stored.Deleted() {
		return domain.ErrListingNotFound
	}
	if stored.Version != version {
		return domain.ErrVersionConflict
	}
	stored.DeletedAt = &at
	stored.Version++
	m.s.listings[id] = stored
	m.s.writes++
	return nil
}

func (m mockListingRepo) CountByStatus(_ context.Context, statuses ...domain.ListingStatus) (int, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	n := 0
	for _, l := range m.s.listings {
		if !l.Deleted() && slices.Contains(statuses, l.Status) {
			n++
		}
	}
	return n, nil
}

type mockDocumentRepo struct{ s *mockStore }

func (m mockDocumentRepo) Create(_ context.Context, d domain.Document) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	m.s.documents[d.ID] = d
	return nil
}

func (m mockDocumentRepo) GetByID(_ context.Context, id string) (domain.Document, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	d, ok := m.s.documents[id]
	if !ok {
		return domain.Document{}, domain.ErrDocumentNotFound
	}
	return d, nil
}

func (m mockDocumentRepo) ListByTarget(_ context.Context, target domain.AttachableRef) ([]domain.Document, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	out := make([]domain.Document, 0)
	for _, d := range m.s.documents {
		if d.Target == target {
			out = append(out, d)
		}
	}
	return out, nil
}

type mockPublisher struct {
	mu     sync.Mutex
	events []domain.WorkflowEvent
	err    error
}

func (m *mockPublisher) Publish(_ context.Context, ev domain.WorkflowEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.events = append(m.events, ev)
	return nil
}

func (m *mockPublisher) last() domain.WorkflowEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.events) == 0 {
		return domain.WorkflowEvent{}
	}
	return m.events[len(m.events)-1]
}

type fixedClock struct{ now time.Time }

func (c *fixedClock) Now() time.Time { return c.now }

func (c *fixedClock) advance(d time.Duration) { c.now = c.now.Add(d) }

// --- Fixture ---

var errPublish = errors.New("queue unavailable")

var (
	landlordA = domain.NewActor("landlord-a", domain.RoleLandlord)
	landlordB = domain.NewActor("landlord-b", domain.RoleLandlord)
	hoStaff   = domain.NewActor("ho-1", domain.RoleHousingOffice)
	tenant    = domain.NewActor("tenant-1", domain.RoleTenant)
	admin     = domain.NewActor("admin-1", domain.RoleAdmin)
)

type fixture struct {
	store *mockStore
	pub   *mockPublisher
	clock *fixedClock
	wf    *app.Workflow
}

func newFixture() *fixture {
	store := newMockStore()
	pub := &mockPublisher{}
	clock := &fixedClock{now: time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC)}
	wf := app.NewWorkflow(app.Deps{
		Properties:      mockPropertyRepo{store},
		Listings:        mockListingRepo{store},
		Publisher:       pub,
		PropertyMachine: fsm.NewPropertyMachine(),
		ListingMachine:  fsm.NewListingMachine(),
		Clock:           clock,
	})
	return &fixture{store: store, pub: pub, clock: clock, wf: wf}
}

func attributes() domain.PropertyAttributes {
	return domain.PropertyAttributes{
		StreetName:    "Viale della Pace",
		HouseNumber:   "7",
		City:          "Vicenza",
		Province:      "VI",
		PostalCode:    "36100",
		Country:       "IT",
		Bedrooms:      2,
		FullBathrooms: 1,
		Furnishing:    domain.FurnishingPartially,
	}
}

func terms() domain.Terms {
	return domain.Terms{MonthlyRent: 125000, SecurityDeposit: 250000}
}

func (f *fixture) propertyRepo() mockPropertyRepo { return mockPropertyRepo{f.store} }

func (f *fixture) listingRepo() mockListingRepo { return mockListingRepo{f.store} }
