package app

import (
	"context"
	"fmt"
	"time"

	"github.com/jellydator/ttlcache/v3"

	"github.com/neomorfeo/homebase/internal/domain"
)

// DashboardStats are the queue counts shown to the Housing Office.
type DashboardStats struct {
	PendingProperties      int
	ActiveProperties       int
	ListingsAwaitingReview int
	PublishedListings      int
}

const statsKey = "ho"

// Dashboard serves HO queue counts, cached for a short TTL.
type Dashboard struct {
	properties domain.PropertyRepository
	listings   domain.ListingRepository
	cache      *ttlcache.Cache[string, DashboardStats]
}

// NewDashboard creates a dashboard whose counts are cached for ttl.
func NewDashboard(properties domain.PropertyRepository, listings domain.ListingRepository, ttl time.Duration) *Dashboard {
	cache := ttlcache.New(
		ttlcache.WithTTL[string, DashboardStats](ttl),
		ttlcache.WithDisableTouchOnHit[string, DashboardStats](),
	)
	return &Dashboard{
		properties: properties,
		listings:   listings,
		cache:      cache,
	}
}

// Stats returns the HO dashboard counts.
func (d *Dashboard) Stats(ctx context.Context, actor domain.Actor) (DashboardStats, error) {
	if err := domain.RequireRole(actor, domain.RoleHousingOffice, domain.ActionViewDashboard); err != nil {
		return DashboardStats{}, err
	}

	if item := d.cache.Get(statsKey); item != nil {
		return item.Value(), nil
	}

	stats, err := d.count(ctx)
	if err != nil {
		return DashboardStats{}, err
	}
	d.cache.Set(statsKey, stats, ttlcache.DefaultTTL)
	return stats, nil
}

// Invalidate drops the cached counts.
func (d *Dashboard) Invalidate() {
	d.cache.DeleteAll()
}

func (d *Dashboard) count(ctx context.Context) (DashboardStats, error) {
	var (
		s   DashboardStats
		err error
	)
	if s.PendingProperties, err = d.properties.CountByStatus(ctx, domain.PropertyPendingReview); err != nil {
		return DashboardStats{}, fmt.Errorf("counting pending properties: %w", err)
	}
	if s.ActiveProperties, err = d.properties.CountByStatus(ctx, domain.PropertyApproved, domain.PropertyPendingReview); err != nil {
		return DashboardStats{}, fmt.Errorf("counting active properties: %w", err)
	}
	if s.ListingsAwaitingReview, err = d.listings.CountByStatus(ctx, domain.ListingSubmitted, domain.ListingInReview); err != nil {
		return DashboardStats{}, fmt.Errorf("counting listings awaiting review: %w", err)
	}
	if s.PublishedListings, err = d.listings.CountByStatus(ctx, domain.ListingPublished); err != nil {
		return DashboardStats{}, fmt.Errorf("counting published listings: %w", err)
	}
	return s, nil
}
