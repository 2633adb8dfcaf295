package http

import (
	"time"

	"github.com/neomorfeo/homebase/internal/app"
	"github.com/neomorfeo/homebase/internal/domain"
)

const timeLayout = time.RFC3339

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func formatTimePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return formatTime(*t)
}

// PropertyResponse is the API representation of a property.
type PropertyResponse struct {
	ID         string                    `json:"id" doc:"Unique identifier"`
	LandlordID string                    `json:"landlord_id" doc:"Owning landlord"`
	Status     string                    `json:"status" doc:"Review state"`
	Attributes domain.PropertyAttributes `json:"attributes"`
	ReviewerID string                    `json:"reviewer_id,omitempty" doc:"Housing Office reviewer"`
	ReviewedAt string                    `json:"reviewed_at,omitempty" doc:"Review timestamp (RFC 3339)"`
	Comments   string                    `json:"comments,omitempty" doc:"Latest review comments"`
	Version    int64                     `json:"version" doc:"Optimistic concurrency version"`
	CreatedAt  string                    `json:"created_at" doc:"Creation timestamp (RFC 3339)"`
	UpdatedAt  string                    `json:"updated_at" doc:"Last update timestamp (RFC 3339)"`
}

func toPropertyResponse(p domain.Property) PropertyResponse {
	return PropertyResponse{
		ID:         p.ID,
		LandlordID: p.LandlordID,
		Status:     string(p.Status),
		Attributes: p.Attributes,
		ReviewerID: p.Review.ReviewerID,
		ReviewedAt: formatTimePtr(p.Review.ReviewedAt),
		Comments:   p.Review.Comments,
		Version:    p.Version,
		CreatedAt:  formatTime(p.CreatedAt),
		UpdatedAt:  formatTime(p.UpdatedAt),
	}
}

func toPropertyResponses(ps []domain.Property) []PropertyResponse {
	out := make([]PropertyResponse, len(ps))
	for i, p := range ps {
		out[i] = toPropertyResponse(p)
	}
	return out
}

// ListingResponse is the API representation of a listing.
type ListingResponse struct {
	ID             string       `json:"id" doc:"Unique identifier"`
	PropertyID     string       `json:"property_id" doc:"Listed property"`
	PropertyStatus string       `json:"property_status,omitempty" doc:"Review state of the property"`
	Status         string       `json:"status" doc:"Publication state"`
	Terms          domain.Terms `json:"terms"`
	ReviewerID     string       `json:"reviewer_id,omitempty"`
	Comments       string       `json:"comments,omitempty"`
	SubmittedAt    string       `json:"submitted_at,omitempty"`
	ReviewedAt     string       `json:"reviewed_at,omitempty"`
	ApprovedAt     string       `json:"approved_at,omitempty"`
	PublishedAt    string       `json:"published_at,omitempty"`
	Version        int64        `json:"version"`
	CreatedAt      string       `json:"created_at"`
	UpdatedAt      string       `json:"updated_at"`
}

func toListingResponse(l domain.Listing) ListingResponse {
	return ListingResponse{
		ID:          l.ID,
		PropertyID:  l.PropertyID,
		Status:      string(l.Status),
		Terms:       l.Terms,
		ReviewerID:  l.ReviewerID,
		Comments:    l.Comments,
		SubmittedAt: formatTimePtr(l.SubmittedAt),
		ReviewedAt:  formatTimePtr(l.ReviewedAt),
		ApprovedAt:  formatTimePtr(l.ApprovedAt),
		PublishedAt: formatTimePtr(l.PublishedAt),
		Version:     l.Version,
		CreatedAt:   formatTime(l.CreatedAt),
		UpdatedAt:   formatTime(l.UpdatedAt),
	}
}

func toListingViewResponse(v domain.ListingView) ListingResponse {
	r := toListingResponse(v.Listing)
	r.PropertyStatus = string(v.Property.Status)
	return r
}

// DocumentResponse is the API representation of document metadata.
type DocumentResponse struct {
	ID          string `json:"id"`
	Kind        string `json:"attachable_kind"`
	TargetID    string `json:"attachable_id"`
	Type        string `json:"type"`
	FileName    string `json:"file_name"`
	MimeType    string `json:"mime_type"`
	Size        int64  `json:"size"`
	StorageKey  string `json:"storage_key"`
	Locale      string `json:"locale"`
	Status      string `json:"status"`
	UploadedBy  string `json:"uploaded_by"`
	Description string `json:"description,omitempty"`
	CreatedAt   string `json:"created_at"`
}

func toDocumentResponse(d domain.Document) DocumentResponse {
	return DocumentResponse{
		ID:          d.ID,
		Kind:        string(d.Target.Kind),
		TargetID:    d.Target.ID,
		Type:        string(d.Type),
		FileName:    d.FileName,
		MimeType:    d.MimeType,
		Size:        d.Size,
		StorageKey:  d.StorageKey,
		Locale:      d.Locale,
		Status:      d.Status,
		UploadedBy:  d.UploadedBy,
		Description: d.Description,
		CreatedAt:   formatTime(d.CreatedAt),
	}
}

// AuditEntryResponse is one audit trail record.
type AuditEntryResponse struct {
	ID         string `json:"id"`
	Entity     string `json:"entity"`
	EntityID   string `json:"entity_id"`
	Event      string `json:"event"`
	From       string `json:"from,omitempty"`
	To         string `json:"to,omitempty"`
	ActorID    string `json:"actor_id"`
	Comments   string `json:"comments,omitempty"`
	OccurredAt string `json:"occurred_at"`
}

func toAuditEntryResponse(e domain.AuditEntry) AuditEntryResponse {
	return AuditEntryResponse{
		ID:         e.ID,
		Entity:     string(e.Entity),
		EntityID:   e.EntityID,
		Event:      string(e.Event),
		From:       e.From,
		To:         e.To,
		ActorID:    e.ActorID,
		Comments:   e.Comments,
		OccurredAt: formatTime(e.OccurredAt),
	}
}

// StatsResponse carries the Housing Office queue counts.
type StatsResponse struct {
	PendingProperties      int `json:"pending_properties"`
	ActiveProperties       int `json:"active_properties"`
	ListingsAwaitingReview int `json:"listings_awaiting_review"`
	PublishedListings      int `json:"published_listings"`
}

func toStatsResponse(s app.DashboardStats) StatsResponse {
	return StatsResponse(s)
}

// ActionsResponse lists the events the caller may fire next.
type ActionsResponse struct {
	Actions []string `json:"actions"`
}

func toActionsResponse(events []domain.Event) ActionsResponse {
	out := make([]string, len(events))
	for i, e := range events {
		out[i] = string(e)
	}
	return ActionsResponse{Actions: out}
}
