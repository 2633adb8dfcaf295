package domain

import (
	"fmt"
	"time"
)

// ListingStatus represents the publication state of a listing.
type ListingStatus string

const (
	ListingDraft       ListingStatus = "draft"
	ListingSubmitted   ListingStatus = "submitted"
	ListingInReview    ListingStatus = "in_review"
	ListingApproved    ListingStatus = "approved"
	ListingRejected    ListingStatus = "rejected"
	ListingPublished   ListingStatus = "published"
	ListingUnpublished ListingStatus = "unpublished"
)

// ListingStatuses is the closed set of valid listing statuses.
var ListingStatuses = []ListingStatus{
	ListingDraft, ListingSubmitted, ListingInReview, ListingApproved,
	ListingRejected, ListingPublished, ListingUnpublished,
}

// Valid reports whether s is a member of the listing status enum.
func (s ListingStatus) Valid() bool {
	for _, v := range ListingStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// ListingTransitions is the listing publication lifecycle. There is no way
// back from unpublished; re-listing needs a product decision.
var ListingTransitions = []Transition[ListingStatus]{
	{Event: EventEdit, Src: ListingDraft, Dst: ListingDraft},
	{Event: EventEdit, Src: ListingRejected, Dst: ListingRejected},
	{Event: EventSubmit, Src: ListingDraft, Dst: ListingSubmitted},
	{Event: EventSubmit, Src: ListingRejected, Dst: ListingSubmitted},
	{Event: EventStartReview, Src: ListingSubmitted, Dst: ListingInReview},
	{Event: EventApprove, Src: ListingSubmitted, Dst: ListingApproved},
	{Event: EventApprove, Src: ListingInReview, Dst: ListingApproved},
	{Event: EventReject, Src: ListingSubmitted, Dst: ListingRejected},
	{Event: EventReject, Src: ListingInReview, Dst: ListingRejected},
	{Event: EventPublish, Src: ListingApproved, Dst: ListingPublished},
	{Event: EventUnpublish, Src: ListingPublished, Dst: ListingUnpublished},
	{Event: EventDelete, Src: ListingDraft, Dst: ListingDraft},
}

// Cents is an amount of money in hundredths of a euro.
type Cents int64

// MaxAmount is the largest amount accepted for listing terms (999999.99).
const MaxAmount Cents = 99_999_999

// DefaultDurationYears is the lease duration used when none is given.
const DefaultDurationYears = 4

func (c Cents) String() string {
	sign := ""
	if c < 0 {
		sign = "-"
		c = -c
	}
	return fmt.Sprintf("%s%d.%02d", sign, c/100, c%100)
}

// Terms are the financial conditions of a listing.
type Terms struct {
	MonthlyRent     Cents          `json:"monthly_rent" validate:"gte=0,lte=99999999"`
	SecurityDeposit Cents          `json:"security_deposit" validate:"gte=0,lte=99999999"`
	CondoFees       *Cents         `json:"condo_fees,omitempty" validate:"omitempty,gte=0,lte=99999999"`
	DurationYears   int            `json:"duration_years" validate:"gte=1,lte=20"`
	Checklist       map[string]any `json:"checklist_data,omitempty"`
}

// WithDefaults fills in the lease duration when it was left out.
func (t Terms) WithDefaults() Terms {
	if t.DurationYears == 0 {
		t.DurationYears = DefaultDurationYears
	}
	return t
}

// Validate checks the terms ranges.
func (t Terms) Validate() error {
	return validateStruct(t).asError()
}

// TermsPatch carries a partial update of listing terms. Nil fields are left alone.
type TermsPatch struct {
	MonthlyRent     *Cents
	SecurityDeposit *Cents
	CondoFees       *Cents
	ClearCondoFees  bool
	DurationYears   *int
	Checklist       map[string]any
}

// Apply returns t with the patch applied.
func (p TermsPatch) Apply(t Terms) Terms {
	if p.MonthlyRent != nil {
		t.MonthlyRent = *p.MonthlyRent
	}
	if p.SecurityDeposit != nil {
		t.SecurityDeposit = *p.SecurityDeposit
	}
	if p.ClearCondoFees {
		t.CondoFees = nil
	} else if p.CondoFees != nil {
		v := *p.CondoFees
		t.CondoFees = &v
	}
	if p.DurationYears != nil {
		t.DurationYears = *p.DurationYears
	}
	if p.Checklist != nil {
		t.Checklist = p.Checklist
	}
	return t
}

// Listing is the commercial offer for an approved property.
type Listing struct {
	ID          string
	PropertyID  string
	Status      ListingStatus
	Terms       Terms
	ReviewerID  string
	Comments    string
	SubmittedAt *time.Time
	ReviewedAt  *time.Time
	ApprovedAt  *time.Time
	PublishedAt *time.Time
	Version     int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   *time.Time
}

// NewListing creates a listing in the initial "draft" state.
func NewListing(id, propertyID string, terms Terms, now time.Time) Listing {
	return Listing{
		ID:         id,
		PropertyID: propertyID,
		Status:     ListingDraft,
		Terms:      terms.WithDefaults(),
		Version:    1,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// Deleted reports whether the listing has been soft-deleted.
func (l Listing) Deleted() bool {
	return l.DeletedAt != nil
}

// ListingView is a listing together with its parent property.
type ListingView struct {
	Listing  Listing
	Property Property
}

// ListingFilter holds optional criteria for listing listings.
type ListingFilter struct {
	Status     *ListingStatus
	PropertyID string
	LandlordID string
	Limit      int
	Offset     int
}
