package domain

import (
	"strconv"
	"time"
)

// PropertyStatus represents the review state of a property.
type PropertyStatus string

const (
	PropertyDraft         PropertyStatus = "draft"
	PropertyPendingReview PropertyStatus = "pending_review"
	PropertyApproved      PropertyStatus = "approved"
	PropertyRejected      PropertyStatus = "rejected"

	// PropertyCorrupted is the empty status of legacy records. It is not a
	// member of the enum; the only thing allowed from it is deletion.
	PropertyCorrupted PropertyStatus = ""
)

// PropertyStatuses is the closed set of valid property statuses.
var PropertyStatuses = []PropertyStatus{PropertyDraft, PropertyPendingReview, PropertyApproved, PropertyRejected}

// Valid reports whether s is a member of the property status enum.
func (s PropertyStatus) Valid() bool {
	for _, v := range PropertyStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Reviewed reports whether the status carries HO review stamps.
func (s PropertyStatus) Reviewed() bool {
	return s == PropertyApproved || s == PropertyRejected
}

// PropertyTransitions is the property review lifecycle. HO approve and reject
// are accepted from every enum state.
var PropertyTransitions = buildPropertyTransitions()

func buildPropertyTransitions() []Transition[PropertyStatus] {
	out := []Transition[PropertyStatus]{
		{Event: EventSubmit, Src: PropertyDraft, Dst: PropertyPendingReview},
		{Event: EventSubmit, Src: PropertyRejected, Dst: PropertyPendingReview},
	}
	for _, s := range PropertyStatuses {
		out = append(out, Transition[PropertyStatus]{Event: EventApprove, Src: s, Dst: PropertyApproved})
	}
	for _, s := range PropertyStatuses {
		out = append(out, Transition[PropertyStatus]{Event: EventReject, Src: s, Dst: PropertyRejected})
	}
	return append(out,
		Transition[PropertyStatus]{Event: EventDelete, Src: PropertyDraft, Dst: PropertyDraft},
		Transition[PropertyStatus]{Event: EventDelete, Src: PropertyCorrupted, Dst: PropertyCorrupted},
		Transition[PropertyStatus]{Event: EventOpenListing, Src: PropertyApproved, Dst: PropertyApproved},
	)
}

// Furnishing levels.
const (
	FurnishingNone      = "unfurnished"
	FurnishingPartially = "partially_furnished"
	FurnishingFully     = "fully_furnished"
)

// PropertyAttributes are the physical facts about a unit. They take no part in
// the workflow but are validated on every write.
type PropertyAttributes struct {
	StreetName  string   `json:"street_name" validate:"required,max=255"`
	HouseNumber string   `json:"house_number" validate:"required,max=50"`
	AptNumber   string   `json:"apt_number,omitempty" validate:"max=50"`
	City        string   `json:"city" validate:"required,max=255"`
	Province    string   `json:"province" validate:"required,max=2"`
	PostalCode  string   `json:"postal_code" validate:"required,max=10"`
	Country     string   `json:"country" validate:"required,len=2"`
	Latitude    *float64 `json:"latitude,omitempty" validate:"omitempty,gte=-90,lte=90"`
	Longitude   *float64 `json:"longitude,omitempty" validate:"omitempty,gte=-180,lte=180"`

	Bedrooms      int `json:"bedrooms" validate:"gte=1,lte=20"`
	FullBathrooms int `json:"full_bathrooms" validate:"gte=0,lte=10"`
	HalfBathrooms int `json:"half_bathrooms,omitempty" validate:"gte=0,lte=10"`
	LivingRooms   int `json:"living_rooms,omitempty" validate:"gte=0,lte=10"`
	Kitchens      int `json:"kitchens,omitempty" validate:"gte=0,lte=5"`

	Garage       bool   `json:"garage"`
	GarageType   string `json:"garage_type,omitempty" validate:"omitempty,oneof=indoor outdoor both"`
	GarageSpaces *int   `json:"garage_spaces,omitempty" validate:"omitempty,gte=1,lte=10"`
	Yard         bool   `json:"yard"`
	YardType     string `json:"yard_type,omitempty" validate:"omitempty,oneof=front back both"`

	Furnishing  string `json:"furnishing_status" validate:"required,oneof=unfurnished partially_furnished fully_furnished"`
	PetsAllowed bool   `json:"pets_allowed"`
	HeatingType string `json:"heating_type,omitempty" validate:"omitempty,oneof=city_gas lpg_coupons lpg_no_coupons fuel electric heat_pump wood other"`

	FloorNumber *int     `json:"floor_number,omitempty" validate:"omitempty,gte=-5,lte=50"`
	TotalFloors *int     `json:"total_floors,omitempty" validate:"omitempty,gte=1,lte=50"`
	Elevator    bool     `json:"elevator"`
	TotalSqm    *float64 `json:"total_sqm,omitempty" validate:"omitempty,gte=10,lte=1000"`
	EnergyClass string   `json:"energy_class,omitempty" validate:"omitempty,oneof=A4 A3 A2 A1 A B C D E F G"`
	YearBuilt   *int     `json:"year_built,omitempty" validate:"omitempty,gte=1800"`

	RedecorationFeesRequired bool   `json:"redecoration_fees_required"`
	RedecorationFeesAmount   *Cents `json:"redecoration_fees_amount,omitempty" validate:"omitempty,gte=0,lte=10000000"`
}

// Validate checks field ranges and the cross-field rules. now bounds year_built.
func (a PropertyAttributes) Validate(now time.Time) error {
	verr := validateStruct(a)

	if a.FullBathrooms+a.HalfBathrooms < 1 {
		verr = verr.add("bathrooms", "must have at least one bathroom (full or half)")
	}
	if a.FloorNumber != nil && a.TotalFloors != nil && *a.FloorNumber > *a.TotalFloors {
		verr = verr.add("floor_number", "cannot exceed total floors")
	}
	if a.RedecorationFeesRequired && a.RedecorationFeesAmount == nil {
		verr = verr.add("redecoration_fees_amount", "is required when redecoration fees are required")
	}
	if a.YearBuilt != nil && *a.YearBuilt > now.Year()+2 {
		verr = verr.add("year_built", "must be at most "+strconv.Itoa(now.Year()+2))
	}

	return verr.asError()
}

// Review holds the HO review stamps. Empty ReviewerID and nil ReviewedAt mean
// the property has not been reviewed.
type Review struct {
	ReviewerID string
	ReviewedAt *time.Time
	Comments   string
}

// Property is a physical rental unit owned by a landlord.
type Property struct {
	ID         string
	LandlordID string
	Status     PropertyStatus
	Attributes PropertyAttributes
	Review     Review
	Version    int64
	CreatedAt  time.Time
	UpdatedAt  time.Time
	DeletedAt  *time.Time
}

// NewProperty creates a property in the initial "draft" state.
func NewProperty(id, landlordID string, attrs PropertyAttributes, now time.Time) Property {
	return Property{
		ID:         id,
		LandlordID: landlordID,
		Status:     PropertyDraft,
		Attributes: attrs,
		Version:    1,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// StampReview records an HO decision. Comments replace any previous ones.
func (p *Property) StampReview(status PropertyStatus, reviewerID, comments string, now time.Time) {
	p.Status = status
	p.Review = Review{ReviewerID: reviewerID, ReviewedAt: &now, Comments: comments}
	p.UpdatedAt = now
}

// Resubmit moves the property back into the review queue. The previous
// comments stay visible to the landlord; the reviewer stamps are cleared so
// they are only present on reviewed statuses.
func (p *Property) Resubmit(status PropertyStatus, now time.Time) {
	p.Status = status
	p.Review.ReviewerID = ""
	p.Review.ReviewedAt = nil
	p.UpdatedAt = now
}

// Deleted reports whether the property has been soft-deleted.
func (p Property) Deleted() bool {
	return p.DeletedAt != nil
}

// PropertyFilter holds optional criteria for listing properties.
type PropertyFilter struct {
	Status     *PropertyStatus
	LandlordID string
	City       string
	Limit      int
	Offset     int
}
