package domain

import "fmt"

// Action names an operation for authorization and error reporting.
type Action string

const (
	ActionCreateProperty     Action = "create_property"
	ActionViewProperty       Action = "view_property"
	ActionUpdateProperty     Action = "update_property"
	ActionCommentProperty    Action = "comment_property"
	ActionSubmitProperty     Action = "submit_property"
	ActionApproveProperty    Action = "approve_property"
	ActionRejectProperty     Action = "reject_property"
	ActionDeleteProperty     Action = "delete_property"
	ActionCreateListing      Action = "create_listing"
	ActionViewListing        Action = "view_listing"
	ActionUpdateListing      Action = "update_listing"
	ActionSubmitListing      Action = "submit_listing"
	ActionStartListingReview Action = "start_listing_review"
	ActionApproveListing     Action = "approve_listing"
	ActionRejectListing      Action = "reject_listing"
	ActionPublishListing     Action = "publish_listing"
	ActionUnpublishListing   Action = "unpublish_listing"
	ActionDeleteListing      Action = "delete_listing"
	ActionAttachDocument     Action = "attach_document"
	ActionViewDocuments      Action = "view_documents"
	ActionViewDashboard      Action = "view_dashboard"
	ActionViewAudit          Action = "view_audit"
)

// HasRole reports whether the actor carries role r.
func HasRole(a Actor, r Role) bool {
	return a.HasRole(r)
}

// IsOwner reports whether the actor is the landlord who created the property.
func IsOwner(a Actor, p Property) bool {
	return a.ID != "" && a.ID == p.LandlordID
}

// RequireRole fails with a ForbiddenError unless the actor carries role r.
func RequireRole(a Actor, r Role, action Action) error {
	if a.HasRole(r) {
		return nil
	}
	return &ForbiddenError{
		Action:  action,
		ActorID: a.ID,
		Reason:  fmt.Sprintf("requires role %q", r),
	}
}

// RequireAnyRole fails unless the actor carries at least one of roles.
func RequireAnyRole(a Actor, action Action, roles ...Role) error {
	for _, r := range roles {
		if a.HasRole(r) {
			return nil
		}
	}
	return &ForbiddenError{
		Action:  action,
		ActorID: a.ID,
		Reason:  fmt.Sprintf("requires one of roles %v", roles),
	}
}

// RequireOwner fails unless the actor owns the property.
func RequireOwner(a Actor, p Property, action Action) error {
	if IsOwner(a, p) {
		return nil
	}
	return &ForbiddenError{
		Action:  action,
		ActorID: a.ID,
		Reason:  fmt.Sprintf("not the owner of property %s", p.ID),
	}
}

// RequireLandlordOwner fails unless the actor is a landlord and owns the property.
func RequireLandlordOwner(a Actor, p Property, action Action) error {
	if err := RequireRole(a, RoleLandlord, action); err != nil {
		return err
	}
	return RequireOwner(a, p, action)
}

// ownerEvents and housingOfficeEvents map events to the party that may fire them.
// Owner events are checked against property ownership, the rest against roles.
var ownerEvents = map[Event]bool{
	EventEdit:        true,
	EventSubmit:      true,
	EventPublish:     true,
	EventUnpublish:   true,
	EventDelete:      true,
	EventOpenListing: true,
}

var housingOfficeEvents = map[Event]bool{
	EventStartReview: true,
	EventApprove:     true,
	EventReject:      true,
}

// MayFire reports whether the actor is, role- or ownership-wise, allowed to
// fire event against an entity belonging to property p. It does not consult
// the state machine.
func MayFire(a Actor, p Property, event Event) bool {
	switch {
	case ownerEvents[event]:
		if event == EventOpenListing {
			return a.IsLandlord() && IsOwner(a, p)
		}
		return IsOwner(a, p)
	case housingOfficeEvents[event]:
		return a.IsHousingOffice()
	default:
		return false
	}
}
