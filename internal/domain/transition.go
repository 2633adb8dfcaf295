package domain

// Event represents an action that triggers a state transition.
type Event string

const (
	EventCreate      Event = "create"
	EventEdit        Event = "edit"
	EventSubmit      Event = "submit"
	EventStartReview Event = "start_review"
	EventApprove     Event = "approve"
	EventReject      Event = "reject"
	EventPublish     Event = "publish"
	EventUnpublish   Event = "unpublish"
	EventDelete      Event = "delete"
	EventOpenListing Event = "open_listing"
	EventComment     Event = "comment"
	EventAttach      Event = "attach"
)

// EntityKind names the aggregate a transition or attachment refers to.
type EntityKind string

const (
	EntityProperty EntityKind = "property"
	EntityListing  EntityKind = "listing"
	EntityLease    EntityKind = "lease"
)

// Transition defines a valid state change: an event moves an entity from Src to Dst.
// A transition whose Src equals Dst is a guard: the event is allowed from that
// state but does not change it.
type Transition[S ~string] struct {
	Event Event
	Src   S
	Dst   S
}

// IsGuard reports whether the transition leaves the status unchanged.
func (t Transition[S]) IsGuard() bool {
	return t.Src == t.Dst
}

// EventsFrom returns the distinct events that are valid from status s, in table order.
func EventsFrom[S ~string](table []Transition[S], s S) []Event {
	var out []Event
	seen := make(map[Event]bool)
	for _, t := range table {
		if t.Src == s && !seen[t.Event] {
			seen[t.Event] = true
			out = append(out, t.Event)
		}
	}
	return out
}
