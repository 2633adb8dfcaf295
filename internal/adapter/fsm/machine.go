package fsm

import (
	"context"
	"errors"
	"slices"

	loopfsm "github.com/looplab/fsm"

	"github.com/neomorfeo/homebase/internal/domain"
)

// Compile-time checks: the concrete machines implement domain.StatusMachine.
var (
	_ domain.StatusMachine[domain.PropertyStatus] = (*Machine[domain.PropertyStatus])(nil)
	_ domain.StatusMachine[domain.ListingStatus]  = (*Machine[domain.ListingStatus])(nil)
)

// buildEvents converts a domain transition table into looplab/fsm EventDesc
// format. Transitions sharing an event and destination are consolidated into
// a single EventDesc with multiple source states (e.g. approve from every
// property status goes to "approved").
func buildEvents[S ~string](table []domain.Transition[S]) []loopfsm.EventDesc {
	type key struct {
		event string
		dst   string
	}
	grouped := make(map[key][]string)
	order := make([]key, 0)

	for _, t := range table {
		k := key{event: string(t.Event), dst: string(t.Dst)}
		if _, exists := grouped[k]; !exists {
			order = append(order, k)
		}
		grouped[k] = append(grouped[k], string(t.Src))
	}

	out := make([]loopfsm.EventDesc, 0, len(order))
	for _, k := range order {
		out = append(out, loopfsm.EventDesc{
			Name: k.event,
			Src:  grouped[k],
			Dst:  k.dst,
		})
	}
	return out
}

// Machine implements domain.StatusMachine using looplab/fsm.
// It creates a short-lived FSM instance per call, initialized with the
// entity's current status, because looplab/fsm tracks the current state
// internally.
type Machine[S ~string] struct {
	entity domain.EntityKind
	events []loopfsm.EventDesc
	order  map[domain.Event]int
}

// New creates a machine for the given entity kind and transition table.
func New[S ~string](entity domain.EntityKind, table []domain.Transition[S]) *Machine[S] {
	order := make(map[domain.Event]int)
	for _, t := range table {
		if _, ok := order[t.Event]; !ok {
			order[t.Event] = len(order)
		}
	}
	return &Machine[S]{
		entity: entity,
		events: buildEvents(table),
		order:  order,
	}
}

// NewPropertyMachine returns the machine for the property review lifecycle.
func NewPropertyMachine() *Machine[domain.PropertyStatus] {
	return New(domain.EntityProperty, domain.PropertyTransitions)
}

// NewListingMachine returns the machine for the listing publication lifecycle.
func NewListingMachine() *Machine[domain.ListingStatus] {
	return New(domain.EntityListing, domain.ListingTransitions)
}

// Apply checks if the given event is valid from the current status and
// returns the destination status. Guard transitions (Src == Dst) succeed and
// return current. Returns a domain.TransitionError if the transition is not
// allowed.
func (m *Machine[S]) Apply(ctx context.Context, current S, event domain.Event) (S, error) {
	machine := loopfsm.NewFSM(string(current), m.events, nil)

	if err := machine.Event(ctx, string(event)); err != nil {
		var noTransition loopfsm.NoTransitionError
		if errors.As(err, &noTransition) {
			return current, nil
		}
		var invalidEvent loopfsm.InvalidEventError
		var unknownEvent loopfsm.UnknownEventError
		if errors.As(err, &invalidEvent) || errors.As(err, &unknownEvent) {
			return "", &domain.TransitionError{
				Entity:  m.entity,
				Event:   event,
				Current: string(current),
			}
		}
		return "", err
	}

	return S(machine.Current()), nil
}

// Available lists the events that may be fired from current, in table order.
func (m *Machine[S]) Available(current S) []domain.Event {
	machine := loopfsm.NewFSM(string(current), m.events, nil)

	names := machine.AvailableTransitions()
	out := make([]domain.Event, 0, len(names))
	for _, n := range names {
		out = append(out, domain.Event(n))
	}
	slices.SortFunc(out, func(a, b domain.Event) int {
		return m.order[a] - m.order[b]
	})
	return out
}
