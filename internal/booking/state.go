package booking

import "fmt"

// State is where a booking sits in its lifecycle, from the in-progress draft
// through persistence to cancellation.
type State string

const (
	StateDrafting           State = "drafting"
	StateCustomerIdentified State = "customer_identified"
	StateSubmitting         State = "submitting"
	StateConfirmed          State = "confirmed"
	StateCancelled          State = "cancelled"
)

// AllowTransition is the lifecycle adjacency map. Terminal states have no
// outgoing edges.
var AllowTransition = map[State][]State{
	StateDrafting:           {StateCustomerIdentified},
	StateCustomerIdentified: {StateDrafting, StateSubmitting},
	StateSubmitting:         {StateConfirmed, StateDrafting},
	StateConfirmed:          {StateCancelled},
	StateCancelled:          {},
}

// CanTransition reports whether from -> to is an allowed lifecycle move.
// A no-op transition to the current state is always allowed.
func CanTransition(from, to State) bool {
	if from == to {
		return true
	}
	for _, s := range AllowTransition[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Advance validates and returns the new state, or an error describing the
// rejected transition so the caller can report it and stay in place.
func Advance(from, to State) (State, error) {
	if !CanTransition(from, to) {
		return from, fmt.Errorf("invalid booking state transition: %s -> %s", from, to)
	}
	return to, nil
}
