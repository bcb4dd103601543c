package order

import (
	"fmt"

	"laundry/internal/pkg/errs"
)

// Status represents the lifecycle state of a work order.
// It implements a state machine with defined transitions to ensure
// orders follow the correct business workflow.
//
// State transitions:
//
//	Received ──> InProcess ──> ReadyForDelivery ──> Delivered ──> Billed
//	    │            │                │                 │
//	    └────────────┴────────────────┴─────────────────┴──> Cancelled
//
// Forward jumps along the chain are allowed (e.g. Received -> Billed for a
// walk-in order billed on the spot); moving backwards is not. Billed and
// Cancelled are terminal.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Received is the initial status when a work order is taken in.
	Received

	// InProcess indicates the items are being washed or pressed.
	InProcess

	// ReadyForDelivery indicates processing is done and the order awaits
	// pickup or delivery.
	ReadyForDelivery

	// Delivered indicates the order has been handed back to the customer.
	Delivered

	// Billed indicates the invoice for the order has been raised.
	// This is a terminal state.
	Billed

	// Cancelled indicates the order was abandoned before completion.
	// Reachable from any non-terminal state; terminal itself.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:          "unknown",
		Received:         "received",
		InProcess:        "inProcess",
		ReadyForDelivery: "readyForDelivery",
		Delivered:        "delivered",
		Billed:           "billed",
		Cancelled:        "cancelled",
	}
}

// statusRank orders the progressive (non-cancelled) statuses along the
// lifecycle chain. Cancelled has no rank; it is handled separately.
func statusRank() map[Status]int {
	return map[Status]int{
		Received:         1,
		InProcess:        2,
		ReadyForDelivery: 3,
		Delivered:        4,
		Billed:           5,
	}
}

// StatusFromString parses the wire representation of a status.
// Returns an error for "unknown" and any unrecognized value.
func StatusFromString(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if str == s && status != Unknown {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid",
		fmt.Errorf("%q is not a valid status", s))
}

// Validate checks if the Status value is one of the defined lifecycle states.
func (s Status) Validate() error {
	if s == Unknown {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%d is not a valid status", s))
	}
	if _, ok := getStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire representation of the status.
// Implements fmt.Stringer; safe to call on any Status value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether no further transitions are allowed.
func (s Status) IsTerminal() bool {
	return s == Billed || s == Cancelled
}

// ValidateTransition checks whether moving from s to target is a legal
// lifecycle transition without performing it.
//
// Rules:
//   - any non-terminal status may move to Cancelled
//   - the chain Received..Billed may only be walked forward (jumps allowed)
//   - terminal statuses (Billed, Cancelled) permit no transition
//   - a self-transition is not valid here; callers treat old == new as a no-op
func (s Status) ValidateTransition(target Status) error {
	if err := s.Validate(); err != nil {
		return err
	}
	if err := target.Validate(); err != nil {
		return err
	}

	if s.IsTerminal() {
		return errs.NewValueIsInvalidErrorWithCause("status transition is invalid",
			fmt.Errorf("%s is terminal and cannot transition to %s", s, target))
	}

	if target == Cancelled {
		return nil
	}

	ranks := statusRank()
	if ranks[target] > ranks[s] {
		return nil
	}

	return errs.NewValueIsInvalidErrorWithCause("status transition is invalid",
		fmt.Errorf("cannot transition from %s to %s", s, target))
}

// TransitionTo returns the target status after validating the transition.
func (s Status) TransitionTo(target Status) (Status, error) {
	if err := s.ValidateTransition(target); err != nil {
		return Unknown, err
	}
	return target, nil
}
