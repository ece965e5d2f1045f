package order

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
// It implements a state machine with an explicit adjacency table so that legality
// of a transition is decided in exactly one place.
//
// Forward chain:
//
//	Pending -> AddressConfirmed -> OrderConfirmed -> Packed -> ReadyForDelivery
//	        -> OutForDelivery -> Delivered -> Completed
//
// Side branches:
//
//	{Pending, AddressConfirmed, OrderConfirmed} -> Cancelled   (terminal)
//	OutForDelivery -> Rescheduled -> ReadyForDelivery          (delivery retry loop)
//	OutForDelivery -> FailedDelivery -> Rescheduled            (manual reopen only)
//
// Stages are not skippable: each forward edge models a real handoff between
// distinct operational roles (warehouse vs. delivery).
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status when an order is first created.
	Pending

	// AddressConfirmed indicates the shipping address has been verified with the customer.
	AddressConfirmed

	// OrderConfirmed indicates the order contents have been confirmed for fulfillment.
	OrderConfirmed

	// Packed indicates the order has been packed in the warehouse.
	// From this point the shipping address is frozen.
	Packed

	// ReadyForDelivery indicates the packed order is staged for a delivery run.
	ReadyForDelivery

	// OutForDelivery indicates a delivery agent is carrying the order to the customer.
	OutForDelivery

	// Delivered indicates the order reached the customer.
	Delivered

	// Completed is the happy-path terminal state. Entering it requires the order
	// to be fully paid (or fully cash-collected for cash-on-delivery orders).
	Completed

	// Cancelled is a terminal state. Reached directly by an admin while the order
	// is pre-packed, or through cancellation approval at later stages.
	Cancelled

	// Rescheduled parks an order whose delivery attempt was interrupted.
	// It loops back to ReadyForDelivery for the next run.
	Rescheduled

	// FailedDelivery records an unsuccessful delivery attempt.
	// Terminal unless manually reopened to Rescheduled.
	FailedDelivery
)

// getStatusStrings returns a map of Status values to their string representations.
// All statuses are included for string conversion.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:          "Unknown",
		Pending:          "Pending",
		AddressConfirmed: "AddressConfirmed",
		OrderConfirmed:   "OrderConfirmed",
		Packed:           "Packed",
		ReadyForDelivery: "ReadyForDelivery",
		OutForDelivery:   "OutForDelivery",
		Delivered:        "Delivered",
		Completed:        "Completed",
		Cancelled:        "Cancelled",
		Rescheduled:      "Rescheduled",
		FailedDelivery:   "FailedDelivery",
	}
}

// getValidStatusStrings returns a map of only valid Status values.
// Only valid statuses are included to support validation.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:          "Pending",
		AddressConfirmed: "AddressConfirmed",
		OrderConfirmed:   "OrderConfirmed",
		Packed:           "Packed",
		ReadyForDelivery: "ReadyForDelivery",
		OutForDelivery:   "OutForDelivery",
		Delivered:        "Delivered",
		Completed:        "Completed",
		Cancelled:        "Cancelled",
		Rescheduled:      "Rescheduled",
		FailedDelivery:   "FailedDelivery",
	}
}

// getNextStatuses is the single source of truth for legal transitions.
// A status maps to the set of statuses it may move to; statuses absent
// from a set are illegal targets, including "skipping ahead" on the
// forward chain.
func getNextStatuses() map[Status][]Status {
	return map[Status][]Status{
		Pending:          {AddressConfirmed, Cancelled},
		AddressConfirmed: {OrderConfirmed, Cancelled},
		OrderConfirmed:   {Packed, Cancelled},
		Packed:           {ReadyForDelivery},
		ReadyForDelivery: {OutForDelivery},
		OutForDelivery:   {Delivered, Rescheduled, FailedDelivery},
		Delivered:        {Completed},
		Rescheduled:      {ReadyForDelivery},
		FailedDelivery:   {Rescheduled},
		Completed:        {},
		Cancelled:        {},
	}
}

// getForwardRanks returns the position of each forward-chain status in lifecycle
// order. Side branches (Cancelled, Rescheduled, FailedDelivery) carry no rank.
func getForwardRanks() map[Status]int {
	return map[Status]int{
		Pending:          1,
		AddressConfirmed: 2,
		OrderConfirmed:   3,
		Packed:           4,
		ReadyForDelivery: 5,
		OutForDelivery:   6,
		Delivered:        7,
		Completed:        8,
	}
}

// Validate checks if the Status value is valid.
// Unknown (0) and any other out-of-range values are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
// Returns "Unknown" for invalid status values.
// This method implements the fmt.Stringer interface and is safe
// to call on any Status value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// StatusFromString parses a status name from the API surface.
// Matching is exact on the canonical names; "Unknown" is not accepted.
func StatusFromString(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid",
		fmt.Errorf("%q is not a valid status", s))
}

// IsTerminal reports whether no further transitions are possible from this status.
// FailedDelivery is not listed: it keeps a manual-reopen edge to Rescheduled.
func (s Status) IsTerminal() bool {
	return s == Completed || s == Cancelled
}

// IsPreDispatch reports whether the order has not yet left with a courier.
// OutForDelivery is the dispatch point; the delivery-attempt branches
// (Rescheduled, FailedDelivery) are past it. Cancellation approval is only
// eligible inside this window.
func (s Status) IsPreDispatch() bool {
	switch s {
	case Pending, AddressConfirmed, OrderConfirmed, Packed, ReadyForDelivery:
		return true
	default:
		return false
	}
}

// ForwardRank returns the status position on the forward chain and whether the
// status is part of it. Used by the fulfillment log to detect out-of-order entries.
func (s Status) ForwardRank() (int, bool) {
	rank, ok := getForwardRanks()[s]
	return rank, ok
}

// CanTransitionTo checks whether moving from s to target follows a legal edge.
//
// Returns:
//   - nil when the edge exists in the adjacency table
//   - DomainRuleError with rule "illegal_transition" otherwise
//
// Role gating is not decided here; it belongs to Order.AdvanceTo, which knows
// who is asking. This method answers only whether the edge exists.
func (s Status) CanTransitionTo(target Status) error {
	if err := s.Validate(); err != nil {
		return err
	}
	if err := target.Validate(); err != nil {
		return err
	}

	for _, next := range getNextStatuses()[s] {
		if next == target {
			return nil
		}
	}

	return errs.NewDomainRuleError(errs.RuleIllegalTransition,
		fmt.Sprintf("%s cannot move to %s", s.String(), target.String()))
}
