package order

import (
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

// ErrCancellationIsNotConstructed is returned when a Cancellation was not created
// through the NewCancellation factory method.
var ErrCancellationIsNotConstructed = errors.New(
	"Cancellation must be created via NewCancellation constructor")

// CancellationDecision is the state of a cancellation request.
// A request moves pending -> approved or pending -> rejected, once.
type CancellationDecision int

const (
	// DecisionUnknown represents an invalid or undefined decision value.
	DecisionUnknown CancellationDecision = iota

	// DecisionPending means the request awaits an admin decision.
	DecisionPending

	// DecisionApproved means an admin granted the cancellation.
	DecisionApproved

	// DecisionRejected means an admin declined the cancellation.
	DecisionRejected
)

func getDecisionStrings() map[CancellationDecision]string {
	return map[CancellationDecision]string{
		DecisionUnknown:  "Unknown",
		DecisionPending:  "Pending",
		DecisionApproved: "Approved",
		DecisionRejected: "Rejected",
	}
}

// Validate checks if the decision value is valid.
func (d CancellationDecision) Validate() error {
	if d != DecisionPending && d != DecisionApproved && d != DecisionRejected {
		return errs.NewValueIsInvalidErrorWithCause("decision is invalid",
			fmt.Errorf("%d is not a valid cancellation decision", d))
	}
	return nil
}

// String returns the human-readable name of the decision.
func (d CancellationDecision) String() string {
	if str, ok := getDecisionStrings()[d]; ok {
		return str
	}
	return "Unknown"
}

// Cancellation is the sub-record tracking a customer cancellation request and
// the admin decision on it. It exists only once a request has been made; an
// order without one has never been asked to cancel.
type Cancellation struct { //nolint:recvcheck //using for validation
	requestedAt     time.Time
	requestedReason string
	requestedBy     kernel.UUID
	decidedAt       *time.Time
	decidedBy       *kernel.UUID
	decision        CancellationDecision

	guard guard.ConstructorGuard
}

// NewCancellation opens a cancellation request in the pending state.
func NewCancellation(requestedBy kernel.UUID, reason string, requestedAt time.Time) (Cancellation, error) {
	if err := requestedBy.Validate(); err != nil {
		return Cancellation{}, err
	}
	if reason == "" {
		return Cancellation{}, errs.NewValueIsRequiredError("reason")
	}
	if requestedAt.IsZero() {
		return Cancellation{}, errs.NewValueIsRequiredError("requestedAt")
	}

	return Cancellation{
		requestedAt:     requestedAt,
		requestedReason: reason,
		requestedBy:     requestedBy,
		decision:        DecisionPending,
		guard:           guard.NewConstructorGuard(),
	}, nil
}

// RestoreCancellation rebuilds a cancellation sub-record from persistence.
func RestoreCancellation(
	requestedBy kernel.UUID,
	reason string,
	requestedAt time.Time,
	decision CancellationDecision,
	decidedBy *kernel.UUID,
	decidedAt *time.Time,
) (Cancellation, error) {
	cancellation, err := NewCancellation(requestedBy, reason, requestedAt)
	if err != nil {
		return Cancellation{}, err
	}
	if err = decision.Validate(); err != nil {
		return Cancellation{}, err
	}

	cancellation.decision = decision
	cancellation.decidedBy = decidedBy
	cancellation.decidedAt = decidedAt
	return cancellation, nil
}

// Validate ensures the Cancellation was created through a factory method.
func (c Cancellation) Validate() error {
	return c.guard.Validate(ErrCancellationIsNotConstructed)
}

// RequestedAt returns when the customer asked to cancel.
func (c Cancellation) RequestedAt() time.Time {
	return c.requestedAt
}

// RequestedReason returns the customer's stated reason.
func (c Cancellation) RequestedReason() string {
	return c.requestedReason
}

// RequestedBy returns the requesting customer's identifier.
func (c Cancellation) RequestedBy() kernel.UUID {
	return c.requestedBy
}

// DecidedAt returns when an admin decided, or nil while pending.
func (c Cancellation) DecidedAt() *time.Time {
	return c.decidedAt
}

// DecidedBy returns the deciding admin's identifier, or nil while pending.
func (c Cancellation) DecidedBy() *kernel.UUID {
	return c.decidedBy
}

// Decision returns the current decision state.
func (c Cancellation) Decision() CancellationDecision {
	return c.decision
}

// IsPending reports whether the request still awaits a decision.
func (c Cancellation) IsPending() bool {
	return c.decision == DecisionPending
}

// Approve marks a pending request as approved and returns the updated record.
// Approving a non-pending record fails with rule "no_pending_cancellation".
func (c Cancellation) Approve(decidedBy kernel.UUID, decidedAt time.Time) (Cancellation, error) {
	return c.decide(DecisionApproved, decidedBy, decidedAt)
}

// Reject marks a pending request as rejected and returns the updated record.
// Rejecting a non-pending record fails with rule "no_pending_cancellation".
func (c Cancellation) Reject(decidedBy kernel.UUID, decidedAt time.Time) (Cancellation, error) {
	return c.decide(DecisionRejected, decidedBy, decidedAt)
}

func (c Cancellation) decide(
	decision CancellationDecision,
	decidedBy kernel.UUID,
	decidedAt time.Time,
) (Cancellation, error) {
	if err := c.Validate(); err != nil {
		return Cancellation{}, err
	}
	if err := decidedBy.Validate(); err != nil {
		return Cancellation{}, err
	}
	if !c.IsPending() {
		return Cancellation{}, errs.NewDomainRuleError(errs.RuleNoPendingCancellation,
			fmt.Sprintf("cancellation is already %s", c.decision))
	}

	c.decision = decision
	c.decidedBy = &decidedBy
	c.decidedAt = &decidedAt
	return c, nil
}
