package order

import (
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// the NewOrder or RestoreOrder factory methods. This ensures all orders are properly validated.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")
)

// Order is the aggregate root governing the fulfillment lifecycle of a commerce
// order: payment, confirmation, packing, dispatch, delivery and the terminal
// states, plus the cancellation and cash-reconciliation sub-records.
//
// Order follows these invariants:
//   - Status moves only along the edges of the Status adjacency table
//   - total == subtotal + tax + shipping - discount, all non-negative
//   - Cash collected never exceeds the order total
//   - The fulfillment log is append-only and deduplicates replayed checkpoints
//   - The invoice reference is write-once
//   - Only staff roles advance status; customers may only request cancellation
//
// The version field is the optimistic-concurrency token: the repository
// performs a compare-and-swap on it and increments it on every committed
// mutation. The aggregate itself never changes the version; a stale version
// surfaces as a VersionConflictError at the persistence boundary.
type Order struct {
	// id is the unique identifier for the order
	id kernel.UUID

	// version is the optimistic-concurrency token as loaded from storage
	version int64

	// customerID identifies the customer who placed the order
	customerID kernel.UUID

	// status is the current lifecycle state
	status Status

	// paymentStatus tracks the payment side, set by the webhook or cash reconciliation
	paymentStatus PaymentStatus

	// paymentMethod is fixed at creation
	paymentMethod PaymentMethod

	// lastPaymentEventID deduplicates replayed payment webhook deliveries
	lastPaymentEventID string

	// pricing holds the monetary breakdown and its invariant
	pricing Pricing

	// lineItems is the ordered sequence of order positions
	lineItems []LineItem

	// shippingAddress is mutable until the order is packed
	shippingAddress kernel.Address

	// cancellation is present only once a cancellation has been requested
	cancellation *Cancellation

	// cashCollection is present only once cash has been collected (COD orders)
	cashCollection *CashCollection

	// fulfillmentLog is the append-only audit trail of lifecycle checkpoints
	fulfillmentLog FulfillmentLog

	// invoice is the write-once reference returned by the invoice collaborator
	invoice *Invoice

	// isConstructed ensures the order was created via a factory method
	isConstructed bool
}

// NewOrder creates an order in Pending status at version 1.
//
// Line items must be non-empty; the subtotal and total are computed from them.
// Cash-on-delivery orders start with payment status CashOnDelivery, online
// orders with Pending.
func NewOrder(
	id kernel.UUID,
	customerID kernel.UUID,
	lineItems []LineItem,
	shippingAddress kernel.Address,
	paymentMethod PaymentMethod,
	tax, shipping, discount kernel.Money,
) (*Order, error) {
	if err := errors.Join(
		id.Validate(),
		customerID.Validate(),
		shippingAddress.Validate(),
		paymentMethod.Validate(),
	); err != nil {
		return nil, err
	}

	subtotal, err := sumLineItems(lineItems)
	if err != nil {
		return nil, err
	}
	pricing, err := NewPricing(subtotal, tax, shipping, discount)
	if err != nil {
		return nil, err
	}

	paymentStatus := PaymentPending
	if paymentMethod == MethodCashOnDelivery {
		paymentStatus = PaymentCashOnDelivery
	}

	items := make([]LineItem, len(lineItems))
	copy(items, lineItems)

	return &Order{
		id:              id,
		version:         1,
		customerID:      customerID,
		status:          Pending,
		paymentStatus:   paymentStatus,
		paymentMethod:   paymentMethod,
		pricing:         pricing,
		lineItems:       items,
		shippingAddress: shippingAddress,
		fulfillmentLog:  NewFulfillmentLog(),
		isConstructed:   true,
	}, nil
}

// RestoreOrder rebuilds an order from persistence without replaying its history.
// All components are revalidated so corrupted rows cannot re-enter the domain.
func RestoreOrder(
	id kernel.UUID,
	version int64,
	customerID kernel.UUID,
	status Status,
	paymentStatus PaymentStatus,
	paymentMethod PaymentMethod,
	lastPaymentEventID string,
	pricing Pricing,
	lineItems []LineItem,
	shippingAddress kernel.Address,
	cancellation *Cancellation,
	cashCollection *CashCollection,
	fulfillmentLog FulfillmentLog,
	invoice *Invoice,
) (*Order, error) {
	if err := errors.Join(
		id.Validate(),
		customerID.Validate(),
		status.Validate(),
		paymentStatus.Validate(),
		paymentMethod.Validate(),
		pricing.Validate(),
		shippingAddress.Validate(),
	); err != nil {
		return nil, err
	}
	if version < 1 {
		return nil, errs.NewVersionIsInvalidErrorWithCause("version",
			fmt.Errorf("%d is not a positive version", version))
	}
	if len(lineItems) == 0 {
		return nil, errs.NewValueIsRequiredError("lineItems")
	}
	for _, item := range lineItems {
		if err := item.Validate(); err != nil {
			return nil, err
		}
	}
	if cancellation != nil {
		if err := cancellation.Validate(); err != nil {
			return nil, err
		}
	}
	if cashCollection != nil {
		if err := cashCollection.Validate(); err != nil {
			return nil, err
		}
	}
	if invoice != nil {
		if err := invoice.Validate(); err != nil {
			return nil, err
		}
	}

	items := make([]LineItem, len(lineItems))
	copy(items, lineItems)

	return &Order{
		id:                 id,
		version:            version,
		customerID:         customerID,
		status:             status,
		paymentStatus:      paymentStatus,
		paymentMethod:      paymentMethod,
		lastPaymentEventID: lastPaymentEventID,
		pricing:            pricing,
		lineItems:          items,
		shippingAddress:    shippingAddress,
		cancellation:       cancellation,
		cashCollection:     cashCollection,
		fulfillmentLog:     fulfillmentLog,
		invoice:            invoice,
		isConstructed:      true,
	}, nil
}

// Validate ensures the Order instance was properly constructed through a factory method.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// Version returns the optimistic-concurrency token as loaded from storage.
func (o *Order) Version() int64 {
	return o.version
}

// CustomerID returns the identifier of the customer who placed the order.
func (o *Order) CustomerID() kernel.UUID {
	return o.customerID
}

// Status returns the current lifecycle state.
func (o *Order) Status() Status {
	return o.status
}

// PaymentStatus returns the current payment state.
func (o *Order) PaymentStatus() PaymentStatus {
	return o.paymentStatus
}

// PaymentMethod returns how the order is paid.
func (o *Order) PaymentMethod() PaymentMethod {
	return o.paymentMethod
}

// LastPaymentEventID returns the delivery id of the most recently applied
// payment webhook event, used for idempotent replay.
func (o *Order) LastPaymentEventID() string {
	return o.lastPaymentEventID
}

// Pricing returns the monetary breakdown of the order.
func (o *Order) Pricing() Pricing {
	return o.pricing
}

// LineItems returns a copy of the order's line items.
func (o *Order) LineItems() []LineItem {
	items := make([]LineItem, len(o.lineItems))
	copy(items, o.lineItems)
	return items
}

// ShippingAddress returns the current shipping destination.
func (o *Order) ShippingAddress() kernel.Address {
	return o.shippingAddress
}

// Cancellation returns the cancellation sub-record, or nil if none was ever requested.
func (o *Order) Cancellation() *Cancellation {
	return o.cancellation
}

// CashCollection returns the cash collection record, or nil if no cash was collected.
func (o *Order) CashCollection() *CashCollection {
	return o.cashCollection
}

// FulfillmentLog returns the append-only audit trail.
func (o *Order) FulfillmentLog() FulfillmentLog {
	return o.fulfillmentLog
}

// Invoice returns the attached invoice reference, or nil if not yet invoiced.
func (o *Order) Invoice() *Invoice {
	return o.invoice
}

// AdvanceTo moves the order along one edge of the lifecycle state machine and
// appends the matching fulfillment checkpoint atomically with the status change.
//
// Rules enforced here:
//   - only staff roles advance status; a customer gets a PermissionDeniedError
//   - direct transition into Cancelled additionally requires the admin role
//     (the pre-packed cancellation window; later stages go through approval)
//   - the edge must exist in the adjacency table
//   - Completed requires the order to be paid, or fully cash-collected for COD
//
// A pending cancellation request does not block advancement: operational staff
// keep working the queue until an admin decides.
func (o *Order) AdvanceTo(target Status, actorID kernel.UUID, role Role, now time.Time) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if err := actorID.Validate(); err != nil {
		return err
	}
	if err := role.Validate(); err != nil {
		return err
	}

	if !role.IsStaff() {
		return errs.NewPermissionDeniedError("advance order status", role.String())
	}
	if target == Cancelled && role != RoleAdmin {
		return errs.NewPermissionDeniedError("cancel order directly", role.String())
	}

	if err := o.status.CanTransitionTo(target); err != nil {
		return err
	}

	if target == Completed && !o.isSettled() {
		return errs.NewDomainRuleError(errs.RuleCompletionUnpaid,
			fmt.Sprintf("order %s is not fully paid", o.id))
	}

	return o.moveTo(target, actorID, now, "")
}

// RequestCancellation opens a customer cancellation request.
//
// Allowed only while the order is Pending or AddressConfirmed and no request is
// already pending; later stages must go through an admin. The order status is
// untouched: the order stays visibly active until decided.
func (o *Order) RequestCancellation(requestedBy kernel.UUID, reason string, now time.Time) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if err := requestedBy.Validate(); err != nil {
		return err
	}
	if !requestedBy.IsEqual(o.customerID) {
		return errs.NewPermissionDeniedError("request cancellation of another customer's order", RoleCustomer.String())
	}

	if o.status != Pending && o.status != AddressConfirmed {
		return errs.NewDomainRuleError(errs.RuleCancellationNotEligible,
			fmt.Sprintf("order in status %s cannot be cancelled by request", o.status))
	}
	if o.cancellation != nil && o.cancellation.IsPending() {
		return errs.NewDomainRuleError(errs.RuleCancellationNotEligible,
			"a cancellation request is already pending")
	}

	cancellation, err := NewCancellation(requestedBy, reason, now)
	if err != nil {
		return err
	}

	o.cancellation = &cancellation
	return nil
}

// ApproveCancellation grants a pending cancellation request and forces the
// order into Cancelled, bypassing the pre-packed window of the adjacency table:
// approval is the sanctioned escape valve for the later pre-dispatch stages.
// Once the order is out with a courier the request can only be rejected.
//
// Returns refundDue=true when the order was paid online, in which case the
// caller owes the customer a wallet credit of the order total. The payment
// status flips to Refunded immediately; the credit itself is a post-commit
// effect keyed by the order id so replays cannot double-credit.
func (o *Order) ApproveCancellation(decidedBy kernel.UUID, now time.Time) (refundDue bool, err error) {
	if err = o.Validate(); err != nil {
		return false, err
	}
	if o.cancellation == nil {
		return false, errs.NewDomainRuleError(errs.RuleNoPendingCancellation,
			"no cancellation was requested")
	}
	if !o.status.IsPreDispatch() {
		return false, errs.NewDomainRuleError(errs.RuleCancellationNotEligible,
			fmt.Sprintf("order in status %s can no longer be cancelled", o.status))
	}

	decided, err := o.cancellation.Approve(decidedBy, now)
	if err != nil {
		return false, err
	}

	refundDue = o.paymentStatus == PaymentPaid

	if err = o.moveTo(Cancelled, decidedBy, now, "cancellation approved"); err != nil {
		return false, err
	}

	o.cancellation = &decided
	if refundDue {
		o.paymentStatus = PaymentRefunded
	}
	return refundDue, nil
}

// RejectCancellation declines a pending cancellation request.
// The order continues unaffected.
func (o *Order) RejectCancellation(decidedBy kernel.UUID, now time.Time) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if o.cancellation == nil {
		return errs.NewDomainRuleError(errs.RuleNoPendingCancellation,
			"no cancellation was requested")
	}

	decided, err := o.cancellation.Reject(decidedBy, now)
	if err != nil {
		return err
	}

	o.cancellation = &decided
	return nil
}

// RecordCashCollection accumulates cash collected by the delivery agent.
//
// Rules:
//   - only valid for cash-on-delivery orders
//   - the cumulative amount must not exceed the order total ("overcollection")
//   - once fully collected, further calls are idempotent no-ops, protecting
//     against duplicate delivery-app submissions
//
// When the collection reaches the order total the payment status flips to Paid.
func (o *Order) RecordCashCollection(amount kernel.Money, collectedBy kernel.UUID, now time.Time) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if err := amount.Validate(); err != nil {
		return err
	}
	if err := collectedBy.Validate(); err != nil {
		return err
	}

	if o.paymentMethod != MethodCashOnDelivery {
		return errs.NewDomainRuleError(errs.RuleCashNotApplicable,
			fmt.Sprintf("order is paid via %s", o.paymentMethod))
	}

	total := o.pricing.Total()

	if o.cashCollection != nil && o.cashCollection.CollectedAmount().IsGreaterOrEqual(total) {
		return nil
	}

	var updated CashCollection
	var err error
	if o.cashCollection == nil {
		updated, err = NewCashCollection(amount, collectedBy, now)
	} else {
		updated, err = o.cashCollection.accumulate(amount, collectedBy, now)
	}
	if err != nil {
		return err
	}

	if !total.IsGreaterOrEqual(updated.CollectedAmount()) {
		return errs.NewDomainRuleError(errs.RuleOvercollection,
			fmt.Sprintf("collecting %s would exceed order total %s", amount, total))
	}

	o.cashCollection = &updated
	if updated.CollectedAmount().IsEqual(total) {
		o.paymentStatus = PaymentPaid
	}
	return nil
}

// EditLineItems replaces the line item sequence and recomputes subtotal and
// total, keeping tax, shipping and discount unchanged. Only admins may edit,
// and only while the order is Pending, AddressConfirmed or OrderConfirmed.
func (o *Order) EditLineItems(items []LineItem, role Role) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if role != RoleAdmin {
		return errs.NewPermissionDeniedError("edit line items", role.String())
	}
	if o.status != Pending && o.status != AddressConfirmed && o.status != OrderConfirmed {
		return errs.NewDomainRuleError(errs.RuleLineItemsLocked,
			fmt.Sprintf("line items can no longer be edited in status %s", o.status))
	}

	subtotal, err := sumLineItems(items)
	if err != nil {
		return err
	}
	pricing, err := o.pricing.WithSubtotal(subtotal)
	if err != nil {
		return err
	}

	copied := make([]LineItem, len(items))
	copy(copied, items)
	o.lineItems = copied
	o.pricing = pricing
	return nil
}

// UpdateShippingAddress replaces the shipping destination.
// The address is frozen once the order has been packed.
func (o *Order) UpdateShippingAddress(address kernel.Address) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if err := address.Validate(); err != nil {
		return err
	}

	if rank, ok := o.status.ForwardRank(); !ok || rank >= mustRank(Packed) {
		return errs.NewDomainRuleError(errs.RuleAddressLocked,
			fmt.Sprintf("shipping address is frozen in status %s", o.status))
	}

	o.shippingAddress = address
	return nil
}

// ApplyPaymentResult consumes one payment-webhook delivery.
//
// The eventID is the webhook's delivery identifier; a replayed delivery is a
// no-op. Returns becamePaid=true when this event flipped the order to Paid,
// which is the caller's cue to generate an invoice, and changed=false when the
// event was a duplicate and nothing needs committing.
func (o *Order) ApplyPaymentResult(eventID string, succeeded bool) (becamePaid bool, changed bool, err error) {
	if err = o.Validate(); err != nil {
		return false, false, err
	}
	if eventID == "" {
		return false, false, errs.NewValueIsRequiredError("eventID")
	}

	if o.lastPaymentEventID == eventID {
		return false, false, nil
	}

	if o.paymentMethod != MethodOnline {
		return false, false, errs.NewDomainRuleError(errs.RuleCashNotApplicable,
			"payment webhooks apply only to online orders")
	}

	o.lastPaymentEventID = eventID
	if succeeded {
		becamePaid = o.paymentStatus != PaymentPaid
		o.paymentStatus = PaymentPaid
	} else if o.paymentStatus == PaymentPending {
		o.paymentStatus = PaymentFailed
	}

	return becamePaid, true, nil
}

// AttachInvoice stores the invoice reference returned by the invoice
// collaborator. The reference is write-once: re-attaching the same invoice id
// is a no-op, attaching a different one fails.
func (o *Order) AttachInvoice(invoice Invoice) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if err := invoice.Validate(); err != nil {
		return err
	}

	if o.invoice != nil {
		if o.invoice.ID() == invoice.ID() {
			return nil
		}
		return errs.NewDomainRuleError(errs.RuleInvoiceAlreadyAttached,
			fmt.Sprintf("invoice %s is already attached", o.invoice.ID()))
	}

	o.invoice = &invoice
	return nil
}

// isSettled reports whether the money side of the order allows completion:
// paid outright, or fully cash-collected for cash-on-delivery orders.
func (o *Order) isSettled() bool {
	if o.paymentStatus == PaymentPaid {
		return true
	}
	if o.paymentMethod == MethodCashOnDelivery && o.cashCollection != nil {
		return o.cashCollection.CollectedAmount().IsGreaterOrEqual(o.pricing.Total())
	}
	return false
}

// moveTo performs the status write together with its audit entry.
// Both succeed or neither does.
func (o *Order) moveTo(target Status, actorID kernel.UUID, now time.Time, note string) error {
	entry, err := NewFulfillmentEntry(target, actorID, now, note)
	if err != nil {
		return err
	}
	extended, err := o.fulfillmentLog.Append(entry)
	if err != nil {
		return err
	}

	o.status = target
	o.fulfillmentLog = extended
	return nil
}

// sumLineItems computes the subtotal of a non-empty line item sequence.
func sumLineItems(items []LineItem) (kernel.Money, error) {
	if len(items) == 0 {
		return kernel.Money{}, errs.NewValueIsRequiredError("lineItems")
	}

	subtotal, err := kernel.NewMoney(0)
	if err != nil {
		return kernel.Money{}, err
	}
	for _, item := range items {
		if err = item.Validate(); err != nil {
			return kernel.Money{}, err
		}
		itemSubtotal, subErr := item.Subtotal()
		if subErr != nil {
			return kernel.Money{}, subErr
		}
		subtotal, err = subtotal.Add(itemSubtotal)
		if err != nil {
			return kernel.Money{}, err
		}
	}
	return subtotal, nil
}

// mustRank returns the forward rank of a status known to be on the chain.
func mustRank(s Status) int {
	rank, _ := s.ForwardRank()
	return rank
}
