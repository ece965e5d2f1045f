package refund

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// ErrRefundTaskIsNotConstructed is returned when using an improperly initialized RefundTask.
var ErrRefundTaskIsNotConstructed = errors.New("RefundTask must be created via NewRefundTask or RestoreRefundTask")

// TaskStatus is the lifecycle state of a refund task.
type TaskStatus int

const (
	// StatusUnknown is the invalid zero value.
	StatusUnknown TaskStatus = iota
	// StatusPending means the wallet credit has not succeeded yet.
	StatusPending
	// StatusCompleted means the wallet credit was confirmed.
	StatusCompleted
)

// Validate checks the status is one of the known values.
func (s TaskStatus) Validate() error {
	if s != StatusPending && s != StatusCompleted {
		return errs.NewValueIsInvalidError("refund task status")
	}
	return nil
}

// String returns the storage representation of the status.
func (s TaskStatus) String() string {
	switch s {
	case StatusPending:
		return "Pending"
	case StatusCompleted:
		return "Completed"
	default:
		return "Unknown"
	}
}

// RefundTask is the durable record of a wallet credit owed to a customer after
// an approved cancellation whose immediate credit failed. A background job
// retries pending tasks until the wallet confirms the credit.
//
// The idempotency key is derived from the order id, so however many times the
// task is retried the wallet applies the credit at most once.
type RefundTask struct {
	// id uniquely identifies the task
	id kernel.UUID
	// orderID is the cancelled order whose payment is refunded
	orderID kernel.UUID
	// customerID receives the wallet credit
	customerID kernel.UUID
	// amount is the full order total in minor units
	amount kernel.Money
	// idempotencyKey is passed to the wallet on every attempt
	idempotencyKey string
	// status is Pending until the wallet confirms the credit
	status TaskStatus
	// attempts counts credit attempts, including the failed immediate one
	attempts int
	// createdAt is when the refund became owed
	createdAt time.Time
	// lastAttemptAt is when the credit was last tried, nil before the first retry
	lastAttemptAt *time.Time
	// isConstructed ensures the task was created via a factory method
	isConstructed bool
}

// NewRefundTask creates a pending refund task for an approved cancellation.
// The attempts counter starts at 1, covering the immediate credit attempt the
// caller makes right after the task commits.
func NewRefundTask(
	orderID kernel.UUID,
	customerID kernel.UUID,
	amount kernel.Money,
	idempotencyKey string,
	now time.Time,
) (*RefundTask, error) {
	if err := errors.Join(
		orderID.Validate(),
		customerID.Validate(),
		amount.Validate(),
	); err != nil {
		return nil, err
	}
	if idempotencyKey == "" {
		return nil, errs.NewValueIsRequiredError("idempotencyKey")
	}
	if now.IsZero() {
		return nil, errs.NewValueIsRequiredError("now")
	}

	return &RefundTask{
		id:             kernel.NewUUID(),
		orderID:        orderID,
		customerID:     customerID,
		amount:         amount,
		idempotencyKey: idempotencyKey,
		status:         StatusPending,
		attempts:       1,
		createdAt:      now,
		isConstructed:  true,
	}, nil
}

// RestoreRefundTask rebuilds a task from persistence.
func RestoreRefundTask(
	id kernel.UUID,
	orderID kernel.UUID,
	customerID kernel.UUID,
	amount kernel.Money,
	idempotencyKey string,
	status TaskStatus,
	attempts int,
	createdAt time.Time,
	lastAttemptAt *time.Time,
) (*RefundTask, error) {
	if err := errors.Join(
		id.Validate(),
		orderID.Validate(),
		customerID.Validate(),
		amount.Validate(),
		status.Validate(),
	); err != nil {
		return nil, err
	}
	if idempotencyKey == "" {
		return nil, errs.NewValueIsRequiredError("idempotencyKey")
	}
	if attempts < 1 {
		return nil, errs.NewValueIsOutOfRangeError("attempts", attempts, 1, int(1<<31))
	}

	return &RefundTask{
		id:             id,
		orderID:        orderID,
		customerID:     customerID,
		amount:         amount,
		idempotencyKey: idempotencyKey,
		status:         status,
		attempts:       attempts,
		createdAt:      createdAt,
		lastAttemptAt:  lastAttemptAt,
		isConstructed:  true,
	}, nil
}

// Validate ensures the task was created through a factory method.
func (t *RefundTask) Validate() error {
	if t == nil || !t.isConstructed {
		return ErrRefundTaskIsNotConstructed
	}
	return nil
}

// IsEqual compares two tasks by their unique identifiers.
func (t *RefundTask) IsEqual(other *RefundTask) bool {
	return other != nil && t.id.IsEqual(other.id)
}

// ID returns the task's unique identifier.
func (t *RefundTask) ID() kernel.UUID {
	return t.id
}

// OrderID returns the cancelled order being refunded.
func (t *RefundTask) OrderID() kernel.UUID {
	return t.orderID
}

// CustomerID returns who receives the credit.
func (t *RefundTask) CustomerID() kernel.UUID {
	return t.customerID
}

// Amount returns the credit amount.
func (t *RefundTask) Amount() kernel.Money {
	return t.amount
}

// IdempotencyKey returns the key passed to the wallet on every attempt.
func (t *RefundTask) IdempotencyKey() string {
	return t.idempotencyKey
}

// Status returns the task's lifecycle state.
func (t *RefundTask) Status() TaskStatus {
	return t.status
}

// Attempts returns how many credit attempts have been made.
func (t *RefundTask) Attempts() int {
	return t.attempts
}

// CreatedAt returns when the refund became owed.
func (t *RefundTask) CreatedAt() time.Time {
	return t.createdAt
}

// LastAttemptAt returns when the credit was last retried, or nil.
func (t *RefundTask) LastAttemptAt() *time.Time {
	return t.lastAttemptAt
}

// IsPending reports whether the credit is still owed.
func (t *RefundTask) IsPending() bool {
	return t.status == StatusPending
}

// RecordAttempt counts one more credit attempt that did not succeed.
func (t *RefundTask) RecordAttempt(now time.Time) error {
	if err := t.Validate(); err != nil {
		return err
	}
	if t.status != StatusPending {
		return errs.NewDomainRuleError(errs.RuleRefundAlreadySettled,
			"refund task is already completed")
	}

	t.attempts++
	t.lastAttemptAt = &now
	return nil
}

// MarkCompleted records the wallet's confirmation of the credit.
// Completing an already completed task is a no-op.
func (t *RefundTask) MarkCompleted(now time.Time) error {
	if err := t.Validate(); err != nil {
		return err
	}
	if t.status == StatusCompleted {
		return nil
	}

	t.status = StatusCompleted
	t.lastAttemptAt = &now
	return nil
}
