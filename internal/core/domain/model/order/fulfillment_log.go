package order

import (
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

// ErrFulfillmentEntryIsNotConstructed is returned when a FulfillmentEntry was not
// created through the NewFulfillmentEntry factory method.
var ErrFulfillmentEntryIsNotConstructed = errors.New(
	"FulfillmentEntry must be created via NewFulfillmentEntry constructor")

// FulfillmentEntry records who moved an order into a lifecycle stage, and when.
// Entries are immutable: the log they live in is append-only and no entry is
// ever edited or removed.
type FulfillmentEntry struct { //nolint:recvcheck //using for validation
	stage      Status
	actorID    kernel.UUID
	occurredAt time.Time
	note       string

	guard guard.ConstructorGuard
}

// NewFulfillmentEntry creates a validated audit entry for a lifecycle checkpoint.
// The note is optional free text (e.g. a delivery remark).
func NewFulfillmentEntry(stage Status, actorID kernel.UUID, occurredAt time.Time, note string) (FulfillmentEntry, error) {
	if err := stage.Validate(); err != nil {
		return FulfillmentEntry{}, err
	}
	if err := actorID.Validate(); err != nil {
		return FulfillmentEntry{}, err
	}
	if occurredAt.IsZero() {
		return FulfillmentEntry{}, errs.NewValueIsRequiredError("occurredAt")
	}

	return FulfillmentEntry{
		stage:      stage,
		actorID:    actorID,
		occurredAt: occurredAt,
		note:       note,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the entry was created through NewFulfillmentEntry.
func (e FulfillmentEntry) Validate() error {
	return e.guard.Validate(ErrFulfillmentEntryIsNotConstructed)
}

// Stage returns the lifecycle stage this entry records.
func (e FulfillmentEntry) Stage() Status {
	return e.stage
}

// ActorID returns the employee or admin who performed the checkpoint.
func (e FulfillmentEntry) ActorID() kernel.UUID {
	return e.actorID
}

// OccurredAt returns when the checkpoint happened.
func (e FulfillmentEntry) OccurredAt() time.Time {
	return e.occurredAt
}

// Note returns the optional free-text remark.
func (e FulfillmentEntry) Note() string {
	return e.note
}

// isSameCheckpoint reports whether two entries describe the identical event.
// Used for idempotent replay protection against retried writes.
func (e FulfillmentEntry) isSameCheckpoint(other FulfillmentEntry) bool {
	return e.stage == other.stage &&
		e.actorID.IsEqual(other.actorID) &&
		e.occurredAt.Equal(other.occurredAt)
}

// FulfillmentLog is the append-only audit trail of lifecycle checkpoints.
//
// Invariants:
//   - forward-chain stages appear in non-decreasing lifecycle order;
//     a Rescheduled entry resets the high-water mark so the delivery
//     retry loop may legitimately re-enter earlier stages
//   - an entry identical in (stage, actor, occurredAt) to an existing one
//     is deduplicated rather than appended twice
//   - entries are never edited or removed
//
// FulfillmentLog has value semantics: Append returns a new log.
type FulfillmentLog struct {
	entries []FulfillmentEntry
}

// NewFulfillmentLog creates an empty audit trail.
func NewFulfillmentLog() FulfillmentLog {
	return FulfillmentLog{}
}

// RestoreFulfillmentLog rebuilds a log from persisted entries without
// re-checking ordering: the stored sequence is the historical truth.
func RestoreFulfillmentLog(entries []FulfillmentEntry) (FulfillmentLog, error) {
	for _, e := range entries {
		if err := e.Validate(); err != nil {
			return FulfillmentLog{}, err
		}
	}
	copied := make([]FulfillmentEntry, len(entries))
	copy(copied, entries)
	return FulfillmentLog{entries: copied}, nil
}

// Entries returns a copy of the recorded entries in append order.
func (l FulfillmentLog) Entries() []FulfillmentEntry {
	copied := make([]FulfillmentEntry, len(l.entries))
	copy(copied, l.entries)
	return copied
}

// Len returns the number of recorded entries.
func (l FulfillmentLog) Len() int {
	return len(l.entries)
}

// Last returns the most recent entry, if any.
func (l FulfillmentLog) Last() (FulfillmentEntry, bool) {
	if len(l.entries) == 0 {
		return FulfillmentEntry{}, false
	}
	return l.entries[len(l.entries)-1], true
}

// Append adds an entry and returns the extended log.
// Appending an entry identical to one already recorded returns the log
// unchanged, which makes retried writes safe to replay.
func (l FulfillmentLog) Append(entry FulfillmentEntry) (FulfillmentLog, error) {
	if err := entry.Validate(); err != nil {
		return FulfillmentLog{}, err
	}

	for _, existing := range l.entries {
		if existing.isSameCheckpoint(entry) {
			return l, nil
		}
	}

	if rank, onChain := entry.stage.ForwardRank(); onChain {
		if rank < l.highWaterRank() {
			return FulfillmentLog{}, errs.NewDomainRuleError(errs.RuleIllegalTransition,
				fmt.Sprintf("stage %s is out of lifecycle order", entry.stage))
		}
	}

	extended := make([]FulfillmentEntry, len(l.entries), len(l.entries)+1)
	copy(extended, l.entries)
	return FulfillmentLog{entries: append(extended, entry)}, nil
}

// highWaterRank returns the rank new forward-chain entries must not fall below.
// A Rescheduled entry rewinds the mark to just before ReadyForDelivery so the
// retry loop may record ReadyForDelivery and OutForDelivery again.
func (l FulfillmentLog) highWaterRank() int {
	mark := 0
	for _, e := range l.entries {
		if e.stage == Rescheduled {
			if rank, ok := ReadyForDelivery.ForwardRank(); ok {
				mark = rank - 1
			}
			continue
		}
		if rank, ok := e.stage.ForwardRank(); ok && rank > mark {
			mark = rank
		}
	}
	return mark
}
