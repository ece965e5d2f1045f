// Package order provides domain entities and business logic for the order
// fulfillment lifecycle. It implements the Order aggregate root with
// role-gated state transitions, cancellation handling, cash reconciliation
// and an append-only fulfillment audit trail.
//
// The package includes:
//   - Order: The aggregate root that manages order identity, money, and lifecycle
//   - Status: A state machine with a central adjacency table for legal transitions
//   - Role: The capability of the actor requesting a mutation
//   - PaymentStatus / PaymentMethod: The payment side of the order
//   - LineItem / Pricing: Order positions and the totals invariant
//   - Cancellation: The customer-request / admin-decision sub-record
//   - CashCollection: Cash-on-delivery reconciliation state
//   - FulfillmentLog: The append-only, deduplicating audit trail
//   - Invoice: The write-once invoice reference
//
// Key business rules:
//   - Status follows the forward chain Pending -> ... -> Completed with explicit
//     side branches for cancellation, rescheduling and failed delivery
//   - Only employees and admins advance status; customers only request cancellation
//   - Completion requires the order to be paid or fully cash-collected
//   - total == subtotal + tax + shipping - discount at all times
//   - Cash collected never exceeds the order total
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package order
