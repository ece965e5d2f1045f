package order_test

import (
	"testing"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func money(t *testing.T, amount int64) kernel.Money {
	t.Helper()
	m, err := kernel.NewMoney(amount)
	require.NoError(t, err)
	return m
}

func testAddress(t *testing.T) kernel.Address {
	t.Helper()
	addr, err := kernel.NewAddress("12 Main St", "Springfield", "62704", "US")
	require.NoError(t, err)
	return addr
}

func testLineItems(t *testing.T) []order.LineItem {
	t.Helper()
	item, err := order.NewLineItem(kernel.NewUUID(), 2, money(t, 30))
	require.NoError(t, err)
	return []order.LineItem{item}
}

// newTestOrder builds an order with subtotal 60, tax 30, shipping 20,
// discount 10 and therefore total 100.
func newTestOrder(t *testing.T, method order.PaymentMethod) *order.Order {
	t.Helper()
	o, err := order.NewOrder(
		kernel.NewUUID(),
		kernel.NewUUID(),
		testLineItems(t),
		testAddress(t),
		method,
		money(t, 30),
		money(t, 20),
		money(t, 10),
	)
	require.NoError(t, err)
	return o
}

// advanceTo walks the order along the forward chain to the target status.
func advanceTo(t *testing.T, o *order.Order, target order.Status) {
	t.Helper()
	chain := []order.Status{
		order.AddressConfirmed, order.OrderConfirmed, order.Packed,
		order.ReadyForDelivery, order.OutForDelivery, order.Delivered,
	}
	actor := kernel.NewUUID()
	for _, step := range chain {
		require.NoError(t, o.AdvanceTo(step, actor, order.RoleEmployee, time.Now()))
		if step == target {
			return
		}
	}
	t.Fatalf("cannot advance to %s via the forward chain", target)
}

func TestNewOrder(t *testing.T) {
	t.Run("should create pending order with computed totals", func(t *testing.T) {
		o := newTestOrder(t, order.MethodOnline)

		assert.Equal(t, order.Pending, o.Status())
		assert.Equal(t, order.PaymentPending, o.PaymentStatus())
		assert.Equal(t, int64(1), o.Version())
		assert.Equal(t, int64(60), o.Pricing().Subtotal().Amount())
		assert.Equal(t, int64(100), o.Pricing().Total().Amount())
		assert.Equal(t, 0, o.FulfillmentLog().Len())
		assert.Nil(t, o.Cancellation())
		assert.Nil(t, o.CashCollection())
		assert.Nil(t, o.Invoice())
	})

	t.Run("should start COD orders in cash-on-delivery payment status", func(t *testing.T) {
		o := newTestOrder(t, order.MethodCashOnDelivery)
		assert.Equal(t, order.PaymentCashOnDelivery, o.PaymentStatus())
	})

	t.Run("should reject empty line items", func(t *testing.T) {
		_, err := order.NewOrder(
			kernel.NewUUID(), kernel.NewUUID(), nil, testAddress(t),
			order.MethodOnline, money(t, 0), money(t, 0), money(t, 0),
		)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should reject a discount larger than the gross amount", func(t *testing.T) {
		_, err := order.NewOrder(
			kernel.NewUUID(), kernel.NewUUID(), testLineItems(t), testAddress(t),
			order.MethodOnline, money(t, 0), money(t, 0), money(t, 1000),
		)
		require.Error(t, err)
	})

	t.Run("should reject direct struct instantiation", func(t *testing.T) {
		var o order.Order
		require.ErrorIs(t, o.Validate(), order.ErrOrderIsNotConstructed)
	})
}

func TestOrder_AdvanceTo(t *testing.T) {
	t.Run("employee advances along the forward chain and the log follows", func(t *testing.T) {
		o := newTestOrder(t, order.MethodOnline)
		actor := kernel.NewUUID()

		require.NoError(t, o.AdvanceTo(order.AddressConfirmed, actor, order.RoleEmployee, time.Now()))
		require.NoError(t, o.AdvanceTo(order.OrderConfirmed, actor, order.RoleEmployee, time.Now()))

		assert.Equal(t, order.OrderConfirmed, o.Status())
		entries := o.FulfillmentLog().Entries()
		require.Len(t, entries, 2)
		assert.Equal(t, order.AddressConfirmed, entries[0].Stage())
		assert.Equal(t, order.OrderConfirmed, entries[1].Stage())
		assert.True(t, entries[1].ActorID().IsEqual(actor))
	})

	t.Run("customer may not advance status", func(t *testing.T) {
		o := newTestOrder(t, order.MethodOnline)

		err := o.AdvanceTo(order.AddressConfirmed, o.CustomerID(), order.RoleCustomer, time.Now())

		require.ErrorIs(t, err, errs.ErrPermissionDenied)
		assert.Equal(t, order.Pending, o.Status())
		assert.Equal(t, 0, o.FulfillmentLog().Len())
	})

	t.Run("illegal edge leaves status and log unchanged", func(t *testing.T) {
		o := newTestOrder(t, order.MethodOnline)

		err := o.AdvanceTo(order.Packed, kernel.NewUUID(), order.RoleEmployee, time.Now())

		require.ErrorIs(t, err, errs.ErrDomainRuleViolated)
		var ruleErr *errs.DomainRuleError
		require.ErrorAs(t, err, &ruleErr)
		assert.Equal(t, errs.RuleIllegalTransition, ruleErr.Rule)
		assert.Equal(t, order.Pending, o.Status())
		assert.Equal(t, 0, o.FulfillmentLog().Len())
	})

	t.Run("only admin cancels directly", func(t *testing.T) {
		o := newTestOrder(t, order.MethodOnline)

		err := o.AdvanceTo(order.Cancelled, kernel.NewUUID(), order.RoleEmployee, time.Now())
		require.ErrorIs(t, err, errs.ErrPermissionDenied)

		require.NoError(t, o.AdvanceTo(order.Cancelled, kernel.NewUUID(), order.RoleAdmin, time.Now()))
		assert.Equal(t, order.Cancelled, o.Status())
	})

	t.Run("admin cannot cancel directly once packed", func(t *testing.T) {
		o := newTestOrder(t, order.MethodOnline)
		advanceTo(t, o, order.Packed)

		err := o.AdvanceTo(order.Cancelled, kernel.NewUUID(), order.RoleAdmin, time.Now())

		require.ErrorIs(t, err, errs.ErrDomainRuleViolated)
		assert.Equal(t, order.Packed, o.Status())
	})

	t.Run("completion requires payment", func(t *testing.T) {
		o := newTestOrder(t, order.MethodOnline)
		advanceTo(t, o, order.Delivered)

		err := o.AdvanceTo(order.Completed, kernel.NewUUID(), order.RoleEmployee, time.Now())

		require.ErrorIs(t, err, errs.ErrDomainRuleViolated)
		var ruleErr *errs.DomainRuleError
		require.ErrorAs(t, err, &ruleErr)
		assert.Equal(t, errs.RuleCompletionUnpaid, ruleErr.Rule)
		assert.Equal(t, order.Delivered, o.Status())
	})

	t.Run("completion succeeds once paid", func(t *testing.T) {
		o := newTestOrder(t, order.MethodOnline)
		_, _, err := o.ApplyPaymentResult("evt-1", true)
		require.NoError(t, err)
		advanceTo(t, o, order.Delivered)

		require.NoError(t, o.AdvanceTo(order.Completed, kernel.NewUUID(), order.RoleEmployee, time.Now()))
		assert.Equal(t, order.Completed, o.Status())
	})

	t.Run("delivery retry loop", func(t *testing.T) {
		o := newTestOrder(t, order.MethodOnline)
		advanceTo(t, o, order.OutForDelivery)
		actor := kernel.NewUUID()

		require.NoError(t, o.AdvanceTo(order.Rescheduled, actor, order.RoleEmployee, time.Now()))
		require.NoError(t, o.AdvanceTo(order.ReadyForDelivery, actor, order.RoleEmployee, time.Now()))
		require.NoError(t, o.AdvanceTo(order.OutForDelivery, actor, order.RoleEmployee, time.Now()))
		require.NoError(t, o.AdvanceTo(order.Delivered, actor, order.RoleEmployee, time.Now()))

		assert.Equal(t, order.Delivered, o.Status())
	})
}

func TestOrder_RequestCancellation(t *testing.T) {
	t.Run("customer opens a pending request and status is untouched", func(t *testing.T) {
		o := newTestOrder(t, order.MethodOnline)

		require.NoError(t, o.RequestCancellation(o.CustomerID(), "changed mind", time.Now()))

		require.NotNil(t, o.Cancellation())
		assert.Equal(t, order.DecisionPending, o.Cancellation().Decision())
		assert.Equal(t, "changed mind", o.Cancellation().RequestedReason())
		assert.Equal(t, order.Pending, o.Status())
	})

	t.Run("another customer may not request", func(t *testing.T) {
		o := newTestOrder(t, order.MethodOnline)
		err := o.RequestCancellation(kernel.NewUUID(), "not mine", time.Now())
		require.ErrorIs(t, err, errs.ErrPermissionDenied)
	})

	t.Run("request window closes after address confirmation", func(t *testing.T) {
		o := newTestOrder(t, order.MethodOnline)
		advanceTo(t, o, order.OrderConfirmed)

		err := o.RequestCancellation(o.CustomerID(), "too late", time.Now())

		var ruleErr *errs.DomainRuleError
		require.ErrorAs(t, err, &ruleErr)
		assert.Equal(t, errs.RuleCancellationNotEligible, ruleErr.Rule)
	})

	t.Run("packed orders cannot be requested", func(t *testing.T) {
		o := newTestOrder(t, order.MethodOnline)
		advanceTo(t, o, order.Packed)

		err := o.RequestCancellation(o.CustomerID(), "way too late", time.Now())

		var ruleErr *errs.DomainRuleError
		require.ErrorAs(t, err, &ruleErr)
		assert.Equal(t, errs.RuleCancellationNotEligible, ruleErr.Rule)
	})

	t.Run("a second pending request is rejected", func(t *testing.T) {
		o := newTestOrder(t, order.MethodOnline)
		require.NoError(t, o.RequestCancellation(o.CustomerID(), "changed mind", time.Now()))

		err := o.RequestCancellation(o.CustomerID(), "again", time.Now())
		require.ErrorIs(t, err, errs.ErrDomainRuleViolated)
	})

	t.Run("staff keep advancing while a request is pending", func(t *testing.T) {
		o := newTestOrder(t, order.MethodOnline)
		require.NoError(t, o.RequestCancellation(o.CustomerID(), "changed mind", time.Now()))

		require.NoError(t, o.AdvanceTo(order.AddressConfirmed, kernel.NewUUID(), order.RoleEmployee, time.Now()))
		require.NoError(t, o.AdvanceTo(order.OrderConfirmed, kernel.NewUUID(), order.RoleEmployee, time.Now()))

		assert.Equal(t, order.OrderConfirmed, o.Status())
		assert.True(t, o.Cancellation().IsPending())
	})
}

func TestOrder_ApproveCancellation(t *testing.T) {
	t.Run("approval cancels the order and flags a refund for paid orders", func(t *testing.T) {
		o := newTestOrder(t, order.MethodOnline)
		_, _, err := o.ApplyPaymentResult("evt-1", true)
		require.NoError(t, err)
		require.NoError(t, o.RequestCancellation(o.CustomerID(), "changed mind", time.Now()))
		advanceTo(t, o, order.OrderConfirmed)

		admin := kernel.NewUUID()
		refundDue, err := o.ApproveCancellation(admin, time.Now())

		require.NoError(t, err)
		assert.True(t, refundDue)
		assert.Equal(t, order.Cancelled, o.Status())
		assert.Equal(t, order.PaymentRefunded, o.PaymentStatus())
		assert.Equal(t, order.DecisionApproved, o.Cancellation().Decision())
		require.NotNil(t, o.Cancellation().DecidedBy())
		assert.True(t, o.Cancellation().DecidedBy().IsEqual(admin))
	})

	t.Run("approval works past the direct-cancel window", func(t *testing.T) {
		o := newTestOrder(t, order.MethodOnline)
		require.NoError(t, o.RequestCancellation(o.CustomerID(), "changed mind", time.Now()))
		advanceTo(t, o, order.Packed)

		refundDue, err := o.ApproveCancellation(kernel.NewUUID(), time.Now())

		require.NoError(t, err)
		assert.False(t, refundDue)
		assert.Equal(t, order.Cancelled, o.Status())
	})

	t.Run("unpaid orders owe no refund", func(t *testing.T) {
		o := newTestOrder(t, order.MethodOnline)
		require.NoError(t, o.RequestCancellation(o.CustomerID(), "changed mind", time.Now()))

		refundDue, err := o.ApproveCancellation(kernel.NewUUID(), time.Now())

		require.NoError(t, err)
		assert.False(t, refundDue)
	})

	t.Run("second approval is rejected, not double-credited", func(t *testing.T) {
		o := newTestOrder(t, order.MethodOnline)
		_, _, err := o.ApplyPaymentResult("evt-1", true)
		require.NoError(t, err)
		require.NoError(t, o.RequestCancellation(o.CustomerID(), "changed mind", time.Now()))

		refundDue, err := o.ApproveCancellation(kernel.NewUUID(), time.Now())
		require.NoError(t, err)
		assert.True(t, refundDue)

		refundDue, err = o.ApproveCancellation(kernel.NewUUID(), time.Now())
		require.ErrorIs(t, err, errs.ErrDomainRuleViolated)
		assert.False(t, refundDue)
		assert.Equal(t, order.Cancelled, o.Status())
	})

	t.Run("approval without a request is rejected", func(t *testing.T) {
		o := newTestOrder(t, order.MethodOnline)

		_, err := o.ApproveCancellation(kernel.NewUUID(), time.Now())

		var ruleErr *errs.DomainRuleError
		require.ErrorAs(t, err, &ruleErr)
		assert.Equal(t, errs.RuleNoPendingCancellation, ruleErr.Rule)
	})

	t.Run("delivered orders can no longer be cancelled", func(t *testing.T) {
		o := newTestOrder(t, order.MethodOnline)
		require.NoError(t, o.RequestCancellation(o.CustomerID(), "changed mind", time.Now()))
		advanceTo(t, o, order.Delivered)

		_, err := o.ApproveCancellation(kernel.NewUUID(), time.Now())
		require.ErrorIs(t, err, errs.ErrDomainRuleViolated)
		assert.Equal(t, order.Delivered, o.Status())
	})

	t.Run("dispatched orders can no longer be cancelled", func(t *testing.T) {
		o := newTestOrder(t, order.MethodOnline)
		require.NoError(t, o.RequestCancellation(o.CustomerID(), "changed mind", time.Now()))
		advanceTo(t, o, order.OutForDelivery)

		refundDue, err := o.ApproveCancellation(kernel.NewUUID(), time.Now())

		var ruleErr *errs.DomainRuleError
		require.ErrorAs(t, err, &ruleErr)
		assert.Equal(t, errs.RuleCancellationNotEligible, ruleErr.Rule)
		assert.False(t, refundDue)
		assert.Equal(t, order.OutForDelivery, o.Status())
		assert.True(t, o.Cancellation().IsPending())
	})

	t.Run("delivery-attempt branches are past the approval window", func(t *testing.T) {
		o := newTestOrder(t, order.MethodOnline)
		require.NoError(t, o.RequestCancellation(o.CustomerID(), "changed mind", time.Now()))
		advanceTo(t, o, order.OutForDelivery)
		require.NoError(t, o.AdvanceTo(order.Rescheduled, kernel.NewUUID(), order.RoleEmployee, time.Now()))

		_, err := o.ApproveCancellation(kernel.NewUUID(), time.Now())
		require.ErrorIs(t, err, errs.ErrDomainRuleViolated)
		assert.Equal(t, order.Rescheduled, o.Status())
	})

	t.Run("approval is eligible up to the dispatch point", func(t *testing.T) {
		o := newTestOrder(t, order.MethodOnline)
		require.NoError(t, o.RequestCancellation(o.CustomerID(), "changed mind", time.Now()))
		advanceTo(t, o, order.ReadyForDelivery)

		_, err := o.ApproveCancellation(kernel.NewUUID(), time.Now())

		require.NoError(t, err)
		assert.Equal(t, order.Cancelled, o.Status())
	})
}

func TestOrder_RejectCancellation(t *testing.T) {
	t.Run("rejection leaves the order unaffected", func(t *testing.T) {
		o := newTestOrder(t, order.MethodOnline)
		require.NoError(t, o.RequestCancellation(o.CustomerID(), "changed mind", time.Now()))

		require.NoError(t, o.RejectCancellation(kernel.NewUUID(), time.Now()))

		assert.Equal(t, order.Pending, o.Status())
		assert.Equal(t, order.DecisionRejected, o.Cancellation().Decision())
	})

	t.Run("rejecting twice fails", func(t *testing.T) {
		o := newTestOrder(t, order.MethodOnline)
		require.NoError(t, o.RequestCancellation(o.CustomerID(), "changed mind", time.Now()))
		require.NoError(t, o.RejectCancellation(kernel.NewUUID(), time.Now()))

		err := o.RejectCancellation(kernel.NewUUID(), time.Now())

		var ruleErr *errs.DomainRuleError
		require.ErrorAs(t, err, &ruleErr)
		assert.Equal(t, errs.RuleNoPendingCancellation, ruleErr.Rule)
	})
}

func TestOrder_RecordCashCollection(t *testing.T) {
	t.Run("partial collections accumulate to the total", func(t *testing.T) {
		o := newTestOrder(t, order.MethodCashOnDelivery)
		agent := kernel.NewUUID()

		require.NoError(t, o.RecordCashCollection(money(t, 60), agent, time.Now()))
		require.NotNil(t, o.CashCollection())
		assert.Equal(t, int64(60), o.CashCollection().CollectedAmount().Amount())
		assert.Equal(t, order.PaymentCashOnDelivery, o.PaymentStatus())

		require.NoError(t, o.RecordCashCollection(money(t, 40), agent, time.Now()))
		assert.Equal(t, int64(100), o.CashCollection().CollectedAmount().Amount())
		assert.Equal(t, order.PaymentPaid, o.PaymentStatus())
	})

	t.Run("fully collected COD order can complete", func(t *testing.T) {
		o := newTestOrder(t, order.MethodCashOnDelivery)
		agent := kernel.NewUUID()
		require.NoError(t, o.RecordCashCollection(money(t, 60), agent, time.Now()))
		require.NoError(t, o.RecordCashCollection(money(t, 40), agent, time.Now()))
		advanceTo(t, o, order.Delivered)

		require.NoError(t, o.AdvanceTo(order.Completed, agent, order.RoleEmployee, time.Now()))
		assert.Equal(t, order.Completed, o.Status())
	})

	t.Run("overcollection is rejected and state unchanged", func(t *testing.T) {
		o := newTestOrder(t, order.MethodCashOnDelivery)
		agent := kernel.NewUUID()
		require.NoError(t, o.RecordCashCollection(money(t, 60), agent, time.Now()))

		err := o.RecordCashCollection(money(t, 50), agent, time.Now())

		var ruleErr *errs.DomainRuleError
		require.ErrorAs(t, err, &ruleErr)
		assert.Equal(t, errs.RuleOvercollection, ruleErr.Rule)
		assert.Equal(t, int64(60), o.CashCollection().CollectedAmount().Amount())
	})

	t.Run("collections after full payment are idempotent no-ops", func(t *testing.T) {
		o := newTestOrder(t, order.MethodCashOnDelivery)
		agent := kernel.NewUUID()
		require.NoError(t, o.RecordCashCollection(money(t, 100), agent, time.Now()))

		require.NoError(t, o.RecordCashCollection(money(t, 100), agent, time.Now()))
		assert.Equal(t, int64(100), o.CashCollection().CollectedAmount().Amount())
	})

	t.Run("cash is not applicable to online orders", func(t *testing.T) {
		o := newTestOrder(t, order.MethodOnline)

		err := o.RecordCashCollection(money(t, 10), kernel.NewUUID(), time.Now())

		var ruleErr *errs.DomainRuleError
		require.ErrorAs(t, err, &ruleErr)
		assert.Equal(t, errs.RuleCashNotApplicable, ruleErr.Rule)
	})
}

func TestOrder_EditLineItems(t *testing.T) {
	t.Run("admin edit recomputes subtotal and total", func(t *testing.T) {
		o := newTestOrder(t, order.MethodOnline)
		item, err := order.NewLineItem(kernel.NewUUID(), 3, money(t, 50))
		require.NoError(t, err)

		require.NoError(t, o.EditLineItems([]order.LineItem{item}, order.RoleAdmin))

		assert.Equal(t, int64(150), o.Pricing().Subtotal().Amount())
		// tax 30 + shipping 20 - discount 10 on top of the new subtotal
		assert.Equal(t, int64(190), o.Pricing().Total().Amount())
		require.Len(t, o.LineItems(), 1)
		assert.Equal(t, 3, o.LineItems()[0].Quantity())
	})

	t.Run("only admins edit items", func(t *testing.T) {
		o := newTestOrder(t, order.MethodOnline)
		err := o.EditLineItems(testLineItems(t), order.RoleEmployee)
		require.ErrorIs(t, err, errs.ErrPermissionDenied)
	})

	t.Run("items lock once packed", func(t *testing.T) {
		o := newTestOrder(t, order.MethodOnline)
		advanceTo(t, o, order.Packed)

		err := o.EditLineItems(testLineItems(t), order.RoleAdmin)

		var ruleErr *errs.DomainRuleError
		require.ErrorAs(t, err, &ruleErr)
		assert.Equal(t, errs.RuleLineItemsLocked, ruleErr.Rule)
		assert.Equal(t, int64(100), o.Pricing().Total().Amount())
	})
}

func TestOrder_UpdateShippingAddress(t *testing.T) {
	t.Run("address is mutable before packing", func(t *testing.T) {
		o := newTestOrder(t, order.MethodOnline)
		advanceTo(t, o, order.OrderConfirmed)

		addr, err := kernel.NewAddress("99 Elm St", "Shelbyville", "62705", "US")
		require.NoError(t, err)
		require.NoError(t, o.UpdateShippingAddress(addr))
		assert.True(t, o.ShippingAddress().IsEqual(addr))
	})

	t.Run("address freezes at packed", func(t *testing.T) {
		o := newTestOrder(t, order.MethodOnline)
		advanceTo(t, o, order.Packed)

		addr, err := kernel.NewAddress("99 Elm St", "Shelbyville", "62705", "US")
		require.NoError(t, err)
		err = o.UpdateShippingAddress(addr)

		var ruleErr *errs.DomainRuleError
		require.ErrorAs(t, err, &ruleErr)
		assert.Equal(t, errs.RuleAddressLocked, ruleErr.Rule)
	})
}

func TestOrder_ApplyPaymentResult(t *testing.T) {
	t.Run("success flips pending to paid", func(t *testing.T) {
		o := newTestOrder(t, order.MethodOnline)

		becamePaid, changed, err := o.ApplyPaymentResult("evt-1", true)

		require.NoError(t, err)
		assert.True(t, becamePaid)
		assert.True(t, changed)
		assert.Equal(t, order.PaymentPaid, o.PaymentStatus())
	})

	t.Run("failure flips pending to failed", func(t *testing.T) {
		o := newTestOrder(t, order.MethodOnline)

		becamePaid, changed, err := o.ApplyPaymentResult("evt-1", false)

		require.NoError(t, err)
		assert.False(t, becamePaid)
		assert.True(t, changed)
		assert.Equal(t, order.PaymentFailed, o.PaymentStatus())
	})

	t.Run("replayed delivery id is a no-op", func(t *testing.T) {
		o := newTestOrder(t, order.MethodOnline)
		_, _, err := o.ApplyPaymentResult("evt-1", true)
		require.NoError(t, err)

		becamePaid, changed, err := o.ApplyPaymentResult("evt-1", true)

		require.NoError(t, err)
		assert.False(t, becamePaid)
		assert.False(t, changed)
		assert.Equal(t, order.PaymentPaid, o.PaymentStatus())
	})

	t.Run("webhooks do not apply to COD orders", func(t *testing.T) {
		o := newTestOrder(t, order.MethodCashOnDelivery)
		_, _, err := o.ApplyPaymentResult("evt-1", true)
		require.ErrorIs(t, err, errs.ErrDomainRuleViolated)
	})
}

func TestOrder_AttachInvoice(t *testing.T) {
	t.Run("invoice attaches once", func(t *testing.T) {
		o := newTestOrder(t, order.MethodOnline)
		invoice, err := order.NewInvoice("inv-1", "https://invoices.example/inv-1")
		require.NoError(t, err)

		require.NoError(t, o.AttachInvoice(invoice))
		require.NotNil(t, o.Invoice())
		assert.Equal(t, "inv-1", o.Invoice().ID())
	})

	t.Run("re-attaching the same invoice is a no-op", func(t *testing.T) {
		o := newTestOrder(t, order.MethodOnline)
		invoice, err := order.NewInvoice("inv-1", "https://invoices.example/inv-1")
		require.NoError(t, err)
		require.NoError(t, o.AttachInvoice(invoice))

		require.NoError(t, o.AttachInvoice(invoice))
	})

	t.Run("attaching a different invoice fails", func(t *testing.T) {
		o := newTestOrder(t, order.MethodOnline)
		first, err := order.NewInvoice("inv-1", "https://invoices.example/inv-1")
		require.NoError(t, err)
		require.NoError(t, o.AttachInvoice(first))

		second, err := order.NewInvoice("inv-2", "https://invoices.example/inv-2")
		require.NoError(t, err)
		err = o.AttachInvoice(second)

		var ruleErr *errs.DomainRuleError
		require.ErrorAs(t, err, &ruleErr)
		assert.Equal(t, errs.RuleInvoiceAlreadyAttached, ruleErr.Rule)
	})
}

func TestRestoreOrder(t *testing.T) {
	t.Run("round trip preserves the aggregate", func(t *testing.T) {
		original := newTestOrder(t, order.MethodCashOnDelivery)
		agent := kernel.NewUUID()
		require.NoError(t, original.RecordCashCollection(money(t, 60), agent, time.Now()))
		require.NoError(t, original.AdvanceTo(order.AddressConfirmed, agent, order.RoleEmployee, time.Now()))

		restored, err := order.RestoreOrder(
			original.ID(),
			5,
			original.CustomerID(),
			original.Status(),
			original.PaymentStatus(),
			original.PaymentMethod(),
			original.LastPaymentEventID(),
			original.Pricing(),
			original.LineItems(),
			original.ShippingAddress(),
			original.Cancellation(),
			original.CashCollection(),
			original.FulfillmentLog(),
			original.Invoice(),
		)

		require.NoError(t, err)
		assert.True(t, restored.IsEqual(original))
		assert.Equal(t, int64(5), restored.Version())
		assert.Equal(t, order.AddressConfirmed, restored.Status())
		assert.Equal(t, int64(60), restored.CashCollection().CollectedAmount().Amount())
		assert.Equal(t, 1, restored.FulfillmentLog().Len())
	})

	t.Run("rejects a non-positive version", func(t *testing.T) {
		original := newTestOrder(t, order.MethodOnline)

		_, err := order.RestoreOrder(
			original.ID(), 0, original.CustomerID(), original.Status(),
			original.PaymentStatus(), original.PaymentMethod(), "",
			original.Pricing(), original.LineItems(), original.ShippingAddress(),
			nil, nil, original.FulfillmentLog(), nil,
		)

		require.ErrorIs(t, err, errs.ErrVersionIsInvalid)
	})
}
