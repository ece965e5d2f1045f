package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

// ApplyPaymentResultCommandHandler consumes payment-webhook deliveries.
//
// When an event flips the order to Paid the handler generates an invoice as a
// post-commit effect and attaches it to the order in a follow-up transaction.
// The payment flip is durable even when invoicing fails; that partial failure
// is reported as errs.ExternalEffectError and the replayed webhook (same
// event id) will not re-apply the payment.
type ApplyPaymentResultCommandHandler struct {
	uowFactory OrderUoWFactory
	invoicer   ports.InvoiceService
}

// NewApplyPaymentResultCommandHandler creates a handler for payment webhook events.
func NewApplyPaymentResultCommandHandler(
	uowFactory OrderUoWFactory,
	invoicer ports.InvoiceService,
) ApplyPaymentResultCommandHandler {
	return ApplyPaymentResultCommandHandler{
		uowFactory: uowFactory,
		invoicer:   invoicer,
	}
}

// Handle processes one webhook delivery.
func (h *ApplyPaymentResultCommandHandler) Handle(ctx context.Context, cmd ApplyPaymentResultCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	becamePaid, changed, err := aggregate.ApplyPaymentResult(cmd.EventID(), cmd.Succeeded())
	if err != nil {
		return err
	}
	if !changed {
		return nil
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if !becamePaid {
		return nil
	}

	if err = h.generateAndAttachInvoice(ctx, aggregate); err != nil {
		return errs.NewExternalEffectError("invoice", aggregate.ID().String(), err)
	}

	return nil
}

// generateAndAttachInvoice renders the invoice and stores the reference on the
// order in a fresh transaction. Attachment is write-once in the domain, so a
// concurrent retry attaching the same invoice id is harmless.
func (h *ApplyPaymentResultCommandHandler) generateAndAttachInvoice(ctx context.Context, paid *order.Order) error {
	invoiceID, invoiceURL, err := h.invoicer.GenerateInvoice(
		ctx, paid.ID(), paid.CustomerID(), paid.Pricing().Total(),
	)
	if err != nil {
		return err
	}

	invoice, err := order.NewInvoice(invoiceID, invoiceURL)
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	fresh, err := orderRepo.Get(ctx, paid.ID())
	if err != nil {
		return err
	}

	if err = fresh.AttachInvoice(invoice); err != nil {
		return err
	}
	if err = orderRepo.Update(ctx, fresh); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
