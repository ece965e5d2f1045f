package cmd

import (
	"fulfillment/internal/adapters/out/client"
	"fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory

	workflow services.CancellationWorkflow
	invoices ports.InvoiceService
	notifier ports.NotificationDispatcher
	wallet   ports.WalletLedger
}

func NewCompositionRoot(config Config, gormDB *gorm.DB) CompositionRoot {
	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		workflow:   services.NewCancellationWorkflow(),
		invoices:   client.NewInvoiceClient(config.InvoiceServiceURL),
		notifier:   client.NewNotificationClient(config.NotificationServiceURL),
		wallet:     client.NewWalletClient(config.WalletServiceURL),
	}
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) refundUoWFactory() commands.RefundUoWFactory {
	return FuncRefundUoWFactory(func() commands.RefundUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) crossUoWFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateUpdateOrderStatusCommandHandler() commands.UpdateOrderStatusCommandHandler {
	return commands.NewUpdateOrderStatusCommandHandler(c.orderUoWFactory(), c.notifier)
}

func (c *CompositionRoot) CreateRequestCancellationCommandHandler() commands.RequestCancellationCommandHandler {
	return commands.NewRequestCancellationCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateApproveCancellationCommandHandler() commands.ApproveCancellationCommandHandler {
	return commands.NewApproveCancellationCommandHandler(c.crossUoWFactory(), c.workflow, c.wallet, c.notifier)
}

func (c *CompositionRoot) CreateRejectCancellationCommandHandler() commands.RejectCancellationCommandHandler {
	return commands.NewRejectCancellationCommandHandler(c.orderUoWFactory(), c.workflow, c.notifier)
}

func (c *CompositionRoot) CreateRecordCashCollectionCommandHandler() commands.RecordCashCollectionCommandHandler {
	return commands.NewRecordCashCollectionCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateEditLineItemsCommandHandler() commands.EditLineItemsCommandHandler {
	return commands.NewEditLineItemsCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateUpdateShippingAddressCommandHandler() commands.UpdateShippingAddressCommandHandler {
	return commands.NewUpdateShippingAddressCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateApplyPaymentResultCommandHandler() commands.ApplyPaymentResultCommandHandler {
	return commands.NewApplyPaymentResultCommandHandler(c.orderUoWFactory(), c.invoices)
}

func (c *CompositionRoot) CreateRetryRefundsCommandHandler() commands.RetryRefundsCommandHandler {
	return commands.NewRetryRefundsCommandHandler(c.refundUoWFactory(), c.wallet)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetPendingCancellationsQueryHandler() queries.GetPendingCancellationsQueryHandler {
	return queries.NewGetPendingCancellationsQueryHandler(c.gormDB)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncRefundUoWFactory func() commands.RefundUoW

func (f FuncRefundUoWFactory) Create() commands.RefundUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
