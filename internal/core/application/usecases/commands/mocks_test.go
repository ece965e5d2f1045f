package commands_test

import (
	"context"
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/refund"
	"fulfillment/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetAllWithPendingCancellation(ctx context.Context) ([]*order.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockRefundTaskRepository struct{ mock.Mock }

func (m *MockRefundTaskRepository) Add(ctx context.Context, task *refund.RefundTask) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *MockRefundTaskRepository) Update(ctx context.Context, task *refund.RefundTask) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *MockRefundTaskRepository) Get(ctx context.Context, id kernel.UUID) (*refund.RefundTask, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*refund.RefundTask), args.Error(1)
}

func (m *MockRefundTaskRepository) GetAllPending(ctx context.Context) ([]*refund.RefundTask, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*refund.RefundTask), args.Error(1)
}

type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) RefundTaskRepository() ports.RefundTaskRepository {
	args := m.Called()
	return args.Get(0).(ports.RefundTaskRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockRefundUoWFactory struct{ mock.Mock }

func (m *MockRefundUoWFactory) Create() commands.RefundUoW {
	args := m.Called()
	return args.Get(0).(commands.RefundUoW)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockNotificationDispatcher struct{ mock.Mock }

func (m *MockNotificationDispatcher) NotifyStatusChanged(
	ctx context.Context, orderID, customerID kernel.UUID, status string,
) error {
	args := m.Called(ctx, orderID, customerID, status)
	return args.Error(0)
}

func (m *MockNotificationDispatcher) NotifyCancellationDecided(
	ctx context.Context, orderID, customerID kernel.UUID, approved bool,
) error {
	args := m.Called(ctx, orderID, customerID, approved)
	return args.Error(0)
}

type MockWalletLedger struct{ mock.Mock }

func (m *MockWalletLedger) Credit(
	ctx context.Context, customerID kernel.UUID, amount kernel.Money, idempotencyKey string,
) error {
	args := m.Called(ctx, customerID, amount, idempotencyKey)
	return args.Error(0)
}

type MockInvoiceService struct{ mock.Mock }

func (m *MockInvoiceService) GenerateInvoice(
	ctx context.Context, orderID, customerID kernel.UUID, total kernel.Money,
) (string, string, error) {
	args := m.Called(ctx, orderID, customerID, total)
	return args.String(0), args.String(1), args.Error(2)
}

// testOrder builds an order with a total of 100 in minor units.
func testOrder(t *testing.T, method order.PaymentMethod) *order.Order {
	t.Helper()

	unitPrice, err := kernel.NewMoney(50)
	require.NoError(t, err)
	item, err := order.NewLineItem(kernel.NewUUID(), 2, unitPrice)
	require.NoError(t, err)
	addr, err := kernel.NewAddress("12 Main St", "Springfield", "62704", "US")
	require.NoError(t, err)
	zero, err := kernel.NewMoney(0)
	require.NoError(t, err)

	aggregate, err := order.NewOrder(
		kernel.NewUUID(), kernel.NewUUID(), []order.LineItem{item}, addr,
		method, zero, zero, zero,
	)
	require.NoError(t, err)
	return aggregate
}

func testLineItemInputs(t *testing.T) []commands.LineItemInput {
	t.Helper()
	return []commands.LineItemInput{
		{ProductID: kernel.NewUUID(), Quantity: 2, UnitPrice: 50},
	}
}
