package queries_test

import (
	"context"
	"testing"
	"time"

	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type GetOrderQueryHandlerTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	handler   queries.GetOrderQueryHandler
	orderRepo *orderrepo.GormOrderRepository
}

func (suite *GetOrderQueryHandlerTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.LineItemDTO{},
		&orderrepo.FulfillmentEntryDTO{},
	)
	suite.Require().NoError(err)

	suite.handler = queries.NewGetOrderQueryHandler(db)
	suite.orderRepo = orderrepo.NewGormOrderRepository(db, &mockAggregateTracker{})
}

func (suite *GetOrderQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *GetOrderQueryHandlerTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE orders CASCADE").Error
	suite.Require().NoError(err)
}

func (suite *GetOrderQueryHandlerTestSuite) TestHandle_NonExistentOrder_ReturnsNotFoundError() {
	query, err := queries.NewGetOrderQuery(kernel.NewUUID())
	suite.Require().NoError(err)

	_, err = suite.handler.Handle(context.Background(), query)
	suite.Require().Error(err)

	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)
}

func (suite *GetOrderQueryHandlerTestSuite) TestHandle_FreshOrder_ReturnsFullReadModel() {
	ctx := context.Background()
	testOrder := createQueryTestOrder(suite.Require().NoError, order.MethodCashOnDelivery)
	suite.Require().NoError(suite.orderRepo.Add(ctx, testOrder))

	query, err := queries.NewGetOrderQuery(testOrder.ID())
	suite.Require().NoError(err)

	view, err := suite.handler.Handle(ctx, query)
	suite.Require().NoError(err)

	suite.Equal(testOrder.ID(), view.ID)
	suite.Equal(int64(1), view.Version)
	suite.Equal(testOrder.CustomerID(), view.CustomerID)
	suite.Equal("Pending", view.Status)
	suite.Equal("CashOnDelivery", view.PaymentStatus)
	suite.Equal("CashOnDelivery", view.PaymentMethod)
	suite.Empty(view.LastPaymentEventID)

	suite.Equal(testOrder.Pricing().Subtotal().Amount(), view.Pricing.Subtotal)
	suite.Equal(testOrder.Pricing().Total().Amount(), view.Pricing.Total)

	suite.Equal("742 Evergreen Terrace", view.ShippingAddress.Street)
	suite.Equal("Springfield", view.ShippingAddress.City)
	suite.Equal("62704", view.ShippingAddress.PostalCode)
	suite.Equal("US", view.ShippingAddress.Country)

	suite.Require().Len(view.LineItems, len(testOrder.LineItems()))
	for i, item := range testOrder.LineItems() {
		suite.Equal(item.ProductID(), view.LineItems[i].ProductID)
		suite.Equal(item.Quantity(), view.LineItems[i].Quantity)
		suite.Equal(item.UnitPrice().Amount(), view.LineItems[i].UnitPrice)
	}

	suite.Empty(view.FulfillmentLog)
	suite.Nil(view.Cancellation)
	suite.Nil(view.CashCollection)
	suite.Nil(view.Invoice)
}

func (suite *GetOrderQueryHandlerTestSuite) TestHandle_AdvancedOrder_IncludesFulfillmentLog() {
	ctx := context.Background()
	testOrder := createQueryTestOrder(suite.Require().NoError, order.MethodOnline)
	suite.Require().NoError(suite.orderRepo.Add(ctx, testOrder))

	staff := kernel.NewUUID()
	suite.Require().NoError(testOrder.AdvanceTo(order.AddressConfirmed, staff, order.RoleEmployee, time.Now()))
	suite.Require().NoError(testOrder.AdvanceTo(order.OrderConfirmed, staff, order.RoleAdmin, time.Now()))
	suite.Require().NoError(suite.orderRepo.Update(ctx, testOrder))

	query, err := queries.NewGetOrderQuery(testOrder.ID())
	suite.Require().NoError(err)

	view, err := suite.handler.Handle(ctx, query)
	suite.Require().NoError(err)

	suite.Equal("OrderConfirmed", view.Status)
	suite.Equal(int64(2), view.Version)
	suite.Require().Len(view.FulfillmentLog, 2)
	suite.Equal("AddressConfirmed", view.FulfillmentLog[0].Stage)
	suite.Equal("OrderConfirmed", view.FulfillmentLog[1].Stage)
	suite.Equal(staff, view.FulfillmentLog[0].ActorID)
}

func (suite *GetOrderQueryHandlerTestSuite) TestHandle_DecidedCancellation_IncludesDecision() {
	ctx := context.Background()
	testOrder := createQueryTestOrder(suite.Require().NoError, order.MethodOnline)

	_, changed, err := testOrder.ApplyPaymentResult("evt-1", true)
	suite.Require().NoError(err)
	suite.Require().True(changed)
	suite.Require().NoError(testOrder.RequestCancellation(testOrder.CustomerID(), "changed mind", time.Now()))

	admin := kernel.NewUUID()
	refundDue, err := testOrder.ApproveCancellation(admin, time.Now())
	suite.Require().NoError(err)
	suite.Require().True(refundDue)

	suite.Require().NoError(suite.orderRepo.Add(ctx, testOrder))

	query, err := queries.NewGetOrderQuery(testOrder.ID())
	suite.Require().NoError(err)

	view, err := suite.handler.Handle(ctx, query)
	suite.Require().NoError(err)

	suite.Equal("Cancelled", view.Status)
	suite.Equal("Refunded", view.PaymentStatus)
	suite.Require().NotNil(view.Cancellation)
	suite.Equal(testOrder.CustomerID(), view.Cancellation.RequestedBy)
	suite.Equal("changed mind", view.Cancellation.Reason)
	suite.Equal("Approved", view.Cancellation.Decision)
	suite.Require().NotNil(view.Cancellation.DecidedBy)
	suite.Equal(admin, *view.Cancellation.DecidedBy)
	suite.NotNil(view.Cancellation.DecidedAt)
}

func (suite *GetOrderQueryHandlerTestSuite) TestHandle_CashAndInvoice_IncludedWhenPresent() {
	ctx := context.Background()
	testOrder := createQueryTestOrder(suite.Require().NoError, order.MethodCashOnDelivery)

	collected, err := kernel.NewMoney(40)
	suite.Require().NoError(err)
	agent := kernel.NewUUID()
	suite.Require().NoError(testOrder.RecordCashCollection(collected, agent, time.Now()))

	suite.Require().NoError(suite.orderRepo.Add(ctx, testOrder))

	query, err := queries.NewGetOrderQuery(testOrder.ID())
	suite.Require().NoError(err)

	view, err := suite.handler.Handle(ctx, query)
	suite.Require().NoError(err)

	suite.Require().NotNil(view.CashCollection)
	suite.Equal(int64(40), view.CashCollection.CollectedAmount)
	suite.Equal(agent, view.CashCollection.CollectedBy)
	suite.Nil(view.Invoice)
}

// mockAggregateTracker implements the repositories' tracker for test purposes.
type mockAggregateTracker struct{}

func (m *mockAggregateTracker) TrackAggregate(_ kernel.UUID, _ any) {
	// No-op for query tests
}

// createQueryTestOrder builds a two-item order with a 100 total.
func createQueryTestOrder(requireNoError func(error, ...interface{}), method order.PaymentMethod) *order.Order {
	unitPrice, err := kernel.NewMoney(25)
	requireNoError(err)

	items := make([]order.LineItem, 0, 2)
	for range 2 {
		item, itemErr := order.NewLineItem(kernel.NewUUID(), 2, unitPrice)
		requireNoError(itemErr)
		items = append(items, item)
	}

	address, err := kernel.NewAddress("742 Evergreen Terrace", "Springfield", "62704", "US")
	requireNoError(err)

	zero, err := kernel.NewMoney(0)
	requireNoError(err)

	testOrder, err := order.NewOrder(
		kernel.NewUUID(), kernel.NewUUID(), items, address, method, zero, zero, zero,
	)
	requireNoError(err)
	return testOrder
}

func TestGetOrderQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(GetOrderQueryHandlerTestSuite))
}
