package http

import (
	"errors"
	"net/http"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Actor identity travels in headers, set by the API gateway after
// authentication. The role must be one of the canonical role names.
const (
	HeaderActorID   = "X-Actor-ID"
	HeaderActorRole = "X-Actor-Role"
)

// Server exposes the fulfillment use cases over HTTP.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createOrderHandler           commands.CreateOrderCommandHandler
	updateOrderStatusHandler     commands.UpdateOrderStatusCommandHandler
	requestCancellationHandler   commands.RequestCancellationCommandHandler
	approveCancellationHandler   commands.ApproveCancellationCommandHandler
	rejectCancellationHandler    commands.RejectCancellationCommandHandler
	recordCashCollectionHandler  commands.RecordCashCollectionCommandHandler
	editLineItemsHandler         commands.EditLineItemsCommandHandler
	updateShippingAddressHandler commands.UpdateShippingAddressCommandHandler
	applyPaymentResultHandler    commands.ApplyPaymentResultCommandHandler

	// Query handlers
	getOrderHandler                queries.GetOrderQueryHandler
	getPendingCancellationsHandler queries.GetPendingCancellationsQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	updateOrderStatusHandler commands.UpdateOrderStatusCommandHandler,
	requestCancellationHandler commands.RequestCancellationCommandHandler,
	approveCancellationHandler commands.ApproveCancellationCommandHandler,
	rejectCancellationHandler commands.RejectCancellationCommandHandler,
	recordCashCollectionHandler commands.RecordCashCollectionCommandHandler,
	editLineItemsHandler commands.EditLineItemsCommandHandler,
	updateShippingAddressHandler commands.UpdateShippingAddressCommandHandler,
	applyPaymentResultHandler commands.ApplyPaymentResultCommandHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	getPendingCancellationsHandler queries.GetPendingCancellationsQueryHandler,
) *Server {
	return &Server{
		createOrderHandler:             createOrderHandler,
		updateOrderStatusHandler:       updateOrderStatusHandler,
		requestCancellationHandler:     requestCancellationHandler,
		approveCancellationHandler:     approveCancellationHandler,
		rejectCancellationHandler:      rejectCancellationHandler,
		recordCashCollectionHandler:    recordCashCollectionHandler,
		editLineItemsHandler:           editLineItemsHandler,
		updateShippingAddressHandler:   updateShippingAddressHandler,
		applyPaymentResultHandler:      applyPaymentResultHandler,
		getOrderHandler:                getOrderHandler,
		getPendingCancellationsHandler: getPendingCancellationsHandler,
	}
}

// RegisterRoutes mounts all endpoints under /api/v1.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/orders", s.CreateOrder)
	api.GET("/orders/:orderID", s.GetOrder)
	api.POST("/orders/:orderID/status", s.UpdateOrderStatus)
	api.POST("/orders/:orderID/cancellation", s.RequestCancellation)
	api.POST("/orders/:orderID/cancellation/approve", s.ApproveCancellation)
	api.POST("/orders/:orderID/cancellation/reject", s.RejectCancellation)
	api.POST("/orders/:orderID/cash-collections", s.RecordCashCollection)
	api.PUT("/orders/:orderID/line-items", s.EditLineItems)
	api.PUT("/orders/:orderID/shipping-address", s.UpdateShippingAddress)
	api.GET("/cancellations/pending", s.GetPendingCancellations)
	api.POST("/payments/webhook", s.PaymentWebhook)
}

// CreateOrder handles POST /api/v1/orders - places a new order.
// The order identifier is assigned here and returned in the response body.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var request CreateOrderRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	customerID, err := parseUUID("customerID", request.CustomerID)
	if err != nil {
		return respondError(ctx, err)
	}

	items := make([]commands.LineItemInput, 0, len(request.Items))
	for _, item := range request.Items {
		productID, parseErr := parseUUID("productID", item.ProductID)
		if parseErr != nil {
			return respondError(ctx, parseErr)
		}
		items = append(items, commands.LineItemInput{
			ProductID: productID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(
		orderID,
		customerID,
		items,
		request.ShippingAddress.Street,
		request.ShippingAddress.City,
		request.ShippingAddress.PostalCode,
		request.ShippingAddress.Country,
		request.PaymentMethod,
		request.Tax,
		request.Shipping,
		request.Discount,
	)
	if err != nil {
		return respondError(ctx, err)
	}

	if handleErr := s.createOrderHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return respondError(ctx, handleErr)
	}

	return ctx.JSON(http.StatusCreated, CreateOrderResponse{ID: orderID.String()})
}

// GetOrder handles GET /api/v1/orders/{orderID} - returns the full order read model.
func (s *Server) GetOrder(ctx echo.Context) error {
	orderID, err := orderIDParam(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return respondError(ctx, err)
	}

	model, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrderResponse(model))
}

// UpdateOrderStatus handles POST /api/v1/orders/{orderID}/status - advances the
// order to the target stage. Role gating and the transition table are enforced
// by the domain.
func (s *Server) UpdateOrderStatus(ctx echo.Context) error {
	orderID, err := orderIDParam(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	var request UpdateStatusRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	target, err := order.StatusFromString(request.Target)
	if err != nil {
		return respondError(ctx, err)
	}

	actorID, role, err := actorFromHeaders(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewUpdateOrderStatusCommand(orderID, target, actorID, role)
	if err != nil {
		return respondError(ctx, err)
	}

	if handleErr := s.updateOrderStatusHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return respondError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// RequestCancellation handles POST /api/v1/orders/{orderID}/cancellation -
// files a cancellation request for an admin to decide.
func (s *Server) RequestCancellation(ctx echo.Context) error {
	orderID, err := orderIDParam(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	var request RequestCancellationRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	requestedBy, err := actorIDFromHeader(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewRequestCancellationCommand(orderID, requestedBy, request.Reason)
	if err != nil {
		return respondError(ctx, err)
	}

	if handleErr := s.requestCancellationHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return respondError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusAccepted)
}

// ApproveCancellation handles POST /api/v1/orders/{orderID}/cancellation/approve.
func (s *Server) ApproveCancellation(ctx echo.Context) error {
	orderID, err := orderIDParam(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	decidedBy, err := actorIDFromHeader(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewApproveCancellationCommand(orderID, decidedBy)
	if err != nil {
		return respondError(ctx, err)
	}

	if handleErr := s.approveCancellationHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return respondError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// RejectCancellation handles POST /api/v1/orders/{orderID}/cancellation/reject.
func (s *Server) RejectCancellation(ctx echo.Context) error {
	orderID, err := orderIDParam(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	decidedBy, err := actorIDFromHeader(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewRejectCancellationCommand(orderID, decidedBy)
	if err != nil {
		return respondError(ctx, err)
	}

	if handleErr := s.rejectCancellationHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return respondError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// RecordCashCollection handles POST /api/v1/orders/{orderID}/cash-collections -
// reconciles the cash a courier collected on delivery.
func (s *Server) RecordCashCollection(ctx echo.Context) error {
	orderID, err := orderIDParam(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	var request RecordCashCollectionRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	collectedBy, err := actorIDFromHeader(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewRecordCashCollectionCommand(orderID, request.Amount, collectedBy)
	if err != nil {
		return respondError(ctx, err)
	}

	if handleErr := s.recordCashCollectionHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return respondError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// EditLineItems handles PUT /api/v1/orders/{orderID}/line-items - replaces the
// order's line items while the order is still editable.
func (s *Server) EditLineItems(ctx echo.Context) error {
	orderID, err := orderIDParam(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	var request EditLineItemsRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	role, err := actorRoleFromHeader(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	items := make([]commands.LineItemInput, 0, len(request.Items))
	for _, item := range request.Items {
		productID, parseErr := parseUUID("productID", item.ProductID)
		if parseErr != nil {
			return respondError(ctx, parseErr)
		}
		items = append(items, commands.LineItemInput{
			ProductID: productID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}

	cmd, err := commands.NewEditLineItemsCommand(orderID, items, role)
	if err != nil {
		return respondError(ctx, err)
	}

	if handleErr := s.editLineItemsHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return respondError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// UpdateShippingAddress handles PUT /api/v1/orders/{orderID}/shipping-address.
func (s *Server) UpdateShippingAddress(ctx echo.Context) error {
	orderID, err := orderIDParam(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	var request AddressPayload
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewUpdateShippingAddressCommand(
		orderID,
		request.Street,
		request.City,
		request.PostalCode,
		request.Country,
	)
	if err != nil {
		return respondError(ctx, err)
	}

	if handleErr := s.updateShippingAddressHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return respondError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetPendingCancellations handles GET /api/v1/cancellations/pending - returns
// the admin decision queue, oldest request first.
func (s *Server) GetPendingCancellations(ctx echo.Context) error {
	query := queries.NewGetPendingCancellationsQuery()

	pending, err := s.getPendingCancellationsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	response := make([]PendingCancellationResponse, 0, len(pending))
	for _, item := range pending {
		response = append(response, PendingCancellationResponse{
			OrderID:     item.OrderID.String(),
			CustomerID:  item.CustomerID.String(),
			Status:      item.Status,
			Total:       item.Total,
			RequestedBy: item.RequestedBy.String(),
			Reason:      item.Reason,
			RequestedAt: item.RequestedAt,
		})
	}

	return ctx.JSON(http.StatusOK, response)
}

// PaymentWebhook handles POST /api/v1/payments/webhook - applies an online
// payment result. Replays of an already-applied event succeed without effect,
// so the provider can retry deliveries safely.
func (s *Server) PaymentWebhook(ctx echo.Context) error {
	var request PaymentWebhookRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	orderID, err := parseUUID("orderID", request.OrderID)
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewApplyPaymentResultCommand(orderID, request.EventID, request.Succeeded)
	if err != nil {
		return respondError(ctx, err)
	}

	if handleErr := s.applyPaymentResultHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return respondError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusOK)
}

func orderIDParam(ctx echo.Context) (kernel.UUID, error) {
	return parseUUID("orderID", ctx.Param("orderID"))
}

func actorIDFromHeader(ctx echo.Context) (kernel.UUID, error) {
	return parseUUID("actor id", ctx.Request().Header.Get(HeaderActorID))
}

// parseUUID wraps identifier parse failures so they surface as 400s rather
// than unclassified 500s.
func parseUUID(paramName, value string) (kernel.UUID, error) {
	id, err := kernel.UUIDFromString(value)
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(paramName, err)
	}
	return id, nil
}

func actorRoleFromHeader(ctx echo.Context) (order.Role, error) {
	return order.RoleFromString(ctx.Request().Header.Get(HeaderActorRole))
}

func actorFromHeaders(ctx echo.Context) (kernel.UUID, order.Role, error) {
	actorID, err := actorIDFromHeader(ctx)
	if err != nil {
		return kernel.UUID{}, order.RoleUnknown, err
	}
	role, err := actorRoleFromHeader(ctx)
	if err != nil {
		return kernel.UUID{}, order.RoleUnknown, err
	}
	return actorID, role, nil
}

// statusForError maps the error taxonomy to HTTP statuses. An external effect
// failure maps to 502: the state change is already committed, only the
// post-commit notification or credit failed, and the body says which.
func statusForError(err error) int {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrPermissionDenied):
		return http.StatusForbidden
	case errors.Is(err, errs.ErrVersionConflict):
		return http.StatusConflict
	case errors.Is(err, errs.ErrDomainRuleViolated):
		return http.StatusUnprocessableEntity
	case errors.Is(err, errs.ErrExternalEffect):
		return http.StatusBadGateway
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, errs.ErrVersionIsInvalid):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func respondError(ctx echo.Context, err error) error {
	code := statusForError(err)
	return ctx.JSON(code, Error{Code: code, Message: err.Error()})
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}
