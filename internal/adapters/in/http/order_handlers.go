package http

import (
	"net/http"

	"laundry/internal/core/application/usecases/commands"
	"laundry/internal/core/application/usecases/queries"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// CreateOrder handles POST /api/v1/orders - registers a new laundry order.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var req CreateOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return writeBindError(ctx)
	}

	customerID, err := kernel.UUIDFromString(req.CustomerID)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid customer id: " + err.Error(),
		})
	}

	items := make([]commands.OrderItemInput, 0, len(req.Items))
	for _, item := range req.Items {
		unitPrice, priceErr := decimal.NewFromString(item.UnitPrice)
		if priceErr != nil {
			return ctx.JSON(http.StatusBadRequest, Error{
				Code:    http.StatusBadRequest,
				Message: "Invalid unit price: " + priceErr.Error(),
			})
		}
		items = append(items, commands.OrderItemInput{
			ServiceType: item.ServiceType,
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   unitPrice,
		})
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(orderID, customerID, req.CustomerName, req.CustomerPhone, items)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.createOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, map[string]string{"id": orderID.String()})
}

// GetOrder handles GET /api/v1/orders/:id - retrieves one order with its
// items and derived balance.
func (s *Server) GetOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid order id: " + err.Error(),
		})
	}

	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return writeError(ctx, err)
	}

	resp, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	items := make([]OrderItemResponse, 0, len(resp.Items))
	for _, item := range resp.Items {
		items = append(items, OrderItemResponse{
			ServiceType: item.ServiceType,
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice.StringFixed(2),
			LineTotal:   item.LineTotal.StringFixed(2),
		})
	}

	return ctx.JSON(http.StatusOK, OrderResponse{
		ID:            resp.ID.String(),
		CustomerID:    resp.CustomerID.String(),
		CustomerName:  resp.CustomerName,
		CustomerPhone: resp.CustomerPhone,
		Items:         items,
		TotalAmount:   resp.TotalAmount.StringFixed(2),
		PaidAmount:    resp.PaidAmount.StringFixed(2),
		Balance:       resp.Balance.StringFixed(2),
		Status:        resp.Status,
		Version:       resp.Version,
		CreatedAt:     resp.CreatedAt,
	})
}

// ChangeOrderStatus handles PUT /api/v1/orders/:id/status - moves the order
// through its lifecycle and triggers invoicing and customer notification.
func (s *Server) ChangeOrderStatus(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid order id: " + err.Error(),
		})
	}

	var req ChangeOrderStatusRequest
	if err = ctx.Bind(&req); err != nil {
		return writeBindError(ctx)
	}

	newStatus, err := order.StatusFromString(req.Status)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid status: " + err.Error(),
		})
	}

	var oldStatus *order.Status
	if req.OldStatus != nil {
		status, statusErr := order.StatusFromString(*req.OldStatus)
		if statusErr != nil {
			return ctx.JSON(http.StatusBadRequest, Error{
				Code:    http.StatusBadRequest,
				Message: "Invalid oldStatus: " + statusErr.Error(),
			})
		}
		oldStatus = &status
	}

	var senderID *kernel.UUID
	if req.SenderID != nil {
		id, idErr := kernel.UUIDFromString(*req.SenderID)
		if idErr != nil {
			return ctx.JSON(http.StatusBadRequest, Error{
				Code:    http.StatusBadRequest,
				Message: "Invalid sender id: " + idErr.Error(),
			})
		}
		senderID = &id
	}

	cmd, err := commands.NewChangeOrderStatusCommand(orderID, newStatus, oldStatus, senderID)
	if err != nil {
		return writeError(ctx, err)
	}

	updated, err := s.changeOrderStatusHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderToResponse(updated))
}

// RecordPayment handles POST /api/v1/orders/:id/payments - applies a
// payment to the order and, when present, its invoice.
func (s *Server) RecordPayment(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid order id: " + err.Error(),
		})
	}

	var req RecordPaymentRequest
	if err = ctx.Bind(&req); err != nil {
		return writeBindError(ctx)
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid amount: " + err.Error(),
		})
	}

	cmd, err := commands.NewRecordPaymentCommand(orderID, amount, req.Method)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.recordPaymentHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// orderToResponse maps the order aggregate to its transport shape, without
// the item lines.
func orderToResponse(o *order.Order) OrderResponse {
	return OrderResponse{
		ID:            o.ID().String(),
		CustomerID:    o.CustomerID().String(),
		CustomerName:  o.CustomerName(),
		CustomerPhone: o.CustomerPhone(),
		TotalAmount:   o.TotalAmount().StringFixed(2),
		PaidAmount:    o.PaidAmount().StringFixed(2),
		Balance:       o.BalanceAmount().StringFixed(2),
		Status:        o.Status().String(),
		Version:       o.Version(),
		CreatedAt:     o.CreatedAt(),
	}
}
