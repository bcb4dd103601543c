package commands

import (
	"context"
	"fmt"
	"log/slog"

	"laundry/internal/core/domain/model/order"
	"laundry/internal/pkg/errs"
)

// InvoiceGenerator bills an order. Satisfied by
// GenerateInvoiceCommandHandler.
type InvoiceGenerator interface {
	Handle(ctx context.Context, cmd GenerateInvoiceCommand) error
}

// NotificationDispatcher messages the customer about a status change.
// Satisfied by DispatchNotificationCommandHandler.
type NotificationDispatcher interface {
	Handle(ctx context.Context, cmd DispatchNotificationCommand) error
}

// ChangeOrderStatusCommandHandler drives the order lifecycle. A successful
// transition is committed first; the follow-up effects are isolated from it:
// invoice generation on entering "billed" runs synchronously but only logs
// on failure, and the customer notification is dispatched on a detached
// goroutine so provider latency never holds up the caller.
type ChangeOrderStatusCommandHandler struct {
	uowFactory      OrderUoWFactory
	invoiceHandler  InvoiceGenerator
	dispatchHandler NotificationDispatcher
	logger          *slog.Logger
}

// NewChangeOrderStatusCommandHandler creates a handler for order status
// transitions.
func NewChangeOrderStatusCommandHandler(
	uowFactory OrderUoWFactory,
	invoiceHandler InvoiceGenerator,
	dispatchHandler NotificationDispatcher,
	logger *slog.Logger,
) ChangeOrderStatusCommandHandler {
	return ChangeOrderStatusCommandHandler{
		uowFactory:      uowFactory,
		invoiceHandler:  invoiceHandler,
		dispatchHandler: dispatchHandler,
		logger:          logger,
	}
}

// Handle processes the status change and returns the updated order.
// Requesting the status the order already has is a no-op. The write is
// guarded by the aggregate's version, so of two racing transitions from the
// same prior state exactly one succeeds.
func (h ChangeOrderStatusCommandHandler) Handle(ctx context.Context, cmd ChangeOrderStatusCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	o, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	oldStatus := o.Status()
	if expected := cmd.ExpectedStatus(); expected != nil && oldStatus != *expected {
		return nil, errs.NewValueIsInvalidErrorWithCause("oldStatus",
			fmt.Errorf("order is %s, not %s", oldStatus, *expected))
	}
	if oldStatus == cmd.NewStatus() {
		return o, nil
	}

	if err = o.ChangeStatus(cmd.NewStatus()); err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	if cmd.NewStatus() == order.Billed {
		h.generateInvoice(ctx, cmd)
	}

	h.dispatchAsync(cmd, oldStatus)

	return o, nil
}

// generateInvoice bills the order. The status change already stands; a
// billing failure is logged, not propagated.
func (h ChangeOrderStatusCommandHandler) generateInvoice(ctx context.Context, cmd ChangeOrderStatusCommand) {
	invoiceCmd, err := NewGenerateInvoiceCommand(cmd.OrderID())
	if err != nil {
		h.logger.Warn("invoice generation skipped",
			slog.String("orderId", cmd.OrderID().String()),
			slog.Any("error", err))
		return
	}

	if err = h.invoiceHandler.Handle(ctx, invoiceCmd); err != nil {
		h.logger.Warn("invoice generation failed",
			slog.String("orderId", cmd.OrderID().String()),
			slog.Any("error", err))
	}
}

// dispatchAsync fires the customer notification on a detached context; the
// request that triggered the transition does not wait for the provider.
func (h ChangeOrderStatusCommandHandler) dispatchAsync(cmd ChangeOrderStatusCommand, oldStatus order.Status) {
	dispatchCmd, err := NewDispatchNotificationCommand(cmd.OrderID(), oldStatus, cmd.NewStatus(), cmd.SenderID())
	if err != nil {
		h.logger.Warn("notification dispatch skipped",
			slog.String("orderId", cmd.OrderID().String()),
			slog.Any("error", err))
		return
	}

	go func() {
		if err := h.dispatchHandler.Handle(context.Background(), dispatchCmd); err != nil {
			h.logger.Warn("notification dispatch failed",
				slog.String("orderId", cmd.OrderID().String()),
				slog.Any("error", err))
		}
	}()
}
