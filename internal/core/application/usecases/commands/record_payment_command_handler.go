package commands

import (
	"context"
	"errors"
	"time"

	"laundry/internal/core/domain/model/billing"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/errs"
)

// RecordPaymentCommandHandler applies a customer payment to an order and,
// when the order has been billed, to its invoice. Both balances follow
// total − paid; the invoice additionally re-derives its payment status.
type RecordPaymentCommandHandler struct {
	uowFactory BillingUoWFactory
}

// NewRecordPaymentCommandHandler creates a handler for payment application.
func NewRecordPaymentCommandHandler(uowFactory BillingUoWFactory) RecordPaymentCommandHandler {
	return RecordPaymentCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the payment command atomically across order and invoice.
func (h RecordPaymentCommandHandler) Handle(ctx context.Context, cmd RecordPaymentCommand) error {
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
	invoiceRepo := uow.InvoiceRepository()

	paidOrder, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = paidOrder.RecordPayment(cmd.Amount()); err != nil {
		return err
	}
	if err = orderRepo.Update(ctx, paidOrder); err != nil {
		return err
	}

	invoice, err := invoiceRepo.GetByOrderID(ctx, cmd.OrderID())
	switch {
	case err == nil:
		if err = invoice.RecordPayment(cmd.Amount()); err != nil {
			return err
		}
		if err = invoiceRepo.Update(ctx, invoice); err != nil {
			return err
		}

		payment, paymentErr := billing.NewPayment(
			kernel.NewUUID(),
			invoice.ID(),
			cmd.Amount(),
			cmd.Method(),
			time.Now().UTC(),
		)
		if paymentErr != nil {
			return paymentErr
		}
		if err = invoiceRepo.AddPayment(ctx, payment); err != nil {
			return err
		}

	case errors.Is(err, errs.ErrObjectNotFound):
		// Not billed yet; the payment is carried on the order and picked
		// up when the invoice is generated.

	default:
		return err
	}

	return uow.Commit(ctx)
}
