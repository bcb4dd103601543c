package commands

import (
	"context"
	"errors"
	"time"

	"laundry/internal/core/domain/model/billing"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GenerateInvoiceCommandHandler creates the invoice for a billed order.
//
// Generation is create-once: the invoices table holds a unique constraint on
// the order reference, so a concurrent duplicate attempt loses the insert
// race and simply adopts the winner's invoice. A unique-number collision is
// retried once with a fresh number. The insert runs in its own transaction
// because a unique violation aborts the surrounding one.
type GenerateInvoiceCommandHandler struct {
	uowFactory BillingUoWFactory
	taxRate    decimal.Decimal
}

// NewGenerateInvoiceCommandHandler creates a handler for invoice generation.
// taxRate is the configured fraction applied to the subtotal, e.g. 0.18.
func NewGenerateInvoiceCommandHandler(uowFactory BillingUoWFactory, taxRate decimal.Decimal) GenerateInvoiceCommandHandler {
	return GenerateInvoiceCommandHandler{
		uowFactory: uowFactory,
		taxRate:    taxRate,
	}
}

// Handle processes the invoice generation command. Billing an already billed
// order is a no-op.
func (h GenerateInvoiceCommandHandler) Handle(ctx context.Context, cmd GenerateInvoiceCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	billedOrder, exists, err := h.loadUnbilledOrder(ctx, cmd.OrderID())
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	orderItems := billedOrder.Items()
	lines := make([]billing.LineItem, 0, len(orderItems))
	for _, item := range orderItems {
		line, lineErr := billing.LineItemFromOrderItem(item)
		if lineErr != nil {
			return lineErr
		}
		lines = append(lines, line)
	}

	invoice, err := billing.NewInvoice(
		kernel.NewUUID(),
		billedOrder.ID(),
		billing.GenerateInvoiceNumber(time.Now()),
		lines,
		h.taxRate,
		billedOrder.PaidAmount(),
	)
	if err != nil {
		return err
	}

	if err = h.insertInvoice(ctx, invoice); err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		return err
	}

	// Either a concurrent generation won the order-uniqueness race or the
	// random number suffix collided. Re-read to tell them apart.
	if _, exists, err = h.loadUnbilledOrder(ctx, cmd.OrderID()); err != nil {
		return err
	}
	if exists {
		return nil
	}

	if err = invoice.RenumberWith(billing.GenerateInvoiceNumber(time.Now())); err != nil {
		return err
	}
	return h.insertInvoice(ctx, invoice)
}

// loadUnbilledOrder reads the order and reports whether an invoice for it
// already exists.
func (h GenerateInvoiceCommandHandler) loadUnbilledOrder(
	ctx context.Context,
	orderID kernel.UUID,
) (billedOrder *order.Order, invoiceExists bool, err error) {
	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, false, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	_, err = uow.InvoiceRepository().GetByOrderID(ctx, orderID)
	if err == nil {
		return nil, true, nil
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		return nil, false, err
	}

	billedOrder, err = uow.OrderRepository().Get(ctx, orderID)
	if err != nil {
		return nil, false, err
	}

	return billedOrder, false, nil
}

func (h GenerateInvoiceCommandHandler) insertInvoice(ctx context.Context, invoice *billing.Invoice) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.InvoiceRepository().Add(ctx, invoice); err != nil {
		return err
	}

	// An order paid before billing opens the invoice with a balance already
	// settled; that settlement gets its own payment row in the same
	// transaction as the header.
	if invoice.Paid().IsPositive() {
		payment, err := billing.NewPayment(
			kernel.NewUUID(), invoice.ID(), invoice.Paid(), "", time.Now())
		if err != nil {
			return err
		}
		if err = uow.InvoiceRepository().AddPayment(ctx, payment); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}
