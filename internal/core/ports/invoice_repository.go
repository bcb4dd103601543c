package ports

import (
	"context"

	"laundry/internal/core/domain/model/billing"
	"laundry/internal/core/domain/model/kernel"
)

// InvoiceRepository defines the persistence contract for invoices and their
// settlement records.
type InvoiceRepository interface {
	// Add persists an invoice header with its line items as one unit.
	// The invoices table carries unique constraints on both the order
	// reference (the create-once idempotency guard) and the invoice
	// number; violations surface as gorm.ErrDuplicatedKey for callers to
	// resolve.
	Add(ctx context.Context, aggregate *billing.Invoice) error

	// Update persists changes to an existing invoice's settlement fields.
	Update(ctx context.Context, aggregate *billing.Invoice) error

	// GetByOrderID retrieves the invoice billed for an order, or an
	// ObjectNotFoundError when the order has not been billed.
	GetByOrderID(ctx context.Context, orderID kernel.UUID) (*billing.Invoice, error)

	// AddPayment persists a settlement record against an invoice.
	AddPayment(ctx context.Context, payment *billing.Payment) error
}
