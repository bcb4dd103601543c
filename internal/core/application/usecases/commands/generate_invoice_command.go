package commands

import (
	"errors"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/guard"
)

var ErrGenerateInvoiceCommandIsNotConstructed = errors.New(
	"GenerateInvoiceCommand must be created via NewGenerateInvoiceCommand constructor",
)

// GenerateInvoiceCommand represents a request to bill an order. Generation
// is idempotent per order: an order that already has an invoice is left
// untouched.
type GenerateInvoiceCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGenerateInvoiceCommand creates a command to bill the given order.
func NewGenerateInvoiceCommand(orderID kernel.UUID) (GenerateInvoiceCommand, error) {
	if err := orderID.Validate(); err != nil {
		return GenerateInvoiceCommand{}, err
	}

	return GenerateInvoiceCommand{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c GenerateInvoiceCommand) Validate() error {
	return c.guard.Validate(ErrGenerateInvoiceCommandIsNotConstructed)
}

// OrderID returns the order to bill.
func (c GenerateInvoiceCommand) OrderID() kernel.UUID {
	return c.orderID
}
