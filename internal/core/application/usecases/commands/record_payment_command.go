package commands

import (
	"errors"
	"fmt"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/errs"
	"laundry/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrRecordPaymentCommandIsNotConstructed = errors.New(
	"RecordPaymentCommand must be created via NewRecordPaymentCommand constructor",
)

// defaultPaymentMethod is assumed when the operator does not name one.
const defaultPaymentMethod = "cash"

// RecordPaymentCommand represents a customer payment against an order.
type RecordPaymentCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	amount  decimal.Decimal
	method  string

	guard guard.ConstructorGuard
}

// NewRecordPaymentCommand creates a command to apply a positive payment
// amount to an order. An empty method defaults to cash.
func NewRecordPaymentCommand(orderID kernel.UUID, amount decimal.Decimal, method string) (RecordPaymentCommand, error) {
	if err := orderID.Validate(); err != nil {
		return RecordPaymentCommand{}, err
	}
	if !amount.IsPositive() {
		return RecordPaymentCommand{}, errs.NewValueIsInvalidErrorWithCause("payment amount is invalid",
			fmt.Errorf("%s is not greater than 0", amount))
	}
	if method == "" {
		method = defaultPaymentMethod
	}

	return RecordPaymentCommand{
		orderID: orderID,
		amount:  amount,
		method:  method,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c RecordPaymentCommand) Validate() error {
	return c.guard.Validate(ErrRecordPaymentCommandIsNotConstructed)
}

// OrderID returns the paid order.
func (c RecordPaymentCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Amount returns the payment amount.
func (c RecordPaymentCommand) Amount() decimal.Decimal {
	return c.amount
}

// Method returns the payment method.
func (c RecordPaymentCommand) Method() string {
	return c.method
}
