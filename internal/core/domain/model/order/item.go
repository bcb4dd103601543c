package order

import (
	"errors"
	"fmt"

	"laundry/internal/pkg/errs"
	"laundry/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrItemIsNotConstructed = errors.New("Item must be created via NewItem constructor")

// Item is a single service line on a work order: a quantity of garments
// handled under one service type at a unit price.
//
// Item is an immutable value object; all monetary arithmetic uses
// fixed-point decimals.
type Item struct {
	serviceType string
	description string
	quantity    int
	unitPrice   decimal.Decimal
	guard       guard.ConstructorGuard
}

// NewItem creates a validated order item.
// serviceType is a free-form catalog tag ("wash", "dry_clean", "iron", ...);
// quantity must be positive and unitPrice non-negative.
func NewItem(serviceType, description string, quantity int, unitPrice decimal.Decimal) (Item, error) {
	if serviceType == "" {
		return Item{}, errs.NewValueIsRequiredError("serviceType")
	}
	if quantity <= 0 {
		return Item{}, errs.NewValueIsInvalidErrorWithCause("quantity is invalid",
			fmt.Errorf("%d is not greater than 0", quantity))
	}
	if unitPrice.IsNegative() {
		return Item{}, errs.NewValueIsInvalidErrorWithCause("unitPrice is invalid",
			fmt.Errorf("%s is negative", unitPrice))
	}

	return Item{
		serviceType: serviceType,
		description: description,
		quantity:    quantity,
		unitPrice:   unitPrice,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the item was created through NewItem.
func (i Item) Validate() error {
	return i.guard.Validate(ErrItemIsNotConstructed)
}

// ServiceType returns the service catalog tag for the line.
func (i Item) ServiceType() string {
	return i.serviceType
}

// Description returns the free-form line description.
func (i Item) Description() string {
	return i.description
}

// Quantity returns the number of garments on the line.
func (i Item) Quantity() int {
	return i.quantity
}

// UnitPrice returns the price per garment.
func (i Item) UnitPrice() decimal.Decimal {
	return i.unitPrice
}

// LineTotal returns quantity × unit price.
func (i Item) LineTotal() decimal.Decimal {
	return i.unitPrice.Mul(decimal.NewFromInt(int64(i.quantity)))
}
