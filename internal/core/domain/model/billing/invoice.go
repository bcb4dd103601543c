package billing

import (
	"errors"
	"fmt"
	"time"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/pkg/errs"
	"laundry/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	ErrInvoiceIsNotConstructed = errors.New("Invoice must be created via NewInvoice constructor")

	// ErrNoLineItems is returned when an invoice is created without lines.
	ErrNoLineItems = errors.New("invoice must contain at least one line item")
)

// LineItem is an immutable snapshot of one order service line at billing
// time. Invoices keep their own copy so later edits to the order catalog
// cannot rewrite issued bills.
type LineItem struct {
	serviceType string
	description string
	quantity    int
	unitPrice   decimal.Decimal
	lineTotal   decimal.Decimal
	guard       guard.ConstructorGuard
}

// NewLineItem creates a validated invoice line.
func NewLineItem(serviceType, description string, quantity int, unitPrice decimal.Decimal) (LineItem, error) {
	if serviceType == "" {
		return LineItem{}, errs.NewValueIsRequiredError("serviceType")
	}
	if quantity <= 0 {
		return LineItem{}, errs.NewValueIsInvalidErrorWithCause("quantity is invalid",
			fmt.Errorf("%d is not greater than 0", quantity))
	}
	if unitPrice.IsNegative() {
		return LineItem{}, errs.NewValueIsInvalidErrorWithCause("unitPrice is invalid",
			fmt.Errorf("%s is negative", unitPrice))
	}

	return LineItem{
		serviceType: serviceType,
		description: description,
		quantity:    quantity,
		unitPrice:   unitPrice,
		lineTotal:   unitPrice.Mul(decimal.NewFromInt(int64(quantity))),
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// LineItemFromOrderItem snapshots an order service line onto an invoice.
func LineItemFromOrderItem(item order.Item) (LineItem, error) {
	if err := item.Validate(); err != nil {
		return LineItem{}, err
	}
	return NewLineItem(item.ServiceType(), item.Description(), item.Quantity(), item.UnitPrice())
}

// Validate ensures the line was created through NewLineItem.
func (li LineItem) Validate() error {
	return li.guard.Validate(errors.New("LineItem must be created via NewLineItem constructor"))
}

// ServiceType returns the billed service catalog tag.
func (li LineItem) ServiceType() string { return li.serviceType }

// Description returns the billed line description.
func (li LineItem) Description() string { return li.description }

// Quantity returns the billed quantity.
func (li LineItem) Quantity() int { return li.quantity }

// UnitPrice returns the billed price per unit.
func (li LineItem) UnitPrice() decimal.Decimal { return li.unitPrice }

// LineTotal returns quantity × unit price as frozen at billing time.
func (li LineItem) LineTotal() decimal.Decimal { return li.lineTotal }

// Invoice is the billable document generated exactly once when a work order
// reaches its billing status.
//
// Invariants:
//   - at most one invoice exists per order (unique order reference)
//   - total = subtotal + tax; balance = total − paid
//   - payment status is always derived from the paid/total ratio
type Invoice struct {
	id            kernel.UUID
	orderID       kernel.UUID
	number        string
	lineItems     []LineItem
	subtotal      decimal.Decimal
	tax           decimal.Decimal
	total         decimal.Decimal
	paid          decimal.Decimal
	balance       decimal.Decimal
	paymentStatus PaymentStatus
	createdAt     time.Time
	guard         guard.ConstructorGuard
}

// NewInvoice derives an invoice from an order snapshot. The subtotal comes
// from the line items, tax from the configured rate (rounded to 2 decimal
// places), and the payment fields reflect whatever the customer has already
// paid on the order.
func NewInvoice(
	id kernel.UUID,
	orderID kernel.UUID,
	number string,
	lineItems []LineItem,
	taxRate decimal.Decimal,
	paidAmount decimal.Decimal,
) (*Invoice, error) {
	inv := &Invoice{
		createdAt: time.Now().UTC(),
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		inv.setID(id),
		inv.setOrderID(orderID),
		inv.setNumber(number),
		inv.setLineItems(lineItems),
	); err != nil {
		return nil, err
	}

	if taxRate.IsNegative() {
		return nil, errs.NewValueIsInvalidErrorWithCause("taxRate is invalid",
			fmt.Errorf("%s is negative", taxRate))
	}
	if paidAmount.IsNegative() {
		return nil, errs.NewValueIsInvalidErrorWithCause("paidAmount is invalid",
			fmt.Errorf("%s is negative", paidAmount))
	}

	inv.subtotal = sumLines(lineItems)
	inv.tax = inv.subtotal.Mul(taxRate).Round(2)
	inv.total = inv.subtotal.Add(inv.tax)
	inv.paid = paidAmount
	inv.balance = inv.total.Sub(paidAmount)
	inv.paymentStatus = DerivePaymentStatus(inv.paid, inv.total)

	return inv, nil
}

// RestoreInvoice reconstructs an invoice from persistence. Monetary totals
// are recomputed from the stored lines and tax amount so the arithmetic
// invariants hold even against historical rows.
func RestoreInvoice(
	id kernel.UUID,
	orderID kernel.UUID,
	number string,
	lineItems []LineItem,
	tax decimal.Decimal,
	paidAmount decimal.Decimal,
	createdAt time.Time,
) (*Invoice, error) {
	inv := &Invoice{
		createdAt: createdAt,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		inv.setID(id),
		inv.setOrderID(orderID),
		inv.setNumber(number),
		inv.setLineItems(lineItems),
	); err != nil {
		return nil, err
	}

	if tax.IsNegative() || paidAmount.IsNegative() {
		return nil, errs.NewValueIsInvalidError("invoice monetary fields")
	}

	inv.subtotal = sumLines(lineItems)
	inv.tax = tax
	inv.total = inv.subtotal.Add(tax)
	inv.paid = paidAmount
	inv.balance = inv.total.Sub(paidAmount)
	inv.paymentStatus = DerivePaymentStatus(inv.paid, inv.total)

	return inv, nil
}

// Validate ensures the Invoice instance was properly constructed.
func (inv *Invoice) Validate() error {
	if inv == nil {
		return ErrInvoiceIsNotConstructed
	}
	return inv.guard.Validate(ErrInvoiceIsNotConstructed)
}

// ID returns the invoice's unique identifier.
func (inv *Invoice) ID() kernel.UUID { return inv.id }

// OrderID returns the billed order's identifier.
func (inv *Invoice) OrderID() kernel.UUID { return inv.orderID }

// Number returns the human-readable invoice number.
func (inv *Invoice) Number() string { return inv.number }

// LineItems returns a copy of the billed lines.
func (inv *Invoice) LineItems() []LineItem {
	lines := make([]LineItem, len(inv.lineItems))
	copy(lines, inv.lineItems)
	return lines
}

// Subtotal returns the pre-tax sum of line totals.
func (inv *Invoice) Subtotal() decimal.Decimal { return inv.subtotal }

// Tax returns the tax applied on the subtotal.
func (inv *Invoice) Tax() decimal.Decimal { return inv.tax }

// Total returns subtotal + tax.
func (inv *Invoice) Total() decimal.Decimal { return inv.total }

// Paid returns the settled amount.
func (inv *Invoice) Paid() decimal.Decimal { return inv.paid }

// Balance returns total − paid.
func (inv *Invoice) Balance() decimal.Decimal { return inv.balance }

// PaymentStatus returns the derived settlement state.
func (inv *Invoice) PaymentStatus() PaymentStatus { return inv.paymentStatus }

// CreatedAt returns the billing timestamp.
func (inv *Invoice) CreatedAt() time.Time { return inv.createdAt }

// RecordPayment applies a payment to the invoice, keeping balance and
// payment status in step.
func (inv *Invoice) RecordPayment(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return errs.NewValueIsInvalidErrorWithCause("payment amount is invalid",
			fmt.Errorf("%s is not greater than 0", amount))
	}

	inv.paid = inv.paid.Add(amount)
	inv.balance = inv.total.Sub(inv.paid)
	inv.paymentStatus = DerivePaymentStatus(inv.paid, inv.total)
	return nil
}

// RenumberWith replaces the invoice number. Used for the single retry after
// a unique-constraint collision on insert.
func (inv *Invoice) RenumberWith(number string) error {
	return inv.setNumber(number)
}

func (inv *Invoice) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	inv.id = id
	return nil
}

func (inv *Invoice) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	inv.orderID = orderID
	return nil
}

func (inv *Invoice) setNumber(number string) error {
	if number == "" {
		return errs.NewValueIsRequiredError("invoice number")
	}
	inv.number = number
	return nil
}

func (inv *Invoice) setLineItems(lineItems []LineItem) error {
	if len(lineItems) == 0 {
		return ErrNoLineItems
	}
	for _, line := range lineItems {
		if err := line.Validate(); err != nil {
			return err
		}
	}
	inv.lineItems = make([]LineItem, len(lineItems))
	copy(inv.lineItems, lineItems)
	return nil
}

func sumLines(lineItems []LineItem) decimal.Decimal {
	total := decimal.Zero
	for _, line := range lineItems {
		total = total.Add(line.LineTotal())
	}
	return total
}
