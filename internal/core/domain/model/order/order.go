package order

import (
	"errors"
	"fmt"
	"time"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/errs"
	"laundry/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrNoItems is returned when an order is created without service lines.
	ErrNoItems = errors.New("order must contain at least one item")
)

// Order represents a laundry work order. It is the aggregate root that
// manages the order lifecycle from intake through processing, delivery
// and billing.
//
// Order maintains these invariants:
//   - must have valid order and customer identifiers
//   - carries at least one service item
//   - balanceAmount always equals totalAmount − paidAmount
//   - status transitions follow the Status state machine
//   - can only be created through NewOrder or RestoreOrder
//
// The version field supports optimistic concurrency: the repository only
// applies an update when the stored version matches, so two racing status
// changes against the same prior state cannot both succeed.
type Order struct {
	id            kernel.UUID
	customerID    kernel.UUID
	customerName  string
	customerPhone string
	items         []Item
	totalAmount   decimal.Decimal
	paidAmount    decimal.Decimal
	balanceAmount decimal.Decimal
	status        Status
	version       int
	createdAt     time.Time
	guard         guard.ConstructorGuard
}

// NewOrder creates a new work order in Received status with totals derived
// from the item lines and nothing paid yet.
//
// customerPhone may be empty; notifications for such orders are skipped as
// permanently undeliverable, but the order itself is valid.
func NewOrder(
	id kernel.UUID,
	customerID kernel.UUID,
	customerName string,
	customerPhone string,
	items []Item,
) (*Order, error) {
	o := &Order{
		status:    Received,
		version:   1,
		createdAt: time.Now().UTC(),
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomer(customerID, customerName),
		o.setItems(items),
	); err != nil {
		return nil, err
	}

	o.customerPhone = customerPhone
	o.totalAmount = sumItems(items)
	o.paidAmount = decimal.Zero
	o.balanceAmount = o.totalAmount

	return o, nil
}

// RestoreOrder reconstructs an order from persistence.
// The stored status and monetary fields are trusted after validation;
// balance is recomputed from total and paid to hold the balance invariant
// even against historical rows.
func RestoreOrder(
	id kernel.UUID,
	customerID kernel.UUID,
	customerName string,
	customerPhone string,
	items []Item,
	paidAmount decimal.Decimal,
	status Status,
	version int,
	createdAt time.Time,
) (*Order, error) {
	o := &Order{
		createdAt: createdAt,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomer(customerID, customerName),
		o.setItems(items),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	if version < 1 {
		return nil, errs.NewVersionIsInvalidError("order version",
			fmt.Errorf("%d is not a valid version", version))
	}
	if paidAmount.IsNegative() {
		return nil, errs.NewValueIsInvalidErrorWithCause("paidAmount is invalid",
			fmt.Errorf("%s is negative", paidAmount))
	}

	o.customerPhone = customerPhone
	o.status = status
	o.version = version
	o.totalAmount = sumItems(items)
	o.paidAmount = paidAmount
	o.balanceAmount = o.totalAmount.Sub(paidAmount)

	return o, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// CustomerID returns the identifier of the owning customer.
func (o *Order) CustomerID() kernel.UUID {
	return o.customerID
}

// CustomerName returns the customer display name snapshot.
func (o *Order) CustomerName() string {
	return o.customerName
}

// CustomerPhone returns the customer phone snapshot used for notifications.
func (o *Order) CustomerPhone() string {
	return o.customerPhone
}

// Items returns a copy of the order's service lines.
func (o *Order) Items() []Item {
	items := make([]Item, len(o.items))
	copy(items, o.items)
	return items
}

// TotalAmount returns the sum of all line totals.
func (o *Order) TotalAmount() decimal.Decimal {
	return o.totalAmount
}

// PaidAmount returns the amount the customer has paid so far.
func (o *Order) PaidAmount() decimal.Decimal {
	return o.paidAmount
}

// BalanceAmount returns totalAmount − paidAmount.
func (o *Order) BalanceAmount() decimal.Decimal {
	return o.balanceAmount
}

// Status returns the current lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// Version returns the optimistic-concurrency version of the aggregate.
func (o *Order) Version() int {
	return o.version
}

// CreatedAt returns the intake timestamp.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// ChangeStatus moves the order to target following the lifecycle rules.
// Callers must treat target == current status as a no-op before calling;
// the state machine rejects self-transitions.
func (o *Order) ChangeStatus(target Status) error {
	newStatus, err := o.status.TransitionTo(target)
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// RecordPayment applies a customer payment to the order, keeping
// balance = total − paid. Overpayment is allowed; the balance goes negative
// and billing treats the invoice as fully paid.
func (o *Order) RecordPayment(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return errs.NewValueIsInvalidErrorWithCause("payment amount is invalid",
			fmt.Errorf("%s is not greater than 0", amount))
	}

	o.paidAmount = o.paidAmount.Add(amount)
	o.balanceAmount = o.totalAmount.Sub(o.paidAmount)
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCustomer(customerID kernel.UUID, customerName string) error {
	if err := customerID.Validate(); err != nil {
		return err
	}
	if customerName == "" {
		return errs.NewValueIsRequiredError("customerName")
	}
	o.customerID = customerID
	o.customerName = customerName
	return nil
}

func (o *Order) setItems(items []Item) error {
	if len(items) == 0 {
		return ErrNoItems
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}
	o.items = make([]Item, len(items))
	copy(o.items, items)
	return nil
}

func sumItems(items []Item) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.LineTotal())
	}
	return total
}
