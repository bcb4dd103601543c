package billing

import (
	"errors"
	"fmt"
	"time"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/errs"
	"laundry/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrPaymentIsNotConstructed = errors.New("Payment must be created via NewPayment constructor")

// Payment records a single settlement against an invoice. The initial
// payment is written together with the invoice when the order already
// carries a paid amount at billing time.
type Payment struct {
	id        kernel.UUID
	invoiceID kernel.UUID
	amount    decimal.Decimal
	method    string
	paidAt    time.Time
	guard     guard.ConstructorGuard
}

// NewPayment creates a validated payment record. method is a free-form tag
// ("cash", "upi", "card", ...); empty defaults to "cash".
func NewPayment(id, invoiceID kernel.UUID, amount decimal.Decimal, method string, paidAt time.Time) (*Payment, error) {
	if err := errors.Join(id.Validate(), invoiceID.Validate()); err != nil {
		return nil, err
	}
	if !amount.IsPositive() {
		return nil, errs.NewValueIsInvalidErrorWithCause("payment amount is invalid",
			fmt.Errorf("%s is not greater than 0", amount))
	}
	if method == "" {
		method = "cash"
	}

	return &Payment{
		id:        id,
		invoiceID: invoiceID,
		amount:    amount,
		method:    method,
		paidAt:    paidAt,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the Payment was created through NewPayment.
func (p *Payment) Validate() error {
	if p == nil {
		return ErrPaymentIsNotConstructed
	}
	return p.guard.Validate(ErrPaymentIsNotConstructed)
}

// ID returns the payment's unique identifier.
func (p *Payment) ID() kernel.UUID { return p.id }

// InvoiceID returns the settled invoice's identifier.
func (p *Payment) InvoiceID() kernel.UUID { return p.invoiceID }

// Amount returns the settled amount.
func (p *Payment) Amount() decimal.Decimal { return p.amount }

// Method returns the payment method tag.
func (p *Payment) Method() string { return p.method }

// PaidAt returns the settlement timestamp.
func (p *Payment) PaidAt() time.Time { return p.paidAt }
