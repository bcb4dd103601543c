package billing

import (
	"fmt"

	"laundry/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// PaymentStatus describes how much of an invoice has been settled.
type PaymentStatus int

const (
	// PaymentUnknown represents an invalid or undefined payment status.
	PaymentUnknown PaymentStatus = iota

	// PaymentPending means nothing has been paid yet.
	PaymentPending

	// PaymentPartial means some, but not all, of the total has been paid.
	PaymentPartial

	// PaymentPaid means the total has been covered in full (or overpaid).
	PaymentPaid
)

func getPaymentStatusStrings() map[PaymentStatus]string {
	return map[PaymentStatus]string{
		PaymentUnknown: "unknown",
		PaymentPending: "pending",
		PaymentPartial: "partial",
		PaymentPaid:    "paid",
	}
}

// DerivePaymentStatus computes the payment status from the paid/total ratio:
// paid == 0 is pending, 0 < paid < total is partial, paid >= total is paid.
// A zero-total invoice counts as paid.
func DerivePaymentStatus(paid, total decimal.Decimal) PaymentStatus {
	switch {
	case paid.GreaterThanOrEqual(total) && total.IsPositive():
		return PaymentPaid
	case total.IsZero() || total.IsNegative():
		return PaymentPaid
	case paid.IsPositive():
		return PaymentPartial
	default:
		return PaymentPending
	}
}

// Validate checks the status is one of the defined values.
func (p PaymentStatus) Validate() error {
	if p == PaymentUnknown {
		return errs.NewValueIsInvalidErrorWithCause("payment status is invalid",
			fmt.Errorf("%d is not a valid payment status", p))
	}
	if _, ok := getPaymentStatusStrings()[p]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("payment status is invalid",
			fmt.Errorf("%d is not a valid payment status", p))
	}
	return nil
}

// String returns the wire representation of the payment status.
func (p PaymentStatus) String() string {
	if str, ok := getPaymentStatusStrings()[p]; ok {
		return str
	}
	return "unknown"
}
