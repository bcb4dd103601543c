package billing_test

import (
	"regexp"
	"testing"
	"time"

	"laundry/internal/core/domain/model/billing"
	"laundry/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustLine(t *testing.T, serviceType string, qty int, price string) billing.LineItem {
	t.Helper()
	line, err := billing.NewLineItem(serviceType, "", qty, decimal.RequireFromString(price))
	require.NoError(t, err)
	return line
}

func TestNewInvoice(t *testing.T) {
	t.Run("computes_subtotal_tax_total_and_balance", func(t *testing.T) {
		inv, err := billing.NewInvoice(
			kernel.NewUUID(), kernel.NewUUID(), "INV-20260901-0a1b2c",
			[]billing.LineItem{
				mustLine(t, "wash", 4, "50.00"),
				mustLine(t, "iron", 6, "50.00"),
			},
			decimal.RequireFromString("0.18"),
			decimal.Zero,
		)
		require.NoError(t, err)

		assert.True(t, inv.Subtotal().Equal(decimal.RequireFromString("500.00")))
		assert.True(t, inv.Tax().Equal(decimal.RequireFromString("90.00")))
		assert.True(t, inv.Total().Equal(decimal.RequireFromString("590.00")))
		assert.True(t, inv.Balance().Equal(inv.Total()))
		assert.Equal(t, billing.PaymentPending, inv.PaymentStatus())
	})

	t.Run("partial_payment_carried_from_order", func(t *testing.T) {
		inv, err := billing.NewInvoice(
			kernel.NewUUID(), kernel.NewUUID(), "INV-20260901-0a1b2c",
			[]billing.LineItem{mustLine(t, "wash", 10, "50.00")},
			decimal.Zero,
			decimal.RequireFromString("200.00"),
		)
		require.NoError(t, err)

		assert.True(t, inv.Balance().Equal(decimal.RequireFromString("300.00")))
		assert.Equal(t, billing.PaymentPartial, inv.PaymentStatus())
	})

	t.Run("requires_line_items", func(t *testing.T) {
		_, err := billing.NewInvoice(
			kernel.NewUUID(), kernel.NewUUID(), "INV-20260901-0a1b2c",
			nil, decimal.Zero, decimal.Zero,
		)
		require.ErrorIs(t, err, billing.ErrNoLineItems)
	})

	t.Run("requires_number", func(t *testing.T) {
		_, err := billing.NewInvoice(
			kernel.NewUUID(), kernel.NewUUID(), "",
			[]billing.LineItem{mustLine(t, "wash", 1, "10.00")},
			decimal.Zero, decimal.Zero,
		)
		require.Error(t, err)
	})

	t.Run("rejects_negative_tax_rate", func(t *testing.T) {
		_, err := billing.NewInvoice(
			kernel.NewUUID(), kernel.NewUUID(), "INV-20260901-0a1b2c",
			[]billing.LineItem{mustLine(t, "wash", 1, "10.00")},
			decimal.NewFromInt(-1), decimal.Zero,
		)
		require.Error(t, err)
	})
}

func TestInvoice_RecordPayment(t *testing.T) {
	newInvoice := func(t *testing.T) *billing.Invoice {
		t.Helper()
		inv, err := billing.NewInvoice(
			kernel.NewUUID(), kernel.NewUUID(), "INV-20260901-0a1b2c",
			[]billing.LineItem{mustLine(t, "wash", 10, "50.00")},
			decimal.Zero, decimal.Zero,
		)
		require.NoError(t, err)
		return inv
	}

	t.Run("moves_pending_to_partial_to_paid", func(t *testing.T) {
		inv := newInvoice(t)

		require.NoError(t, inv.RecordPayment(decimal.RequireFromString("100.00")))
		assert.Equal(t, billing.PaymentPartial, inv.PaymentStatus())
		assert.True(t, inv.Balance().Equal(decimal.RequireFromString("400.00")))

		require.NoError(t, inv.RecordPayment(decimal.RequireFromString("400.00")))
		assert.Equal(t, billing.PaymentPaid, inv.PaymentStatus())
		assert.True(t, inv.Balance().IsZero())
	})

	t.Run("overpayment_is_paid_with_negative_balance", func(t *testing.T) {
		inv := newInvoice(t)
		require.NoError(t, inv.RecordPayment(decimal.RequireFromString("600.00")))
		assert.Equal(t, billing.PaymentPaid, inv.PaymentStatus())
		assert.True(t, inv.Balance().IsNegative())
	})

	t.Run("rejects_non_positive_amount", func(t *testing.T) {
		inv := newInvoice(t)
		require.Error(t, inv.RecordPayment(decimal.Zero))
	})
}

func TestDerivePaymentStatus(t *testing.T) {
	total := decimal.NewFromInt(500)

	tests := []struct {
		name     string
		paid     decimal.Decimal
		expected billing.PaymentStatus
	}{
		{"zero_paid_is_pending", decimal.Zero, billing.PaymentPending},
		{"partial_paid", decimal.NewFromInt(100), billing.PaymentPartial},
		{"exactly_total_is_paid", total, billing.PaymentPaid},
		{"overpaid_is_paid", decimal.NewFromInt(600), billing.PaymentPaid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, billing.DerivePaymentStatus(tt.paid, total))
		})
	}
}

func TestGenerateInvoiceNumber(t *testing.T) {
	now := time.Date(2026, 9, 1, 10, 30, 0, 0, time.UTC)

	t.Run("matches_expected_format", func(t *testing.T) {
		number := billing.GenerateInvoiceNumber(now)
		assert.Regexp(t, regexp.MustCompile(`^INV-20260901-[0-9a-f]{6}$`), number)
	})

	t.Run("suffixes_vary_between_calls", func(t *testing.T) {
		seen := make(map[string]bool)
		for range 50 {
			seen[billing.GenerateInvoiceNumber(now)] = true
		}
		assert.Greater(t, len(seen), 1)
	})
}
