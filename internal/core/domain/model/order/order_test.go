package order_test

import (
	"testing"
	"time"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustItem(t *testing.T, serviceType string, qty int, price string) order.Item {
	t.Helper()
	item, err := order.NewItem(serviceType, "", qty, decimal.RequireFromString(price))
	require.NoError(t, err)
	return item
}

func newTestOrder(t *testing.T) *order.Order {
	t.Helper()
	o, err := order.NewOrder(
		kernel.NewUUID(),
		kernel.NewUUID(),
		"Asha Rao",
		"+919800000001",
		[]order.Item{
			mustItem(t, "wash", 4, "50.00"),
			mustItem(t, "iron", 6, "50.00"),
		},
	)
	require.NoError(t, err)
	return o
}

func TestNewItem(t *testing.T) {
	t.Run("valid_item", func(t *testing.T) {
		item, err := order.NewItem("dry_clean", "silk saree", 2, decimal.RequireFromString("120.50"))
		require.NoError(t, err)
		assert.Equal(t, "dry_clean", item.ServiceType())
		assert.Equal(t, 2, item.Quantity())
		assert.True(t, item.LineTotal().Equal(decimal.RequireFromString("241.00")))
	})

	t.Run("rejects_empty_service_type", func(t *testing.T) {
		_, err := order.NewItem("", "", 1, decimal.NewFromInt(10))
		require.Error(t, err)
	})

	t.Run("rejects_non_positive_quantity", func(t *testing.T) {
		_, err := order.NewItem("wash", "", 0, decimal.NewFromInt(10))
		require.Error(t, err)
	})

	t.Run("rejects_negative_price", func(t *testing.T) {
		_, err := order.NewItem("wash", "", 1, decimal.NewFromInt(-1))
		require.Error(t, err)
	})

	t.Run("zero_value_item_fails_validation", func(t *testing.T) {
		var item order.Item
		require.ErrorIs(t, item.Validate(), order.ErrItemIsNotConstructed)
	})
}

func TestNewOrder(t *testing.T) {
	t.Run("derives_totals_from_items", func(t *testing.T) {
		o := newTestOrder(t)

		assert.Equal(t, order.Received, o.Status())
		assert.True(t, o.TotalAmount().Equal(decimal.RequireFromString("500.00")))
		assert.True(t, o.PaidAmount().IsZero())
		assert.True(t, o.BalanceAmount().Equal(o.TotalAmount()))
		assert.Equal(t, 1, o.Version())
		require.NoError(t, o.Validate())
	})

	t.Run("requires_items", func(t *testing.T) {
		_, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), "Asha Rao", "", nil)
		require.ErrorIs(t, err, order.ErrNoItems)
	})

	t.Run("requires_customer_name", func(t *testing.T) {
		_, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), "", "",
			[]order.Item{mustItem(t, "wash", 1, "10.00")})
		require.Error(t, err)
	})

	t.Run("requires_valid_ids", func(t *testing.T) {
		_, err := order.NewOrder(kernel.UUID{}, kernel.NewUUID(), "Asha Rao", "",
			[]order.Item{mustItem(t, "wash", 1, "10.00")})
		require.Error(t, err)
	})

	t.Run("zero_value_order_fails_validation", func(t *testing.T) {
		var o order.Order
		require.ErrorIs(t, o.Validate(), order.ErrOrderIsNotConstructed)
	})
}

func TestRestoreOrder(t *testing.T) {
	t.Run("recomputes_balance_from_total_and_paid", func(t *testing.T) {
		o, err := order.RestoreOrder(
			kernel.NewUUID(), kernel.NewUUID(), "Asha Rao", "+919800000001",
			[]order.Item{mustItem(t, "wash", 4, "50.00")},
			decimal.RequireFromString("150.00"),
			order.InProcess, 3, time.Now().UTC(),
		)
		require.NoError(t, err)
		assert.True(t, o.BalanceAmount().Equal(decimal.RequireFromString("50.00")))
		assert.Equal(t, order.InProcess, o.Status())
		assert.Equal(t, 3, o.Version())
	})

	t.Run("rejects_invalid_version", func(t *testing.T) {
		_, err := order.RestoreOrder(
			kernel.NewUUID(), kernel.NewUUID(), "Asha Rao", "",
			[]order.Item{mustItem(t, "wash", 1, "10.00")},
			decimal.Zero, order.Received, 0, time.Now().UTC(),
		)
		require.Error(t, err)
	})

	t.Run("rejects_negative_paid_amount", func(t *testing.T) {
		_, err := order.RestoreOrder(
			kernel.NewUUID(), kernel.NewUUID(), "Asha Rao", "",
			[]order.Item{mustItem(t, "wash", 1, "10.00")},
			decimal.NewFromInt(-5), order.Received, 1, time.Now().UTC(),
		)
		require.Error(t, err)
	})
}

func TestOrder_ChangeStatus(t *testing.T) {
	t.Run("walks_the_lifecycle_forward", func(t *testing.T) {
		o := newTestOrder(t)

		for _, next := range []order.Status{
			order.InProcess, order.ReadyForDelivery, order.Delivered, order.Billed,
		} {
			require.NoError(t, o.ChangeStatus(next))
			assert.Equal(t, next, o.Status())
		}
	})

	t.Run("illegal_transition_leaves_status_unchanged", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.ChangeStatus(order.Delivered))

		err := o.ChangeStatus(order.Received)
		require.Error(t, err)
		assert.Equal(t, order.Delivered, o.Status())
	})

	t.Run("cancel_from_any_non_terminal_state", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.ChangeStatus(order.InProcess))
		require.NoError(t, o.ChangeStatus(order.Cancelled))
		assert.Equal(t, order.Cancelled, o.Status())
	})
}

func TestOrder_RecordPayment(t *testing.T) {
	t.Run("balance_invariant_holds_after_each_payment", func(t *testing.T) {
		o := newTestOrder(t)

		require.NoError(t, o.RecordPayment(decimal.RequireFromString("200.00")))
		assert.True(t, o.BalanceAmount().Equal(o.TotalAmount().Sub(o.PaidAmount())))
		assert.True(t, o.BalanceAmount().Equal(decimal.RequireFromString("300.00")))

		require.NoError(t, o.RecordPayment(decimal.RequireFromString("300.00")))
		assert.True(t, o.BalanceAmount().IsZero())
	})

	t.Run("rejects_non_positive_amounts", func(t *testing.T) {
		o := newTestOrder(t)
		require.Error(t, o.RecordPayment(decimal.Zero))
		require.Error(t, o.RecordPayment(decimal.NewFromInt(-10)))
	})
}
