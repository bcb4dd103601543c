package notification_test

import (
	"testing"
	"time"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/notification"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRecord(t *testing.T) *notification.Record {
	t.Helper()
	r, err := notification.NewRecord(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), nil,
		notification.TypeStatusChange, "+919800000001",
		"Your order is ready", notification.DefaultMaxRetries,
	)
	require.NoError(t, err)
	return r
}

func TestNewRecord(t *testing.T) {
	t.Run("starts_pending", func(t *testing.T) {
		r := newTestRecord(t)
		assert.Equal(t, notification.DeliveryPending, r.Status())
		assert.Equal(t, 0, r.RetryCount())
		assert.Nil(t, r.SentAt())
	})

	t.Run("requires_body", func(t *testing.T) {
		_, err := notification.NewRecord(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), nil,
			notification.TypeStatusChange, "+919800000001", "", 3,
		)
		require.Error(t, err)
	})

	t.Run("defaults_max_retries", func(t *testing.T) {
		r, err := notification.NewRecord(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), nil,
			notification.TypeCustom, "", "hello", 0,
		)
		require.NoError(t, err)
		assert.Equal(t, notification.DefaultMaxRetries, r.MaxRetries())
	})
}

func TestRecord_DeliveryOutcomes(t *testing.T) {
	t.Run("mark_sent_captures_provider_response", func(t *testing.T) {
		r := newTestRecord(t)
		at := time.Now().UTC()

		r.MarkSent(`{"message_id":"wamid.123"}`, at)

		assert.Equal(t, notification.DeliverySent, r.Status())
		assert.Equal(t, `{"message_id":"wamid.123"}`, r.ProviderResponse())
		require.NotNil(t, r.SentAt())
		assert.Equal(t, at, *r.SentAt())
	})

	t.Run("initial_failure_does_not_consume_retry", func(t *testing.T) {
		r := newTestRecord(t)
		r.MarkFailed("connection refused")

		assert.Equal(t, notification.DeliveryFailed, r.Status())
		assert.Equal(t, 0, r.RetryCount())
		assert.Equal(t, "connection refused", r.LastError())
	})

	t.Run("fail_once_then_succeed_on_retry", func(t *testing.T) {
		r := newTestRecord(t)
		r.MarkFailed("rate limited")

		r.RecordRetrySuccess(`{"sid":"SM123"}`, time.Now().UTC())

		assert.Equal(t, notification.DeliverySent, r.Status())
		assert.Equal(t, 1, r.RetryCount())
		assert.Empty(t, r.LastError())
	})

	t.Run("retry_failures_exhaust_the_budget", func(t *testing.T) {
		r := newTestRecord(t)
		r.MarkFailed("timeout")

		require.NoError(t, r.RecordRetryFailure("timeout"))
		require.NoError(t, r.RecordRetryFailure("timeout"))
		require.ErrorIs(t, r.RecordRetryFailure("timeout"), notification.ErrRetriesExhausted)

		assert.Equal(t, notification.DeliveryFailed, r.Status())
		assert.Equal(t, r.MaxRetries(), r.RetryCount())
	})
}

func TestRecord_ResetForResend(t *testing.T) {
	t.Run("failed_record_reopens_with_zero_retries", func(t *testing.T) {
		r := newTestRecord(t)
		r.MarkFailed("timeout")
		require.NoError(t, r.RecordRetryFailure("timeout"))

		require.NoError(t, r.ResetForResend())
		assert.Equal(t, notification.DeliveryPending, r.Status())
		assert.Equal(t, 0, r.RetryCount())
	})

	t.Run("sent_record_cannot_be_resent", func(t *testing.T) {
		r := newTestRecord(t)
		r.MarkSent("ok", time.Now().UTC())
		require.Error(t, r.ResetForResend())
	})
}

func TestPriorityForType(t *testing.T) {
	assert.Equal(t, notification.PriorityHigh, notification.PriorityForType(notification.TypeStatusChange))
	assert.Equal(t, notification.PriorityMedium, notification.PriorityForType(notification.TypeDeliveryReminder))
	assert.Equal(t, notification.PriorityMedium, notification.PriorityForType(notification.TypePaymentReminder))
	assert.Equal(t, notification.PriorityLow, notification.PriorityForType(notification.TypeCustom))
}

func TestSender(t *testing.T) {
	creds := notification.Credentials{
		notification.CredAccountSID: "AC123",
		notification.CredAuthToken:  "token",
		notification.CredFromNumber: "+15550001111",
	}

	t.Run("valid_sender", func(t *testing.T) {
		s, err := notification.NewSender(kernel.NewUUID(), "main line",
			notification.ProviderTwilio, creds, true)
		require.NoError(t, err)
		assert.True(t, s.IsDefault())
		assert.True(t, s.IsActive())
	})

	t.Run("missing_credential_key_rejected", func(t *testing.T) {
		_, err := notification.NewSender(kernel.NewUUID(), "main line",
			notification.ProviderMeta, creds, false)
		require.Error(t, err)
	})

	t.Run("unknown_provider_rejected", func(t *testing.T) {
		_, err := notification.NewSender(kernel.NewUUID(), "main line",
			notification.ProviderKind("smoke-signal"), creds, false)
		require.Error(t, err)
	})

	t.Run("deactivate_clears_default", func(t *testing.T) {
		s, err := notification.NewSender(kernel.NewUUID(), "main line",
			notification.ProviderTwilio, creds, true)
		require.NoError(t, err)

		s.Deactivate()
		assert.False(t, s.IsActive())
		assert.False(t, s.IsDefault())
	})
}

func TestTemplate(t *testing.T) {
	t.Run("valid_template", func(t *testing.T) {
		tpl, err := notification.NewTemplate(kernel.NewUUID(), "status update",
			notification.TypeStatusChange, "Hi {{customer_name}}, order {{order_id}} is {{new_status}}.")
		require.NoError(t, err)
		assert.True(t, tpl.IsActive())
	})

	t.Run("requires_body", func(t *testing.T) {
		_, err := notification.NewTemplate(kernel.NewUUID(), "x",
			notification.TypeStatusChange, "")
		require.Error(t, err)
	})

	t.Run("update_validates_type", func(t *testing.T) {
		tpl, err := notification.NewTemplate(kernel.NewUUID(), "x",
			notification.TypeCustom, "body")
		require.NoError(t, err)
		require.Error(t, tpl.Update("x", notification.TemplateType("bogus"), "body", true))
	})
}
