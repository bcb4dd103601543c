package notification_test

import (
	"testing"
	"time"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/notification"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEntry(t *testing.T, maxAttempts int) *notification.QueueEntry {
	t.Helper()
	e, err := notification.NewQueueEntry(
		kernel.NewUUID(), kernel.NewUUID(),
		notification.PriorityHigh, time.Now().UTC(), maxAttempts,
	)
	require.NoError(t, err)
	return e
}

func TestNewQueueEntry(t *testing.T) {
	t.Run("starts_pending_with_zero_attempts", func(t *testing.T) {
		e := newTestEntry(t, 3)
		assert.Equal(t, notification.QueuePending, e.Status())
		assert.Equal(t, 0, e.Attempts())
		assert.Equal(t, 3, e.MaxAttempts())
	})

	t.Run("defaults_max_attempts", func(t *testing.T) {
		e := newTestEntry(t, 0)
		assert.Equal(t, notification.DefaultMaxAttempts, e.MaxAttempts())
	})

	t.Run("rejects_invalid_priority", func(t *testing.T) {
		_, err := notification.NewQueueEntry(
			kernel.NewUUID(), kernel.NewUUID(),
			notification.Priority(9), time.Now(), 3,
		)
		require.Error(t, err)
	})
}

func TestQueueEntry_RecordFailure(t *testing.T) {
	t.Run("backoff_schedule_strictly_increases", func(t *testing.T) {
		e := newTestEntry(t, 5)
		base := 30 * time.Second
		now := time.Now().UTC()

		prev := e.ScheduledAt()
		for i := 1; i < 5; i++ {
			exhausted := e.RecordFailure(now, base)
			require.False(t, exhausted)
			assert.Equal(t, i, e.Attempts())
			assert.Equal(t, notification.QueuePending, e.Status())
			assert.True(t, e.ScheduledAt().After(prev),
				"scheduledAt must strictly increase across retries")
			// now + base * 2^attempts
			assert.Equal(t, now.Add(base*time.Duration(1<<i)), e.ScheduledAt())
			prev = e.ScheduledAt()
		}
	})

	t.Run("exhaustion_marks_entry_failed", func(t *testing.T) {
		e := newTestEntry(t, 3)
		now := time.Now().UTC()

		require.False(t, e.RecordFailure(now, time.Second))
		require.False(t, e.RecordFailure(now, time.Second))
		require.True(t, e.RecordFailure(now, time.Second))

		assert.Equal(t, notification.QueueFailed, e.Status())
		assert.Equal(t, 3, e.Attempts())
		assert.LessOrEqual(t, e.Attempts(), e.MaxAttempts())
	})
}

func TestQueueEntry_Claim(t *testing.T) {
	t.Run("pending_entry_can_be_claimed_once", func(t *testing.T) {
		e := newTestEntry(t, 3)
		require.NoError(t, e.MarkProcessing())
		require.Error(t, e.MarkProcessing())
	})

	t.Run("eligibility_respects_schedule", func(t *testing.T) {
		now := time.Now().UTC()
		e, err := notification.NewQueueEntry(
			kernel.NewUUID(), kernel.NewUUID(),
			notification.PriorityMedium, now.Add(time.Minute), 3,
		)
		require.NoError(t, err)

		assert.False(t, e.IsEligible(now))
		assert.True(t, e.IsEligible(now.Add(2*time.Minute)))
	})
}

func TestQueueEntry_ResetForResend(t *testing.T) {
	t.Run("failed_entry_reenters_queue_at_high_priority", func(t *testing.T) {
		e, err := notification.NewQueueEntry(
			kernel.NewUUID(), kernel.NewUUID(),
			notification.PriorityLow, time.Now().UTC(), 2,
		)
		require.NoError(t, err)

		now := time.Now().UTC()
		require.False(t, e.RecordFailure(now, time.Second))
		require.True(t, e.RecordFailure(now, time.Second))
		require.Equal(t, notification.QueueFailed, e.Status())

		require.NoError(t, e.ResetForResend(now))
		assert.Equal(t, notification.QueuePending, e.Status())
		assert.Equal(t, 0, e.Attempts())
		assert.Equal(t, notification.PriorityHigh, e.Priority())
	})

	t.Run("non_failed_entry_cannot_be_resent", func(t *testing.T) {
		e := newTestEntry(t, 3)
		require.Error(t, e.ResetForResend(time.Now().UTC()))
	})
}

func TestRestoreQueueEntry(t *testing.T) {
	t.Run("rejects_attempts_beyond_budget", func(t *testing.T) {
		_, err := notification.RestoreQueueEntry(
			kernel.NewUUID(), kernel.NewUUID(),
			notification.PriorityHigh, time.Now().UTC(),
			5, 3, notification.QueuePending, time.Now().UTC(),
		)
		require.Error(t, err)
	})
}
