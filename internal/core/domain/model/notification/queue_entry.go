package notification

import (
	"errors"
	"fmt"
	"time"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/errs"
	"laundry/internal/pkg/guard"
)

var ErrQueueEntryIsNotConstructed = errors.New("QueueEntry must be created via NewQueueEntry constructor")

// DefaultMaxAttempts is the re-delivery budget of a queue entry unless
// configured otherwise.
const DefaultMaxAttempts = 3

// QueueStatus is the lifecycle state of a queue entry.
type QueueStatus string

const (
	// QueuePending means the entry is waiting for its scheduled time.
	QueuePending QueueStatus = "pending"

	// QueueProcessing means a worker has claimed the entry. At most one
	// entry per notification record may be in this state; the claim is a
	// compare-and-set in storage.
	QueueProcessing QueueStatus = "processing"

	// QueueCompleted means the re-delivery succeeded. Terminal.
	QueueCompleted QueueStatus = "completed"

	// QueueFailed means the attempts were exhausted or the failure was
	// permanent. Terminal.
	QueueFailed QueueStatus = "failed"
)

// Validate checks the queue status is one of the defined values.
func (s QueueStatus) Validate() error {
	switch s {
	case QueuePending, QueueProcessing, QueueCompleted, QueueFailed:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("queue status is invalid",
			fmt.Errorf("%q is not a valid queue status", string(s)))
	}
}

func (s QueueStatus) String() string {
	return string(s)
}

// QueueEntry is a durable, retryable unit of pending notification work,
// created when a send fails and drained by the background retry worker.
type QueueEntry struct {
	id             kernel.UUID
	notificationID kernel.UUID
	priority       Priority
	scheduledAt    time.Time
	attempts       int
	maxAttempts    int
	status         QueueStatus
	createdAt      time.Time
	guard          guard.ConstructorGuard
}

// NewQueueEntry enqueues a failed notification for re-delivery at
// scheduledAt.
func NewQueueEntry(
	id kernel.UUID,
	notificationID kernel.UUID,
	priority Priority,
	scheduledAt time.Time,
	maxAttempts int,
) (*QueueEntry, error) {
	if err := errors.Join(
		id.Validate(),
		notificationID.Validate(),
		priority.Validate(),
	); err != nil {
		return nil, err
	}
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}

	return &QueueEntry{
		id:             id,
		notificationID: notificationID,
		priority:       priority,
		scheduledAt:    scheduledAt.UTC(),
		maxAttempts:    maxAttempts,
		status:         QueuePending,
		createdAt:      time.Now().UTC(),
		guard:          guard.NewConstructorGuard(),
	}, nil
}

// RestoreQueueEntry reconstructs a queue entry from persistence.
func RestoreQueueEntry(
	id kernel.UUID,
	notificationID kernel.UUID,
	priority Priority,
	scheduledAt time.Time,
	attempts int,
	maxAttempts int,
	status QueueStatus,
	createdAt time.Time,
) (*QueueEntry, error) {
	e, err := NewQueueEntry(id, notificationID, priority, scheduledAt, maxAttempts)
	if err != nil {
		return nil, err
	}
	if err := status.Validate(); err != nil {
		return nil, err
	}
	if attempts < 0 || attempts > e.maxAttempts {
		return nil, errs.NewValueIsOutOfRangeError("attempts", attempts, 0, e.maxAttempts)
	}

	e.attempts = attempts
	e.status = status
	e.createdAt = createdAt
	return e, nil
}

// Validate ensures the QueueEntry was created through a constructor.
func (e *QueueEntry) Validate() error {
	if e == nil {
		return ErrQueueEntryIsNotConstructed
	}
	return e.guard.Validate(ErrQueueEntryIsNotConstructed)
}

// ID returns the entry's unique identifier.
func (e *QueueEntry) ID() kernel.UUID { return e.id }

// NotificationID returns the identifier of the record being re-delivered.
func (e *QueueEntry) NotificationID() kernel.UUID { return e.notificationID }

// Priority returns the drain-ordering class.
func (e *QueueEntry) Priority() Priority { return e.priority }

// ScheduledAt returns when the entry next becomes eligible.
func (e *QueueEntry) ScheduledAt() time.Time { return e.scheduledAt }

// Attempts returns how many re-deliveries have been tried.
func (e *QueueEntry) Attempts() int { return e.attempts }

// MaxAttempts returns the re-delivery budget.
func (e *QueueEntry) MaxAttempts() int { return e.maxAttempts }

// Status returns the entry's queue status.
func (e *QueueEntry) Status() QueueStatus { return e.status }

// CreatedAt returns the enqueue time.
func (e *QueueEntry) CreatedAt() time.Time { return e.createdAt }

// IsEligible reports whether a pending entry is due at now.
func (e *QueueEntry) IsEligible(now time.Time) bool {
	return e.status == QueuePending && !e.scheduledAt.After(now)
}

// MarkProcessing reflects a successful storage-level claim on the aggregate.
func (e *QueueEntry) MarkProcessing() error {
	if e.status != QueuePending {
		return errs.NewValueIsInvalidErrorWithCause("queue status is invalid",
			fmt.Errorf("cannot claim entry in status %s", e.status))
	}
	e.status = QueueProcessing
	return nil
}

// Complete marks the re-delivery as succeeded.
func (e *QueueEntry) Complete() {
	e.status = QueueCompleted
}

// Fail marks the entry terminally failed, either because attempts are
// exhausted or because the failure is permanent.
func (e *QueueEntry) Fail() {
	e.status = QueueFailed
}

// RecordFailure consumes one attempt after a failed re-delivery. If budget
// remains, the entry is rescheduled with exponential backoff
// (now + base * 2^attempts) and returned to pending; otherwise it is
// terminally failed. Returns true when the entry is exhausted.
func (e *QueueEntry) RecordFailure(now time.Time, base time.Duration) bool {
	e.attempts++
	if e.attempts >= e.maxAttempts {
		e.status = QueueFailed
		return true
	}

	backoff := base * time.Duration(1<<e.attempts)
	e.scheduledAt = now.UTC().Add(backoff)
	e.status = QueuePending
	return false
}

// ResetForResend reopens a failed entry as a fresh high-priority attempt
// group, eligible immediately.
func (e *QueueEntry) ResetForResend(now time.Time) error {
	if e.status != QueueFailed {
		return errs.NewValueIsInvalidErrorWithCause("queue status is invalid",
			fmt.Errorf("only failed entries can be resent, status is %s", e.status))
	}
	e.attempts = 0
	e.priority = PriorityHigh
	e.scheduledAt = now.UTC()
	e.status = QueuePending
	return nil
}
