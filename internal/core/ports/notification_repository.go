package ports

import (
	"context"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/notification"
)

// NotificationRepository defines the persistence contract for notification
// records.
type NotificationRepository interface {
	// Add persists a new notification record.
	Add(ctx context.Context, aggregate *notification.Record) error

	// Update persists changes to an existing record as retries proceed.
	Update(ctx context.Context, aggregate *notification.Record) error

	// Get retrieves a record by identifier.
	Get(ctx context.Context, id kernel.UUID) (*notification.Record, error)
}

// QueueRepository defines the persistence contract for the durable retry
// queue.
type QueueRepository interface {
	// Add enqueues a new entry.
	Add(ctx context.Context, aggregate *notification.QueueEntry) error

	// Update persists changes to an existing entry.
	Update(ctx context.Context, aggregate *notification.QueueEntry) error

	// GetByNotificationID retrieves the entry backing a record, or an
	// ObjectNotFoundError when none exists.
	GetByNotificationID(ctx context.Context, notificationID kernel.UUID) (*notification.QueueEntry, error)

	// ClaimNextDue atomically claims the oldest eligible pending entry
	// whose scheduledAt is due, ordered by priority then scheduledAt.
	// The claim is a compare-and-set of pending -> processing, so two
	// concurrent workers can never claim the same entry. Returns an
	// ObjectNotFoundError when nothing is eligible.
	ClaimNextDue(ctx context.Context) (*notification.QueueEntry, error)
}

// SenderRepository defines the persistence contract for messaging senders.
type SenderRepository interface {
	// Add persists a new sender. When the sender is flagged default, all
	// other defaults are cleared in the same transaction, preserving the
	// at-most-one-default invariant.
	Add(ctx context.Context, aggregate *notification.Sender) error

	// Update persists changes to an existing sender, clearing other
	// defaults in the same transaction when the default flag is set.
	Update(ctx context.Context, aggregate *notification.Sender) error

	// Get retrieves a sender by identifier.
	Get(ctx context.Context, id kernel.UUID) (*notification.Sender, error)

	// GetDefault retrieves the active default sender, or an
	// ObjectNotFoundError when none is configured.
	GetDefault(ctx context.Context) (*notification.Sender, error)
}

// TemplateRepository defines the persistence contract for message templates.
type TemplateRepository interface {
	// Add persists a new template.
	Add(ctx context.Context, aggregate *notification.Template) error

	// Update persists changes to an existing template.
	Update(ctx context.Context, aggregate *notification.Template) error

	// Delete removes a template.
	Delete(ctx context.Context, id kernel.UUID) error

	// Get retrieves a template by identifier.
	Get(ctx context.Context, id kernel.UUID) (*notification.Template, error)

	// GetActiveByType retrieves an active template of the given type, or
	// an ObjectNotFoundError when none is configured.
	GetActiveByType(ctx context.Context, kind notification.TemplateType) (*notification.Template, error)
}
