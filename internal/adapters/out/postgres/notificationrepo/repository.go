package notificationrepo

import (
	"context"
	"errors"
	"time"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/notification"
	"laundry/internal/pkg/errs"

	"gorm.io/gorm"
)

// claimCandidates limits how many eligible rows a single claim attempt
// inspects before giving up on a contended tick.
const claimCandidates = 5

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// GormNotificationRepository implements NotificationRepository using GORM.
type GormNotificationRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// NewGormNotificationRepository creates a new GORM notification repository.
func NewGormNotificationRepository(db *gorm.DB, tracker aggregateTracker) *GormNotificationRepository {
	return &GormNotificationRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new notification record to the database.
func (r *GormNotificationRepository) Add(ctx context.Context, aggregate *notification.Record) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := recordFromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing notification record to the database.
func (r *GormNotificationRepository) Update(ctx context.Context, aggregate *notification.Record) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := recordFromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&RecordDTO{}).
		Where("id = ?", dto.ID).
		Updates(map[string]any{
			"delivery_status":   dto.DeliveryStatus,
			"retry_count":       dto.RetryCount,
			"provider_response": dto.ProviderResponse,
			"last_error":        dto.LastError,
			"sent_at":           dto.SentAt,
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("notification", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a notification record by ID.
func (r *GormNotificationRepository) Get(ctx context.Context, id kernel.UUID) (*notification.Record, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto RecordDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("notification", id.String())
		}
		return nil, err
	}

	return recordToDomain(dto)
}

// GormQueueRepository implements QueueRepository using GORM.
type GormQueueRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// NewGormQueueRepository creates a new GORM retry-queue repository.
func NewGormQueueRepository(db *gorm.DB, tracker aggregateTracker) *GormQueueRepository {
	return &GormQueueRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add enqueues a new entry.
func (r *GormQueueRepository) Add(ctx context.Context, aggregate *notification.QueueEntry) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := queueEntryFromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing queue entry to the database.
func (r *GormQueueRepository) Update(ctx context.Context, aggregate *notification.QueueEntry) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := queueEntryFromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&QueueEntryDTO{}).
		Where("id = ?", dto.ID).
		Updates(map[string]any{
			"priority":     dto.Priority,
			"scheduled_at": dto.ScheduledAt,
			"attempts":     dto.Attempts,
			"status":       dto.Status,
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("queue entry", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// GetByNotificationID retrieves the queue entry backing a notification
// record.
func (r *GormQueueRepository) GetByNotificationID(ctx context.Context, notificationID kernel.UUID) (*notification.QueueEntry, error) {
	if err := notificationID.Validate(); err != nil {
		return nil, err
	}

	var dto QueueEntryDTO
	if err := r.db.WithContext(ctx).
		First(&dto, "notification_id = ?", notificationID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("queue entry for notification", notificationID.String())
		}
		return nil, err
	}

	return queueEntryToDomain(dto)
}

// ClaimNextDue claims the most urgent due pending entry for processing.
//
// The claim is two-step: read a small batch of eligible candidates ordered
// by priority and scheduled time, then compare-and-set the first one from
// pending to processing. A concurrent worker that claimed the same row first
// makes the UPDATE match zero rows, in which case the next candidate is
// tried. Losing every candidate on a contended tick is reported as
// not-found; the caller simply waits for its next tick.
func (r *GormQueueRepository) ClaimNextDue(ctx context.Context) (*notification.QueueEntry, error) {
	now := time.Now().UTC()

	var candidates []QueueEntryDTO
	if err := r.db.WithContext(ctx).
		Where("status = ? AND scheduled_at <= ?", string(notification.QueuePending), now).
		Order("priority ASC, scheduled_at ASC").
		Limit(claimCandidates).
		Find(&candidates).Error; err != nil {
		return nil, err
	}

	for _, dto := range candidates {
		result := r.db.WithContext(ctx).Model(&QueueEntryDTO{}).
			Where("id = ? AND status = ?", dto.ID, string(notification.QueuePending)).
			Update("status", string(notification.QueueProcessing))
		if result.Error != nil {
			return nil, result.Error
		}
		if result.RowsAffected == 0 {
			continue
		}

		dto.Status = string(notification.QueueProcessing)
		entry, err := queueEntryToDomain(dto)
		if err != nil {
			return nil, err
		}

		r.tracker.TrackAggregate(entry.ID(), entry)
		return entry, nil
	}

	return nil, errs.NewObjectNotFoundError("queue entry", "next due")
}
