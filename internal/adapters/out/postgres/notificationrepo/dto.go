// Package notificationrepo provides data transfer objects and mapping
// functions for notification-record and retry-queue persistence.
package notificationrepo

import (
	"time"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/notification"

	"github.com/google/uuid"
)

// RecordDTO represents the database structure for persisting notification
// records. delivery_status and message_type are indexed because the history
// endpoint filters on them.
type RecordDTO struct {
	ID               uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OrderID          uuid.UUID  `gorm:"type:uuid;index"`
	SenderID         uuid.UUID  `gorm:"type:uuid"`
	TemplateID       *uuid.UUID `gorm:"type:uuid"`
	MessageType      string     `gorm:"type:varchar(32);index"`
	Phone            string     `gorm:"type:varchar(32)"`
	Body             string     `gorm:"type:text"`
	DeliveryStatus   string     `gorm:"type:varchar(16);index"`
	RetryCount       int
	MaxRetries       int
	ProviderResponse string `gorm:"type:text"`
	LastError        string `gorm:"type:text"`
	SentAt           *time.Time
	CreatedAt        time.Time `gorm:"index"`
}

// TableName specifies the database table name for notification records.
func (RecordDTO) TableName() string {
	return "notifications"
}

// QueueEntryDTO represents the database structure for retry-queue entries.
// The composite index mirrors the claim ordering: eligible pending rows are
// picked by priority, then by how long they have been due.
type QueueEntryDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	NotificationID uuid.UUID `gorm:"type:uuid;uniqueIndex"`
	Priority       int       `gorm:"index:idx_queue_claim,priority:2"`
	ScheduledAt    time.Time `gorm:"index:idx_queue_claim,priority:3"`
	Attempts       int
	MaxAttempts    int
	Status         string `gorm:"type:varchar(16);index:idx_queue_claim,priority:1"`
	CreatedAt      time.Time
}

// TableName specifies the database table name for the retry queue.
func (QueueEntryDTO) TableName() string {
	return "notification_queue"
}

// recordFromDomain converts a notification record to its database
// representation.
func recordFromDomain(aggregate *notification.Record) RecordDTO {
	var templateID *uuid.UUID
	if id := aggregate.TemplateID(); id != nil {
		raw := id.Bytes()
		templateID = &raw
	}

	return RecordDTO{
		ID:               aggregate.ID().Bytes(),
		OrderID:          aggregate.OrderID().Bytes(),
		SenderID:         aggregate.SenderID().Bytes(),
		TemplateID:       templateID,
		MessageType:      string(aggregate.MessageType()),
		Phone:            aggregate.Phone(),
		Body:             aggregate.Body(),
		DeliveryStatus:   string(aggregate.Status()),
		RetryCount:       aggregate.RetryCount(),
		MaxRetries:       aggregate.MaxRetries(),
		ProviderResponse: aggregate.ProviderResponse(),
		LastError:        aggregate.LastError(),
		SentAt:           aggregate.SentAt(),
		CreatedAt:        aggregate.CreatedAt(),
	}
}

// recordToDomain converts a database DTO to a notification record aggregate.
func recordToDomain(dto RecordDTO) (*notification.Record, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	senderID, err := kernel.UUIDFromBytes(dto.SenderID[:])
	if err != nil {
		return nil, err
	}

	var templateID *kernel.UUID
	if dto.TemplateID != nil {
		tID, templateErr := kernel.UUIDFromBytes((*dto.TemplateID)[:])
		if templateErr != nil {
			return nil, templateErr
		}
		templateID = &tID
	}

	return notification.RestoreRecord(
		id,
		orderID,
		senderID,
		templateID,
		notification.TemplateType(dto.MessageType),
		dto.Phone,
		dto.Body,
		notification.DeliveryStatus(dto.DeliveryStatus),
		dto.RetryCount,
		dto.MaxRetries,
		dto.ProviderResponse,
		dto.LastError,
		dto.SentAt,
		dto.CreatedAt,
	)
}

// queueEntryFromDomain converts a queue entry to its database representation.
func queueEntryFromDomain(aggregate *notification.QueueEntry) QueueEntryDTO {
	return QueueEntryDTO{
		ID:             aggregate.ID().Bytes(),
		NotificationID: aggregate.NotificationID().Bytes(),
		Priority:       int(aggregate.Priority()),
		ScheduledAt:    aggregate.ScheduledAt(),
		Attempts:       aggregate.Attempts(),
		MaxAttempts:    aggregate.MaxAttempts(),
		Status:         string(aggregate.Status()),
		CreatedAt:      aggregate.CreatedAt(),
	}
}

// queueEntryToDomain converts a database DTO to a queue entry aggregate.
func queueEntryToDomain(dto QueueEntryDTO) (*notification.QueueEntry, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	notificationID, err := kernel.UUIDFromBytes(dto.NotificationID[:])
	if err != nil {
		return nil, err
	}

	return notification.RestoreQueueEntry(
		id,
		notificationID,
		notification.Priority(dto.Priority),
		dto.ScheduledAt,
		dto.Attempts,
		dto.MaxAttempts,
		notification.QueueStatus(dto.Status),
		dto.CreatedAt,
	)
}
