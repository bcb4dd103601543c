// Package senderrepo provides data transfer objects and mapping functions
// for messaging sender persistence. Provider credentials are stored as a
// JSON document so each provider kind can carry its own key set without
// schema churn.
package senderrepo

import (
	"encoding/json"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/notification"

	"github.com/google/uuid"
)

// SenderDTO represents the database structure for persisting senders.
type SenderDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name        string    `gorm:"type:varchar(255)"`
	Kind        string    `gorm:"type:varchar(16)"`
	Credentials string    `gorm:"type:jsonb"`
	IsDefault   bool      `gorm:"index"`
	IsActive    bool
}

// TableName specifies the database table name for senders.
func (SenderDTO) TableName() string {
	return "senders"
}

// fromDomain converts a sender domain aggregate to its database
// representation.
func fromDomain(aggregate *notification.Sender) (SenderDTO, error) {
	creds, err := json.Marshal(aggregate.Credentials())
	if err != nil {
		return SenderDTO{}, err
	}

	return SenderDTO{
		ID:          aggregate.ID().Bytes(),
		Name:        aggregate.Name(),
		Kind:        string(aggregate.Kind()),
		Credentials: string(creds),
		IsDefault:   aggregate.IsDefault(),
		IsActive:    aggregate.IsActive(),
	}, nil
}

// toDomain converts a database DTO to a sender domain aggregate.
func toDomain(dto SenderDTO) (*notification.Sender, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var creds notification.Credentials
	if err := json.Unmarshal([]byte(dto.Credentials), &creds); err != nil {
		return nil, err
	}

	return notification.RestoreSender(
		id,
		dto.Name,
		notification.ProviderKind(dto.Kind),
		creds,
		dto.IsDefault,
		dto.IsActive,
	)
}
