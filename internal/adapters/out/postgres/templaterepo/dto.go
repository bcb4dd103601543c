// Package templaterepo provides data transfer objects and mapping functions
// for message template persistence.
package templaterepo

import (
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/notification"

	"github.com/google/uuid"
)

// TemplateDTO represents the database structure for persisting templates.
type TemplateDTO struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name     string    `gorm:"type:varchar(255)"`
	Kind     string    `gorm:"type:varchar(32);index"`
	Body     string    `gorm:"type:text"`
	IsActive bool
}

// TableName specifies the database table name for templates.
func (TemplateDTO) TableName() string {
	return "message_templates"
}

// fromDomain converts a template domain aggregate to its database
// representation.
func fromDomain(aggregate *notification.Template) TemplateDTO {
	return TemplateDTO{
		ID:       aggregate.ID().Bytes(),
		Name:     aggregate.Name(),
		Kind:     string(aggregate.Kind()),
		Body:     aggregate.Body(),
		IsActive: aggregate.IsActive(),
	}
}

// toDomain converts a database DTO to a template domain aggregate.
func toDomain(dto TemplateDTO) (*notification.Template, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return notification.RestoreTemplate(
		id,
		dto.Name,
		notification.TemplateType(dto.Kind),
		dto.Body,
		dto.IsActive,
	)
}
