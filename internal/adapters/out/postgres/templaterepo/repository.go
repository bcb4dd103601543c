package templaterepo

import (
	"context"
	"errors"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/notification"
	"laundry/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormTemplateRepository implements TemplateRepository using GORM.
type GormTemplateRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormTemplateRepository creates a new GORM template repository.
func NewGormTemplateRepository(db *gorm.DB, tracker aggregateTracker) *GormTemplateRepository {
	return &GormTemplateRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new template to the database.
func (r *GormTemplateRepository) Add(ctx context.Context, aggregate *notification.Template) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing template to the database.
func (r *GormTemplateRepository) Update(ctx context.Context, aggregate *notification.Template) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&TemplateDTO{}).
		Where("id = ?", dto.ID).
		Updates(map[string]any{
			"name":      dto.Name,
			"kind":      dto.Kind,
			"body":      dto.Body,
			"is_active": dto.IsActive,
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("template", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Delete removes a template from the database.
func (r *GormTemplateRepository) Delete(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Delete(&TemplateDTO{}, "id = ?", id.Bytes())
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("template", id.String())
	}

	return nil
}

// Get retrieves a template by ID.
func (r *GormTemplateRepository) Get(ctx context.Context, id kernel.UUID) (*notification.Template, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto TemplateDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("template", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetActiveByType retrieves an active template of the given type.
func (r *GormTemplateRepository) GetActiveByType(ctx context.Context, kind notification.TemplateType) (*notification.Template, error) {
	if err := kind.Validate(); err != nil {
		return nil, err
	}

	var dto TemplateDTO
	if err := r.db.WithContext(ctx).
		First(&dto, "kind = ? AND is_active = ?", string(kind), true).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("template", string(kind))
		}
		return nil, err
	}

	return toDomain(dto)
}
