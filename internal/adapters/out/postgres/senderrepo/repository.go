package senderrepo

import (
	"context"
	"errors"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/notification"
	"laundry/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormSenderRepository implements SenderRepository using GORM.
type GormSenderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormSenderRepository creates a new GORM sender repository.
func NewGormSenderRepository(db *gorm.DB, tracker aggregateTracker) *GormSenderRepository {
	return &GormSenderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new sender. A sender flagged default demotes every other
// default in the same transaction, keeping at most one default overall.
func (r *GormSenderRepository) Add(ctx context.Context, aggregate *notification.Sender) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, err := fromDomain(aggregate)
	if err != nil {
		return err
	}

	if dto.IsDefault {
		if err := r.clearOtherDefaults(ctx, dto.ID); err != nil {
			return err
		}
	}

	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing sender, demoting other defaults when the default
// flag is set.
func (r *GormSenderRepository) Update(ctx context.Context, aggregate *notification.Sender) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, err := fromDomain(aggregate)
	if err != nil {
		return err
	}

	if dto.IsDefault {
		if err := r.clearOtherDefaults(ctx, dto.ID); err != nil {
			return err
		}
	}

	result := r.db.WithContext(ctx).Model(&SenderDTO{}).
		Where("id = ?", dto.ID).
		Updates(map[string]any{
			"name":        dto.Name,
			"kind":        dto.Kind,
			"credentials": dto.Credentials,
			"is_default":  dto.IsDefault,
			"is_active":   dto.IsActive,
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("sender", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a sender by ID.
func (r *GormSenderRepository) Get(ctx context.Context, id kernel.UUID) (*notification.Sender, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto SenderDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("sender", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetDefault retrieves the active default sender.
func (r *GormSenderRepository) GetDefault(ctx context.Context) (*notification.Sender, error) {
	var dto SenderDTO
	if err := r.db.WithContext(ctx).
		First(&dto, "is_default = ? AND is_active = ?", true, true).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("sender", "default")
		}
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormSenderRepository) clearOtherDefaults(ctx context.Context, keepID any) error {
	return r.db.WithContext(ctx).Model(&SenderDTO{}).
		Where("is_default = ? AND id <> ?", true, keepID).
		Update("is_default", false).Error
}
