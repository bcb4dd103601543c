package invoicerepo

import (
	"context"
	"errors"

	"laundry/internal/core/domain/model/billing"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormInvoiceRepository implements InvoiceRepository using GORM.
type GormInvoiceRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormInvoiceRepository creates a new GORM invoice repository.
func NewGormInvoiceRepository(db *gorm.DB, tracker aggregateTracker) *GormInvoiceRepository {
	return &GormInvoiceRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new invoice with its line items to the database. Unique-index
// violations on order_id or number surface as gorm.ErrDuplicatedKey; callers
// distinguish the two cases by re-reading by order.
func (r *GormInvoiceRepository) Add(ctx context.Context, aggregate *billing.Invoice) error {
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

// Update saves the settlement fields of an existing invoice.
func (r *GormInvoiceRepository) Update(ctx context.Context, aggregate *billing.Invoice) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&InvoiceDTO{}).
		Where("id = ?", dto.ID).
		Updates(map[string]any{
			"paid": dto.Paid,
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("invoice", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// GetByOrderID retrieves the invoice billed for an order.
func (r *GormInvoiceRepository) GetByOrderID(ctx context.Context, orderID kernel.UUID) (*billing.Invoice, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dto InvoiceDTO
	if err := r.db.WithContext(ctx).Preload("LineItems").
		First(&dto, "order_id = ?", orderID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("invoice for order", orderID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// AddPayment saves a settlement record against an invoice.
func (r *GormInvoiceRepository) AddPayment(ctx context.Context, payment *billing.Payment) error {
	if err := payment.Validate(); err != nil {
		return err
	}

	dto := paymentFromDomain(payment)
	return r.db.WithContext(ctx).Create(&dto).Error
}
