// Package invoicerepo provides data transfer objects and mapping functions
// for invoice persistence. The unique index on order_id is the create-once
// idempotency guard for billing; the unique index on number protects the
// human-facing invoice numbering.
package invoicerepo

import (
	"time"

	"laundry/internal/core/domain/model/billing"
	"laundry/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceDTO represents the database structure for persisting invoices.
type InvoiceDTO struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID   uuid.UUID       `gorm:"type:uuid;uniqueIndex"`
	Number    string          `gorm:"type:varchar(32);uniqueIndex"`
	LineItems []LineItemDTO   `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE"`
	Subtotal  decimal.Decimal `gorm:"type:numeric(12,2)"`
	Tax       decimal.Decimal `gorm:"type:numeric(12,2)"`
	Total     decimal.Decimal `gorm:"type:numeric(12,2)"`
	Paid      decimal.Decimal `gorm:"type:numeric(12,2)"`
	CreatedAt time.Time
}

// TableName specifies the database table name for invoices.
func (InvoiceDTO) TableName() string {
	return "invoices"
}

// LineItemDTO represents a billed service line snapshotted from the order at
// invoicing time.
type LineItemDTO struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	InvoiceID   uuid.UUID       `gorm:"type:uuid;index"`
	ServiceType string          `gorm:"type:varchar(64)"`
	Description string          `gorm:"type:varchar(255)"`
	Quantity    int
	UnitPrice   decimal.Decimal `gorm:"type:numeric(12,2)"`
}

// TableName specifies the database table name for invoice line items.
func (LineItemDTO) TableName() string {
	return "invoice_line_items"
}

// PaymentDTO represents a settlement record against an invoice.
type PaymentDTO struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	InvoiceID uuid.UUID       `gorm:"type:uuid;index"`
	Amount    decimal.Decimal `gorm:"type:numeric(12,2)"`
	Method    string          `gorm:"type:varchar(32)"`
	PaidAt    time.Time
}

// TableName specifies the database table name for payments.
func (PaymentDTO) TableName() string {
	return "payments"
}

// fromDomain converts an invoice domain aggregate to its database
// representation.
func fromDomain(aggregate *billing.Invoice) InvoiceDTO {
	lines := aggregate.LineItems()
	lineDTOs := make([]LineItemDTO, 0, len(lines))
	for _, line := range lines {
		lineDTOs = append(lineDTOs, LineItemDTO{
			ID:          uuid.New(),
			InvoiceID:   aggregate.ID().Bytes(),
			ServiceType: line.ServiceType(),
			Description: line.Description(),
			Quantity:    line.Quantity(),
			UnitPrice:   line.UnitPrice(),
		})
	}

	return InvoiceDTO{
		ID:        aggregate.ID().Bytes(),
		OrderID:   aggregate.OrderID().Bytes(),
		Number:    aggregate.Number(),
		LineItems: lineDTOs,
		Subtotal:  aggregate.Subtotal(),
		Tax:       aggregate.Tax(),
		Total:     aggregate.Total(),
		Paid:      aggregate.Paid(),
		CreatedAt: aggregate.CreatedAt(),
	}
}

// toDomain converts a database DTO to an invoice domain aggregate.
func toDomain(dto InvoiceDTO) (*billing.Invoice, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	lines := make([]billing.LineItem, 0, len(dto.LineItems))
	for _, lineDTO := range dto.LineItems {
		line, lineErr := billing.NewLineItem(
			lineDTO.ServiceType,
			lineDTO.Description,
			lineDTO.Quantity,
			lineDTO.UnitPrice,
		)
		if lineErr != nil {
			return nil, lineErr
		}
		lines = append(lines, line)
	}

	return billing.RestoreInvoice(
		id,
		orderID,
		dto.Number,
		lines,
		dto.Tax,
		dto.Paid,
		dto.CreatedAt,
	)
}

// paymentFromDomain converts a payment record to its database representation.
func paymentFromDomain(payment *billing.Payment) PaymentDTO {
	return PaymentDTO{
		ID:        payment.ID().Bytes(),
		InvoiceID: payment.InvoiceID().Bytes(),
		Amount:    payment.Amount(),
		Method:    payment.Method(),
		PaidAt:    payment.PaidAt(),
	}
}
