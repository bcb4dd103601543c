// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. This package implements the repository pattern for the
// order domain aggregate, handling the conversion between domain entities and
// database representations.
package orderrepo

import (
	"time"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Monetary columns use fixed-point numerics so that totals survive the round
// trip exactly. The version column backs optimistic concurrency on status
// writes.
type OrderDTO struct {
	ID            uuid.UUID      `gorm:"type:uuid;primaryKey"`
	CustomerID    uuid.UUID      `gorm:"type:uuid;index"`
	CustomerName  string         `gorm:"type:varchar(255)"`
	CustomerPhone string         `gorm:"type:varchar(32)"`
	Items         []OrderItemDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	TotalAmount   decimal.Decimal `gorm:"type:numeric(12,2)"`
	PaidAmount    decimal.Decimal `gorm:"type:numeric(12,2)"`
	Status        int             `gorm:"index"`
	Version       int
	CreatedAt     time.Time
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// OrderItemDTO represents a single service line of an order.
type OrderItemDTO struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID     uuid.UUID       `gorm:"type:uuid;index"`
	ServiceType string          `gorm:"type:varchar(64)"`
	Description string          `gorm:"type:varchar(255)"`
	Quantity    int
	UnitPrice   decimal.Decimal `gorm:"type:numeric(12,2)"`
}

// TableName specifies the database table name for order item lines.
func (OrderItemDTO) TableName() string {
	return "order_items"
}

// fromDomain converts an order domain aggregate to its database
// representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	items := aggregate.Items()
	itemDTOs := make([]OrderItemDTO, 0, len(items))
	for _, item := range items {
		itemDTOs = append(itemDTOs, OrderItemDTO{
			ID:          uuid.New(),
			OrderID:     aggregate.ID().Bytes(),
			ServiceType: item.ServiceType(),
			Description: item.Description(),
			Quantity:    item.Quantity(),
			UnitPrice:   item.UnitPrice(),
		})
	}

	return OrderDTO{
		ID:            aggregate.ID().Bytes(),
		CustomerID:    aggregate.CustomerID().Bytes(),
		CustomerName:  aggregate.CustomerName(),
		CustomerPhone: aggregate.CustomerPhone(),
		Items:         itemDTOs,
		TotalAmount:   aggregate.TotalAmount(),
		PaidAmount:    aggregate.PaidAmount(),
		Status:        int(aggregate.Status()),
		Version:       aggregate.Version(),
		CreatedAt:     aggregate.CreatedAt(),
	}
}

// toDomain converts a database DTO to an order domain aggregate using
// RestoreOrder, which revalidates invariants and recomputes the balance.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}

	items := make([]order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		item, itemErr := order.NewItem(
			itemDTO.ServiceType,
			itemDTO.Description,
			itemDTO.Quantity,
			itemDTO.UnitPrice,
		)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	return order.RestoreOrder(
		id,
		customerID,
		dto.CustomerName,
		dto.CustomerPhone,
		items,
		dto.PaidAmount,
		order.Status(dto.Status),
		dto.Version,
		dto.CreatedAt,
	)
}
