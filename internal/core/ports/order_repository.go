package ports

import (
	"context"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for work order
// aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate together with its item lines.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order. The write is
	// conditional on the aggregate's optimistic-concurrency version: when
	// the stored version differs, the update is rejected with a
	// VersionIsInvalidError and no row is touched. On success the stored
	// version is advanced.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate with its items by identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)
}
