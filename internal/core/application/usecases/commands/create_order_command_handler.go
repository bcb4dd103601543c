package commands

import (
	"context"

	"laundry/internal/core/domain/model/order"
)

// CreateOrderCommandHandler handles the business logic for order intake.
// New orders start in "received" status with totals derived from their item
// lines and nothing paid.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewCreateOrderCommandHandler creates a handler for order intake operations.
func NewCreateOrderCommandHandler(uowFactory OrderUoWFactory) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the order intake command. Builds the item lines, creates
// the aggregate and persists it within a transaction.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	inputs := cmd.Items()
	items := make([]order.Item, 0, len(inputs))
	for _, input := range inputs {
		item, err := order.NewItem(input.ServiceType, input.Description, input.Quantity, input.UnitPrice)
		if err != nil {
			return err
		}
		items = append(items, item)
	}

	newOrder, err := order.NewOrder(
		cmd.OrderID(),
		cmd.CustomerID(),
		cmd.CustomerName(),
		cmd.CustomerPhone(),
		items,
	)
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, newOrder); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
