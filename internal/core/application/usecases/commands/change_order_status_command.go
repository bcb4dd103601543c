package commands

import (
	"errors"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/pkg/guard"
)

var ErrChangeOrderStatusCommandIsNotConstructed = errors.New(
	"ChangeOrderStatusCommand must be created via NewChangeOrderStatusCommand constructor",
)

// ChangeOrderStatusCommand represents a request to move an order to a new
// lifecycle status, optionally naming the sender for the customer
// notification.
//
// Example:
//
//	cmd, err := NewChangeOrderStatusCommand(orderID, order.ReadyForDelivery, nil, nil)
//	if err != nil {
//	    return fmt.Errorf("invalid status change: %w", err)
//	}
//
//	handler := NewChangeOrderStatusCommandHandler(uowFactory, invoiceHandler, dispatchHandler, logger)
//	updated, err := handler.Handle(ctx, cmd)
type ChangeOrderStatusCommand struct { //nolint:recvcheck //using for validation
	orderID        kernel.UUID
	newStatus      order.Status
	expectedStatus *order.Status
	senderID       *kernel.UUID

	guard guard.ConstructorGuard
}

// NewChangeOrderStatusCommand creates a command to move an order to
// newStatus. expectedStatus, when set, makes the transition conditional on
// the order still being in that status. senderID may be nil; the default
// sender handles the customer notification.
func NewChangeOrderStatusCommand(
	orderID kernel.UUID,
	newStatus order.Status,
	expectedStatus *order.Status,
	senderID *kernel.UUID,
) (ChangeOrderStatusCommand, error) {
	if err := errors.Join(
		orderID.Validate(),
		newStatus.Validate(),
	); err != nil {
		return ChangeOrderStatusCommand{}, err
	}
	if expectedStatus != nil {
		if err := expectedStatus.Validate(); err != nil {
			return ChangeOrderStatusCommand{}, err
		}
	}
	if senderID != nil {
		if err := senderID.Validate(); err != nil {
			return ChangeOrderStatusCommand{}, err
		}
	}

	return ChangeOrderStatusCommand{
		orderID:        orderID,
		newStatus:      newStatus,
		expectedStatus: expectedStatus,
		senderID:       senderID,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ChangeOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrChangeOrderStatusCommandIsNotConstructed)
}

// OrderID returns the order to transition.
func (c ChangeOrderStatusCommand) OrderID() kernel.UUID {
	return c.orderID
}

// NewStatus returns the requested target status.
func (c ChangeOrderStatusCommand) NewStatus() order.Status {
	return c.newStatus
}

// ExpectedStatus returns the status the caller believes the order is in, or
// nil for an unconditional transition.
func (c ChangeOrderStatusCommand) ExpectedStatus() *order.Status {
	return c.expectedStatus
}

// SenderID returns the explicitly requested sender, or nil for the default.
func (c ChangeOrderStatusCommand) SenderID() *kernel.UUID {
	return c.senderID
}
