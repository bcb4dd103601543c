package commands

import (
	"errors"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/pkg/guard"
)

var ErrDispatchNotificationCommandIsNotConstructed = errors.New(
	"DispatchNotificationCommand must be created via NewDispatchNotificationCommand constructor",
)

// DispatchNotificationCommand represents a request to message a customer
// about a status change of their order, through an optional explicit sender.
type DispatchNotificationCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	oldStatus order.Status
	newStatus order.Status
	senderID  *kernel.UUID

	guard guard.ConstructorGuard
}

// NewDispatchNotificationCommand creates a command to notify the customer of
// an order's status change. senderID may be nil; the default sender is used.
func NewDispatchNotificationCommand(
	orderID kernel.UUID,
	oldStatus order.Status,
	newStatus order.Status,
	senderID *kernel.UUID,
) (DispatchNotificationCommand, error) {
	if err := errors.Join(
		orderID.Validate(),
		oldStatus.Validate(),
		newStatus.Validate(),
	); err != nil {
		return DispatchNotificationCommand{}, err
	}
	if senderID != nil {
		if err := senderID.Validate(); err != nil {
			return DispatchNotificationCommand{}, err
		}
	}

	return DispatchNotificationCommand{
		orderID:   orderID,
		oldStatus: oldStatus,
		newStatus: newStatus,
		senderID:  senderID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c DispatchNotificationCommand) Validate() error {
	return c.guard.Validate(ErrDispatchNotificationCommandIsNotConstructed)
}

// OrderID returns the order whose status changed.
func (c DispatchNotificationCommand) OrderID() kernel.UUID {
	return c.orderID
}

// OldStatus returns the status before the transition.
func (c DispatchNotificationCommand) OldStatus() order.Status {
	return c.oldStatus
}

// NewStatus returns the status after the transition.
func (c DispatchNotificationCommand) NewStatus() order.Status {
	return c.newStatus
}

// SenderID returns the explicitly requested sender, or nil for the default.
func (c DispatchNotificationCommand) SenderID() *kernel.UUID {
	return c.senderID
}
