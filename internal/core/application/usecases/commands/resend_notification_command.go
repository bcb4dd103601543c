package commands

import (
	"errors"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/guard"
)

var ErrResendNotificationCommandIsNotConstructed = errors.New(
	"ResendNotificationCommand must be created via NewResendNotificationCommand constructor",
)

// ResendNotificationCommand represents an operator request to re-deliver a
// permanently failed notification.
type ResendNotificationCommand struct { //nolint:recvcheck //using for validation
	notificationID kernel.UUID

	guard guard.ConstructorGuard
}

// NewResendNotificationCommand creates a command to re-deliver the given
// notification.
func NewResendNotificationCommand(notificationID kernel.UUID) (ResendNotificationCommand, error) {
	if err := notificationID.Validate(); err != nil {
		return ResendNotificationCommand{}, err
	}

	return ResendNotificationCommand{
		notificationID: notificationID,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ResendNotificationCommand) Validate() error {
	return c.guard.Validate(ErrResendNotificationCommandIsNotConstructed)
}

// NotificationID returns the record to re-deliver.
func (c ResendNotificationCommand) NotificationID() kernel.UUID {
	return c.notificationID
}
