package commands

import (
	"errors"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/errs"
	"laundry/internal/pkg/guard"
)

var ErrTestSenderConnectionCommandIsNotConstructed = errors.New(
	"TestSenderConnectionCommand must be created via NewTestSenderConnectionCommand constructor",
)

// TestSenderConnectionCommand represents an operator request to verify a
// sender's credentials by sending a test message to a given phone number.
type TestSenderConnectionCommand struct { //nolint:recvcheck //using for validation
	senderID kernel.UUID
	phone    string

	guard guard.ConstructorGuard
}

// NewTestSenderConnectionCommand creates a command to test a sender against
// the given phone number.
func NewTestSenderConnectionCommand(senderID kernel.UUID, phone string) (TestSenderConnectionCommand, error) {
	if err := senderID.Validate(); err != nil {
		return TestSenderConnectionCommand{}, err
	}
	if phone == "" {
		return TestSenderConnectionCommand{}, errs.NewValueIsRequiredError("phone")
	}

	return TestSenderConnectionCommand{
		senderID: senderID,
		phone:    phone,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c TestSenderConnectionCommand) Validate() error {
	return c.guard.Validate(ErrTestSenderConnectionCommandIsNotConstructed)
}

// SenderID returns the sender under test.
func (c TestSenderConnectionCommand) SenderID() kernel.UUID {
	return c.senderID
}

// Phone returns the destination for the test message.
func (c TestSenderConnectionCommand) Phone() string {
	return c.phone
}
