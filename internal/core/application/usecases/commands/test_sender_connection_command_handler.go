package commands

import (
	"context"

	"laundry/internal/core/ports"
)

// testMessageBody is what the customer-facing number receives during a
// connection test.
const testMessageBody = "This is a test message from your laundry dashboard."

// TestSenderConnectionCommandHandler verifies a sender's credentials by
// performing a real provider send. The result is synchronous; nothing is
// recorded or queued.
type TestSenderConnectionCommandHandler struct {
	uowFactory      SenderUoWFactory
	providerFactory ports.ProviderFactory
}

// NewTestSenderConnectionCommandHandler creates a handler for sender
// connection tests.
func NewTestSenderConnectionCommandHandler(
	uowFactory SenderUoWFactory,
	providerFactory ports.ProviderFactory,
) TestSenderConnectionCommandHandler {
	return TestSenderConnectionCommandHandler{
		uowFactory:      uowFactory,
		providerFactory: providerFactory,
	}
}

// Handle processes the connection test and returns the provider's external
// message identifier on success.
func (h TestSenderConnectionCommandHandler) Handle(ctx context.Context, cmd TestSenderConnectionCommand) (string, error) {
	if err := cmd.Validate(); err != nil {
		return "", err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return "", err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	sender, err := uow.SenderRepository().Get(ctx, cmd.SenderID())
	if err != nil {
		return "", err
	}
	if err = uow.Commit(ctx); err != nil {
		return "", err
	}

	provider, err := h.providerFactory.Create(sender)
	if err != nil {
		return "", err
	}

	return provider.Send(ctx, cmd.Phone(), testMessageBody)
}
