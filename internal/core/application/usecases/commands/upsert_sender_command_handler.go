package commands

import (
	"context"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/notification"
)

// UpsertSenderCommandHandler creates or reconfigures messaging senders.
// Promoting a sender to default demotes every other default in the same
// transaction, so at most one default exists at any time.
type UpsertSenderCommandHandler struct {
	uowFactory SenderUoWFactory
}

// NewUpsertSenderCommandHandler creates a handler for sender configuration.
func NewUpsertSenderCommandHandler(uowFactory SenderUoWFactory) UpsertSenderCommandHandler {
	return UpsertSenderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the upsert command and returns the stored sender.
func (h UpsertSenderCommandHandler) Handle(ctx context.Context, cmd UpsertSenderCommand) (*notification.Sender, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	senderRepo := uow.SenderRepository()

	if cmd.SenderID() == nil {
		sender, err := notification.NewSender(kernel.NewUUID(), cmd.Name(), cmd.Kind(), cmd.Credentials(), cmd.IsDefault())
		if err != nil {
			return nil, err
		}
		if !cmd.IsActive() {
			sender.Deactivate()
		}

		if err = senderRepo.Add(ctx, sender); err != nil {
			return nil, err
		}
		if err = uow.Commit(ctx); err != nil {
			return nil, err
		}
		return sender, nil
	}

	// Replace: the sender must exist, then its configuration is rebuilt.
	if _, err := senderRepo.Get(ctx, *cmd.SenderID()); err != nil {
		return nil, err
	}

	sender, err := notification.RestoreSender(
		*cmd.SenderID(),
		cmd.Name(),
		cmd.Kind(),
		cmd.Credentials(),
		cmd.IsDefault(),
		cmd.IsActive(),
	)
	if err != nil {
		return nil, err
	}

	if err = senderRepo.Update(ctx, sender); err != nil {
		return nil, err
	}
	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return sender, nil
}
