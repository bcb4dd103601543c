package commands

import (
	"context"
	"errors"
	"time"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/notification"
	"laundry/internal/pkg/errs"
)

// ResendNotificationCommandHandler reopens a failed notification as a fresh
// high-priority attempt-group. The rendered body is kept; the retry queue
// picks the entry up on its next tick.
type ResendNotificationCommandHandler struct {
	uowFactory ResendUoWFactory
}

// NewResendNotificationCommandHandler creates a handler for operator-driven
// re-delivery.
func NewResendNotificationCommandHandler(uowFactory ResendUoWFactory) ResendNotificationCommandHandler {
	return ResendNotificationCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the resend command. Only permanently failed records can
// be resent; anything else is rejected.
func (h ResendNotificationCommandHandler) Handle(ctx context.Context, cmd ResendNotificationCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	notificationRepo := uow.NotificationRepository()
	queueRepo := uow.QueueRepository()

	record, err := notificationRepo.Get(ctx, cmd.NotificationID())
	if err != nil {
		return err
	}

	if err = record.ResetForResend(); err != nil {
		return err
	}
	if err = notificationRepo.Update(ctx, record); err != nil {
		return err
	}

	now := time.Now().UTC()

	entry, err := queueRepo.GetByNotificationID(ctx, record.ID())
	switch {
	case err == nil:
		if err = entry.ResetForResend(now); err != nil {
			return err
		}
		if err = queueRepo.Update(ctx, entry); err != nil {
			return err
		}

	case errors.Is(err, errs.ErrObjectNotFound):
		// The original failure was permanent and never queued.
		entry, err = notification.NewQueueEntry(
			kernel.NewUUID(),
			record.ID(),
			notification.PriorityHigh,
			now,
			record.MaxRetries(),
		)
		if err != nil {
			return err
		}
		if err = queueRepo.Add(ctx, entry); err != nil {
			return err
		}

	default:
		return err
	}

	return uow.Commit(ctx)
}
