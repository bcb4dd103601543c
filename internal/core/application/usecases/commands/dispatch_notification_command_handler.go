package commands

import (
	"context"
	"errors"
	"time"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/notification"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/core/domain/services"
	"laundry/internal/core/ports"
	"laundry/internal/pkg/errs"
)

// DispatchNotificationCommandHandler sends a status-change message to the
// order's customer and records the outcome.
//
// Dispatch never blocks or fails the status change that triggered it: a
// missing sender is a silent no-op, a missing customer phone fails the
// record permanently, and provider failures either enqueue a retry
// (transient) or fail the record (permanent). The provider call runs outside
// any database transaction.
type DispatchNotificationCommandHandler struct {
	uowFactory      DispatchUoWFactory
	providerFactory ports.ProviderFactory
	renderer        *services.TemplateRenderer
	retryBase       time.Duration
}

// NewDispatchNotificationCommandHandler creates a handler for notification
// dispatch. retryBase is the backoff unit for the first re-delivery attempt.
func NewDispatchNotificationCommandHandler(
	uowFactory DispatchUoWFactory,
	providerFactory ports.ProviderFactory,
	renderer *services.TemplateRenderer,
	retryBase time.Duration,
) DispatchNotificationCommandHandler {
	return DispatchNotificationCommandHandler{
		uowFactory:      uowFactory,
		providerFactory: providerFactory,
		renderer:        renderer,
		retryBase:       retryBase,
	}
}

// Handle processes the dispatch command.
func (h DispatchNotificationCommandHandler) Handle(ctx context.Context, cmd DispatchNotificationCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	record, sender, err := h.prepareRecord(ctx, cmd)
	if err != nil || record == nil {
		return err
	}
	if record.Status() == notification.DeliveryFailed {
		// Permanently undeliverable (no phone), already persisted as such.
		return nil
	}

	provider, err := h.providerFactory.Create(sender)
	if err != nil {
		return err
	}

	externalID, sendErr := provider.Send(ctx, record.Phone(), record.Body())
	return h.recordOutcome(ctx, record, externalID, sendErr)
}

// prepareRecord picks the sender and template, renders the message and
// persists the pending record. A nil record with nil error means there is no
// sender configured and nothing to do.
func (h DispatchNotificationCommandHandler) prepareRecord(
	ctx context.Context,
	cmd DispatchNotificationCommand,
) (*notification.Record, *notification.Sender, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	o, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, nil, err
	}

	sender, err := h.pickSender(ctx, uow, cmd.SenderID())
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return nil, nil, nil
		}
		return nil, nil, err
	}

	body := services.FallbackStatusChangeBody
	messageType := notification.TypeStatusChange
	var templateID *kernel.UUID
	preferred := templateTypeForStatus(cmd.NewStatus())
	template, err := uow.TemplateRepository().GetActiveByType(ctx, preferred)
	if errors.Is(err, errs.ErrObjectNotFound) && preferred != notification.TypeStatusChange {
		template, err = uow.TemplateRepository().GetActiveByType(ctx, notification.TypeStatusChange)
	}
	if err == nil {
		body = template.Body()
		messageType = template.Kind()
		id := template.ID()
		templateID = &id
	} else if !errors.Is(err, errs.ErrObjectNotFound) {
		return nil, nil, err
	}

	rendered := h.renderer.Render(body, o, cmd.OldStatus(), cmd.NewStatus())

	record, err := notification.NewRecord(
		kernel.NewUUID(),
		o.ID(),
		sender.ID(),
		templateID,
		messageType,
		o.CustomerPhone(),
		rendered,
		notification.DefaultMaxRetries,
	)
	if err != nil {
		return nil, nil, err
	}

	if record.Phone() == "" {
		record.MarkFailed("customer has no phone number")
	}

	if err = uow.NotificationRepository().Add(ctx, record); err != nil {
		return nil, nil, err
	}
	if err = uow.Commit(ctx); err != nil {
		return nil, nil, err
	}

	return record, sender, nil
}

// templateTypeForStatus maps a lifecycle status to its preferred template
// kind. A ready order prefers the delivery reminder and a billed order the
// payment reminder; everything else uses the generic status-change template.
func templateTypeForStatus(newStatus order.Status) notification.TemplateType {
	switch newStatus {
	case order.ReadyForDelivery:
		return notification.TypeDeliveryReminder
	case order.Billed:
		return notification.TypePaymentReminder
	default:
		return notification.TypeStatusChange
	}
}

// pickSender resolves the sender to use: an explicitly requested active
// sender wins, anything else falls back to the default.
func (h DispatchNotificationCommandHandler) pickSender(
	ctx context.Context,
	uow DispatchUoW,
	explicitID *kernel.UUID,
) (*notification.Sender, error) {
	senderRepo := uow.SenderRepository()

	if explicitID != nil {
		sender, err := senderRepo.Get(ctx, *explicitID)
		if err == nil && sender.IsActive() {
			return sender, nil
		}
		if err != nil && !errors.Is(err, errs.ErrObjectNotFound) {
			return nil, err
		}
	}

	return senderRepo.GetDefault(ctx)
}

// recordOutcome persists the result of the provider call: sent, failed
// permanently, or failed with a queued retry.
func (h DispatchNotificationCommandHandler) recordOutcome(
	ctx context.Context,
	record *notification.Record,
	externalID string,
	sendErr error,
) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if sendErr == nil {
		record.MarkSent(externalID, time.Now().UTC())
		if err := uow.NotificationRepository().Update(ctx, record); err != nil {
			return err
		}
		return uow.Commit(ctx)
	}

	record.MarkFailed(sendErr.Error())
	if err := uow.NotificationRepository().Update(ctx, record); err != nil {
		return err
	}

	if !ports.IsPermanentSendFailure(sendErr) {
		entry, err := notification.NewQueueEntry(
			kernel.NewUUID(),
			record.ID(),
			notification.PriorityForType(record.MessageType()),
			time.Now().UTC().Add(h.retryBase),
			record.MaxRetries(),
		)
		if err != nil {
			return err
		}
		if err = uow.QueueRepository().Add(ctx, entry); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}
