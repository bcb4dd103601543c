package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"laundry/internal/core/domain/model/notification"
	"laundry/internal/core/ports"
	"laundry/internal/pkg/errs"
)

// ProcessRetryQueueCommandHandler drains due entries from the notification
// retry queue.
//
// Each entry is claimed with a compare-and-set, so concurrent workers never
// re-deliver the same notification. The record keeps its rendered body, so a
// retry is a plain re-send. A transient failure consumes one attempt and
// reschedules with exponential backoff; a permanent failure or an exhausted
// budget fails the entry and its record terminally. An empty queue is a
// quiet no-op.
type ProcessRetryQueueCommandHandler struct {
	uowFactory      RetryUoWFactory
	providerFactory ports.ProviderFactory
	retryBase       time.Duration
	logger          *slog.Logger
}

// NewProcessRetryQueueCommandHandler creates a handler for retry-queue
// draining. retryBase is the exponential backoff unit.
func NewProcessRetryQueueCommandHandler(
	uowFactory RetryUoWFactory,
	providerFactory ports.ProviderFactory,
	retryBase time.Duration,
	logger *slog.Logger,
) ProcessRetryQueueCommandHandler {
	return ProcessRetryQueueCommandHandler{
		uowFactory:      uowFactory,
		providerFactory: providerFactory,
		retryBase:       retryBase,
		logger:          logger,
	}
}

// Handle processes due queue entries until none remain.
func (h ProcessRetryQueueCommandHandler) Handle(ctx context.Context, cmd ProcessRetryQueueCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	for {
		processed, err := h.processNext(ctx)
		if err != nil {
			return err
		}
		if !processed {
			return nil
		}
	}
}

// processNext claims and re-delivers a single entry. Returns false when the
// queue has no due entry.
func (h ProcessRetryQueueCommandHandler) processNext(ctx context.Context) (bool, error) {
	entry, record, sender, err := h.claimNext(ctx)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return false, nil
		}
		return false, err
	}

	provider, err := h.providerFactory.Create(sender)
	if err != nil {
		// Broken sender configuration cannot succeed on a later attempt.
		return true, h.settle(ctx, entry, record, "", ports.NewPermanentProviderError(sender.Kind(), "sender is not usable", err))
	}

	externalID, sendErr := provider.Send(ctx, record.Phone(), record.Body())
	return true, h.settle(ctx, entry, record, externalID, sendErr)
}

// claimNext claims the most urgent due entry and loads its record and
// sender in one transaction.
func (h ProcessRetryQueueCommandHandler) claimNext(
	ctx context.Context,
) (*notification.QueueEntry, *notification.Record, *notification.Sender, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, nil, nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	entry, err := uow.QueueRepository().ClaimNextDue(ctx)
	if err != nil {
		return nil, nil, nil, err
	}

	record, err := uow.NotificationRepository().Get(ctx, entry.NotificationID())
	if err != nil {
		return nil, nil, nil, err
	}

	sender, err := uow.SenderRepository().Get(ctx, record.SenderID())
	if err != nil {
		return nil, nil, nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, nil, nil, err
	}

	return entry, record, sender, nil
}

// settle persists the outcome of a re-delivery attempt.
func (h ProcessRetryQueueCommandHandler) settle(
	ctx context.Context,
	entry *notification.QueueEntry,
	record *notification.Record,
	externalID string,
	sendErr error,
) error {
	now := time.Now().UTC()

	switch {
	case sendErr == nil:
		entry.Complete()
		record.RecordRetrySuccess(externalID, now)

	case ports.IsPermanentSendFailure(sendErr):
		entry.Fail()
		record.MarkFailed(sendErr.Error())

	default:
		exhausted := entry.RecordFailure(now, h.retryBase)
		if retryErr := record.RecordRetryFailure(sendErr.Error()); errors.Is(retryErr, notification.ErrRetriesExhausted) || exhausted {
			entry.Fail()
			h.logger.Warn("notification retries exhausted",
				slog.String("notificationId", record.ID().String()),
				slog.String("error", sendErr.Error()))
		}
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.QueueRepository().Update(ctx, entry); err != nil {
		return err
	}
	if err := uow.NotificationRepository().Update(ctx, record); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
