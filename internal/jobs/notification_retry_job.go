package jobs

import (
	"context"
	"log/slog"

	"laundry/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// NotificationRetryJob drains the notification retry queue on a schedule.
// Runs every second; the handler claims due entries with a compare-and-set,
// so overlapping runs never re-deliver the same notification.
type NotificationRetryJob struct {
	handler commands.ProcessRetryQueueCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewNotificationRetryJob creates a job that re-delivers failed
// notifications through ProcessRetryQueueCommandHandler.
func NewNotificationRetryJob(handler commands.ProcessRetryQueueCommandHandler, logger *slog.Logger) *NotificationRetryJob {
	return &NotificationRetryJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "notification_retry_job"),
	}
}

// Start begins the retry job to run every second.
func (j *NotificationRetryJob) Start() error {
	_, err := j.cron.AddFunc("* * * * * *", func() {
		ctx := context.Background()
		cmd := commands.NewProcessRetryQueueCommand()

		if err := j.handler.Handle(ctx, cmd); err != nil {
			j.logger.ErrorContext(ctx, "Notification retry job failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Notification retry job started (running every second)")
	return nil
}

// Stop stops the retry job.
func (j *NotificationRetryJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Notification retry job stopped")
}
