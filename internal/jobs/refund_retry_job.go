package jobs

import (
	"context"
	"log/slog"

	"fulfillment/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// RefundRetryJob periodically re-drives pending refund tasks against the
// wallet ledger. A wallet outage during cancellation approval leaves the task
// pending; this job picks it up on the next tick.
type RefundRetryJob struct {
	handler  commands.RetryRefundsCommandHandler
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewRefundRetryJob creates the refund retry job. The schedule is a
// six-field cron expression with a seconds column.
func NewRefundRetryJob(
	handler commands.RetryRefundsCommandHandler,
	schedule string,
	logger *slog.Logger,
) *RefundRetryJob {
	return &RefundRetryJob{
		handler:  handler,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "refund_retry_job"),
	}
}

// Start begins the refund retry job on its configured schedule.
func (j *RefundRetryJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()
		cmd := commands.NewRetryRefundsCommand()

		if err := j.handler.Handle(ctx, cmd); err != nil {
			j.logger.ErrorContext(ctx, "Refund retry pass failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Refund retry job started", "schedule", j.schedule)
	return nil
}

// Stop stops the refund retry job.
func (j *RefundRetryJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Refund retry job stopped")
}
