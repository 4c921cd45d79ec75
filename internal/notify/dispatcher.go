package notify

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mesika/account-service/internal/auth"
)

// Dispatcher is the producer side of the notification queue. Enqueue returns
// as soon as the broker accepts the job; delivery happens on the worker.
type Dispatcher struct {
	queue   Queue
	log     *zap.Logger
	metrics *Metrics
}

func NewDispatcher(queue Queue, log *zap.Logger, metrics *Metrics) *Dispatcher {
	return &Dispatcher{
		queue:   queue,
		log:     log,
		metrics: metrics,
	}
}

// NotifyNewAddress implements auth.LoginNotifier.
func (d *Dispatcher) NotifyNewAddress(ctx context.Context, notice auth.LoginNotice) error {
	job := &Job{
		ID:        uuid.NewString(),
		Recipient: notice.Email,
		FirstName: notice.FirstName,
		Address:   notice.Address,
		UserAgent: notice.UserAgent,
		LoginAt:   notice.Time,
	}

	if err := d.queue.Enqueue(ctx, job); err != nil {
		d.metrics.EnqueueFailed.Inc()
		return fmt.Errorf("failed to dispatch login notification: %w", err)
	}

	d.metrics.Enqueued.Inc()
	d.log.Info("login notification enqueued",
		zap.String("job_id", job.ID),
		zap.String("recipient", job.Recipient),
		zap.String("address", job.Address))
	return nil
}
