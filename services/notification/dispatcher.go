package notification

import (
	"context"
	"errors"

	"laborlink/models"
	"laborlink/services/tasks"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// RetryQueue accepts notifications whose first insert failed.
type RetryQueue interface {
	EnqueueEmit(ctx context.Context, n models.Notification) error
}

// Dispatcher emits notifications after a state write has committed.
// Failures never propagate; they are logged and handed to the retry queue.
type Dispatcher struct {
	svc    NotificationService
	retry  RetryQueue
	logger *zap.Logger
}

// NewDispatcher builds a dispatcher. retry may be nil.
func NewDispatcher(svc NotificationService, retry RetryQueue, logger *zap.Logger) *Dispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dispatcher{svc: svc, retry: retry, logger: logger}
}

// Dispatch emits each notification and reports how many failed.
func (d *Dispatcher) Dispatch(ctx context.Context, notes []models.Notification) int {
	failed := 0
	for i := range notes {
		n := &notes[i]
		err := d.svc.Emit(ctx, n)
		if err == nil {
			continue
		}
		failed++
		d.logger.Error("notification emission failed",
			zap.String("notificationId", n.ID),
			zap.String("userId", n.UserID),
			zap.String("role", string(n.Role)),
			zap.String("title", n.Title),
			zap.Error(err),
		)
		if d.retry == nil {
			continue
		}
		if qerr := d.retry.EnqueueEmit(ctx, *n); qerr != nil {
			d.logger.Error("notification retry enqueue failed",
				zap.String("notificationId", n.ID),
				zap.Error(qerr),
			)
		}
	}
	return failed
}

// AsynqRetryQueue enqueues notification:emit tasks.
type AsynqRetryQueue struct {
	client *asynq.Client
}

func NewAsynqRetryQueue(client *asynq.Client) *AsynqRetryQueue {
	return &AsynqRetryQueue{client: client}
}

func (q *AsynqRetryQueue) EnqueueEmit(ctx context.Context, n models.Notification) error {
	task, opts, err := tasks.NewNotificationEmitTask(n)
	if err != nil {
		return err
	}
	if _, err := q.client.EnqueueContext(ctx, task, opts...); err != nil {
		if errors.Is(err, asynq.ErrTaskIDConflict) {
			return nil
		}
		return err
	}
	return nil
}
