package cron

import (
	"context"
	"time"

	"laborlink/services/notification"
	"laborlink/services/tasks"
	"laborlink/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// NotificationWorker replays notification inserts that failed after a
// booking transition committed.
type NotificationWorker struct {
	srv    *asynq.Server
	mux    *asynq.ServeMux
	logger *zap.Logger
}

// NewNotificationWorker builds the worker; call Start to run it.
func NewNotificationWorker(redisOpts asynq.RedisClientOpt, notifSvc notification.NotificationService, logger *zap.Logger) *NotificationWorker {
	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
			RetryDelayFunc: func(n int, _ error, _ *asynq.Task) time.Duration {
				return time.Duration(n*n+1) * time.Second
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeNotificationEmit, HandleNotificationEmitTask(notifSvc, logger))

	return &NotificationWorker{srv: srv, mux: mux, logger: logger}
}

// Start runs the async worker in background, retrying startup with backoff.
func (w *NotificationWorker) Start() {
	go func() {
		w.logger.Info("[NotificationWorker] starting async worker")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			err := w.srv.Run(w.mux)
			if err == nil {
				return
			}
			w.logger.Error("[NotificationWorker] failed to start worker",
				zap.Int("attempt", attempts),
				zap.Int("maxAttempts", maxAttempts),
				zap.Error(err),
			)
			if attempts == maxAttempts {
				w.logger.Error("[NotificationWorker] max retry attempts reached; retries disabled")
				return
			}
			time.Sleep(time.Duration(attempts*2) * time.Second)
		}
	}()
}

// Shutdown stops processing and waits for in-flight tasks.
func (w *NotificationWorker) Shutdown() {
	w.srv.Shutdown()
}

// HandleNotificationEmitTask re-emits the payload. Inserts are idempotent by
// id, so a task that already succeeded once is harmless to replay.
func HandleNotificationEmitTask(notifSvc notification.NotificationService, logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		n, err := tasks.ParseNotificationEmitTask(task)
		if err != nil {
			logger.Error("[NotificationWorker] invalid payload", zap.Error(err))
			return asynq.SkipRetry
		}

		if err := notifSvc.Emit(ctx, &n); err != nil {
			if utils.IsKind(err, utils.KindInvalidInput) {
				logger.Error("[NotificationWorker] dropping invalid notification", zap.String("notificationId", n.ID), zap.Error(err))
				return asynq.SkipRetry
			}
			logger.Warn("[NotificationWorker] retry failed",
				zap.String("notificationId", n.ID),
				zap.Error(err),
			)
			return err
		}
		logger.Info("[NotificationWorker] notification stored", zap.String("notificationId", n.ID))
		return nil
	}
}
