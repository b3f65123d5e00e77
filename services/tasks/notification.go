package tasks

import (
	"encoding/json"
	"fmt"

	"laborlink/models"

	"github.com/hibiken/asynq"
)

const TypeNotificationEmit = "notification:emit"

// MaxEmitRetries bounds how often a failed notification insert is retried.
const MaxEmitRetries = 5

func NewNotificationEmitTask(n models.Notification) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(n)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeNotificationEmit, b)
	opts := []asynq.Option{
		asynq.MaxRetry(MaxEmitRetries),
		asynq.TaskID("notification-" + n.ID),
	}
	return task, opts, nil
}

// ParseNotificationEmitTask decodes the payload of a notification:emit task.
func ParseNotificationEmitTask(task *asynq.Task) (models.Notification, error) {
	var n models.Notification
	if err := json.Unmarshal(task.Payload(), &n); err != nil {
		return n, fmt.Errorf("invalid %s payload: %w", TypeNotificationEmit, err)
	}
	return n, nil
}
