package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
)

// TaskEnqueuer is the producer side of the queue.
type TaskEnqueuer interface {
	EnqueueTask(ctx context.Context, taskType string, payload []byte, opts ...asynq.Option) error
}

// Dispatcher serializes payloads and routes each task kind to its queue.
type Dispatcher struct {
	enqueuer    TaskEnqueuer
	maxRetry    int
	taskTimeout time.Duration
}

func NewDispatcher(enqueuer TaskEnqueuer, maxRetry int, taskTimeout time.Duration) *Dispatcher {
	return &Dispatcher{
		enqueuer:    enqueuer,
		maxRetry:    maxRetry,
		taskTimeout: taskTimeout,
	}
}

// Enqueue hands the task to the queue and returns without waiting for it to run.
func (d *Dispatcher) Enqueue(ctx context.Context, taskType string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal %s payload: %w", taskType, err)
	}

	opts := []asynq.Option{
		asynq.Queue(queueFor(taskType)),
		asynq.MaxRetry(d.maxRetry),
	}
	if d.taskTimeout > 0 {
		opts = append(opts, asynq.Timeout(d.taskTimeout))
	}

	return d.enqueuer.EnqueueTask(ctx, taskType, data, opts...)
}

func queueFor(taskType string) string {
	switch taskType {
	case TypeSubscriptionMail:
		return QueueMail
	default:
		return QueueDefault
	}
}
