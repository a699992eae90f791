package queue

import (
	"context"
	"fmt"
	"sync"

	"github.com/hibiken/asynq"
	"github.com/sefazor/meetapp-backend/internal/config"
)

// Client wraps the asynq producer.
type Client struct {
	client *asynq.Client
	mu     sync.RWMutex
}

// RedisOpt builds asynq connection options from the redis settings.
func RedisOpt(cfg config.RedisConfig) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	}
}

func NewClient(cfg config.RedisConfig) *Client {
	return &Client{
		client: asynq.NewClient(RedisOpt(cfg)),
	}
}

// EnqueueTask enqueues a task with the given type and payload.
// Options such as asynq.Queue, asynq.MaxRetry and asynq.Timeout are passed through.
func (c *Client) EnqueueTask(ctx context.Context, taskType string, payload []byte, opts ...asynq.Option) error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	task := asynq.NewTask(taskType, payload)
	if _, err := c.client.EnqueueContext(ctx, task, opts...); err != nil {
		return fmt.Errorf("failed to enqueue task: %w", err)
	}

	return nil
}

func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.client.Close(); err != nil {
		return fmt.Errorf("failed to close queue client: %w", err)
	}
	return nil
}
