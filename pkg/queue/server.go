package queue

import (
	"context"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/sefazor/meetapp-backend/internal/config"
	"go.uber.org/zap"
)

// Queues maps queue names to priority weights; a higher weight is polled more often.
var Queues = map[string]int{
	"mail":    6,
	"default": 3,
}

const maxRetryDelay = 5 * time.Minute

// Server wraps the asynq worker.
type Server struct {
	server *asynq.Server
	log    *zap.Logger
}

func NewServer(redis config.RedisConfig, queue config.QueueConfig, log *zap.Logger) *Server {
	log = log.Named("worker")

	srv := asynq.NewServer(
		RedisOpt(redis),
		asynq.Config{
			Concurrency:    queue.Concurrency,
			Queues:         Queues,
			RetryDelayFunc: retryDelay,
			ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
				retried, _ := asynq.GetRetryCount(ctx)
				maxRetry, _ := asynq.GetMaxRetry(ctx)
				log.Error("task failed",
					zap.String("type", task.Type()),
					zap.Int("retried", retried),
					zap.Int("max_retry", maxRetry),
					zap.Error(err),
				)
			}),
			Logger:   log.Sugar(),
			LogLevel: asynq.WarnLevel,
		},
	)

	return &Server{
		server: srv,
		log:    log,
	}
}

// retryDelay backs off exponentially from one second, capped at maxRetryDelay.
func retryDelay(n int, _ error, _ *asynq.Task) time.Duration {
	if n > 16 {
		return maxRetryDelay
	}
	delay := time.Duration(1<<uint(n)) * time.Second
	if delay > maxRetryDelay {
		delay = maxRetryDelay
	}
	return delay
}

// Start begins processing in the background.
func (s *Server) Start(handler asynq.Handler) error {
	if err := s.server.Start(handler); err != nil {
		return fmt.Errorf("failed to start worker: %w", err)
	}
	s.log.Info("worker started")
	return nil
}

// Shutdown waits for in-flight tasks to finish.
func (s *Server) Shutdown() {
	s.server.Shutdown()
	s.log.Info("worker stopped")
}
