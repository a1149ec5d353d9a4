package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"
)

// Enqueuer pushes background tasks onto the queue. Enqueue failures
// are logged, never surfaced: losing a snapshot refresh or a cache
// warm only costs latency.
type Enqueuer struct {
	client *asynq.Client
	logger *slog.Logger
}

// NewEnqueuer connects a task client to Redis.
func NewEnqueuer(redisAddr string, logger *slog.Logger) *Enqueuer {
	return &Enqueuer{
		client: asynq.NewClient(asynq.RedisClientOpt{Addr: redisAddr}),
		logger: logger,
	}
}

// SnapshotRefresh queues a rewrite of all snapshots.
func (e *Enqueuer) SnapshotRefresh(ctx context.Context) {
	task, err := NewSnapshotRefreshTask("")
	if err != nil {
		e.logger.Error("build snapshot task", "error", err)
		return
	}
	if _, err := e.client.EnqueueContext(ctx, task,
		asynq.MaxRetry(3), asynq.Timeout(time.Minute)); err != nil {
		e.logger.Error("enqueue snapshot refresh", "error", err)
	}
}

// ArtifactWarm queues a PDF pre-render for the given document.
func (e *Enqueuer) ArtifactWarm(ctx context.Context, kind, id string) {
	task, err := NewArtifactWarmTask(kind, id)
	if err != nil {
		e.logger.Error("build artifact task", "error", err)
		return
	}
	if _, err := e.client.EnqueueContext(ctx, task,
		asynq.MaxRetry(2), asynq.Timeout(2*time.Minute)); err != nil {
		e.logger.Error("enqueue artifact warm", "error", err)
	}
}

// Close releases the underlying client.
func (e *Enqueuer) Close() error {
	return e.client.Close()
}

// NewServer builds the worker-side asynq server.
func NewServer(redisAddr string, logger *slog.Logger) *asynq.Server {
	return asynq.NewServer(
		asynq.RedisClientOpt{Addr: redisAddr},
		asynq.Config{
			Concurrency: 5,
			ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
				logger.Error("task failed", "type", task.Type(), "error", err)
			}),
		},
	)
}
