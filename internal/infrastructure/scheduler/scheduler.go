// Package scheduler runs the periodic maintenance tasks: bulk rescoring of
// pending credit requests, the audit retention sweep, and the external
// record refresh.
package scheduler

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Task is one periodic unit of work.
type Task func(ctx context.Context) error

// Worker runs a named task on a fixed interval until stopped.
type Worker struct {
	name     string
	task     Task
	interval time.Duration
	logger   *slog.Logger
	stop     chan struct{}
	stopOnce sync.Once
}

// NewWorker creates a worker. The task runs once immediately on Start, then
// on every tick.
func NewWorker(name string, task Task, interval time.Duration, logger *slog.Logger) *Worker {
	if logger == nil {
		logger = slog.Default()
	}
	return &Worker{
		name:     name,
		task:     task,
		interval: interval,
		logger:   logger,
		stop:     make(chan struct{}),
	}
}

// Start begins the loop. Call in a goroutine.
func (w *Worker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.run(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stop:
			return
		case <-ticker.C:
			w.run(ctx)
		}
	}
}

// Stop signals the worker to stop. The signal is never lost, even when the
// worker is in the middle of a task run; calling Stop more than once is safe.
func (w *Worker) Stop() {
	w.stopOnce.Do(func() { close(w.stop) })
}

func (w *Worker) run(ctx context.Context) {
	start := time.Now()
	if err := w.task(ctx); err != nil {
		w.logger.ErrorContext(ctx, "scheduled task failed",
			slog.String("task", w.name),
			slog.String("error", err.Error()),
			slog.Duration("elapsed", time.Since(start)))
		return
	}
	w.logger.DebugContext(ctx, "scheduled task complete",
		slog.String("task", w.name),
		slog.Duration("elapsed", time.Since(start)))
}
