package scheduler

import (
	"context"
	"log/slog"
	"time"
)

// Task is one run of a scheduled job.
type Task func(ctx context.Context) error

// Worker runs a task immediately and then on every tick.
type Worker struct {
	name     string
	interval time.Duration
	task     Task
	stopCh   chan struct{}
}

// NewWorker creates a worker running task every interval.
func NewWorker(name string, interval time.Duration, task Task) *Worker {
	return &Worker{
		name:     name,
		interval: interval,
		task:     task,
		stopCh:   make(chan struct{}),
	}
}

// Start runs the task until ctx is done or Stop is called.
// A failed run is logged and does not stop the worker.
func (w *Worker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	slog.Info("Scheduled job started", "job", w.name, "interval", w.interval)

	w.run(ctx)

	for {
		select {
		case <-ctx.Done():
			slog.Info("Scheduled job shutting down", "job", w.name)

			return
		case <-w.stopCh:
			slog.Info("Scheduled job stopped", "job", w.name)

			return
		case <-ticker.C:
			w.run(ctx)
		}
	}
}

// Stop stops the worker.
func (w *Worker) Stop() {
	close(w.stopCh)
}

func (w *Worker) run(ctx context.Context) {
	start := time.Now()
	if err := w.task(ctx); err != nil {
		slog.Error("Scheduled job failed", "job", w.name, "error", err)

		return
	}

	slog.Debug("Scheduled job finished", "job", w.name, "duration", time.Since(start).String())
}
