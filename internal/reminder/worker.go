package reminder

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/agendasalao/salon-ai-platform/internal/observability/metrics"
	"github.com/agendasalao/salon-ai-platform/pkg/logging"
)

// Dispatcher abstracts outbound message delivery.
type Dispatcher interface {
	Dispatch(ctx context.Context, phone, text string) error
}

type workerConfig struct {
	pollInterval time.Duration
	parallelism  int
	maxAttempts  int
	baseDelay    time.Duration
}

// WorkerOption customizes worker behavior.
type WorkerOption func(*workerConfig)

// WithPollInterval sets how often the worker scans for due jobs.
func WithPollInterval(d time.Duration) WorkerOption {
	return func(c *workerConfig) {
		if d > 0 {
			c.pollInterval = d
		}
	}
}

// WithParallelism bounds how many jobs fire concurrently per cycle.
func WithParallelism(n int) WorkerOption {
	return func(c *workerConfig) {
		if n > 0 {
			c.parallelism = n
		}
	}
}

// WithMaxAttempts sets the dispatch attempt limit per job.
func WithMaxAttempts(n int) WorkerOption {
	return func(c *workerConfig) {
		if n > 0 {
			c.maxAttempts = n
		}
	}
}

// WithBaseDelay sets the first retry backoff; later retries double it.
func WithBaseDelay(d time.Duration) WorkerOption {
	return func(c *workerConfig) {
		if d > 0 {
			c.baseDelay = d
		}
	}
}

// Worker polls for due reminder jobs and dispatches them. Poll cycles
// run sequentially; within a cycle jobs fire concurrently up to the
// configured parallelism, and a cycle only ends once every in-flight
// job has reached a terminal state. A slow dispatcher therefore never
// lets a later cycle observe a job this cycle is still firing.
type Worker struct {
	store      Store
	dispatcher Dispatcher
	logger     *logging.Logger
	metrics    *metrics.ReminderMetrics
	cfg        workerConfig
	now        func() time.Time
	sleep      func(ctx context.Context, d time.Duration) error
}

// NewWorker creates a reminder worker.
func NewWorker(store Store, dispatcher Dispatcher, m *metrics.ReminderMetrics, logger *logging.Logger, opts ...WorkerOption) *Worker {
	if logger == nil {
		logger = logging.Default()
	}
	cfg := workerConfig{
		pollInterval: 5 * time.Minute,
		parallelism:  4,
		maxAttempts:  3,
		baseDelay:    2 * time.Second,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Worker{
		store:      store,
		dispatcher: dispatcher,
		logger:     logger,
		metrics:    m,
		cfg:        cfg,
		now:        time.Now,
		sleep:      sleepCtx,
	}
}

// Run polls until the context is cancelled. An immediate first cycle
// runs before the ticker starts.
func (w *Worker) Run(ctx context.Context) error {
	w.logger.Info("reminder worker started",
		"poll_interval", w.cfg.pollInterval,
		"parallelism", w.cfg.parallelism,
	)
	if _, err := w.ProcessDue(ctx); err != nil {
		w.logger.Error("reminder worker: poll cycle failed", "error", err)
	}

	ticker := time.NewTicker(w.cfg.pollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			w.logger.Info("reminder worker stopped")
			return ctx.Err()
		case <-ticker.C:
			if _, err := w.ProcessDue(ctx); err != nil {
				w.logger.Error("reminder worker: poll cycle failed", "error", err)
			}
		}
	}
}

// ProcessDue fires every due job and returns how many reached Fired.
func (w *Worker) ProcessDue(ctx context.Context) (int, error) {
	due, err := w.store.ListDue(ctx, w.now().UTC())
	if err != nil {
		return 0, fmt.Errorf("reminder worker: list due: %w", err)
	}
	if len(due) == 0 {
		return 0, nil
	}
	w.logger.Info("reminder worker: processing due jobs", "count", len(due))

	sem := make(chan struct{}, w.cfg.parallelism)
	var wg sync.WaitGroup
	var mu sync.Mutex
	fired := 0

	for i := range due {
		job := due[i]
		sem <- struct{}{}
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer func() { <-sem }()
			if w.fireOne(ctx, &job) {
				mu.Lock()
				fired++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	return fired, nil
}

// fireOne dispatches a single job with bounded-backoff retries and
// records the terminal state. The terminal write is conditional on the
// job still being Scheduled, so a cancellation that landed while the
// send was in flight wins.
func (w *Worker) fireOne(ctx context.Context, job *Job) bool {
	text := RenderMessage(job)

	var lastErr error
	attempts := 0
	for attempts < w.cfg.maxAttempts {
		attempts++
		lastErr = w.dispatcher.Dispatch(ctx, job.ClientPhone, text)
		if lastErr == nil {
			break
		}
		if attempts < w.cfg.maxAttempts {
			w.metrics.ObserveRetry()
			delay := w.cfg.baseDelay << (attempts - 1)
			if err := w.sleep(ctx, delay); err != nil {
				break
			}
		}
	}

	if lastErr != nil {
		updated, err := w.store.MarkFailed(ctx, job.ID, attempts, lastErr.Error())
		if err != nil {
			w.logger.Error("reminder worker: mark failed", "job_id", job.ID, "error", err)
			return false
		}
		if updated {
			w.metrics.ObserveFired(string(job.Kind), "failed")
			w.logger.Error("reminder worker: dispatch failed",
				"job_id", job.ID,
				"kind", job.Kind,
				"attempts", attempts,
				"error", lastErr,
			)
		}
		return false
	}

	updated, err := w.store.MarkFired(ctx, job.ID, attempts)
	if err != nil {
		w.logger.Error("reminder worker: mark fired", "job_id", job.ID, "error", err)
		return false
	}
	if !updated {
		w.logger.Info("reminder worker: job cancelled mid-flight", "job_id", job.ID)
		return false
	}
	w.metrics.ObserveFired(string(job.Kind), "fired")
	w.logger.Info("reminder worker: job fired",
		"job_id", job.ID,
		"kind", job.Kind,
		"phone", job.ClientPhone,
	)
	return true
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
