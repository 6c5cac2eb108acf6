package worker

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/okian/attrition/internal/domain/model"
	"github.com/okian/attrition/pkg/logger"
	"github.com/okian/attrition/pkg/metrics"
)

const defaultWorkerCount = 4

// Predictor scores every employee of a batch.
type Predictor interface {
	BatchPredict(ctx context.Context, in model.BatchInput) ([]model.ChurnPrediction, error)
}

// Saver persists a prediction.
type Saver interface {
	Save(ctx context.Context, p model.ChurnPrediction) error
}

// Queue defines how workers receive jobs.
type Queue interface {
	Dequeue(ctx context.Context) <-chan model.Job
}

// Reporter receives job lifecycle updates.
type Reporter interface {
	JobStarted(ctx context.Context, jobID string)
	JobFinished(ctx context.Context, jobID string, predictions int, err error)
}

type nopReporter struct{}

func (nopReporter) JobStarted(context.Context, string) {}
func (nopReporter) JobFinished(context.Context, string, int, error) {}

// Worker processes jobs using the provided interfaces.
type Worker interface {
	// Run starts the worker loop until ctx is canceled or the queue closes.
	Run(ctx context.Context)

	// Shutdown stops the worker after its current job.
	Shutdown(ctx context.Context) error
}

// InMemoryWorker implements Worker.
type InMemoryWorker struct {
	queue     Queue
	predictor Predictor
	saver     Saver
	reporter  Reporter
	name      string

	shutdown chan struct{}
	stopOnce sync.Once
	done     chan struct{}

	logger logger.Logger
}

// NewInMemoryWorker creates a new worker with configuration options.
func NewInMemoryWorker(queue Queue, predictor Predictor, saver Saver, opts ...Option) *InMemoryWorker {
	w := &InMemoryWorker{
		queue:     queue,
		predictor: predictor,
		saver:     saver,
		reporter:  nopReporter{},
		name:      "worker",
		shutdown:  make(chan struct{}),
		done:      make(chan struct{}),
		logger:    logger.Get().Named("worker"),
	}

	for _, opt := range opts {
		opt(w)
	}

	if w.name != "worker" {
		w.logger = w.logger.Named(w.name)
	}

	return w
}

// Run starts the worker loop.
func (w *InMemoryWorker) Run(ctx context.Context) {
	defer close(w.done)

	jobs := w.queue.Dequeue(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.shutdown:
			return
		case job, ok := <-jobs:
			if !ok {
				return
			}
			if err := w.processJob(ctx, job); err != nil {
				w.logger.Error(ctx, "job failed", logger.String("job_id", job.ID), logger.Error(err))
			}
		}
	}
}

// Shutdown gracefully stops the worker.
func (w *InMemoryWorker) Shutdown(ctx context.Context) error {
	w.stop()

	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		w.logger.Warn(ctx, "shutdown timed out")
		return fmt.Errorf("shutdown timed out: %w", ctx.Err())
	}
}

func (w *InMemoryWorker) stop() {
	w.stopOnce.Do(func() { close(w.shutdown) })
}

// processJob scores a job and stores every prediction. Scoring is all or
// nothing; a store failure stops the job after the predictions saved so far.
func (w *InMemoryWorker) processJob(ctx context.Context, job model.Job) error { //nolint:gocritic // hugeParam: Job is passed by value for channel semantics
	metrics.AddWorkersBusy(1)
	defer metrics.AddWorkersBusy(-1)

	w.reporter.JobStarted(ctx, job.ID)
	start := time.Now()

	preds, err := w.predictor.BatchPredict(ctx, job.Input)
	if err != nil {
		metrics.RecordError("worker", "prediction_error")
		w.finish(ctx, job.ID, 0, err)
		return fmt.Errorf("job %s: %w", job.ID, err)
	}

	for i, p := range preds {
		if err := w.saver.Save(ctx, p); err != nil {
			metrics.RecordError("worker", "store_error")
			w.finish(ctx, job.ID, i, err)
			return fmt.Errorf("job %s: save %s: %w", job.ID, p.EmployeeID, err)
		}
	}

	w.logger.Info(ctx, "job done",
		logger.String("job_id", job.ID),
		logger.Int("predictions", len(preds)),
		logger.Duration("took", time.Since(start)),
	)
	w.finish(ctx, job.ID, len(preds), nil)
	return nil
}

func (w *InMemoryWorker) finish(ctx context.Context, jobID string, n int, err error) {
	state := model.JobDone
	if err != nil {
		state = model.JobFailed
	}
	metrics.RecordJobFinished(string(state))
	w.reporter.JobFinished(ctx, jobID, n, err)
}

// Pool manages multiple workers sharing one queue.
type Pool struct {
	workers []*InMemoryWorker
	queue   Queue
	logger  logger.Logger
}

// NewPool creates a worker pool. A non-positive count selects the default.
func NewPool(workerCount int, queue Queue, predictor Predictor, saver Saver, opts ...Option) *Pool {
	if workerCount < 1 {
		workerCount = defaultWorkerCount
	}

	pool := &Pool{
		workers: make([]*InMemoryWorker, workerCount),
		queue:   queue,
		logger:  logger.Get().Named("worker-pool"),
	}

	for i := 0; i < workerCount; i++ {
		workerOpts := append([]Option{WithName("worker-" + strconv.Itoa(i))}, opts...)
		pool.workers[i] = NewInMemoryWorker(queue, predictor, saver, workerOpts...)
	}

	metrics.UpdateWorkerCount(workerCount)

	return pool
}

// Size returns the number of workers.
func (p *Pool) Size() int {
	return len(p.workers)
}

// Start starts all workers in the pool.
func (p *Pool) Start(ctx context.Context) {
	for _, w := range p.workers {
		go w.Run(ctx)
	}
}

// Shutdown closes the queue and lets workers drain it. Workers still busy
// when ctx expires are told to stop after their current job.
func (p *Pool) Shutdown(ctx context.Context) error {
	if closer, ok := p.queue.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			p.logger.Error(ctx, "error closing queue", logger.Error(err))
		}
	}

	for i, w := range p.workers {
		select {
		case <-w.done:
		case <-ctx.Done():
			p.logger.Warn(ctx, "worker shutdown timed out", logger.Int("worker_id", i))
			for _, rest := range p.workers[i:] {
				rest.stop()
			}
			return fmt.Errorf("pool shutdown: %w", ctx.Err())
		}
	}
	return nil
}
