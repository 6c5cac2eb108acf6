// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"
	jobqueue "github.com/okian/attrition/internal/adapters/mq/queue"
	workerpool "github.com/okian/attrition/internal/adapters/mq/worker"
	repository "github.com/okian/attrition/internal/adapters/repository"
	"github.com/okian/attrition/internal/domain/churn"
	"github.com/okian/attrition/internal/domain/dedupe"
	"github.com/okian/attrition/internal/domain/model"
	"github.com/okian/attrition/pkg/logger"
	"github.com/okian/attrition/pkg/metrics"
)

// Service implements the API dependencies for the churn scoring system.
type Service struct {
	mu sync.RWMutex

	// Core components
	scorer     *churn.Scorer
	store      repository.Store
	deduper    dedupe.Deduper
	jobQueue   *jobqueue.InMemoryQueue
	workerPool *workerpool.Pool

	// Configuration
	workerCount         int
	queueSize           int
	dedupeSize          int
	batchConcurrency    int
	riskThreshold       float64
	replacementFraction float64
	now                 func() time.Time
	newID               func() string

	// Job registry, oldest first for eviction.
	jobsMu   sync.RWMutex
	jobs     map[string]*model.JobStatus
	jobOrder []string

	// Employees seen by predictions, for replacement cost estimates.
	employeesMu sync.RWMutex
	employees   map[string]model.Employee

	// State
	started bool

	logger logger.Logger
}

// New constructs a Service. The scorer, store, deduper and queue are ready
// immediately; Start launches the worker pool.
func New(opts ...Option) (*Service, error) {
	s := &Service{
		workerCount:         4,
		queueSize:           1024,
		dedupeSize:          10_000,
		batchConcurrency:    runtime.NumCPU(),
		riskThreshold:       churn.DefaultRiskThreshold,
		replacementFraction: 0.5,
		now:                 time.Now,
		newID:               uuid.NewString,
		jobs:                make(map[string]*model.JobStatus),
		employees:           make(map[string]model.Employee),
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.logger == nil {
		s.logger = logger.Get().Named("service")
	}

	s.scorer = churn.New(
		churn.WithClock(s.now),
		churn.WithIDGenerator(s.newID),
		churn.WithConcurrency(s.batchConcurrency),
	)
	if err := s.scorer.SetRiskThreshold(s.riskThreshold); err != nil {
		return nil, fmt.Errorf("service: %w", err)
	}
	metrics.UpdateRiskThreshold(s.riskThreshold)

	s.store = repository.NewTreapStore()
	s.deduper = dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(s.dedupeSize))
	s.jobQueue = jobqueue.NewInMemoryQueue(jobqueue.WithCapacity(s.queueSize))

	return s, nil
}

// Start launches the worker pool.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.jobQueue.IsClosed() {
		return fmt.Errorf("service: %w", jobqueue.ErrClosed)
	}

	s.logger.Info(ctx, "starting churn scoring service...")

	s.workerPool = workerpool.NewPool(s.workerCount, s.jobQueue, s.scorer, s.store,
		workerpool.WithReporter(s),
	)
	s.workerPool.Start(ctx)

	s.started = true
	s.logger.Info(ctx, "churn scoring service started",
		logger.Int("workers", s.workerCount),
		logger.Int("queueSize", s.queueSize),
		logger.Int("dedupeSize", s.dedupeSize),
		logger.Float64("riskThreshold", s.scorer.RiskThreshold()),
	)

	return nil
}

// Stop closes the job queue and waits for the workers to drain it.
func (s *Service) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return nil
	}

	s.logger.Info(ctx, "stopping churn scoring service...")

	var err error
	if s.workerPool != nil {
		err = s.workerPool.Shutdown(ctx)
	}

	s.started = false
	s.logger.Info(ctx, "churn scoring service stopped")
	return err
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	queueLen := s.jobQueue.Len(ctx)
	stored := s.store.Count(ctx)

	s.jobsMu.RLock()
	byState := map[model.JobState]int{}
	for _, st := range s.jobs {
		byState[st.State]++
	}
	s.jobsMu.RUnlock()

	return map[string]interface{}{
		"started":             s.started,
		"workerCount":         s.workerCount,
		"queueSize":           s.queueSize,
		"queueLength":         queueLen,
		"dedupeSize":          s.dedupeSize,
		"seenJobs":            s.deduper.Size(),
		"jobsQueued":          byState[model.JobQueued],
		"jobsRunning":         byState[model.JobRunning],
		"jobsDone":            byState[model.JobDone],
		"jobsFailed":          byState[model.JobFailed],
		"storedPredictions":   stored,
		"riskThreshold":       s.scorer.RiskThreshold(),
		"modelVersion":        model.ModelVersion,
		"replacementFraction": s.replacementFraction,
	}
}
