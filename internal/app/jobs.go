package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/okian/attrition/internal/domain/model"
	"github.com/okian/attrition/pkg/logger"
	"github.com/okian/attrition/pkg/metrics"
)

// SubmitJob queues a batch for asynchronous scoring. An empty jobID gets a
// generated one. Resubmitting a remembered jobID returns its current status
// with duplicate set and queues nothing.
func (s *Service) SubmitJob(ctx context.Context, jobID string, in model.BatchInput) (status model.JobStatus, duplicate bool, err error) {
	if len(in.Employees) == 0 {
		return model.JobStatus{}, false, model.ErrEmptyBatch
	}
	jobID = strings.TrimSpace(jobID)
	if jobID == "" {
		jobID = s.newID()
	}

	if s.deduper.SeenAndRecord(ctx, jobID) {
		metrics.RecordJobDuplicate()
		st, err := s.JobStatus(ctx, jobID)
		if err != nil {
			st = model.JobStatus{JobID: jobID}
		}
		return st, true, nil
	}

	job := model.Job{ID: jobID, Input: in, SubmittedAt: s.now()}
	status = model.JobStatus{
		JobID:       jobID,
		State:       model.JobQueued,
		Employees:   len(in.Employees),
		SubmittedAt: job.SubmittedAt,
	}
	s.putJob(status)

	if err := s.jobQueue.Enqueue(ctx, job); err != nil {
		s.deduper.Unrecord(ctx, jobID)
		s.dropJob(jobID)
		metrics.RecordJobRejected()
		s.logger.Warn(ctx, "job rejected", logger.String("jobID", jobID), logger.Error(err))
		return model.JobStatus{}, false, fmt.Errorf("enqueue job %s: %w", jobID, err)
	}

	metrics.RecordJobSubmitted()
	s.logger.Debug(ctx, "job queued",
		logger.String("jobID", jobID),
		logger.Int("employees", len(in.Employees)),
	)
	return status, false, nil
}

// JobStatus returns the status of a submitted job.
func (s *Service) JobStatus(_ context.Context, jobID string) (model.JobStatus, error) {
	s.jobsMu.RLock()
	defer s.jobsMu.RUnlock()

	st, ok := s.jobs[jobID]
	if !ok {
		return model.JobStatus{}, fmt.Errorf("%w: %q", model.ErrJobNotFound, jobID)
	}
	return *st, nil
}

// JobStarted marks a job as running.
func (s *Service) JobStarted(_ context.Context, jobID string) {
	s.jobsMu.Lock()
	defer s.jobsMu.Unlock()

	if st, ok := s.jobs[jobID]; ok {
		st.State = model.JobRunning
	}
}

// JobFinished records the outcome of a job.
func (s *Service) JobFinished(_ context.Context, jobID string, predictions int, err error) {
	now := s.now()

	s.jobsMu.Lock()
	defer s.jobsMu.Unlock()

	st, ok := s.jobs[jobID]
	if !ok {
		return
	}
	st.Predictions = predictions
	st.CompletedAt = &now
	st.State = model.JobDone
	if err != nil {
		st.State = model.JobFailed
		st.Error = err.Error()
	}
}

// putJob registers a status, evicting the oldest once the registry holds
// as many jobs as the deduper remembers.
func (s *Service) putJob(st model.JobStatus) {
	s.jobsMu.Lock()
	defer s.jobsMu.Unlock()

	s.jobs[st.JobID] = &st
	s.jobOrder = append(s.jobOrder, st.JobID)
	for len(s.jobOrder) > s.dedupeSize {
		delete(s.jobs, s.jobOrder[0])
		s.jobOrder = s.jobOrder[1:]
	}
}

func (s *Service) dropJob(jobID string) {
	s.jobsMu.Lock()
	defer s.jobsMu.Unlock()

	delete(s.jobs, jobID)
	for i, id := range s.jobOrder {
		if id == jobID {
			s.jobOrder = append(s.jobOrder[:i], s.jobOrder[i+1:]...)
			break
		}
	}
}
