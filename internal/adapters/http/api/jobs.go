package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/okian/attrition/internal/domain/model"
)

// JobDependencies defines the interface for asynchronous batch jobs.
type JobDependencies interface {
	SubmitJob(ctx context.Context, jobID string, in model.BatchInput) (model.JobStatus, bool, error)
	JobStatus(ctx context.Context, jobID string) (model.JobStatus, error)
}

// JobsHandler handles job requests.
type JobsHandler struct {
	deps JobDependencies
}

// NewJobsHandler creates a new jobs handler.
func NewJobsHandler(deps JobDependencies) *JobsHandler {
	return &JobsHandler{deps: deps}
}

// jobRequest is the body of POST /jobs: an optional job_id plus the batch.
type jobRequest struct {
	JobID string `json:"job_id"`
	model.BatchInput
}

type ackResponse struct {
	Status    string          `json:"status"`
	Duplicate bool            `json:"duplicate"`
	Job       model.JobStatus `json:"job"`
}

// HandlePostJob handles POST /jobs requests. Resubmitting a job_id is
// acknowledged without queuing the batch again.
func (h *JobsHandler) HandlePostJob(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_job"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req jobRequest
	if err := decodeJSON(r, &req); err != nil {
		writeFailure(w, WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := validateBatch(req.BatchInput); err != nil {
		writeFailure(w, Wrap(op, err))
		return
	}

	status, duplicate, err := h.deps.SubmitJob(r.Context(), req.JobID, req.BatchInput)
	if err != nil {
		writeFailure(w, Wrap(op, err))
		return
	}
	if duplicate {
		writeJSON(w, http.StatusOK, ackResponse{Status: "duplicate", Duplicate: true, Job: status})
		return
	}
	writeJSON(w, http.StatusAccepted, ackResponse{Status: "accepted", Job: status})
}

// HandleGetJob handles GET /jobs/{job_id} requests.
func (h *JobsHandler) HandleGetJob(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_job"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	id := strings.TrimPrefix(r.URL.Path, "/jobs/")
	if id == "" || strings.Contains(id, "/") {
		writeFailure(w, NewKind(op, ErrBadRequest))
		return
	}
	status, err := h.deps.JobStatus(r.Context(), id)
	if err != nil {
		writeFailure(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, status)
}
