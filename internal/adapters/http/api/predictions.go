package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/okian/attrition/internal/adapters/repository"
	"github.com/okian/attrition/internal/domain/churn"
	"github.com/okian/attrition/internal/domain/model"
)

// PredictionDependencies defines the interface for prediction operations.
type PredictionDependencies interface {
	Predict(ctx context.Context, in churn.Input) (model.ChurnPrediction, error)
	BatchPredict(ctx context.Context, in model.BatchInput) (model.BatchResult, error)
	Prediction(ctx context.Context, employeeID string) (repository.Entry, error)
}

// PredictionsHandler handles prediction requests.
type PredictionsHandler struct {
	deps PredictionDependencies
}

// NewPredictionsHandler creates a new predictions handler.
func NewPredictionsHandler(deps PredictionDependencies) *PredictionsHandler {
	return &PredictionsHandler{deps: deps}
}

// predictRequest is the body of POST /predictions.
type predictRequest struct {
	Employee    model.Employee            `json:"employee"`
	Performance []model.PerformanceRecord `json:"performance"`
	Engagement  []model.EngagementRecord  `json:"engagement"`
	Department  *model.DepartmentContext  `json:"department,omitempty"`
}

// validate rejects records that name a different employee. Records with
// no employee_id are taken to belong to the request's employee.
func (p predictRequest) validate() error {
	id := strings.TrimSpace(p.Employee.ID)
	if id == "" {
		return fmt.Errorf("%w: missing employee.id", ErrValidation)
	}
	for i, r := range p.Performance {
		if r.EmployeeID != "" && r.EmployeeID != id {
			return fmt.Errorf("%w: performance[%d] belongs to %q", ErrValidation, i, r.EmployeeID)
		}
	}
	for i, r := range p.Engagement {
		if r.EmployeeID != "" && r.EmployeeID != id {
			return fmt.Errorf("%w: engagement[%d] belongs to %q", ErrValidation, i, r.EmployeeID)
		}
	}
	return nil
}

func (p predictRequest) input() churn.Input {
	return churn.Input{
		Employee:    p.Employee,
		Performance: p.Performance,
		Engagement:  p.Engagement,
		Department:  p.Department,
	}
}

// validateBatch requires every employee to carry a unique, non-empty ID.
func validateBatch(in model.BatchInput) error {
	seen := make(map[string]struct{}, len(in.Employees))
	for i, e := range in.Employees {
		id := strings.TrimSpace(e.ID)
		if id == "" {
			return fmt.Errorf("%w: employees[%d] missing id", ErrValidation, i)
		}
		if _, dup := seen[id]; dup {
			return fmt.Errorf("%w: duplicate employee id %q", ErrValidation, id)
		}
		seen[id] = struct{}{}
	}
	return nil
}

// HandlePostPrediction handles POST /predictions requests.
func (h *PredictionsHandler) HandlePostPrediction(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_prediction"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req predictRequest
	if err := decodeJSON(r, &req); err != nil {
		writeFailure(w, WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeFailure(w, Wrap(op, err))
		return
	}
	p, err := h.deps.Predict(r.Context(), req.input())
	if err != nil {
		writeFailure(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// HandlePostBatch handles POST /predictions/batch requests.
func (h *PredictionsHandler) HandlePostBatch(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_batch"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var in model.BatchInput
	if err := decodeJSON(r, &in); err != nil {
		writeFailure(w, WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := validateBatch(in); err != nil {
		writeFailure(w, Wrap(op, err))
		return
	}
	res, err := h.deps.BatchPredict(r.Context(), in)
	if err != nil {
		writeFailure(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// HandleGetPrediction handles GET /predictions/{employee_id} requests.
func (h *PredictionsHandler) HandleGetPrediction(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_prediction"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	id := strings.TrimPrefix(r.URL.Path, "/predictions/")
	if id == "" || strings.Contains(id, "/") {
		writeFailure(w, NewKind(op, ErrBadRequest))
		return
	}
	entry, err := h.deps.Prediction(r.Context(), id)
	if err != nil {
		writeFailure(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, entry)
}
