package api

import (
	"context"
	"net/http"
)

// ThresholdDependencies defines the interface for risk threshold operations.
type ThresholdDependencies interface {
	RiskThreshold() float64
	SetRiskThreshold(ctx context.Context, v float64) error
}

// ThresholdHandler handles threshold requests.
type ThresholdHandler struct {
	deps ThresholdDependencies
}

// NewThresholdHandler creates a new threshold handler.
func NewThresholdHandler(deps ThresholdDependencies) *ThresholdHandler {
	return &ThresholdHandler{deps: deps}
}

type thresholdBody struct {
	RiskThreshold *float64 `json:"risk_threshold"`
}

// HandleThreshold handles GET and PUT /threshold requests.
func (h *ThresholdHandler) HandleThreshold(w http.ResponseWriter, r *http.Request) {
	const op = "api.threshold"
	switch r.Method {
	case http.MethodGet:
	case http.MethodPut:
		var body thresholdBody
		if err := decodeJSON(r, &body); err != nil {
			writeFailure(w, WrapKind(op, ErrBadRequest, err))
			return
		}
		if body.RiskThreshold == nil {
			writeFailure(w, NewKind(op, ErrBadRequest))
			return
		}
		if err := h.deps.SetRiskThreshold(r.Context(), *body.RiskThreshold); err != nil {
			writeFailure(w, Wrap(op, err))
			return
		}
	default:
		http.NotFound(w, r)
		return
	}
	v := h.deps.RiskThreshold()
	writeJSON(w, http.StatusOK, thresholdBody{RiskThreshold: &v})
}
