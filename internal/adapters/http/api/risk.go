package api

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/okian/attrition/internal/adapters/repository"
)

const defaultTopLimit = 10

// RiskDependencies defines the interface for risk ranking operations.
type RiskDependencies interface {
	TopRisks(ctx context.Context, n int) ([]repository.Entry, error)
}

// RiskHandler handles risk ranking requests.
type RiskHandler struct {
	deps     RiskDependencies
	maxLimit int
}

// NewRiskHandler creates a new risk handler.
func NewRiskHandler(deps RiskDependencies, maxLimit int) *RiskHandler {
	if maxLimit < 1 {
		maxLimit = 100
	}
	return &RiskHandler{
		deps:     deps,
		maxLimit: maxLimit,
	}
}

// HandleGetTop handles GET /risk/top?limit=N requests. A missing limit
// returns the top ten.
func (h *RiskHandler) HandleGetTop(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_top_risks"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	n := min(defaultTopLimit, h.maxLimit)
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		v, err := strconv.Atoi(limitStr)
		if err != nil {
			writeFailure(w, WrapKind(op, ErrBadRequest, err))
			return
		}
		n = v
	}
	if n < 1 || n > h.maxLimit {
		writeFailure(w, WrapKind(op, ErrValidation, fmt.Errorf("limit must be in [1,%d]", h.maxLimit)))
		return
	}
	entries, err := h.deps.TopRisks(r.Context(), n)
	if err != nil {
		writeFailure(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, entries)
}
