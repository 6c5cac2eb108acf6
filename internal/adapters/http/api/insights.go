package api

import (
	"context"
	"net/http"

	"github.com/okian/attrition/internal/domain/insights"
	"github.com/okian/attrition/internal/domain/model"
)

// InsightDependencies defines the interface for retention guidance.
type InsightDependencies interface {
	Interventions(ctx context.Context) []model.ChurnPrediction
	Insights(ctx context.Context) []insights.Insight
	ROI(ctx context.Context) insights.ROI
}

// InsightsHandler handles intervention, insight and ROI requests.
type InsightsHandler struct {
	deps InsightDependencies
}

// NewInsightsHandler creates a new insights handler.
func NewInsightsHandler(deps InsightDependencies) *InsightsHandler {
	return &InsightsHandler{deps: deps}
}

// HandleGetInterventions handles GET /interventions requests.
func (h *InsightsHandler) HandleGetInterventions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	out := h.deps.Interventions(r.Context())
	if out == nil {
		out = []model.ChurnPrediction{}
	}
	writeJSON(w, http.StatusOK, out)
}

// HandleGetInsights handles GET /insights requests.
func (h *InsightsHandler) HandleGetInsights(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	out := h.deps.Insights(r.Context())
	if out == nil {
		out = []insights.Insight{}
	}
	writeJSON(w, http.StatusOK, out)
}

// HandleGetROI handles GET /roi requests.
func (h *InsightsHandler) HandleGetROI(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, h.deps.ROI(r.Context()))
}
