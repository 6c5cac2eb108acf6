// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/okian/attrition/internal/adapters/mq/queue"
	"github.com/okian/attrition/internal/adapters/repository"
	"github.com/okian/attrition/internal/domain/churn"
	"github.com/okian/attrition/internal/domain/model"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	PredictionDependencies
	RiskDependencies
	JobDependencies
	ThresholdDependencies
	ModelDependencies
	InsightDependencies
	StatsProvider
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler      *HealthHandler
	statsHandler       *StatsHandler
	predictionsHandler *PredictionsHandler
	riskHandler        *RiskHandler
	jobsHandler        *JobsHandler
	thresholdHandler   *ThresholdHandler
	modelHandler       *ModelHandler
	insightsHandler    *InsightsHandler
}

// NewServer creates a new API server with all handlers. maxTopLimit caps
// GET /risk/top?limit.
func NewServer(deps Dependencies, maxTopLimit int) *Server {
	return &Server{
		healthHandler:      NewHealthHandler(),
		statsHandler:       NewStatsHandler(deps),
		predictionsHandler: NewPredictionsHandler(deps),
		riskHandler:        NewRiskHandler(deps, maxTopLimit),
		jobsHandler:        NewJobsHandler(deps),
		thresholdHandler:   NewThresholdHandler(deps),
		modelHandler:       NewModelHandler(deps),
		insightsHandler:    NewInsightsHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/predictions", MetricsMiddleware(s.predictionsHandler.HandlePostPrediction, "predictions"))
	mux.HandleFunc("/predictions/batch", MetricsMiddleware(s.predictionsHandler.HandlePostBatch, "predictions_batch"))
	mux.HandleFunc("/predictions/", MetricsMiddleware(s.predictionsHandler.HandleGetPrediction, "prediction"))
	mux.HandleFunc("/risk/top", MetricsMiddleware(s.riskHandler.HandleGetTop, "risk_top"))
	mux.HandleFunc("/interventions", MetricsMiddleware(s.insightsHandler.HandleGetInterventions, "interventions"))
	mux.HandleFunc("/insights", MetricsMiddleware(s.insightsHandler.HandleGetInsights, "insights"))
	mux.HandleFunc("/roi", MetricsMiddleware(s.insightsHandler.HandleGetROI, "roi"))
	mux.HandleFunc("/threshold", MetricsMiddleware(s.thresholdHandler.HandleThreshold, "threshold"))
	mux.HandleFunc("/model", MetricsMiddleware(s.modelHandler.HandleGetModel, "model"))
	mux.HandleFunc("/jobs", MetricsMiddleware(s.jobsHandler.HandlePostJob, "jobs"))
	mux.HandleFunc("/jobs/", MetricsMiddleware(s.jobsHandler.HandleGetJob, "job"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeFailure maps err to a status code and error code by its kind.
func writeFailure(w http.ResponseWriter, err error) {
	status, code := classify(err)
	writeError(w, status, code, err)
}

func classify(err error) (int, string) {
	switch {
	case errors.Is(err, ErrBadRequest):
		return http.StatusBadRequest, "bad_request"
	case errors.Is(err, ErrValidation),
		errors.Is(err, churn.ErrInvalidThreshold),
		errors.Is(err, model.ErrEmptyBatch),
		errors.Is(err, repository.ErrInvalidLimit):
		return http.StatusBadRequest, "validation_error"
	case errors.Is(err, repository.ErrNotFound),
		errors.Is(err, model.ErrJobNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, ErrBackpressure),
		errors.Is(err, queue.ErrFull),
		errors.Is(err, queue.ErrClosed):
		return http.StatusTooManyRequests, "backpressure"
	case errors.Is(err, churn.ErrPrediction):
		return http.StatusUnprocessableEntity, "prediction_error"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}

// decodeJSON reads a single JSON document from the request body.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
