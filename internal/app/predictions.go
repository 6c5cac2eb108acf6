package service

import (
	"context"
	"fmt"
	"time"

	repository "github.com/okian/attrition/internal/adapters/repository"
	"github.com/okian/attrition/internal/domain/churn"
	"github.com/okian/attrition/internal/domain/insights"
	"github.com/okian/attrition/internal/domain/model"
	"github.com/okian/attrition/pkg/logger"
	"github.com/okian/attrition/pkg/metrics"
)

// Predict scores one employee and stores the result.
func (s *Service) Predict(ctx context.Context, in churn.Input) (model.ChurnPrediction, error) {
	start := time.Now()
	p, err := s.scorer.Predict(in)
	if err != nil {
		metrics.RecordPredictionError()
		s.logger.Warn(ctx, "prediction failed",
			logger.String("employeeID", in.Employee.ID),
			logger.Error(err),
		)
		return model.ChurnPrediction{}, err
	}
	metrics.RecordPrediction(string(p.RiskLevel), p.RiskScore, float64(time.Since(start).Microseconds())/1000)

	if err := s.store.Save(ctx, p); err != nil {
		return model.ChurnPrediction{}, fmt.Errorf("store prediction: %w", err)
	}
	s.rememberEmployees(in.Employee)

	return p, nil
}

// BatchPredict scores a batch, stores every prediction and splits the
// result around the current risk threshold.
func (s *Service) BatchPredict(ctx context.Context, in model.BatchInput) (model.BatchResult, error) {
	start := time.Now()
	preds, err := s.scorer.BatchPredict(ctx, in)
	if err != nil {
		metrics.RecordPredictionError()
		s.logger.Warn(ctx, "batch prediction failed",
			logger.Int("employees", len(in.Employees)),
			logger.Error(err),
		)
		return model.BatchResult{}, err
	}
	metrics.RecordBatch(len(in.Employees), float64(time.Since(start).Microseconds())/1000)

	for _, p := range preds {
		metrics.RecordPrediction(string(p.RiskLevel), p.RiskScore, 0)
		if err := s.store.Save(ctx, p); err != nil {
			return model.BatchResult{}, fmt.Errorf("store prediction: %w", err)
		}
	}
	s.rememberEmployees(in.Employees...)

	threshold := s.scorer.RiskThreshold()
	above, below := s.scorer.Partition(preds)
	return model.BatchResult{
		Predictions:    preds,
		RiskThreshold:  threshold,
		AboveThreshold: employeeIDs(above),
		BelowThreshold: employeeIDs(below),
	}, nil
}

// Prediction returns the latest stored prediction for an employee.
func (s *Service) Prediction(ctx context.Context, employeeID string) (repository.Entry, error) {
	return s.store.Get(ctx, employeeID)
}

// TopRisks returns the n highest-risk stored predictions.
func (s *Service) TopRisks(ctx context.Context, n int) ([]repository.Entry, error) {
	return s.store.TopN(ctx, n)
}

// Interventions returns stored HIGH and CRITICAL predictions, highest risk first.
func (s *Service) Interventions(ctx context.Context) []model.ChurnPrediction {
	return insights.PrioritizeInterventions(s.store.All(ctx))
}

// Insights returns recommended actions for every prioritized intervention.
func (s *Service) Insights(ctx context.Context) []insights.Insight {
	return insights.GenerateInsights(s.Interventions(ctx))
}

// ROI estimates what the stored predictions put at stake.
func (s *Service) ROI(ctx context.Context) insights.ROI {
	s.employeesMu.RLock()
	employees := make([]model.Employee, 0, len(s.employees))
	for _, e := range s.employees {
		employees = append(employees, e)
	}
	s.employeesMu.RUnlock()

	return insights.RetentionROI(s.store.All(ctx), employees, s.replacementFraction)
}

// RiskThreshold returns the current risk threshold.
func (s *Service) RiskThreshold() float64 {
	return s.scorer.RiskThreshold()
}

// SetRiskThreshold updates the risk threshold; invalid values keep the old one.
func (s *Service) SetRiskThreshold(ctx context.Context, v float64) error {
	if err := s.scorer.SetRiskThreshold(v); err != nil {
		return err
	}
	metrics.UpdateRiskThreshold(v)
	s.logger.Info(ctx, "risk threshold updated", logger.Float64("threshold", v))
	return nil
}

// Model returns the static model description.
func (s *Service) Model() churn.ModelInfo {
	return s.scorer.Info()
}

func (s *Service) rememberEmployees(employees ...model.Employee) {
	s.employeesMu.Lock()
	defer s.employeesMu.Unlock()
	for _, e := range employees {
		s.employees[e.ID] = e
	}
}

func employeeIDs(preds []model.ChurnPrediction) []string {
	out := make([]string, len(preds))
	for i, p := range preds {
		out[i] = p.EmployeeID
	}
	return out
}
