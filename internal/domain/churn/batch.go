package churn

import (
	"context"
	"fmt"
	"sort"

	"github.com/okian/attrition/internal/domain/model"
	"golang.org/x/sync/errgroup"
)

// BatchPredict filters the shared histories per employee, predicts each one
// and returns the results sorted by risk score descending. Equal scores keep
// input order. The first failure aborts the whole batch.
func (s *Scorer) BatchPredict(ctx context.Context, in model.BatchInput) ([]model.ChurnPrediction, error) {
	perf := make(map[string][]model.PerformanceRecord)
	for _, r := range in.Performance {
		perf[r.EmployeeID] = append(perf[r.EmployeeID], r)
	}
	eng := make(map[string][]model.EngagementRecord)
	for _, r := range in.Engagement {
		eng[r.EmployeeID] = append(eng[r.EmployeeID], r)
	}

	out := make([]model.ChurnPrediction, len(in.Employees))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, emp := range in.Employees {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			pin := Input{
				Employee:    emp,
				Performance: perf[emp.ID],
				Engagement:  eng[emp.ID],
			}
			if dept, ok := in.Departments[emp.Department]; ok {
				pin.Department = &dept
			}
			p, err := s.Predict(pin)
			if err != nil {
				return err
			}
			out[i] = p
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("batch predict: %w", err)
	}

	SortByRisk(out)
	return out, nil
}

// SortByRisk orders predictions by risk score descending, stable on ties.
func SortByRisk(preds []model.ChurnPrediction) {
	sort.SliceStable(preds, func(i, j int) bool {
		return preds[i].RiskScore > preds[j].RiskScore
	})
}
