package churn

import (
	"fmt"
	"math"
	"time"

	"github.com/okian/attrition/internal/domain/model"
)

// Input is everything Predict needs for one employee. The caller filters
// the histories by employee; ownership is not re-checked here.
type Input struct {
	Employee    model.Employee
	Performance []model.PerformanceRecord
	Engagement  []model.EngagementRecord
	// Department is optional; nil means the default turnover rate.
	Department *model.DepartmentContext
}

// ExtractFeatures builds the raw feature vector for in as of now.
func ExtractFeatures(now time.Time, in Input) (model.FeatureVector, error) {
	emp := in.Employee
	if emp.HireDate.IsZero() {
		return model.FeatureVector{}, fmt.Errorf("%w: missing hire date", ErrInvalidDate)
	}

	tenure := math.Floor(now.Sub(emp.HireDate.Time).Hours() / 24 / daysPerMonth)

	perf := make([]Observation, 0, len(in.Performance))
	for i, r := range in.Performance {
		if r.ReviewDate.IsZero() {
			return model.FeatureVector{}, fmt.Errorf("%w: performance record %d has no review date", ErrInvalidDate, i)
		}
		if !finite(r.Rating) {
			return model.FeatureVector{}, fmt.Errorf("%w: performance record %d rating", ErrNonFinite, i)
		}
		perf = append(perf, Observation{At: r.ReviewDate.Time, Value: r.Rating})
	}

	eng := make([]Observation, 0, len(in.Engagement))
	wlb := make([]float64, 0, len(in.Engagement))
	for i, r := range in.Engagement {
		if r.SurveyDate.IsZero() {
			return model.FeatureVector{}, fmt.Errorf("%w: engagement record %d has no survey date", ErrInvalidDate, i)
		}
		if !finite(r.OverallScore) {
			return model.FeatureVector{}, fmt.Errorf("%w: engagement record %d overall score", ErrNonFinite, i)
		}
		eng = append(eng, Observation{At: r.SurveyDate.Time, Value: r.OverallScore})

		balance := defaultWorkLifeBalance
		if r.WorkLifeBalance != nil {
			if !finite(*r.WorkLifeBalance) {
				return model.FeatureVector{}, fmt.Errorf("%w: engagement record %d work-life balance", ErrNonFinite, i)
			}
			balance = *r.WorkLifeBalance
		}
		wlb = append(wlb, balance)
	}

	salary := defaultSalaryPercentile
	if emp.Salary != nil {
		if !finite(*emp.Salary) {
			return model.FeatureVector{}, fmt.Errorf("%w: salary", ErrNonFinite)
		}
		salary = math.Min(*emp.Salary/salaryBenchmark, 1.0)
	}

	turnover := defaultTurnoverRate
	if in.Department != nil {
		if !finite(in.Department.TurnoverRate) {
			return model.FeatureVector{}, fmt.Errorf("%w: department turnover rate", ErrNonFinite)
		}
		turnover = in.Department.TurnoverRate
	}

	return model.FeatureVector{
		TenureMonths:           tenure,
		AvgPerformanceRating:   meanOr(values(perf), defaultPerformanceRating),
		PerformanceTrend:       Trend(perf),
		AvgEngagementScore:     meanOr(values(eng), defaultEngagementScore),
		EngagementTrend:        Trend(eng),
		SalaryPercentile:       salary,
		ManagerChanges:         0, // no manager history is available yet
		DepartmentTurnoverRate: turnover,
		PromotionGapMonths:     math.Max(0, tenure-promotionBaselineMonth),
		WorkLifeBalanceScore:   meanOr(wlb, defaultWorkLifeBalance),
	}, nil
}

func values(obs []Observation) []float64 {
	out := make([]float64, len(obs))
	for i, o := range obs {
		out[i] = o.Value
	}
	return out
}

// meanOr treats missing data as neutral rather than zero.
func meanOr(vs []float64, fallback float64) float64 {
	if len(vs) == 0 {
		return fallback
	}
	var sum float64
	for _, v := range vs {
		sum += v
	}
	return sum / float64(len(vs))
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
