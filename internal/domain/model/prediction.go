package model

// ModelVersion tags every prediction produced by the current weight table.
const ModelVersion = "v1.2"

// RiskLevel is the ordinal churn-risk tier.
type RiskLevel string

// Risk tiers, lowest first.
const (
	RiskLow      RiskLevel = "LOW"
	RiskMedium   RiskLevel = "MEDIUM"
	RiskHigh     RiskLevel = "HIGH"
	RiskCritical RiskLevel = "CRITICAL"
)

// Ordinal returns 0..3 for LOW..CRITICAL and -1 for unknown values.
func (l RiskLevel) Ordinal() int {
	switch l {
	case RiskLow:
		return 0
	case RiskMedium:
		return 1
	case RiskHigh:
		return 2
	case RiskCritical:
		return 3
	default:
		return -1
	}
}

// Feature names, in canonical order.
const (
	FeatureTenureMonths           = "tenure_months"
	FeatureAvgPerformanceRating   = "avg_performance_rating"
	FeaturePerformanceTrend       = "performance_trend"
	FeatureAvgEngagementScore     = "avg_engagement_score"
	FeatureEngagementTrend        = "engagement_trend"
	FeatureSalaryPercentile       = "salary_percentile"
	FeatureManagerChanges         = "manager_changes"
	FeatureDepartmentTurnoverRate = "department_turnover_rate"
	FeaturePromotionGapMonths     = "promotion_gap_months"
	FeatureWorkLifeBalanceScore   = "work_life_balance_score"
)

// FeatureNames lists the ten features in canonical order.
var FeatureNames = [...]string{
	FeatureTenureMonths,
	FeatureAvgPerformanceRating,
	FeaturePerformanceTrend,
	FeatureAvgEngagementScore,
	FeatureEngagementTrend,
	FeatureSalaryPercentile,
	FeatureManagerChanges,
	FeatureDepartmentTurnoverRate,
	FeaturePromotionGapMonths,
	FeatureWorkLifeBalanceScore,
}

// FeatureVector is the raw, non-normalized summary of an employee's history.
type FeatureVector struct {
	TenureMonths           float64 `json:"tenure_months"`
	AvgPerformanceRating   float64 `json:"avg_performance_rating"`
	PerformanceTrend       float64 `json:"performance_trend"`
	AvgEngagementScore     float64 `json:"avg_engagement_score"`
	EngagementTrend        float64 `json:"engagement_trend"`
	SalaryPercentile       float64 `json:"salary_percentile"`
	ManagerChanges         float64 `json:"manager_changes"`
	DepartmentTurnoverRate float64 `json:"department_turnover_rate"`
	PromotionGapMonths     float64 `json:"promotion_gap_months"`
	WorkLifeBalanceScore   float64 `json:"work_life_balance_score"`
}

// Values returns the feature values in FeatureNames order.
func (f FeatureVector) Values() [10]float64 {
	return [10]float64{
		f.TenureMonths,
		f.AvgPerformanceRating,
		f.PerformanceTrend,
		f.AvgEngagementScore,
		f.EngagementTrend,
		f.SalaryPercentile,
		f.ManagerChanges,
		f.DepartmentTurnoverRate,
		f.PromotionGapMonths,
		f.WorkLifeBalanceScore,
	}
}

// ChurnPrediction is the scoring output for one employee.
type ChurnPrediction struct {
	ID             string    `json:"id"`
	EmployeeID     string    `json:"employee_id"`
	PredictionDate Date      `json:"prediction_date"`
	RiskScore      float64   `json:"risk_score"`
	RiskLevel      RiskLevel `json:"risk_level"`
	RiskFactors    []string  `json:"risk_factors"`
	Confidence     float64   `json:"confidence"`
	ModelVersion   string    `json:"model_version"`
}

// Clone returns a deep copy so stored predictions stay immutable.
func (p ChurnPrediction) Clone() ChurnPrediction {
	out := p
	out.RiskFactors = append([]string(nil), p.RiskFactors...)
	return out
}
