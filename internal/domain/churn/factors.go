package churn

import "github.com/okian/attrition/internal/domain/model"

// Human-readable risk factors, in priority order.
const (
	FactorLowPerformance       = "Below average performance rating"
	FactorDecliningPerformance = "Declining performance trend"
	FactorLowEngagement        = "Low engagement score"
	FactorDecliningEngagement  = "Declining engagement trend"
	FactorPoorWorkLifeBalance  = "Poor work-life balance"
	FactorBelowMarketSalary    = "Below market salary"
	FactorManagerChanges       = "Frequent manager changes"
	FactorHighTurnover         = "High department turnover"
	FactorPromotionGap         = "Long time since last promotion"
	FactorRecentHire           = "Recent hire adjustment period"
)

// FactorMinorIndicators is emitted alone when no rule fires.
const FactorMinorIndicators = "Multiple minor risk indicators"

type factorRule struct {
	factor string
	fires  func(model.FeatureVector) bool
}

var factorRules = [...]factorRule{
	{FactorLowPerformance, func(f model.FeatureVector) bool { return f.AvgPerformanceRating < 3.0 }},
	{FactorDecliningPerformance, func(f model.FeatureVector) bool { return f.PerformanceTrend < -0.3 }},
	{FactorLowEngagement, func(f model.FeatureVector) bool { return f.AvgEngagementScore < 6.0 }},
	{FactorDecliningEngagement, func(f model.FeatureVector) bool { return f.EngagementTrend < -0.3 }},
	{FactorPoorWorkLifeBalance, func(f model.FeatureVector) bool { return f.WorkLifeBalanceScore < 6.0 }},
	{FactorBelowMarketSalary, func(f model.FeatureVector) bool { return f.SalaryPercentile < 0.3 }},
	{FactorManagerChanges, func(f model.FeatureVector) bool { return f.ManagerChanges > 2 }},
	{FactorHighTurnover, func(f model.FeatureVector) bool { return f.DepartmentTurnoverRate > 0.25 }},
	{FactorPromotionGap, func(f model.FeatureVector) bool { return f.PromotionGapMonths > 36 }},
	{FactorRecentHire, func(f model.FeatureVector) bool { return f.TenureMonths < 6 }},
}

// RiskFactors evaluates the threshold rules against raw feature values. The
// result is never empty.
func RiskFactors(f model.FeatureVector) []string {
	var out []string
	for _, r := range factorRules {
		if r.fires(f) {
			out = append(out, r.factor)
		}
	}
	if len(out) == 0 {
		return []string{FactorMinorIndicators}
	}
	return out
}
