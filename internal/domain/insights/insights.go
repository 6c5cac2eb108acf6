// Package insights turns churn predictions into retention guidance:
// replacement-cost estimates, intervention priorities and recommended actions.
package insights

import (
	"github.com/okian/attrition/internal/domain/churn"
	"github.com/okian/attrition/internal/domain/model"
)

// ActionMonitor is recommended for factors without a dedicated action.
const ActionMonitor = "Monitor closely"

var actions = map[string]string{
	churn.FactorLowPerformance:       "Provide performance coaching with clear development goals",
	churn.FactorDecliningPerformance: "Schedule a check-in to identify blockers behind the decline",
	churn.FactorLowEngagement:        "Hold a stay interview to understand engagement drivers",
	churn.FactorDecliningEngagement:  "Increase the frequency of manager one-on-ones",
	churn.FactorPoorWorkLifeBalance:  "Review workload and offer flexible working options",
	churn.FactorBelowMarketSalary:    "Benchmark compensation and consider a market adjustment",
	churn.FactorManagerChanges:       "Assign a consistent mentor or sponsor",
	churn.FactorHighTurnover:         "Review team-level retention with department leadership",
	churn.FactorPromotionGap:         "Discuss career path and promotion readiness",
	churn.FactorRecentHire:           "Strengthen onboarding and pair with a buddy",
}

// Recommendation pairs a risk factor with the action it calls for.
type Recommendation struct {
	Factor string `json:"factor"`
	Action string `json:"action"`
}

// Insight is the retention guidance for one employee.
type Insight struct {
	EmployeeID      string           `json:"employee_id"`
	RiskScore       float64          `json:"risk_score"`
	RiskLevel       model.RiskLevel  `json:"risk_level"`
	Recommendations []Recommendation `json:"recommendations"`
}

// ActionFor returns the recommended action for a risk factor.
func ActionFor(factor string) string {
	if a, ok := actions[factor]; ok {
		return a
	}
	return ActionMonitor
}

// GenerateInsights maps each prediction's factors to recommended actions,
// keeping prediction and factor order.
func GenerateInsights(preds []model.ChurnPrediction) []Insight {
	out := make([]Insight, 0, len(preds))
	for _, p := range preds {
		recs := make([]Recommendation, 0, len(p.RiskFactors))
		for _, f := range p.RiskFactors {
			recs = append(recs, Recommendation{Factor: f, Action: ActionFor(f)})
		}
		out = append(out, Insight{
			EmployeeID:      p.EmployeeID,
			RiskScore:       p.RiskScore,
			RiskLevel:       p.RiskLevel,
			Recommendations: recs,
		})
	}
	return out
}

// PrioritizeInterventions keeps HIGH and CRITICAL predictions, highest risk
// first. The input slice is not modified.
func PrioritizeInterventions(preds []model.ChurnPrediction) []model.ChurnPrediction {
	out := make([]model.ChurnPrediction, 0, len(preds))
	for _, p := range preds {
		if p.RiskLevel == model.RiskHigh || p.RiskLevel == model.RiskCritical {
			out = append(out, p)
		}
	}
	churn.SortByRisk(out)
	return out
}
