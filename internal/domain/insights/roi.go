package insights

import "github.com/okian/attrition/internal/domain/model"

// DefaultReplacementCostFraction is the share of annual salary it costs to
// replace a leaver.
const DefaultReplacementCostFraction = 0.5

// ReplacementCost estimates the cost of replacing emp. A non-positive
// fraction falls back to DefaultReplacementCostFraction; a missing salary
// costs nothing.
func ReplacementCost(emp model.Employee, fraction float64) float64 {
	if emp.Salary == nil {
		return 0
	}
	if fraction <= 0 {
		fraction = DefaultReplacementCostFraction
	}
	return *emp.Salary * fraction
}

// ROI summarises what is at stake across a set of predictions.
type ROI struct {
	Employees            int     `json:"employees"`
	AtRisk               int     `json:"at_risk"`
	TotalReplacementCost float64 `json:"total_replacement_cost"`
	ExpectedLoss         float64 `json:"expected_loss"`
	AtRiskExpectedLoss   float64 `json:"at_risk_expected_loss"`
}

// RetentionROI weighs each employee's replacement cost by their risk score.
// Predictions without a matching employee are skipped. AtRisk counts HIGH
// and CRITICAL predictions.
func RetentionROI(preds []model.ChurnPrediction, employees []model.Employee, fraction float64) ROI {
	byID := make(map[string]model.Employee, len(employees))
	for _, e := range employees {
		byID[e.ID] = e
	}

	var roi ROI
	for _, p := range preds {
		emp, ok := byID[p.EmployeeID]
		if !ok {
			continue
		}
		cost := ReplacementCost(emp, fraction)
		loss := cost * p.RiskScore

		roi.Employees++
		roi.TotalReplacementCost += cost
		roi.ExpectedLoss += loss
		if p.RiskLevel == model.RiskHigh || p.RiskLevel == model.RiskCritical {
			roi.AtRisk++
			roi.AtRiskExpectedLoss += loss
		}
	}
	return roi
}
