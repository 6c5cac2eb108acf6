// Package model contains domain models passed between layers.
package model

// Employee is a read-only snapshot of an employee at prediction time.
type Employee struct {
	ID         string   `json:"id"`
	Name       string   `json:"name,omitempty"`
	HireDate   Date     `json:"hire_date"`
	Salary     *float64 `json:"salary,omitempty"` // annual, optional
	Department string   `json:"department"`
}

// PerformanceRecord is a single performance review.
type PerformanceRecord struct {
	EmployeeID string  `json:"employee_id"`
	ReviewDate Date    `json:"review_date"`
	Rating     float64 `json:"rating"` // expected range ~1-5
}

// EngagementRecord is a single engagement survey response.
type EngagementRecord struct {
	EmployeeID      string   `json:"employee_id"`
	SurveyDate      Date     `json:"survey_date"`
	OverallScore    float64  `json:"overall_score"`               // expected range ~0-10
	WorkLifeBalance *float64 `json:"work_life_balance,omitempty"` // optional sub-score
}

// DepartmentContext carries department-level aggregates used by scoring.
type DepartmentContext struct {
	TurnoverRate float64 `json:"turnover_rate"`
}

// Float64 returns a pointer to v. Handy for optional numeric fields.
func Float64(v float64) *float64 { return &v }
