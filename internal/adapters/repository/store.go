// Package repository keeps the latest churn prediction per employee, ranked by risk.
package repository

import (
	"context"

	"github.com/okian/attrition/internal/domain/model"
)

// Entry is a stored prediction with its position in the risk ranking.
type Entry struct {
	Rank       int                   `json:"rank"`
	Prediction model.ChurnPrediction `json:"prediction"`
}

// Store provides read/write access to the stored predictions.
type Store interface {
	// Save stores p as the latest prediction for its employee, replacing
	// any earlier one regardless of score.
	Save(ctx context.Context, p model.ChurnPrediction) error

	// Get returns the latest prediction and rank for an employee.
	// Returns ErrNotFound if the employee is unknown.
	Get(ctx context.Context, employeeID string) (Entry, error)

	// TopN returns the top-N entries ordered by risk score desc, employee ID asc.
	TopN(ctx context.Context, n int) ([]Entry, error)

	// All returns every stored prediction in rank order.
	All(ctx context.Context) []model.ChurnPrediction

	// Count returns the number of employees with a stored prediction.
	Count(ctx context.Context) int
}
