package demoload

import (
	"context"
	"fmt"

	"github.com/okian/attrition/internal/adapters/repository"
	"github.com/okian/attrition/internal/domain/churn"
	"github.com/okian/attrition/internal/domain/model"
	"github.com/okian/attrition/pkg/logger"
)

const displayTopN = 10

// verifyBatch checks a scored batch covers every employee once, is sorted
// by risk and keeps every score and confidence in bounds.
func verifyBatch(batch model.BatchInput, res model.BatchResult) error {
	if len(res.Predictions) != len(batch.Employees) {
		return fmt.Errorf("%w: %d predictions for %d employees", ErrVerification, len(res.Predictions), len(batch.Employees))
	}
	if err := verifyOrdered(res.Predictions); err != nil {
		return err
	}
	seen := make(map[string]bool, len(res.Predictions))
	for _, p := range res.Predictions {
		if seen[p.EmployeeID] {
			return fmt.Errorf("%w: employee %s scored twice", ErrVerification, p.EmployeeID)
		}
		seen[p.EmployeeID] = true
		if err := verifyPrediction(p); err != nil {
			return err
		}
	}
	if n := len(res.AboveThreshold) + len(res.BelowThreshold); n != len(res.Predictions) {
		return fmt.Errorf("%w: threshold partition covers %d of %d predictions", ErrVerification, n, len(res.Predictions))
	}
	return nil
}

func verifyPrediction(p model.ChurnPrediction) error {
	switch {
	case p.RiskScore < 0 || p.RiskScore > 1:
		return fmt.Errorf("%w: %s risk score %.3f out of [0,1]", ErrVerification, p.EmployeeID, p.RiskScore)
	case p.Confidence < 0 || p.Confidence > 0.95:
		return fmt.Errorf("%w: %s confidence %.3f out of [0,0.95]", ErrVerification, p.EmployeeID, p.Confidence)
	case len(p.RiskFactors) == 0:
		return fmt.Errorf("%w: %s has no risk factors", ErrVerification, p.EmployeeID)
	case churn.Level(p.RiskScore) != p.RiskLevel:
		return fmt.Errorf("%w: %s level %s does not match score %.3f", ErrVerification, p.EmployeeID, p.RiskLevel, p.RiskScore)
	}
	return nil
}

func verifyOrdered(preds []model.ChurnPrediction) error {
	for i := 1; i < len(preds); i++ {
		if preds[i].RiskScore > preds[i-1].RiskScore {
			return fmt.Errorf("%w: prediction %d scores higher than prediction %d", ErrVerification, i, i-1)
		}
	}
	return nil
}

// verifyTop checks the top-risk list is bounded by limit and ranked.
func verifyTop(entries []repository.Entry, limit int) error {
	if len(entries) > limit {
		return fmt.Errorf("%w: %d entries for limit %d", ErrVerification, len(entries), limit)
	}
	for i, e := range entries {
		if err := verifyPrediction(e.Prediction); err != nil {
			return err
		}
		if i == 0 {
			if e.Rank != 1 {
				return fmt.Errorf("%w: top entry has rank %d", ErrVerification, e.Rank)
			}
			continue
		}
		prev := entries[i-1]
		if e.Prediction.RiskScore > prev.Prediction.RiskScore || e.Rank < prev.Rank {
			return fmt.Errorf("%w: top risks not ordered at entry %d", ErrVerification, i)
		}
	}
	return nil
}

// verifyInterventions checks only HIGH and CRITICAL predictions are returned,
// highest risk first.
func verifyInterventions(preds []model.ChurnPrediction) error {
	for _, p := range preds {
		if p.RiskLevel != model.RiskHigh && p.RiskLevel != model.RiskCritical {
			return fmt.Errorf("%w: intervention for %s at level %s", ErrVerification, p.EmployeeID, p.RiskLevel)
		}
	}
	return verifyOrdered(preds)
}

// displayTopRisks logs the highest ranked employees.
func displayTopRisks(ctx context.Context, entries []repository.Entry) {
	log := logger.Get()
	for _, e := range entries[:min(displayTopN, len(entries))] {
		log.Info(ctx, "top risk",
			logger.Int("rank", e.Rank),
			logger.String("employeeID", e.Prediction.EmployeeID),
			logger.Float64("riskScore", e.Prediction.RiskScore),
			logger.String("riskLevel", string(e.Prediction.RiskLevel)))
	}
}
