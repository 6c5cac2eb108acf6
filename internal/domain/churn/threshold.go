package churn

import (
	"fmt"

	"github.com/okian/attrition/internal/domain/model"
)

// RiskThreshold returns the current binary decision threshold.
func (s *Scorer) RiskThreshold() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.threshold
}

// SetRiskThreshold replaces the threshold. Out-of-range values are rejected
// and the previous threshold is kept.
func (s *Scorer) SetRiskThreshold(v float64) error {
	if !validThreshold(v) {
		return fmt.Errorf("%w: got %v", ErrInvalidThreshold, v)
	}
	s.mu.Lock()
	s.threshold = v
	s.mu.Unlock()
	return nil
}

// Partition splits predictions into those at or above the threshold and the
// rest, preserving order. The threshold is read once per call. It does not
// influence Level.
func (s *Scorer) Partition(preds []model.ChurnPrediction) (above, below []model.ChurnPrediction) {
	threshold := s.RiskThreshold()
	for _, p := range preds {
		if p.RiskScore >= threshold {
			above = append(above, p)
		} else {
			below = append(below, p)
		}
	}
	return above, below
}

func validThreshold(v float64) bool {
	return v >= 0 && v <= 1 // false for NaN
}
