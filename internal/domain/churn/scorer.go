// Package churn implements the fixed-weight churn-risk model: feature
// extraction, trend estimation, logistic scoring, risk tiering, risk-factor
// derivation and confidence estimation.
package churn

import (
	"context"
	"fmt"
	"math"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/okian/attrition/internal/domain/model"
)

// Default scorer configuration constants.
const (
	DefaultRiskThreshold = 0.5
	maxConfidence        = 0.95
)

// Predictor produces churn predictions.
type Predictor interface {
	// Predict scores a single employee.
	Predict(in Input) (model.ChurnPrediction, error)
	// BatchPredict scores every employee of in, highest risk first.
	BatchPredict(ctx context.Context, in model.BatchInput) ([]model.ChurnPrediction, error)
}

// Scorer implements Predictor. Apart from the risk threshold it holds no
// mutable state and is safe for concurrent use.
type Scorer struct {
	now         func() time.Time
	newID       func() string
	concurrency int

	mu        sync.RWMutex
	threshold float64
}

// New creates a Scorer with configuration options.
func New(opts ...Option) *Scorer {
	s := &Scorer{
		now:         time.Now,
		newID:       uuid.NewString,
		concurrency: runtime.NumCPU(),
		threshold:   DefaultRiskThreshold,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Predict scores one employee. Any failure is reported as ErrPrediction
// wrapping the cause; no partial result is returned.
func (s *Scorer) Predict(in Input) (model.ChurnPrediction, error) {
	now := s.now()

	fv, err := ExtractFeatures(now, in)
	if err != nil {
		return model.ChurnPrediction{}, fmt.Errorf("%w: employee %q: %w", ErrPrediction, in.Employee.ID, err)
	}

	prob := Probability(fv)
	if !finite(prob) {
		return model.ChurnPrediction{}, fmt.Errorf("%w: employee %q: %w: score", ErrPrediction, in.Employee.ID, ErrNonFinite)
	}
	score := round3(prob)

	return model.ChurnPrediction{
		ID:             s.newID(),
		EmployeeID:     in.Employee.ID,
		PredictionDate: model.DateOf(now),
		RiskScore:      score,
		RiskLevel:      Level(score),
		RiskFactors:    RiskFactors(fv),
		Confidence:     round3(Confidence(fv, prob)),
		ModelVersion:   model.ModelVersion,
	}, nil
}

// Probability combines the normalized features with the fixed weights and
// passes the log-odds through the logistic function.
func Probability(fv model.FeatureVector) float64 {
	logOdds := baseLogOdds
	vals := fv.Values()
	for i, f := range features {
		logOdds += f.weight * f.normalize(vals[i])
	}
	return 1 / (1 + math.Exp(-logOdds))
}

// Level maps a risk score to its tier. Lower bounds are inclusive.
func Level(score float64) model.RiskLevel {
	switch {
	case score >= 0.8:
		return model.RiskCritical
	case score >= 0.6:
		return model.RiskHigh
	case score >= 0.3:
		return model.RiskMedium
	default:
		return model.RiskLow
	}
}

// Confidence rewards data completeness and decisive scores, capped at 0.95.
func Confidence(fv model.FeatureVector, score float64) float64 {
	vals := fv.Values()
	var nonZero int
	for _, v := range vals {
		if v != 0 {
			nonZero++
		}
	}
	completeness := float64(nonZero) / float64(len(vals))
	decisiveness := 2 * math.Abs(score-0.5)

	return math.Min(0.7+0.2*completeness+0.1*decisiveness, maxConfidence)
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
