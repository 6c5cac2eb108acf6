package churn

import "time"

// Option applies a configuration option to the Scorer.
type Option func(*Scorer)

// WithClock overrides the time source used for tenure and prediction dates.
func WithClock(now func() time.Time) Option {
	return func(s *Scorer) {
		if now != nil {
			s.now = now
		}
	}
}

// WithIDGenerator overrides how prediction IDs are minted. IDs must be
// unique for the lifetime of the process.
func WithIDGenerator(newID func() string) Option {
	return func(s *Scorer) {
		if newID != nil {
			s.newID = newID
		}
	}
}

// WithConcurrency bounds how many employees BatchPredict scores at once.
func WithConcurrency(n int) Option {
	return func(s *Scorer) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

// WithRiskThreshold sets the initial binary decision threshold. Values
// outside [0, 1] are ignored.
func WithRiskThreshold(v float64) Option {
	return func(s *Scorer) {
		if validThreshold(v) {
			s.threshold = v
		}
	}
}
