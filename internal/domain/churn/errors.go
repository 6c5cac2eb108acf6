package churn

import "errors"

// Sentinel kinds for scoring errors. Every Predict failure wraps
// ErrPrediction together with the specific cause.
var (
	ErrPrediction       = errors.New("churn prediction failed")
	ErrInvalidDate      = errors.New("invalid date")
	ErrNonFinite        = errors.New("non-finite value")
	ErrInvalidThreshold = errors.New("risk threshold must be within [0, 1]")
)
