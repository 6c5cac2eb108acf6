package repository

import "errors"

// Sentinel kinds for store errors.
var (
	ErrNotFound          = errors.New("prediction not found")
	ErrInvalidLimit      = errors.New("invalid top-N limit")
	ErrInvalidPrediction = errors.New("invalid prediction")
)
