package model

import "errors"

// Sentinel kinds for model errors.
var (
	ErrInvalidDate = errors.New("invalid date")
	ErrJobNotFound = errors.New("job not found")
	ErrEmptyBatch  = errors.New("batch has no employees")
)
