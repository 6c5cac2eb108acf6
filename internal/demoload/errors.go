package demoload

import "errors"

var (
	// ErrUnhealthy is returned when the service health check fails.
	ErrUnhealthy = errors.New("service unhealthy")
	// ErrUnexpectedStatus is returned for an unexpected HTTP status code.
	ErrUnexpectedStatus = errors.New("unexpected status")
	// ErrVerification is returned when a response breaks an ordering or bounds check.
	ErrVerification = errors.New("verification failed")
	// ErrJobTimeout is returned when a job does not finish before the context ends.
	ErrJobTimeout = errors.New("job did not finish")
)
