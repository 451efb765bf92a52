package push

import "errors"

var (
	// ErrChannelUnavailable is returned when no push channel is configured.
	// Deliveries are dropped, not retried.
	ErrChannelUnavailable = errors.New("push channel unavailable")
)

// RetryableError wraps transient delivery errors that should trigger a requeue
type RetryableError struct {
	Err error
}

func (e *RetryableError) Error() string {
	return "retryable error: " + e.Err.Error()
}

func (e *RetryableError) Unwrap() error {
	return e.Err
}

// NewRetryableError creates a new retryable error
func NewRetryableError(err error) error {
	return &RetryableError{Err: err}
}
