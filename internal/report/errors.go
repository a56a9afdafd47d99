package report

import (
	"fmt"
	"time"
)

// ErrRateLimited means the rewards service asked us to slow down.
type ErrRateLimited struct {
	RetryAfter time.Duration
}

func (e *ErrRateLimited) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("rewards service rate limited, retry after %s", e.RetryAfter)
	}
	return "rewards service rate limited"
}

// ErrServiceUnavailable covers 5xx responses from the rewards service.
type ErrServiceUnavailable struct {
	Status int
}

func (e *ErrServiceUnavailable) Error() string {
	return fmt.Sprintf("rewards service unavailable (HTTP %d)", e.Status)
}

// ErrRejected means the service refused the report outright (4xx other
// than 429). These are never retried.
type ErrRejected struct {
	Status int
	Body   string
}

func (e *ErrRejected) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("rewards service rejected report (HTTP %d): %s", e.Status, e.Body)
	}
	return fmt.Sprintf("rewards service rejected report (HTTP %d)", e.Status)
}
