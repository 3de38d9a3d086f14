package domain

import (
	"fmt"
	"net/http"
	"time"
)

const RateLimitExceededKind = "RATE_LIMIT_EXCEEDED"

var ErrRateLimitExceeded *RateLimitExceededError

// RateLimitExceededError is the caller-facing denial. It is an expected
// outcome, not a fault.
type RateLimitExceededError struct {
	Kind              string     `json:"error_kind"`
	StatusCode        int        `json:"-"`
	Message           string     `json:"message"`
	Category          string     `json:"category"`
	Limit             uint       `json:"limit"`
	RetryAfterSeconds uint       `json:"retry_after_seconds"`
	BlockedUntil      *time.Time `json:"blocked_until,omitempty"`
}

func (e *RateLimitExceededError) Error() string {
	return fmt.Sprintf("%s rate limit exceeded, retry after %d seconds", e.Category, e.RetryAfterSeconds)
}

func (e *RateLimitExceededError) Is(target error) bool {
	_, ok := target.(*RateLimitExceededError)
	return ok
}

func NewRateLimitExceededError(category string, limit uint, retryAfter uint, blockedUntil *time.Time) *RateLimitExceededError {
	return &RateLimitExceededError{
		Kind:              RateLimitExceededKind,
		StatusCode:        http.StatusTooManyRequests,
		Message:           "rate limit exceeded",
		Category:          category,
		Limit:             limit,
		RetryAfterSeconds: retryAfter,
		BlockedUntil:      blockedUntil,
	}
}

// BlockedUntilISO formats the block expiry as ISO-8601, or "" when the
// denial did not come with a block.
func (e *RateLimitExceededError) BlockedUntilISO() string {
	if e.BlockedUntil == nil {
		return ""
	}
	return e.BlockedUntil.UTC().Format(time.RFC3339)
}
