package ratelimit

import (
	"strconv"

	domainerrors "github.com/NeuralTrust/TrustGuard/pkg/domain/errors"
	domain "github.com/NeuralTrust/TrustGuard/pkg/domain/ratelimit"
)

const (
	HeaderLimit      = "X-RateLimit-Limit"
	HeaderRemaining  = "X-RateLimit-Remaining"
	HeaderReset      = "X-RateLimit-Reset"
	HeaderRetryAfter = "Retry-After"
)

// Projector turns engine decisions into what callers see: quota headers and
// the 429 denial payload.
type Projector interface {
	Headers(result *domain.Result) map[string]string
	// Deny returns nil for allowed results.
	Deny(result *domain.Result) *domainerrors.RateLimitExceededError
}

type projector struct{}

func NewProjector() Projector {
	return &projector{}
}

func (p *projector) Headers(result *domain.Result) map[string]string {
	headers := make(map[string]string, 4)
	if result == nil || result.FailedOpen {
		return headers
	}
	headers[HeaderLimit] = strconv.FormatUint(uint64(result.Limit), 10)
	headers[HeaderRemaining] = strconv.FormatUint(result.Remaining(), 10)
	if !result.WindowResetAt.IsZero() {
		headers[HeaderReset] = strconv.FormatInt(result.WindowResetAt.Unix(), 10)
	}
	if !result.Allowed {
		headers[HeaderRetryAfter] = strconv.FormatUint(uint64(result.RetryAfterSeconds), 10)
	}
	return headers
}

func (p *projector) Deny(result *domain.Result) *domainerrors.RateLimitExceededError {
	if result == nil || result.Allowed {
		return nil
	}
	return domainerrors.NewRateLimitExceededError(
		string(result.Category),
		result.Limit,
		result.RetryAfterSeconds,
		result.BlockedUntil,
	)
}
